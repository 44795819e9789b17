package branch

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

// fakeMutator records calls and fails the operations it is told to fail.
type fakeMutator struct {
	calls      []string
	failSwitch bool
	failDelete map[string]bool
}

func (f *fakeMutator) SwitchTo(_ context.Context, name string) error {
	f.calls = append(f.calls, "switch "+name)
	if f.failSwitch {
		return errors.New("local changes would be overwritten")
	}
	return nil
}

func (f *fakeMutator) DeleteLocalBranch(_ context.Context, name string) error {
	f.calls = append(f.calls, "delete "+name)
	if f.failDelete[name] {
		return errors.New("boom")
	}
	return nil
}

func (f *fakeMutator) DeleteRemoteBranch(_ context.Context, remote, name string) error {
	f.calls = append(f.calls, "push-delete "+remote+" "+name)
	if f.failDelete[remote+"/"+name] {
		return errors.New("remote rejected")
	}
	return nil
}

func TestDeleteLocal_SwitchesAwayFromCurrent(t *testing.T) {
	t.Parallel()

	m := &fakeMutator{}
	e := &Executor{Mutator: m, Base: "main", Current: "feature/a"}

	results, err := e.DeleteLocal(context.Background(), []string{"feature/a"})
	if err != nil {
		t.Fatalf("DeleteLocal() error = %v", err)
	}
	want := []string{"switch main", "delete feature/a"}
	if !reflect.DeepEqual(m.calls, want) {
		t.Errorf("calls = %v, want %v", m.calls, want)
	}
	if Failed(results) != 0 {
		t.Errorf("Failed() = %d, want 0", Failed(results))
	}
	if e.Current != "main" {
		t.Errorf("Current = %q, want main", e.Current)
	}
}

func TestDeleteLocal_FailedSwitchAbortsBatch(t *testing.T) {
	t.Parallel()

	m := &fakeMutator{failSwitch: true}
	e := &Executor{Mutator: m, Base: "main", Current: "feature/a"}

	results, err := e.DeleteLocal(context.Background(), []string{"other", "feature/a"})

	var swErr *SwitchError
	if !errors.As(err, &swErr) {
		t.Fatalf("DeleteLocal() error = %v, want *SwitchError", err)
	}
	if swErr.Target != "main" {
		t.Errorf("SwitchError.Target = %q, want main", swErr.Target)
	}
	if results != nil {
		t.Errorf("results = %v, want nil", results)
	}
	if !reflect.DeepEqual(m.calls, []string{"switch main"}) {
		t.Errorf("calls = %v, want only the switch", m.calls)
	}
}

func TestDeleteLocal_NoSwitchWhenCurrentNotTargeted(t *testing.T) {
	t.Parallel()

	m := &fakeMutator{}
	e := &Executor{Mutator: m, Base: "main", Current: "wip"}

	if _, err := e.DeleteLocal(context.Background(), []string{"a", "b"}); err != nil {
		t.Fatalf("DeleteLocal() error = %v", err)
	}
	want := []string{"delete a", "delete b"}
	if !reflect.DeepEqual(m.calls, want) {
		t.Errorf("calls = %v, want %v", m.calls, want)
	}
}

func TestDeleteLocal_PartialFailure(t *testing.T) {
	t.Parallel()

	m := &fakeMutator{failDelete: map[string]bool{"b": true}}
	e := &Executor{Mutator: m, Base: "main"}

	results, err := e.DeleteLocal(context.Background(), []string{"a", "b", "c", "main"})
	if err != nil {
		t.Fatalf("DeleteLocal() error = %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("len(results) = %d, want 4", len(results))
	}
	if !reflect.DeepEqual(m.calls, []string{"delete a", "delete b", "delete c"}) {
		t.Errorf("calls = %v", m.calls)
	}
	if Failed(results) != 2 {
		t.Errorf("Failed() = %d, want 2", Failed(results))
	}

	var delErr *DeleteError
	if !errors.As(results[1].Err, &delErr) || delErr.Ref != "b" {
		t.Errorf("results[1].Err = %v, want *DeleteError for b", results[1].Err)
	}
	if !errors.Is(results[3].Err, ErrBaseBranch) {
		t.Errorf("results[3].Err = %v, want ErrBaseBranch", results[3].Err)
	}
}

func TestDeleteRemote(t *testing.T) {
	t.Parallel()

	m := &fakeMutator{failDelete: map[string]bool{"origin/locked": true}}
	e := &Executor{Mutator: m, Base: "main", Current: "locked"}

	results := e.DeleteRemote(context.Background(), []Record{
		{Name: "old", Remote: "origin"},
		{Name: "locked", Remote: "origin"},
	})

	want := []string{"push-delete origin old", "push-delete origin locked"}
	if !reflect.DeepEqual(m.calls, want) {
		t.Errorf("calls = %v, want %v (no local switch or delete)", m.calls, want)
	}
	if results[0].Err != nil {
		t.Errorf("results[0].Err = %v, want nil", results[0].Err)
	}
	if results[1].Err == nil || results[1].Ref != "origin/locked" {
		t.Errorf("results[1] = %+v, want failure for origin/locked", results[1])
	}
}

func TestExecutor_Progress(t *testing.T) {
	t.Parallel()

	var seen []string
	e := &Executor{
		Mutator:  &fakeMutator{},
		Base:     "main",
		Progress: func(ref string) { seen = append(seen, ref) },
	}
	e.DeleteRemote(context.Background(), []Record{
		{Name: "main", Remote: "origin"},
		{Name: "old", Remote: "origin"},
	})
	if _, err := e.DeleteLocal(context.Background(), []string{"a"}); err != nil {
		t.Fatal(err)
	}

	want := []string{"origin/old", "a"}
	if !reflect.DeepEqual(seen, want) {
		t.Errorf("progress = %v, want %v (base branch is never attempted)", seen, want)
	}
}

func TestExecutor_RefusesEveryBaseName(t *testing.T) {
	t.Parallel()

	m := &fakeMutator{}
	e := &Executor{Mutator: m, Base: "main"}

	results, err := e.DeleteLocal(context.Background(), []string{"master", "x"})
	if err != nil {
		t.Fatalf("DeleteLocal() error = %v", err)
	}
	remote := e.DeleteRemote(context.Background(), []Record{{Name: "master", Remote: "origin"}})

	if !reflect.DeepEqual(m.calls, []string{"delete x"}) {
		t.Errorf("calls = %v, want only x deleted", m.calls)
	}
	if !errors.Is(results[0].Err, ErrBaseBranch) || !errors.Is(remote[0].Err, ErrBaseBranch) {
		t.Errorf("master results = %v / %v, want ErrBaseBranch", results[0].Err, remote[0].Err)
	}
}
