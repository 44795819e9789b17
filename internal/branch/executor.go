package branch

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/raphi011/gpick/internal/log"
)

// ErrBaseBranch is returned when a batch targets the base branch or another
// base name (main, master).
var ErrBaseBranch = errors.New("refusing to delete the base branch")

// Mutator performs the state-changing git operations the executor needs.
type Mutator interface {
	SwitchTo(ctx context.Context, name string) error
	DeleteLocalBranch(ctx context.Context, name string) error
	DeleteRemoteBranch(ctx context.Context, remote, name string) error
}

// DeleteError reports a failed deletion of a single branch.
type DeleteError struct {
	Ref string
	Err error
}

func (e *DeleteError) Error() string {
	return fmt.Sprintf("delete %s: %v", e.Ref, e.Err)
}

func (e *DeleteError) Unwrap() error { return e.Err }

// SwitchError reports that checking out another branch failed. It aborts the
// batch that needed the switch.
type SwitchError struct {
	Target string
	Err    error
}

func (e *SwitchError) Error() string {
	return fmt.Sprintf("switch to %s: %v", e.Target, e.Err)
}

func (e *SwitchError) Unwrap() error { return e.Err }

// Result is the outcome for one branch of a batch. Err is a *DeleteError or nil.
type Result struct {
	Ref string
	Err error
}

// Failed counts results with an error.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// Executor applies confirmed deletions and branch switches.
type Executor struct {
	Mutator Mutator
	Base    string // branch to switch to before deleting the current one
	Current string // currently checked-out branch, empty when detached
	// Progress, when set, is called before each deletion attempt.
	Progress func(ref string)
}

func (e *Executor) progress(ref string) {
	if e.Progress != nil {
		e.Progress(ref)
	}
}

func (e *Executor) isBase(name string) bool {
	return name == e.Base || slices.Contains(BaseNames, name)
}

// SwitchTo checks out name and records it as the current branch.
func (e *Executor) SwitchTo(ctx context.Context, name string) error {
	if err := e.Mutator.SwitchTo(ctx, name); err != nil {
		return &SwitchError{Target: name, Err: err}
	}
	e.Current = name
	return nil
}

// DeleteLocal force-deletes local branches. If the current branch is among
// them, the executor first switches to the base branch; when that fails no
// branch is deleted and a *SwitchError is returned.
func (e *Executor) DeleteLocal(ctx context.Context, names []string) ([]Result, error) {
	l := log.FromContext(ctx)

	if e.Current != "" && e.Current != e.Base {
		for _, name := range names {
			if name != e.Current {
				continue
			}
			l.Debug("switching away from branch to delete", "from", e.Current, "to", e.Base)
			if err := e.SwitchTo(ctx, e.Base); err != nil {
				return nil, err
			}
			break
		}
	}

	results := make([]Result, 0, len(names))
	for _, name := range names {
		if e.isBase(name) {
			results = append(results, Result{Ref: name, Err: &DeleteError{Ref: name, Err: ErrBaseBranch}})
			continue
		}
		l.Debug("deleting local branch", "branch", name)
		e.progress(name)
		var err error
		if derr := e.Mutator.DeleteLocalBranch(ctx, name); derr != nil {
			err = &DeleteError{Ref: name, Err: derr}
		}
		results = append(results, Result{Ref: name, Err: err})
	}
	return results, nil
}

// DeleteRemote deletes branches on their remotes. It never touches local
// branches.
func (e *Executor) DeleteRemote(ctx context.Context, records []Record) []Result {
	l := log.FromContext(ctx)

	results := make([]Result, 0, len(records))
	for _, r := range records {
		if e.isBase(r.Name) {
			results = append(results, Result{Ref: r.Ref(), Err: &DeleteError{Ref: r.Ref(), Err: ErrBaseBranch}})
			continue
		}
		l.Debug("deleting remote branch", "remote", r.Remote, "branch", r.Name)
		e.progress(r.Ref())
		var err error
		if derr := e.Mutator.DeleteRemoteBranch(ctx, r.Remote, r.Name); derr != nil {
			err = &DeleteError{Ref: r.Ref(), Err: derr}
		}
		results = append(results, Result{Ref: r.Ref(), Err: err})
	}
	return results
}
