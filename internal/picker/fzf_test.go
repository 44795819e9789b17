package picker

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestFzfArgs(t *testing.T) {
	t.Parallel()

	f := &Fzf{Exe: "/opt/my bin/gpick", Opts: []string{"--height=40%"}}
	args := f.args(Menu{
		Entries: []Entry{
			{Key: "a", Display: "a"},
			{Key: "b", Display: "b", Preselected: true},
			{Key: "c", Display: "c", Preselected: true},
		},
		Multi:   true,
		Query:   "fe",
		Header:  "pick",
		Preview: "branch",
		Keys:    []string{"ctrl-d", "ctrl-t"},
	})

	for _, want := range []string{
		"--multi",
		"--print-query",
		"--expect=ctrl-d,ctrl-t",
		"--query=fe",
		"--header=pick",
		"--with-nth=3..",
		"--bind=start:pos(2)+toggle+pos(3)+toggle+first",
		"--preview='/opt/my bin/gpick' preview branch {2}",
	} {
		if !slices.Contains(args, want) {
			t.Errorf("args missing %q: %v", want, args)
		}
	}
	if args[len(args)-1] != "--height=40%" {
		t.Errorf("configured opts not last: %v", args)
	}
}

func TestFzfArgs_Single(t *testing.T) {
	t.Parallel()

	args := (&Fzf{}).args(Menu{Entries: []Entry{{Key: "a", Display: "a", Preselected: true}}})
	for _, a := range args {
		if a == "--multi" || strings.HasPrefix(a, "--bind=") || strings.HasPrefix(a, "--preview") || strings.HasPrefix(a, "--query") {
			t.Errorf("unexpected arg %q in single mode", a)
		}
	}
}

func TestFzfArgs_NoKeys(t *testing.T) {
	t.Parallel()

	args := (&Fzf{}).args(Menu{Entries: []Entry{{Key: "a", Display: "a"}}})
	for _, a := range args {
		if strings.HasPrefix(a, "--expect") {
			t.Errorf("unexpected %q without keys: %v", a, args)
		}
	}
	if !slices.Contains(args, "--print-query") {
		t.Errorf("args missing --print-query: %v", args)
	}
}

func TestMenuLines(t *testing.T) {
	t.Parallel()

	got := menuLines([]Entry{
		{Key: "feature/a", Display: "merged  feature/a"},
		{Key: "odd\tkey", Display: "two\nlines"},
		{Display: AbortLabel},
	})
	want := "0\tfeature/a\tmerged  feature/a\n1\todd key\ttwo lines\n2\t\tAbort\n"
	if got != want {
		t.Errorf("menuLines() = %q, want %q", got, want)
	}
}

func TestParseFzfOutput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		out     string
		withKey bool
		want    Selection
		wantErr bool
	}{
		{"enter", "fe\n\n0\tfeature/a\tx\n", true, Selection{Query: "fe", Indices: []int{0}}, false},
		{"expect key multi", "\nctrl-d\n1\tb\tb\n4\te\te\n", true, Selection{Key: "ctrl-d", Indices: []int{1, 4}}, false},
		{"key without match", "zz\nctrl-t\n", true, Selection{Query: "zz", Key: "ctrl-t"}, false},
		{"no key line", "fe\n0\tfeature/a\tx\n", false, Selection{Query: "fe", Indices: []int{0}}, false},
		{"no key line multi", "\n2\tc\tc\n3\td\td\n", false, Selection{Indices: []int{2, 3}}, false},
		{"empty", "", true, Selection{}, false},
		{"garbage", "\n\nnot-an-index\n", true, Selection{}, true},
		{"garbage without key", "q\nnot-an-index\n", false, Selection{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseFzfOutput(tt.out, tt.withKey)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseFzfOutput() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got.Query != tt.want.Query || got.Key != tt.want.Key || !slices.Equal(got.Indices, tt.want.Indices) {
				t.Errorf("parseFzfOutput() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestShellQuote(t *testing.T) {
	t.Parallel()

	if got := shellQuote("it's"); got != `'it'\''s'` {
		t.Errorf("shellQuote = %q", got)
	}
}

// fakeFzf writes a shell script standing in for fzf.
func fakeFzf(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fzf")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFzfSelect(t *testing.T) {
	t.Parallel()

	entries := []Entry{
		{Key: "a", Display: "alpha"},
		{Key: "b", Display: "beta"},
	}

	tests := []struct {
		name    string
		keys    []string
		script  string
		want    Selection
		wantErr bool
	}{
		{
			name:   "reads menu from stdin",
			keys:   []string{"ctrl-d"},
			script: `grep beta | { read -r line; printf 'be\nctrl-d\n%s\n' "$line"; }`,
			want:   Selection{Query: "be", Key: "ctrl-d", Indices: []int{1}},
		},
		{
			name:   "without keys",
			script: `case "$*" in *--expect*) exit 2;; esac; grep alpha | { read -r line; printf 'al\n%s\n' "$line"; }`,
			want:   Selection{Query: "al", Indices: []int{0}},
		},
		{
			name:   "interrupted",
			script: "exit 130",
			want:   Selection{Cancelled: true, Interrupted: true},
		},
		{
			name:   "no match",
			script: `printf 'zzz\n\n'; exit 1`,
			want:   Selection{Cancelled: true, Query: "zzz"},
		},
		{
			name:    "failure",
			script:  "exit 2",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			scratchParent := t.TempDir()
			f := &Fzf{Bin: fakeFzf(t, tt.script), TempDir: scratchParent}

			got, err := f.Select(context.Background(), Menu{Entries: entries, Keys: tt.keys})
			if (err != nil) != tt.wantErr {
				t.Fatalf("Select() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got.Query != tt.want.Query || got.Key != tt.want.Key ||
				got.Cancelled != tt.want.Cancelled || got.Interrupted != tt.want.Interrupted ||
				!slices.Equal(got.Indices, tt.want.Indices) {
				t.Errorf("Select() = %+v, want %+v", got, tt.want)
			}

			left, err := os.ReadDir(scratchParent)
			if err != nil {
				t.Fatal(err)
			}
			if len(left) != 0 {
				t.Errorf("scratch dir not removed: %v", left)
			}
		})
	}
}
