package git

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    []FileStatus
		wantErr bool
	}{
		{
			name:  "empty",
			input: "",
		},
		{
			name:  "modified staged and unstaged",
			input: "M  a.go\x00 M b.go\x00MM c.go\x00",
			want: []FileStatus{
				{Path: "a.go", Index: 'M', Worktree: ' '},
				{Path: "b.go", Index: ' ', Worktree: 'M'},
				{Path: "c.go", Index: 'M', Worktree: 'M'},
			},
		},
		{
			name:  "rename carries source path",
			input: "R  new name.go\x00old.go\x00?? notes.txt\x00",
			want: []FileStatus{
				{Path: "new name.go", OrigPath: "old.go", Index: 'R', Worktree: ' '},
				{Path: "notes.txt", Index: '?', Worktree: '?'},
			},
		},
		{
			name:    "truncated rename",
			input:   "R  new.go",
			wantErr: true,
		},
		{
			name:    "garbage",
			input:   "xx\x00",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseStatus([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseStatus() error = %v, wantErr %v", err, tt.wantErr)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("parseStatus() = %+v, want %+v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFileStatus_Predicates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code                        string
		staged, unstaged, untracked bool
	}{
		{"M ", true, false, false},
		{" M", false, true, false},
		{"MM", true, true, false},
		{"A ", true, false, false},
		{" D", false, true, false},
		{"??", false, false, true},
	}
	for _, tt := range tests {
		f := FileStatus{Index: tt.code[0], Worktree: tt.code[1]}
		if f.Code() != tt.code {
			t.Errorf("Code() = %q, want %q", f.Code(), tt.code)
		}
		if f.Staged() != tt.staged || f.Unstaged() != tt.unstaged || f.Untracked() != tt.untracked {
			t.Errorf("%q: staged=%v unstaged=%v untracked=%v", tt.code, f.Staged(), f.Unstaged(), f.Untracked())
		}
	}
}

func TestStatus_StageUnstageCommit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repoPath := setupTestRepo(t)
	r := openRepo(t, repoPath)

	if err := os.WriteFile(filepath.Join(repoPath, "README.md"), []byte("# changed\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(repoPath, "new.txt"), []byte("new\n"), 0644); err != nil {
		t.Fatal(err)
	}

	files, err := r.Status(ctx)
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	codes := map[string]string{}
	for _, f := range files {
		codes[f.Path] = f.Code()
	}
	if codes["README.md"] != " M" || codes["new.txt"] != "??" {
		t.Fatalf("Status() = %v", codes)
	}

	if err := r.Stage(ctx, "README.md", "new.txt"); err != nil {
		t.Fatalf("Stage() error = %v", err)
	}
	if err := r.Unstage(ctx, "new.txt"); err != nil {
		t.Fatalf("Unstage() error = %v", err)
	}

	files, _ = r.Status(ctx)
	codes = map[string]string{}
	for _, f := range files {
		codes[f.Path] = f.Code()
	}
	if codes["README.md"] != "M " || codes["new.txt"] != "??" {
		t.Fatalf("Status() after stage/unstage = %v", codes)
	}

	diff, err := r.FileDiff(ctx, "README.md", true)
	if err != nil {
		t.Fatalf("FileDiff() error = %v", err)
	}
	if want := "+# changed"; !strings.Contains(diff, want) {
		t.Errorf("FileDiff() missing %q:\n%s", want, diff)
	}

	if err := r.Commit(ctx, "update readme"); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	commits, err := r.BranchLog(ctx, "main", 10)
	if err != nil {
		t.Fatalf("BranchLog() error = %v", err)
	}
	if len(commits) != 2 || commits[0].Subject != "update readme" {
		t.Errorf("BranchLog() = %+v", commits)
	}
}

func TestBranchLog_Limit(t *testing.T) {
	t.Parallel()

	repoPath := setupTestRepo(t)
	mustGit(t, repoPath, "commit", "--allow-empty", "-m", "second")
	mustGit(t, repoPath, "commit", "--allow-empty", "-m", "third\n\nbody")

	commits, err := openRepo(t, repoPath).BranchLog(context.Background(), "main", 2)
	if err != nil {
		t.Fatalf("BranchLog() error = %v", err)
	}
	if len(commits) != 2 {
		t.Fatalf("len = %d, want 2", len(commits))
	}
	if commits[0].Subject != "third" || len(commits[0].Hash) != 7 {
		t.Errorf("commits[0] = %+v", commits[0])
	}
}
