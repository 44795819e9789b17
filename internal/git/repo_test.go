package git

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	gitlib "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// resolveTempDir creates a temp directory and resolves macOS symlinks.
func resolveTempDir(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	resolved, err := filepath.EvalSymlinks(tmpDir)
	if err != nil {
		t.Fatalf("failed to resolve symlinks for %s: %v", tmpDir, err)
	}
	return resolved
}

// configureTestRepo sets git user config and disables GPG signing.
func configureTestRepo(t *testing.T, repoPath string) {
	t.Helper()
	ctx := context.Background()
	for _, args := range [][]string{
		{"config", "user.email", "test@test.com"},
		{"config", "user.name", "Test User"},
		{"config", "commit.gpgsign", "false"},
	} {
		if err := runGit(ctx, repoPath, args...); err != nil {
			t.Fatalf("failed to run git %v: %v", args, err)
		}
	}
}

// setupTestRepo creates a git repo with main branch, initial commit, and git config.
// Returns the resolved repo path.
func setupTestRepo(t *testing.T) string {
	t.Helper()
	return setupTestRepoOn(t, "main")
}

func setupTestRepoOn(t *testing.T, initial string) string {
	t.Helper()
	tmpDir := resolveTempDir(t)
	repoPath := filepath.Join(tmpDir, "test-repo")

	ctx := context.Background()
	if err := runGit(ctx, "", "init", "-b", initial, repoPath); err != nil {
		t.Fatalf("failed to init repo: %v", err)
	}

	configureTestRepo(t, repoPath)

	// Create initial commit
	readme := filepath.Join(repoPath, "README.md")
	if err := os.WriteFile(readme, []byte("# test\n"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	mustGit(t, repoPath, "add", "README.md")
	mustGit(t, repoPath, "commit", "-m", "Initial commit")

	return repoPath
}

// setupTestRepoWithOrigin creates a repo with a bare origin remote that has
// main pushed. Returns (repoPath, originPath).
func setupTestRepoWithOrigin(t *testing.T) (string, string) {
	t.Helper()
	repoPath := setupTestRepo(t)
	originPath := filepath.Join(filepath.Dir(repoPath), "origin.git")

	mustGit(t, "", "init", "--bare", "-b", "main", originPath)
	mustGit(t, repoPath, "remote", "add", "origin", originPath)
	mustGit(t, repoPath, "push", "-u", "origin", "main")
	return repoPath, originPath
}

func mustGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	if err := runGit(context.Background(), dir, args...); err != nil {
		t.Fatalf("git %v: %v", args, err)
	}
}

// commitAt writes file and commits it with author and committer set to when.
// go-git is used because the git CLI only takes the committer date from the
// environment.
func commitAt(t *testing.T, r *Repo, file string, when time.Time) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(r.Dir(), file), []byte(when.String()+"\n"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	wt, err := r.repo.Worktree()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := wt.Add(file); err != nil {
		t.Fatalf("add %s: %v", file, err)
	}
	sig := &object.Signature{Name: "Ada", Email: "ada@example.com", When: when}
	if _, err := wt.Commit("change "+file, &gitlib.CommitOptions{Author: sig, Committer: sig}); err != nil {
		t.Fatalf("commit %s: %v", file, err)
	}
}

func openRepo(t *testing.T, dir string) *Repo {
	t.Helper()
	r, err := Open(context.Background(), dir)
	if err != nil {
		t.Fatalf("Open(%s) error = %v", dir, err)
	}
	return r
}

func TestOpen_NotARepository(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), resolveTempDir(t))
	if !errors.Is(err, ErrNotARepository) {
		t.Errorf("Open() error = %v, want ErrNotARepository", err)
	}
}

func TestOpen_FromSubdirectory(t *testing.T) {
	t.Parallel()

	repoPath := setupTestRepo(t)
	sub := filepath.Join(repoPath, "a", "b")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}

	r := openRepo(t, sub)
	if r.Dir() != repoPath {
		t.Errorf("Dir() = %q, want %q", r.Dir(), repoPath)
	}
}

func TestBaseBranch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		initial string
		want    string
		wantErr error
	}{
		{"main", "main", nil},
		{"master", "master", nil},
		{"trunk", "", ErrNoBaseBranch},
	}
	for _, tt := range tests {
		t.Run(tt.initial, func(t *testing.T) {
			t.Parallel()

			r := openRepo(t, setupTestRepoOn(t, tt.initial))
			got, err := r.BaseBranch(context.Background())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("BaseBranch() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("BaseBranch() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBaseBranch_PrefersMain(t *testing.T) {
	t.Parallel()

	repoPath := setupTestRepoOn(t, "master")
	mustGit(t, repoPath, "branch", "main")

	got, err := openRepo(t, repoPath).BaseBranch(context.Background())
	if err != nil || got != "main" {
		t.Errorf("BaseBranch() = %q, %v; want main", got, err)
	}
}

func TestCurrentBranch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repoPath := setupTestRepo(t)
	r := openRepo(t, repoPath)

	if got, _ := r.CurrentBranch(ctx); got != "main" {
		t.Errorf("CurrentBranch() = %q, want main", got)
	}

	if err := r.CreateBranch(ctx, "feature/x", "main"); err != nil {
		t.Fatal(err)
	}
	if got, _ := r.CurrentBranch(ctx); got != "feature/x" {
		t.Errorf("CurrentBranch() after create = %q, want feature/x", got)
	}

	mustGit(t, repoPath, "switch", "--detach", "main")
	if got, _ := r.CurrentBranch(ctx); got != "" {
		t.Errorf("CurrentBranch() detached = %q, want empty", got)
	}
}

func TestUpstreamAndOriginURL(t *testing.T) {
	t.Parallel()

	repoPath, originPath := setupTestRepoWithOrigin(t)
	r := openRepo(t, repoPath)

	remote, merge, ok := r.Upstream("main")
	if !ok || remote != "origin" || merge != "main" {
		t.Errorf("Upstream(main) = %q, %q, %v", remote, merge, ok)
	}
	if _, _, ok := r.Upstream("nope"); ok {
		t.Error("Upstream(nope) reported an upstream")
	}

	url, err := r.OriginURL()
	if err != nil || url != originPath {
		t.Errorf("OriginURL() = %q, %v; want %q", url, err, originPath)
	}
}

func TestCompareURL(t *testing.T) {
	t.Parallel()

	want := "https://github.com/acme/app/compare/main...feature/x?expand=1"
	tests := []struct {
		url     string
		want    string
		wantErr bool
	}{
		{"git@github.com:acme/app.git", want, false},
		{"https://github.com/acme/app.git", want, false},
		{"https://github.com/acme/app", want, false},
		{"ssh://git@github.com/acme/app.git", want, false},
		{"/tmp/origin.git", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			t.Parallel()
			got, err := CompareURL(tt.url, "main", "feature/x")
			if (err != nil) != tt.wantErr {
				t.Fatalf("CompareURL() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("CompareURL() = %q, want %q", got, tt.want)
			}
		})
	}
}
