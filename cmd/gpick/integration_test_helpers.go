//go:build integration

package main

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/raphi011/gpick/internal/config"
	"github.com/raphi011/gpick/internal/git"
	"github.com/raphi011/gpick/internal/log"
	"github.com/raphi011/gpick/internal/output"
)

// resolvePath resolves symlinks in a path.
// This is needed on macOS where /var is a symlink to /private/var.
func resolvePath(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("failed to resolve path %s: %v", path, err)
	}
	return resolved
}

// setupTestRepo creates a git repo on main with an initial commit in dir/name.
func setupTestRepo(t *testing.T, dir, name string) string {
	t.Helper()

	dir = resolvePath(t, dir)
	repoPath := filepath.Join(dir, name)
	if err := os.MkdirAll(repoPath, 0755); err != nil {
		t.Fatalf("failed to create repo dir: %v", err)
	}

	runGitCommand(t, repoPath, "git", "init", "-b", "main")
	runGitCommand(t, repoPath, "git", "config", "user.email", "test@test.com")
	runGitCommand(t, repoPath, "git", "config", "user.name", "Test User")
	runGitCommand(t, repoPath, "git", "config", "commit.gpgsign", "false")

	readmePath := filepath.Join(repoPath, "README.md")
	if err := os.WriteFile(readmePath, []byte("# "+name+"\n"), 0644); err != nil {
		t.Fatalf("failed to write README: %v", err)
	}
	runGitCommand(t, repoPath, "git", "add", "README.md")
	runGitCommand(t, repoPath, "git", "commit", "-m", "Initial commit")

	return repoPath
}

// setupTestRepoWithLocalOrigin creates a repo whose origin is a bare repo
// next to it, with main pushed.
func setupTestRepoWithLocalOrigin(t *testing.T, dir, name string) string {
	t.Helper()

	repoPath := setupTestRepo(t, dir, name)
	barePath := filepath.Join(filepath.Dir(repoPath), name+".git")
	runGitCommand(t, filepath.Dir(repoPath), "git", "init", "--bare", "-b", "main", barePath)
	runGitCommand(t, repoPath, "git", "remote", "add", "origin", barePath)
	runGitCommand(t, repoPath, "git", "push", "-u", "origin", "main")

	return repoPath
}

// runGitCommand runs a git command and returns output
func runGitCommand(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to run %v: %v\n%s", args, err, out)
	}
	return string(out)
}

// makeBranchWithDate creates branch from main with one commit dated date
// (RFC 3339) and returns to main.
func makeBranchWithDate(t *testing.T, repoPath, branch, date string) {
	t.Helper()

	runGitCommand(t, repoPath, "git", "checkout", "-b", branch, "main")
	filename := strings.ReplaceAll(branch, "/", "-") + ".txt"
	if err := os.WriteFile(filepath.Join(repoPath, filename), []byte("content for "+branch+"\n"), 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	runGitCommand(t, repoPath, "git", "add", filename)

	cmd := exec.Command("git", "commit", "-m", "Add "+filename, "--date", date)
	cmd.Dir = repoPath
	cmd.Env = append(os.Environ(), "GIT_COMMITTER_DATE="+date)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to run git commit: %v\n%s", err, out)
	}
	runGitCommand(t, repoPath, "git", "checkout", "main")
}

// branchExists reports whether a local branch exists.
func branchExists(t *testing.T, repoPath, branch string) bool {
	t.Helper()
	out := runGitCommand(t, repoPath, "git", "branch", "--list", branch)
	return strings.TrimSpace(out) != ""
}

// testEnv bundles what a command run needs: the repo, a default config, and
// buffers for stdout and diagnostics.
type testEnv struct {
	repo   *git.Repo
	cfg    *config.Config
	stdout bytes.Buffer
	logs   bytes.Buffer
}

func newTestEnv(t *testing.T, repoPath string) *testEnv {
	t.Helper()
	repo, err := git.Open(context.Background(), repoPath)
	if err != nil {
		t.Fatalf("git.Open(%s) error = %v", repoPath, err)
	}
	c := config.Default()
	return &testEnv{repo: repo, cfg: &c}
}

// ctx returns a context carrying the env's printer and logger.
func (e *testEnv) ctx() context.Context {
	ctx := output.WithPrinter(context.Background(), &e.stdout)
	return log.WithLogger(ctx, log.New(&e.logs, false, false))
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}
