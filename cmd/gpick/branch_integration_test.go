//go:build integration

package main

import (
	"strings"
	"testing"
	"time"

	"github.com/raphi011/gpick/internal/branch"
	"github.com/raphi011/gpick/internal/preview"
)

func TestBranch_SingleMatchSwitchesWithoutPicker(t *testing.T) {
	t.Parallel()
	repoPath := setupTestRepo(t, t.TempDir(), "myrepo")
	now := time.Now().Format(time.RFC3339)
	makeBranchWithDate(t, repoPath, "feature/login", now)
	makeBranchWithDate(t, repoPath, "feature/logout", now)
	env := newTestEnv(t, repoPath)
	ctx := env.ctx()

	records, err := env.repo.ListBranches(ctx, branch.Local)
	if err != nil {
		t.Fatal(err)
	}
	if err := pickBranch(ctx, env.repo, env.cfg, records, branch.Local, "login"); err != nil {
		t.Fatalf("pickBranch() error = %v", err)
	}

	if got := strings.TrimSpace(runGitCommand(t, repoPath, "git", "branch", "--show-current")); got != "feature/login" {
		t.Errorf("current branch = %q, want feature/login", got)
	}
	if !strings.Contains(env.stdout.String(), "Switched to feature/login") {
		t.Errorf("stdout = %q", env.stdout.String())
	}
}

func TestBranch_SingleMatchAlreadyCurrent(t *testing.T) {
	t.Parallel()
	repoPath := setupTestRepo(t, t.TempDir(), "myrepo")
	env := newTestEnv(t, repoPath)
	ctx := env.ctx()

	records, err := env.repo.ListBranches(ctx, branch.Local)
	if err != nil {
		t.Fatal(err)
	}
	if err := pickBranch(ctx, env.repo, env.cfg, records, branch.Local, "main"); err != nil {
		t.Fatalf("pickBranch() error = %v", err)
	}
	if !strings.Contains(env.stdout.String(), "Already on main") {
		t.Errorf("stdout = %q", env.stdout.String())
	}
}

func TestBranch_CreateWithPrefix(t *testing.T) {
	t.Parallel()
	repoPath := setupTestRepo(t, t.TempDir(), "myrepo")
	env := newTestEnv(t, repoPath)
	env.cfg.Branch.Prefix = "rb/"

	if err := createBranch(env.ctx(), env.repo, env.cfg, "fix-x"); err != nil {
		t.Fatalf("createBranch() error = %v", err)
	}
	if got := strings.TrimSpace(runGitCommand(t, repoPath, "git", "branch", "--show-current")); got != "rb/fix-x" {
		t.Errorf("current branch = %q, want rb/fix-x", got)
	}
}

func TestSweep_JSON_ListsOnlyStale(t *testing.T) {
	t.Parallel()
	repoPath := setupTestRepoWithLocalOrigin(t, t.TempDir(), "myrepo")
	makeBranchWithDate(t, repoPath, "feature/ancient", "2020-01-15T12:00:00Z")
	makeBranchWithDate(t, repoPath, "feature/fresh", time.Now().Format(time.RFC3339))
	runGitCommand(t, repoPath, "git", "push", "origin", "feature/ancient", "feature/fresh")
	env := newTestEnv(t, repoPath)

	if err := runSweep(env.ctx(), env.repo, env.cfg, true, false, true); err != nil {
		t.Fatalf("runSweep() error = %v", err)
	}
	out := env.stdout.String()
	if !strings.Contains(out, "feature/ancient") {
		t.Errorf("stdout missing stale branch:\n%s", out)
	}
	if strings.Contains(out, "feature/fresh") || strings.Contains(out, `/main"`) {
		t.Errorf("stdout lists non-stale branches:\n%s", out)
	}
}

func TestSweep_DryRunKeepsRemote(t *testing.T) {
	t.Parallel()
	repoPath := setupTestRepoWithLocalOrigin(t, t.TempDir(), "myrepo")
	makeBranchWithDate(t, repoPath, "feature/ancient", "2020-01-15T12:00:00Z")
	runGitCommand(t, repoPath, "git", "push", "origin", "feature/ancient")
	env := newTestEnv(t, repoPath)

	if err := runSweep(env.ctx(), env.repo, env.cfg, false, true, true); err != nil {
		t.Fatalf("runSweep() error = %v", err)
	}
	if !strings.Contains(env.stdout.String(), "Would delete 1 branch on origin") {
		t.Errorf("stdout = %q", env.stdout.String())
	}
	out := runGitCommand(t, repoPath, "git", "ls-remote", "--heads", "origin", "feature/ancient")
	if strings.TrimSpace(out) == "" {
		t.Errorf("dry run deleted the remote branch")
	}
}

func TestRenderPreview(t *testing.T) {
	t.Parallel()
	repoPath := setupTestRepo(t, t.TempDir(), "myrepo")
	writeFile(t, repoPath, "notes.txt", "hello preview\n")
	env := newTestEnv(t, repoPath)
	ctx := env.ctx()
	h := preview.New(true, true)

	tests := []struct {
		kind, key string
		want      []string
	}{
		{"branch", "main", []string{"Initial commit", "Test User"}},
		{"file", "notes.txt", []string{"untracked", "hello preview"}},
	}
	for _, tt := range tests {
		got, err := renderPreview(ctx, env.repo, h, tt.kind, tt.key)
		if err != nil {
			t.Fatalf("renderPreview(%s, %s) error = %v", tt.kind, tt.key, err)
		}
		for _, w := range tt.want {
			if !strings.Contains(got, w) {
				t.Errorf("renderPreview(%s, %s) = %q, want it to contain %q", tt.kind, tt.key, got, w)
			}
		}
	}
}
