package git

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	gitlib "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// ErrNoBaseBranch is returned when neither main nor master exists locally.
var ErrNoBaseBranch = errors.New("no base branch: neither main nor master exists")

// Repo is an open repository. All queries and mutations go through it.
type Repo struct {
	repo *gitlib.Repository
	dir  string // work tree root
}

// Open opens the repository containing dir. It fails with ErrNotARepository
// when dir is not inside a work tree.
func Open(ctx context.Context, dir string) (*Repo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	repo, err := gitlib.PlainOpenWithOptions(abs, &gitlib.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		if errors.Is(err, gitlib.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", ErrNotARepository, abs)
		}
		return nil, fmt.Errorf("open repository: %w", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		// bare repositories have no work tree to switch branches in
		return nil, fmt.Errorf("%w: %s has no work tree", ErrNotARepository, abs)
	}
	return &Repo{repo: repo, dir: wt.Filesystem.Root()}, nil
}

// Dir returns the work tree root.
func (r *Repo) Dir() string {
	return r.dir
}

// RefExists reports whether the fully qualified ref (e.g. refs/heads/main) exists.
func (r *Repo) RefExists(ctx context.Context, ref string) bool {
	if ctx.Err() != nil {
		return false
	}
	_, err := r.repo.Reference(plumbing.ReferenceName(ref), false)
	return err == nil
}

// BaseBranch returns "main" if it exists locally, else "master".
func (r *Repo) BaseBranch(ctx context.Context) (string, error) {
	for _, name := range []string{"main", "master"} {
		if r.RefExists(ctx, plumbing.NewBranchReferenceName(name).String()) {
			return name, nil
		}
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return "", ErrNoBaseBranch
}

// CurrentBranch returns the checked-out branch name, or "" for a detached
// HEAD. An unborn branch (no commits yet) is still reported by name.
func (r *Repo) CurrentBranch(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	head, err := r.repo.Reference(plumbing.HEAD, false)
	if err != nil {
		return "", fmt.Errorf("failed to read HEAD: %w", err)
	}
	if head.Type() == plumbing.SymbolicReference && head.Target().IsBranch() {
		return head.Target().Short(), nil
	}
	return "", nil
}

// Upstream returns the configured upstream of a local branch as remote and
// branch name. ok is false when none is configured.
func (r *Repo) Upstream(name string) (remote, merge string, ok bool) {
	cfg, err := r.repo.Config()
	if err != nil {
		return "", "", false
	}
	b, found := cfg.Branches[name]
	if !found || b.Remote == "" || b.Merge == "" {
		return "", "", false
	}
	return b.Remote, b.Merge.Short(), true
}

// OriginURL returns the first URL of the origin remote.
func (r *Repo) OriginURL() (string, error) {
	remote, err := r.repo.Remote("origin")
	if err != nil {
		return "", fmt.Errorf("no origin remote: %w", err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("origin remote has no URL")
	}
	return urls[0], nil
}

// CompareURL builds the web URL for opening a pull request from branch
// against base. Only GitHub-style hosts are recognised.
func CompareURL(originURL, base, branch string) (string, error) {
	u := strings.TrimSuffix(strings.TrimSpace(originURL), ".git")
	switch {
	case strings.HasPrefix(u, "git@"):
		// git@github.com:owner/repo
		host, path, found := strings.Cut(strings.TrimPrefix(u, "git@"), ":")
		if !found {
			return "", fmt.Errorf("unrecognised remote URL %q", originURL)
		}
		u = "https://" + host + "/" + path
	case strings.HasPrefix(u, "ssh://"):
		u = "https://" + strings.TrimPrefix(strings.TrimPrefix(u, "ssh://"), "git@")
	case strings.HasPrefix(u, "https://"), strings.HasPrefix(u, "http://"):
	default:
		return "", fmt.Errorf("unrecognised remote URL %q", originURL)
	}
	return fmt.Sprintf("%s/compare/%s...%s?expand=1", u, base, branch), nil
}
