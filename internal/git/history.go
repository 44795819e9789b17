package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	gitlib "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Commit is a summary line of the branch log.
type Commit struct {
	Hash     string // abbreviated
	Subject  string
	Author   string
	Relative string
}

// BranchLog returns up to limit commits reachable from ref, newest first.
// ref may be a local branch, a remote ref like origin/main, or any revision
// go-git can resolve.
func (r *Repo) BranchLog(ctx context.Context, ref string, limit int) ([]Commit, error) {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return nil, fmt.Errorf("unknown revision %s: %w", ref, err)
	}
	iter, err := r.repo.Log(&gitlib.LogOptions{From: *hash, Order: gitlib.LogOrderCommitterTime})
	if err != nil {
		return nil, fmt.Errorf("failed to read log of %s: %w", ref, err)
	}
	defer iter.Close()

	var commits []Commit
	for len(commits) < limit {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c, err := iter.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		commits = append(commits, summarize(c))
	}
	return commits, nil
}

func summarize(c *object.Commit) Commit {
	subject := c.Message
	for i, ch := range subject {
		if ch == '\n' {
			subject = subject[:i]
			break
		}
	}
	return Commit{
		Hash:     c.Hash.String()[:7],
		Subject:  subject,
		Author:   c.Author.Name,
		Relative: relativeTime(c.Committer.When),
	}
}

// FileDiff returns the diff of one path. staged selects the index against
// HEAD instead of the work tree against the index.
func (r *Repo) FileDiff(ctx context.Context, path string, staged bool) (string, error) {
	args := []string{"diff", "--color=never"}
	if staged {
		args = append(args, "--cached")
	}
	args = append(args, "--", path)
	out, err := outputGit(ctx, r.dir, args...)
	if err != nil {
		return "", fmt.Errorf("failed to diff %s: %w", path, err)
	}
	return string(out), nil
}

// ReadFile returns the work tree content of path.
func (r *Repo) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(filepath.Join(r.dir, path))
}
