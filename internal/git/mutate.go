package git

import (
	"context"
	"fmt"
)

// SwitchTo checks out an existing local branch.
func (r *Repo) SwitchTo(ctx context.Context, name string) error {
	if err := runGit(ctx, r.dir, "switch", name); err != nil {
		return fmt.Errorf("failed to switch to %s: %w", name, err)
	}
	return nil
}

// DeleteLocalBranch force-deletes a local branch, unmerged work included.
func (r *Repo) DeleteLocalBranch(ctx context.Context, name string) error {
	return runGit(ctx, r.dir, "branch", "-D", name)
}

// DeleteRemoteBranch deletes a branch on the remote.
func (r *Repo) DeleteRemoteBranch(ctx context.Context, remote, name string) error {
	return runGit(ctx, r.dir, "push", remote, "--delete", name)
}

// CreateBranch creates name from start point and checks it out.
func (r *Repo) CreateBranch(ctx context.Context, name, from string) error {
	args := []string{"switch", "-c", name}
	if from != "" {
		args = append(args, from)
	}
	if err := runGit(ctx, r.dir, args...); err != nil {
		return fmt.Errorf("failed to create branch %s: %w", name, err)
	}
	return nil
}

// TrackRemote checks out a remote branch. An existing local branch of the
// same name is switched to instead of created.
func (r *Repo) TrackRemote(ctx context.Context, remote, name string) error {
	if r.RefExists(ctx, "refs/heads/"+name) {
		return r.SwitchTo(ctx, name)
	}
	if err := runGit(ctx, r.dir, "switch", "--track", remote+"/"+name); err != nil {
		return fmt.Errorf("failed to check out %s/%s: %w", remote, name, err)
	}
	return nil
}

// PushWithTracking pushes name to remote and sets it as upstream.
func (r *Repo) PushWithTracking(ctx context.Context, remote, name string) error {
	if err := runGit(ctx, r.dir, "push", "--set-upstream", remote, name); err != nil {
		return fmt.Errorf("failed to push %s: %w", name, err)
	}
	return nil
}

// Stage adds the given paths to the index, recording deletions too.
func (r *Repo) Stage(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	return runGit(ctx, r.dir, append([]string{"add", "-A", "--"}, paths...)...)
}

// StageAll stages every change in the work tree.
func (r *Repo) StageAll(ctx context.Context) error {
	return runGit(ctx, r.dir, "add", "-A")
}

// Unstage removes the given paths from the index, keeping work tree changes.
func (r *Repo) Unstage(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	if _, err := r.repo.Head(); err != nil {
		// no commit yet: nothing to restore from
		return runGit(ctx, r.dir, append([]string{"rm", "--cached", "-r", "-q", "--"}, paths...)...)
	}
	return runGit(ctx, r.dir, append([]string{"restore", "--staged", "--"}, paths...)...)
}

// Commit records the index with message.
func (r *Repo) Commit(ctx context.Context, message string) error {
	if err := runGit(ctx, r.dir, "commit", "-m", message); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}
