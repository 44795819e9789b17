package git

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Stash is one entry of the stash list.
type Stash struct {
	Ref      string // stash@{N}
	Epoch    int64
	Relative string
	Message  string
}

// Stashes lists stash entries, newest first.
func (r *Repo) Stashes(ctx context.Context) ([]Stash, error) {
	out, err := outputGit(ctx, r.dir, "stash", "list", "--format=%gd%x1f%ct%x1f%gs")
	if err != nil {
		return nil, fmt.Errorf("failed to list stashes: %w", err)
	}
	return parseStashes(string(out))
}

func parseStashes(out string) ([]Stash, error) {
	var stashes []Stash
	for _, line := range strings.Split(out, "\n") {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "\x1f", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("malformed stash entry %q", line)
		}
		s := Stash{Ref: parts[0], Message: parts[2]}
		if epoch, err := strconv.ParseInt(parts[1], 10, 64); err == nil {
			s.Epoch = epoch
			s.Relative = relativeTime(time.Unix(epoch, 0))
		}
		stashes = append(stashes, s)
	}
	return stashes, nil
}

// StashPush stashes work tree changes, untracked files included.
func (r *Repo) StashPush(ctx context.Context, message string) error {
	args := []string{"stash", "push", "-u"}
	if message != "" {
		args = append(args, "-m", message)
	}
	if err := runGit(ctx, r.dir, args...); err != nil {
		return fmt.Errorf("failed to stash changes: %w", err)
	}
	return nil
}

// StashApply applies a stash entry and keeps it.
func (r *Repo) StashApply(ctx context.Context, ref string) error {
	if err := runGit(ctx, r.dir, "stash", "apply", ref); err != nil {
		return fmt.Errorf("failed to apply %s: %w", ref, err)
	}
	return nil
}

// StashPop applies a stash entry and removes it.
func (r *Repo) StashPop(ctx context.Context, ref string) error {
	if err := runGit(ctx, r.dir, "stash", "pop", ref); err != nil {
		return fmt.Errorf("failed to pop %s: %w", ref, err)
	}
	return nil
}

// StashDrop removes a stash entry.
func (r *Repo) StashDrop(ctx context.Context, ref string) error {
	if err := runGit(ctx, r.dir, "stash", "drop", ref); err != nil {
		return fmt.Errorf("failed to drop %s: %w", ref, err)
	}
	return nil
}

// StashDiff returns the patch of a stash entry.
func (r *Repo) StashDiff(ctx context.Context, ref string) (string, error) {
	out, err := outputGit(ctx, r.dir, "stash", "show", "-p", "--color=never", ref)
	if err != nil {
		return "", fmt.Errorf("failed to show %s: %w", ref, err)
	}
	return string(out), nil
}
