package git

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/raphi011/gpick/internal/branch"
	"github.com/raphi011/gpick/internal/log"
)

// ErrSyncFailed wraps a failed fetch. Callers warn and keep using local data.
var ErrSyncFailed = errors.New("remote sync failed")

// ListBranches returns local branches (scope Local) or remote-tracking
// branches (scope Remote), sorted by ref name. Remote HEAD aliases are skipped.
// A branch whose tip commit cannot be read gets a zero epoch.
func (r *Repo) ListBranches(ctx context.Context, scope branch.Scope) ([]branch.Record, error) {
	cfg, err := r.repo.Config()
	if err != nil {
		return nil, fmt.Errorf("failed to read git config: %w", err)
	}
	refs, err := r.repo.References()
	if err != nil {
		return nil, fmt.Errorf("failed to list references: %w", err)
	}
	defer refs.Close()

	current, _ := r.CurrentBranch(ctx)

	var heads, remotes []*plumbing.Reference
	tracking := map[plumbing.ReferenceName]bool{}
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if ref.Type() != plumbing.HashReference {
			return nil
		}
		switch name := ref.Name(); {
		case name.IsBranch():
			heads = append(heads, ref)
		case name.IsRemote():
			tracking[name] = true
			if !strings.HasSuffix(name.Short(), "/HEAD") {
				remotes = append(remotes, ref)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var records []branch.Record
	if scope == branch.Remote {
		for _, ref := range sortRefs(remotes) {
			remote, name := splitRemoteRef(cfg, ref.Name())
			rec := branch.Record{Name: name, Remote: remote}
			r.fillCommit(&rec, ref.Hash())
			records = append(records, rec)
		}
		return records, nil
	}

	for _, ref := range sortRefs(heads) {
		name := ref.Name().Short()
		rec := branch.Record{Name: name, IsCurrent: name == current}
		if b, ok := cfg.Branches[name]; ok && b.Remote != "" && b.Merge != "" {
			rec.HadConfiguredUpstream = true
			rec.HasRemoteCounterpart = upstreamExists(tracking, r, b)
		}
		r.fillCommit(&rec, ref.Hash())
		records = append(records, rec)
	}
	log.FromContext(ctx).Debug("listed branches", "scope", scope, "count", len(records))
	return records, nil
}

func (r *Repo) fillCommit(rec *branch.Record, hash plumbing.Hash) {
	c, err := r.repo.CommitObject(hash)
	if err != nil {
		return
	}
	when := c.Committer.When
	rec.LastCommitEpoch = when.Unix()
	rec.LastCommitRelative = relativeTime(when)
	rec.AuthorName = c.Author.Name
	rec.AuthorEmail = c.Author.Email
}

// upstreamExists checks whether the ref a branch tracks is still present.
// An upstream of "." tracks another local branch.
func upstreamExists(tracking map[plumbing.ReferenceName]bool, r *Repo, b *config.Branch) bool {
	if b.Remote == "." {
		_, err := r.repo.Reference(b.Merge, false)
		return err == nil
	}
	return tracking[plumbing.NewRemoteReferenceName(b.Remote, b.Merge.Short())]
}

// splitRemoteRef splits refs/remotes/<remote>/<branch>, preferring the
// longest configured remote name so remotes containing "/" resolve correctly.
func splitRemoteRef(cfg *config.Config, name plumbing.ReferenceName) (remote, short string) {
	rest := strings.TrimPrefix(name.String(), "refs/remotes/")
	best := ""
	for rn := range cfg.Remotes {
		if strings.HasPrefix(rest, rn+"/") && len(rn) > len(best) {
			best = rn
		}
	}
	if best != "" {
		return best, strings.TrimPrefix(rest, best+"/")
	}
	remote, short, _ = strings.Cut(rest, "/")
	return remote, short
}

func sortRefs(refs []*plumbing.Reference) []*plumbing.Reference {
	slices.SortFunc(refs, func(a, b *plumbing.Reference) int {
		return strings.Compare(a.Name().String(), b.Name().String())
	})
	return refs
}

func relativeTime(t time.Time) string {
	return humanize.Time(t)
}

// MergedInto returns the local branches whose tips are reachable from base.
func (r *Repo) MergedInto(ctx context.Context, base string) (map[string]bool, error) {
	names, err := outputLines(ctx, r.dir, "branch", "--format=%(refname:short)", "--merged", base)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches merged into %s: %w", base, err)
	}
	merged := map[string]bool{}
	for _, name := range names {
		// "(HEAD detached at ...)" is not a branch
		if name != base && !strings.HasPrefix(name, "(") {
			merged[name] = true
		}
	}
	return merged, nil
}

// FetchAndPrune fetches all remotes and prunes deleted remote-tracking refs.
// Failures other than cancellation are wrapped in ErrSyncFailed.
func (r *Repo) FetchAndPrune(ctx context.Context) error {
	if err := runGit(ctx, r.dir, "fetch", "--all", "--prune", "--quiet"); err != nil {
		if ctx.Err() != nil {
			return err
		}
		return fmt.Errorf("%w: %v", ErrSyncFailed, err)
	}
	return nil
}
