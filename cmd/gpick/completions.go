package main

import (
	"context"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/gpick/internal/branch"
	"github.com/raphi011/gpick/internal/git"
)

// completionRepo opens the repository for shell completion, where the
// persistent pre-run hook has not run.
func completionRepo(ctx context.Context) *git.Repo {
	dir := workDir
	if dir == "" {
		var err error
		if dir, err = os.Getwd(); err != nil {
			return nil
		}
	}
	repo, err := git.Open(ctx, dir)
	if err != nil {
		return nil
	}
	return repo
}

// completeBranches provides branch name completion. With --remote it
// completes remote refs like origin/feature.
func completeBranches(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	ctx := context.Background()
	repo := completionRepo(ctx)
	if repo == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	scope := branch.Local
	if remote, _ := cmd.Flags().GetBool("remote"); remote {
		scope = branch.Remote
	}
	records, err := repo.ListBranches(ctx, scope)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	// Filter by prefix
	var matches []string
	for _, r := range records {
		if strings.HasPrefix(r.Ref(), toComplete) {
			matches = append(matches, r.Ref())
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}

// completeRemotes completes the names of remotes that have branches.
func completeRemotes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	ctx := context.Background()
	repo := completionRepo(ctx)
	if repo == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	records, err := repo.ListBranches(ctx, branch.Remote)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var remotes []string
	for _, r := range records {
		if strings.HasPrefix(r.Remote, toComplete) && !slices.Contains(remotes, r.Remote) {
			remotes = append(remotes, r.Remote)
		}
	}
	return remotes, cobra.ShellCompDirectiveNoFileComp
}
