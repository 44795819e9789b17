package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/raphi011/gpick/internal/branch"
	"github.com/raphi011/gpick/internal/config"
	"github.com/raphi011/gpick/internal/git"
	"github.com/raphi011/gpick/internal/log"
	"github.com/raphi011/gpick/internal/output"
	"github.com/raphi011/gpick/internal/picker"
	"github.com/raphi011/gpick/internal/ui/prompt"
	"github.com/raphi011/gpick/internal/ui/static"
)

func newCleanupCmd() *cobra.Command {
	var (
		jsonOutput bool
		dryRun     bool
		yes        bool
		noFetch    bool
		days       int
	)

	cmd := &cobra.Command{
		Use:     "cleanup",
		Short:   "Delete merged and stale local branches",
		Aliases: []string{"c"},
		GroupID: GroupBranch,
		Args:    cobra.NoArgs,
		Long: `Delete merged and stale local branches.

Fetches and prunes all remotes, then sorts local branches into:
  merged  the upstream branch is gone (typically merged and deleted on the forge)
  stale   last commit is older than cleanup.stale_days
  recent  everything else

Merged and stale branches start out selected. Deleting the current branch
switches to the base branch (main or master) first.`,
		Example: `  gpick cleanup              # Pick branches to delete
  gpick cleanup --days 30    # Only call branches stale after 30 days
  gpick cleanup --json       # List candidates as JSON, no picker
  gpick cleanup --dry-run    # Show what would be deleted`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			repo, c, err := openRepo(ctx)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("days") {
				c.Cleanup.StaleDays = days
			}
			if c.Cleanup.StaleDays <= 0 {
				return fmt.Errorf("--days must be positive, got %d", c.Cleanup.StaleDays)
			}
			return runCleanup(ctx, repo, c, cleanupOptions{
				JSON:    jsonOutput,
				DryRun:  dryRun,
				Yes:     yes,
				NoFetch: noFetch,
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output candidates as JSON instead of opening the picker")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Show what would be deleted without deleting")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt (without a terminal, delete the preselected branches)")
	cmd.Flags().BoolVar(&noFetch, "no-fetch", false, "Skip fetching remotes")
	cmd.Flags().IntVar(&days, "days", config.DefaultStaleDays, "Days without commits before a branch is stale")

	return cmd
}

type cleanupOptions struct {
	JSON    bool
	DryRun  bool
	Yes     bool
	NoFetch bool
}

func runCleanup(ctx context.Context, repo *git.Repo, c *config.Config, opts cleanupOptions) error {
	l := log.FromContext(ctx)
	out := output.FromContext(ctx)

	if !opts.NoFetch {
		if err := fetch(ctx, repo); err != nil {
			return err
		}
	}

	records, err := repo.ListBranches(ctx, branch.Local)
	if err != nil {
		return err
	}

	// No base branch is only fatal once there is something to delete.
	base, baseErr := repo.BaseBranch(ctx)
	threshold := branch.ThresholdDays(time.Now(), c.Cleanup.StaleDays)
	groups := branch.Classify(records, threshold, base)
	l.Debug("classified local branches", "base", base, "staleDays", c.Cleanup.StaleDays,
		"merged", len(groups[branch.Merged]), "stale", len(groups[branch.Stale]), "recent", len(groups[branch.Recent]))

	if opts.JSON {
		return out.JSON(branch.Entries(groups.Flatten(branch.LocalOrder)))
	}
	if groups.Count() == 0 {
		out.Println("No branches to clean up")
		return nil
	}
	if baseErr != nil {
		return baseErr
	}

	notes := map[string]string{}
	if merged, err := repo.MergedInto(ctx, base); err != nil {
		l.Debug("merged check failed", "err", err)
	} else {
		for name := range merged {
			notes[name] = "merged into " + base
		}
	}

	rows := branch.BuildRows(groups, branch.LocalOrder, branch.RowOptions{
		Preselect: []branch.Category{branch.Merged, branch.Stale},
		Notes:     notes,
	})

	var targets []branch.Row
	if opts.DryRun || opts.Yes && !isInteractive() {
		// Nothing to pick from without a terminal: take the preselection.
		for _, r := range rows {
			if r.Preselected {
				targets = append(targets, r)
			}
		}
	} else {
		p, err := newPresenter(repo, c)
		if err != nil {
			return err
		}
		res, err := p.Present(ctx, picker.Request{
			Views:       []picker.View{{Name: "cleanup", Items: branchItems(rows)}},
			Mode:        picker.Multi,
			Header:      "Delete local branches (tab toggles, enter or ctrl-d deletes)",
			Preview:     "branch",
			PreviewFunc: previewFunc(ctx, repo, c, "branch"),
			DeleteKey:   "ctrl-d",
		})
		if err != nil {
			return err
		}
		if res.Action == picker.Cancelled {
			return nil
		}
		targets = chosenRows(rows, res.Chosen)
	}

	if len(targets) == 0 {
		out.Println("Nothing selected")
		return nil
	}

	out.Print(static.BranchTable(targets))
	if opts.DryRun {
		out.Printf("Would delete %s\n", pluralize(len(targets), "branch", "branches"))
		return nil
	}

	if !opts.Yes {
		answer, err := prompt.Confirm(
			fmt.Sprintf("Delete %s?", pluralize(len(targets), "branch", "branches")),
			branch.AllIn(targets, branch.Merged),
		)
		if err != nil {
			return err
		}
		if !answer.Confirmed {
			return nil
		}
	}

	current, err := repo.CurrentBranch(ctx)
	if err != nil {
		return err
	}
	ex := &branch.Executor{Mutator: repo, Base: base, Current: current}
	results, err := ex.DeleteLocal(ctx, branch.Names(targets))
	if err != nil {
		return err
	}
	if ex.Current != current {
		out.Printf("Switched to %s\n", ex.Current)
	}
	return report(ctx, results, "deleted")
}
