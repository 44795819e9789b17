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
	"github.com/raphi011/gpick/internal/ui/progress"
	"github.com/raphi011/gpick/internal/ui/prompt"
	"github.com/raphi011/gpick/internal/ui/static"
)

func newSweepCmd() *cobra.Command {
	var (
		jsonOutput bool
		dryRun     bool
		noFetch    bool
		months     int
		remote     string
	)

	cmd := &cobra.Command{
		Use:     "sweep",
		Short:   "Delete stale branches on a remote",
		Aliases: []string{"s"},
		GroupID: GroupBranch,
		Args:    cobra.NoArgs,
		Long: `Delete stale branches on a remote.

Fetches and prunes, then lists the remote's branches whose last commit is
older than sweep.stale_months. The picker starts with only stale branches,
all selected; ctrl-t switches to every branch on the remote with nothing
selected. Deletion always asks for confirmation.`,
		Example: `  gpick sweep                  # Pick stale origin branches to delete
  gpick sweep --months 6       # Stale after six months
  gpick sweep --remote fork    # Sweep another remote
  gpick sweep --json           # List stale candidates as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			repo, c, err := openRepo(ctx)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("months") {
				c.Sweep.StaleMonths = months
			}
			if cmd.Flags().Changed("remote") {
				c.Sweep.Remote = remote
			}
			if c.Sweep.StaleMonths <= 0 {
				return fmt.Errorf("--months must be positive, got %d", c.Sweep.StaleMonths)
			}
			return runSweep(ctx, repo, c, jsonOutput, dryRun, noFetch)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output candidates as JSON instead of opening the picker")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Show what would be deleted without deleting")
	cmd.Flags().BoolVar(&noFetch, "no-fetch", false, "Skip fetching remotes")
	cmd.Flags().IntVar(&months, "months", config.DefaultStaleMonths, "Months without commits before a branch is stale")
	cmd.Flags().StringVar(&remote, "remote", config.DefaultRemote, "Remote to sweep")
	cmd.RegisterFlagCompletionFunc("remote", completeRemotes)

	return cmd
}

func runSweep(ctx context.Context, repo *git.Repo, c *config.Config, jsonOutput, dryRun, noFetch bool) error {
	l := log.FromContext(ctx)
	out := output.FromContext(ctx)

	if !noFetch {
		if err := fetch(ctx, repo); err != nil {
			return err
		}
	}

	all, err := repo.ListBranches(ctx, branch.Remote)
	if err != nil {
		return err
	}
	var records []branch.Record
	for _, r := range all {
		if r.Remote == c.Sweep.Remote {
			records = append(records, r)
		}
	}

	base, err := repo.BaseBranch(ctx)
	if err != nil {
		// keep origin/main and origin/master out of the sweep regardless
		l.Debug("no local base branch", "err", err)
		base = branch.BaseNames[0]
	}
	threshold := branch.ThresholdMonths(time.Now(), c.Sweep.StaleMonths)
	groups := branch.ClassifyRemote(records, threshold, base)
	l.Debug("classified remote branches", "remote", c.Sweep.Remote, "staleMonths", c.Sweep.StaleMonths,
		"stale", len(groups[branch.Stale]), "recent", len(groups[branch.Recent]))

	if jsonOutput {
		return out.JSON(branch.Entries(groups[branch.Stale]))
	}
	if groups.Count() == 0 {
		out.Printf("No branches on %s\n", c.Sweep.Remote)
		return nil
	}

	staleRows := branch.BuildRows(branch.Groups{branch.Stale: groups[branch.Stale]}, branch.RemoteOrder,
		branch.RowOptions{Preselect: []branch.Category{branch.Stale}})
	allRows := branch.BuildRows(groups, branch.RemoteOrder, branch.RowOptions{})

	if dryRun {
		if len(staleRows) == 0 {
			out.Printf("No stale branches on %s\n", c.Sweep.Remote)
			return nil
		}
		out.Print(static.BranchTable(staleRows))
		out.Printf("Would delete %s on %s\n", pluralize(len(staleRows), "branch", "branches"), c.Sweep.Remote)
		return nil
	}

	p, err := newPresenter(repo, c)
	if err != nil {
		return err
	}
	res, err := p.Present(ctx, picker.Request{
		Views: []picker.View{
			{Name: "stale", Items: branchItems(staleRows)},
			{Name: "all", Items: branchItems(allRows)},
		},
		Mode:        picker.Multi,
		Header:      fmt.Sprintf("Delete branches on %s (ctrl-t: stale/all, enter or ctrl-d deletes)", c.Sweep.Remote),
		Preview:     "branch",
		PreviewFunc: previewFunc(ctx, repo, c, "branch"),
		DeleteKey:   "ctrl-d",
		ToggleKey:   "ctrl-t",
	})
	if err != nil {
		return err
	}
	if res.Action == picker.Cancelled {
		return nil
	}
	targets := chosenRows(allRows, res.Chosen)
	if len(targets) == 0 {
		out.Println("Nothing selected")
		return nil
	}

	out.Print(static.BranchTable(targets))
	answer, err := prompt.Confirm(
		fmt.Sprintf("Delete %s on %s? This cannot be undone", pluralize(len(targets), "branch", "branches"), c.Sweep.Remote),
		false,
	)
	if err != nil {
		return err
	}
	if !answer.Confirmed {
		return nil
	}

	toDelete := make([]branch.Record, len(targets))
	for i, r := range targets {
		toDelete[i] = r.Record
	}

	bar := progress.NewProgressBar(len(toDelete), "deleting")
	if showProgress(ctx) {
		bar.Start()
	}
	ex := &branch.Executor{
		Mutator:  repo,
		Base:     base,
		Progress: func(ref string) { bar.Increment("deleting " + ref) },
	}
	results := ex.DeleteRemote(ctx, toDelete)
	bar.Stop()

	return report(ctx, results, "deleted")
}
