package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/raphi011/gpick/internal/branch"
	"github.com/raphi011/gpick/internal/config"
	"github.com/raphi011/gpick/internal/git"
	"github.com/raphi011/gpick/internal/log"
	"github.com/raphi011/gpick/internal/output"
	"github.com/raphi011/gpick/internal/picker"
	"github.com/raphi011/gpick/internal/ui/prompt"
)

func newBranchCmd() *cobra.Command {
	var (
		jsonOutput bool
		remote     bool
		newName    string
	)

	cmd := &cobra.Command{
		Use:     "branch [query]",
		Short:   "Switch branches with a fuzzy picker",
		Aliases: []string{"b"},
		GroupID: GroupBranch,
		Args:    cobra.MaximumNArgs(1),
		Long: `Switch branches with a fuzzy picker.

The optional query pre-filters the list. If exactly one branch matches,
gpick switches to it without opening the picker. If nothing matches, gpick
offers to create a branch named after the query (with branch.prefix).

In the picker, ctrl-d deletes the highlighted local branch after asking.`,
		Example: `  gpick branch              # Pick a local branch
  gpick b login             # Switch straight to the only branch matching "login"
  gpick branch --remote     # Check out a remote branch with tracking
  gpick branch --new fix-x  # Create <prefix>fix-x from the base branch
  gpick branch --json       # List local branches as JSON`,
		ValidArgsFunction: completeBranches,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			repo, c, err := openRepo(ctx)
			if err != nil {
				return err
			}
			if newName != "" {
				return createBranch(ctx, repo, c, newName)
			}

			scope := branch.Local
			if remote {
				scope = branch.Remote
			}
			records, err := repo.ListBranches(ctx, scope)
			if err != nil {
				return err
			}
			if jsonOutput {
				return output.FromContext(ctx).JSON(branch.Entries(records))
			}

			var query string
			if len(args) > 0 {
				query = args[0]
			}
			return pickBranch(ctx, repo, c, records, scope, query)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output branches as JSON instead of opening the picker")
	cmd.Flags().BoolVarP(&remote, "remote", "r", false, "Pick from remote branches and check out with tracking")
	cmd.Flags().StringVar(&newName, "new", "", "Create a new branch from the base branch (branch.prefix is prepended)")
	cmd.MarkFlagsMutuallyExclusive("new", "remote")
	cmd.MarkFlagsMutuallyExclusive("new", "json")

	return cmd
}

func pickBranch(ctx context.Context, repo *git.Repo, c *config.Config, records []branch.Record, scope branch.Scope, query string) error {
	out := output.FromContext(ctx)

	// Classification is only used for the category column here, so nothing
	// is excluded.
	var groups branch.Groups
	order := branch.LocalOrder
	if scope == branch.Remote {
		groups = branch.ClassifyRemote(records, branch.ThresholdMonths(time.Now(), c.Sweep.StaleMonths), "")
		order = branch.RemoteOrder
	} else {
		groups = branch.Classify(records, branch.ThresholdDays(time.Now(), c.Cleanup.StaleDays), "")
	}
	rows := branch.BuildRows(groups, order, branch.RowOptions{})

	if len(rows) == 0 && query == "" {
		out.Printf("No %s branches\n", scope)
		return nil
	}

	req := picker.Request{
		Views:       []picker.View{{Name: scope.String(), Items: branchItems(rows)}},
		Mode:        picker.Single,
		Query:       query,
		Header:      "Switch branch",
		Preview:     "branch",
		PreviewFunc: previewFunc(ctx, repo, c, "branch"),
	}
	if scope == branch.Local {
		req.Header += " (ctrl-d deletes)"
		req.DeleteKey = "ctrl-d"
	}

	// The one-match shortcut needs no terminal.
	var p *picker.Presenter
	if len(picker.Matching(req.Views[0].Items, query)) != 1 {
		var err error
		if p, err = newPresenter(repo, c); err != nil {
			return err
		}
	} else {
		p = &picker.Presenter{}
	}

	res, err := p.Present(ctx, req)
	if err != nil {
		return err
	}

	switch res.Action {
	case picker.Cancelled:
		if wantsCreate(res, req.Views[0].Items, scope) {
			return offerCreate(ctx, repo, c, res.Query)
		}
		return nil
	case picker.DeleteKey:
		return deleteBranches(ctx, repo, chosenRows(rows, res.Chosen))
	}

	chosen := chosenRows(rows, res.Chosen)
	if len(chosen) == 0 {
		return nil
	}
	target := chosen[0]
	if target.IsCurrent {
		out.Printf("Already on %s\n", target.Name)
		return nil
	}
	if scope == branch.Remote {
		if err := repo.TrackRemote(ctx, target.Remote, target.Name); err != nil {
			return err
		}
	} else if err := repo.SwitchTo(ctx, target.Name); err != nil {
		return err
	}
	out.Printf("Switched to %s\n", target.Name)
	return nil
}

// offerCreate asks whether to create a branch named after an unmatched query.
func offerCreate(ctx context.Context, repo *git.Repo, c *config.Config, query string) error {
	name := strings.Join(strings.Fields(query), "-")
	answer, err := prompt.Confirm(fmt.Sprintf("No branch matches %q. Create %s?", query, c.Branch.Prefix+name), false)
	if err != nil {
		return err
	}
	if !answer.Confirmed {
		return nil
	}
	return createBranch(ctx, repo, c, name)
}

// createBranch creates prefix+name from the base branch and switches to it.
func createBranch(ctx context.Context, repo *git.Repo, c *config.Config, name string) error {
	base, err := repo.BaseBranch(ctx)
	if err != nil {
		return err
	}
	full := c.Branch.Prefix + name
	if repo.RefExists(ctx, "refs/heads/"+full) {
		return fmt.Errorf("branch %s already exists", full)
	}
	log.FromContext(ctx).Debug("creating branch", "name", full, "from", base)
	if err := repo.CreateBranch(ctx, full, base); err != nil {
		return err
	}
	output.FromContext(ctx).Printf("Created %s from %s\n", full, base)
	return nil
}

// deleteBranches deletes rows picked with the delete key, after asking.
func deleteBranches(ctx context.Context, repo *git.Repo, rows []branch.Row) error {
	if len(rows) == 0 {
		return nil
	}
	answer, err := prompt.Confirm(fmt.Sprintf("Delete %s?", strings.Join(branch.Names(rows), ", ")), false)
	if err != nil {
		return err
	}
	if !answer.Confirmed {
		return nil
	}

	base, err := repo.BaseBranch(ctx)
	if err != nil {
		return err
	}
	current, err := repo.CurrentBranch(ctx)
	if err != nil {
		return err
	}
	ex := &branch.Executor{Mutator: repo, Base: base, Current: current}
	results, err := ex.DeleteLocal(ctx, branch.Names(rows))
	if err != nil {
		return err
	}
	return report(ctx, results, "deleted")
}

// wantsCreate reports whether a cancelled pick should offer to create a
// branch: esc leaves quietly, only a query nothing matched offers creation.
func wantsCreate(res picker.Result, items []picker.Item, scope branch.Scope) bool {
	return res.Action == picker.Cancelled && !res.Interrupted && scope == branch.Local &&
		res.Query != "" && len(picker.Matching(items, res.Query)) == 0
}
