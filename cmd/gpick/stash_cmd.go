package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/gpick/internal/config"
	"github.com/raphi011/gpick/internal/git"
	"github.com/raphi011/gpick/internal/output"
	"github.com/raphi011/gpick/internal/picker"
	"github.com/raphi011/gpick/internal/ui/prompt"
)

func newStashCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "stash",
		Short:   "Apply, pop or drop a stash",
		Aliases: []string{"sh"},
		GroupID: GroupChanges,
		Args:    cobra.NoArgs,
		Long: `Apply, pop or drop a stash.

Enter applies the highlighted stash and keeps it, ctrl-p pops it and
ctrl-d drops it after asking. The preview shows the stash diff.`,
		Example: `  gpick stash                 # Pick a stash to apply
  gpick stash push -m "wip"   # Stash changes, including untracked files`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			repo, c, err := openRepo(ctx)
			if err != nil {
				return err
			}
			return runStash(ctx, repo, c)
		},
	}

	cmd.AddCommand(newStashPushCmd())

	return cmd
}

func newStashPushCmd() *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Stash changes including untracked files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			repo, _, err := openRepo(ctx)
			if err != nil {
				return err
			}
			files, err := repo.Status(ctx)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				output.FromContext(ctx).Println("No local changes to stash")
				return nil
			}
			if err := repo.StashPush(ctx, message); err != nil {
				return err
			}
			output.FromContext(ctx).Printf("Stashed %s\n", pluralize(len(files), "file", "files"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Stash message")

	return cmd
}

func runStash(ctx context.Context, repo *git.Repo, c *config.Config) error {
	out := output.FromContext(ctx)

	stashes, err := repo.Stashes(ctx)
	if err != nil {
		return err
	}
	if len(stashes) == 0 {
		out.Println("No stashes")
		return nil
	}

	items := make([]picker.Item, len(stashes))
	for i, s := range stashes {
		items[i] = picker.Item{
			Key:     s.Ref,
			Display: fmt.Sprintf("%-10s  %-14s  %s", s.Ref, s.Relative, s.Message),
		}
	}

	p, err := newPresenter(repo, c)
	if err != nil {
		return err
	}
	res, err := p.Present(ctx, picker.Request{
		Views:        []picker.View{{Name: "stash", Items: items}},
		Mode:         picker.Single,
		Header:       "enter applies, ctrl-p pops, ctrl-d drops",
		Preview:      "stash",
		PreviewFunc:  previewFunc(ctx, repo, c, "stash"),
		DeleteKey:    "ctrl-d",
		AlternateKey: "ctrl-p",
	})
	if err != nil {
		return err
	}
	if len(res.Chosen) == 0 {
		return nil
	}
	ref := res.Chosen[0].Key

	switch res.Action {
	case picker.Accept:
		if err := repo.StashApply(ctx, ref); err != nil {
			return err
		}
		out.Printf("Applied %s\n", ref)
	case picker.AlternateKey:
		if err := repo.StashPop(ctx, ref); err != nil {
			return err
		}
		out.Printf("Popped %s\n", ref)
	case picker.DeleteKey:
		answer, err := prompt.Confirm(fmt.Sprintf("Drop %s?", ref), false)
		if err != nil {
			return err
		}
		if !answer.Confirmed {
			return nil
		}
		if err := repo.StashDrop(ctx, ref); err != nil {
			return err
		}
		out.Printf("Dropped %s\n", ref)
	}
	return nil
}
