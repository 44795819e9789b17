package main

import (
	"context"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/gpick/internal/config"
	"github.com/raphi011/gpick/internal/git"
	"github.com/raphi011/gpick/internal/output"
	"github.com/raphi011/gpick/internal/picker"
	"github.com/raphi011/gpick/internal/ui/prompt"
)

func newCommitCmd() *cobra.Command {
	var (
		message string
		all     bool
	)

	cmd := &cobra.Command{
		Use:     "commit",
		Short:   "Pick files and commit them",
		Aliases: []string{"ci"},
		GroupID: GroupChanges,
		Args:    cobra.NoArgs,
		Long: `Pick files and commit them.

Files with staged changes start out selected. The selection becomes the
index: selected files are staged, deselected ones unstaged. Then gpick asks
for a commit message unless -m is given.`,
		Example: `  gpick commit                 # Pick files, then type a message
  gpick ci -m "Fix login"      # Pick files, commit with message
  gpick commit --all -m wip    # Stage everything, no picker`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			repo, c, err := openRepo(ctx)
			if err != nil {
				return err
			}
			return runCommit(ctx, repo, c, message, all)
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Commit message (skips the prompt)")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Stage all changes without opening the picker")

	return cmd
}

func runCommit(ctx context.Context, repo *git.Repo, c *config.Config, message string, all bool) error {
	out := output.FromContext(ctx)

	files, err := repo.Status(ctx)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		out.Println("Nothing to commit, working tree clean")
		return nil
	}

	if all {
		if err := repo.StageAll(ctx); err != nil {
			return err
		}
	} else {
		p, err := newPresenter(repo, c)
		if err != nil {
			return err
		}
		res, err := p.Present(ctx, picker.Request{
			Views:       []picker.View{{Name: "commit", Items: fileItems(files, true)}},
			Mode:        picker.Multi,
			Header:      "Select files to commit",
			Preview:     "file",
			PreviewFunc: previewFunc(ctx, repo, c, "file"),
		})
		if err != nil {
			return err
		}
		chosen := itemKeys(res.Chosen)
		if res.Action == picker.Cancelled || len(chosen) == 0 {
			return nil
		}

		var unstage []string
		for _, f := range files {
			if f.Staged() && !slices.Contains(chosen, f.Path) {
				unstage = append(unstage, f.Path)
			}
		}
		if err := repo.Unstage(ctx, unstage...); err != nil {
			return err
		}
		if err := repo.Stage(ctx, chosen...); err != nil {
			return err
		}
	}

	message = strings.TrimSpace(message)
	if message == "" {
		answer, err := prompt.TextInput("Commit message:", "Describe the change")
		if err != nil {
			return err
		}
		if answer.Cancelled || answer.Value == "" {
			out.Println("Aborted: empty commit message (changes stay staged)")
			return nil
		}
		message = answer.Value
	}

	if err := repo.Commit(ctx, message); err != nil {
		return err
	}
	out.Printf("Committed: %s\n", firstLine(message))
	return nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
