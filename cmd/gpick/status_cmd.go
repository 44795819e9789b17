package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/gpick/internal/config"
	"github.com/raphi011/gpick/internal/git"
	"github.com/raphi011/gpick/internal/output"
	"github.com/raphi011/gpick/internal/picker"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "status",
		Short:   "Stage or unstage changed files",
		Aliases: []string{"st"},
		GroupID: GroupChanges,
		Args:    cobra.NoArgs,
		Long: `Stage or unstage changed files.

Lists changed and untracked files with their status code. Enter stages the
selected files, ctrl-u unstages them. The preview shows the staged and
unstaged diff, or the content of untracked files.`,
		Example: `  gpick status    # Pick files to stage
  gpick st        # Same, shorter`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			repo, c, err := openRepo(ctx)
			if err != nil {
				return err
			}
			return runStatus(ctx, repo, c)
		},
	}

	return cmd
}

func runStatus(ctx context.Context, repo *git.Repo, c *config.Config) error {
	out := output.FromContext(ctx)

	files, err := repo.Status(ctx)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		out.Println("Nothing to commit, working tree clean")
		return nil
	}

	p, err := newPresenter(repo, c)
	if err != nil {
		return err
	}
	res, err := p.Present(ctx, picker.Request{
		Views:        []picker.View{{Name: "status", Items: fileItems(files, false)}},
		Mode:         picker.Multi,
		Header:       "enter stages, ctrl-u unstages",
		Preview:      "file",
		PreviewFunc:  previewFunc(ctx, repo, c, "file"),
		AlternateKey: "ctrl-u",
	})
	if err != nil {
		return err
	}
	paths := itemKeys(res.Chosen)
	if len(paths) == 0 {
		return nil
	}

	switch res.Action {
	case picker.Accept:
		if err := repo.Stage(ctx, paths...); err != nil {
			return err
		}
		out.Printf("Staged %s\n", pluralize(len(paths), "file", "files"))
	case picker.AlternateKey:
		if err := repo.Unstage(ctx, paths...); err != nil {
			return err
		}
		out.Printf("Unstaged %s\n", pluralize(len(paths), "file", "files"))
	}
	return nil
}

// fileItems renders status entries as "XY path" rows keyed by path.
// preselectStaged marks files that already have staged changes.
func fileItems(files []git.FileStatus, preselectStaged bool) []picker.Item {
	items := make([]picker.Item, len(files))
	for i, f := range files {
		display := fmt.Sprintf("%s  %s", f.Code(), f.Path)
		if f.OrigPath != "" {
			display = fmt.Sprintf("%s  %s -> %s", f.Code(), f.OrigPath, f.Path)
		}
		items[i] = picker.Item{
			Key:         f.Path,
			Display:     display,
			Match:       f.Path,
			Preselected: preselectStaged && f.Staged(),
		}
	}
	return items
}

func itemKeys(items []picker.Item) []string {
	keys := make([]string, len(items))
	for i, it := range items {
		keys[i] = it.Key
	}
	return keys
}
