package main

import (
	"context"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/charmbracelet/colorprofile"
	"github.com/spf13/cobra"

	"github.com/raphi011/gpick/internal/git"
	"github.com/raphi011/gpick/internal/output"
	"github.com/raphi011/gpick/internal/preview"
)

// branchLogLimit is the number of commits shown in a branch preview.
const branchLogLimit = 30

// previewKinds are the row kinds gpick can preview.
var previewKinds = []string{"branch", "file", "stash"}

func newPreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "preview <kind> <key>",
		Short:     "Render a picker preview",
		GroupID:   GroupUtility,
		Hidden:    true,
		Args:      cobra.ExactArgs(2),
		ValidArgs: previewKinds,
		Long: `Render the preview pane for a picker row.

Kinds: branch (recent commits of a branch), file (diff or content of a
changed file), stash (diff of a stash entry). fzf calls this for the
highlighted row.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			repo, c, err := openRepo(ctx)
			if err != nil {
				return err
			}

			text, err := renderPreview(ctx, repo, newHighlighter(c), args[0], args[1])
			if err != nil {
				return err
			}

			// fzf captures the preview through a pipe, so colour support is
			// taken from the environment rather than from a TTY check.
			profile := colorprofile.Env(os.Environ())
			if c.Theme.Name == "none" {
				profile = colorprofile.Ascii
			}
			w := &colorprofile.Writer{Forward: output.FromContext(ctx), Profile: profile}
			_, err = fmt.Fprintln(w, text)
			return err
		},
	}

	return cmd
}

// renderPreview produces the preview text for one picker row.
func renderPreview(ctx context.Context, repo *git.Repo, h *preview.Highlighter, kind, key string) (string, error) {
	switch kind {
	case "branch":
		commits, err := repo.BranchLog(ctx, key, branchLogLimit)
		if err != nil {
			return "", err
		}
		return preview.Commits(commits), nil

	case "stash":
		diff, err := repo.StashDiff(ctx, key)
		if err != nil {
			return "", err
		}
		return h.Diff(diff), nil

	case "file":
		files, err := repo.Status(ctx)
		if err != nil {
			return "", err
		}
		for _, f := range files {
			if f.Path != key || !f.Untracked() {
				continue
			}
			data, err := repo.ReadFile(key)
			if err != nil {
				return "", err
			}
			if !utf8.Valid(data) {
				return "(binary file)", nil
			}
			return preview.Sections(preview.Section{Title: "untracked", Body: h.File(key, string(data))}), nil
		}

		staged, err := repo.FileDiff(ctx, key, true)
		if err != nil {
			return "", err
		}
		unstaged, err := repo.FileDiff(ctx, key, false)
		if err != nil {
			return "", err
		}
		return preview.Sections(
			preview.Section{Title: "staged", Body: h.Diff(staged)},
			preview.Section{Title: "unstaged", Body: h.Diff(unstaged)},
		), nil
	}
	return "", fmt.Errorf("unknown preview kind %q (valid: branch, file, stash)", kind)
}
