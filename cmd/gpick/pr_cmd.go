package main

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/raphi011/gpick/internal/cmd"
	"github.com/raphi011/gpick/internal/git"
	"github.com/raphi011/gpick/internal/log"
	"github.com/raphi011/gpick/internal/output"
	"github.com/raphi011/gpick/internal/ui/progress"
	"github.com/raphi011/gpick/internal/ui/styles"
)

func newPrCmd() *cobra.Command {
	var printURL bool

	prCmd := &cobra.Command{
		Use:     "pr",
		Short:   "Open a pull request for the current branch",
		GroupID: GroupBranch,
		Args:    cobra.NoArgs,
		Long: `Open a pull request for the current branch.

Pushes the branch with tracking if it has no upstream yet. Then runs
"gh pr create --web" when gh is installed; otherwise prints the compare URL
and copies it to the clipboard.`,
		Example: `  gpick pr           # Push if needed and open the PR form
  gpick pr --print   # Only print (and copy) the compare URL`,
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			repo, effCfg, err := openRepo(ctx)
			if err != nil {
				return err
			}
			current, err := repo.CurrentBranch(ctx)
			if err != nil {
				return err
			}
			if current == "" {
				return errors.New("not on a branch (detached HEAD)")
			}
			base, err := repo.BaseBranch(ctx)
			if err != nil {
				return err
			}
			if current == base {
				return fmt.Errorf("already on %s, switch to a feature branch first", base)
			}

			if _, _, ok := repo.Upstream(current); !ok {
				remote := effCfg.Sweep.Remote
				err := progress.Run(showProgress(ctx), fmt.Sprintf("Pushing %s to %s...", current, remote), func() error {
					return repo.PushWithTracking(ctx, remote, current)
				})
				if err != nil {
					return err
				}
				l.Printf("Pushed %s to %s\n", current, remote)
			}

			if !printURL && cmd.Require("gh") == nil {
				return cmd.RunInteractive(ctx, repo.Dir(), "gh", "pr", "create", "--web", "--base", base, "--head", current)
			}

			origin, err := repo.OriginURL()
			if err != nil {
				return err
			}
			url, err := git.CompareURL(origin, base, current)
			if err != nil {
				return err
			}
			if err := clipboard.WriteAll(url); err != nil {
				l.Debug("clipboard unavailable", "err", err)
			} else {
				l.Println("Copied to clipboard")
			}
			out.Println(styles.FormatLink(url, url, styles.InfoStyle))
			return nil
		},
	}

	prCmd.Flags().BoolVar(&printURL, "print", false, "Print the compare URL instead of running gh")

	return prCmd
}
