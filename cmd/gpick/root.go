package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raphi011/gpick/internal/config"
	"github.com/raphi011/gpick/internal/git"
	"github.com/raphi011/gpick/internal/log"
	"github.com/raphi011/gpick/internal/output"
	"github.com/raphi011/gpick/internal/ui/styles"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	workDir string

	// Shared state injected into commands
	cfg *config.Config

	// logOutput receives diagnostics; tests swap it for a buffer.
	logOutput io.Writer = os.Stderr
)

// Command group IDs for organizing help output
const (
	GroupBranch  = "branch"
	GroupChanges = "changes"
	GroupUtility = "utility"
	GroupConfig  = "config"
)

// usageError marks errors caused by how gpick was invoked (bad flags,
// wrong argument count, unknown command). Only these get the help hint.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// errMutationsFailed is returned after a batch in which at least one git
// mutation failed. Details have already been printed per item.
var errMutationsFailed = errors.New("one or more operations failed")

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gpick",
		Short: "Fuzzy pickers for everyday git",
		Long: `gpick puts a fuzzy picker in front of common git chores.

Switch branches, clean up merged and stale local branches, sweep stale
remote branches, stage files, commit, and manage stashes, all by picking
from a filtered list.`,
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2, // Enable typo suggestions
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip git check for completion and help commands
			if cmd.Name() == "completion" || cmd.Name() == "__complete" || cmd.Name() == "help" {
				return nil
			}

			// Validate mutually exclusive flags
			if verbose && quiet {
				return fmt.Errorf("--verbose and --quiet are mutually exclusive")
			}

			ctx := cmd.Context()
			l := log.New(logOutput, verbose, quiet)
			ctx = log.WithLogger(ctx, l)
			cmd.SetContext(ctx)

			loaded, err := config.Load()
			if err != nil {
				l.Warnf("%v (using defaults)", err)
			}
			if err := loaded.ApplyEnv(os.Getenv); err != nil {
				l.Warnf("%v", err)
			}
			cfg = &loaded
			styles.Init(cfg.Theme)

			if workDir == "" {
				if workDir, err = os.Getwd(); err != nil {
					return fmt.Errorf("failed to get working directory: %w", err)
				}
			}

			// Check git is available
			return git.CheckGit()
		},
		// Run is not set - shows help when no subcommand provided
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show external commands being executed")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.PersistentFlags().StringVarP(&workDir, "dir", "C", "", "Run as if gpick was started in `DIR`")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
	_ = rootCmd.MarkPersistentFlagDirname("dir")

	// Version flag
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Add command groups for organized help output
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupBranch, Title: "Branch Commands:"},
		&cobra.Group{ID: GroupChanges, Title: "Change Commands:"},
		&cobra.Group{ID: GroupUtility, Title: "Utility Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	// Branch commands
	rootCmd.AddCommand(newBranchCmd())
	rootCmd.AddCommand(newCleanupCmd())
	rootCmd.AddCommand(newSweepCmd())
	rootCmd.AddCommand(newPrCmd())

	// Change commands
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newCommitCmd())
	rootCmd.AddCommand(newStashCmd())

	// Utility commands
	rootCmd.AddCommand(newPreviewCmd())
	rootCmd.AddCommand(newVersionCmd())

	// Config commands
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newCompletionCmd())

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})
	markArgErrors(rootCmd)

	return rootCmd
}

// markArgErrors wraps every command's argument validator so its failures
// are reported as usage errors.
func markArgErrors(c *cobra.Command) {
	if c.Args != nil {
		validate := c.Args
		c.Args = func(cmd *cobra.Command, args []string) error {
			if err := validate(cmd, args); err != nil {
				return usageError{err}
			}
			return nil
		}
	}
	for _, sub := range c.Commands() {
		markArgErrors(sub)
	}
}

// formatError renders a fatal error as a single line, followed by a help
// hint for usage errors only.
func formatError(err error) string {
	msg := "gpick: " + err.Error() + "\n"
	var ue usageError
	if errors.As(err, &ue) || strings.HasPrefix(err.Error(), "unknown command") {
		msg += "Run 'gpick -h' for help\n"
	}
	return msg
}

// Execute runs the root command with signal handling and exits non-zero
// on error.
func Execute() {
	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Add output printer (stdout for primary data)
	ctx = output.WithPrinter(ctx, os.Stdout)

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprint(os.Stderr, formatError(err))
		os.Exit(1)
	}
}
