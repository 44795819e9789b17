package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/raphi011/gpick/internal/config"
	"github.com/raphi011/gpick/internal/git"
	"github.com/raphi011/gpick/internal/log"
	"github.com/raphi011/gpick/internal/output"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage configuration",
		Aliases: []string{"cfg"},
		GroupID: GroupConfig,
		Long: `Manage gpick configuration.

Global config: ~/.config/gpick/config.toml (or $GPICK_CONFIG)
Local config:  .gpick.toml (in the repository root)`,
		Example: `  gpick config init          # Create default global config
  gpick config init --local  # Create local repo config
  gpick config show          # Show effective config`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force  bool
		stdout bool
		local  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default config file",
		Args:  cobra.NoArgs,
		Long: `Create default config file.

Without flags, creates the global config. With --local, creates a per-repo
.gpick.toml in the current repository root.`,
		Example: `  gpick config init           # Create global config
  gpick config init --local   # Create local repo config
  gpick config init -f        # Overwrite existing config
  gpick config init -s        # Print config to stdout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			if !local {
				if stdout {
					out.Print(config.DefaultConfig())
					return nil
				}
				path, err := config.Init(force)
				if err != nil {
					return fmt.Errorf("%w (use -f to overwrite)", err)
				}
				out.Printf("Created config file: %s\n", path)
				return nil
			}

			if stdout {
				out.Print(config.DefaultLocalConfig())
				return nil
			}
			repo, err := git.Open(ctx, workDir)
			if err != nil {
				return err
			}
			path, err := config.InitLocal(repo.Dir(), force)
			if err != nil {
				return fmt.Errorf("%w (use -f to overwrite)", err)
			}
			out.Printf("Created local config: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")
	cmd.Flags().BoolVarP(&stdout, "stdout", "s", false, "Print config to stdout")
	cmd.Flags().BoolVar(&local, "local", false, "Create per-repo .gpick.toml instead of global config")

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  cobra.NoArgs,
		Long: `Show effective configuration.

Inside a repository, .gpick.toml overrides are merged in and marked
"(local)". Environment overrides are always applied.`,
		Example: `  gpick config show          # Show config
  gpick config show --json   # Output as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			effCfg := cfg
			var local *config.LocalConfig
			if repo, err := git.Open(ctx, workDir); err == nil {
				local, err = config.LoadLocal(repo.Dir())
				if err != nil {
					l.Warnf("failed to load local config: %v (using global config)", err)
				}
				if local != nil {
					effCfg = config.MergeLocal(cfg, local)
					_ = effCfg.ApplyEnv(os.Getenv)
				}
			}

			if jsonOutput {
				return out.JSON(effCfg)
			}

			path, err := config.Path()
			if err != nil {
				path = "(unknown)"
			}
			out.Printf("Global config: %s\n", path)
			if local != nil {
				out.Printf("Local config:  %s\n", config.LocalConfigFileName)
			}
			out.Println()

			source := func(isLocal bool) string {
				if isLocal {
					return " (local)"
				}
				return ""
			}

			out.Printf("cleanup.stale_days: %d%s\n", effCfg.Cleanup.StaleDays, source(local != nil && local.Cleanup.StaleDays > 0))
			out.Printf("sweep.stale_months: %d%s\n", effCfg.Sweep.StaleMonths, source(local != nil && local.Sweep.StaleMonths > 0))
			out.Printf("sweep.remote: %s%s\n", effCfg.Sweep.Remote, source(local != nil && local.Sweep.Remote != ""))
			out.Printf("branch.prefix: %q%s\n", effCfg.Branch.Prefix, source(local != nil && local.Branch.Prefix != nil))
			out.Printf("picker.backend: %s\n", effCfg.Picker.Backend)
			if len(effCfg.Picker.FzfOpts) > 0 {
				out.Printf("picker.fzf_opts: %v\n", effCfg.Picker.FzfOpts)
			}
			out.Printf("theme.name: %s\n", orDefault(effCfg.Theme.Name, "default"))
			out.Printf("theme.mode: %s\n", orDefault(effCfg.Theme.Mode, "auto"))
			out.Printf("theme.nerdfont: %v\n", effCfg.Theme.Nerdfont)

			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
