// Package config handles loading and validation of gpick configuration.
//
// Configuration is read from ~/.config/gpick/config.toml (GPICK_CONFIG
// overrides the location), overlaid with a per-repo .gpick.toml and then
// with environment variables.
//
// # Configuration Sources (highest priority first)
//
//   - GPICK_STALE_DAYS, GPICK_STALE_MONTHS, GPICK_BRANCH_PREFIX,
//     GPICK_THEME, GPICK_PICKER env vars
//   - .gpick.toml at the repository root
//   - Config file settings
//   - Default values
//
// # Key Settings
//
//   - cleanup.stale_days: age in days after which a local branch is stale (default 14)
//   - sweep.stale_months: age in months after which a remote branch is stale (default 3)
//   - sweep.remote: remote swept by "gpick sweep" (default "origin")
//   - branch.prefix: prefix for branches created by "gpick branch"
//   - picker.backend: "fzf" or "builtin"
//   - theme: preset, light/dark mode and color overrides
//
// A file that fails to parse or validate is reported and the defaults are
// used instead.
package config
