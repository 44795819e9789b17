package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// CleanupConfig holds settings for "gpick cleanup"
type CleanupConfig struct {
	StaleDays int `toml:"stale_days"` // local branches older than this are stale
}

// SweepConfig holds settings for "gpick sweep"
type SweepConfig struct {
	StaleMonths int    `toml:"stale_months"` // remote branches older than this are stale
	Remote      string `toml:"remote"`       // remote to sweep
}

// BranchConfig holds settings for "gpick branch"
type BranchConfig struct {
	Prefix string `toml:"prefix"` // prepended to new branch names, e.g. "jdoe/"
}

// PickerConfig selects the interactive selector
type PickerConfig struct {
	Backend string   `toml:"backend"`  // "fzf" or "builtin"
	FzfOpts []string `toml:"fzf_opts"` // extra arguments passed to fzf
}

// ThemeConfig holds UI theme/color configuration
type ThemeConfig struct {
	Name     string `toml:"name"`     // preset name: "default", "dracula", "nord", "gruvbox", "catppuccin", "none"
	Mode     string `toml:"mode"`     // "auto", "light", "dark"
	Primary  string `toml:"primary"`  // main accent color (borders, titles)
	Accent   string `toml:"accent"`   // highlight color (selected items)
	Success  string `toml:"success"`  // success indicators (checkmarks)
	Error    string `toml:"error"`    // error messages
	Muted    string `toml:"muted"`    // disabled/inactive text
	Normal   string `toml:"normal"`   // standard text
	Info     string `toml:"info"`     // informational text
	Warning  string `toml:"warning"`  // warning indicators (stale items)
	Nerdfont bool   `toml:"nerdfont"` // use nerd font symbols
}

// Config holds the gpick configuration
type Config struct {
	Cleanup CleanupConfig `toml:"cleanup"`
	Sweep   SweepConfig   `toml:"sweep"`
	Branch  BranchConfig  `toml:"branch"`
	Picker  PickerConfig  `toml:"picker"`
	Theme   ThemeConfig   `toml:"theme"`
}

// Defaults for unset values
const (
	DefaultStaleDays   = 14
	DefaultStaleMonths = 3
	DefaultRemote      = "origin"
	DefaultBackend     = "fzf"
)

// Environment variables that override config file values.
const (
	EnvConfigPath   = "GPICK_CONFIG"
	EnvStaleDays    = "GPICK_STALE_DAYS"
	EnvStaleMonths  = "GPICK_STALE_MONTHS"
	EnvBranchPrefix = "GPICK_BRANCH_PREFIX"
	EnvTheme        = "GPICK_THEME"
	EnvPicker       = "GPICK_PICKER"
)

// Default returns the default configuration
func Default() Config {
	return Config{
		Cleanup: CleanupConfig{StaleDays: DefaultStaleDays},
		Sweep:   SweepConfig{StaleMonths: DefaultStaleMonths, Remote: DefaultRemote},
		Picker:  PickerConfig{Backend: DefaultBackend},
	}
}

// Path returns the config file location. GPICK_CONFIG overrides the default
// ~/.config/gpick/config.toml.
func Path() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "gpick", "config.toml"), nil
}

// Load reads the config file.
// Returns Default() if the file doesn't exist (no error).
// Returns Default() and an error if the file exists but is invalid, so
// callers can warn and carry on.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads config from path. See Load.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges and enum fields.
func (c *Config) Validate() error {
	if c.Cleanup.StaleDays <= 0 {
		return fmt.Errorf("invalid cleanup.stale_days %d: must be positive", c.Cleanup.StaleDays)
	}
	if c.Sweep.StaleMonths <= 0 {
		return fmt.Errorf("invalid sweep.stale_months %d: must be positive", c.Sweep.StaleMonths)
	}
	if c.Sweep.Remote == "" {
		return errors.New("sweep.remote must not be empty")
	}
	if err := validateEnum(c.Picker.Backend, "picker.backend", ValidPickerBackends); err != nil {
		return err
	}
	if err := validateEnum(c.Theme.Name, "theme.name", ValidThemeNames); err != nil {
		return err
	}
	return validateEnum(c.Theme.Mode, "theme.mode", ValidThemeModes)
}

// ApplyEnv overrides config values from environment variables. getenv is
// os.Getenv outside of tests.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvStaleDays); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid %s %q: must be a positive integer", EnvStaleDays, v)
		}
		c.Cleanup.StaleDays = n
	}
	if v := getenv(EnvStaleMonths); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid %s %q: must be a positive integer", EnvStaleMonths, v)
		}
		c.Sweep.StaleMonths = n
	}
	if v := getenv(EnvBranchPrefix); v != "" {
		c.Branch.Prefix = v
	}
	if v := getenv(EnvTheme); v != "" {
		if err := validateEnum(v, EnvTheme, ValidThemeNames); err != nil {
			return err
		}
		c.Theme.Name = v
	}
	if v := getenv(EnvPicker); v != "" {
		if err := validateEnum(v, EnvPicker, ValidPickerBackends); err != nil {
			return err
		}
		c.Picker.Backend = v
	}
	return nil
}

const defaultConfig = `# gpick configuration

# Cleanup settings for "gpick cleanup"
[cleanup]
# Local branches without commits in this many days are marked stale
stale_days = 14

# Remote sweep settings for "gpick sweep"
[sweep]
# Remote branches without commits in this many months are marked stale
stale_months = 3
# Remote whose branches are swept
remote = "origin"

# Branch creation settings for "gpick branch"
[branch]
# Prefix for new branch names, e.g. "jdoe/" turns "fix-login" into "jdoe/fix-login"
# prefix = ""

# Interactive picker
[picker]
# "fzf" (default, requires fzf in PATH) or "builtin"
backend = "fzf"
# Extra arguments passed to fzf
# fzf_opts = ["--height=60%", "--border"]

# Theme settings
# [theme]
# name = "default"    # default, dracula, nord, gruvbox, catppuccin, none
# mode = "auto"       # auto, light, dark
# nerdfont = false    # use nerd font symbols
#
# Individual colors override the preset:
# primary = "#89b4fa"
# accent = "#f5c2e7"
# success = "#a6e3a1"
# error = "#f38ba8"
# muted = "#6c7086"
# normal = "#cdd6f4"
# info = "#94e2d5"
# warning = "#fab387"

# Environment overrides (highest priority):
#   GPICK_STALE_DAYS, GPICK_STALE_MONTHS, GPICK_BRANCH_PREFIX, GPICK_THEME, GPICK_PICKER
#
# Per-repo overrides can be placed in .gpick.toml at the repository root
# (see "gpick config init --local").
`

// DefaultConfig returns the default configuration file content.
func DefaultConfig() string {
	return defaultConfig
}

// Init creates a default config file at Path().
// If force is true, overwrites existing file
// Returns the path to the created file
func Init(force bool) (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}
	return writeTemplate(path, defaultConfig, force)
}

func writeTemplate(path, content string, force bool) (string, error) {
	// Check if file already exists (skip if force)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", errors.New("config file already exists: " + path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", err
	}
	return path, nil
}
