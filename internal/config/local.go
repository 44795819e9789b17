package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// LocalConfigFileName is the per-repo config file at the repository root.
const LocalConfigFileName = ".gpick.toml"

// LocalConfig holds per-repo configuration overrides from .gpick.toml.
// Zero values indicate "not set" (inherit from global).
type LocalConfig struct {
	Cleanup CleanupConfig `toml:"cleanup"`
	Sweep   SweepConfig   `toml:"sweep"`
	Branch  LocalBranch   `toml:"branch"`
}

// LocalBranch holds local branch overrides. Prefix is a pointer so a repo
// can clear a global prefix with prefix = "".
type LocalBranch struct {
	Prefix *string `toml:"prefix"`
}

// LoadLocal reads a per-repo .gpick.toml config from the given repo path.
// Returns nil (no error) if the file doesn't exist.
// Returns an error only on parse or validation failure.
func LoadLocal(repoPath string) (*LocalConfig, error) {
	configFile := filepath.Join(repoPath, LocalConfigFileName)

	data, err := os.ReadFile(configFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read local config %s: %w", configFile, err)
	}

	var local LocalConfig
	if err := toml.Unmarshal(data, &local); err != nil {
		return nil, fmt.Errorf("failed to parse local config %s: %w", configFile, err)
	}

	if local.Cleanup.StaleDays < 0 {
		return nil, fmt.Errorf("invalid cleanup.stale_days %d in %s: must be positive", local.Cleanup.StaleDays, configFile)
	}
	if local.Sweep.StaleMonths < 0 {
		return nil, fmt.Errorf("invalid sweep.stale_months %d in %s: must be positive", local.Sweep.StaleMonths, configFile)
	}

	return &local, nil
}

// defaultLocalConfig is the template for gpick config init --local
const defaultLocalConfig = `# gpick local config (per-repo overrides)
# Place this file at the root of the repository.
# Settings here override the global config for this repo only.

# [cleanup]
# stale_days = 30

# [sweep]
# stale_months = 6
# remote = "upstream"

# [branch]
# prefix = "team/"
`

// DefaultLocalConfig returns the default local configuration template content.
func DefaultLocalConfig() string {
	return defaultLocalConfig
}

// InitLocal writes the local config template into repoPath.
func InitLocal(repoPath string, force bool) (string, error) {
	return writeTemplate(filepath.Join(repoPath, LocalConfigFileName), defaultLocalConfig, force)
}
