package config

// MergeLocal merges a local per-repo config into a global config,
// returning a new Config without mutating the global.
// Returns global unchanged if local is nil.
func MergeLocal(global *Config, local *LocalConfig) *Config {
	if local == nil {
		return global
	}

	// Shallow copy: picker and theme are global-only.
	merged := *global
	if len(global.Picker.FzfOpts) > 0 {
		merged.Picker.FzfOpts = append([]string(nil), global.Picker.FzfOpts...)
	}

	if local.Cleanup.StaleDays > 0 {
		merged.Cleanup.StaleDays = local.Cleanup.StaleDays
	}
	if local.Sweep.StaleMonths > 0 {
		merged.Sweep.StaleMonths = local.Sweep.StaleMonths
	}
	if local.Sweep.Remote != "" {
		merged.Sweep.Remote = local.Sweep.Remote
	}
	if local.Branch.Prefix != nil {
		merged.Branch.Prefix = *local.Branch.Prefix
	}

	return &merged
}
