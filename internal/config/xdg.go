package config

import (
	"os"
	"path/filepath"
)

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGCacheHome returns the XDG cache home or a default fallback.
func XDGCacheHome() string {
	if v := os.Getenv("XDG_CACHE_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".cache")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), "crossword-stats", "config.toml")
}

// DefaultCredentialPath returns the default user_info.json path.
func DefaultCredentialPath() string {
	return filepath.Join(XDGConfigHome(), "crossword-stats", "user_info.json")
}

// DefaultCachePath returns the default path for the response cache database.
func DefaultCachePath() string {
	return filepath.Join(XDGCacheHome(), "crossword-stats", "cache.db")
}
