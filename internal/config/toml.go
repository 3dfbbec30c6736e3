// Package config provides XDG paths, TOML configuration, and credential
// loading.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Fetch FetchConfig `toml:"fetch"`
	Chart ChartConfig `toml:"chart"`
}

// FetchConfig maps fetch-related settings.
type FetchConfig struct {
	Days      *int    `toml:"days"`
	BaseURL   *string `toml:"base-url"`
	CacheTTL  *string `toml:"cache-ttl"`
	UserInfo  *string `toml:"user-info"`
	CachePath *string `toml:"cache-path"`
}

// ChartConfig maps chart-related settings.
type ChartConfig struct {
	Width  *int `toml:"width"`
	Height *int `toml:"height"`
	Window *int `toml:"window"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
