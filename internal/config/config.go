// Package config loads tool configuration from a TOML file, falling
// back to defaults when the file is absent.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the tool's settings.
type Config struct {
	// DataDir is where index databases live. Empty means
	// ~/.disclose/data.
	DataDir string `toml:"data_dir"`

	// IndexName names the index database file (without extension).
	IndexName string `toml:"index_name"`

	// UserAgent identifies the tool to the filing archive.
	UserAgent string `toml:"user_agent"`

	// ChunkSize is the sliding window size in characters.
	ChunkSize int `toml:"chunk_size"`

	// ChunkStep is the sliding window step in characters.
	ChunkStep int `toml:"chunk_step"`

	// FetchRatePerSec throttles archive requests.
	FetchRatePerSec float64 `toml:"fetch_rate_per_sec"`

	// ReferenceData is an optional path to a TOML reference data file.
	// Empty means the builtin set.
	ReferenceData string `toml:"reference_data"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		IndexName:       "filings",
		ChunkSize:       2000,
		ChunkStep:       1000,
		FetchRatePerSec: 8.0,
	}
}

// DefaultPath returns the default config file location
// (~/.disclose/config.toml).
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".disclose", "config.toml"), nil
}

// Load reads configuration from path. An empty path means the default
// location; a missing file yields defaults without error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return cfg, err
		}
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
