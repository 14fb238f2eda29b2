// Package rconfig loads reconciler capability flags from an optional YAML
// file on disk, following internal/config.Load's "return default if not
// found" shape — JSON there, YAML here, since this config is meant to be
// hand-edited by someone tuning the fast-path thresholds rather than
// written back out by the program itself.
package rconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the reconciler's tunable capability flags.
type Config struct {
	// FenwickLazyThreshold is loaded and shown by reconctl tui but not read
	// by the reconciler: whether suffix shifts go through the Fenwick tree
	// is decided only by rangeindex.Index.Lazy, which nothing sets from
	// this value.
	FenwickLazyThreshold int `yaml:"fenwick_lazy_threshold"`

	// BulkRunChildThreshold is loaded but not read by any code path. The
	// multi-block-insert path always emits one combined insert for the
	// whole run, whatever its child count, and has no separate bulk mode.
	BulkRunChildThreshold int `yaml:"bulk_run_child_threshold"`

	// DeletionClampDepth is loaded but not read by any code path; the
	// delete-blocks path does not walk ancestors for a clamp range.
	DeletionClampDepth int `yaml:"deletion_clamp_depth"`

	// DebugInvariants only controls whether reconctl tui shows
	// FenwickLazyThreshold in its inspector pane; the reconciler runs no
	// invariant checks.
	DebugInvariants bool `yaml:"debug_invariants"`
}

const (
	configDirName  = ".reconctl"
	configFileName = "config.yaml"
)

// Default returns the compiled-in configuration used when no file is
// present on disk.
func Default() *Config {
	return &Config{
		FenwickLazyThreshold:  256,
		BulkRunChildThreshold: 8,
		DeletionClampDepth:    4,
		DebugInvariants:       false,
	}
}

// GetConfigDir returns the path to reconctl's config directory.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("rconfig: getting home directory: %w", err)
	}
	return filepath.Join(home, configDirName), nil
}

// EnsureConfigDir creates the config directory if it doesn't exist.
func EnsureConfigDir() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("rconfig: creating config directory: %w", err)
	}
	return dir, nil
}

// Load loads the configuration from disk, returning Default() if no file
// is present.
func Load() (*Config, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return nil, err
	}

	path := filepath.Join(dir, configFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rconfig: reading config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("rconfig: parsing config: %w", err)
	}
	return cfg, nil
}

// LoadFrom loads the configuration from an explicit path rather than the
// default config directory, used by cmd/reconctl's --config flag.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rconfig: reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("rconfig: parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to disk.
func (c *Config) Save() error {
	dir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	path := filepath.Join(dir, configFileName)
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("rconfig: marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("rconfig: writing config: %w", err)
	}
	return nil
}
