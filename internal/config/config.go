// Package config loads the tokenvars configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// appName is the directory name under the user's config directory.
const appName = "tokenvars"

// EnvConfig names the environment variable that points at a config file.
var EnvConfig = strings.ToUpper(appName) + "_CONFIG"

// DefaultDatabase is the SQLite path used when neither the file nor a flag
// names one.
const DefaultDatabase = "tokenvars.db"

// Config is the contents of the configuration file.
type Config struct {
	// Database is the SQLite path of the variable store.
	Database string `yaml:"database"`

	// DefaultScopes are given to color and number variables that have none.
	// An explicit empty list turns scope defaulting off.
	DefaultScopes []string `yaml:"default_scopes"`

	// Libraries enables team-library lookups. Nil means enabled.
	Libraries *bool `yaml:"libraries"`

	// ModeLimit caps modes per collection. Zero means no limit.
	ModeLimit int `yaml:"mode_limit"`

	// Path is the file this config was read from, if any.
	Path string `yaml:"-"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Database:      DefaultDatabase,
		DefaultScopes: []string{"ALL_SCOPES"},
	}
}

// LibrariesEnabled reports whether team libraries are on.
func (c *Config) LibrariesEnabled() bool {
	return c.Libraries == nil || *c.Libraries
}

// Load reads the configuration file.
//
// Lookup order: explicit (the --config flag), $TOKENVARS_CONFIG,
// $XDG_CONFIG_HOME/tokenvars/config.yaml, ~/.config/tokenvars/config.yaml.
// An explicit or environment path must exist; a missing default file yields
// Default().
func Load(explicit string) (*Config, error) {
	if explicit != "" {
		return ReadFile(explicit)
	}
	if v := os.Getenv(EnvConfig); v != "" {
		return ReadFile(v)
	}

	path, err := defaultPath()
	if err != nil {
		return Default(), nil
	}
	cfg, err := ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// defaultPath returns the per-user config file path.
func defaultPath() (string, error) {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, appName, "config.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", appName, "config.yaml"), nil
}

// ReadFile parses the config file at path.
func ReadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Parse decodes YAML config data over Default(). Unknown keys are errors.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse: %w", err)
	}

	if cfg.ModeLimit < 0 {
		return nil, fmt.Errorf("mode_limit must not be negative, got %d", cfg.ModeLimit)
	}
	if slices.Contains(cfg.DefaultScopes, "") {
		return nil, errors.New("default_scopes must not contain empty names")
	}
	if cfg.DefaultScopes == nil {
		cfg.DefaultScopes = []string{}
	}
	return cfg, nil
}
