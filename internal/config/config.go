// Package config loads cm settings.
//
// Settings are layered: built-in defaults, then the YAML config file, then
// CM_* environment variables. Command-line flags are applied last by the CLI.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// AppName names the per-user data and config directories.
const AppName = "cm"

// Config contains cm configuration parameters.
type Config struct {
	// DataDir is the root holding contacts/ and books/.
	DataDir string `yaml:"data_dir" env:"CM_DATA_DIR"`

	// IndexSeparator joins the values of one index row.
	IndexSeparator string `yaml:"index_separator" env:"CM_INDEX_SEPARATOR"`

	// LogLevel is a slog level name: debug, info, warn or error.
	LogLevel string `yaml:"log_level" env:"CM_LOG_LEVEL"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DataDir:        DefaultDataDir(),
		IndexSeparator: "\t",
		LogLevel:       "warn",
	}
}

// Load builds the configuration from defaults, the YAML file at path and the
// environment. An empty path means DefaultPath, which may be absent; an
// explicitly named file must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(b, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		slog.Debug("config file loaded", "path", path)
	case errors.Is(err, os.ErrNotExist) && !explicit:
		slog.Debug("no config file", "path", path)
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if _, err := cfg.Level(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(b []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// DefaultPath returns $XDG_CONFIG_HOME/cm/config.yaml, falling back to
// ~/.config/cm/config.yaml.
func DefaultPath() string {
	return filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config"), AppName, "config.yaml")
}

// DefaultDataDir returns $XDG_DATA_HOME/cm, falling back to ~/.local/share/cm.
func DefaultDataDir() string {
	return filepath.Join(xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share")), AppName)
}

func xdgDir(envVar, homeRelative string) string {
	if dir := os.Getenv(envVar); filepath.IsAbs(dir) {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// No home: keep data beside the working directory.
		return homeRelative
	}
	return filepath.Join(home, homeRelative)
}
