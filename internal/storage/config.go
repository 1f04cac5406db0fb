package storage

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/jacksmith/lmdb/internal/validation"
)

const (
	// userConfigFile is the optional user configuration file in the working directory.
	userConfigFile = ".lmdb.yaml"

	// envPrefix marks environment variables that override the config file.
	envPrefix = "LMDB_"

	// Default configuration values
	DefaultDataPath  = "data/films.json"
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "console"
	DefaultColor     = "auto"
)

// Config represents user configuration.
// Values come from defaults, then .lmdb.yaml, then LMDB_* environment variables.
type Config struct {
	// DataPath is the catalog file, relative to the working directory unless absolute.
	DataPath string `koanf:"data_path" validate:"required"`

	// LogLevel is the minimum level written to stderr.
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn error"`

	// LogFormat selects the zap encoder.
	LogFormat string `koanf:"log_format" validate:"oneof=console json"`

	// Color controls ANSI colours in command output.
	Color string `koanf:"color" validate:"oneof=auto always never"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		DataPath:  DefaultDataPath,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
		Color:     DefaultColor,
	}
}

// LoadConfig resolves configuration for the given working directory.
// A missing or empty .lmdb.yaml leaves the defaults in place; partial files
// are merged over them.
func LoadConfig(dir string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(DefaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	configPath := ConfigPath(dir)
	data, err := os.ReadFile(configPath)
	switch {
	case err == nil && len(bytes.TrimSpace(data)) > 0:
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", userConfigFile, err)
		}
	case err != nil && !os.IsNotExist(err):
		return nil, fmt.Errorf("failed to read %s: %w", userConfigFile, err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.Color = strings.ToLower(cfg.Color)

	if err := validation.ValidateStruct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// ResolveDataPath returns DataPath anchored at dir when it is relative.
func (c *Config) ResolveDataPath(dir string) string {
	if filepath.IsAbs(c.DataPath) {
		return c.DataPath
	}
	return filepath.Join(dir, c.DataPath)
}

// ConfigPath returns the path to the user config file in dir.
func ConfigPath(dir string) string {
	return filepath.Join(dir, userConfigFile)
}

// envKey maps LMDB_DATA_PATH to data_path.
func envKey(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, envPrefix))
}
