// Package config loads dev's settings from defaults, an optional JSONC
// file, DEV_* environment variables and bound command-line flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/tidwall/jsonc"
)

// EnvPrefix prefixes environment overrides, e.g. DEV_DOCKER_HOST.
const EnvPrefix = "DEV"

// Keys understood by Load. Flags are bound to these names.
const (
	KeyDockerHost   = "docker.host"
	KeyLogLevel     = "log.level"
	KeyOutputFormat = "output.format"
)

// Output formats accepted for KeyOutputFormat.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// DockerConfig holds Docker connection settings. An empty Host means the
// DOCKER_* environment and socket detection decide.
type DockerConfig struct {
	Host string `mapstructure:"host"`
}

// LoggingConfig holds the logging-related configuration. Level applies
// only when no -v flag was given.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// OutputConfig selects how list and inspect results are rendered.
type OutputConfig struct {
	Format string `mapstructure:"format"`
}

// Config is the top-level configuration struct.
type Config struct {
	Docker  DockerConfig  `mapstructure:"docker"`
	Logging LoggingConfig `mapstructure:"log"`
	Output  OutputConfig  `mapstructure:"output"`
}

// DefaultPath returns the config file consulted when none is given:
// <user config dir>/dev/config.jsonc.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "dev", "config.jsonc"), nil
}

// New returns a viper instance with defaults and environment binding set.
// Callers bind flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyDockerHost, "")
	v.SetDefault(KeyLogLevel, "error")
	v.SetDefault(KeyOutputFormat, FormatTable)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the config file at path into v and decodes the result.
// With an empty path the DefaultPath file is read if it exists; an explicit
// path must exist. The file is JSON with comments and trailing commas
// allowed.
func Load(v *viper.Viper, path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		// The default location is optional, so an unknown config dir only
		// means there is nothing to read.
		if p, err := DefaultPath(); err == nil {
			path = p
		}
	}

	if path != "" {
		if err := readFile(v, path); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// readFile strips JSONC comments and feeds the result to viper as JSON.
func readFile(v *viper.Viper, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	v.SetConfigType("json")
	if err := v.ReadConfig(bytes.NewReader(jsonc.ToJSON(raw))); err != nil {
		return fmt.Errorf("error parsing config file %s: %w", path, err)
	}
	return nil
}

// Validate rejects settings the CLI cannot act on.
func (c *Config) Validate() error {
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	switch c.Output.Format {
	case FormatTable, FormatJSON, FormatYAML:
		return nil
	default:
		return fmt.Errorf("invalid output format %q (valid: table, json, yaml)", c.Output.Format)
	}
}
