// Package config reads and writes the .coremaid.yaml project file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"sigs.k8s.io/yaml"

	"github.com/griffnb/core-maid/internal/membertype"
)

// DefaultFile is where the tool looks for configuration when no path is given.
const DefaultFile = ".coremaid.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "COREMAID_"

var open = os.ReadFile

// Config is the persisted project configuration.
type Config struct {
	// MemberTypes holds serialized member type settings, see membertype.Format.
	MemberTypes []string `json:"memberTypes,omitempty"`

	// Alphabetize sorts declarations by name inside each member type group.
	Alphabetize bool `json:"alphabetize,omitempty" env:"ALPHABETIZE"`

	// Regions wraps every group in "// region" markers.
	Regions bool `json:"regions,omitempty" env:"REGIONS"`

	// Excludes are directories skipped while walking.
	Excludes []string `json:"excludes,omitempty" env:"EXCLUDES" envSeparator:","`

	// ParseVendor walks vendor directories too.
	ParseVendor bool `json:"parseVendor,omitempty" env:"PARSE_VENDOR"`
}

// Default is the configuration written by "settings init".
func Default() *Config {
	return &Config{
		MemberTypes: membertype.DefaultSettings().Strings(),
	}
}

// Load reads path and applies environment overrides. A missing DefaultFile is
// not an error, any other missing file is.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := applyEnv(cfg, env.ToMap(os.Environ())); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read parses the file alone, without environment overrides. Use it when the
// result is saved back.
func Read(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		path = DefaultFile
	}

	b, err := open(path)
	if err != nil {
		if path == DefaultFile && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("could not open config file: %w", err)
	}

	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("could not parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// applyEnv overlays COREMAID_* variables found in environ.
func applyEnv(cfg *Config, environ map[string]string) error {
	err := env.ParseWithOptions(cfg, env.Options{
		Prefix:      EnvPrefix,
		Environment: environ,
	})
	if err != nil {
		return fmt.Errorf("could not read environment overrides: %w", err)
	}
	return nil
}

// Save writes cfg as YAML.
func (c *Config) Save(path string) error {
	if path == "" {
		path = DefaultFile
	}

	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// MemberTypeSettings builds the settings catalogue, falling back to defaults for
// entries that do not deserialize.
func (c *Config) MemberTypeSettings(debug membertype.Debugger) *membertype.Settings {
	return membertype.LoadSettings(c.MemberTypes, debug)
}

// SetMemberTypeSettings stores s back in serialized form.
func (c *Config) SetMemberTypeSettings(s *membertype.Settings) {
	c.MemberTypes = s.Strings()
}
