package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"specgen/internal/consistency"
	"specgen/internal/layout"
	"specgen/internal/naming"
	"specgen/internal/spec"
)

// Log formats understood by the logger.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config is the root settings document.
type Config struct {
	Naming NamingConfig `yaml:"naming" toml:"naming"`
	Build  BuildConfig  `yaml:"build" toml:"build"`
	Check  CheckConfig  `yaml:"check" toml:"check"`
	Log    LogConfig    `yaml:"log" toml:"log"`
}

// NamingConfig controls identifier normalization.
type NamingConfig struct {
	MaxLength int `yaml:"max_length" toml:"max_length"`
}

// BuildConfig controls tree building.
type BuildConfig struct {
	MaxDepth int `yaml:"max_depth" toml:"max_depth"`
	// MaxEntries bounds the entries laid out per scope.
	MaxEntries int `yaml:"max_entries" toml:"max_entries"`
	// Sections adds section aliases on top of the built-in ones.
	Sections map[string]string `yaml:"sections" toml:"sections"`
}

// CheckConfig controls cross-artifact comparison.
type CheckConfig struct {
	Strict bool     `yaml:"strict" toml:"strict"`
	Ignore []string `yaml:"ignore" toml:"ignore"`
	// Types maps extra type spellings to canonical kinds.
	Types map[string]string `yaml:"types" toml:"types"`
}

// LogConfig controls logger output.
type LogConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)

	return cfg
}

// LoadFile reads a config file, choosing the decoder by extension.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return ParseTOML(data)
	case ".yaml", ".yml", "":
		return ParseYAML(data)
	default:
		return nil, fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
}

// ParseYAML parses YAML config data.
func ParseYAML(data []byte) (*Config, error) {
	var cfg Config

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	return finish(&cfg)
}

// ParseTOML parses TOML config data.
func ParseTOML(data []byte) (*Config, error) {
	var cfg Config

	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config TOML: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}

	return finish(&cfg)
}

func finish(cfg *Config) (*Config, error) {
	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(cfg *Config) {
	if cfg.Naming.MaxLength == 0 {
		cfg.Naming.MaxLength = naming.DefaultMaxLength
	}

	if cfg.Build.MaxDepth == 0 {
		cfg.Build.MaxDepth = spec.DefaultMaxDepth
	}

	if cfg.Build.MaxEntries == 0 {
		cfg.Build.MaxEntries = layout.DefaultMaxEntries
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	if cfg.Log.Format == "" {
		cfg.Log.Format = FormatConsole
	}
}

// Validate reports settings that cannot be honored.
func (c *Config) Validate() error {
	if c.Naming.MaxLength < naming.MinMaxLength {
		return fmt.Errorf("naming.max_length must be at least %d, got %d", naming.MinMaxLength, c.Naming.MaxLength)
	}

	if c.Build.MaxDepth < 0 {
		return fmt.Errorf("build.max_depth must not be negative, got %d", c.Build.MaxDepth)
	}

	if c.Build.MaxEntries < 0 {
		return fmt.Errorf("build.max_entries must not be negative, got %d", c.Build.MaxEntries)
	}

	for alias, scope := range c.Build.Sections {
		if !knownScope(scope) {
			return fmt.Errorf("build.sections[%q]: unknown scope %q", alias, scope)
		}
	}

	switch c.Log.Format {
	case FormatConsole, FormatJSON:
	default:
		return fmt.Errorf("log.format must be %q or %q, got %q", FormatConsole, FormatJSON, c.Log.Format)
	}

	return nil
}

// BuilderConfig converts the settings into a builder configuration.
func (c *Config) BuilderConfig() spec.BuildConfig {
	bc := spec.DefaultBuildConfig()
	bc.MaxDepth = c.Build.MaxDepth
	bc.Naming = naming.Normalizer{MaxLength: c.Naming.MaxLength}

	for alias, scope := range c.Build.Sections {
		bc.Sections[strings.ToLower(strings.TrimSpace(alias))] = spec.ScopeName(scope)
	}

	return bc
}

// LayoutLimits returns the bounds applied while laying out.
func (c *Config) LayoutLimits() layout.Limits {
	return layout.Limits{MaxEntries: c.Build.MaxEntries}
}

// CheckOptions converts the settings into checker options. The ignore list
// is copied so callers may extend it.
func (c *Config) CheckOptions() consistency.Options {
	return consistency.Options{
		Ignore: slices.Clone(c.Check.Ignore),
		Strict: c.Check.Strict,
		Types:  consistency.NewTypeTable(c.Check.Types),
	}
}

func knownScope(name string) bool {
	for _, s := range spec.AllScopes {
		if string(s) == name {
			return true
		}
	}

	return false
}
