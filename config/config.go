// Package config loads schemagen settings from TOML files and SCHEMAGEN_
// environment variables using viper.
package config

import (
	"path/filepath"
	"time"
)

// Config is the complete schemagen configuration.
type Config struct {
	Paths     PathsConfig     `mapstructure:"paths" toml:"paths" json:"paths" yaml:"paths"`
	Generator GeneratorConfig `mapstructure:"generator" toml:"generator" json:"generator" yaml:"generator"`
	History   HistoryConfig   `mapstructure:"history" toml:"history" json:"history" yaml:"history"`
	Watch     WatchConfig     `mapstructure:"watch" toml:"watch" json:"watch" yaml:"watch"`
	Log       LogConfig       `mapstructure:"log" toml:"log" json:"log" yaml:"log"`
}

// PathsConfig locates inputs, outputs and version files.
type PathsConfig struct {
	DefinitionsRoot  string `mapstructure:"definitions_root" toml:"definitions_root" json:"definitions_root" yaml:"definitions_root"`
	OutputRoot       string `mapstructure:"output_root" toml:"output_root" json:"output_root" yaml:"output_root"`
	TemplatesRoot    string `mapstructure:"templates_root" toml:"templates_root" json:"templates_root" yaml:"templates_root"`       // empty = embedded templates
	CanonicalVersion string `mapstructure:"canonical_version" toml:"canonical_version" json:"canonical_version" yaml:"canonical_version"` // relative to definitions_root
	GeneratedStamp   string `mapstructure:"generated_stamp" toml:"generated_stamp" json:"generated_stamp" yaml:"generated_stamp"`     // relative to definitions_root
}

// GeneratorConfig is shared by every generator.
type GeneratorConfig struct {
	LibraryName       string `mapstructure:"library_name" toml:"library_name" json:"library_name" yaml:"library_name"`
	EnumsFile         string `mapstructure:"enums_file" toml:"enums_file" json:"enums_file" yaml:"enums_file"`
	MessagesFile      string `mapstructure:"messages_file" toml:"messages_file" json:"messages_file" yaml:"messages_file"`
	ManifestDelimiter string `mapstructure:"manifest_delimiter" toml:"manifest_delimiter" json:"manifest_delimiter" yaml:"manifest_delimiter"`
}

// HistoryConfig configures the run ledger.
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled" toml:"enabled" json:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" toml:"path" json:"path" yaml:"path"`
}

// WatchConfig configures watch mode.
type WatchConfig struct {
	DebounceMS int `mapstructure:"debounce_ms" toml:"debounce_ms" json:"debounce_ms" yaml:"debounce_ms"`
}

// LogConfig selects the log format.
type LogConfig struct {
	JSON bool `mapstructure:"json" toml:"json" json:"json" yaml:"json"`
}

// CanonicalVersionPath returns the canonical version file path.
func (c *Config) CanonicalVersionPath() string {
	return c.underDefinitions(c.Paths.CanonicalVersion)
}

// GeneratedStampPath returns the generated-stamp file path.
func (c *Config) GeneratedStampPath() string {
	return c.underDefinitions(c.Paths.GeneratedStamp)
}

// Debounce returns the watch debounce window.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Watch.DebounceMS) * time.Millisecond
}

func (c *Config) underDefinitions(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Paths.DefinitionsRoot, p)
}
