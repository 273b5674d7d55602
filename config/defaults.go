package config

import "github.com/spf13/viper"

const (
	// ProjectFileName is looked up from the working directory upwards
	ProjectFileName = "schemagen.toml"

	// EnvPrefix prefixes environment overrides, e.g. SCHEMAGEN_PATHS_OUTPUT_ROOT
	EnvPrefix = "SCHEMAGEN"

	DefaultDirPermissions = 0o755
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Paths
	v.SetDefault("paths.definitions_root", "definitions")
	v.SetDefault("paths.output_root", "generated")
	v.SetDefault("paths.templates_root", "")
	v.SetDefault("paths.canonical_version", "schema_version.toml")
	v.SetDefault("paths.generated_stamp", "generated_version.toml")

	// Generators
	v.SetDefault("generator.library_name", "ripple")
	v.SetDefault("generator.enums_file", "enums.yaml")
	v.SetDefault("generator.messages_file", "messages.yaml")
	v.SetDefault("generator.manifest_delimiter", ";")

	// Run history
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.path", ".schemagen/history.db")

	v.SetDefault("watch.debounce_ms", 500)

	v.SetDefault("log.json", false)
}
