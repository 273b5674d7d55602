package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/schemagen/config"
	"github.com/teranos/schemagen/errors"
)

// ConfigCmd groups configuration subcommands
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show, create or validate configuration",
	Long: `Manage schemagen configuration.

Configuration is merged from /etc/schemagen/config.toml,
~/.schemagen/config.toml and the nearest schemagen.toml, lowest
precedence first. SCHEMAGEN_<SECTION>_<KEY> environment variables
override every file.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		out, err := formatConfig(cfg, format)
		if err != nil {
			return err
		}

		if sources := config.Sources(); len(sources) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "# Sources: %s\n", strings.Join(sources, ", "))
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a starter configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.ProjectFileName
		if len(args) == 1 {
			path = args[0]
		}
		force, _ := cmd.Flags().GetBool("force")

		if err := config.Init(path, config.Default(), force); err != nil {
			return err
		}
		pterm.Success.Printfln("Wrote %s", path)
		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := validConfig(); err != nil {
			return err
		}
		pterm.Success.Println("Configuration is valid")
		return nil
	},
}

func init() {
	configShowCmd.Flags().String("format", "toml", "Output format (toml, json, yaml)")
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file (a backup is kept)")

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configValidateCmd)
}

// formatConfig encodes c in the requested format.
func formatConfig(c *config.Config, format string) (string, error) {
	if c == nil {
		return "", errors.New("configuration not loaded")
	}

	switch format {
	case "toml":
		data, err := config.Marshal(c)
		if err != nil {
			return "", err
		}
		return string(data), nil

	case "json":
		data, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			return "", errors.Wrap(err, "failed to marshal config as JSON")
		}
		return string(data) + "\n", nil

	case "yaml":
		data, err := yaml.Marshal(c)
		if err != nil {
			return "", errors.Wrap(err, "failed to marshal config as YAML")
		}
		return string(data), nil

	default:
		return "", errors.Newf("unsupported format %q (use toml, json or yaml)", format)
	}
}
