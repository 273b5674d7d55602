package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/schemagen/cmd/schemagen/commands"
	"github.com/teranos/schemagen/logger"
)

var rootCmd = &cobra.Command{
	Use:   "schemagen",
	Short: "schemagen - schema-driven C++ code generator",
	Long: `schemagen - schema-driven C++ code generator.

schemagen reads enum and network message catalogs from a definitions
directory, tracks a semantic schema version for them, and regenerates
paired header/source artifacts only when the schema changed.

Available commands:
  generate - Regenerate artifacts when the schema is stale
  check    - Exit non-zero when artifacts are stale
  clean    - Remove the generated output tree
  watch    - Regenerate whenever definitions change
  history  - Show past generation runs
  config   - Show, create or validate configuration
  version  - Show build information

Examples:
  schemagen generate               # Regenerate if needed
  schemagen generate --force       # Regenerate unconditionally
  schemagen check                  # CI gate: 1 when stale
  schemagen watch -v               # Regenerate on save, log decisions`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		configFile, _ := cmd.Flags().GetString("config")

		cfg, err := commands.LoadConfig(configFile)
		if err != nil {
			return err
		}

		if err := logger.Initialize(cfg.Log.JSON, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")
	rootCmd.PersistentFlags().String("config", "", "Config file (default: schemagen.toml found upwards from the working directory)")

	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.CheckCmd)
	rootCmd.AddCommand(commands.CleanCmd)
	rootCmd.AddCommand(commands.WatchCmd)
	rootCmd.AddCommand(commands.HistoryCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(commands.Report(os.Stderr, err))
	}
}
