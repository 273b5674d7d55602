package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// CleanCmd removes the generated output tree
var CleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the generated output tree",
	Long: `Remove every generated artifact and manifest under the output root,
together with the generated stamp.

The canonical version file is left alone, so the next generate rebuilds
at the current schema version.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := validConfig()
		if err != nil {
			return err
		}
		agg, err := newAggregator(c)
		if err != nil {
			return err
		}
		if err := agg.Clean(); err != nil {
			return err
		}
		pterm.Success.Printfln("Removed %s", agg.OutputRoot())
		return nil
	},
}
