package commands

import (
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/schemagen/display"
	"github.com/teranos/schemagen/errors"
	"github.com/teranos/schemagen/history"
)

// HistoryCmd lists past generation runs
var HistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past generation runs",
	Long: `Show the most recent generation runs from the history database.

Examples:
  schemagen history             # Last 20 runs
  schemagen history --limit 0   # Every run
  schemagen history --json      # Machine-readable output`,
	RunE: runHistory,
}

func init() {
	HistoryCmd.Flags().Int("limit", 20, "Number of runs to show (0 for all)")
	HistoryCmd.Flags().Bool("json", false, "Output as JSON")
}

func runHistory(cmd *cobra.Command, args []string) error {
	c, err := validConfig()
	if err != nil {
		return err
	}
	if !c.History.Enabled {
		return errors.WithHint(
			errors.New("run history is disabled"),
			"set history.enabled = true in schemagen.toml",
		)
	}

	limit, _ := cmd.Flags().GetInt("limit")

	store, closeStore, err := openHistory(c)
	if err != nil {
		return err
	}
	defer closeStore()

	runs, err := store.Recent(limit)
	if err != nil {
		return err
	}

	if display.ShouldOutputJSON(cmd) {
		if runs == nil {
			runs = []history.Run{}
		}
		return display.OutputJSON(cmd.OutOrStdout(), runs)
	}

	if len(runs) == 0 {
		pterm.Info.Println("No generation runs recorded yet")
		return nil
	}
	return pterm.DefaultTable.WithHasHeader().WithData(historyTable(runs)).Render()
}

// historyTable lays out runs as table rows, header first.
func historyTable(runs []history.Run) pterm.TableData {
	data := pterm.TableData{{"Started", "Status", "Version", "Files", "Duration", "Error"}}
	for _, r := range runs {
		data = append(data, []string{
			r.StartedAt.Local().Format(time.DateTime),
			string(r.Status),
			r.SchemaVersion,
			fmt.Sprintf("%d", r.ArtifactCount),
			r.Duration().Round(time.Millisecond).String(),
			r.Error,
		})
	}
	return data
}
