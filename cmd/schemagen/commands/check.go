package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// Exit codes of the check command.
const (
	ExitUpToDate = 0
	ExitStale    = 1
	ExitFailure  = 2
)

// CheckCmd reports whether the generated output is stale
var CheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Exit non-zero when generated artifacts are stale",
	Long: `Check whether the generated artifacts match the current schema.

The check runs the same version vote as generate but never writes
generated output. The canonical version file may still be raised when a
definitions file changed.

Exit codes:
  0 - Output is up to date
  1 - Output is stale; run 'schemagen generate'
  2 - Error (unreadable definitions, invalid configuration)`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	c, err := validConfig()
	if err != nil {
		return &ExitError{Code: ExitFailure, Err: err}
	}

	agg, err := newAggregator(c)
	if err != nil {
		return &ExitError{Code: ExitFailure, Err: err}
	}

	stale, err := agg.IsStale()
	if err != nil {
		return &ExitError{Code: ExitFailure, Err: err}
	}

	canonical, err := agg.Canonical()
	if err != nil {
		return &ExitError{Code: ExitFailure, Err: err}
	}

	if stale {
		pterm.Warning.Printfln("Generated output is stale (schema version %s)", canonical)
		pterm.Info.Println("Run 'schemagen generate' to regenerate")
		return &ExitError{Code: ExitStale}
	}

	pterm.Success.Printfln("Generated output is up to date (schema version %s)", canonical)
	return nil
}
