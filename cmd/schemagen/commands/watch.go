package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/schemagen/config"
	"github.com/teranos/schemagen/logger"
	"github.com/teranos/schemagen/watch"
)

// WatchCmd regenerates whenever the definitions change
var WatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate whenever definitions change",
	Long: `Watch the definitions root and regenerate after every change.

An initial generation runs at startup. Bursts of editor writes are
collapsed using the configured debounce window (watch.debounce_ms).
Writes to the version files are ignored. Press Ctrl+C to stop.`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	c, err := validConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return watchDefinitions(ctx, c, func(changed []string) {
		if len(changed) > 0 {
			pterm.Info.Printfln("Changed: %v", changed)
		}
		result, err := runGeneration(c, generateOptions{})
		if err != nil {
			// Keep watching; the next save may fix the definitions
			pterm.Error.Printfln("Generation failed: %v", err)
			return
		}
		pterm.Success.Println(describe(result))
	})
}

// watchDefinitions runs trigger once with no changes, then after every
// debounced change in the definitions root until ctx is done.
func watchDefinitions(ctx context.Context, c *config.Config, trigger watch.TriggerFunc) error {
	w, err := watch.New(watch.Options{
		Dir:      c.Paths.DefinitionsRoot,
		Debounce: c.Debounce(),
		Ignore:   []string{c.CanonicalVersionPath(), c.GeneratedStampPath()},
		Logger:   logger.ComponentLogger("watch"),
	}, trigger)
	if err != nil {
		return err
	}

	trigger(nil)

	pterm.Info.Printfln("Watching %s", c.Paths.DefinitionsRoot)
	return w.Run(ctx)
}
