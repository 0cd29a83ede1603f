package commands

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jaytechpal/FileOrbit/internal/cli/ui"
	"github.com/jaytechpal/FileOrbit/internal/watcher"
)

var flagDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch <dir>...",
	Short: "Watch directories for changes",
	Long: `Print a line whenever the contents of a watched directory change.

Bursts of filesystem events are coalesced into a single notification per
directory. Directories that cannot be watched are skipped with a warning.
Runs until interrupted.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newAppContext(context.Background())
		if err != nil {
			return err
		}

		w, err := watcher.New(app.log, watcher.WithDebounce(flagDebounce))
		if err != nil {
			return err
		}
		defer func() { _ = w.Close() }()

		for _, dir := range args {
			w.Watch(dir)
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		for {
			select {
			case change, ok := <-w.Changes():
				if !ok {
					return nil
				}
				if ui.GlobalFormatter.IsJSON() {
					if err := ui.GlobalFormatter.Output(change); err != nil {
						return err
					}
				} else {
					ui.Info("changed: %s", change.Dir)
				}
			case <-ctx.Done():
				return nil
			}
		}
	},
}

func init() {
	watchCmd.Flags().DurationVar(&flagDebounce, "debounce", watcher.DefaultDebounce, "Coalescing window for change events")
}
