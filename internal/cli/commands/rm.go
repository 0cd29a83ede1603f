package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jaytechpal/FileOrbit/internal/cli/ui"
	"github.com/jaytechpal/FileOrbit/internal/operation"
)

var (
	flagPermanent bool
	flagForce     bool
)

var rmCmd = &cobra.Command{
	Use:   "rm <path>...",
	Short: "Delete files or directories",
	Long: `Delete one or more files or directories.

Deletions go to the system trash unless --permanent is given or trash is
disabled in the configuration. When the trash is unavailable the delete
falls back to permanent removal.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newAppContext(context.Background())
		if err != nil {
			return err
		}

		if app.cfg.Behavior.ConfirmDelete && !flagForce && !ui.GlobalFormatter.IsJSON() {
			if !confirm(fmt.Sprintf("Delete %d item(s)?", len(args))) {
				ui.Info("aborted")
				return nil
			}
		}

		req := operation.Request{
			Sources:  args,
			Kind:     operation.Delete,
			UseTrash: app.cfg.Behavior.UseTrash && !flagPermanent,
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		id, err := app.ops.Dispatch(ctx, req, nil)
		if err != nil {
			return err
		}
		result, err := app.ops.Wait(id)
		if err != nil {
			return err
		}
		return reportResult(operation.Delete, result, len(args), "")
	},
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func init() {
	rmCmd.Flags().BoolVar(&flagPermanent, "permanent", false, "Bypass the trash and remove permanently")
	rmCmd.Flags().BoolVar(&flagForce, "force", false, "Skip the confirmation prompt")
}
