package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jaytechpal/FileOrbit/internal/cli/ui"
	"github.com/jaytechpal/FileOrbit/internal/operation"
)

var (
	flagOverwrite string
	flagVerify    bool
)

func registerTransferFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagOverwrite, "overwrite", "skip", "Existing file policy (skip, overwrite, rename)")
	cmd.Flags().BoolVar(&flagVerify, "verify", false, "Verify checksums after copying")
}

func parseOverwrite(s string) (operation.OverwritePolicy, error) {
	switch s {
	case "skip", "":
		return operation.PolicySkip, nil
	case "overwrite":
		return operation.PolicyOverwrite, nil
	case "rename":
		return operation.PolicyRename, nil
	default:
		return 0, fmt.Errorf("unsupported overwrite policy: %s", s)
	}
}

// runTransfer dispatches a copy or move and blocks until it finishes,
// rendering progress on the terminal. Ctrl-C cancels the operation and
// still waits for the worker to stop at a chunk boundary.
func runTransfer(kind operation.Kind, args []string) error {
	app, err := newAppContext(context.Background())
	if err != nil {
		return err
	}

	policy, err := parseOverwrite(flagOverwrite)
	if err != nil {
		return err
	}

	sources := args[:len(args)-1]
	dest := args[len(args)-1]

	req := operation.Request{
		Sources:   sources,
		Dest:      dest,
		Kind:      kind,
		Overwrite: policy,
		Verify:    flagVerify || app.cfg.FileOperations.VerifyChecksums,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	showProgress := !ui.GlobalFormatter.IsJSON() && app.cfg.FileOperations.ShowProgress
	onProgress := func(p operation.Progress) {
		if showProgress {
			ui.ProgressLine(kind.String(), p.Percent, p.BytesDone, p.BytesTotal)
		}
	}

	id, err := app.ops.Dispatch(ctx, req, onProgress)
	if err != nil {
		return err
	}

	result, err := app.ops.Wait(id)
	if showProgress {
		ui.EndProgress()
	}
	if err != nil {
		return err
	}

	return reportResult(kind, result, len(sources), dest)
}

func reportResult(kind operation.Kind, result operation.Result, n int, dest string) error {
	if ui.GlobalFormatter.IsJSON() {
		return ui.GlobalFormatter.Output(map[string]interface{}{
			"operation": kind.String(),
			"status":    result.Status.String(),
			"sources":   n,
			"dest":      dest,
		})
	}

	switch result.Status {
	case operation.StatusSuccess:
		ui.Success("%s finished (%d item(s))", kind, n)
		return nil
	case operation.StatusCancelled:
		ui.Warning("%s cancelled, already transferred files kept", kind)
		return nil
	default:
		return result.Err
	}
}

var copyCmd = &cobra.Command{
	Use:   "copy <source>... <dest>",
	Short: "Copy files or directories",
	Long: `Copy one or more files or directories into a destination directory.

The copy runs as a background operation with chunked progress. Press
Ctrl-C to cancel; files copied before the cancellation are kept, the file
in flight may remain partially written.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransfer(operation.Copy, args)
	},
}

var moveCmd = &cobra.Command{
	Use:   "move <source>... <dest>",
	Short: "Move files or directories",
	Long: `Move one or more files or directories into a destination directory.

Same-volume moves are instantaneous renames; cross-volume moves copy and
then remove the source.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransfer(operation.Move, args)
	},
}

func init() {
	registerTransferFlags(copyCmd)
	registerTransferFlags(moveCmd)
}
