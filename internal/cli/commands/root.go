package commands

import (
	"github.com/spf13/cobra"

	"github.com/jaytechpal/FileOrbit/internal/cli/ui"
)

var flagOutputFormat string

var rootCmd = &cobra.Command{
	Use:   "fileorbit",
	Short: "FileOrbit - Dual-pane file manager toolkit",
	Long: `FileOrbit manages files the way an orthodox dual-pane file manager does:
copy, move and delete run as independent background operations with live
progress, directories are watched for changes, and context menus mirror
what the native OS shell would offer.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		format, err := ui.ParseFormat(flagOutputFormat)
		if err != nil {
			return err
		}
		return ui.SetGlobalFormatter(format)
	},
}

func init() {
	RegisterLoggerFlags(rootCmd)
	rootCmd.PersistentFlags().StringVarP(&flagOutputFormat, "format", "f", "", "Output format (pretty, json)")

	rootCmd.AddCommand(copyCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(bookmarkCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	// Alias matching the muscle memory of cp users
	cpCmd := &cobra.Command{
		Use:   "cp <source>... <dest>",
		Short: "Alias for 'copy'",
		Args:  cobra.MinimumNArgs(2),
		RunE:  copyCmd.RunE,
	}
	mvCmd := &cobra.Command{
		Use:   "mv <source>... <dest>",
		Short: "Alias for 'move'",
		Args:  cobra.MinimumNArgs(2),
		RunE:  moveCmd.RunE,
	}
	rootCmd.AddCommand(cpCmd)
	rootCmd.AddCommand(mvCmd)
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		_ = ui.GlobalFormatter.OutputError(err)
	}
	return err
}
