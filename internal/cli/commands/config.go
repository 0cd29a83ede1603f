package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jaytechpal/FileOrbit/internal/cli/ui"
	"github.com/jaytechpal/FileOrbit/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newAppContext(context.Background())
		if err != nil {
			return err
		}

		if ui.GlobalFormatter.IsJSON() {
			return ui.GlobalFormatter.Output(app.cfg)
		}

		data, err := json.MarshalIndent(app.cfg, "", "  ")
		if err != nil {
			return err
		}
		ui.OutputLine("%s", string(data))
		ui.OutputLine("%s", ui.DimStyle.Render("config: "+app.configMgr.ConfigPath()))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newAppContext(context.Background())
		if err != nil {
			return err
		}
		ui.OutputLine("%s", app.configMgr.ConfigPath())
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a configuration value",
	Long: `Change a configuration value and persist it.

Supported keys:
  theme            appearance theme name
  show-hidden      show hidden files (true/false)
  confirm-delete   ask before deleting (true/false)
  use-trash        delete to the system trash (true/false)
  verify           verify checksums after copying (true/false)
  buffer-size      copy buffer size in bytes, 0 for adaptive`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		app, err := newAppContext(ctx)
		if err != nil {
			return err
		}

		key, value := args[0], args[1]
		err = app.configMgr.Update(ctx, func(cfg *config.Config) error {
			return applySetting(cfg, key, value)
		})
		if err != nil {
			return err
		}
		ui.Success("%s = %s", key, value)
		return nil
	},
}

func applySetting(cfg *config.Config, key, value string) error {
	switch key {
	case "theme":
		cfg.Appearance.Theme = value
		return nil
	case "show-hidden":
		return setBool(&cfg.Appearance.ShowHiddenFiles, value)
	case "confirm-delete":
		return setBool(&cfg.Behavior.ConfirmDelete, value)
	case "use-trash":
		return setBool(&cfg.Behavior.UseTrash, value)
	case "verify":
		return setBool(&cfg.FileOperations.VerifyChecksums, value)
	case "buffer-size":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("buffer-size must be a non-negative integer: %s", value)
		}
		cfg.FileOperations.CopyBufferSize = n
		return nil
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
}

func setBool(target *bool, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("expected true or false, got %s", value)
	}
	*target = b
	return nil
}

var configValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a configuration file against the schema",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var path string
		if len(args) == 1 {
			path = args[0]
		} else {
			app, err := newAppContext(context.Background())
			if err != nil {
				return err
			}
			path = app.configMgr.ConfigPath()
		}

		if err := config.ValidateFile(path); err != nil {
			return err
		}
		ui.Success("%s is valid", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configValidateCmd)
}
