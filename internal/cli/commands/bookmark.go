package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jaytechpal/FileOrbit/internal/cli/ui"
)

var bookmarkCmd = &cobra.Command{
	Use:   "bookmark",
	Short: "Manage bookmarked paths",
}

var bookmarkAddCmd = &cobra.Command{
	Use:   "add <name> <path>",
	Short: "Bookmark a directory",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		app, err := newAppContext(ctx)
		if err != nil {
			return err
		}

		path, err := filepath.Abs(args[1])
		if err != nil {
			return err
		}
		if err := app.bookmarks.Add(ctx, args[0], path); err != nil {
			return fmt.Errorf("failed to add bookmark: %w", err)
		}
		ui.Success("bookmarked %s as %q", path, args[0])
		return nil
	},
}

var bookmarkListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List bookmarks",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		app, err := newAppContext(ctx)
		if err != nil {
			return err
		}

		bookmarks, err := app.bookmarks.List(ctx)
		if err != nil {
			return err
		}

		if ui.GlobalFormatter.IsJSON() {
			return ui.GlobalFormatter.Output(bookmarks)
		}

		if len(bookmarks) == 0 {
			ui.Info("no bookmarks yet")
			return nil
		}
		ui.PrintSectionHeader(ui.BookmarkIcon, "Bookmarks", len(bookmarks))
		tbl := ui.NewTable("Name", "Path", "Added")
		for _, b := range bookmarks {
			tbl.AddRow(b.Name, b.Path, ui.FormatTime(b.AddedAt))
		}
		tbl.Print()
		return nil
	},
}

var bookmarkRemoveCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Remove a bookmark",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		app, err := newAppContext(ctx)
		if err != nil {
			return err
		}

		if err := app.bookmarks.Remove(ctx, args[0]); err != nil {
			return err
		}
		ui.Success("removed bookmark %q", args[0])
		return nil
	},
}

func init() {
	bookmarkCmd.AddCommand(bookmarkAddCmd)
	bookmarkCmd.AddCommand(bookmarkListCmd)
	bookmarkCmd.AddCommand(bookmarkRemoveCmd)
}
