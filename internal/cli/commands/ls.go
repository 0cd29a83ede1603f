package commands

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jaytechpal/FileOrbit/internal/cli/ui"
)

var flagShowHidden bool

type dirEntry struct {
	Name     string `json:"name"`
	Dir      bool   `json:"dir"`
	Size     int64  `json:"size"`
	Modified string `json:"modified"`
}

var lsCmd = &cobra.Command{
	Use:   "ls [path]",
	Short: "List a directory",
	Long:  "List directory contents the way a pane would show them, directories first.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newAppContext(context.Background())
		if err != nil {
			return err
		}

		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			return err
		}

		showHidden := flagShowHidden || app.cfg.Appearance.ShowHiddenFiles
		rows := make([]dirEntry, 0, len(entries))
		for _, e := range entries {
			if !showHidden && strings.HasPrefix(e.Name(), ".") {
				continue
			}
			info, err := e.Info()
			if err != nil {
				// Entry vanished between ReadDir and stat
				continue
			}
			rows = append(rows, dirEntry{
				Name:     e.Name(),
				Dir:      e.IsDir(),
				Size:     info.Size(),
				Modified: ui.FormatTime(info.ModTime()),
			})
		}

		sort.SliceStable(rows, func(i, j int) bool {
			if rows[i].Dir != rows[j].Dir {
				return rows[i].Dir
			}
			return rows[i].Name < rows[j].Name
		})

		if ui.GlobalFormatter.IsJSON() {
			return ui.GlobalFormatter.Output(rows)
		}

		tbl := ui.NewTable("Name", "Size", "Modified")
		for _, r := range rows {
			icon := ui.FileIcon
			size := ui.FormatSize(r.Size)
			if r.Dir {
				icon = ui.FolderIcon
				size = "-"
			}
			tbl.AddRow(icon+" "+r.Name, size, r.Modified)
		}
		tbl.Print()
		return nil
	},
}

func init() {
	lsCmd.Flags().BoolVarP(&flagShowHidden, "all", "a", false, "Include hidden entries")
}
