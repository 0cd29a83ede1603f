package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/jaytechpal/FileOrbit/internal/cli/ui"
	"github.com/jaytechpal/FileOrbit/internal/shell"
)

type menuEntry struct {
	Label     string `json:"label,omitempty"`
	Kind      string `json:"kind"`
	Command   string `json:"command,omitempty"`
	Priority  int    `json:"priority"`
	Separator bool   `json:"separator,omitempty"`
}

var menuCmd = &cobra.Command{
	Use:   "menu <path>",
	Short: "Show the shell context menu for a path",
	Long: `Build and print the ordered context menu FileOrbit would present for a
file or directory, including actions contributed by installed
applications. Applications that cannot be probed are simply left out.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newAppContext(context.Background())
		if err != nil {
			return err
		}

		info, err := os.Stat(args[0])
		if err != nil {
			return err
		}

		catalog, err := shell.LoadCatalog(app.configMgr.ApplicationsPath())
		if err != nil {
			return err
		}
		apps := shell.NewDiscovery(app.log, catalog).Discover()
		builder := shell.NewBuilder(app.log, apps)

		menu := builder.Build(shell.Target{Paths: args, IsDir: info.IsDir()})

		if ui.GlobalFormatter.IsJSON() {
			entries := make([]menuEntry, 0, len(menu))
			for _, a := range menu {
				entries = append(entries, menuEntry{
					Label:     a.Label,
					Kind:      a.Kind.String(),
					Command:   a.Command,
					Priority:  a.Priority,
					Separator: a.IsSeparator(),
				})
			}
			return ui.GlobalFormatter.Output(entries)
		}

		for _, a := range menu {
			if a.IsSeparator() {
				ui.OutputLine("%s", ui.DimStyle.Render("  ─────────────"))
				continue
			}
			ui.OutputLine("  %s %s", actionGlyph(a.Kind), a.Label)
		}
		return nil
	},
}

// actionGlyph maps every action kind to a display glyph. The switch is
// exhaustive over the kind set.
func actionGlyph(kind shell.ActionKind) string {
	switch kind {
	case shell.KindOpen:
		return "▶"
	case shell.KindOpenWith:
		return "▷"
	case shell.KindOpenNewTab:
		return "⊞"
	case shell.KindAppCommand:
		return "⚙"
	case shell.KindCut:
		return "✂"
	case shell.KindCopy:
		return "⧉"
	case shell.KindPaste:
		return "⎘"
	case shell.KindCreateShortcut:
		return "↪"
	case shell.KindDelete:
		return "🗑"
	case shell.KindRename:
		return "✎"
	case shell.KindSendTo:
		return "✉"
	case shell.KindProperties:
		return "ℹ"
	case shell.KindSeparator:
		return " "
	default:
		return " "
	}
}
