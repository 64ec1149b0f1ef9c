package cli

import (
	"errors"
	"strings"

	"toolbar-cli/internal/layout"
	"toolbar-cli/internal/model"

	"github.com/spf13/cobra"
)

func newShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the saved toolbar as a flat list (node ids, depths, disabled tools)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := loadWorkspace(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": w.view(app.Platform)})
		},
	}
	return cmd
}

func newPresetsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List the toolbar presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := loadWorkspace(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			current := w.sess.Preset().ID
			out := []map[string]any{}
			for _, p := range w.catalog.All() {
				out = append(out, map[string]any{
					"id":       p.ID,
					"title":    p.Title,
					"editable": p.Editable,
					"current":  p.ID == current,
					"tools":    p.Tools,
				})
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
	return cmd
}

func newUseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use <preset>",
		Short: "Switch the platform to a preset (default, minimal, custom)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := loadWorkspace(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := model.PresetID(strings.ToLower(strings.TrimSpace(args[0])))
			if err := w.sess.SelectPreset(id); err != nil {
				return writeErr(cmd, errNotFound("preset", string(id)))
			}
			if _, err := w.save(cmd, app); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": w.view(app.Platform)})
		},
	}
	return cmd
}

func newToolsCmd(app *App) *cobra.Command {
	var search string
	var disabled bool

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the tools known to the registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if disabled && strings.TrimSpace(search) != "" {
				return writeErr(cmd, errors.New("--search and --disabled are mutually exclusive"))
			}
			w, err := loadWorkspace(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}

			if disabled {
				out := []model.ToolDefinition{}
				for _, id := range layout.DisabledTools(w.sess.Items(), w.reg) {
					if def, ok := w.reg.Lookup(id); ok {
						out = append(out, def)
					}
				}
				return writeOut(cmd, app, map[string]any{"data": out})
			}

			out := []map[string]any{}
			for _, m := range w.reg.Search(search) {
				row := map[string]any{
					"id":          m.Tool.ID,
					"title":       m.Tool.Title,
					"icon":        m.Tool.Icon,
					"conditional": m.Tool.Conditional,
				}
				if strings.TrimSpace(search) != "" {
					row["score"] = m.Score
				}
				out = append(out, row)
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Fuzzy-match tools by title or id")
	cmd.Flags().BoolVar(&disabled, "disabled", false, "Only list tools that are not on the toolbar")
	return cmd
}
