package cli

import (
	"toolbar-cli/internal/model"

	"github.com/spf13/cobra"
)

func newResetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Forget the saved toolbar so the platform falls back to the default preset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.settings()
			if err != nil {
				return writeErr(cmd, err)
			}
			removed, err := st.Reset(cmd.Context(), app.Platform)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"platform": app.Platform,
				"reset":    removed,
				"preset":   model.PresetDefault,
			}})
		},
	}
	return cmd
}

func newPlatformsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "platforms",
		Short: "List platforms with a saved toolbar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.settings()
			if err != nil {
				return writeErr(cmd, err)
			}
			rows, err := st.List(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": rows,
				"meta": map[string]any{"current": app.Platform},
			})
		},
	}
	return cmd
}
