package cli

import (
	"strings"

	"toolbar-cli/internal/registry"
	"toolbar-cli/internal/tui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newEditCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "edit",
		Aliases: []string{"tui"},
		Short:   "Open the interactive configure-toolbar dialog",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app)
		},
	}
	return cmd
}

func runTUI(cmd *cobra.Command, app *App) error {
	w, err := loadWorkspace(cmd, app)
	if err != nil {
		return writeErr(cmd, err)
	}

	opts := tui.Options{
		Session:  w.sess,
		Registry: w.reg,
		Saver:    w.settings,
		Platform: app.Platform,
		Logger:   app.logger,
	}
	if path := strings.TrimSpace(app.RegistryFile); path != "" {
		watcher, err := registry.Watch(path, app.logger)
		if err != nil {
			// Live reload is optional.
			app.logger.Warn("registry watch disabled", zap.String("path", path), zap.Error(err))
		} else {
			defer watcher.Close()
			opts.Watcher = watcher
		}
	}

	if err := tui.Run(cmd.Context(), opts); err != nil {
		return writeErr(cmd, err)
	}
	return nil
}
