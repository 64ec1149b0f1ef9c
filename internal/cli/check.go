package cli

import (
	"errors"

	"toolbar-cli/internal/layout"
	"toolbar-cli/internal/model"
	"toolbar-cli/internal/registry"
	"toolbar-cli/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errLayoutInvalid = errors.New("toolbar layout is invalid")

type checkReport struct {
	Source       string         `json:"source"`
	Preset       model.PresetID `json:"preset,omitempty"`
	Valid        bool           `json:"valid"`
	UnknownTools []string       `json:"unknownTools"`
	Errors       []string       `json:"errors"`
}

func newCheckCmd(app *App) *cobra.Command {
	var fail bool

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Validate the saved toolbar (or a layout file) against the schema and registry",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry.Load(app.RegistryFile)
			if err != nil {
				return writeErr(cmd, err)
			}

			var report checkReport
			if len(args) == 1 {
				report = checkFile(args[0], reg, app.logger)
			} else {
				st, err := app.settings()
				if err != nil {
					return writeErr(cmd, err)
				}
				report = checkSaved(cmd, st, app.Platform, reg, app.logger)
			}

			if err := writeOut(cmd, app, map[string]any{
				"data": report,
				"meta": map[string]any{
					"errors":       len(report.Errors),
					"unknownTools": len(report.UnknownTools),
				},
				"_hints": []string{"toolbar show", "toolbar import <file>"},
			}); err != nil {
				return err
			}
			if fail && !report.Valid {
				return errLayoutInvalid
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fail, "fail", false, "Exit with non-zero status if the layout is invalid")
	return cmd
}

func checkSaved(cmd *cobra.Command, st store.Settings, platform string, reg *registry.Registry, logger *zap.Logger) checkReport {
	report := checkReport{Source: "platform:" + platform, UnknownTools: []string{}, Errors: []string{}}
	cfg, err := st.GetToolbarConfig(cmd.Context(), platform)
	if err != nil {
		report.Errors = schemaMessages(err)
		return report
	}
	report.Preset = cfg.Preset
	if cfg.Config == nil {
		report.Valid = true
		return report
	}
	checkGroups(&report, cfg.Config, reg, logger)
	return report
}

func checkFile(path string, reg *registry.Registry, logger *zap.Logger) checkReport {
	report := checkReport{Source: path, UnknownTools: []string{}, Errors: []string{}}
	groups, err := readLayoutFile(path)
	if err != nil {
		report.Errors = schemaMessages(err)
		return report
	}
	checkGroups(&report, groups, reg, logger)
	return report
}

// checkGroups flattens groups the way the dialog does and validates the
// resulting list. Unknown tools are reported but do not make a layout
// invalid; they are dropped when loaded.
func checkGroups(report *checkReport, groups model.Groups, reg *registry.Registry, logger *zap.Logger) {
	if err := store.ValidateLayout(groups); err != nil {
		report.Errors = schemaMessages(err)
		return
	}
	list := layout.Seed(reg, groups,
		layout.WithLogger(logger),
		layout.WithIDs(layout.SequentialIDs(1)),
		layout.WithUnknownToolHandler(func(id string) {
			report.UnknownTools = append(report.UnknownTools, id)
		}),
	)
	if err := layout.Validate(list); err != nil {
		report.Errors = append(report.Errors, err.Error())
		return
	}
	report.Valid = true
}

func schemaMessages(err error) []string {
	var se *store.SchemaError
	if errors.As(err, &se) && len(se.Errors) > 0 {
		return append([]string(nil), se.Errors...)
	}
	return []string{err.Error()}
}
