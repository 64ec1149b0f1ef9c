package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"toolbar-cli/internal/format"
	"toolbar-cli/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type App struct {
	Dir          string
	Platform     string
	RegistryFile string
	LogFile      string
	PrettyJSON   bool
	Format       string
	Debug        bool

	dbPath string
	logger *zap.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{logger: zap.NewNop()}

	cmd := &cobra.Command{
		Use:           "toolbar",
		Short:         "Arrange the rich-text editor toolbar (CLI + TUI)",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Open the interactive editor
  toolbar

  # Inspect the saved toolbar (node ids are stable)
  toolbar show --pretty

  # Scriptable edits
  toolbar use custom
  toolbar move bold headings
  toolbar remove strikethrough
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := app.applyConfigFile(); err != nil {
			return writeErr(cmd, err)
		}
		logger, err := newLogger(app.LogFile, app.Debug)
		if err != nil {
			return writeErr(cmd, err)
		}
		app.logger = logger
		app.logger.Debug("command start", zap.String("command", cmd.CommandPath()), zap.String("platform", app.Platform))
		return nil
	}

	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		_ = app.logger.Sync()
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("TOOLBAR_DIR", ""), "Directory holding toolbar.sqlite (default: ~/.toolbar)")
	cmd.PersistentFlags().StringVar(&app.Platform, "platform", envOr("TOOLBAR_PLATFORM", ""), "Platform whose toolbar is edited (default: desktop)")
	cmd.PersistentFlags().StringVar(&app.RegistryFile, "registry", envOr("TOOLBAR_REGISTRY", ""), "YAML file with extra or overridden tool definitions")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("TOOLBAR_FORMAT", "json"), "Output format (json|yaml)")
	cmd.PersistentFlags().StringVar(&app.LogFile, "log-file", envOr("TOOLBAR_LOG_FILE", ""), "Write structured logs to this file")
	cmd.PersistentFlags().BoolVar(&app.Debug, "debug", false, "Log debug messages (requires --log-file)")

	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newPresetsCmd(app))
	cmd.AddCommand(newUseCmd(app))
	cmd.AddCommand(newToolsCmd(app))
	cmd.AddCommand(newMoveCmd(app))
	cmd.AddCommand(newAddGroupCmd(app))
	cmd.AddCommand(newAddSubgroupCmd(app))
	cmd.AddCommand(newRemoveGroupCmd(app))
	cmd.AddCommand(newRemoveCmd(app))
	cmd.AddCommand(newRestoreCmd(app))
	cmd.AddCommand(newCheckCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newResetCmd(app))
	cmd.AddCommand(newPlatformsCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

// applyConfigFile fills settings that neither a flag nor the environment
// provided from ~/.toolbar/config.json.
func (app *App) applyConfigFile() error {
	cfg, err := store.LoadConfig()
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if app.Platform == "" {
		app.Platform = cfg.Platform
	}
	if app.RegistryFile == "" {
		app.RegistryFile = cfg.RegistryFile
	}
	if app.LogFile == "" {
		app.LogFile = cfg.LogFile
	}
	app.dbPath = strings.TrimSpace(cfg.DBPath)
	if strings.TrimSpace(app.Platform) == "" {
		app.Platform = store.DefaultPlatform
	}
	return nil
}

func (app *App) settings() (store.Settings, error) {
	if strings.TrimSpace(app.Dir) != "" {
		return store.Settings{Path: filepath.Join(app.Dir, "toolbar.sqlite")}, nil
	}
	if app.dbPath != "" {
		return store.Settings{Path: app.dbPath}, nil
	}
	path, err := store.DefaultDBPath()
	if err != nil {
		return store.Settings{}, err
	}
	return store.Settings{Path: path}, nil
}

// newLogger writes JSON logs to path; without a path logging is disabled so
// stdout stays machine-readable.
func newLogger(path string, debug bool) (*zap.Logger, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return zap.NewNop(), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
