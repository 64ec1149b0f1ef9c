package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"toolbar-cli/internal/model"

	_ "modernc.org/sqlite"
)

// Settings persists one toolbar configuration per platform in a SQLite
// database at Path.
type Settings struct {
	Path string
}

// PlatformConfig is a saved configuration together with its platform key.
type PlatformConfig struct {
	Platform string              `json:"platform"`
	Config   model.ToolbarConfig `json:"config"`
}

func (s Settings) openSQLite(ctx context.Context) (*sql.DB, error) {
	path := strings.TrimSpace(s.Path)
	if path == "" {
		return nil, errors.New("settings: missing database path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the TUI and one-shot CLI commands share the file.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLite(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS toolbar_config (
			platform TEXT PRIMARY KEY,
			preset TEXT NOT NULL,
			config_json TEXT,
			updated_at_unixms INTEGER NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// GetToolbarConfig returns the saved configuration for platform. Platforms
// without a saved row use the default preset.
func (s Settings) GetToolbarConfig(ctx context.Context, platform string) (model.ToolbarConfig, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return model.ToolbarConfig{}, err
	}
	defer db.Close()

	var (
		preset    string
		raw       sql.NullString
		updatedMs int64
	)
	err = db.QueryRowContext(ctx,
		`SELECT preset, config_json, updated_at_unixms FROM toolbar_config WHERE platform = ?`,
		normalizePlatform(platform),
	).Scan(&preset, &raw, &updatedMs)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ToolbarConfig{Preset: model.PresetDefault}, nil
	}
	if err != nil {
		return model.ToolbarConfig{}, err
	}
	return decodeRow(platform, preset, raw, updatedMs)
}

// SetToolbarConfig replaces the saved configuration for platform. The layout
// is only stored for the custom preset.
func (s Settings) SetToolbarConfig(ctx context.Context, platform string, cfg model.ToolbarConfig) error {
	if strings.TrimSpace(string(cfg.Preset)) == "" {
		return errors.New("settings: missing preset")
	}
	var raw sql.NullString
	if cfg.Preset == model.PresetCustom && cfg.Config != nil {
		if err := ValidateLayout(cfg.Config); err != nil {
			return err
		}
		b, err := json.Marshal(cfg.Config)
		if err != nil {
			return err
		}
		raw = sql.NullString{String: string(b), Valid: true}
	}

	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx,
		`INSERT INTO toolbar_config(platform, preset, config_json, updated_at_unixms) VALUES(?, ?, ?, ?)
		ON CONFLICT(platform) DO UPDATE SET
			preset = excluded.preset,
			config_json = excluded.config_json,
			updated_at_unixms = excluded.updated_at_unixms`,
		normalizePlatform(platform), string(cfg.Preset), raw, time.Now().UTC().UnixMilli(),
	)
	return err
}

// Reset forgets the saved configuration for platform. It reports whether a
// row existed.
func (s Settings) Reset(ctx context.Context, platform string) (bool, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return false, err
	}
	defer db.Close()

	res, err := db.ExecContext(ctx, `DELETE FROM toolbar_config WHERE platform = ?`, normalizePlatform(platform))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// List returns every saved configuration ordered by platform.
func (s Settings) List(ctx context.Context) ([]PlatformConfig, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx,
		`SELECT platform, preset, config_json, updated_at_unixms FROM toolbar_config ORDER BY platform`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []PlatformConfig{}
	for rows.Next() {
		var (
			platform  string
			preset    string
			raw       sql.NullString
			updatedMs int64
		)
		if err := rows.Scan(&platform, &preset, &raw, &updatedMs); err != nil {
			return nil, err
		}
		cfg, err := decodeRow(platform, preset, raw, updatedMs)
		if err != nil {
			return nil, err
		}
		out = append(out, PlatformConfig{Platform: platform, Config: cfg})
	}
	return out, rows.Err()
}

func decodeRow(platform, preset string, raw sql.NullString, updatedMs int64) (model.ToolbarConfig, error) {
	updated := time.UnixMilli(updatedMs).UTC()
	cfg := model.ToolbarConfig{Preset: model.PresetID(preset), UpdatedAt: &updated}
	if !raw.Valid {
		return cfg, nil
	}
	if err := ValidateLayoutJSON([]byte(raw.String)); err != nil {
		return model.ToolbarConfig{}, fmt.Errorf("stored layout for %s: %w", platform, err)
	}
	if err := json.Unmarshal([]byte(raw.String), &cfg.Config); err != nil {
		return model.ToolbarConfig{}, fmt.Errorf("stored layout for %s: %w", platform, err)
	}
	return cfg, nil
}

func normalizePlatform(platform string) string {
	platform = strings.ToLower(strings.TrimSpace(platform))
	if platform == "" {
		return DefaultPlatform
	}
	return platform
}
