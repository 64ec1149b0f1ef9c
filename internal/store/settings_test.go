package store

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"toolbar-cli/internal/model"
)

func newTestSettings(t *testing.T) Settings {
	t.Helper()
	return Settings{Path: filepath.Join(t.TempDir(), "nested", "toolbar.sqlite")}
}

func TestSettings_MissingRowUsesDefaultPreset(t *testing.T) {
	s := newTestSettings(t)
	cfg, err := s.GetToolbarConfig(context.Background(), "desktop")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if cfg.Preset != model.PresetDefault || cfg.Config != nil || cfg.UpdatedAt != nil {
		t.Fatalf("expected bare default preset, got %+v", cfg)
	}
}

func TestSettings_RoundTripCustomLayout(t *testing.T) {
	ctx := context.Background()
	s := newTestSettings(t)
	layout := model.Groups{
		model.Group(model.Tool("bold"), model.Tool("italic"), model.Group(model.Tool("h1"))),
		model.Group(model.Tool("undo")),
		model.Group(),
	}
	if err := s.SetToolbarConfig(ctx, "Desktop", model.ToolbarConfig{Preset: model.PresetCustom, Config: layout}); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := s.GetToolbarConfig(ctx, " desktop ")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Preset != model.PresetCustom || got.UpdatedAt == nil {
		t.Fatalf("unexpected config: %+v", got)
	}
	if !reflect.DeepEqual(got.Config, layout) {
		t.Fatalf("expected %v, got %v", layout, got.Config)
	}

	// Switching to a built-in preset drops the stored layout.
	if err := s.SetToolbarConfig(ctx, "desktop", model.ToolbarConfig{Preset: model.PresetMinimal, Config: layout}); err != nil {
		t.Fatalf("set minimal: %v", err)
	}
	got, _ = s.GetToolbarConfig(ctx, "desktop")
	if got.Preset != model.PresetMinimal || got.Config != nil {
		t.Fatalf("expected minimal without layout, got %+v", got)
	}
}

func TestSettings_PlatformsAreIndependent(t *testing.T) {
	ctx := context.Background()
	s := newTestSettings(t)
	_ = s.SetToolbarConfig(ctx, "mobile", model.ToolbarConfig{Preset: model.PresetMinimal})
	_ = s.SetToolbarConfig(ctx, "", model.ToolbarConfig{Preset: model.PresetCustom, Config: model.Groups{model.Group(model.Tool("bold"))}})

	all, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 || all[0].Platform != DefaultPlatform || all[1].Platform != "mobile" {
		t.Fatalf("unexpected platforms: %+v", all)
	}

	removed, err := s.Reset(ctx, "mobile")
	if err != nil || !removed {
		t.Fatalf("reset: removed=%v err=%v", removed, err)
	}
	if removed, _ := s.Reset(ctx, "mobile"); removed {
		t.Fatalf("second reset should report nothing removed")
	}
	cfg, _ := s.GetToolbarConfig(ctx, "mobile")
	if cfg.Preset != model.PresetDefault {
		t.Fatalf("expected default after reset, got %s", cfg.Preset)
	}
}

func TestSettings_RejectsInvalidLayouts(t *testing.T) {
	ctx := context.Background()
	s := newTestSettings(t)

	twoSubgroups := model.Groups{model.Group(model.Group(model.Tool("a")), model.Group(model.Tool("b")))}
	err := s.SetToolbarConfig(ctx, "desktop", model.ToolbarConfig{Preset: model.PresetCustom, Config: twoSubgroups})
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if err := s.SetToolbarConfig(ctx, "desktop", model.ToolbarConfig{}); err == nil {
		t.Fatalf("expected missing preset error")
	}

	// Corrupt rows written behind our back are refused on read.
	db, err := s.openSQLite(ctx)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := db.ExecContext(ctx, `INSERT INTO toolbar_config(platform, preset, config_json, updated_at_unixms) VALUES('desktop', 'custom', '["bold"]', 0)`); err != nil {
		t.Fatalf("insert: %v", err)
	}
	_ = db.Close()
	if _, err := s.GetToolbarConfig(ctx, "desktop"); !errors.As(err, &se) {
		t.Fatalf("expected SchemaError on read, got %v", err)
	}
}

func TestValidateLayoutJSON(t *testing.T) {
	cases := []struct {
		name  string
		input string
		ok    bool
	}{
		{"empty", `[]`, true},
		{"flat groups", `[["bold","italic"],["undo"]]`, true},
		{"one subgroup", `[["bold",["h1","h2"]]]`, true},
		{"tool at root", `["bold"]`, false},
		{"nested too deep", `[["bold",["h1",["h2"]]]]`, false},
		{"two subgroups", `[[["a"],["b"]]]`, false},
		{"blank tool", `[[""]]`, false},
		{"not an array", `{"bold":true}`, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateLayoutJSON([]byte(tc.input))
			if tc.ok && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestSettings_MissingPath(t *testing.T) {
	if _, err := (Settings{}).GetToolbarConfig(context.Background(), "desktop"); err == nil {
		t.Fatalf("expected error without a database path")
	}
}
