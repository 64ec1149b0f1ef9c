package model

import "time"

type ToolDefinition struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Icon  string `json:"icon" yaml:"icon"`

	// Conditional tools are shown by the editor only in a specific context
	// (e.g. inside a table) and are not user-configurable.
	Conditional bool `json:"conditional,omitempty" yaml:"conditional,omitempty"`
}

type PresetID string

const (
	PresetDefault PresetID = "default"
	PresetMinimal PresetID = "minimal"
	PresetCustom  PresetID = "custom"
)

type Preset struct {
	ID       PresetID `json:"id" yaml:"id"`
	Title    string   `json:"title" yaml:"title"`
	Editable bool     `json:"editable" yaml:"editable"`
	Tools    Groups   `json:"tools" yaml:"tools"`
}

// ToolbarConfig is what gets persisted per platform. Config is only set for
// the custom preset; built-in presets are resolved from the catalog.
type ToolbarConfig struct {
	Preset    PresetID   `json:"preset" yaml:"preset"`
	Config    Groups     `json:"config,omitempty" yaml:"config,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}
