package registry

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"toolbar-cli/internal/model"

	"gopkg.in/yaml.v3"
)

//go:embed tools.yaml
var builtinYAML []byte

// Registry is the ordered set of tools the editor knows about.
type Registry struct {
	defs  []model.ToolDefinition
	index map[string]int
}

type fileFormat struct {
	Tools []model.ToolDefinition `yaml:"tools"`
}

func New(defs []model.ToolDefinition) (*Registry, error) {
	r := &Registry{index: make(map[string]int, len(defs))}
	for _, d := range defs {
		d.ID = strings.TrimSpace(d.ID)
		if d.ID == "" {
			return nil, errors.New("tool definition without id")
		}
		if _, dup := r.index[d.ID]; dup {
			return nil, fmt.Errorf("duplicate tool id: %s", d.ID)
		}
		if d.Title == "" {
			d.Title = d.ID
		}
		r.index[d.ID] = len(r.defs)
		r.defs = append(r.defs, d)
	}
	return r, nil
}

// Parse decodes a tools YAML document.
func Parse(b []byte) ([]model.ToolDefinition, error) {
	var f fileFormat
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("decode tools: %w", err)
	}
	return f.Tools, nil
}

func Builtin() (*Registry, error) {
	defs, err := Parse(builtinYAML)
	if err != nil {
		return nil, err
	}
	return New(defs)
}

// Load returns the built-in registry with the tools from overlayPath laid
// on top. An empty path yields the built-in registry.
func Load(overlayPath string) (*Registry, error) {
	r, err := Builtin()
	if err != nil {
		return nil, err
	}
	overlayPath = strings.TrimSpace(overlayPath)
	if overlayPath == "" {
		return r, nil
	}
	b, err := os.ReadFile(overlayPath)
	if err != nil {
		return nil, err
	}
	defs, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", overlayPath, err)
	}
	return r.Overlay(defs)
}

// Overlay returns a new registry where defs replace tools with the same id
// in place and unknown ids are appended.
func (r *Registry) Overlay(defs []model.ToolDefinition) (*Registry, error) {
	merged := append([]model.ToolDefinition(nil), r.defs...)
	for _, d := range defs {
		id := strings.TrimSpace(d.ID)
		if i, ok := r.index[id]; ok {
			if d.Title == "" {
				d.Title = merged[i].Title
			}
			if d.Icon == "" {
				d.Icon = merged[i].Icon
			}
			merged[i] = d
			continue
		}
		merged = append(merged, d)
	}
	return New(merged)
}

func (r *Registry) All() []model.ToolDefinition {
	return append([]model.ToolDefinition(nil), r.defs...)
}

func (r *Registry) Lookup(id string) (model.ToolDefinition, bool) {
	i, ok := r.index[id]
	if !ok {
		return model.ToolDefinition{}, false
	}
	return r.defs[i], true
}

func (r *Registry) Len() int { return len(r.defs) }
