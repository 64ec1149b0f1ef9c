package preset

import (
	_ "embed"
	"fmt"

	"toolbar-cli/internal/model"

	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var builtinYAML []byte

// Catalog holds the selectable presets. The custom preset's tools come from
// the user's saved configuration, falling back to the default preset.
type Catalog struct {
	presets []model.Preset
	custom  model.Groups
}

func Builtin() (*Catalog, error) {
	var f struct {
		Presets []model.Preset `yaml:"presets"`
	}
	if err := yaml.Unmarshal(builtinYAML, &f); err != nil {
		return nil, fmt.Errorf("decode presets: %w", err)
	}
	for _, id := range []model.PresetID{model.PresetDefault, model.PresetCustom} {
		found := false
		for _, p := range f.Presets {
			if p.ID == id {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("builtin presets: missing %q", id)
		}
	}
	return &Catalog{presets: f.Presets}, nil
}

// WithCustom returns a copy of the catalog whose custom preset carries tools.
func (c *Catalog) WithCustom(tools model.Groups) *Catalog {
	return &Catalog{presets: c.presets, custom: tools.Clone()}
}

func (c *Catalog) All() []model.Preset {
	out := make([]model.Preset, 0, len(c.presets))
	for _, p := range c.presets {
		out = append(out, c.resolve(p))
	}
	return out
}

func (c *Catalog) Get(id model.PresetID) (model.Preset, bool) {
	for _, p := range c.presets {
		if p.ID == id {
			return c.resolve(p), true
		}
	}
	return model.Preset{}, false
}

// Default is the preset used when nothing was saved or the saved preset is
// no longer known.
func (c *Catalog) Default() model.Preset {
	p, _ := c.Get(model.PresetDefault)
	return p
}

// Current resolves a saved configuration to its preset.
func (c *Catalog) Current(cfg model.ToolbarConfig) model.Preset {
	if cfg.Preset == model.PresetCustom && cfg.Config != nil {
		return c.WithCustom(cfg.Config).mustGet(model.PresetCustom)
	}
	if p, ok := c.Get(cfg.Preset); ok {
		return p
	}
	return c.Default()
}

// Editable returns a custom preset seeded with p's tools, which is what a
// user gets when they start rearranging a built-in preset.
func (c *Catalog) Editable(p model.Preset) model.Preset {
	custom := c.mustGet(model.PresetCustom)
	custom.Tools = p.Tools.Clone()
	return custom
}

func (c *Catalog) mustGet(id model.PresetID) model.Preset {
	p, ok := c.Get(id)
	if !ok {
		panic("preset: missing builtin " + string(id))
	}
	return p
}

func (c *Catalog) resolve(p model.Preset) model.Preset {
	p.Tools = p.Tools.Clone()
	if p.ID != model.PresetCustom {
		return p
	}
	if c.custom != nil {
		p.Tools = c.custom.Clone()
		return p
	}
	for _, d := range c.presets {
		if d.ID == model.PresetDefault {
			p.Tools = d.Tools.Clone()
			break
		}
	}
	return p
}
