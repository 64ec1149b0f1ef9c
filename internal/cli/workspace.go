package cli

import (
	"strings"

	"toolbar-cli/internal/layout"
	"toolbar-cli/internal/model"
	"toolbar-cli/internal/preset"
	"toolbar-cli/internal/registry"
	"toolbar-cli/internal/session"
	"toolbar-cli/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// workspace is everything a command needs to read or edit the toolbar of
// one platform.
type workspace struct {
	settings store.Settings
	reg      *registry.Registry
	catalog  *preset.Catalog
	saved    model.ToolbarConfig
	sess     *session.Session
}

func loadWorkspace(cmd *cobra.Command, app *App) (*workspace, error) {
	st, err := app.settings()
	if err != nil {
		return nil, err
	}
	reg, err := registry.Load(app.RegistryFile)
	if err != nil {
		return nil, err
	}
	cat, err := preset.Builtin()
	if err != nil {
		return nil, err
	}
	saved, err := st.GetToolbarConfig(cmd.Context(), app.Platform)
	if err != nil {
		return nil, err
	}
	if saved.Config != nil {
		cat = cat.WithCustom(saved.Config)
	}
	w := &workspace{settings: st, reg: reg, catalog: cat, saved: saved}
	w.sess = w.newSession(cat.Current(saved), app.logger)
	app.logger.Debug("workspace loaded",
		zap.String("db", st.Path),
		zap.String("preset", string(w.sess.Preset().ID)),
		zap.Int("tools", reg.Len()),
	)
	return w, nil
}

func (w *workspace) newSession(p model.Preset, logger *zap.Logger) *session.Session {
	return session.New(w.catalog, w.reg, p, session.WithSequentialIDs(), session.WithLogger(logger))
}

// useCustom replaces the session with a custom preset carrying tools.
func (w *workspace) useCustom(tools model.Groups, logger *zap.Logger) {
	w.catalog = w.catalog.WithCustom(tools)
	p, _ := w.catalog.Get(model.PresetCustom)
	w.sess = w.newSession(p, logger)
}

func (w *workspace) save(cmd *cobra.Command, app *App) (model.ToolbarConfig, error) {
	return w.sess.Save(cmd.Context(), w.settings, app.Platform)
}

// resolveRef finds a node by "trash", node id, tool id or group title, in
// that order.
func resolveRef(items []model.Node, ref string) (model.Node, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return model.Node{}, errNotFound("node", ref)
	}
	if strings.EqualFold(ref, model.TrashID) {
		if n, ok := layout.Find(items, model.TrashID); ok {
			return n, nil
		}
	}
	if n, ok := layout.Find(items, ref); ok {
		return n, nil
	}
	for _, n := range items {
		if n.IsItem() && n.ToolID == ref {
			return n, nil
		}
	}
	for _, n := range items {
		if n.IsGroup() && strings.EqualFold(n.Title, ref) {
			return n, nil
		}
	}
	return model.Node{}, errNotFound("node", ref)
}

type nodeView struct {
	model.Node
	Parent   string `json:"parent,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
}

type toolbarView struct {
	Platform string         `json:"platform"`
	Preset   model.PresetID `json:"preset"`
	Title    string         `json:"title"`
	Editable bool           `json:"editable"`
	Dirty    bool           `json:"dirty,omitempty"`
	Items    []nodeView     `json:"items"`
	Tools    model.Groups   `json:"tools"`
	Disabled []string       `json:"disabled"`
}

func (w *workspace) view(platform string) toolbarView {
	items := w.sess.Items()
	p := w.sess.Preset()
	v := toolbarView{
		Platform: platform,
		Preset:   p.ID,
		Title:    p.Title,
		Editable: p.Editable,
		Dirty:    w.sess.Dirty(),
		Items:    make([]nodeView, 0, len(items)),
		Tools:    w.sess.Tools(),
		Disabled: layout.DisabledTools(items, w.reg),
	}
	for _, n := range items {
		nv := nodeView{Node: n, Disabled: n.IsItem() && layout.IsDeleted(items, n.ID)}
		if parent, ok := layout.ParentGroup(items, n.ID); ok {
			nv.Parent = parent.ID
		}
		v.Items = append(v.Items, nv)
	}
	return v
}

// addedNode returns the first node of after that is not in before.
func addedNode(before, after []model.Node) (model.Node, bool) {
	seen := make(map[string]bool, len(before))
	for _, n := range before {
		seen[n.ID] = true
	}
	for _, n := range after {
		if !seen[n.ID] {
			return n, true
		}
	}
	return model.Node{}, false
}
