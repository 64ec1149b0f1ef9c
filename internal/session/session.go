package session

import (
	"context"
	"errors"
	"fmt"

	"toolbar-cli/internal/layout"
	"toolbar-cli/internal/model"
	"toolbar-cli/internal/perm"
	"toolbar-cli/internal/preset"

	"go.uber.org/zap"
)

// Saver persists a toolbar configuration for a platform.
type Saver interface {
	SetToolbarConfig(ctx context.Context, platform string, cfg model.ToolbarConfig) error
}

// Notice is a short user-facing confirmation (shown as a toast).
type Notice struct {
	Level   string
	Message string
}

var (
	ErrNotEditable = errors.New("preset is not editable")
	ErrDeleted     = errors.New("node is disabled")
	ErrRejected    = errors.New("operation rejected")
)

// Session is the state of one configure-toolbar dialog: the selected preset,
// the flat list being edited and the node currently being dragged.
type Session struct {
	catalog *preset.Catalog
	reg     layout.Registry
	logger  *zap.Logger
	newIDs  func(list []model.Node) layout.IDFunc

	preset model.Preset
	items  []model.Node
	active *model.Node
	dirty  bool
}

type Option func(*Session)

func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSequentialIDs makes node ids deterministic (n1, n2, ...), continuing
// the sequence for nodes added later.
func WithSequentialIDs() Option {
	return func(s *Session) {
		s.newIDs = layout.NextSequentialIDs
	}
}

func New(catalog *preset.Catalog, reg layout.Registry, current model.Preset, opts ...Option) *Session {
	s := &Session{
		catalog: catalog,
		reg:     reg,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.setPreset(current)
	return s
}

func (s *Session) layoutOpts() []layout.Option {
	opts := []layout.Option{layout.WithLogger(s.logger)}
	if s.newIDs != nil {
		opts = append(opts, layout.WithIDs(s.newIDs(s.items)))
	}
	return opts
}

func (s *Session) setPreset(p model.Preset) {
	s.preset = p
	s.items = nil
	s.items = layout.Seed(s.reg, p.Tools, s.layoutOpts()...)
	s.active = nil
}

// SetRegistry swaps the tool registry and rebuilds the list from the
// current layout, so new tools show up as disabled and removed tools
// disappear. Node ids are reassigned.
func (s *Session) SetRegistry(reg layout.Registry) {
	tools := layout.Export(s.items)
	s.reg = reg
	s.items = nil
	s.items = layout.Seed(reg, tools, s.layoutOpts()...)
	s.active = nil
}

func (s *Session) Preset() model.Preset { return s.preset }

// Items returns a copy of the current flat list.
func (s *Session) Items() []model.Node {
	return append([]model.Node(nil), s.items...)
}

func (s *Session) Active() (model.Node, bool) {
	if s.active == nil {
		return model.Node{}, false
	}
	return *s.active, true
}

// Dirty reports whether anything changed since the session was created or
// last saved.
func (s *Session) Dirty() bool { return s.dirty }

// Presets lists the selectable presets in catalog order.
func (s *Session) Presets() []model.Preset { return s.catalog.All() }

// SelectPreset re-seeds the list from the preset with the given id.
func (s *Session) SelectPreset(id model.PresetID) error {
	p, ok := s.catalog.Get(id)
	if !ok {
		return fmt.Errorf("unknown preset: %s", id)
	}
	s.setPreset(p)
	s.dirty = true
	return nil
}

// DragStart picks up a node. Rearranging a built-in preset turns it into a
// custom preset carrying the same tools; the list itself is kept.
func (s *Session) DragStart(activeID string) bool {
	n, ok := layout.Find(s.items, activeID)
	if !ok || n.IsTrash() {
		return false
	}
	if s.preset.ID != model.PresetCustom {
		s.preset = s.catalog.Editable(s.preset)
		s.dirty = true
	}
	s.active = &n
	return true
}

// DragEnd drops the active node over overID. Drops without a target or
// onto the node itself only cancel the drag. It reports whether the list
// changed.
func (s *Session) DragEnd(activeID, overID string) bool {
	defer func() { s.active = nil }()
	if s.active == nil || activeID == "" || overID == "" || activeID == overID {
		return false
	}
	var next []model.Node
	if s.active.IsGroup() {
		next = layout.MoveGroup(s.items, activeID, overID)
	} else {
		next = layout.MoveItem(s.items, activeID, overID)
	}
	return s.apply("move", next)
}

// CancelDrag drops the active node without moving it.
func (s *Session) CancelDrag() { s.active = nil }

func (s *Session) AddGroup() (Notice, error) {
	if !s.preset.Editable {
		return Notice{}, ErrNotEditable
	}
	s.apply("add-group", layout.AddGroup(s.items, s.layoutOpts()...))
	return Notice{Level: "success", Message: "Group added successfully"}, nil
}

func (s *Session) AddSubGroup(groupID string) (Notice, error) {
	if !s.Permissions(groupID).CanAddSubgroup {
		if !s.preset.Editable {
			return Notice{}, ErrNotEditable
		}
		return Notice{}, ErrRejected
	}
	if !s.apply("add-subgroup", layout.AddSubGroup(s.items, groupID, s.layoutOpts()...)) {
		return Notice{}, ErrRejected
	}
	return Notice{Level: "success", Message: "Subgroup added successfully"}, nil
}

func (s *Session) RemoveGroup(groupID string) error {
	if err := s.checkRemovable(groupID); err != nil {
		return err
	}
	if !s.apply("remove-group", layout.RemoveGroup(s.items, groupID)) {
		return ErrRejected
	}
	return nil
}

func (s *Session) RemoveItem(itemID string) error {
	if err := s.checkRemovable(itemID); err != nil {
		return err
	}
	if !s.apply("remove-item", layout.RemoveItem(s.items, itemID)) {
		return ErrRejected
	}
	return nil
}

// Remove dispatches to RemoveGroup or RemoveItem depending on the node.
func (s *Session) Remove(id string) error {
	n, ok := layout.Find(s.items, id)
	if !ok {
		return ErrRejected
	}
	if n.IsGroup() {
		return s.RemoveGroup(id)
	}
	return s.RemoveItem(id)
}

// Move applies a full drag gesture: pick up activeID and drop it on overID.
func (s *Session) Move(activeID, overID string) bool {
	if !s.DragStart(activeID) {
		return false
	}
	return s.DragEnd(activeID, overID)
}

// Restore moves a disabled item back next to toID.
func (s *Session) Restore(itemID, toID string) error {
	if !s.DragStart(itemID) {
		return ErrRejected
	}
	defer s.CancelDrag()
	if !s.apply("restore", layout.RestoreItem(s.items, itemID, toID)) {
		return ErrRejected
	}
	return nil
}

func (s *Session) checkRemovable(id string) error {
	if !s.preset.Editable {
		return ErrNotEditable
	}
	if layout.IsDeleted(s.items, id) {
		return ErrDeleted
	}
	return nil
}

// Permissions mirrors which row buttons the dialog offers for a node.
type Permissions = perm.Row

func (s *Session) Permissions(id string) Permissions {
	return perm.ForNode(s.items, id, s.preset.Editable)
}

// Result is the configuration to persist: built-in presets are stored by
// id only.
func (s *Session) Result() model.ToolbarConfig {
	cfg := model.ToolbarConfig{Preset: s.preset.ID}
	if s.preset.ID == model.PresetCustom {
		cfg.Config = layout.Export(s.items)
	}
	return cfg
}

// Tools is the nested toolbar the editor should show after saving.
func (s *Session) Tools() model.Groups {
	return layout.Export(s.items)
}

func (s *Session) Save(ctx context.Context, saver Saver, platform string) (model.ToolbarConfig, error) {
	cfg := s.Result()
	if err := saver.SetToolbarConfig(ctx, platform, cfg); err != nil {
		return model.ToolbarConfig{}, err
	}
	s.dirty = false
	s.logger.Info("toolbar config saved", zap.String("platform", platform), zap.String("preset", string(cfg.Preset)))
	return cfg, nil
}

func (s *Session) apply(op string, next []model.Node) bool {
	if sameOrder(s.items, next) {
		s.logger.Debug("toolbar operation rejected", zap.String("op", op))
		return false
	}
	s.items = next
	s.dirty = true
	return true
}

// Layout operations return their input unchanged when they reject.
func sameOrder(a, b []model.Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
