package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"toolbar-cli/internal/layout"
	"toolbar-cli/internal/model"
	"toolbar-cli/internal/registry"
	"toolbar-cli/internal/session"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

const (
	levelInfo    = "info"
	levelSuccess = "success"
	levelError   = "error"

	statusTTL = 4 * time.Second
)

// Options wires the dialog to its collaborators. Watcher is optional.
type Options struct {
	Session  *session.Session
	Registry *registry.Registry
	Saver    session.Saver
	Platform string
	Watcher  *registry.Watcher
	Logger   *zap.Logger
}

type statusDoneMsg struct{ seq int }

type registryMsg registry.Update

type dialogModel struct {
	ctx      context.Context
	sess     *session.Session
	reg      *registry.Registry
	saver    session.Saver
	platform string
	watcher  *registry.Watcher
	logger   *zap.Logger
	keys     keyMap

	width  int
	height int

	// cursorID follows a node rather than a row index so it survives moves.
	cursorID string

	searching   bool
	search      textinput.Model
	searchMatch string

	showHelp    bool
	confirmQuit bool

	status      string
	statusLevel string
	statusSeq   int
}

func newDialogModel(ctx context.Context, opts Options) dialogModel {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	in := textinput.New()
	in.Placeholder = "tool name"
	in.Prompt = "/ "
	in.CharLimit = 64
	in.Width = 30

	m := dialogModel{
		ctx:      ctx,
		sess:     opts.Session,
		reg:      opts.Registry,
		saver:    opts.Saver,
		platform: opts.Platform,
		watcher:  opts.Watcher,
		logger:   logger,
		keys:     defaultKeyMap(),
		search:   in,
	}
	if rows := m.rows(); len(rows) > 0 {
		m.cursorID = rows[0].ID
	}
	return m
}

func (m dialogModel) Init() tea.Cmd {
	return m.waitForRegistry()
}

func (m dialogModel) waitForRegistry() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	ch := m.watcher.Updates()
	return func() tea.Msg {
		u, ok := <-ch
		if !ok {
			return nil
		}
		return registryMsg(u)
	}
}

// rows is the visible part of the list: dragging a group folds everything
// but group headers, dragging a subgroup folds items.
func (m dialogModel) rows() []model.Node {
	items := m.sess.Items()
	active, dragging := m.sess.Active()
	if !dragging {
		return items
	}
	out := make([]model.Node, 0, len(items))
	for _, n := range items {
		if n.ID != active.ID && layout.IsCollapsedWhileDragging(n, active) {
			continue
		}
		out = append(out, n)
	}
	return out
}

func (m dialogModel) cursorIndex(rows []model.Node) int {
	for i, n := range rows {
		if n.ID == m.cursorID {
			return i
		}
	}
	return 0
}

func (m *dialogModel) moveCursor(delta int) {
	rows := m.rows()
	if len(rows) == 0 {
		m.cursorID = ""
		return
	}
	i := m.cursorIndex(rows) + delta
	if i < 0 {
		i = 0
	}
	if i >= len(rows) {
		i = len(rows) - 1
	}
	m.cursorID = rows[i].ID
}

// syncCursor keeps the cursor on a visible row after the list changed.
func (m *dialogModel) syncCursor() {
	rows := m.rows()
	for _, n := range rows {
		if n.ID == m.cursorID {
			return
		}
	}
	if len(rows) == 0 {
		m.cursorID = ""
		return
	}
	m.cursorID = rows[0].ID
}

func (m *dialogModel) setStatus(level, msg string) tea.Cmd {
	m.status = msg
	m.statusLevel = level
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(statusTTL, func(time.Time) tea.Msg { return statusDoneMsg{seq: seq} })
}

func (m dialogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case statusDoneMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusLevel = ""
		}
		return m, nil

	case registryMsg:
		if msg.Err != nil {
			cmd := tea.Batch(m.setStatus(levelError, "Tool registry not reloaded: "+msg.Err.Error()), m.waitForRegistry())
			return m, cmd
		}
		m.reg = msg.Registry
		m.sess.SetRegistry(msg.Registry)
		m.syncCursor()
		cmd := tea.Batch(m.setStatus(levelInfo, "Tool registry reloaded"), m.waitForRegistry())
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		if m.showHelp {
			if key.Matches(msg, m.keys.Help, m.keys.Cancel, m.keys.Quit) {
				m.showHelp = false
			}
			return m, nil
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m dialogModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	_, dragging := m.sess.Active()
	quitPending := m.confirmQuit
	m.confirmQuit = false

	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
		return m, nil

	case key.Matches(msg, m.keys.Grab):
		if dragging {
			cmd := m.drop()
			return m, cmd
		}
		cmd := m.pickUp()
		return m, cmd

	case key.Matches(msg, m.keys.Cancel):
		if dragging {
			m.sess.CancelDrag()
			m.syncCursor()
			cmd := m.setStatus(levelInfo, "Move cancelled")
			return m, cmd
		}
		cmd := m.quit(quitPending)
		return m, cmd

	case key.Matches(msg, m.keys.Quit):
		cmd := m.quit(quitPending)
		return m, cmd

	case dragging:
		// Everything else waits until the drag ends.
		return m, nil

	case key.Matches(msg, m.keys.NextPreset):
		cmd := m.cyclePreset(1)
		return m, cmd

	case key.Matches(msg, m.keys.PrevPreset):
		cmd := m.cyclePreset(-1)
		return m, cmd

	case key.Matches(msg, m.keys.AddGroup):
		n, err := m.sess.AddGroup()
		if err != nil {
			cmd := m.setStatus(levelError, describeErr(err))
			return m, cmd
		}
		items := m.sess.Items()
		if i := layout.IndexOf(items, model.TrashID); i > 0 {
			m.cursorID = items[i-1].ID
		}
		cmd := m.setStatus(n.Level, n.Message)
		return m, cmd

	case key.Matches(msg, m.keys.AddSubgroup):
		n, err := m.sess.AddSubGroup(m.cursorGroupID())
		if err != nil {
			cmd := m.setStatus(levelError, describeErr(err))
			return m, cmd
		}
		cmd := m.setStatus(n.Level, n.Message)
		return m, cmd

	case key.Matches(msg, m.keys.Remove):
		next := m.neighbour()
		if err := m.sess.Remove(m.cursorID); err != nil {
			cmd := m.setStatus(levelError, describeErr(err))
			return m, cmd
		}
		// Removed tools land in the trash; keep the cursor where the user was.
		if items := m.sess.Items(); layout.IndexOf(items, m.cursorID) < 0 || layout.IsDeleted(items, m.cursorID) {
			m.cursorID = next
		}
		m.syncCursor()
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.searchMatch = ""
		m.search.SetValue("")
		cmd := m.search.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Copy):
		b, err := json.MarshalIndent(m.sess.Tools(), "", "  ")
		if err == nil {
			err = copyToClipboard(string(b))
		}
		if err != nil {
			m.logger.Warn("clipboard copy failed", zap.Error(err))
			cmd := m.setStatus(levelError, "Copy failed: "+err.Error())
			return m, cmd
		}
		cmd := m.setStatus(levelSuccess, "Layout copied to clipboard")
		return m, cmd

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Save):
		cmd := m.save()
		return m, cmd
	}
	return m, nil
}

func (m *dialogModel) quit(confirmed bool) tea.Cmd {
	if m.sess.Dirty() && !confirmed {
		m.confirmQuit = true
		return m.setStatus(levelError, "Unsaved changes: ctrl+s saves, press again to discard")
	}
	return tea.Quit
}

func (m *dialogModel) pickUp() tea.Cmd {
	n, ok := layout.Find(m.sess.Items(), m.cursorID)
	if !ok {
		return nil
	}
	wasEditable := m.sess.Preset().Editable
	if !m.sess.DragStart(n.ID) {
		return m.setStatus(levelError, "The disabled items group stays in place")
	}
	if !wasEditable {
		return m.setStatus(levelInfo, "Switched to the custom preset")
	}
	return m.setStatus(levelInfo, "Moving "+n.Title)
}

func (m *dialogModel) drop() tea.Cmd {
	active, _ := m.sess.Active()
	over := m.cursorID
	if over == active.ID {
		m.sess.CancelDrag()
		m.syncCursor()
		return nil
	}
	moved := m.sess.DragEnd(active.ID, over)
	m.cursorID = active.ID
	m.syncCursor()
	if !moved {
		return m.setStatus(levelError, "Can't drop "+active.Title+" there")
	}
	return nil
}

func (m *dialogModel) cyclePreset(delta int) tea.Cmd {
	presets := m.sess.Presets()
	if len(presets) == 0 {
		return nil
	}
	cur := 0
	for i, p := range presets {
		if p.ID == m.sess.Preset().ID {
			cur = i
			break
		}
	}
	next := presets[(cur+delta+len(presets))%len(presets)]
	if err := m.sess.SelectPreset(next.ID); err != nil {
		return m.setStatus(levelError, err.Error())
	}
	m.cursorID = ""
	m.syncCursor()
	return nil
}

// cursorGroupID is the group a subgroup would be added to: the cursor row
// itself, or the group holding the cursor item.
func (m dialogModel) cursorGroupID() string {
	items := m.sess.Items()
	n, ok := layout.Find(items, m.cursorID)
	if !ok {
		return ""
	}
	if n.IsGroup() {
		return n.ID
	}
	if p, ok := layout.ParentGroup(items, n.ID); ok {
		return p.ID
	}
	return ""
}

// neighbour is the row the cursor falls back to when the cursor row goes
// away.
func (m dialogModel) neighbour() string {
	rows := m.rows()
	i := m.cursorIndex(rows)
	if i > 0 {
		return rows[i-1].ID
	}
	if i+1 < len(rows) {
		return rows[i+1].ID
	}
	return ""
}

func (m *dialogModel) save() tea.Cmd {
	if m.saver == nil {
		return m.setStatus(levelError, "Nothing to save to")
	}
	cfg, err := m.sess.Save(m.ctx, m.saver, m.platform)
	if err != nil {
		m.logger.Error("saving toolbar config failed", zap.Error(err))
		return m.setStatus(levelError, "Save failed: "+err.Error())
	}
	return m.setStatus(levelSuccess, fmt.Sprintf("Saved %s preset for %s", cfg.Preset, m.platform))
}

func (m dialogModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		return m, nil
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		if m.searchMatch == "" {
			cmd := m.setStatus(levelError, "No tool matches "+strings.TrimSpace(m.search.Value()))
			return m, cmd
		}
		for _, n := range m.sess.Items() {
			if n.IsItem() && n.ToolID == m.searchMatch {
				m.cursorID = n.ID
				return m, nil
			}
		}
		cmd := m.setStatus(levelError, m.searchMatch+" is not part of the toolbar")
		return m, cmd
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.searchMatch = m.bestMatch(m.search.Value())
	return m, cmd
}

// bestMatch prefers tools that are actually listed (conditional tools never
// are).
func (m dialogModel) bestMatch(q string) string {
	if m.reg == nil || strings.TrimSpace(q) == "" {
		return ""
	}
	listed := map[string]bool{}
	for _, n := range m.sess.Items() {
		if n.IsItem() {
			listed[n.ToolID] = true
		}
	}
	matches := m.reg.Search(q)
	for _, mt := range matches {
		if listed[mt.Tool.ID] {
			return mt.Tool.ID
		}
	}
	if len(matches) > 0 {
		return matches[0].Tool.ID
	}
	return ""
}

func describeErr(err error) string {
	switch {
	case errors.Is(err, session.ErrNotEditable):
		return "Built-in presets are read-only: move a tool to start a custom preset"
	case errors.Is(err, session.ErrDeleted):
		return "Disabled items can only be moved back"
	case errors.Is(err, session.ErrRejected):
		return "Not allowed here"
	default:
		return err.Error()
	}
}
