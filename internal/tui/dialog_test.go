package tui

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"toolbar-cli/internal/layout"
	"toolbar-cli/internal/model"
	"toolbar-cli/internal/preset"
	"toolbar-cli/internal/registry"
	"toolbar-cli/internal/session"

	tea "github.com/charmbracelet/bubbletea"
)

type fakeSaver struct {
	calls int
	cfg   model.ToolbarConfig
}

func (f *fakeSaver) SetToolbarConfig(_ context.Context, _ string, cfg model.ToolbarConfig) error {
	f.calls++
	f.cfg = cfg
	return nil
}

// newTestModel opens the dialog on the minimal preset:
//
//	n1 Group 1: n2 bold, n3 italic, n4 underline, n5 strikethrough
//	n6 Group 2: n7 headings
//	n8 Group 3: n9 numberedList, n10 bulletList, n11 checkList
//	n12 Group 4: n13 addLink
//	trash: everything else
func newTestModel(t *testing.T) (dialogModel, *fakeSaver) {
	t.Helper()
	cat, err := preset.Builtin()
	if err != nil {
		t.Fatalf("presets: %v", err)
	}
	reg, err := registry.Builtin()
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	minimal, _ := cat.Get(model.PresetMinimal)
	sess := session.New(cat, reg, minimal, session.WithSequentialIDs())
	saver := &fakeSaver{}
	m := newDialogModel(context.Background(), Options{
		Session:  sess,
		Registry: reg,
		Saver:    saver,
		Platform: "desktop",
	})
	return m, saver
}

func press(t *testing.T, m dialogModel, msgs ...tea.KeyMsg) (dialogModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var mAny tea.Model
		mAny, cmd = m.Update(msg)
		next, ok := mAny.(dialogModel)
		if !ok {
			t.Fatalf("expected dialogModel, got %T", mAny)
		}
		m = next
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keySpace = tea.KeyMsg{Type: tea.KeySpace}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
)

func TestCursorMovement(t *testing.T) {
	m, _ := newTestModel(t)
	if m.cursorID != "n1" {
		t.Fatalf("expected cursor on first row, got %s", m.cursorID)
	}
	m, _ = press(t, m, keyUp)
	if m.cursorID != "n1" {
		t.Fatalf("cursor should stop at the top, got %s", m.cursorID)
	}
	m, _ = press(t, m, keyDown, runes("j"))
	if m.cursorID != "n3" {
		t.Fatalf("expected n3, got %s", m.cursorID)
	}
}

func TestDragItemOntoAnotherGroup(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = press(t, m, keyDown, keySpace)
	if m.sess.Preset().ID != model.PresetCustom {
		t.Fatalf("picking up a tool should switch to the custom preset")
	}
	if !strings.Contains(m.status, "custom") {
		t.Fatalf("expected preset switch notice, got %q", m.status)
	}

	m, _ = press(t, m, keyDown, keyDown, keyDown, keyDown, keyDown)
	if m.cursorID != "n7" {
		t.Fatalf("expected cursor on headings, got %s", m.cursorID)
	}
	m, _ = press(t, m, keySpace)
	if _, dragging := m.sess.Active(); dragging {
		t.Fatalf("drop should end the drag")
	}
	parent, _ := layout.ParentGroup(m.sess.Items(), "n2")
	if parent.ID != "n6" {
		t.Fatalf("expected bold in Group 2, got %s", parent.ID)
	}
	if m.cursorID != "n2" {
		t.Fatalf("cursor should follow the dropped row, got %s", m.cursorID)
	}
}

func TestDragGroupCollapsesRows(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = press(t, m, keySpace)
	rows := m.rows()
	for _, n := range rows {
		if !n.IsGroup() {
			t.Fatalf("only group headers should be visible while dragging a group, saw %+v", n)
		}
	}
	if len(rows) != 5 {
		t.Fatalf("expected four groups and the trash, got %d rows", len(rows))
	}

	m, _ = press(t, m, keyEsc)
	if _, dragging := m.sess.Active(); dragging {
		t.Fatalf("esc should cancel the drag")
	}
	if len(m.rows()) == 5 {
		t.Fatalf("rows should expand again after cancelling")
	}
}

func TestDragGroupDown(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = press(t, m, keySpace, keyDown, keySpace)
	items := m.sess.Items()
	if items[0].ID != "n6" || layout.IndexOf(items, "n1") != 2 {
		t.Fatalf("expected Group 1 after Group 2, got %v", items[:4])
	}
}

func TestTrashCannotBePickedUp(t *testing.T) {
	m, _ := newTestModel(t)
	m.cursorID = model.TrashID
	m, _ = press(t, m, keySpace)
	if _, dragging := m.sess.Active(); dragging {
		t.Fatalf("the trash must not be draggable")
	}
	if m.statusLevel != levelError {
		t.Fatalf("expected an error notice, got %q", m.status)
	}
}

func TestButtonsOnBuiltinPreset(t *testing.T) {
	m, _ := newTestModel(t)
	before := len(m.sess.Items())
	m, _ = press(t, m, runes("a"))
	if len(m.sess.Items()) != before || !strings.Contains(m.status, "read-only") {
		t.Fatalf("add group must be refused on a built-in preset, status %q", m.status)
	}
}

func TestCustomPresetButtons(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.sess.Preset().ID != model.PresetCustom {
		t.Fatalf("expected tab to select the custom preset, got %s", m.sess.Preset().ID)
	}

	m, _ = press(t, m, runes("a"))
	if m.status != "Group added successfully" {
		t.Fatalf("unexpected status %q", m.status)
	}
	cursor, _ := layout.Find(m.sess.Items(), m.cursorID)
	if !cursor.IsRootGroup() {
		t.Fatalf("cursor should land on the new group, got %+v", cursor)
	}

	m, _ = press(t, m, runes("s"))
	if m.status != "Subgroup added successfully" || !layout.HasSubgroup(m.sess.Items(), cursor.ID) {
		t.Fatalf("expected a subgroup, status %q", m.status)
	}
	m, _ = press(t, m, runes("s"))
	if m.statusLevel != levelError {
		t.Fatalf("second subgroup must be refused")
	}

	m, _ = press(t, m, runes("x"))
	if _, ok := layout.Find(m.sess.Items(), cursor.ID); ok {
		t.Fatalf("group should be removed")
	}
	if _, ok := layout.Find(m.sess.Items(), m.cursorID); !ok {
		t.Fatalf("cursor should move to a remaining row")
	}
}

func TestRemoveItemMovesCursorUp(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	// The custom preset mirrors the default one; the first item is n2.
	m, _ = press(t, m, keyDown)
	removed := m.cursorID
	m, _ = press(t, m, runes("x"))
	if !layout.IsDeleted(m.sess.Items(), removed) {
		t.Fatalf("expected %s in the trash", removed)
	}
	if m.cursorID != "n1" {
		t.Fatalf("expected cursor on the row above, got %s", m.cursorID)
	}
}

func TestPresetCycling(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.sess.Preset().ID != model.PresetDefault {
		t.Fatalf("expected default, got %s", m.sess.Preset().ID)
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.sess.Preset().ID != model.PresetCustom {
		t.Fatalf("expected wrap-around to custom, got %s", m.sess.Preset().ID)
	}
}

func TestSaveKey(t *testing.T) {
	m, saver := newTestModel(t)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if saver.calls != 1 || saver.cfg.Preset != model.PresetMinimal {
		t.Fatalf("expected one save of the minimal preset, got %d %+v", saver.calls, saver.cfg)
	}
	if m.status != "Saved minimal preset for desktop" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestCopyLayout(t *testing.T) {
	var copied string
	prev := writeClipboard
	writeClipboard = func(s string) error { copied = s; return nil }
	defer func() { writeClipboard = prev }()

	m, _ := newTestModel(t)
	m, _ = press(t, m, runes("y"))
	var got model.Groups
	if err := json.Unmarshal([]byte(copied), &got); err != nil {
		t.Fatalf("clipboard should hold JSON: %v", err)
	}
	if len(got) != 4 || got[1].Group[0].ToolID != "headings" {
		t.Fatalf("unexpected layout copied: %s", copied)
	}
	if m.statusLevel != levelSuccess {
		t.Fatalf("expected success notice, got %q", m.status)
	}
}

func TestSearchJumpsToTool(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = press(t, m, runes("/"))
	if !m.searching {
		t.Fatalf("expected search mode")
	}
	for _, r := range "headi" {
		m, _ = press(t, m, runes(string(r)))
	}
	if m.searchMatch != "headings" {
		t.Fatalf("expected headings to match, got %q", m.searchMatch)
	}
	m, _ = press(t, m, keyEnter)
	if m.searching || m.cursorID != "n7" {
		t.Fatalf("expected cursor on headings, got %s (searching=%v)", m.cursorID, m.searching)
	}
}

func TestQuitAsksBeforeDiscarding(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})

	m, _ = press(t, m, runes("q"))
	if !m.confirmQuit {
		t.Fatalf("expected a confirmation step for unsaved changes")
	}
	_, cmd := press(t, m, runes("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestHelpToggle(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = press(t, m, runes("?"))
	if !m.showHelp {
		t.Fatalf("expected help to open")
	}
	m, _ = press(t, m, keyDown)
	if m.cursorID != "n1" {
		t.Fatalf("keys should not reach the list while help is open")
	}
	m, _ = press(t, m, keyEsc)
	if m.showHelp {
		t.Fatalf("esc should close help")
	}
}

func TestRegistryReload(t *testing.T) {
	m, _ := newTestModel(t)
	base, _ := registry.Builtin()
	reg, err := base.Overlay([]model.ToolDefinition{{ID: "sparkles", Title: "Sparkles"}})
	if err != nil {
		t.Fatalf("overlay: %v", err)
	}
	mAny, _ := m.Update(registryMsg{Registry: reg})
	m = mAny.(dialogModel)
	found := false
	for _, n := range m.sess.Items() {
		if n.ToolID == "sparkles" {
			found = layout.IsDeleted(m.sess.Items(), n.ID)
		}
	}
	if !found {
		t.Fatalf("new registry tools should appear as disabled")
	}
	if _, ok := layout.Find(m.sess.Items(), m.cursorID); !ok {
		t.Fatalf("cursor should stay on an existing row")
	}
}

func TestView(t *testing.T) {
	m, _ := newTestModel(t)
	mAny, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 12})
	m = mAny.(dialogModel)
	out := m.View()
	if !strings.Contains(out, "Configure toolbar") || !strings.Contains(out, "Minimal") {
		t.Fatalf("expected title and preset tabs, got:\n%s", out)
	}
	if lines := strings.Count(out, "\n"); lines > 12 {
		t.Fatalf("view should fit the window, got %d lines", lines)
	}
}
