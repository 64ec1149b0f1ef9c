package tui

import (
	"strings"

	"toolbar-cli/internal/docs"
	"toolbar-cli/internal/layout"
	"toolbar-cli/internal/model"

	"github.com/charmbracelet/bubbles/help"
	xansi "github.com/charmbracelet/x/ansi"
)

// Lines taken by everything but the list: title, tabs, hint, blank,
// search/status, footer.
const chromeLines = 6

func (m dialogModel) View() string {
	width := m.width
	if width <= 0 {
		width = 80
	}

	if m.showHelp {
		md, _ := docs.Get("keys")
		return renderMarkdown(md, width) + "\n\n" + styleMuted().Render("press ? or esc to close")
	}

	var b strings.Builder
	b.WriteString(styleGroup().Render("Configure toolbar"))
	if m.platform != "" {
		b.WriteString(styleMuted().Render(glyphSeparator() + m.platform))
	}
	if m.sess.Dirty() {
		b.WriteString(styleMuted().Render(" (modified)"))
	}
	b.WriteString("\n")
	b.WriteString(m.viewTabs())
	b.WriteString("\n")
	if !m.sess.Preset().Editable {
		b.WriteString(styleMuted().Render("Built-in preset. Pick up a tool to start a custom one."))
	}
	b.WriteString("\n\n")

	rows := m.rows()
	start, end := m.window(len(rows), m.cursorIndex(rows))
	active, dragging := m.sess.Active()
	items := m.sess.Items()
	for i := start; i < end; i++ {
		n := rows[i]
		b.WriteString(m.viewRow(items, n, n.ID == m.cursorID, dragging && n.ID == active.ID, width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.searching:
		line := m.search.View()
		if m.searchMatch != "" {
			line += styleMuted().Render("  " + glyphArrow() + " " + m.toolTitle(m.searchMatch))
		}
		b.WriteString(line)
	case m.status != "":
		b.WriteString(styleStatus(m.statusLevel).Render(truncate(m.status, width)))
	}
	b.WriteString("\n")

	h := help.New()
	h.Width = width
	b.WriteString(h.ShortHelpView(m.keys.footer(dragging)))
	return b.String()
}

func (m dialogModel) viewTabs() string {
	var parts []string
	for _, p := range m.sess.Presets() {
		parts = append(parts, styleTab(p.ID == m.sess.Preset().ID).Render(p.Title))
	}
	return strings.Join(parts, " ")
}

// window returns the slice of rows that fits the terminal, keeping the
// cursor centered once the list overflows.
func (m dialogModel) window(total, cursor int) (int, int) {
	height := m.height - chromeLines
	if m.height <= 0 || height >= total {
		return 0, total
	}
	if height < 1 {
		height = 1
	}
	start := cursor - height/2
	if start > total-height {
		start = total - height
	}
	if start < 0 {
		start = 0
	}
	return start, start + height
}

func (m dialogModel) viewRow(items []model.Node, n model.Node, selected, active bool, width int) string {
	indent := strings.Repeat("  ", n.Depth)
	marker := "  "
	switch {
	case active:
		marker = glyphDragged()
	case selected:
		marker = glyphCursor()
	}

	var text string
	switch n.Variant() {
	case model.VariantGroup, model.VariantSubgroup:
		title := n.Title
		if n.IsTrash() {
			text = styleTrash().Render(title)
		} else {
			text = styleGroup().Render(title)
		}
		if selected && !active {
			text += m.rowHints(n)
		}
	default:
		text = n.Title
		if n.ToolID != "" && n.ToolID != n.Title {
			text += styleMuted().Render("  " + n.ToolID)
		}
		if layout.IsDeleted(items, n.ID) {
			text = styleMuted().Render(n.Title)
		}
	}

	line := truncate(indent+marker+text, width)
	switch {
	case active:
		return styleActive().Render(xansi.Strip(line))
	case selected:
		return styleSelected().Render(line)
	default:
		return line
	}
}

func (m dialogModel) rowHints(n model.Node) string {
	p := m.sess.Permissions(n.ID)
	var hints []string
	if p.CanAddSubgroup {
		hints = append(hints, "s subgroup")
	}
	if p.CanRemoveGroup {
		hints = append(hints, "x remove")
	}
	if len(hints) == 0 {
		return ""
	}
	return styleMuted().Render("  [" + strings.Join(hints, ", ") + "]")
}

func (m dialogModel) toolTitle(id string) string {
	if m.reg == nil {
		return id
	}
	if def, ok := m.reg.Lookup(id); ok {
		return def.Title
	}
	return id
}

func truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if xansi.StringWidth(s) <= w {
		return s
	}
	return xansi.Truncate(s, w, glyphEllipsis())
}
