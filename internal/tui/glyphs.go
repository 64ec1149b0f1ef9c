package tui

import (
	"os"
	"strings"
	"sync"
)

// Some terminal fonts render the dialog markers poorly, so an ASCII set is
// available via TOOLBAR_TUI_GLYPHS=ascii.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

func applyGlyphPreference() {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("TOOLBAR_TUI_GLYPHS")))
	switch v {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	default:
		// Unknown value: ignore.
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

// glyphDragged marks the node being moved.
func glyphDragged() string {
	if glyphs() == glyphSetASCII {
		return "* "
	}
	return "◆ "
}

func glyphCursor() string {
	if glyphs() == glyphSetASCII {
		return "> "
	}
	return "› "
}

func glyphArrow() string {
	if glyphs() == glyphSetASCII {
		return "->"
	}
	return "→"
}

func glyphSeparator() string {
	if glyphs() == glyphSetASCII {
		return " - "
	}
	return " · "
}

func glyphEllipsis() string {
	if glyphs() == glyphSetASCII {
		return "..."
	}
	return "…"
}
