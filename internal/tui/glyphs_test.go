package tui

import "testing"

func TestGlyphs_FromEnv(t *testing.T) {
	t.Setenv("TOOLBAR_TUI_GLYPHS", "")
	setGlyphs(glyphSetUnicode)
	applyGlyphPreference()
	if got := glyphs(); got != glyphSetUnicode {
		t.Fatalf("expected unicode glyphs by default; got %v", got)
	}

	t.Setenv("TOOLBAR_TUI_GLYPHS", "ascii")
	applyGlyphPreference()
	if got := glyphs(); got != glyphSetASCII {
		t.Fatalf("expected ascii glyphs; got %v", got)
	}

	// Unknown values should be ignored (keep current).
	t.Setenv("TOOLBAR_TUI_GLYPHS", "bogus")
	applyGlyphPreference()
	if got := glyphs(); got != glyphSetASCII {
		t.Fatalf("expected unknown value to keep ascii; got %v", got)
	}
	setGlyphs(glyphSetUnicode)
}

func TestGlyphs_ASCIIMarkers(t *testing.T) {
	setGlyphs(glyphSetASCII)
	t.Cleanup(func() { setGlyphs(glyphSetUnicode) })

	for name, got := range map[string]string{
		"dragged":   glyphDragged(),
		"cursor":    glyphCursor(),
		"arrow":     glyphArrow(),
		"separator": glyphSeparator(),
		"ellipsis":  glyphEllipsis(),
	} {
		for _, r := range got {
			if r > 127 {
				t.Fatalf("%s glyph %q is not ascii", name, got)
			}
		}
	}
}
