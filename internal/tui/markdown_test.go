package tui

import (
	"strings"
	"testing"
)

func TestMarkdownStyle_EnvOverride(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	t.Setenv("TOOLBAR_TUI_MD_STYLE", "light")
	if got := markdownStyle(); got != "light" {
		t.Fatalf("expected light; got %q", got)
	}

	t.Setenv("TOOLBAR_TUI_MD_STYLE", "DARK")
	if got := markdownStyle(); got != "dark" {
		t.Fatalf("expected dark; got %q", got)
	}
}

func TestMarkdownStyle_NoColor(t *testing.T) {
	t.Setenv("TOOLBAR_TUI_MD_STYLE", "")
	t.Setenv("NO_COLOR", "1")
	if got := markdownStyle(); got != "notty" {
		t.Fatalf("expected notty; got %q", got)
	}
}

func TestRenderMarkdown(t *testing.T) {
	t.Setenv("TOOLBAR_TUI_MD_STYLE", "notty")

	if got := renderMarkdown("   \n", 40); got != "" {
		t.Fatalf("expected empty output for blank markdown; got %q", got)
	}
	got := renderMarkdown("# Keys\n\nPress `space` to pick up a tool.", 40)
	if !strings.Contains(got, "Keys") || !strings.Contains(got, "space") {
		t.Fatalf("unexpected render:\n%s", got)
	}
	if strings.HasSuffix(got, "\n") {
		t.Fatalf("expected trailing newlines trimmed; got %q", got)
	}
}
