package registry

import (
	"os"
	"path/filepath"
	"testing"

	"toolbar-cli/internal/model"
)

func TestBuiltin_KeepsDeclarationOrder(t *testing.T) {
	r, err := Builtin()
	if err != nil {
		t.Fatalf("builtin: %v", err)
	}
	all := r.All()
	if len(all) == 0 || all[0].ID != "insertBlock" || all[1].ID != "bold" {
		t.Fatalf("unexpected builtin order: %+v", all[:2])
	}
	def, ok := r.Lookup("tableSettings")
	if !ok || !def.Conditional {
		t.Fatalf("expected tableSettings to be conditional, got %+v", def)
	}
	if _, ok := r.Lookup("nope"); ok {
		t.Fatalf("unexpected lookup hit")
	}
}

func TestNew_RejectsDuplicatesAndBlankIDs(t *testing.T) {
	if _, err := New([]model.ToolDefinition{{ID: "a"}, {ID: "a"}}); err == nil {
		t.Fatalf("expected duplicate id error")
	}
	if _, err := New([]model.ToolDefinition{{ID: "  "}}); err == nil {
		t.Fatalf("expected blank id error")
	}
	r, err := New([]model.ToolDefinition{{ID: "x"}})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if def, _ := r.Lookup("x"); def.Title != "x" {
		t.Fatalf("expected title to default to id, got %q", def.Title)
	}
}

func TestLoad_OverlayReplacesInPlaceAndAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tools.yaml")
	overlay := `tools:
  - id: bold
    title: Strong
  - id: sparkles
    title: Sparkles
    icon: star
`
	if err := os.WriteFile(path, []byte(overlay), 0o644); err != nil {
		t.Fatalf("write overlay: %v", err)
	}

	base, _ := Builtin()
	r, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if r.Len() != base.Len()+1 {
		t.Fatalf("expected one appended tool, got %d vs %d", r.Len(), base.Len())
	}
	all := r.All()
	if all[1].ID != "bold" || all[1].Title != "Strong" || all[1].Icon != "bold" {
		t.Fatalf("expected bold overridden in place keeping its icon, got %+v", all[1])
	}
	if last := all[len(all)-1]; last.ID != "sparkles" {
		t.Fatalf("expected sparkles appended, got %+v", last)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing overlay")
	}
}

func TestSearch(t *testing.T) {
	r, _ := Builtin()
	got := r.Search("ital")
	if len(got) == 0 || got[0].Tool.ID != "italic" {
		t.Fatalf("expected italic first, got %+v", got)
	}
	if all := r.Search(" "); len(all) != r.Len() {
		t.Fatalf("empty query should list every tool")
	}
}
