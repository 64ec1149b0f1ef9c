package docs

import (
	"reflect"
	"testing"
)

func TestTopics(t *testing.T) {
	want := []string{"commands", "keys", "layout", "presets"}
	if got := Topics(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestGet(t *testing.T) {
	if md, ok := Get(" Keys "); !ok || md == "" {
		t.Fatalf("expected keys topic")
	}
	if _, ok := Get("../docs"); ok {
		t.Fatalf("unexpected topic outside content")
	}
	if got := Title("presets"); got != "Presets" {
		t.Fatalf("expected heading title, got %q", got)
	}
	if got := Title("nope"); got != "nope" {
		t.Fatalf("expected fallback title, got %q", got)
	}
}
