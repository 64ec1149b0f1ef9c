package format

import (
	"bytes"
	"strings"
	"testing"
)

type payload struct {
	Preset string     `json:"preset"`
	Tools  [][]string `json:"tools"`
	Flag   string     `json:"flag"`
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, payload{Preset: "custom", Tools: [][]string{{"bold"}}}, "", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := `{"preset":"custom","tools":[["bold"]],"flag":""}` + "\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}
}

func TestWrite_YAMLKeepsJSONNamesAndOrder(t *testing.T) {
	var buf bytes.Buffer
	v := payload{Preset: "custom", Tools: [][]string{{"bold", "italic"}}, Flag: "true"}
	if err := Write(&buf, v, "yaml", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	if strings.Index(out, "preset:") > strings.Index(out, "tools:") {
		t.Fatalf("expected json key order, got:\n%s", out)
	}
	if !strings.Contains(out, "- - bold\n") {
		t.Fatalf("expected block sequences, got:\n%s", out)
	}
	if strings.Contains(out, "flag: true\n") {
		t.Fatalf("strings that look like booleans must stay quoted, got:\n%s", out)
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, 1, "edn", false); err == nil {
		t.Fatalf("expected unknown format error")
	}
}
