package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Entry is one element of the editor's nested toolbar definition: either a
// tool id or a nested list of entries.
//
// The wire shape is the editor's own, e.g. [["bold","italic"],"undo"].
type Entry struct {
	ToolID string
	Group  Groups
}

// Groups is the nested toolbar definition.
type Groups []Entry

func Tool(id string) Entry { return Entry{ToolID: id} }

// Group builds a nested entry. An empty group stays a group.
func Group(entries ...Entry) Entry {
	g := Groups{}
	g = append(g, entries...)
	return Entry{Group: g}
}

func (e Entry) IsGroup() bool { return e.Group != nil }

func (e Entry) MarshalJSON() ([]byte, error) {
	if e.IsGroup() {
		return json.Marshal([]Entry(e.Group))
	}
	return json.Marshal(e.ToolID)
}

func (e *Entry) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return errors.New("empty toolbar entry")
	}
	switch b[0] {
	case '[':
		var g []Entry
		if err := json.Unmarshal(b, &g); err != nil {
			return err
		}
		*e = Group(g...)
		return nil
	case '"':
		var id string
		if err := json.Unmarshal(b, &id); err != nil {
			return err
		}
		*e = Tool(id)
		return nil
	default:
		return fmt.Errorf("toolbar entry must be a tool id or a list, got %s", string(b))
	}
}

func (e Entry) MarshalYAML() (any, error) {
	if e.IsGroup() {
		return []Entry(e.Group), nil
	}
	return e.ToolID, nil
}

func (e *Entry) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var g []Entry
		if err := value.Decode(&g); err != nil {
			return err
		}
		*e = Group(g...)
		return nil
	case yaml.ScalarNode:
		*e = Tool(value.Value)
		return nil
	default:
		return fmt.Errorf("line %d: toolbar entry must be a tool id or a list", value.Line)
	}
}

// ToolIDs returns every tool id in g, depth first.
func (g Groups) ToolIDs() []string {
	var out []string
	for _, e := range g {
		if e.IsGroup() {
			out = append(out, e.Group.ToolIDs()...)
			continue
		}
		out = append(out, e.ToolID)
	}
	return out
}

// Clone returns a deep copy of g.
func (g Groups) Clone() Groups {
	if g == nil {
		return nil
	}
	out := make(Groups, 0, len(g))
	for _, e := range g {
		if e.IsGroup() {
			out = append(out, Entry{Group: e.Group.Clone()})
			continue
		}
		out = append(out, e)
	}
	return out
}
