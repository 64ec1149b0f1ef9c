package layout

import (
	"fmt"

	"toolbar-cli/internal/model"

	"go.uber.org/zap"
)

// Registry resolves tool ids to their display definitions.
type Registry interface {
	// All returns every known tool in registry order.
	All() []model.ToolDefinition
	Lookup(toolID string) (model.ToolDefinition, bool)
}

// Flatten converts the nested toolbar definition into the flat display list.
//
// Nested lists become synthetic "Group N" (depth 0) or "Subgroup N"
// (depth > 0) headers followed by their contents one level deeper. Tool ids
// unknown to reg are dropped and reported.
func Flatten(reg Registry, groups model.Groups, opts ...Option) []model.Node {
	o := buildOptions(opts)
	return flattenAt(reg, groups, 0, &o)
}

func flattenAt(reg Registry, groups model.Groups, depth int, o *options) []model.Node {
	nodes := []model.Node{}
	groupCount := 1
	for _, e := range groups {
		if e.IsGroup() {
			title := fmt.Sprintf("Group %d", groupCount)
			if depth > 0 {
				title = fmt.Sprintf("Subgroup %d", groupCount)
			}
			nodes = append(nodes, newGroup(o, depth, title))
			nodes = append(nodes, flattenAt(reg, e.Group, depth+1, o)...)
			groupCount++
			continue
		}
		def, ok := reg.Lookup(e.ToolID)
		if !ok {
			o.logger.Warn("dropping unknown tool from toolbar layout", zap.String("toolId", e.ToolID), zap.Int("depth", depth))
			if o.onUnknownTool != nil {
				o.onUnknownTool(e.ToolID)
			}
			continue
		}
		nodes = append(nodes, newItem(o, def, depth))
	}
	return nodes
}

// Unflatten converts a flat list back into the nested definition.
func Unflatten(list []model.Node) model.Groups {
	out := model.Groups{}
	for i := 0; i < len(list); i++ {
		n := list[i]
		if n.IsGroup() {
			g := resolveAt(list, i)
			out = append(out, model.Group(Unflatten(g.Members[1:])...))
			// Skip the members we just consumed.
			i += len(g.Members) - 1
			continue
		}
		out = append(out, model.Tool(n.ToolID))
	}
	return out
}

// Seed builds the list a configure dialog starts from: the flattened preset
// tools, the trash group, and every disabled tool inside the trash.
func Seed(reg Registry, groups model.Groups, opts ...Option) []model.Node {
	o := buildOptions(opts)
	nodes := flattenAt(reg, groups, 0, &o)
	nodes = append(nodes, NewTrash())
	trashDepth := 1
	for _, id := range DisabledTools(nodes, reg) {
		def, ok := reg.Lookup(id)
		if !ok {
			continue
		}
		nodes = append(nodes, newItem(&o, def, trashDepth))
	}
	return nodes
}

// Export returns the nested definition of everything outside the trash.
func Export(list []model.Node) model.Groups {
	return Unflatten(withoutTrash(list))
}

func withoutTrash(list []model.Node) []model.Node {
	trash, ok := ResolveGroup(list, model.TrashID)
	if !ok {
		return list
	}
	out := make([]model.Node, 0, len(list)-len(trash.Members))
	out = append(out, list[:trash.Index]...)
	out = append(out, list[trash.Index+len(trash.Members):]...)
	return out
}

func NewTrash() model.Node {
	return model.Node{
		Kind:  model.NodeKindGroup,
		ID:    model.TrashID,
		Title: model.TrashTitle,
		Depth: 0,
	}
}

func newGroup(o *options, depth int, title string) model.Node {
	return model.Node{
		Kind:  model.NodeKindGroup,
		ID:    o.newID(),
		Title: title,
		Depth: depth,
	}
}

func newItem(o *options, def model.ToolDefinition, depth int) model.Node {
	return model.Node{
		Kind:   model.NodeKindItem,
		ID:     o.newID(),
		Title:  def.Title,
		Depth:  depth,
		ToolID: def.ID,
		Icon:   def.Icon,
	}
}
