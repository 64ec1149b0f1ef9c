package layout

import (
	"fmt"

	"toolbar-cli/internal/model"
)

type ValidationError struct {
	Index  int
	NodeID string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid toolbar layout at %d (%s): %s", e.Index, e.NodeID, e.Reason)
}

// Validate checks the structural invariants of a flat list:
//   - ids are unique and non-empty
//   - every nested node sits exactly one level below its group
//   - group headers live at depth 0 or 1, subgroups inside a root group
//   - a group holds at most one subgroup
//   - the trash is a root group and holds no subgroups
func Validate(list []model.Node) error {
	seen := make(map[string]bool, len(list))
	var stack []model.Node
	subgroups := map[string]int{}

	for i, n := range list {
		fail := func(format string, args ...any) error {
			return &ValidationError{Index: i, NodeID: n.ID, Reason: fmt.Sprintf(format, args...)}
		}

		if n.ID == "" {
			return fail("missing id")
		}
		if seen[n.ID] {
			return fail("duplicate id")
		}
		seen[n.ID] = true

		if n.Kind != model.NodeKindGroup && n.Kind != model.NodeKindItem {
			return fail("unknown node type %q", n.Kind)
		}
		if n.Depth < 0 {
			return fail("negative depth %d", n.Depth)
		}

		for len(stack) > 0 && stack[len(stack)-1].Depth >= n.Depth {
			stack = stack[:len(stack)-1]
		}
		var parent *model.Node
		if len(stack) > 0 {
			parent = &stack[len(stack)-1]
		}

		if n.Depth > 0 {
			if parent == nil {
				return fail("depth %d without an enclosing group", n.Depth)
			}
			if n.Depth != parent.Depth+1 {
				return fail("depth %d inside %s at depth %d", n.Depth, parent.ID, parent.Depth)
			}
		}

		if n.IsTrash() && !n.IsRootGroup() {
			return fail("trash must be a root group")
		}

		if !n.IsGroup() {
			continue
		}
		if n.Depth > 1 {
			return fail("groups nest at most one level deep")
		}
		if n.Depth == 1 {
			if parent.IsTrash() {
				return fail("subgroup inside the trash")
			}
			subgroups[parent.ID]++
			if subgroups[parent.ID] > 1 {
				return fail("group %s already has a subgroup", parent.ID)
			}
		}
		stack = append(stack, n)
	}
	return nil
}
