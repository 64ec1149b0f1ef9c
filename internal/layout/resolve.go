package layout

import "toolbar-cli/internal/model"

// Resolved is a group header together with its contiguous member run.
type Resolved struct {
	Index int
	Node  model.Node
	// Members starts with the header itself. It aliases the list it was
	// resolved from and must not be modified.
	Members []model.Node
}

// ResolveGroup locates the group or subgroup with the given id. Its members
// extend up to, but not including, the next node whose depth is <= the
// header's depth.
func ResolveGroup(list []model.Node, id string) (Resolved, bool) {
	idx := IndexOf(list, id)
	if idx < 0 || !list[idx].IsGroup() {
		return Resolved{}, false
	}
	return resolveAt(list, idx), true
}

// resolveAt assumes list[idx] is a group header.
func resolveAt(list []model.Node, idx int) Resolved {
	head := list[idx]
	end := len(list)
	for i := idx + 1; i < len(list); i++ {
		if list[i].Depth <= head.Depth {
			end = i
			break
		}
	}
	return Resolved{Index: idx, Node: head, Members: list[idx:end]}
}

func IndexOf(list []model.Node, id string) int {
	for i, n := range list {
		if n.ID == id {
			return i
		}
	}
	return -1
}

func Find(list []model.Node, id string) (model.Node, bool) {
	idx := IndexOf(list, id)
	if idx < 0 {
		return model.Node{}, false
	}
	return list[idx], true
}

// ParentGroup returns the nearest preceding group header shallower than the
// node, i.e. the group the node belongs to.
func ParentGroup(list []model.Node, id string) (model.Node, bool) {
	idx := IndexOf(list, id)
	if idx < 0 {
		return model.Node{}, false
	}
	return parentAt(list, idx)
}

func parentAt(list []model.Node, idx int) (model.Node, bool) {
	depth := list[idx].Depth
	for i := idx - 1; i >= 0; i-- {
		if list[i].IsGroup() && list[i].Depth < depth {
			return list[i], true
		}
	}
	return model.Node{}, false
}

// rootAt returns the root-level group containing list[idx], or the node
// itself when it is a root group.
func rootAt(list []model.Node, idx int) (model.Node, bool) {
	if list[idx].IsRootGroup() {
		return list[idx], true
	}
	if list[idx].Depth == 0 {
		return model.Node{}, false
	}
	for i := idx - 1; i >= 0; i-- {
		if list[i].Depth == 0 {
			if list[i].IsRootGroup() {
				return list[i], true
			}
			return model.Node{}, false
		}
	}
	return model.Node{}, false
}

// IsDeleted reports whether the node is the trash or lives inside it.
func IsDeleted(list []model.Node, id string) bool {
	idx := IndexOf(list, id)
	if idx < 0 {
		return false
	}
	root, ok := rootAt(list, idx)
	return ok && root.IsTrash()
}

// HasSubgroup reports whether the group directly contains a subgroup.
func HasSubgroup(list []model.Node, groupID string) bool {
	g, ok := ResolveGroup(list, groupID)
	if !ok {
		return false
	}
	return countSubgroups(g) > 0
}

func countSubgroups(g Resolved) int {
	n := 0
	for _, m := range g.Members[1:] {
		if m.IsGroup() && m.Depth == g.Node.Depth+1 {
			n++
		}
	}
	return n
}

// IsCollapsedWhileDragging reports whether n is hidden while active is
// being dragged: dragging a group hides everything but groups, dragging a
// subgroup hides items.
func IsCollapsedWhileDragging(n, active model.Node) bool {
	switch active.Variant() {
	case model.VariantGroup:
		return n.Variant() != model.VariantGroup
	case model.VariantSubgroup:
		return n.Variant() == model.VariantItem
	default:
		return false
	}
}
