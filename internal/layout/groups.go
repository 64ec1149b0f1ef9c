package layout

import (
	"fmt"

	"toolbar-cli/internal/model"
)

// AddGroup inserts a new empty root group right before the trash (or at the
// end when there is no trash).
func AddGroup(list []model.Node, opts ...Option) []model.Node {
	o := buildOptions(opts)

	insert := len(list)
	if i := IndexOf(list, model.TrashID); i >= 0 {
		insert = i
	}
	// The trash counts too, so the new title continues the visible numbering.
	count := 0
	for _, n := range list {
		if n.IsRootGroup() {
			count++
		}
	}
	return insertAt(list, insert, newGroup(&o, 0, fmt.Sprintf("Group %d", count)))
}

// AddSubGroup appends an empty subgroup after the group's member run.
// Subgroups, the trash and groups that already hold a subgroup are left
// alone.
func AddSubGroup(list []model.Node, groupID string, opts ...Option) []model.Node {
	g, ok := ResolveGroup(list, groupID)
	if !ok || g.Node.IsTrash() || !g.Node.IsRootGroup() || countSubgroups(g) > 0 {
		return list
	}
	o := buildOptions(opts)
	return insertAt(list, g.Index+len(g.Members), newGroup(&o, g.Node.Depth+1, "Subgroup 1"))
}

// RemoveGroup deletes a group header together with any nested headers and
// moves its items to the end of the trash.
func RemoveGroup(list []model.Node, groupID string) []model.Node {
	if groupID == model.TrashID {
		return list
	}
	from, ok := ResolveGroup(list, groupID)
	if !ok {
		return list
	}
	trash, ok := ResolveGroup(list, model.TrashID)
	if !ok {
		return list
	}

	var items []model.Node
	for _, n := range from.Members {
		if !n.IsItem() {
			continue
		}
		n.Depth = trash.Node.Depth + 1
		items = append(items, n)
	}

	rest := make([]model.Node, 0, len(list))
	rest = append(rest, list[:from.Index]...)
	rest = append(rest, list[from.Index+len(from.Members):]...)

	trash, _ = ResolveGroup(rest, model.TrashID)
	return insertAt(rest, trash.Index+len(trash.Members), items...)
}

// RemoveItem disables an item by moving it after the last member of the
// trash.
func RemoveItem(list []model.Node, itemID string) []model.Node {
	trash, ok := ResolveGroup(list, model.TrashID)
	if !ok {
		return list
	}
	last := trash.Members[len(trash.Members)-1]
	return MoveItem(list, itemID, last.ID)
}

// RestoreItem moves an item out of the trash next to toID. It is MoveItem
// restricted to items that are currently disabled.
func RestoreItem(list []model.Node, itemID, toID string) []model.Node {
	if !IsDeleted(list, itemID) || IsDeleted(list, toID) {
		return list
	}
	return MoveItem(list, itemID, toID)
}
