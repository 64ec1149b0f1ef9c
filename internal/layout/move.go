package layout

import "toolbar-cli/internal/model"

// MoveGroup relocates the whole member run of fromID to the position of the
// toID group. Moving upward takes the target's start index; moving downward
// lands right after the target's run.
//
// The input is returned unchanged when either id does not resolve to a
// group, the move would nest a group inside itself, a second subgroup would
// end up in one group, or the result breaks the layout invariants.
func MoveGroup(list []model.Node, fromID, toID string) []model.Node {
	if fromID == toID || fromID == model.TrashID {
		return list
	}
	from, ok := ResolveGroup(list, fromID)
	if !ok {
		return list
	}
	to, ok := ResolveGroup(list, toID)
	if !ok {
		return list
	}
	if to.Index > from.Index && to.Index < from.Index+len(from.Members) {
		return list
	}
	// A root group dropped onto a subgroup would split the subgroup's parent.
	if from.Node.IsRootGroup() && to.Node.IsSubgroup() {
		return list
	}
	if !canMoveGroup(from, to) {
		return list
	}

	// Root groups stay at the root; a subgroup lands one level below the
	// target. Deeper members keep their depth relative to the header.
	headerDepth := 0
	if from.Node.Depth > 0 {
		headerDepth = to.Node.Depth + 1
	}
	shift := headerDepth - from.Node.Depth
	moved := make([]model.Node, len(from.Members))
	for i, n := range from.Members {
		n.Depth += shift
		moved[i] = n
	}

	rest := make([]model.Node, 0, len(list)-len(from.Members))
	rest = append(rest, list[:from.Index]...)
	rest = append(rest, list[from.Index+len(from.Members):]...)

	newIndex := to.Index
	if from.Index < to.Index {
		newIndex = to.Index + len(to.Members) - len(from.Members)
	}

	out := insertAt(rest, newIndex, moved...)
	if Validate(out) != nil {
		return list
	}
	return out
}

// canMoveGroup enforces the one-subgroup-per-group rule: a subgroup may only
// be dropped onto a group whose run holds no other group header.
func canMoveGroup(from, to Resolved) bool {
	if !from.Node.IsSubgroup() {
		return true
	}
	headers := 0
	for _, n := range to.Members {
		if n.IsGroup() {
			headers++
		}
	}
	return headers <= 1
}

// MoveItem relocates a single item to the position of toID. The item takes
// the target's depth, or one level below it when the target is a group
// header. The item must end up directly inside a root-level group;
// otherwise the input is returned unchanged.
func MoveItem(list []model.Node, fromID, toID string) []model.Node {
	if fromID == toID {
		return list
	}
	fromIdx := IndexOf(list, fromID)
	toIdx := IndexOf(list, toID)
	if fromIdx < 0 || toIdx < 0 || !list[fromIdx].IsItem() {
		return list
	}

	moved := list[fromIdx]
	target := list[toIdx]
	moved.Depth = target.Depth
	if target.IsGroup() {
		moved.Depth = target.Depth + 1
	}

	out := arrayMove(list, fromIdx, toIdx)
	out[toIdx] = moved

	parent, ok := parentAt(out, toIdx)
	if !ok || !parent.IsRootGroup() || moved.Depth != parent.Depth+1 {
		return list
	}
	if Validate(out) != nil {
		return list
	}
	return out
}

// arrayMove returns a copy of list with the element at from moved to to.
func arrayMove(list []model.Node, from, to int) []model.Node {
	out := make([]model.Node, 0, len(list))
	out = append(out, list[:from]...)
	out = append(out, list[from+1:]...)
	return insertAt(out, to, list[from])
}

// insertAt returns a copy of list with nodes inserted at idx.
func insertAt(list []model.Node, idx int, nodes ...model.Node) []model.Node {
	if idx < 0 {
		idx = 0
	}
	if idx > len(list) {
		idx = len(list)
	}
	out := make([]model.Node, 0, len(list)+len(nodes))
	out = append(out, list[:idx]...)
	out = append(out, nodes...)
	out = append(out, list[idx:]...)
	return out
}
