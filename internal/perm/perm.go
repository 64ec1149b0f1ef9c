package perm

import (
	"toolbar-cli/internal/layout"
	"toolbar-cli/internal/model"
)

// Row lists the actions the configure dialog offers on one row.
type Row struct {
	CanAddSubgroup bool `json:"canAddSubgroup"`
	CanRemoveGroup bool `json:"canRemoveGroup"`
	CanRemoveItem  bool `json:"canRemoveItem"`
	Draggable      bool `json:"draggable"`
}

// ForNode computes the row actions for id in list.
//
// Rules:
//   - Built-in presets are read-only: no add or remove buttons anywhere.
//     Rows stay draggable since dragging converts the preset to custom.
//   - Nothing inside the trash (nor the trash itself) can be removed again.
//   - Only root groups get a subgroup button, and only while they hold no
//     subgroup yet.
//   - The trash is never draggable.
func ForNode(list []model.Node, id string, editable bool) Row {
	n, ok := layout.Find(list, id)
	if !ok {
		return Row{}
	}
	editable = editable && !layout.IsDeleted(list, id)
	return Row{
		CanAddSubgroup: editable && n.IsRootGroup() && !layout.HasSubgroup(list, id),
		CanRemoveGroup: editable && n.IsGroup(),
		CanRemoveItem:  editable && n.IsItem(),
		Draggable:      !n.IsTrash(),
	}
}
