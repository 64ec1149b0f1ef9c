package model

// TrashID is the reserved id of the group that holds disabled tools.
const TrashID = "trash"

// TrashTitle is the display title of the trash group.
const TrashTitle = "Disabled items"

type NodeKind string

const (
	NodeKindGroup NodeKind = "group"
	NodeKindItem  NodeKind = "item"
)

// Variant discriminates the three node shapes of the flat list.
// Group and Subgroup share a kind; depth tells them apart.
type Variant int

const (
	VariantGroup Variant = iota
	VariantSubgroup
	VariantItem
)

func (v Variant) String() string {
	switch v {
	case VariantGroup:
		return "group"
	case VariantSubgroup:
		return "subgroup"
	case VariantItem:
		return "item"
	default:
		return "unknown"
	}
}

// Node is one row of the flattened toolbar tree.
type Node struct {
	Kind  NodeKind `json:"type" yaml:"type"`
	ID    string   `json:"id" yaml:"id"`
	Title string   `json:"title" yaml:"title"`
	Depth int      `json:"depth" yaml:"depth"`

	// Item only.
	ToolID string `json:"toolId,omitempty" yaml:"toolId,omitempty"`
	Icon   string `json:"icon,omitempty" yaml:"icon,omitempty"`

	// Subgroup only.
	Collapsed bool `json:"collapsed,omitempty" yaml:"collapsed,omitempty"`
}

func (n Node) Variant() Variant {
	if n.Kind == NodeKindItem {
		return VariantItem
	}
	if n.Depth > 0 {
		return VariantSubgroup
	}
	return VariantGroup
}

// IsGroup reports whether n is a group or subgroup header.
func (n Node) IsGroup() bool { return n.Kind == NodeKindGroup }

func (n Node) IsRootGroup() bool { return n.Variant() == VariantGroup }

func (n Node) IsSubgroup() bool { return n.Variant() == VariantSubgroup }

func (n Node) IsItem() bool { return n.Kind == NodeKindItem }

func (n Node) IsTrash() bool { return n.ID == TrashID }
