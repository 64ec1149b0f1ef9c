package layout

import "toolbar-cli/internal/model"

// DisabledTools lists, in registry order, every user-configurable tool that
// does not appear as an item in list.
func DisabledTools(list []model.Node, reg Registry) []string {
	present := map[string]bool{}
	for _, n := range list {
		if n.IsItem() {
			present[n.ToolID] = true
		}
	}
	disabled := []string{}
	for _, def := range reg.All() {
		if def.Conditional || present[def.ID] {
			continue
		}
		disabled = append(disabled, def.ID)
	}
	return disabled
}
