package cli

import (
	"errors"
	"fmt"
	"strings"

	"toolbar-cli/internal/model"

	"github.com/spf13/cobra"
)

// mutate runs fn against a freshly loaded workspace, saves the result and
// prints the new toolbar. meta, when non-nil, is added to the envelope.
func mutate(cmd *cobra.Command, app *App, fn func(w *workspace) (map[string]any, error)) error {
	w, err := loadWorkspace(cmd, app)
	if err != nil {
		return writeErr(cmd, err)
	}
	meta, err := fn(w)
	if err != nil {
		return writeErr(cmd, err)
	}
	if _, err := w.save(cmd, app); err != nil {
		return writeErr(cmd, err)
	}
	env := map[string]any{"data": w.view(app.Platform)}
	if meta != nil {
		env["meta"] = meta
	}
	return writeOut(cmd, app, env)
}

func newMoveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <node> <target>",
		Short: "Move an item or group onto another node (built-in presets become custom)",
		Long: strings.TrimSpace(`
Moves a node the way a drag and drop in the dialog does. Nodes are referenced
by node id, tool id, group title or "trash".

Items take the place of the target (inside it when the target is a group).
Groups move as a whole, together with their members.
`),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutate(cmd, app, func(w *workspace) (map[string]any, error) {
				items := w.sess.Items()
				from, err := resolveRef(items, args[0])
				if err != nil {
					return nil, err
				}
				to, err := resolveRef(items, args[1])
				if err != nil {
					return nil, err
				}
				if !w.sess.Move(from.ID, to.ID) {
					return nil, errRejected(fmt.Sprintf("move %s onto %s", from.ID, to.ID))
				}
				return nil, nil
			})
		},
	}
	return cmd
}

func newAddGroupCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-group",
		Short: "Append an empty group before the disabled items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutate(cmd, app, func(w *workspace) (map[string]any, error) {
				before := w.sess.Items()
				notice, err := w.sess.AddGroup()
				if err != nil {
					return nil, explainSessionErr(err, "add-group", w.sess.Preset())
				}
				return addedMeta(before, w.sess.Items(), notice.Message), nil
			})
		},
	}
	return cmd
}

func newAddSubgroupCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-subgroup <group>",
		Short: "Add a subgroup at the end of a group (one per group)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutate(cmd, app, func(w *workspace) (map[string]any, error) {
				before := w.sess.Items()
				g, err := resolveRef(before, args[0])
				if err != nil {
					return nil, err
				}
				notice, err := w.sess.AddSubGroup(g.ID)
				if err != nil {
					return nil, explainSessionErr(err, "add-subgroup "+g.ID, w.sess.Preset())
				}
				return addedMeta(before, w.sess.Items(), notice.Message), nil
			})
		},
	}
	return cmd
}

func addedMeta(before, after []model.Node, notice string) map[string]any {
	meta := map[string]any{"notice": notice}
	if n, ok := addedNode(before, after); ok {
		meta["added"] = n
	}
	return meta
}

func newRemoveGroupCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove-group <group>",
		Short: "Remove a group; its tools move to the disabled items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutate(cmd, app, func(w *workspace) (map[string]any, error) {
				g, err := resolveRef(w.sess.Items(), args[0])
				if err != nil {
					return nil, err
				}
				if !g.IsGroup() {
					return nil, fmt.Errorf("not a group: %s (use `toolbar remove`)", g.ID)
				}
				if err := w.sess.RemoveGroup(g.ID); err != nil {
					return nil, explainSessionErr(err, "remove-group "+g.ID, w.sess.Preset())
				}
				return nil, nil
			})
		},
	}
	return cmd
}

func newRemoveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <node>",
		Short: "Disable a tool (or remove a group)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutate(cmd, app, func(w *workspace) (map[string]any, error) {
				n, err := resolveRef(w.sess.Items(), args[0])
				if err != nil {
					return nil, err
				}
				if err := w.sess.Remove(n.ID); err != nil {
					return nil, explainSessionErr(err, "remove "+n.ID, w.sess.Preset())
				}
				return nil, nil
			})
		},
	}
	return cmd
}

func newRestoreCmd(app *App) *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "restore <tool>",
		Short: "Move a disabled tool back onto the toolbar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutate(cmd, app, func(w *workspace) (map[string]any, error) {
				items := w.sess.Items()
				n, err := resolveRef(items, args[0])
				if err != nil {
					return nil, err
				}
				target, err := restoreTarget(items, to)
				if err != nil {
					return nil, err
				}
				if err := w.sess.Restore(n.ID, target.ID); err != nil {
					return nil, explainSessionErr(err, fmt.Sprintf("restore %s next to %s", n.ID, target.ID), w.sess.Preset())
				}
				return nil, nil
			})
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Node to restore next to (default: first tool on the toolbar)")
	return cmd
}

// restoreTarget resolves --to, defaulting to the first item directly inside
// a root group.
func restoreTarget(items []model.Node, ref string) (model.Node, error) {
	if strings.TrimSpace(ref) != "" {
		return resolveRef(items, ref)
	}
	for _, n := range items {
		if n.IsTrash() {
			break
		}
		if n.IsItem() && n.Depth == 1 {
			return n, nil
		}
	}
	return model.Node{}, errors.New("no tool on the toolbar to restore next to (use --to)")
}
