package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"toolbar-cli/internal/format"
	"toolbar-cli/internal/layout"
	"toolbar-cli/internal/model"
	"toolbar-cli/internal/store"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newExportCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the nested toolbar layout (what the editor renders)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := loadWorkspace(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			tools := w.sess.Tools()
			if raw {
				return format.Write(cmd.OutOrStdout(), tools, app.Format, app.PrettyJSON)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"platform": app.Platform,
				"preset":   w.sess.Preset().ID,
				"tools":    tools,
			}})
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print the bare layout (no JSON envelope)")
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Save a JSON or YAML layout as the custom preset",
		Long: strings.TrimSpace(`
Reads a layout (a list of groups, each a list of tool ids or one nested
subgroup) and saves it as the platform's custom preset. The output of
` + "`toolbar export`" + ` is accepted as is. Unknown tools are dropped and reported.
`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var groups model.Groups
			var err error
			if args[0] == "-" {
				groups, err = readLayout(cmd.InOrStdin())
			} else {
				groups, err = readLayoutFile(args[0])
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := store.ValidateLayout(groups); err != nil {
				return writeErr(cmd, err)
			}

			w, err := loadWorkspace(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			unknown := []string{}
			clean := layout.Export(layout.Seed(w.reg, groups, layout.WithUnknownToolHandler(func(id string) {
				unknown = append(unknown, id)
			})))
			w.useCustom(clean, app.logger)
			if _, err := w.save(cmd, app); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": w.view(app.Platform),
				"meta": map[string]any{"droppedTools": unknown},
			})
		},
	}
	return cmd
}

func readLayoutFile(path string) (model.Groups, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	groups, err := readLayout(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return groups, nil
}

// readLayout accepts a bare layout or an envelope carrying one under
// data.tools, tools or config, as JSON or YAML.
func readLayout(r io.Reader) (model.Groups, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, errors.New("empty layout")
	}
	if json.Valid(b) {
		if b[0] == '[' {
			if err := store.ValidateLayoutJSON(b); err != nil {
				return nil, err
			}
			var groups model.Groups
			if err := json.Unmarshal(b, &groups); err != nil {
				return nil, err
			}
			return groups, nil
		}
		var doc layoutDoc
		if err := json.Unmarshal(b, &doc); err != nil {
			return nil, err
		}
		return doc.groups()
	}

	var node yaml.Node
	if err := yaml.Unmarshal(b, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 1 && node.Content[0].Kind == yaml.SequenceNode {
		var groups model.Groups
		if err := node.Decode(&groups); err != nil {
			return nil, err
		}
		return groups, nil
	}
	var doc layoutDoc
	if err := node.Decode(&doc); err != nil {
		return nil, err
	}
	return doc.groups()
}

type layoutDoc struct {
	Data *struct {
		Tools model.Groups `json:"tools" yaml:"tools"`
	} `json:"data" yaml:"data"`
	Tools  model.Groups `json:"tools" yaml:"tools"`
	Config model.Groups `json:"config" yaml:"config"`
}

func (d layoutDoc) groups() (model.Groups, error) {
	switch {
	case d.Data != nil && d.Data.Tools != nil:
		return d.Data.Tools, nil
	case d.Tools != nil:
		return d.Tools, nil
	case d.Config != nil:
		return d.Config, nil
	}
	return nil, errors.New("no layout found (expected a list of groups, data.tools, tools or config)")
}
