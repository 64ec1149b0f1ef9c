package store

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"toolbar-cli/internal/model"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed layout.schema.json
var layoutSchemaJSON string

var layoutSchema = gojsonschema.NewStringLoader(layoutSchemaJSON)

// SchemaError lists why a stored or imported layout was refused.
type SchemaError struct {
	Errors []string
}

func (e *SchemaError) Error() string {
	return "invalid toolbar layout: " + strings.Join(e.Errors, "; ")
}

// ValidateLayoutJSON checks raw config_json against the layout schema.
func ValidateLayoutJSON(b []byte) error {
	if err := validateLayout(gojsonschema.NewBytesLoader(b)); err != nil {
		return err
	}
	var groups model.Groups
	if err := json.Unmarshal(b, &groups); err != nil {
		return err
	}
	return checkSubgroups(groups)
}

// ValidateLayout checks an in-memory layout the same way stored layouts are
// checked.
func ValidateLayout(groups model.Groups) error {
	if groups == nil {
		groups = model.Groups{}
	}
	if err := validateLayout(gojsonschema.NewGoLoader(groups)); err != nil {
		return err
	}
	return checkSubgroups(groups)
}

// The schema cannot bound how many array items a group holds.
func checkSubgroups(groups model.Groups) error {
	var errs []string
	for i, g := range groups {
		subgroups := 0
		for _, e := range g.Group {
			if e.IsGroup() {
				subgroups++
			}
		}
		if subgroups > 1 {
			errs = append(errs, fmt.Sprintf("(root).%d: group holds %d subgroups, at most one is allowed", i, subgroups))
		}
	}
	if len(errs) > 0 {
		return &SchemaError{Errors: errs}
	}
	return nil
}

func validateLayout(doc gojsonschema.JSONLoader) error {
	result, err := gojsonschema.Validate(layoutSchema, doc)
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	if result.Valid() {
		return nil
	}
	var msgs []string
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return &SchemaError{Errors: msgs}
}
