/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samwightt/gqlvet/pkg/render"
	"github.com/samwightt/gqlvet/pkg/schema"
	"github.com/samwightt/gqlvet/pkg/suggest"
	"github.com/spf13/cobra"
)

func kindToString(kind string) string {
	switch kind {
	case "SCALAR":
		return "scalar"
	case "OBJECT":
		return "type"
	case "INTERFACE":
		return "interface"
	case "UNION":
		return "union"
	case "ENUM":
		return "enum"
	case "INPUT_OBJECT":
		return "input"
	default:
		return strings.ToLower(kind)
	}
}

func formatTypeText(t TypeInfo) string {
	kind := kindToString(t.Kind)
	if t.Description != "" {
		return fmt.Sprintf("%s %s # %s", kind, t.Name, oneLine(t.Description))
	}
	return fmt.Sprintf("%s %s", kind, t.Name)
}

func formatTypesPretty(types []TypeInfo) string {
	tbl := makeTable()

	for _, t := range types {
		tbl.Row(kindToString(t.Kind), t.Name, oneLine(t.Description))
	}
	tbl.Headers("kind", "name", "description")

	return tbl.String()
}

type typesOptions struct {
	kinds          []string
	implements     string
	hasField       []string
	composite      bool
	leaf           bool
	input          bool
	output         bool
	includeBuiltin bool
}

var validKinds = map[string]string{
	"scalar":    "SCALAR",
	"type":      "OBJECT",
	"object":    "OBJECT",
	"interface": "INTERFACE",
	"union":     "UNION",
	"enum":      "ENUM",
	"input":     "INPUT_OBJECT",
}

func validateKindFilter(kinds []string) error {
	for _, k := range kinds {
		if _, ok := validKinds[strings.ToLower(k)]; !ok {
			names := []string{"scalar", "type", "interface", "union", "enum", "input"}
			if suggestion := suggest.Closest(strings.ToLower(k), names); suggestion != "" {
				return fmt.Errorf("unknown kind '%s', did you mean '%s'?", k, suggestion)
			}
			return fmt.Errorf("unknown kind '%s' (valid: %s)", k, strings.Join(names, ", "))
		}
	}
	return nil
}

func matchesKindFilter(t schema.NamedType, kinds []string) bool {
	if len(kinds) == 0 {
		return true
	}
	for _, k := range kinds {
		if validKinds[strings.ToLower(k)] == schema.Kind(t) {
			return true
		}
	}
	return false
}

func validateImplementsFilter(s *schema.Schema, name string) error {
	if name == "" {
		return nil
	}
	iface, err := validateTypeExists(s, name, "interface")
	if err != nil {
		return err
	}
	if _, ok := iface.(*schema.Interface); !ok {
		return fmt.Errorf("'%s' is not an interface (it's a %s)", name, kindToString(schema.Kind(iface)))
	}
	return nil
}

func matchesImplementsFilter(t schema.NamedType, name string) bool {
	if name == "" {
		return true
	}
	obj, ok := t.(*schema.Object)
	if !ok {
		return false
	}
	return slices.ContainsFunc(obj.Interfaces, func(i schema.Type) bool {
		return i.String() == name
	})
}

// fieldNames returns the names of the fields an object, interface or
// input object declares.
func fieldNames(t schema.NamedType) []string {
	if in, ok := t.(*schema.InputObject); ok {
		return pluck(in.Fields, func(f *schema.InputField) string { return f.Name })
	}
	return pluck(schema.Fields(t), func(f *schema.FieldDefinition) string { return f.Name })
}

func matchesHasFieldFilter(t schema.NamedType, hasField []string) bool {
	if len(hasField) == 0 {
		return true
	}
	names := fieldNames(t)
	for _, fieldName := range hasField {
		if !slices.Contains(names, fieldName) {
			return false
		}
	}
	return true
}

// matchesCapabilities applies the capability flags. Each flag that is set
// must hold.
func matchesCapabilities(t schema.NamedType, opts *typesOptions) bool {
	if opts.composite && !schema.IsCompositeType(t) {
		return false
	}
	if opts.leaf && !schema.IsLeafType(t) {
		return false
	}
	if opts.input && !schema.IsInputType(t) {
		return false
	}
	if opts.output && !schema.IsOutputType(t) {
		return false
	}
	return true
}

func NewTypesCmd() *cobra.Command {
	opts := &typesOptions{}

	cmd := &cobra.Command{
		Use:   "types",
		Short: "Lists all types in the schema",
		Long: `Lists all types in the schema with optional filtering.

Shows the type's kind (enum, type, input, etc.) and the type name.
Built-in scalars and introspection types are hidden unless --include-builtin is set.

The capability filters follow the validator's view of the schema:
  --composite  types that take a selection set (type, interface, union)
  --leaf       types that must not have one (scalar, enum)
  --input      types allowed for arguments and variables
  --output     types allowed as field types

Output formats:
  text    "type User", "enum Status", etc. (default when piping)
  json    [{"name": "User", "kind": "OBJECT", "description": "..."}, ...]
  pretty  Formatted table with columns (default in terminal)

Multiple filters can be combined and are applied with AND logic.`,
		Example: `  # Find all types that could be returned by the API
  gqlvet types --kind type --kind interface

  # Types a variable may be declared with
  gqlvet types --input --include-builtin

  # Find all node types for Relay-style pagination
  gqlvet types --implements Node

  # Pipe to other tools
  gqlvet types --kind type -f json | jq '.[].name'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTypes(cmd, opts)
		},
	}

	cmd.Flags().StringArrayVar(&opts.kinds, "kind", nil, "Filter to types of the given kind: scalar, type, interface, union, enum, input (if specified multiple times, applied using OR logic)")
	cmd.Flags().StringVar(&opts.implements, "implements", "", "Filter to types that implement the given interface")
	cmd.Flags().StringArrayVar(&opts.hasField, "has-field", nil, "Filter to types that have the given field (can be specified multiple times)")
	cmd.Flags().BoolVar(&opts.composite, "composite", false, "Filter to composite types (type, interface, union)")
	cmd.Flags().BoolVar(&opts.leaf, "leaf", false, "Filter to leaf types (scalar, enum)")
	cmd.Flags().BoolVar(&opts.input, "input", false, "Filter to input types (scalar, enum, input)")
	cmd.Flags().BoolVar(&opts.output, "output", false, "Filter to output types (everything but input)")
	cmd.Flags().BoolVar(&opts.includeBuiltin, "include-builtin", false, "Include built-in scalars and introspection types")

	return cmd
}

func runTypes(cmd *cobra.Command, opts *typesOptions) error {
	if err := validateKindFilter(opts.kinds); err != nil {
		return err
	}

	s, err := loadCliForSchema()
	if err != nil {
		return err
	}

	if err := validateImplementsFilter(s, opts.implements); err != nil {
		return err
	}

	var types []TypeInfo
	for _, t := range s.Types() {
		builtIn := schema.IsBuiltIn(t)
		if builtIn && !opts.includeBuiltin {
			continue
		}
		if !matchesKindFilter(t, opts.kinds) {
			continue
		}
		if !matchesImplementsFilter(t, opts.implements) {
			continue
		}
		if !matchesHasFieldFilter(t, opts.hasField) {
			continue
		}
		if !matchesCapabilities(t, opts) {
			continue
		}
		types = append(types, namedTypeToInfo(t, builtIn))
	}

	renderer := render.Renderer[TypeInfo]{
		Data:         types,
		TextFormat:   formatTypeText,
		PrettyFormat: formatTypesPretty,
	}
	return renderer.Write(cmd.OutOrStdout(), outputFormat)
}

func namedTypeToInfo(t schema.NamedType, builtIn bool) TypeInfo {
	return TypeInfo{
		Name:        t.TypeName(),
		Kind:        schema.Kind(t),
		Description: typeDescription(t),
		BuiltIn:     builtIn,
	}
}

func typeDescription(t schema.NamedType) string {
	switch t := t.(type) {
	case *schema.Scalar:
		return t.Description
	case *schema.Object:
		return t.Description
	case *schema.Interface:
		return t.Description
	case *schema.Union:
		return t.Description
	case *schema.InputObject:
		return t.Description
	case *schema.Enum:
		return t.Description
	}
	return ""
}
