/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/samwightt/gqlvet/pkg/render"
	"github.com/samwightt/gqlvet/pkg/schema"
	"github.com/spf13/cobra"
)

type fieldsOptions struct {
	deprecated     bool
	meta           bool
	hasArg         []string
	returns        string
	required       bool
	nullable       bool
	name           string
	nameRegex      string
	hasDescription bool
}

var metaFieldNames = []string{
	schema.TypeNameMetaField.Name,
	schema.SchemaMetaField.Name,
	schema.TypeMetaField.Name,
}

func fieldToInfo(fieldDef *schema.FieldDefinition) FieldInfo {
	var args []ArgumentInfo
	for _, arg := range fieldDef.Arguments {
		args = append(args, ArgumentInfo{
			Name: arg.Name,
			Type: typeToString(arg.Type),
		})
	}

	return FieldInfo{
		Name:              fieldDef.Name,
		Arguments:         args,
		Type:              typeToString(fieldDef.Type),
		Description:       fieldDef.Description,
		IsDeprecated:      fieldDef.IsDeprecated,
		DeprecationReason: fieldDef.DeprecationReason,
	}
}

func inputFieldToInfo(field *schema.InputField) FieldInfo {
	return FieldInfo{
		Name:         field.Name,
		Type:         typeToString(field.Type),
		DefaultValue: valueToString(field.DefaultValue),
		Description:  field.Description,
	}
}

func formatFieldName(field FieldInfo, format render.Format) string {
	name := field.Name
	if field.TypeName != "" {
		name = field.TypeName + "." + field.Name
	}

	if len(field.Arguments) == 0 {
		return name
	}

	var args []string
	for _, arg := range field.Arguments {
		args = append(args, fmt.Sprintf("%s: %s", arg.Name, arg.Type))
	}

	if format == render.FormatPretty {
		return fmt.Sprintf("%s(\n\t\t%s\n\t)", name, strings.Join(args, ",\n\t\t"))
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(args, ", "))
}

func fieldTypeString(field FieldInfo) string {
	typeStr := field.Type
	if field.DefaultValue != "" {
		typeStr += " = " + field.DefaultValue
	}
	if field.IsDeprecated {
		typeStr += " @deprecated"
	}
	return typeStr
}

func formatFieldText(field FieldInfo) string {
	name := formatFieldName(field, render.FormatText)

	desc := ""
	if field.Description != "" {
		desc = " # " + oneLine(field.Description)
	}
	return fmt.Sprintf("%s: %s%s", name, fieldTypeString(field), desc)
}

func formatFieldsPretty(fields []FieldInfo) string {
	t := makeTable()

	for _, field := range fields {
		t.Row(formatFieldName(field, render.FormatPretty), fieldTypeString(field), oneLine(field.Description))
	}
	t.Headers("field", "type", "description")

	return t.String()
}

// typeFields returns the fields a selection on t can use, as the validator
// resolves them. Meta-fields are included only when meta is set.
func typeFields(s *schema.Schema, t schema.NamedType, meta bool) ([]*schema.FieldDefinition, error) {
	if !schema.IsCompositeType(t) {
		return nil, fmt.Errorf("'%s' has no fields (kind: %s)", t.TypeName(), kindToString(schema.Kind(t)))
	}

	var defs []*schema.FieldDefinition
	if meta {
		for _, name := range metaFieldNames {
			if def := s.ResolveField(t, name); def != nil {
				defs = append(defs, def)
			}
		}
	}
	for _, f := range schema.Fields(t) {
		// Duplicate names resolve to the first declaration.
		if s.ResolveField(t, f.Name) == f {
			defs = append(defs, f)
		}
	}
	return defs, nil
}

type fieldFilter struct {
	opts      *fieldsOptions
	nameRegex *regexp.Regexp
}

func (f fieldFilter) matches(field FieldInfo, args []*schema.ArgumentDefinition, t schema.Type) bool {
	opts := f.opts
	if opts.deprecated && !field.IsDeprecated {
		return false
	}
	for _, argName := range opts.hasArg {
		if schema.ResolveArgument(args, argName) == nil {
			return false
		}
	}
	if opts.returns != "" && schema.UnwrapType(t).TypeName() != opts.returns {
		return false
	}
	_, nonNull := t.(*schema.NonNull)
	if opts.required && !nonNull {
		return false
	}
	if opts.nullable && nonNull {
		return false
	}
	if opts.hasDescription && field.Description == "" {
		return false
	}
	if opts.name != "" {
		matched, _ := filepath.Match(opts.name, field.Name)
		if !matched {
			return false
		}
	}
	if f.nameRegex != nil && !f.nameRegex.MatchString(field.Name) {
		return false
	}
	return true
}

// collect returns the matching fields of t. Input objects list their
// input fields; composite types list what ResolveField can see.
func (f fieldFilter) collect(s *schema.Schema, t schema.NamedType) ([]FieldInfo, error) {
	var out []FieldInfo
	if in, ok := t.(*schema.InputObject); ok {
		for _, field := range in.Fields {
			info := inputFieldToInfo(field)
			if f.matches(info, nil, field.Type) {
				out = append(out, info)
			}
		}
		return out, nil
	}

	defs, err := typeFields(s, t, f.opts.meta)
	if err != nil {
		return nil, err
	}
	for _, def := range defs {
		info := fieldToInfo(def)
		if f.matches(info, def.Arguments, def.Type) {
			out = append(out, info)
		}
	}
	return out, nil
}

func NewFieldsCmd() *cobra.Command {
	opts := &fieldsOptions{}

	cmd := &cobra.Command{
		Use:   "fields [type]",
		Short: "Lists fields on a type or across all types",
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			s, err := loadSchema()
			if err != nil {
				return nil, cobra.ShellCompDirectiveError
			}
			return completeNames(s.TypeNames(), toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		Args: cobra.MaximumNArgs(1),
		Long: `Lists fields on a type or across all types with optional filtering.

If a type is specified, shows fields for that type only. Objects and interfaces
list their output fields, input objects list their input fields with defaults.
If no type is specified, shows all fields prefixed with their type (User.id, Post.title, etc).

With --meta, the introspection fields a query may select are listed too:
__typename on every object, interface and union, plus __schema and __type
on the query root.

Output formats:
  text    "name: String! # Description", "id: ID!", etc. (default when piping)
  json    [{"name": "id", "type": "ID!", "description": "..."}, ...]
  pretty  Formatted table with columns (default in terminal)

Multiple filters can be combined and are applied with AND logic.`,
		Example: `  # See all fields on a type
  gqlvet fields User

  # Include the fields a query can always select
  gqlvet fields Query --meta

  # Find deprecated fields
  gqlvet fields --deprecated

  # Find fields with pagination arguments that return a specific type
  gqlvet fields --has-arg first --has-arg after --returns User

  # Find fields ending in "Id"
  gqlvet fields --name "*Id"

  # Find fields matching a regex pattern
  gqlvet fields --name-regex "^(get|fetch)"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFields(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.deprecated, "deprecated", false, "Filter to only show deprecated fields")
	cmd.Flags().BoolVar(&opts.meta, "meta", false, "Include introspection meta-fields (__typename, __schema, __type)")
	cmd.Flags().StringArrayVar(&opts.hasArg, "has-arg", nil, "Filter to fields that have the given argument (can be specified multiple times)")
	cmd.Flags().StringVar(&opts.returns, "returns", "", "Filter to fields that return the given type")
	cmd.Flags().BoolVar(&opts.required, "required", false, "Filter to only show required (non-null) fields")
	cmd.Flags().BoolVar(&opts.nullable, "nullable", false, "Filter to only show nullable fields")
	cmd.Flags().StringVar(&opts.name, "name", "", "Filter fields by name using a glob pattern (e.g., *Id, get*)")
	cmd.Flags().StringVar(&opts.nameRegex, "name-regex", "", "Filter fields by name using a regex pattern")
	cmd.Flags().BoolVar(&opts.hasDescription, "has-description", false, "Filter to only show fields that have a description")

	return cmd
}

func runFields(cmd *cobra.Command, args []string, opts *fieldsOptions) error {
	if opts.required && opts.nullable {
		return fmt.Errorf("--required and --nullable cannot be used together")
	}

	filter := fieldFilter{opts: opts}
	if opts.nameRegex != "" {
		var err error
		filter.nameRegex, err = regexp.Compile(opts.nameRegex)
		if err != nil {
			return fmt.Errorf("invalid regex pattern for --name-regex: %w", err)
		}
	}

	s, err := loadCliForSchema()
	if err != nil {
		return err
	}

	var fields []FieldInfo

	if len(args) == 0 {
		// List all fields from all types
		for _, t := range s.Types() {
			if schema.IsBuiltIn(t) {
				continue
			}
			if _, ok := t.(*schema.InputObject); !ok && !schema.IsCompositeType(t) {
				continue
			}
			infos, err := filter.collect(s, t)
			if err != nil {
				return err
			}
			for _, info := range infos {
				info.TypeName = t.TypeName()
				fields = append(fields, info)
			}
		}
	} else {
		// List fields from specific type
		t, err := validateTypeExists(s, args[0], "type")
		if err != nil {
			return err
		}
		fields, err = filter.collect(s, t)
		if err != nil {
			return err
		}
	}

	if len(fields) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "No fields found that match the filters.")
	}

	renderer := render.Renderer[FieldInfo]{
		Data:         fields,
		TextFormat:   formatFieldText,
		PrettyFormat: formatFieldsPretty,
	}
	if err := renderer.Write(cmd.OutOrStdout(), outputFormat); err != nil {
		return fmt.Errorf("error rendering output: %w", err)
	}
	return nil
}
