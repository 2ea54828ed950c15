/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/samwightt/gqlvet/pkg/render"
	"github.com/samwightt/gqlvet/pkg/schema"
	"github.com/samwightt/gqlvet/pkg/suggest"
	"github.com/spf13/cobra"
)

type valuesOptions struct {
	deprecated     bool
	hasDescription bool
	includeBuiltin bool
}

func formatValueName(v ValueInfo) string {
	if v.EnumName != "" {
		return v.EnumName + "." + v.Name
	}
	return v.Name
}

func formatValueText(v ValueInfo) string {
	name := formatValueName(v)
	if v.IsDeprecated {
		name += " @deprecated"
	}
	if v.Description != "" {
		return fmt.Sprintf("%s # %s", name, oneLine(v.Description))
	}
	return name
}

func formatValuesPretty(values []ValueInfo) string {
	t := makeTable()

	for _, v := range values {
		t.Row(formatValueName(v), oneLine(v.Description), v.DeprecationReason)
	}
	t.Headers("value", "description", "deprecated")

	return t.String()
}

func enumNames(s *schema.Schema) []string {
	var names []string
	for _, t := range s.Types() {
		if _, ok := t.(*schema.Enum); ok {
			names = append(names, t.TypeName())
		}
	}
	return names
}

func enumValues(enum *schema.Enum, opts *valuesOptions) []ValueInfo {
	var out []ValueInfo
	for _, value := range enum.Values {
		if opts.deprecated && !value.IsDeprecated {
			continue
		}
		if opts.hasDescription && value.Description == "" {
			continue
		}
		out = append(out, ValueInfo{
			Name:              value.Name,
			Description:       value.Description,
			IsDeprecated:      value.IsDeprecated,
			DeprecationReason: value.DeprecationReason,
		})
	}
	return out
}

func NewValuesCmd() *cobra.Command {
	opts := &valuesOptions{}

	cmd := &cobra.Command{
		Use:   "values [enum]",
		Short: "Lists values of an enum type.",
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			s, err := loadSchema()
			if err != nil {
				return nil, cobra.ShellCompDirectiveError
			}
			return completeNames(enumNames(s), toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		Args: cobra.MaximumNArgs(1),
		Long: `Lists values of an enum type in the schema.

If an enum is specified, only values for that enum are shown.
If no enum is specified, all enum values for all enums are shown.
The introspection enums (__TypeKind, __DirectiveLocation) are skipped
unless --include-builtin is set or one of them is named.`,
		Example: `  # Values of one enum
  gqlvet values Status

  # Deprecated values anywhere
  gqlvet values --deprecated`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValues(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.deprecated, "deprecated", false, "Filter to only show deprecated values")
	cmd.Flags().BoolVar(&opts.hasDescription, "has-description", false, "Filter to only show values that have a description")
	cmd.Flags().BoolVar(&opts.includeBuiltin, "include-builtin", false, "Include the introspection enums")

	return cmd
}

func runValues(cmd *cobra.Command, args []string, opts *valuesOptions) error {
	s, err := loadCliForSchema()
	if err != nil {
		return err
	}

	var values []ValueInfo

	if len(args) == 0 {
		// List all values from all enums
		for _, t := range s.Types() {
			enum, ok := t.(*schema.Enum)
			if !ok || (schema.IsBuiltIn(t) && !opts.includeBuiltin) {
				continue
			}
			for _, v := range enumValues(enum, opts) {
				v.EnumName = enum.Name
				values = append(values, v)
			}
		}
	} else {
		// List values from specific enum
		enumName := args[0]
		t := s.Type(enumName)
		if t == nil {
			if suggestion := suggest.Closest(enumName, enumNames(s)); suggestion != "" {
				return fmt.Errorf("enum '%s' does not exist in schema, did you mean '%s'?", enumName, suggestion)
			}
			return fmt.Errorf("enum '%s' does not exist in schema", enumName)
		}

		enum, ok := t.(*schema.Enum)
		if !ok {
			return fmt.Errorf("'%s' is not an enum (it's a %s)", enumName, kindToString(schema.Kind(t)))
		}
		values = enumValues(enum, opts)
	}

	if len(values) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "No values found that match the filters.")
	}

	renderer := render.Renderer[ValueInfo]{
		Data:         values,
		TextFormat:   formatValueText,
		PrettyFormat: formatValuesPretty,
	}
	if err := renderer.Write(cmd.OutOrStdout(), outputFormat); err != nil {
		return fmt.Errorf("error rendering output: %w", err)
	}
	return nil
}
