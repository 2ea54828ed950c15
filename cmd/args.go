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
	"github.com/samwightt/gqlvet/pkg/suggest"
	"github.com/spf13/cobra"
)

type argsOptions struct {
	typeFilter     string
	required       bool
	nullable       bool
	name           string
	nameRegex      string
	hasDescription bool
}

// requiredArg reports whether a query must pass arg: it is non-null and
// has no default.
func requiredArg(arg *schema.ArgumentDefinition) bool {
	_, nonNull := arg.Type.(*schema.NonNull)
	return nonNull && arg.DefaultValue == nil
}

func matchesArgFilters(arg *schema.ArgumentDefinition, opts *argsOptions, nameRegex *regexp.Regexp) bool {
	if opts.typeFilter != "" && schema.UnwrapType(arg.Type).TypeName() != opts.typeFilter {
		return false
	}
	if opts.required && !requiredArg(arg) {
		return false
	}
	if opts.nullable && requiredArg(arg) {
		return false
	}
	if opts.hasDescription && arg.Description == "" {
		return false
	}
	if opts.name != "" {
		matched, _ := filepath.Match(opts.name, arg.Name)
		if !matched {
			return false
		}
	}
	if nameRegex != nil && !nameRegex.MatchString(arg.Name) {
		return false
	}
	return true
}

func formatArgName(arg ArgInfo) string {
	if arg.TypeName != "" && arg.FieldName != "" {
		return fmt.Sprintf("%s.%s.%s", arg.TypeName, arg.FieldName, arg.Name)
	}
	if arg.FieldName != "" {
		return fmt.Sprintf("%s.%s", arg.FieldName, arg.Name)
	}
	return arg.Name
}

func argTypeString(arg ArgInfo) string {
	if arg.DefaultValue != "" {
		return arg.Type + " = " + arg.DefaultValue
	}
	return arg.Type
}

func formatArgText(arg ArgInfo) string {
	desc := ""
	if arg.Description != "" {
		desc = " # " + oneLine(arg.Description)
	}
	return fmt.Sprintf("%s: %s%s", formatArgName(arg), argTypeString(arg), desc)
}

func formatArgsPretty(args []ArgInfo) string {
	t := makeTable()

	for _, arg := range args {
		t.Row(formatArgName(arg), argTypeString(arg), oneLine(arg.Description))
	}
	t.Headers("argument", "type", "description")

	return t.String()
}

func argToInfo(arg *schema.ArgumentDefinition) ArgInfo {
	return ArgInfo{
		Name:         arg.Name,
		Type:         typeToString(arg.Type),
		DefaultValue: valueToString(arg.DefaultValue),
		Description:  arg.Description,
	}
}

// resolveArgsTarget finds the arguments named by target, which is either
// Type.field or @directive. Field lookup goes through ResolveField, so
// meta-fields such as Query.__type work too.
func resolveArgsTarget(s *schema.Schema, target string) ([]*schema.ArgumentDefinition, error) {
	if name, ok := strings.CutPrefix(target, "@"); ok {
		if d := s.Directive(name); d != nil {
			return d.Arguments, nil
		}
		names := pluck(s.Directives(), func(d *schema.DirectiveDefinition) string { return d.Name })
		if suggestion := suggest.Closest(name, names); suggestion != "" {
			return nil, fmt.Errorf("directive '@%s' does not exist in schema, did you mean '@%s'?", name, suggestion)
		}
		return nil, fmt.Errorf("directive '@%s' does not exist in schema", name)
	}

	typeName, fieldName, ok := strings.Cut(target, ".")
	if !ok || typeName == "" || fieldName == "" || strings.Contains(fieldName, ".") {
		return nil, fmt.Errorf("field must be specified as Type.field (e.g., Query.user) or @directive")
	}

	t, err := validateTypeExists(s, typeName, "type")
	if err != nil {
		return nil, err
	}
	if def := s.ResolveField(t, fieldName); def != nil {
		return def.Arguments, nil
	}

	candidates := pluck(schema.Fields(t), func(f *schema.FieldDefinition) string { return f.Name })
	if suggestion := suggest.Closest(fieldName, candidates); suggestion != "" {
		return nil, fmt.Errorf("field '%s' does not exist on type '%s', did you mean '%s'?", fieldName, typeName, suggestion)
	}
	return nil, fmt.Errorf("field '%s' does not exist on type '%s'", fieldName, typeName)
}

func NewArgsCmd() *cobra.Command {
	opts := &argsOptions{}

	cmd := &cobra.Command{
		Use:   "args [field]",
		Short: "Lists arguments on fields and directives.",
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			s, err := loadSchema()
			if err != nil {
				return nil, cobra.ShellCompDirectiveError
			}

			var names []string
			for _, t := range s.Types() {
				for _, field := range schema.Fields(t) {
					if len(field.Arguments) > 0 {
						names = append(names, t.TypeName()+"."+field.Name)
					}
				}
			}
			for _, d := range s.Directives() {
				names = append(names, "@"+d.Name)
			}
			return completeNames(names, toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		Args: cobra.MaximumNArgs(1),
		Long: `Lists arguments on fields and directives in the schema.

If a field is specified (as Type.field), only arguments for that field are shown.
Directive arguments are listed with @name. If nothing is specified, all arguments
for all fields of non-built-in types are shown.

An argument is required when its type is non-null and it has no default value.`,
		Example: `  # Arguments of a field
  gqlvet args Query.user

  # Arguments of a directive
  gqlvet args @include

  # Required ID arguments anywhere in the schema
  gqlvet args --required --type ID`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArgs(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.typeFilter, "type", "", "Filter to arguments of the given type")
	cmd.Flags().BoolVar(&opts.required, "required", false, "Filter to only show required arguments (non-null without a default)")
	cmd.Flags().BoolVar(&opts.nullable, "nullable", false, "Filter to only show optional arguments")
	cmd.Flags().StringVar(&opts.name, "name", "", "Filter arguments by name using a glob pattern (e.g., *Id, first*)")
	cmd.Flags().StringVar(&opts.nameRegex, "name-regex", "", "Filter arguments by name using a regex pattern")
	cmd.Flags().BoolVar(&opts.hasDescription, "has-description", false, "Filter to only show arguments that have a description")

	return cmd
}

func runArgs(cmd *cobra.Command, args []string, opts *argsOptions) error {
	if opts.required && opts.nullable {
		return fmt.Errorf("--required and --nullable cannot be used together")
	}

	var nameRegex *regexp.Regexp
	if opts.nameRegex != "" {
		var err error
		nameRegex, err = regexp.Compile(opts.nameRegex)
		if err != nil {
			return fmt.Errorf("invalid regex pattern for --name-regex: %w", err)
		}
	}

	s, err := loadCliForSchema()
	if err != nil {
		return err
	}

	var argInfos []ArgInfo

	if len(args) == 0 {
		// List all arguments from all fields
		for _, t := range s.Types() {
			if schema.IsBuiltIn(t) {
				continue
			}
			for _, field := range schema.Fields(t) {
				for _, arg := range field.Arguments {
					if !matchesArgFilters(arg, opts, nameRegex) {
						continue
					}
					info := argToInfo(arg)
					info.TypeName = t.TypeName()
					info.FieldName = field.Name
					argInfos = append(argInfos, info)
				}
			}
		}
	} else {
		defs, err := resolveArgsTarget(s, args[0])
		if err != nil {
			return err
		}
		for _, arg := range defs {
			if matchesArgFilters(arg, opts, nameRegex) {
				argInfos = append(argInfos, argToInfo(arg))
			}
		}
	}

	if len(argInfos) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "No arguments found that match the filters.")
	}

	renderer := render.Renderer[ArgInfo]{
		Data:         argInfos,
		TextFormat:   formatArgText,
		PrettyFormat: formatArgsPretty,
	}
	if err := renderer.Write(cmd.OutOrStdout(), outputFormat); err != nil {
		return fmt.Errorf("error rendering output: %w", err)
	}
	return nil
}
