/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/samwightt/gqlvet/pkg/diagnostic"
	"github.com/samwightt/gqlvet/pkg/render"
	"github.com/samwightt/gqlvet/pkg/schema"
	"github.com/samwightt/gqlvet/pkg/validation"
	"github.com/samwightt/gqlvet/pkg/validation/rules"
	"github.com/spf13/cobra"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vektah/gqlparser/v2/parser"
)

// ErrValidationFailed is returned when a query fails validation.
// This is a sentinel error that indicates the query is invalid,
// not that the command itself failed.
var ErrValidationFailed = errors.New("validation failed")

type validateOptions struct {
	rules        []string
	disableRules []string
}

// syntaxErrors converts a parse failure into InvalidSyntax findings.
func syntaxErrors(err error) []validation.ValidationError {
	var list gqlerror.List
	var single *gqlerror.Error
	switch {
	case errors.As(err, &list):
	case errors.As(err, &single):
		list = gqlerror.List{single}
	default:
		return []validation.ValidationError{validation.NewError(validation.InvalidSyntax, nil, err.Error())}
	}

	result := make([]validation.ValidationError, 0, len(list))
	for _, e := range list {
		valErr := validation.ValidationError{
			Kind:      validation.InvalidSyntax,
			Message:   e.Message,
			Locations: []validation.Location{},
		}
		for _, loc := range e.Locations {
			valErr.Locations = append(valErr.Locations, validation.Location{Line: loc.Line, Column: loc.Column})
		}
		result = append(result, valErr)
	}
	return result
}

func validateQuery(querySource string, queryContent string, s *schema.Schema, v *validation.Validator) (*ValidationResult, error) {
	doc, err := parser.ParseQuery(&ast.Source{Input: queryContent, Name: querySource})
	if err != nil {
		// Parse errors are also validation failures
		return &ValidationResult{Valid: false, Errors: syntaxErrors(err)}, nil
	}

	errs, err := v.Validate(s, doc)
	if err != nil {
		return nil, err
	}

	result := &ValidationResult{Valid: len(errs) == 0, Errors: []validation.ValidationError(errs)}
	if result.Errors == nil {
		result.Errors = []validation.ValidationError{}
	}
	return result, nil
}

// Validation Error Display
//
// Findings carry a start position but no span. Field findings underline
// the field as written at that position, alias included. Other kinds that
// quote a name recover it from the message; everything else gets a
// single caret.
//
// Rules append a ` Did you mean "x"?` sentence when they know a close
// name. The text output moves it into a help line.

var (
	fieldNameRegex     = regexp.MustCompile(`of field (\S+)$`)
	variableNameRegex  = regexp.MustCompile(`^Variable "\$([^"]+)"`)
	directiveNameRegex = regexp.MustCompile(`^Unknown directive "@([^"]+)"`)
	typeNameRegex      = regexp.MustCompile(`^Unknown type "([^"]+)"`)
	fieldSourceRegex   = regexp.MustCompile(`^[_A-Za-z][_0-9A-Za-z]*(\s*:\s*[_A-Za-z][_0-9A-Za-z]*)?`)
	didYouMeanRegex    = regexp.MustCompile(`^(.*?)\s*Did you mean "([^"]+)"\?$`)
)

// errorSpanLength returns the length to underline for a given error.
// For known kinds, it calculates the actual span. Otherwise returns 1.
func errorSpanLength(err validation.ValidationError, lines []string) int {
	var re *regexp.Regexp
	extra := 0
	switch err.Kind {
	case validation.SubSelectionRequired, validation.SubSelectionNotAllowed:
		if n := fieldSpanAt(err, lines); n > 0 {
			return n
		}
		re = fieldNameRegex
	case validation.VariableTypeMismatch, validation.UndefinedVariable, validation.UnusedVariable, validation.NonInputTypeOnVariable:
		re, extra = variableNameRegex, 1
	case validation.UnknownDirective:
		re = directiveNameRegex
	case validation.UnknownType:
		re = typeNameRegex
	default:
		return 1
	}
	if matches := re.FindStringSubmatch(err.Message); len(matches) == 2 {
		return len(matches[1]) + extra
	}
	return 1
}

// fieldSpanAt returns the length of the field written at the error's
// location, "alias: name" for aliased fields, or 0 when the source there
// does not start with a name.
func fieldSpanAt(err validation.ValidationError, lines []string) int {
	if len(err.Locations) == 0 {
		return 0
	}
	loc := err.Locations[0]
	if loc.Line < 1 || loc.Line > len(lines) || loc.Column < 1 {
		return 0
	}
	line := []rune(lines[loc.Line-1])
	if loc.Column > len(line) {
		return 0
	}
	match := fieldSourceRegex.FindString(string(line[loc.Column-1:]))
	return len([]rune(match))
}

// splitSuggestion separates a trailing "did you mean" sentence from a
// message and returns it as a help line.
func splitSuggestion(message string) (string, string) {
	matches := didYouMeanRegex.FindStringSubmatch(message)
	if len(matches) != 3 {
		return message, ""
	}
	return matches[1], fmt.Sprintf("did you mean `%s`?", matches[2])
}

// detectZshEscapeIssue checks if a parse error might be caused by zsh's history
// expansion escaping `!` as `\!`. Returns a help message if detected.
func detectZshEscapeIssue(err validation.ValidationError, sourceContent string, sourceName string) string {
	if sourceName != "stdin" {
		return ""
	}
	// Check if content contains \! which is likely zsh escape
	if !strings.Contains(sourceContent, `\!`) {
		return ""
	}
	// Check if error is near a \! sequence
	if len(err.Locations) == 0 {
		return ""
	}
	loc := err.Locations[0]
	lines := strings.Split(sourceContent, "\n")
	if loc.Line < 1 || loc.Line > len(lines) {
		return ""
	}
	line := lines[loc.Line-1]
	// Check if there's a \! at or near the error column
	col := loc.Column - 1
	if col >= 0 && col < len(line)-1 && line[col] == '\\' && line[col+1] == '!' {
		return "it looks like zsh escaped `!` as `\\!`. Try using a heredoc instead:\n" +
			"       cat <<'EOF' | gqlvet validate\n" +
			"       query { ... }\n" +
			"       EOF"
	}
	return ""
}

func toDiagnostic(err validation.ValidationError, sourceName string, sourceContent string, lines []string) diagnostic.Diagnostic {
	message, help := splitSuggestion(err.Message)
	d := diagnostic.Diagnostic{
		Source:  sourceName,
		Message: message,
		Length:  errorSpanLength(err, lines),
	}
	if len(err.Locations) > 0 {
		d.Line = err.Locations[0].Line
		d.Column = err.Locations[0].Column
	}

	// Check for zsh escape issue first
	if zshHelp := detectZshEscapeIssue(err, sourceContent, sourceName); zshHelp != "" {
		d.Help = append(d.Help, zshHelp)
	} else if help != "" {
		d.Help = append(d.Help, help)
	}
	return d
}

func formatValidationResultText(result *ValidationResult, sourceName string, sourceContent string) string {
	if result.Valid {
		return "✓ Query is valid"
	}

	lines := strings.Split(sourceContent, "\n")

	var b strings.Builder
	if len(result.Errors) == 1 {
		b.WriteString("✗ Query has 1 error:\n")
	} else {
		fmt.Fprintf(&b, "✗ Query has %d errors:\n", len(result.Errors))
	}

	for _, err := range result.Errors {
		b.WriteString(toDiagnostic(err, sourceName, sourceContent, lines).Render(lines))
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// selectRules picks the rules to run. Flags replace the config file's
// lists rather than adding to them.
func selectRules(cmd *cobra.Command, opts *validateOptions) ([]validation.Rule, error) {
	enable, disable := enabledRules, disabledRules
	if cmd.Flags().Changed("rule") {
		enable = opts.rules
	}
	if cmd.Flags().Changed("disable-rule") {
		disable = opts.disableRules
	}
	return rules.Select(enable, disable)
}

func NewValidateCmd() *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Type-check a GraphQL query against the schema",
		Long: `Validates GraphQL queries and mutations against the schema.

The query can be provided as a file path argument or piped via stdin.

Rules can be narrowed with --rule (run only these) and --disable-rule,
or with rules.enable and rules.disable in the config file. Run
"gqlvet rules" to see them all.

Exit codes:
  0 - Query is valid
  1 - Query has validation or parse errors

Output formats:
  text    Human-readable error messages with locations
  json    {"valid": bool, "errors": [{"kind", "message", "locations"}, ...]}`,
		Example: `  # Validate from a file
  gqlvet validate query.graphql

  # Validate from stdin
  echo "query { user { id } }" | gqlvet validate

  # Only check variable usage
  gqlvet validate query.graphql --rule VariableTypesMatch --rule NoUndefinedVariables

  # JSON output for CI integration
  gqlvet validate query.graphql -f json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidateCmd(cmd, args, opts)
		},
	}

	cmd.Flags().StringArrayVar(&opts.rules, "rule", nil, "Only run the given rule (can be specified multiple times)")
	cmd.Flags().StringArrayVar(&opts.disableRules, "disable-rule", nil, "Skip the given rule (can be specified multiple times)")

	return cmd
}

func runValidateCmd(cmd *cobra.Command, args []string, opts *validateOptions) error {
	selected, err := selectRules(cmd, opts)
	if err != nil {
		return err
	}

	s, err := loadCliForSchema()
	if err != nil {
		return err
	}

	var queryContent string
	var querySource string

	if len(args) == 1 {
		// Read from file
		querySource = args[0]
		bytes, err := os.ReadFile(querySource)
		if err != nil {
			return fmt.Errorf("failed to read query file: %w", err)
		}
		queryContent = string(bytes)
	} else {
		// Read from stdin
		querySource = "stdin"
		bytes, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read from stdin: %w", err)
		}
		queryContent = string(bytes)
	}

	validator := validation.New(selected, validation.WithLogger(logger))
	result, err := validateQuery(querySource, queryContent, s, validator)
	if err != nil {
		return err
	}

	output := render.Value[*ValidationResult]{
		Data: result,
		TextFormat: func(r *ValidationResult) string {
			return formatValidationResultText(r, querySource, queryContent)
		},
	}
	if err := output.Write(cmd.OutOrStdout(), outputFormat); err != nil {
		return err
	}

	// Return error if validation failed (causes exit code 1)
	if !result.Valid {
		return ErrValidationFailed
	}

	return nil
}
