package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samwightt/gqlvet/pkg/schema"
	"github.com/samwightt/gqlvet/pkg/suggest"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"go.uber.org/zap"
)

var tableStyle = lipgloss.NewStyle().PaddingRight(1)

func makeTable() *table.Table {
	return table.New().
		Width(120).
		Wrap(true).
		StyleFunc(func(row, col int) lipgloss.Style {
			return tableStyle
		})
}

// validateTypeExists checks if a type exists in the schema and returns a helpful
// error with a "did you mean" suggestion if it doesn't.
// The context parameter is used to customize the error message (e.g., "type", "enum").
func validateTypeExists(s *schema.Schema, typeName, context string) (schema.NamedType, error) {
	if t := s.Type(typeName); t != nil {
		return t, nil
	}
	if suggestion := suggest.Closest(typeName, s.TypeNames()); suggestion != "" {
		return nil, fmt.Errorf("%s '%s' does not exist in schema, did you mean '%s'?", context, typeName, suggestion)
	}
	return nil, fmt.Errorf("%s '%s' does not exist in schema", context, typeName)
}

// typeToString renders a resolved type the way it is written in SDL
// (e.g., "String!", "[User!]!").
func typeToString(t schema.Type) string {
	if t == nil {
		return ""
	}
	return t.String()
}

func valueToString(v *ast.Value) string {
	if v == nil {
		return ""
	}
	return v.String()
}

func oneLine(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}

// filterSlice returns a new slice containing only the elements that satisfy the predicate.
func filterSlice[T any](items []T, predicate func(T) bool) []T {
	var result []T
	for _, item := range items {
		if predicate(item) {
			result = append(result, item)
		}
	}
	return result
}

func pluck[T any](items []T, key func(T) string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, key(item))
	}
	return out
}

// completeNames returns the names containing toComplete, case-insensitively.
func completeNames(names []string, toComplete string) []string {
	out := filterSlice(names, func(name string) bool {
		return strings.Contains(strings.ToLower(name), strings.ToLower(toComplete))
	})
	sort.Strings(out)
	return out
}

func loadSchema() (*schema.Schema, error) {
	path, err := filepath.Abs(schemaFilePath)
	if err != nil {
		return nil, err
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	source := &ast.Source{
		Input: string(bytes),
		Name:  filepath.Base(path),
	}
	return schema.Load(source)
}

func loadCliForSchema() (*schema.Schema, error) {
	s, err := loadSchema()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("schema file does not exist: %s", schemaFilePath)
		}

		var parsingError *gqlerror.Error
		if errors.As(err, &parsingError) {
			return nil, fmt.Errorf("GraphQL schema parsing error: %v", parsingError)
		}
		if errors.Is(err, schema.ErrInvalidSchema) || errors.Is(err, schema.ErrUnresolvedType) {
			return nil, fmt.Errorf("GraphQL schema error: %w", err)
		}

		return nil, fmt.Errorf("unexpected error: %v", err)
	}

	logger.Debug("schema loaded", zap.String("path", schemaFilePath), zap.Int("types", len(s.TypeNames())))
	return s, nil
}
