package rules_test

import (
	"testing"

	"github.com/samwightt/gqlvet/pkg/schema"
	"github.com/samwightt/gqlvet/pkg/validation"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

func loadSchema(t *testing.T, sdl string) *schema.Schema {
	t.Helper()
	s, err := schema.Load(&ast.Source{Name: "schema.graphql", Input: sdl})
	require.NoError(t, err)
	return s
}

func parseQuery(t *testing.T, query string) *ast.QueryDocument {
	t.Helper()
	doc, err := parser.ParseQuery(&ast.Source{Name: "query.graphql", Input: query})
	require.NoError(t, err)
	return doc
}

func validate(t *testing.T, s *schema.Schema, query string, rules ...validation.Rule) validation.ErrorList {
	t.Helper()
	errs, err := validation.New(rules).Validate(s, parseQuery(t, query))
	require.NoError(t, err)
	return errs
}

func messages(errs validation.ErrorList) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Message
	}
	return out
}
