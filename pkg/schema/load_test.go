package schema_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/samwightt/gqlvet/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

func TestLoad(t *testing.T) {
	s, err := schema.Load(&ast.Source{Name: "schema.graphql", Input: fieldSchema + `
type Mutation { touch(id: ID!): Node }
directive @cached(ttl: Int) on FIELD
input Filter { term: String = "x", tags: [String!] }
`})
	require.NoError(t, err)

	assert.Equal(t, "Query", s.Query.Name)
	require.NotNil(t, s.Mutation)
	assert.Equal(t, "Mutation", s.Mutation.Name)

	var own []string
	for _, typ := range s.Types() {
		if !schema.IsBuiltIn(typ) {
			own = append(own, typ.TypeName())
		}
	}
	if diff := cmp.Diff([]string{"Color", "Filter", "Mutation", "Node", "Post", "Query", "Result", "User"}, own); diff != "" {
		t.Errorf("user types (-want +got):\n%s", diff)
	}

	user := s.Type("User").(*schema.Object)
	require.Len(t, user.Interfaces, 1)
	assert.Same(t, s.Type("Node"), user.Interfaces[0])

	name := s.ResolveField(user, "name")
	assert.True(t, name.IsDeprecated)
	assert.Equal(t, "use fullName", name.DeprecationReason)

	search := s.ResolveField(s.Query, "search")
	assert.Equal(t, "[Result!]!", search.Type.String())
	limit := search.Argument("limit")
	require.NotNil(t, limit)
	require.NotNil(t, limit.DefaultValue)
	assert.Equal(t, "10", limit.DefaultValue.Raw)

	union := s.Type("Result").(*schema.Union)
	assert.Len(t, union.PossibleTypes(), 2)

	filter := s.Type("Filter").(*schema.InputObject)
	assert.Equal(t, "[String!]", filter.Field("tags").Type.String())

	cached := s.Directive("cached")
	require.NotNil(t, cached)
	assert.Equal(t, []string{"FIELD"}, cached.Locations)
	assert.Equal(t, "Int", cached.Argument("ttl").Type.String())

	for _, name := range []string{"include", "skip", "deprecated"} {
		assert.NotNil(t, s.Directive(name), name)
	}
	for _, f := range schema.Fields(s.Query) {
		assert.NotEqual(t, "__schema", f.Name)
	}
}

func TestLoad_InvalidSDL(t *testing.T) {
	_, err := schema.Load(&ast.Source{Input: `type Query { a: Missing }`})
	assert.Error(t, err)

	_, err = schema.Load(&ast.Source{Input: `type Query {`})
	assert.Error(t, err)
}

func TestTypeFromAST(t *testing.T) {
	s, err := schema.Load(&ast.Source{Input: fieldSchema})
	require.NoError(t, err)

	doc, err := parser.ParseQuery(&ast.Source{Input: `query ($a: [ID!]!, $b: User, $c: Missing, $d: [[Missing]]) { __typename }`})
	require.NoError(t, err)
	defs := doc.Operations[0].VariableDefinitions

	a := schema.TypeFromAST(s, defs[0].Type)
	require.NotNil(t, a)
	assert.Equal(t, "[ID!]!", a.String())
	assert.Same(t, s.Type("ID"), schema.UnwrapType(a))

	assert.Same(t, s.Type("User"), schema.TypeFromAST(s, defs[1].Type))
	assert.Nil(t, schema.TypeFromAST(s, defs[2].Type))
	assert.Nil(t, schema.TypeFromAST(s, defs[3].Type))
	assert.Nil(t, schema.TypeFromAST(s, nil))
}
