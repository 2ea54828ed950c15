package validation_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/samwightt/gqlvet/pkg/schema"
	"github.com/samwightt/gqlvet/pkg/validation"
	"github.com/samwightt/gqlvet/pkg/walk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const testSchema = `
type Query {
  user(id: ID!): User
  users(filter: UserFilter, ids: [ID!]): [User!]!
  node: Node
}

type Mutation {
  rename(id: ID!, name: String!): User
}

interface Node { id: ID! }

type User implements Node {
  id: ID!
  name: String
  friends(first: Int = 10): [User]
}

input UserFilter {
  name: String
  tags: [String!]!
}
`

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

func name(t schema.Type) string {
	if t == nil {
		return "-"
	}
	return t.String()
}

// tracer records the tracked state at every node it is registered for.
func tracer(name string, spreads bool, out *[]string, kinds ...walk.Kind) validation.Rule {
	return validation.Rule{
		Name:                 name,
		VisitFragmentSpreads: spreads,
		Setup: func(h *validation.Hooks) {
			for _, kind := range kinds {
				h.Enter(kind, func(c *validation.Context, n walk.Node) {
					*out = append(*out, fmt.Sprintf("%s enter %s", name, describe(c, n)))
				})
				h.Leave(kind, func(c *validation.Context, n walk.Node) {
					*out = append(*out, fmt.Sprintf("%s leave %s", name, describe(c, n)))
				})
			}
		},
	}
}

func describe(c *validation.Context, n walk.Node) string {
	switch n := n.(type) {
	case walk.Field:
		def := "-"
		if c.FieldResolved() {
			def = c.FieldDef().Name
		}
		return fmt.Sprintf("%s out=%s parent=%s def=%s", n.Name, name(c.OutputType()), name(c.ParentType()), def)
	case walk.Argument:
		arg := "-"
		if c.Argument() != nil {
			arg = c.Argument().Name
		}
		return fmt.Sprintf("%s in=%s arg=%s", n.Name, name(c.InputType()), arg)
	case walk.Variable:
		in := "-"
		if c.InputResolved() {
			in = name(c.InputType())
		}
		return fmt.Sprintf("$%s in=%s", n.Raw, in)
	case walk.FragmentDefinition:
		return fmt.Sprintf("fragment %s out=%s", n.Name, name(c.OutputType()))
	}
	return n.Kind().String()
}

func TestValidate_DispatchOrder(t *testing.T) {
	s := loadSchema(t, testSchema)
	doc := parseQuery(t, `{ user(id: 1) { name } }`)

	var events []string
	v := validation.New([]validation.Rule{
		tracer("a", false, &events, walk.KindField),
		tracer("b", false, &events, walk.KindField),
	})
	errs, err := v.Validate(s, doc)
	require.NoError(t, err)
	assert.Empty(t, errs)

	assert.Equal(t, []string{
		"a enter user out=User parent=Query def=user",
		"b enter user out=User parent=Query def=user",
		"a enter name out=String parent=User def=name",
		"b enter name out=String parent=User def=name",
		"a leave name out=String parent=User def=name",
		"b leave name out=String parent=User def=name",
		"a leave user out=User parent=Query def=user",
		"b leave user out=User parent=Query def=user",
	}, events)
}

func TestValidate_TrackedInputTypes(t *testing.T) {
	s := loadSchema(t, testSchema)
	doc := parseQuery(t, `query ($id: ID!, $tag: String!, $n: Int) {
  user(id: $id) { friends(first: $n) { id } }
  users(filter: {name: $tag, tags: [$tag], nope: $n}, ids: [$id]) @include(if: $b) { id }
}`)

	var events []string
	v := validation.New([]validation.Rule{
		tracer("t", false, &events, walk.KindArgument, walk.KindVariable),
	})
	_, err := v.Validate(s, doc)
	require.NoError(t, err)

	var enters []string
	for _, e := range events {
		if strings.HasPrefix(e, "t enter ") {
			enters = append(enters, strings.TrimPrefix(e, "t enter "))
		}
	}
	assert.Equal(t, []string{
		"id in=ID! arg=id",
		"$id in=ID!",
		"first in=Int arg=first",
		"$n in=Int",
		"filter in=UserFilter arg=filter",
		"$tag in=String",
		"$tag in=String!",
		"$n in=-",
		"ids in=[ID!] arg=ids",
		"$id in=ID!",
		"if in=Boolean! arg=if",
		"$b in=Boolean!",
	}, enters)
}

func TestValidate_UnresolvedFieldsDoNotLeak(t *testing.T) {
	s := loadSchema(t, testSchema)
	doc := parseQuery(t, `{ user(id: 1) { nope(x: 1) { name } name { id } } }`)

	var events []string
	v := validation.New([]validation.Rule{
		tracer("t", false, &events, walk.KindField, walk.KindArgument),
	})
	_, err := v.Validate(s, doc)
	require.NoError(t, err)

	var enters []string
	for _, e := range events {
		if strings.HasPrefix(e, "t enter ") {
			enters = append(enters, strings.TrimPrefix(e, "t enter "))
		}
	}
	assert.Equal(t, []string{
		"user out=User parent=Query def=user",
		"id in=ID! arg=id",
		"nope out=User parent=User def=-",
		"x in=- arg=-",
		"name out=User parent=User def=-",
		"name out=String parent=User def=name",
		"id out=String parent=User def=-",
	}, enters)
}

func TestValidate_FragmentSpreads(t *testing.T) {
	s := loadSchema(t, testSchema)
	doc := parseQuery(t, `
query A { user(id: 1) { ...F } }
query B { node { ...F } }
fragment F on User { name }
`)

	var plain, spreads []string
	v := validation.New([]validation.Rule{
		tracer("plain", false, &plain, walk.KindFragmentDefinition),
		tracer("spreads", true, &spreads, walk.KindFragmentDefinition),
	})
	_, err := v.Validate(s, doc)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"plain enter fragment F out=User",
		"plain leave fragment F out=User",
	}, plain)
	assert.Equal(t, []string{
		"spreads enter fragment F out=User",
		"spreads leave fragment F out=User",
		"spreads enter fragment F out=User",
		"spreads leave fragment F out=User",
	}, spreads)
}

func TestValidate_FragmentCycles(t *testing.T) {
	s := loadSchema(t, testSchema)
	doc := parseQuery(t, `
{ user(id: 1) { ...A } }
fragment A on User { friends { ...B } }
fragment B on User { friends { ...A } ...B }
`)

	var events []string
	v := validation.New([]validation.Rule{
		tracer("spreads", true, &events, walk.KindFragmentDefinition),
	})
	_, err := v.Validate(s, doc)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"spreads enter fragment A out=User",
		"spreads enter fragment B out=User",
		"spreads leave fragment B out=User",
		"spreads leave fragment A out=User",
	}, events)
}

func TestValidate_FragmentFollowedOncePerOperation(t *testing.T) {
	s := loadSchema(t, testSchema)
	doc := parseQuery(t, `
query A { user(id: 1) { ...F ...G } }
query B { user(id: 2) { ...G } }
fragment F on User { ...G friends { ...G } }
fragment G on User { name }
`)

	var events []string
	v := validation.New([]validation.Rule{
		tracer("spreads", true, &events, walk.KindFragmentDefinition),
	})
	_, err := v.Validate(s, doc)
	require.NoError(t, err)

	var entered []string
	for _, e := range events {
		if strings.Contains(e, " enter ") {
			entered = append(entered, e)
		}
	}
	assert.Equal(t, []string{
		"spreads enter fragment F out=User",
		"spreads enter fragment G out=User",
		"spreads enter fragment G out=User",
	}, entered)
}

func TestValidate_StackBalance(t *testing.T) {
	s := loadSchema(t, testSchema)
	doc := parseQuery(t, `
query Q($id: ID!, $f: UserFilter = {tags: []}, $x: Missing) @include(if: true) {
  user(id: $id) { ...F ... on User { name } ... on Missing { a } ... { id } }
  users(filter: $f, ids: [$id, [1], {a: 1}], bogus: {a: [1]}) { friends(first: 1) { nope { deeper } } }
  node { id @skip(if: false) @unknown(x: 1) }
  unknown(y: [1]) { z }
}
fragment F on User { friends { id } ...G }
fragment G on Node { ...F }
fragment H on String { a }
`)

	check := func(name string) validation.Rule {
		return validation.Rule{
			Name:                 name,
			VisitFragmentSpreads: name == "spreads",
			Setup: func(h *validation.Hooks) {
				type depth struct{ output, parent, input, fieldDef int }
				var stack []depth
				for kind := walk.KindDocument; kind <= walk.KindLiteral; kind++ {
					h.Enter(kind, func(c *validation.Context, n walk.Node) {
						var d depth
						d.output, d.parent, d.input, d.fieldDef = c.Depth()
						stack = append(stack, d)
					})
					h.Leave(kind, func(c *validation.Context, n walk.Node) {
						var d depth
						d.output, d.parent, d.input, d.fieldDef = c.Depth()
						require.NotEmpty(t, stack)
						assert.Equal(t, stack[len(stack)-1], d, "%s at %s", name, n.Kind())
						stack = stack[:len(stack)-1]
					})
				}
				h.LeaveOperationDefinition(func(c *validation.Context, _ *ast.OperationDefinition) {
					o, p, i, f := c.Depth()
					assert.Equal(t, []int{1, 0, 0, 0}, []int{o, p, i, f})
				})
			},
		}
	}

	_, err := validation.New([]validation.Rule{check("plain"), check("spreads")}).Validate(s, doc)
	require.NoError(t, err)
}

func TestValidate_UnsupportedOperations(t *testing.T) {
	withoutMutation := loadSchema(t, `type Query { a: Int }`)
	withMutation := loadSchema(t, testSchema)
	v := validation.New(nil)

	_, err := v.Validate(withoutMutation, parseQuery(t, `mutation { a }`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, validation.ErrUnsupportedOperation))
	assert.Contains(t, err.Error(), "mutation root")

	_, err = v.Validate(withMutation, parseQuery(t, `subscription { user(id: 1) { id } }`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, validation.ErrUnsupportedOperation))

	errs, err := v.Validate(withMutation, parseQuery(t, `mutation { rename(id: 1, name: "x") { id } }`))
	require.NoError(t, err)
	assert.Empty(t, errs)
}

func TestValidate_MutationRoot(t *testing.T) {
	s := loadSchema(t, testSchema)
	var events []string
	v := validation.New([]validation.Rule{tracer("t", false, &events, walk.KindField)})
	_, err := v.Validate(s, parseQuery(t, `mutation { rename(id: 1, name: "x") { id } }`))
	require.NoError(t, err)
	assert.Equal(t, "t enter rename out=User parent=Mutation def=rename", events[0])
}

func TestValidate_Logging(t *testing.T) {
	s := loadSchema(t, testSchema)
	core, logs := observer.New(zapcore.DebugLevel)
	v := validation.New(nil, validation.WithLogger(zap.New(core)))

	_, err := v.Validate(s, parseQuery(t, `{ node { id } }`))
	require.NoError(t, err)

	entries := logs.FilterMessage("validation finished").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, int64(1), fields["operations"])
	assert.Equal(t, int64(0), fields["errors"])

	_, err = v.Validate(s, parseQuery(t, `subscription { node { id } }`))
	require.Error(t, err)
	assert.Equal(t, 1, logs.FilterMessage("document rejected").Len())
}

func TestValidator_Rules(t *testing.T) {
	rules := []validation.Rule{{Name: "a"}, {Name: "b"}}
	v := validation.New(rules)
	rules[0].Name = "changed"

	got := v.Rules()
	assert.Equal(t, "a", got[0].Name)
	got[1].Name = "changed"
	assert.Equal(t, "b", v.Rules()[1].Name)
}

func TestValidate_ReportedErrors(t *testing.T) {
	s := loadSchema(t, testSchema)
	rule := validation.Rule{
		Name: "everyField",
		Setup: func(h *validation.Hooks) {
			h.EnterField(func(c *validation.Context, f *ast.Field) {
				c.Report(validation.FieldUndefined, f.Position, "field %s", f.Name)
			})
		},
	}
	errs, err := validation.New([]validation.Rule{rule}).Validate(s, parseQuery(t, "{\n  node {\n    id\n  }\n}"))
	require.NoError(t, err)
	assert.Equal(t, validation.ErrorList{
		{Kind: validation.FieldUndefined, Message: "field node", Locations: []validation.Location{{Line: 2, Column: 3}}},
		{Kind: validation.FieldUndefined, Message: "field id", Locations: []validation.Location{{Line: 3, Column: 5}}},
	}, errs)
}
