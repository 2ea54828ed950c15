package schema

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

const builtinSDL = `
scalar String
scalar Int
scalar Float
scalar Boolean
scalar ID

directive @include(if: Boolean!) on FIELD | FRAGMENT_SPREAD | INLINE_FRAGMENT
directive @skip(if: Boolean!) on FIELD | FRAGMENT_SPREAD | INLINE_FRAGMENT
directive @deprecated(reason: String = "No longer supported") on FIELD_DEFINITION | ARGUMENT_DEFINITION | INPUT_FIELD_DEFINITION | ENUM_VALUE
directive @specifiedBy(url: String!) on SCALAR
directive @oneOf on INPUT_OBJECT

type __Schema {
  description: String
  types: [__Type!]!
  queryType: __Type!
  mutationType: __Type
  subscriptionType: __Type
  directives: [__Directive!]!
}

type __Type {
  kind: __TypeKind!
  name: String
  description: String
  fields(includeDeprecated: Boolean = false): [__Field!]
  interfaces: [__Type!]
  possibleTypes: [__Type!]
  enumValues(includeDeprecated: Boolean = false): [__EnumValue!]
  inputFields(includeDeprecated: Boolean = false): [__InputValue!]
  ofType: __Type
  specifiedByURL: String
  isOneOf: Boolean
}

type __Field {
  name: String!
  description: String
  args(includeDeprecated: Boolean = false): [__InputValue!]!
  type: __Type!
  isDeprecated: Boolean!
  deprecationReason: String
}

type __InputValue {
  name: String!
  description: String
  type: __Type!
  defaultValue: String
  isDeprecated: Boolean!
  deprecationReason: String
}

type __EnumValue {
  name: String!
  description: String
  isDeprecated: Boolean!
  deprecationReason: String
}

enum __TypeKind {
  SCALAR
  OBJECT
  INTERFACE
  UNION
  ENUM
  INPUT_OBJECT
  LIST
  NON_NULL
}

type __Directive {
  name: String!
  description: String
  locations: [__DirectiveLocation!]!
  args(includeDeprecated: Boolean = false): [__InputValue!]!
  isRepeatable: Boolean!
}

enum __DirectiveLocation {
  QUERY
  MUTATION
  SUBSCRIPTION
  FIELD
  FRAGMENT_DEFINITION
  FRAGMENT_SPREAD
  INLINE_FRAGMENT
  VARIABLE_DEFINITION
  SCHEMA
  SCALAR
  OBJECT
  FIELD_DEFINITION
  ARGUMENT_DEFINITION
  INTERFACE
  UNION
  ENUM
  ENUM_VALUE
  INPUT_OBJECT
  INPUT_FIELD_DEFINITION
}
`

// Meta-fields are available without being declared by a schema.
var (
	SchemaMetaField = &FieldDefinition{
		Name:        "__schema",
		Description: "Access the current type schema of this server.",
		Type:        NonNullOf(Ref("__Schema")),
	}
	TypeMetaField = &FieldDefinition{
		Name:        "__type",
		Description: "Request the type information of a single type.",
		Type:        Ref("__Type"),
		Arguments: []*ArgumentDefinition{
			{Name: "name", Type: NonNullOf(Ref("String"))},
		},
	}
	TypeNameMetaField = &FieldDefinition{
		Name:        "__typename",
		Description: "The name of the current Object type at runtime.",
		Type:        NonNullOf(Ref("String")),
	}
)

var (
	builtinTypes      map[string]NamedType
	builtinDirectives map[string]*DirectiveDefinition
)

func init() {
	doc, err := parser.ParseSchema(&ast.Source{Name: "builtin.graphql", Input: builtinSDL, BuiltIn: true})
	if err != nil {
		panic(fmt.Sprintf("schema: parsing built-in types: %v", err))
	}

	builtinTypes = make(map[string]NamedType)
	var named []NamedType
	for _, def := range doc.Definitions {
		t := convertDefinition(def)
		builtinTypes[t.TypeName()] = t
		named = append(named, t)
	}
	builtinDirectives = make(map[string]*DirectiveDefinition)
	var directives []*DirectiveDefinition
	for _, def := range doc.Directives {
		d := convertDirective(def)
		builtinDirectives[d.Name] = d
		directives = append(directives, d)
	}

	meta := &Object{Name: "__meta", Fields: []*FieldDefinition{SchemaMetaField, TypeMetaField, TypeNameMetaField}}
	if err := link(append(named, meta), directives, builtinTypes); err != nil {
		panic(fmt.Sprintf("schema: linking built-in types: %v", err))
	}
}

// IsBuiltIn reports whether t is one of the shared built-in scalars or
// introspection types.
func IsBuiltIn(t NamedType) bool {
	builtin, ok := builtinTypes[t.TypeName()]
	return ok && builtin == t
}
