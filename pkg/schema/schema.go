package schema

import (
	"errors"
	"sort"

	"github.com/vektah/gqlparser/v2/ast"
)

var (
	// ErrUnresolvedType is returned when a type reference names a type the
	// schema does not declare.
	ErrUnresolvedType = errors.New("unresolved type reference")
	// ErrInvalidSchema is returned when a schema breaks a type system rule.
	ErrInvalidSchema = errors.New("invalid schema")
)

// Schema is a fully resolved GraphQL schema. It is never modified after
// Build returns, so one value can serve any number of validations.
type Schema struct {
	Query    *Object
	Mutation *Object

	types      map[string]NamedType
	directives map[string]*DirectiveDefinition
}

type FieldDefinition struct {
	Name              string
	Description       string
	Type              Type
	Arguments         []*ArgumentDefinition
	IsDeprecated      bool
	DeprecationReason string
}

type ArgumentDefinition struct {
	Name         string
	Description  string
	Type         Type
	DefaultValue *ast.Value
}

// InputField is a field of an input object.
type InputField struct {
	Name         string
	Description  string
	Type         Type
	DefaultValue *ast.Value
}

type DirectiveDefinition struct {
	Name         string
	Description  string
	Locations    []string
	Arguments    []*ArgumentDefinition
	IsRepeatable bool
}

// Argument returns the field argument with the given name, or nil.
func (f *FieldDefinition) Argument(name string) *ArgumentDefinition {
	return ResolveArgument(f.Arguments, name)
}

// Argument returns the directive argument with the given name, or nil.
func (d *DirectiveDefinition) Argument(name string) *ArgumentDefinition {
	return ResolveArgument(d.Arguments, name)
}

// Type returns the named type with the given name, or nil.
func (s *Schema) Type(name string) NamedType {
	return s.types[name]
}

// Directive returns the directive with the given name, or nil.
func (s *Schema) Directive(name string) *DirectiveDefinition {
	return s.directives[name]
}

// Types returns every named type, built-ins included, sorted by name.
func (s *Schema) Types() []NamedType {
	out := make([]NamedType, 0, len(s.types))
	for _, t := range s.types {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TypeName() < out[j].TypeName() })
	return out
}

// TypeNames returns the names of every named type, sorted.
func (s *Schema) TypeNames() []string {
	names := make([]string, 0, len(s.types))
	for name := range s.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Directives returns every directive, sorted by name.
func (s *Schema) Directives() []*DirectiveDefinition {
	out := make([]*DirectiveDefinition, 0, len(s.directives))
	for _, d := range s.directives {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Fields returns the declared fields of an object or interface type and
// nil for every other type.
func Fields(t Type) []*FieldDefinition {
	switch t := t.(type) {
	case *Object:
		return t.Fields
	case *Interface:
		return t.Fields
	}
	return nil
}
