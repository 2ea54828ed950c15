package schema

import (
	"sort"
	"strings"

	gqlparser "github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

const defaultDeprecationReason = "No longer supported"

// Load parses and validates SDL sources with gqlparser and builds a
// Schema from the result.
func Load(sources ...*ast.Source) (*Schema, error) {
	doc, err := gqlparser.LoadSchema(sources...)
	if err != nil {
		return nil, err
	}
	return FromAST(doc)
}

// FromAST builds a Schema from a schema gqlparser has already validated.
// gqlparser's built-in definitions are replaced by the shared built-ins.
func FromAST(doc *ast.Schema) (*Schema, error) {
	b := NewBuilder()
	if doc.Query != nil {
		b.Query(doc.Query.Name)
	}
	if doc.Mutation != nil {
		b.Mutation(doc.Mutation.Name)
	}

	names := make([]string, 0, len(doc.Types))
	for name := range doc.Types {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		def := doc.Types[name]
		if def.BuiltIn || strings.HasPrefix(def.Name, "__") {
			continue
		}
		if t := convertDefinition(def); t != nil {
			b.Add(t)
		}
	}

	directiveNames := make([]string, 0, len(doc.Directives))
	for name := range doc.Directives {
		directiveNames = append(directiveNames, name)
	}
	sort.Strings(directiveNames)
	for _, name := range directiveNames {
		def := doc.Directives[name]
		if def.Position != nil && def.Position.Src != nil && def.Position.Src.BuiltIn {
			continue
		}
		b.AddDirective(convertDirective(def))
	}

	return b.Build()
}

// TypeFromAST returns the schema type spelled by a query's type syntax,
// or nil when the named type is not defined.
func TypeFromAST(s *Schema, t *ast.Type) Type {
	if t == nil {
		return nil
	}
	var out Type
	if t.Elem != nil {
		inner := TypeFromAST(s, t.Elem)
		if inner == nil {
			return nil
		}
		out = ListOf(inner)
	} else {
		named := s.Type(t.NamedType)
		if named == nil {
			return nil
		}
		out = named
	}
	if t.NonNull {
		out = NonNullOf(out)
	}
	return out
}

func convertDefinition(def *ast.Definition) NamedType {
	switch def.Kind {
	case ast.Scalar:
		return &Scalar{Name: def.Name, Description: def.Description}
	case ast.Object:
		obj := &Object{Name: def.Name, Description: def.Description, Fields: convertFields(def.Fields)}
		for _, name := range def.Interfaces {
			obj.Interfaces = append(obj.Interfaces, Ref(name))
		}
		return obj
	case ast.Interface:
		return &Interface{Name: def.Name, Description: def.Description, Fields: convertFields(def.Fields)}
	case ast.Union:
		union := &Union{Name: def.Name, Description: def.Description}
		for _, name := range def.Types {
			union.Types = append(union.Types, Ref(name))
		}
		return union
	case ast.Enum:
		enum := &Enum{Name: def.Name, Description: def.Description}
		for _, v := range def.EnumValues {
			reason, deprecated := deprecation(v.Directives)
			enum.Values = append(enum.Values, &EnumValue{
				Name:              v.Name,
				Description:       v.Description,
				IsDeprecated:      deprecated,
				DeprecationReason: reason,
			})
		}
		return enum
	case ast.InputObject:
		input := &InputObject{Name: def.Name, Description: def.Description}
		for _, f := range def.Fields {
			input.Fields = append(input.Fields, &InputField{
				Name:         f.Name,
				Description:  f.Description,
				Type:         convertType(f.Type),
				DefaultValue: f.DefaultValue,
			})
		}
		return input
	}
	return nil
}

func convertFields(defs ast.FieldList) []*FieldDefinition {
	var fields []*FieldDefinition
	for _, def := range defs {
		// gqlparser adds __schema and __type to the query type itself.
		if strings.HasPrefix(def.Name, "__") {
			continue
		}
		reason, deprecated := deprecation(def.Directives)
		fields = append(fields, &FieldDefinition{
			Name:              def.Name,
			Description:       def.Description,
			Type:              convertType(def.Type),
			Arguments:         convertArguments(def.Arguments),
			IsDeprecated:      deprecated,
			DeprecationReason: reason,
		})
	}
	return fields
}

func convertArguments(defs ast.ArgumentDefinitionList) []*ArgumentDefinition {
	var args []*ArgumentDefinition
	for _, def := range defs {
		args = append(args, &ArgumentDefinition{
			Name:         def.Name,
			Description:  def.Description,
			Type:         convertType(def.Type),
			DefaultValue: def.DefaultValue,
		})
	}
	return args
}

func convertDirective(def *ast.DirectiveDefinition) *DirectiveDefinition {
	d := &DirectiveDefinition{
		Name:         def.Name,
		Description:  def.Description,
		Arguments:    convertArguments(def.Arguments),
		IsRepeatable: def.IsRepeatable,
	}
	for _, loc := range def.Locations {
		d.Locations = append(d.Locations, string(loc))
	}
	return d
}

// convertType turns AST type syntax into references for Build to resolve.
func convertType(t *ast.Type) Type {
	var out Type
	if t.Elem != nil {
		out = ListOf(convertType(t.Elem))
	} else {
		out = Ref(t.NamedType)
	}
	if t.NonNull {
		out = NonNullOf(out)
	}
	return out
}

func deprecation(directives ast.DirectiveList) (string, bool) {
	d := directives.ForName("deprecated")
	if d == nil {
		return "", false
	}
	if arg := d.Arguments.ForName("reason"); arg != nil && arg.Value != nil {
		return arg.Value.Raw, true
	}
	return defaultDeprecationReason, true
}
