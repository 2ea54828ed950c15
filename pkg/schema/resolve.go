package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Resolve replaces the type reference in t with the named type it points
// at. Wrappers are rebuilt around the resolved inner type and every other
// type is returned unchanged.
func Resolve(t Type, types map[string]NamedType) (Type, error) {
	switch t := t.(type) {
	case *TypeReference:
		named, ok := types[t.Name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnresolvedType, t.Name)
		}
		return named, nil
	case *List:
		inner, err := Resolve(t.OfType, types)
		if err != nil {
			return nil, err
		}
		return ListOf(inner), nil
	case *NonNull:
		inner, err := Resolve(t.OfType, types)
		if err != nil {
			return nil, err
		}
		return NonNullOf(inner), nil
	}
	return t, nil
}

// Builder assembles a schema in two phases. Types are added first and may
// refer to each other through TypeReference values; Build then resolves
// every reference and checks the result.
//
// A Builder takes ownership of the types added to it. Build links them in
// place, so they must not be shared with another builder.
type Builder struct {
	types      []NamedType
	directives []*DirectiveDefinition
	query      string
	mutation   string
}

func NewBuilder() *Builder {
	return &Builder{query: "Query"}
}

// Add registers named types.
func (b *Builder) Add(types ...NamedType) *Builder {
	b.types = append(b.types, types...)
	return b
}

// AddDirective registers directive definitions. A definition named like a
// built-in directive replaces it.
func (b *Builder) AddDirective(directives ...*DirectiveDefinition) *Builder {
	b.directives = append(b.directives, directives...)
	return b
}

// Query sets the name of the query root type. It defaults to "Query".
func (b *Builder) Query(name string) *Builder {
	b.query = name
	return b
}

// Mutation sets the name of the mutation root type.
func (b *Builder) Mutation(name string) *Builder {
	b.mutation = name
	return b
}

// Build resolves every type reference and returns the finished schema.
// Unresolvable references and type system violations are returned as
// errors; nothing is partially built.
func (b *Builder) Build() (*Schema, error) {
	types := make(map[string]NamedType, len(builtinTypes)+len(b.types))
	for name, t := range builtinTypes {
		types[name] = t
	}

	var own []NamedType
	var errs []error
	for _, t := range b.types {
		name := t.TypeName()
		if strings.HasPrefix(name, "__") {
			errs = append(errs, fmt.Errorf("%w: type name %q is reserved for introspection", ErrInvalidSchema, name))
			continue
		}
		if builtin, ok := builtinTypes[name]; ok {
			if _, isScalar := t.(*Scalar); isScalar {
				if _, builtinScalar := builtin.(*Scalar); builtinScalar {
					continue
				}
			}
			errs = append(errs, fmt.Errorf("%w: type %q redefines a built-in type", ErrInvalidSchema, name))
			continue
		}
		if _, dup := types[name]; dup {
			errs = append(errs, fmt.Errorf("%w: type %q is defined more than once", ErrInvalidSchema, name))
			continue
		}
		types[name] = t
		own = append(own, t)
	}

	directives := make(map[string]*DirectiveDefinition, len(builtinDirectives)+len(b.directives))
	for name, d := range builtinDirectives {
		directives[name] = d
	}
	for _, d := range b.directives {
		directives[d.Name] = d
	}

	if err := link(own, b.directives, types); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	s := &Schema{types: types, directives: directives}

	query, ok := types[b.query].(*Object)
	if !ok {
		return nil, fmt.Errorf("%w: query root type %q is not a defined object type", ErrInvalidSchema, b.query)
	}
	s.Query = query

	if b.mutation != "" {
		mutation, ok := types[b.mutation].(*Object)
		if !ok {
			return nil, fmt.Errorf("%w: mutation root type %q is not a defined object type", ErrInvalidSchema, b.mutation)
		}
		s.Mutation = mutation
	}

	if err := check(own, b.directives); err != nil {
		return nil, err
	}
	return s, nil
}

// link resolves, in place, every reference held by the given types and
// directives.
func link(named []NamedType, directives []*DirectiveDefinition, types map[string]NamedType) error {
	var errs []error
	resolve := func(where string, t Type) Type {
		resolved, err := Resolve(t, types)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", where, err))
			return t
		}
		return resolved
	}
	fields := func(owner string, fields []*FieldDefinition) {
		for _, f := range fields {
			f.Type = resolve(owner+"."+f.Name, f.Type)
			for _, arg := range f.Arguments {
				arg.Type = resolve(owner+"."+f.Name+"("+arg.Name+":)", arg.Type)
			}
		}
	}

	for _, t := range named {
		switch t := t.(type) {
		case *Object:
			fields(t.Name, t.Fields)
			for i, iface := range t.Interfaces {
				t.Interfaces[i] = resolve(t.Name, iface)
			}
		case *Interface:
			fields(t.Name, t.Fields)
		case *Union:
			for i, member := range t.Types {
				t.Types[i] = resolve(t.Name, member)
			}
		case *InputObject:
			for _, f := range t.Fields {
				f.Type = resolve(t.Name+"."+f.Name, f.Type)
			}
		case *Scalar, *Enum:
		}
	}
	for _, d := range directives {
		for _, arg := range d.Arguments {
			arg.Type = resolve("@"+d.Name+"("+arg.Name+":)", arg.Type)
		}
	}
	return errors.Join(errs...)
}

// check enforces the type system rules a resolved schema must satisfy.
func check(named []NamedType, directives []*DirectiveDefinition) error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidSchema}, args...)...))
	}
	arguments := func(owner string, args []*ArgumentDefinition) {
		seen := make(map[string]bool, len(args))
		for _, arg := range args {
			if seen[arg.Name] {
				fail("argument %s(%s:) is defined more than once", owner, arg.Name)
			}
			seen[arg.Name] = true
			if err := checkWrapping(arg.Type); err != nil {
				fail("argument %s(%s:): %v", owner, arg.Name, err)
			} else if !IsInputType(arg.Type) {
				fail("argument %s(%s:) has non-input type %s", owner, arg.Name, arg.Type)
			}
		}
	}
	fields := func(owner string, fields []*FieldDefinition) {
		for _, f := range fields {
			where := owner + "." + f.Name
			if err := checkWrapping(f.Type); err != nil {
				fail("field %s: %v", where, err)
			} else if !IsOutputType(f.Type) {
				fail("field %s has non-output type %s", where, f.Type)
			}
			arguments(where, f.Arguments)
		}
	}

	for _, t := range named {
		switch t := t.(type) {
		case *Object:
			fields(t.Name, t.Fields)
			for _, iface := range t.Interfaces {
				if _, ok := iface.(*Interface); !ok {
					fail("type %s implements %s, which is not an interface", t.Name, iface)
				}
			}
		case *Interface:
			fields(t.Name, t.Fields)
		case *Union:
			for _, member := range t.Types {
				if _, ok := member.(*Object); !ok {
					fail("union %s has member %s, which is not an object type", t.Name, member)
				}
			}
		case *InputObject:
			for _, f := range t.Fields {
				if err := checkWrapping(f.Type); err != nil {
					fail("input field %s.%s: %v", t.Name, f.Name, err)
				} else if !IsInputType(f.Type) {
					fail("input field %s.%s has non-input type %s", t.Name, f.Name, f.Type)
				}
			}
		case *Scalar, *Enum:
		}
	}
	for _, d := range directives {
		arguments("@"+d.Name, d.Arguments)
	}
	return errors.Join(errs...)
}

// checkWrapping rejects a NonNull directly wrapping another NonNull.
func checkWrapping(t Type) error {
	for {
		switch w := t.(type) {
		case *NonNull:
			if _, ok := w.OfType.(*NonNull); ok {
				return fmt.Errorf("non-null type %s wraps another non-null type", w)
			}
			t = w.OfType
		case *List:
			t = w.OfType
		default:
			return nil
		}
	}
}
