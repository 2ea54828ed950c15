// Package schema holds the GraphQL type system used during validation:
// named and wrapping types, field and argument definitions, and the
// resolution helpers that rules rely on.
package schema

import "fmt"

// Type is any GraphQL type. The set of implementations is closed:
// *Scalar, *Object, *Interface, *Union, *InputObject, *Enum, *List,
// *NonNull and *TypeReference.
type Type interface {
	String() string
	isType()
}

// NamedType is a type with its own name, i.e. anything but a wrapper or
// a reference.
type NamedType interface {
	Type
	TypeName() string
}

type Scalar struct {
	Name        string
	Description string
}

type Object struct {
	Name        string
	Description string
	Fields      []*FieldDefinition
	// Interfaces holds *Interface values once the schema is built.
	Interfaces []Type
}

type Interface struct {
	Name        string
	Description string
	Fields      []*FieldDefinition
}

type Union struct {
	Name        string
	Description string
	// Types holds *Object values once the schema is built.
	Types []Type
}

type InputObject struct {
	Name        string
	Description string
	Fields      []*InputField
}

type Enum struct {
	Name        string
	Description string
	Values      []*EnumValue
}

type EnumValue struct {
	Name              string
	Description       string
	IsDeprecated      bool
	DeprecationReason string
}

// List wraps another type as a list.
type List struct {
	OfType Type
}

// NonNull wraps another type as non-nullable.
type NonNull struct {
	OfType Type
}

// TypeReference points at a named type by name. It only exists while a
// schema is being built; Builder.Build replaces every reference with the
// type it names.
type TypeReference struct {
	Name string
}

func (*Scalar) isType()        {}
func (*Object) isType()        {}
func (*Interface) isType()     {}
func (*Union) isType()         {}
func (*InputObject) isType()   {}
func (*Enum) isType()          {}
func (*List) isType()          {}
func (*NonNull) isType()       {}
func (*TypeReference) isType() {}

func (t *Scalar) TypeName() string      { return t.Name }
func (t *Object) TypeName() string      { return t.Name }
func (t *Interface) TypeName() string   { return t.Name }
func (t *Union) TypeName() string       { return t.Name }
func (t *InputObject) TypeName() string { return t.Name }
func (t *Enum) TypeName() string        { return t.Name }

func (t *Scalar) String() string        { return t.Name }
func (t *Object) String() string        { return t.Name }
func (t *Interface) String() string     { return t.Name }
func (t *Union) String() string         { return t.Name }
func (t *InputObject) String() string   { return t.Name }
func (t *Enum) String() string          { return t.Name }
func (t *List) String() string          { return "[" + t.OfType.String() + "]" }
func (t *NonNull) String() string       { return t.OfType.String() + "!" }
func (t *TypeReference) String() string { return t.Name }

// ListOf wraps t in a list.
func ListOf(t Type) *List { return &List{OfType: t} }

// NonNullOf wraps t as non-nullable.
func NonNullOf(t Type) *NonNull { return &NonNull{OfType: t} }

// Ref returns a reference to the named type, to be resolved at build time.
func Ref(name string) *TypeReference { return &TypeReference{Name: name} }

// Field returns the input field with the given name, or nil.
func (t *InputObject) Field(name string) *InputField {
	for _, f := range t.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Value returns the enum value with the given name, or nil.
func (t *Enum) Value(name string) *EnumValue {
	for _, v := range t.Values {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// PossibleTypes returns the union's member objects.
func (t *Union) PossibleTypes() []*Object {
	objects := make([]*Object, 0, len(t.Types))
	for _, member := range t.Types {
		if obj, ok := member.(*Object); ok {
			objects = append(objects, obj)
		}
	}
	return objects
}

// UnwrapType strips every List and NonNull layer from t and returns the
// named type underneath.
func UnwrapType(t Type) NamedType {
	for {
		switch w := t.(type) {
		case *List:
			t = w.OfType
		case *NonNull:
			t = w.OfType
		case *TypeReference:
			panic(unresolved(w))
		case NamedType:
			return w
		default:
			panic(fmt.Sprintf("schema: unknown type %T", t))
		}
	}
}

// UnwrapNonNull strips at most one outer NonNull from t.
func UnwrapNonNull(t Type) Type {
	if nn, ok := t.(*NonNull); ok {
		return nn.OfType
	}
	return t
}

// IsCompositeType reports whether t can own a selection set.
func IsCompositeType(t Type) bool {
	switch t.(type) {
	case *Object, *Interface, *Union:
		return true
	case *Scalar, *Enum, *InputObject, *List, *NonNull:
		return false
	case *TypeReference:
		panic(unresolved(t.(*TypeReference)))
	}
	return false
}

// IsLeafType reports whether the named type under t is a scalar or enum.
func IsLeafType(t Type) bool {
	switch UnwrapType(t).(type) {
	case *Scalar, *Enum:
		return true
	case *Object, *Interface, *Union, *InputObject:
		return false
	}
	return false
}

// IsInputType reports whether t may be used for an argument, input field
// or variable.
func IsInputType(t Type) bool {
	switch UnwrapType(t).(type) {
	case *Scalar, *Enum, *InputObject:
		return true
	case *Object, *Interface, *Union:
		return false
	}
	return false
}

// IsOutputType reports whether t may be used as a field's type.
func IsOutputType(t Type) bool {
	switch UnwrapType(t).(type) {
	case *Scalar, *Enum, *Object, *Interface, *Union:
		return true
	case *InputObject:
		return false
	}
	return false
}

// Kind returns the introspection kind name of t (OBJECT, LIST, ...).
func Kind(t Type) string {
	switch t.(type) {
	case *Scalar:
		return "SCALAR"
	case *Object:
		return "OBJECT"
	case *Interface:
		return "INTERFACE"
	case *Union:
		return "UNION"
	case *InputObject:
		return "INPUT_OBJECT"
	case *Enum:
		return "ENUM"
	case *List:
		return "LIST"
	case *NonNull:
		return "NON_NULL"
	case *TypeReference:
		panic(unresolved(t.(*TypeReference)))
	}
	panic(fmt.Sprintf("schema: unknown type %T", t))
}

func unresolved(ref *TypeReference) string {
	return fmt.Sprintf("schema: unresolved type reference %q", ref.Name)
}
