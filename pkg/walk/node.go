// Package walk drives a depth-first traversal over gqlparser query
// documents, calling a visitor on the way down and on the way back up.
//
// gqlparser's AST has no common node type and folds selection sets and
// object fields into slices, so this package wraps each AST value in a
// small Node with a kind, a position and its children.
package walk

import "github.com/vektah/gqlparser/v2/ast"

type Kind int

const (
	KindDocument Kind = iota
	KindOperationDefinition
	KindFragmentDefinition
	KindVariableDefinition
	KindSelectionSet
	KindField
	KindFragmentSpread
	KindInlineFragment
	KindDirective
	KindArgument
	KindVariable
	KindArrayValue
	KindObjectValue
	KindObjectField
	KindLiteral
)

var kindNames = [...]string{
	KindDocument:            "Document",
	KindOperationDefinition: "OperationDefinition",
	KindFragmentDefinition:  "FragmentDefinition",
	KindVariableDefinition:  "VariableDefinition",
	KindSelectionSet:        "SelectionSet",
	KindField:               "Field",
	KindFragmentSpread:      "FragmentSpread",
	KindInlineFragment:      "InlineFragment",
	KindDirective:           "Directive",
	KindArgument:            "Argument",
	KindVariable:            "Variable",
	KindArrayValue:          "ArrayValue",
	KindObjectValue:         "ObjectValue",
	KindObjectField:         "ObjectField",
	KindLiteral:             "Literal",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// Node is a visitable element of a query document.
type Node interface {
	Kind() Kind
	Pos() *ast.Position
}

type Document struct{ *ast.QueryDocument }

type OperationDefinition struct{ *ast.OperationDefinition }

type FragmentDefinition struct{ *ast.FragmentDefinition }

type VariableDefinition struct{ *ast.VariableDefinition }

// SelectionSet is the selection list of an operation, field or fragment.
// Position is the position of its owner.
type SelectionSet struct {
	Selections ast.SelectionSet
	Position   *ast.Position
}

type Field struct{ *ast.Field }

type FragmentSpread struct{ *ast.FragmentSpread }

type InlineFragment struct{ *ast.InlineFragment }

type Directive struct{ *ast.Directive }

type Argument struct{ *ast.Argument }

// Variable is a $name reference in a value position.
type Variable struct{ *ast.Value }

// ArrayValue is a list literal.
type ArrayValue struct{ *ast.Value }

// ObjectValue is an input object literal.
type ObjectValue struct{ *ast.Value }

// ObjectField is one name: value entry of an input object literal.
type ObjectField struct{ *ast.ChildValue }

// Literal is any scalar, enum or null value.
type Literal struct{ *ast.Value }

func (Document) Kind() Kind            { return KindDocument }
func (OperationDefinition) Kind() Kind { return KindOperationDefinition }
func (FragmentDefinition) Kind() Kind  { return KindFragmentDefinition }
func (VariableDefinition) Kind() Kind  { return KindVariableDefinition }
func (SelectionSet) Kind() Kind        { return KindSelectionSet }
func (Field) Kind() Kind               { return KindField }
func (FragmentSpread) Kind() Kind      { return KindFragmentSpread }
func (InlineFragment) Kind() Kind      { return KindInlineFragment }
func (Directive) Kind() Kind           { return KindDirective }
func (Argument) Kind() Kind            { return KindArgument }
func (Variable) Kind() Kind            { return KindVariable }
func (ArrayValue) Kind() Kind          { return KindArrayValue }
func (ObjectValue) Kind() Kind         { return KindObjectValue }
func (ObjectField) Kind() Kind         { return KindObjectField }
func (Literal) Kind() Kind             { return KindLiteral }

func (Document) Pos() *ast.Position              { return nil }
func (n OperationDefinition) Pos() *ast.Position { return n.Position }
func (n FragmentDefinition) Pos() *ast.Position  { return n.Position }
func (n VariableDefinition) Pos() *ast.Position  { return n.Position }
func (n SelectionSet) Pos() *ast.Position        { return n.Position }
func (n Field) Pos() *ast.Position               { return n.Position }
func (n FragmentSpread) Pos() *ast.Position      { return n.Position }
func (n InlineFragment) Pos() *ast.Position      { return n.Position }
func (n Directive) Pos() *ast.Position           { return n.Position }
func (n Argument) Pos() *ast.Position            { return n.Position }
func (n Variable) Pos() *ast.Position            { return n.Position }
func (n ArrayValue) Pos() *ast.Position          { return n.Position }
func (n ObjectValue) Pos() *ast.Position         { return n.Position }
func (n ObjectField) Pos() *ast.Position         { return n.Value.Position }
func (n Literal) Pos() *ast.Position             { return n.Position }

// ValueNode wraps a value according to its kind. A nil value gives nil.
func ValueNode(v *ast.Value) Node {
	if v == nil {
		return nil
	}
	switch v.Kind {
	case ast.Variable:
		return Variable{v}
	case ast.ListValue:
		return ArrayValue{v}
	case ast.ObjectValue:
		return ObjectValue{v}
	}
	return Literal{v}
}

// SelectionNode wraps a selection. Unknown selection types give nil.
func SelectionNode(sel ast.Selection) Node {
	switch sel := sel.(type) {
	case *ast.Field:
		return Field{sel}
	case *ast.FragmentSpread:
		return FragmentSpread{sel}
	case *ast.InlineFragment:
		return InlineFragment{sel}
	}
	return nil
}
