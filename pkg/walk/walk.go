package walk

import (
	"sort"

	"github.com/vektah/gqlparser/v2/ast"
)

// Visitor receives every node twice: Enter before its children are
// walked and Leave after. path holds the node's ancestors, outermost
// first; it is reused between calls and must be copied to be kept.
type Visitor interface {
	Enter(node Node, path []Node)
	Leave(node Node, path []Node)
}

// Walk visits node and its descendants depth-first in document order.
func Walk(v Visitor, node Node) {
	WalkFrom(v, node, nil)
}

// WalkFrom is Walk for a node whose ancestors are already known.
func WalkFrom(v Visitor, node Node, path []Node) {
	if node == nil {
		return
	}
	path = path[:len(path):len(path)]
	walk(v, node, path)
}

func walk(v Visitor, node Node, path []Node) {
	v.Enter(node, path)
	children := Children(node)
	if len(children) > 0 {
		inner := append(path, node)
		for _, child := range children {
			walk(v, child, inner)
		}
	}
	v.Leave(node, path)
}

// Children returns the direct children of node in document order.
//
// A field's selection set is only a child when it is non-empty, and type
// syntax is not visited.
func Children(node Node) []Node {
	var out []Node
	switch n := node.(type) {
	case Document:
		for _, op := range n.Operations {
			out = append(out, OperationDefinition{op})
		}
		for _, frag := range n.Fragments {
			out = append(out, FragmentDefinition{frag})
		}
		sort.SliceStable(out, func(i, j int) bool {
			return offset(out[i].Pos()) < offset(out[j].Pos())
		})
	case OperationDefinition:
		for _, def := range n.VariableDefinitions {
			out = append(out, VariableDefinition{def})
		}
		out = appendDirectives(out, n.Directives)
		out = append(out, SelectionSet{Selections: n.SelectionSet, Position: n.Position})
	case FragmentDefinition:
		out = appendDirectives(out, n.Directives)
		out = append(out, SelectionSet{Selections: n.SelectionSet, Position: n.Position})
	case VariableDefinition:
		if dv := ValueNode(n.DefaultValue); dv != nil {
			out = append(out, dv)
		}
		out = appendDirectives(out, n.Directives)
	case SelectionSet:
		for _, sel := range n.Selections {
			if child := SelectionNode(sel); child != nil {
				out = append(out, child)
			}
		}
	case Field:
		out = appendArguments(out, n.Arguments)
		out = appendDirectives(out, n.Directives)
		if len(n.SelectionSet) > 0 {
			out = append(out, SelectionSet{Selections: n.SelectionSet, Position: n.Position})
		}
	case FragmentSpread:
		out = appendDirectives(out, n.Directives)
	case InlineFragment:
		out = appendDirectives(out, n.Directives)
		out = append(out, SelectionSet{Selections: n.SelectionSet, Position: n.Position})
	case Directive:
		out = appendArguments(out, n.Arguments)
	case Argument:
		if v := ValueNode(n.Value); v != nil {
			out = append(out, v)
		}
	case ArrayValue:
		for _, child := range n.Children {
			if v := ValueNode(child.Value); v != nil {
				out = append(out, v)
			}
		}
	case ObjectValue:
		for _, child := range n.Children {
			out = append(out, ObjectField{child})
		}
	case ObjectField:
		if v := ValueNode(n.Value); v != nil {
			out = append(out, v)
		}
	case Variable, Literal:
	}
	return out
}

func appendDirectives(out []Node, directives ast.DirectiveList) []Node {
	for _, d := range directives {
		out = append(out, Directive{d})
	}
	return out
}

func appendArguments(out []Node, args ast.ArgumentList) []Node {
	for _, arg := range args {
		out = append(out, Argument{arg})
	}
	return out
}

func offset(pos *ast.Position) int {
	if pos == nil {
		return 0
	}
	return pos.Start
}
