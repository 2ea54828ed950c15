package validation

import (
	"github.com/samwightt/gqlvet/pkg/walk"
	"github.com/vektah/gqlparser/v2/ast"
)

// Rule describes one validation rule.
//
// Setup is called once at the start of every run and registers the hooks
// the rule needs. Anything Setup allocates lives for that run only, which
// keeps concurrent runs apart.
type Rule struct {
	Name        string
	Description string
	// VisitFragmentSpreads makes the rule see fragments through the spreads
	// that use them, inside the operation that uses them, instead of as
	// standalone top-level definitions.
	VisitFragmentSpreads bool
	Setup                func(h *Hooks)
}

type handler func(c *Context, n walk.Node)

// Hooks maps node kinds to the handlers a rule registered for them.
// Handlers for the same kind run in registration order.
type Hooks struct {
	enter map[walk.Kind][]handler
	leave map[walk.Kind][]handler
}

func newHooks() *Hooks {
	return &Hooks{
		enter: make(map[walk.Kind][]handler),
		leave: make(map[walk.Kind][]handler),
	}
}

// Enter registers fn for every node of the given kind, before its
// children are visited.
func (h *Hooks) Enter(kind walk.Kind, fn func(c *Context, n walk.Node)) {
	h.enter[kind] = append(h.enter[kind], fn)
}

// Leave registers fn for every node of the given kind, after its
// children are visited.
func (h *Hooks) Leave(kind walk.Kind, fn func(c *Context, n walk.Node)) {
	h.leave[kind] = append(h.leave[kind], fn)
}

func (h *Hooks) EnterOperationDefinition(fn func(c *Context, op *ast.OperationDefinition)) {
	h.Enter(walk.KindOperationDefinition, func(c *Context, n walk.Node) {
		fn(c, n.(walk.OperationDefinition).OperationDefinition)
	})
}

func (h *Hooks) LeaveOperationDefinition(fn func(c *Context, op *ast.OperationDefinition)) {
	h.Leave(walk.KindOperationDefinition, func(c *Context, n walk.Node) {
		fn(c, n.(walk.OperationDefinition).OperationDefinition)
	})
}

func (h *Hooks) EnterFragmentDefinition(fn func(c *Context, frag *ast.FragmentDefinition)) {
	h.Enter(walk.KindFragmentDefinition, func(c *Context, n walk.Node) {
		fn(c, n.(walk.FragmentDefinition).FragmentDefinition)
	})
}

func (h *Hooks) LeaveFragmentDefinition(fn func(c *Context, frag *ast.FragmentDefinition)) {
	h.Leave(walk.KindFragmentDefinition, func(c *Context, n walk.Node) {
		fn(c, n.(walk.FragmentDefinition).FragmentDefinition)
	})
}

func (h *Hooks) EnterVariableDefinition(fn func(c *Context, def *ast.VariableDefinition)) {
	h.Enter(walk.KindVariableDefinition, func(c *Context, n walk.Node) {
		fn(c, n.(walk.VariableDefinition).VariableDefinition)
	})
}

func (h *Hooks) EnterSelectionSet(fn func(c *Context, set walk.SelectionSet)) {
	h.Enter(walk.KindSelectionSet, func(c *Context, n walk.Node) {
		fn(c, n.(walk.SelectionSet))
	})
}

func (h *Hooks) LeaveSelectionSet(fn func(c *Context, set walk.SelectionSet)) {
	h.Leave(walk.KindSelectionSet, func(c *Context, n walk.Node) {
		fn(c, n.(walk.SelectionSet))
	})
}

func (h *Hooks) EnterField(fn func(c *Context, field *ast.Field)) {
	h.Enter(walk.KindField, func(c *Context, n walk.Node) {
		fn(c, n.(walk.Field).Field)
	})
}

func (h *Hooks) LeaveField(fn func(c *Context, field *ast.Field)) {
	h.Leave(walk.KindField, func(c *Context, n walk.Node) {
		fn(c, n.(walk.Field).Field)
	})
}

func (h *Hooks) EnterFragmentSpread(fn func(c *Context, spread *ast.FragmentSpread)) {
	h.Enter(walk.KindFragmentSpread, func(c *Context, n walk.Node) {
		fn(c, n.(walk.FragmentSpread).FragmentSpread)
	})
}

func (h *Hooks) EnterInlineFragment(fn func(c *Context, frag *ast.InlineFragment)) {
	h.Enter(walk.KindInlineFragment, func(c *Context, n walk.Node) {
		fn(c, n.(walk.InlineFragment).InlineFragment)
	})
}

func (h *Hooks) LeaveInlineFragment(fn func(c *Context, frag *ast.InlineFragment)) {
	h.Leave(walk.KindInlineFragment, func(c *Context, n walk.Node) {
		fn(c, n.(walk.InlineFragment).InlineFragment)
	})
}

func (h *Hooks) EnterDirective(fn func(c *Context, d *ast.Directive)) {
	h.Enter(walk.KindDirective, func(c *Context, n walk.Node) {
		fn(c, n.(walk.Directive).Directive)
	})
}

func (h *Hooks) EnterArgument(fn func(c *Context, arg *ast.Argument)) {
	h.Enter(walk.KindArgument, func(c *Context, n walk.Node) {
		fn(c, n.(walk.Argument).Argument)
	})
}

func (h *Hooks) LeaveArgument(fn func(c *Context, arg *ast.Argument)) {
	h.Leave(walk.KindArgument, func(c *Context, n walk.Node) {
		fn(c, n.(walk.Argument).Argument)
	})
}

// EnterVariable registers fn for $variable references in value positions.
func (h *Hooks) EnterVariable(fn func(c *Context, v *ast.Value)) {
	h.Enter(walk.KindVariable, func(c *Context, n walk.Node) {
		fn(c, n.(walk.Variable).Value)
	})
}

func (h *Hooks) EnterObjectField(fn func(c *Context, field *ast.ChildValue)) {
	h.Enter(walk.KindObjectField, func(c *Context, n walk.Node) {
		fn(c, n.(walk.ObjectField).ChildValue)
	})
}
