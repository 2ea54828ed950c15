package validation

import (
	"fmt"

	"github.com/samwightt/gqlvet/pkg/schema"
	"github.com/samwightt/gqlvet/pkg/walk"
	"github.com/vektah/gqlparser/v2/ast"
)

// pushed records which stacks a node pushed on enter.
type pushed uint8

const (
	pushedOutput pushed = 1 << iota
	pushedParent
	pushedInput
	pushedFieldDef
)

// TypeInfo tracks, while a document is walked, the schema types that
// apply at the current node. It does no walking itself: the driver calls
// Enter and Leave around every node.
//
// A node pushes only what it could resolve, and Leave pops exactly that,
// so the stacks stay balanced when lookups fail. Lookups that depend on an
// enclosing node only happen when that node itself resolved: fields of a
// selection set on a leaf or unknown type, and values under an unknown
// argument, find nothing instead of matching against an outer entry.
type TypeInfo struct {
	schema *schema.Schema

	outputTypes []schema.Type
	parentTypes []schema.Type
	inputTypes  []schema.Type
	fieldDefs   []*schema.FieldDefinition
	directive   *schema.DirectiveDefinition
	argument    *schema.ArgumentDefinition

	frames []pushed
}

// NewTypeInfo returns a TypeInfo with empty stacks for walking documents
// against s.
func NewTypeInfo(s *schema.Schema) *TypeInfo {
	return &TypeInfo{schema: s}
}

// OutputType is the type of the value the current node produces.
func (ti *TypeInfo) OutputType() schema.Type { return top(ti.outputTypes) }

// ParentType is the composite type owning the current selection set.
func (ti *TypeInfo) ParentType() schema.Type { return top(ti.parentTypes) }

// InputType is the type expected at the current argument or value. It is
// only meaningful inside an argument, variable definition or literal that
// resolved; elsewhere it is nil.
func (ti *TypeInfo) InputType() schema.Type { return top(ti.inputTypes) }

// FieldDef is the definition of the innermost resolved field.
func (ti *TypeInfo) FieldDef() *schema.FieldDefinition { return top(ti.fieldDefs) }

// Directive is the definition of the directive being visited, if any.
func (ti *TypeInfo) Directive() *schema.DirectiveDefinition { return ti.directive }

// Argument is the definition of the argument being visited, if any.
func (ti *TypeInfo) Argument() *schema.ArgumentDefinition { return ti.argument }

// Depth reports the size of each stack, in the order output, parent,
// input, field definition.
func (ti *TypeInfo) Depth() (output, parent, input, fieldDef int) {
	return len(ti.outputTypes), len(ti.parentTypes), len(ti.inputTypes), len(ti.fieldDefs)
}

// FieldResolved reports whether the innermost node with a transition is a
// field whose definition was found. Inside a rule's field hook it tells
// whether OutputType and FieldDef describe that field or an enclosing one.
func (ti *TypeInfo) FieldResolved() bool { return ti.topFrame()&pushedFieldDef != 0 }

// InputResolved reports whether the innermost argument, variable
// definition, list or object field around the current node resolved its
// input type. When it is false, InputType belongs to an outer value.
func (ti *TypeInfo) InputResolved() bool { return ti.topFrame()&pushedInput != 0 }

func (ti *TypeInfo) topFrame() pushed {
	if len(ti.frames) == 0 {
		return 0
	}
	return ti.frames[len(ti.frames)-1]
}

func (ti *TypeInfo) Enter(node walk.Node) {
	var p pushed
	switch n := node.(type) {
	case walk.OperationDefinition:
		ti.pushOutput(&p, ti.rootType(n.OperationDefinition))

	case walk.SelectionSet:
		if ti.topFrame()&pushedOutput != 0 {
			if named := schema.UnwrapType(ti.OutputType()); schema.IsCompositeType(named) {
				ti.parentTypes = append(ti.parentTypes, named)
				p |= pushedParent
			}
		}

	case walk.Field:
		if ti.topFrame()&pushedParent != 0 {
			if def := ti.schema.ResolveField(ti.ParentType(), n.Name); def != nil {
				ti.fieldDefs = append(ti.fieldDefs, def)
				p |= pushedFieldDef
				ti.pushOutput(&p, def.Type)
			}
		}

	case walk.Directive:
		ti.directive = ti.schema.Directive(n.Name)

	case walk.InlineFragment:
		if n.TypeCondition != "" {
			ti.pushOutput(&p, ti.conditionType(n.TypeCondition))
		} else if ti.topFrame()&pushedParent != 0 {
			ti.pushOutput(&p, ti.ParentType())
		}

	case walk.FragmentDefinition:
		ti.pushOutput(&p, ti.conditionType(n.TypeCondition))

	case walk.VariableDefinition:
		if t := schema.TypeFromAST(ti.schema, n.Type); t != nil {
			ti.pushInput(&p, t)
		}

	case walk.Argument:
		var def *schema.ArgumentDefinition
		if ti.directive != nil {
			def = ti.directive.Argument(n.Name)
		} else if ti.FieldResolved() {
			def = ti.FieldDef().Argument(n.Name)
		}
		if def != nil {
			ti.pushInput(&p, def.Type)
		}
		ti.argument = def

	case walk.ArrayValue:
		if ti.InputResolved() {
			if list, ok := schema.UnwrapNonNull(ti.InputType()).(*schema.List); ok {
				ti.pushInput(&p, list.OfType)
			}
		}

	case walk.ObjectField:
		if ti.InputResolved() {
			if obj, ok := schema.UnwrapType(ti.InputType()).(*schema.InputObject); ok {
				if f := obj.Field(n.Name); f != nil {
					ti.pushInput(&p, f.Type)
				}
			}
		}

	case walk.Document, walk.FragmentSpread, walk.Variable, walk.ObjectValue, walk.Literal:
		return
	}
	ti.frames = append(ti.frames, p)
}

func (ti *TypeInfo) Leave(node walk.Node) {
	switch node.(type) {
	case walk.Directive:
		ti.directive = nil
	case walk.Argument:
		ti.argument = nil
	case walk.Document, walk.FragmentSpread, walk.Variable, walk.ObjectValue, walk.Literal:
		return
	}

	last := len(ti.frames) - 1
	p := ti.frames[last]
	ti.frames = ti.frames[:last]

	if p&pushedOutput != 0 {
		ti.outputTypes = ti.outputTypes[:len(ti.outputTypes)-1]
	}
	if p&pushedParent != 0 {
		ti.parentTypes = ti.parentTypes[:len(ti.parentTypes)-1]
	}
	if p&pushedInput != 0 {
		ti.inputTypes = ti.inputTypes[:len(ti.inputTypes)-1]
	}
	if p&pushedFieldDef != 0 {
		ti.fieldDefs = ti.fieldDefs[:len(ti.fieldDefs)-1]
	}
}

func (ti *TypeInfo) pushOutput(p *pushed, t schema.Type) {
	if t == nil {
		return
	}
	ti.outputTypes = append(ti.outputTypes, t)
	*p |= pushedOutput
}

func (ti *TypeInfo) pushInput(p *pushed, t schema.Type) {
	ti.inputTypes = append(ti.inputTypes, t)
	*p |= pushedInput
}

// rootType returns the root type for op. Validator.Validate rejects
// documents with operations the schema cannot serve before walking, so a
// missing root here is a bug.
func (ti *TypeInfo) rootType(op *ast.OperationDefinition) schema.Type {
	switch {
	case op.Operation == ast.Query:
		return ti.schema.Query
	case op.Operation == ast.Mutation && ti.schema.Mutation != nil:
		return ti.schema.Mutation
	}
	panic(fmt.Sprintf("validation: no root type for %s operation", op.Operation))
}

// conditionType returns the output type named by a fragment type
// condition, or nil when it names nothing usable.
func (ti *TypeInfo) conditionType(name string) schema.Type {
	t := ti.schema.Type(name)
	if t == nil || !schema.IsOutputType(t) {
		return nil
	}
	return t
}

func top[T any](stack []T) T {
	var zero T
	if len(stack) == 0 {
		return zero
	}
	return stack[len(stack)-1]
}
