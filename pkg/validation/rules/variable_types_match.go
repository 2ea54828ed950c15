package rules

import (
	"github.com/samwightt/gqlvet/pkg/schema"
	"github.com/samwightt/gqlvet/pkg/validation"
	"github.com/vektah/gqlparser/v2/ast"
)

// VariableTypesMatch checks that every variable is used where its declared
// type is accepted.
var VariableTypesMatch = validation.Rule{
	Name:                 "VariableTypesMatch",
	Description:          "Variables are only used in positions that accept their declared type",
	VisitFragmentSpreads: true,
	Setup: func(h *validation.Hooks) {
		var defs map[string]*ast.VariableDefinition

		h.EnterOperationDefinition(func(c *validation.Context, op *ast.OperationDefinition) {
			defs = make(map[string]*ast.VariableDefinition, len(op.VariableDefinitions))
		})

		h.EnterVariableDefinition(func(c *validation.Context, def *ast.VariableDefinition) {
			defs[def.Variable] = def
		})

		h.EnterVariable(func(c *validation.Context, value *ast.Value) {
			def, ok := defs[value.Raw]
			if !ok || !c.InputResolved() {
				return
			}
			expected := c.InputType()
			actual := schema.TypeFromAST(c.Schema(), def.Type)
			if expected == nil || actual == nil {
				return
			}
			if !VariableTypeAllowed(expected, actual, hasNonNullDefault(def)) {
				c.Report(validation.VariableTypeMismatch, value.Position,
					`Variable "$%s" of type "%s" used in position expecting type "%s"`,
					def.Variable, actual, expected)
			}
		})
	},
}

// VariableTypeAllowed reports whether a variable of type actual may be
// used where expected is required. A variable with a non-null default
// counts as non-null.
func VariableTypeAllowed(expected, actual schema.Type, nonNullDefault bool) bool {
	if _, ok := actual.(*schema.NonNull); !ok && nonNullDefault {
		actual = schema.NonNullOf(actual)
	}
	return typeSatisfies(expected, actual)
}

func typeSatisfies(expected, actual schema.Type) bool {
	if exp, ok := expected.(*schema.NonNull); ok {
		act, ok := actual.(*schema.NonNull)
		if !ok {
			return false
		}
		return typeSatisfies(exp.OfType, act.OfType)
	}
	if act, ok := actual.(*schema.NonNull); ok {
		return typeSatisfies(expected, act.OfType)
	}

	if exp, ok := expected.(*schema.List); ok {
		act, ok := actual.(*schema.List)
		if !ok {
			return false
		}
		return typeSatisfies(exp.OfType, act.OfType)
	}
	if _, ok := actual.(*schema.List); ok {
		return false
	}

	exp, ok1 := expected.(schema.NamedType)
	act, ok2 := actual.(schema.NamedType)
	return ok1 && ok2 && exp.TypeName() == act.TypeName()
}

func hasNonNullDefault(def *ast.VariableDefinition) bool {
	return def.DefaultValue != nil && def.DefaultValue.Kind != ast.NullValue
}
