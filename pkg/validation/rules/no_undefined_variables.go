package rules

import (
	"github.com/samwightt/gqlvet/pkg/validation"
	"github.com/vektah/gqlparser/v2/ast"
)

// NoUndefinedVariables reports variables used by an operation, directly or
// through fragments, that the operation does not declare.
var NoUndefinedVariables = validation.Rule{
	Name:                 "NoUndefinedVariables",
	Description:          "Every variable used is defined by its operation",
	VisitFragmentSpreads: true,
	Setup: func(h *validation.Hooks) {
		var defined map[string]bool

		h.EnterOperationDefinition(func(c *validation.Context, op *ast.OperationDefinition) {
			defined = make(map[string]bool, len(op.VariableDefinitions))
			for _, def := range op.VariableDefinitions {
				defined[def.Variable] = true
			}
		})

		h.EnterVariable(func(c *validation.Context, value *ast.Value) {
			if defined[value.Raw] {
				return
			}

			if op := c.Operation(); op != nil && op.Name != "" {
				c.Report(validation.UndefinedVariable, value.Position,
					`Variable "$%s" is not defined by operation "%s".`, value.Raw, op.Name)
				return
			}
			c.Report(validation.UndefinedVariable, value.Position,
				`Variable "$%s" is not defined.`, value.Raw)
		})
	},
}
