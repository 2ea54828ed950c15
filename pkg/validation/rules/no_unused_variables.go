package rules

import (
	"github.com/samwightt/gqlvet/pkg/validation"
	"github.com/vektah/gqlparser/v2/ast"
)

// NoUnusedVariables reports declared variables that neither the operation
// nor any fragment it spreads refers to.
var NoUnusedVariables = validation.Rule{
	Name:                 "NoUnusedVariables",
	Description:          "Every variable defined by an operation is used",
	VisitFragmentSpreads: true,
	Setup: func(h *validation.Hooks) {
		var used map[string]bool

		h.EnterOperationDefinition(func(c *validation.Context, op *ast.OperationDefinition) {
			used = make(map[string]bool)
		})

		h.EnterVariable(func(c *validation.Context, value *ast.Value) {
			used[value.Raw] = true
		})

		h.LeaveOperationDefinition(func(c *validation.Context, op *ast.OperationDefinition) {
			for _, def := range op.VariableDefinitions {
				if used[def.Variable] {
					continue
				}
				if op.Name != "" {
					c.Report(validation.UnusedVariable, def.Position,
						`Variable "$%s" is never used in operation "%s".`, def.Variable, op.Name)
				} else {
					c.Report(validation.UnusedVariable, def.Position,
						`Variable "$%s" is never used.`, def.Variable)
				}
			}
		})
	},
}
