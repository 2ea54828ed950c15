package rules

import (
	"github.com/samwightt/gqlvet/pkg/schema"
	"github.com/samwightt/gqlvet/pkg/suggest"
	"github.com/samwightt/gqlvet/pkg/validation"
	"github.com/vektah/gqlparser/v2/ast"
)

var VariablesAreInputTypes = validation.Rule{
	Name:        "VariablesAreInputTypes",
	Description: "Variables are declared with known input types",
	Setup: func(h *validation.Hooks) {
		h.EnterVariableDefinition(func(c *validation.Context, def *ast.VariableDefinition) {
			name := def.Type.Name()
			named := c.Schema().Type(name)
			if named == nil {
				c.Report(validation.UnknownType, def.Position,
					`Unknown type "%s".%s`, name, suggest.DidYouMean(name, c.Schema().TypeNames()))
				return
			}
			if !schema.IsInputType(named) {
				c.Report(validation.NonInputTypeOnVariable, def.Position,
					`Variable "$%s" cannot be non-input type "%s".`, def.Variable, def.Type.String())
			}
		})
	},
}
