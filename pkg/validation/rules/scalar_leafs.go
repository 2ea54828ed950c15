package rules

import (
	"github.com/samwightt/gqlvet/pkg/schema"
	"github.com/samwightt/gqlvet/pkg/validation"
	"github.com/vektah/gqlparser/v2/ast"
)

// ScalarLeafs requires a selection set on fields of composite type and
// forbids one on fields of scalar or enum type.
var ScalarLeafs = validation.Rule{
	Name:        "ScalarLeafs",
	Description: "Leaf fields have no sub-selection and composite fields have one",
	Setup: func(h *validation.Hooks) {
		h.EnterField(func(c *validation.Context, field *ast.Field) {
			// An unresolved field pushes nothing, which leaves the enclosing
			// field on top of both stacks.
			if !c.FieldResolved() {
				return
			}
			typ := c.OutputType()

			if schema.IsLeafType(typ) {
				if len(field.SelectionSet) > 0 {
					c.Report(validation.SubSelectionNotAllowed, field.Position,
						"Sub selection not allowed on leaf type %s of field %s", typ, field.Name)
				}
				return
			}
			if len(field.SelectionSet) == 0 {
				c.Report(validation.SubSelectionRequired, field.Position,
					"Sub selection required for type %s of field %s", typ, field.Name)
			}
		})
	},
}
