package rules

import (
	"github.com/samwightt/gqlvet/pkg/suggest"
	"github.com/samwightt/gqlvet/pkg/validation"
	"github.com/vektah/gqlparser/v2/ast"
)

var KnownDirectives = validation.Rule{
	Name:        "KnownDirectives",
	Description: "Every directive used is defined by the schema",
	Setup: func(h *validation.Hooks) {
		h.EnterDirective(func(c *validation.Context, d *ast.Directive) {
			if c.Directive() != nil {
				return
			}
			directives := c.Schema().Directives()
			names := make([]string, len(directives))
			for i, def := range directives {
				names[i] = def.Name
			}
			c.Report(validation.UnknownDirective, d.Position,
				`Unknown directive "@%s".%s`, d.Name, suggest.DidYouMean(d.Name, names))
		})
	},
}
