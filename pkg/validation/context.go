package validation

import (
	"fmt"

	"github.com/samwightt/gqlvet/pkg/schema"
	"github.com/vektah/gqlparser/v2/ast"
)

// Context is what a rule sees during a run: the tracked types, the
// document being validated and a way to report findings.
type Context struct {
	*TypeInfo

	schema    *schema.Schema
	doc       *ast.QueryDocument
	fragments map[string]*ast.FragmentDefinition
	operation *ast.OperationDefinition
	errs      *Collector
}

func newContext(s *schema.Schema, doc *ast.QueryDocument, errs *Collector) *Context {
	fragments := make(map[string]*ast.FragmentDefinition, len(doc.Fragments))
	for _, frag := range doc.Fragments {
		if _, ok := fragments[frag.Name]; !ok {
			fragments[frag.Name] = frag
		}
	}
	return &Context{
		TypeInfo:  NewTypeInfo(s),
		schema:    s,
		doc:       doc,
		fragments: fragments,
		errs:      errs,
	}
}

func (c *Context) Schema() *schema.Schema { return c.schema }

func (c *Context) Document() *ast.QueryDocument { return c.doc }

// Fragment returns the first fragment definition with the given name.
func (c *Context) Fragment(name string) *ast.FragmentDefinition {
	return c.fragments[name]
}

// Operation returns the operation being walked, or nil while walking a
// top-level fragment definition.
func (c *Context) Operation() *ast.OperationDefinition {
	return c.operation
}

// Report records a finding at pos.
func (c *Context) Report(kind ErrorKind, pos *ast.Position, format string, args ...any) {
	c.errs.Add(NewError(kind, pos, fmt.Sprintf(format, args...)))
}
