// Package validation checks query documents against a schema. A
// Validator walks the document once, keeps a TypeInfo in step with the
// walk and hands every node to the registered rules.
package validation

import (
	"fmt"
	"time"

	"github.com/samwightt/gqlvet/pkg/schema"
	"github.com/samwightt/gqlvet/pkg/walk"
	"github.com/vektah/gqlparser/v2/ast"
	"go.uber.org/zap"
)

// Option configures a Validator.
type Option func(*Validator)

// WithLogger sets the logger used for run-level debug records.
func WithLogger(logger *zap.Logger) Option {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// Validator runs a fixed set of rules. It holds no per-run state and may
// be used from several goroutines at once.
type Validator struct {
	rules  []Rule
	logger *zap.Logger
}

// New returns a Validator running rules in the given order.
func New(rules []Rule, opts ...Option) *Validator {
	v := &Validator{
		rules:  append([]Rule(nil), rules...),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Rules returns the rules in the order they run.
func (v *Validator) Rules() []Rule {
	return append([]Rule(nil), v.rules...)
}

// Validate checks doc against s and returns every finding, in the order
// the rules reported them. The returned error is reserved for documents
// that cannot be validated at all, such as a mutation against a schema
// without a mutation root.
func (v *Validator) Validate(s *schema.Schema, doc *ast.QueryDocument) (ErrorList, error) {
	start := time.Now()
	if err := checkOperations(s, doc); err != nil {
		v.logger.Debug("document rejected", zap.Error(err))
		return nil, err
	}

	errs := &Collector{}
	d := &dispatcher{ctx: newContext(s, doc, errs), followed: map[string]bool{}}
	for _, rule := range v.rules {
		h := newHooks()
		if rule.Setup != nil {
			rule.Setup(h)
		}
		d.rules = append(d.rules, &activeRule{rule: rule, hooks: h})
	}

	walk.Walk(d, walk.Document{QueryDocument: doc})

	list := errs.Errors()
	v.logger.Debug("validation finished",
		zap.Int("operations", len(doc.Operations)),
		zap.Int("fragments", len(doc.Fragments)),
		zap.Int("rules", len(v.rules)),
		zap.Int("errors", len(list)),
		zap.Duration("took", time.Since(start)),
	)
	return list, nil
}

func checkOperations(s *schema.Schema, doc *ast.QueryDocument) error {
	for _, op := range doc.Operations {
		switch op.Operation {
		case ast.Query:
		case ast.Mutation:
			if s.Mutation == nil {
				return fmt.Errorf("%w: schema does not define a mutation root type", ErrUnsupportedOperation)
			}
		default:
			return fmt.Errorf("%w: %s operations are not supported", ErrUnsupportedOperation, op.Operation)
		}
	}
	return nil
}

type activeRule struct {
	rule  Rule
	hooks *Hooks
}

// dispatcher feeds walk events to the TypeInfo and the rules: on the way
// down TypeInfo first, then the rules in order; on the way up the rules
// first, then TypeInfo. Rules therefore always see the types that hold
// at the node itself.
type dispatcher struct {
	ctx   *Context
	rules []*activeRule

	// spreads is set on walks started at a fragment spread.
	spreads bool
	// followed holds the fragments already walked through a spread in
	// the current operation. It is shared with the spread walks.
	followed map[string]bool
	// inFragment is set while the main walk is inside a top-level
	// fragment definition.
	inFragment bool
}

func (d *dispatcher) Enter(node walk.Node, path []walk.Node) {
	d.ctx.TypeInfo.Enter(node)
	switch n := node.(type) {
	case walk.OperationDefinition:
		d.ctx.operation = n.OperationDefinition
		clear(d.followed)
	case walk.FragmentDefinition:
		if !d.spreads {
			d.inFragment = true
		}
	}

	for _, r := range d.rules {
		if d.skip(r) {
			continue
		}
		for _, fn := range r.hooks.enter[node.Kind()] {
			fn(d.ctx, node)
		}
	}

	if spread, ok := node.(walk.FragmentSpread); ok {
		d.follow(spread, path)
	}
}

func (d *dispatcher) Leave(node walk.Node, path []walk.Node) {
	for _, r := range d.rules {
		if d.skip(r) {
			continue
		}
		for _, fn := range r.hooks.leave[node.Kind()] {
			fn(d.ctx, node)
		}
	}

	switch node.(type) {
	case walk.OperationDefinition:
		d.ctx.operation = nil
	case walk.FragmentDefinition:
		if !d.spreads {
			d.inFragment = false
		}
	}
	d.ctx.TypeInfo.Leave(node)
}

// skip reports whether r sits out the current node. Rules that follow
// spreads see fragments only through them.
func (d *dispatcher) skip(r *activeRule) bool {
	return d.inFragment && r.rule.VisitFragmentSpreads
}

// follow walks the fragment named by spread for the rules that visit
// fragment spreads. Each fragment is walked at most once per operation,
// which also ends spread cycles.
//
// The walk of a fragment depends only on its type condition and the
// operation's variables, so later spreads of it would repeat the same
// findings.
func (d *dispatcher) follow(spread walk.FragmentSpread, path []walk.Node) {
	var followers []*activeRule
	for _, r := range d.rules {
		if r.rule.VisitFragmentSpreads && !d.skip(r) {
			followers = append(followers, r)
		}
	}
	if len(followers) == 0 {
		return
	}

	frag := d.ctx.Fragment(spread.Name)
	if frag == nil {
		return
	}
	if d.followed[frag.Name] {
		return
	}
	d.followed[frag.Name] = true

	ancestors := make([]walk.Node, 0, len(path)+1)
	ancestors = append(ancestors, path...)
	ancestors = append(ancestors, spread)

	sub := &dispatcher{ctx: d.ctx, rules: followers, spreads: true, followed: d.followed}
	walk.WalkFrom(sub, walk.FragmentDefinition{FragmentDefinition: frag}, ancestors)
}
