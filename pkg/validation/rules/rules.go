// Package rules holds the validation rules shipped with gqlvet.
package rules

import (
	"errors"
	"fmt"

	"github.com/samwightt/gqlvet/pkg/suggest"
	"github.com/samwightt/gqlvet/pkg/validation"
)

// ErrUnknownRule is returned by Select for a rule name it does not know.
var ErrUnknownRule = errors.New("unknown rule")

// All returns every rule in the order they run.
func All() []validation.Rule {
	return []validation.Rule{
		ScalarLeafs,
		VariableTypesMatch,
		NoUndefinedVariables,
		NoUnusedVariables,
		VariablesAreInputTypes,
		KnownDirectives,
	}
}

// Names returns the names of All, in order.
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, r := range all {
		names[i] = r.Name
	}
	return names
}

// Select returns the rules named in enable, or all rules when enable is
// empty, minus the ones named in disable. Order follows All.
func Select(enable, disable []string) ([]validation.Rule, error) {
	names := Names()
	known := make(map[string]bool, len(names))
	for _, name := range names {
		known[name] = true
	}

	var errs []error
	for _, name := range append(append([]string(nil), enable...), disable...) {
		if !known[name] {
			errs = append(errs, fmt.Errorf("%w %q.%s", ErrUnknownRule, name, suggest.DidYouMean(name, names)))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	enabled := make(map[string]bool, len(enable))
	for _, name := range enable {
		enabled[name] = true
	}
	disabled := make(map[string]bool, len(disable))
	for _, name := range disable {
		disabled[name] = true
	}

	var out []validation.Rule
	for _, r := range All() {
		if len(enable) > 0 && !enabled[r.Name] {
			continue
		}
		if disabled[r.Name] {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}
