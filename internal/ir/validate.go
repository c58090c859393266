package ir

import (
	"fmt"
	"math"
)

// ValidateProblem checks a solve request at a transport boundary: the
// target must be solvable-for, every known must be a recognized variable,
// and every value must be finite.
//
// The engine itself does not call this; it treats unknown names as simply
// unmatched.
func ValidateProblem(knowns Knowns, target string) error {
	if target == "" {
		return fmt.Errorf("target is required")
	}
	if !ValidTargets[Variable(target)] {
		return fmt.Errorf("unknown target %q: must be one of x, v, t, a", target)
	}
	for _, name := range knowns.Names() {
		if !ValidVariables[Variable(name)] {
			return fmt.Errorf("unknown variable %q in knowns: must be one of x0, x, v0, v, a, t", name)
		}
		if f := knowns[name]; math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("knowns[%q] must be a finite number", name)
		}
	}
	return nil
}
