package engine

import "github.com/n-tennyson/physics-simulator/internal/ir"

// candidates returns the rules that provide target and whose requirements
// are all present in knowns, in table order.
func candidates(rules []Rule, target string, knowns ir.Knowns) []Rule {
	var out []Rule
	for _, r := range rules {
		if r.Provides != target {
			continue
		}
		if !r.Satisfied(knowns) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// lowestPriority returns the candidate with the smallest priority.
// candidates must be non-empty. Priorities are unique per provides group,
// so the result does not depend on order.
func lowestPriority(cands []Rule) Rule {
	best := cands[0]
	for _, r := range cands[1:] {
		if r.Priority < best.Priority {
			best = r
		}
	}
	return best
}
