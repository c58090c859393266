package engine

import (
	"fmt"

	"github.com/n-tennyson/physics-simulator/internal/ir"
)

// Table is an immutable, ordered set of rules.
type Table struct {
	rules []Rule
}

// NewTable validates rules and returns a Table holding private copies.
//
// Validation fails fast on the first problem:
//   - IDs must be non-empty and unique
//   - Provides and every required name must be known variables
//   - Requires must be non-empty, distinct, and exclude Provides
//   - Priority must be positive and unique among rules with the same Provides
//   - Kind must be valid and Formula non-nil
//   - Evaluation step placeholders must name known variables
func NewTable(rules []Rule) (*Table, error) {
	ids := make(map[string]bool, len(rules))
	priorities := make(map[string]map[int]string)

	out := make([]Rule, 0, len(rules))
	for i, r := range rules {
		if r.ID == "" {
			return nil, &TableError{Message: fmt.Sprintf("rules[%d]: id is required", i)}
		}
		if ids[r.ID] {
			return nil, &TableError{RuleID: r.ID, Message: "duplicate rule id"}
		}
		ids[r.ID] = true

		if err := validateRule(r); err != nil {
			return nil, err
		}

		group := priorities[r.Provides]
		if group == nil {
			group = make(map[int]string)
			priorities[r.Provides] = group
		}
		if other, taken := group[r.Priority]; taken {
			return nil, &TableError{
				RuleID:  r.ID,
				Message: fmt.Sprintf("priority %d for %q already used by rule %q", r.Priority, r.Provides, other),
			}
		}
		group[r.Priority] = r.ID

		out = append(out, r.clone())
	}

	return &Table{rules: out}, nil
}

func validateRule(r Rule) error {
	fail := func(format string, args ...any) error {
		return &TableError{RuleID: r.ID, Message: fmt.Sprintf(format, args...)}
	}

	if !ir.ValidVariables[ir.Variable(r.Provides)] {
		return fail("provides unknown variable %q", r.Provides)
	}
	if len(r.Requires) == 0 {
		return fail("requires must be non-empty")
	}

	seen := make(map[string]bool, len(r.Requires))
	for _, name := range r.Requires {
		if !ir.ValidVariables[ir.Variable(name)] {
			return fail("requires unknown variable %q", name)
		}
		if name == r.Provides {
			return fail("requires its own provided variable %q", name)
		}
		if seen[name] {
			return fail("requires %q more than once", name)
		}
		seen[name] = true
	}

	if r.Priority < 1 {
		return fail("priority must be positive, got %d", r.Priority)
	}
	if !ValidKinds[r.Kind] {
		return fail("invalid kind %q", r.Kind)
	}
	if r.Formula == nil {
		return fail("formula %q is not bound", r.FormulaName)
	}

	if r.Explanation != nil {
		for i, step := range r.Explanation.EvaluationSteps {
			for _, name := range placeholders(step) {
				if !ir.ValidVariables[ir.Variable(name)] {
					return fail("evaluation_steps[%d]: unknown placeholder {%s}", i, name)
				}
			}
		}
	}

	return nil
}

// Rules returns copies of the rules in table order.
func (t *Table) Rules() []Rule {
	out := make([]Rule, len(t.rules))
	for i, r := range t.rules {
		out[i] = r.clone()
	}
	return out
}

// Len returns the number of rules.
func (t *Table) Len() int {
	return len(t.rules)
}

// Lookup returns the rule with the given id.
func (t *Table) Lookup(id string) (Rule, bool) {
	for _, r := range t.rules {
		if r.ID == id {
			return r.clone(), true
		}
	}
	return Rule{}, false
}
