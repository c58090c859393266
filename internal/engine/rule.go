package engine

import "github.com/n-tennyson/physics-simulator/internal/ir"

// Kind documents the shape of a rule's underlying formula.
type Kind string

const (
	KindLinear    Kind = "linear"
	KindQuadratic Kind = "quadratic"
)

// ValidKinds defines allowed rule kinds.
var ValidKinds = map[Kind]bool{
	KindLinear:    true,
	KindQuadratic: true,
}

// Formula computes a rule's provided variable.
// args holds exactly the rule's required variables.
type Formula func(args ir.Knowns) (ir.Value, error)

// Rule pairs a required-variable set with a formula that produces one
// target variable.
type Rule struct {
	ID       string
	Provides string
	Requires []string
	Priority int // lower wins
	Kind     Kind

	// FormulaName identifies Formula for display and catalog binding.
	FormulaName string
	Formula     Formula

	// Explanation is optional.
	Explanation *Explanation
}

// Explanation holds the human-readable derivation attached to a rule.
// EvaluationSteps are templates with {name} placeholders over the knowns.
type Explanation struct {
	Equation           string
	RearrangedEquation string
	AlgebraSteps       []string
	EvaluationSteps    []string
}

// Satisfied reports whether every required variable is known.
func (r Rule) Satisfied(knowns ir.Knowns) bool {
	for _, name := range r.Requires {
		if !knowns.Has(name) {
			return false
		}
	}
	return true
}

// clone deep-copies the slices so a Table never shares memory with its input.
func (r Rule) clone() Rule {
	r.Requires = append([]string(nil), r.Requires...)
	if r.Explanation != nil {
		e := *r.Explanation
		e.AlgebraSteps = append([]string(nil), e.AlgebraSteps...)
		e.EvaluationSteps = append([]string(nil), e.EvaluationSteps...)
		r.Explanation = &e
	}
	return r
}
