package ir

import "slices"

// Variable names a kinematic quantity.
type Variable string

const (
	InitialPosition Variable = "x0"
	Position        Variable = "x"
	InitialVelocity Variable = "v0"
	Velocity        Variable = "v"
	Acceleration    Variable = "a"
	Time            Variable = "t"
)

// Variables lists every variable in display order.
var Variables = []Variable{
	InitialPosition,
	Position,
	InitialVelocity,
	Velocity,
	Acceleration,
	Time,
}

// ValidVariables defines the names allowed as knowns.
var ValidVariables = map[Variable]bool{
	InitialPosition: true,
	Position:        true,
	InitialVelocity: true,
	Velocity:        true,
	Acceleration:    true,
	Time:            true,
}

// ValidTargets defines the names a caller may solve for.
// "a" is accepted even though no rule currently provides it.
var ValidTargets = map[Variable]bool{
	Position:     true,
	Velocity:     true,
	Time:         true,
	Acceleration: true,
}

// Knowns maps a variable name to its given value for one solve request.
type Knowns map[string]float64

// Has reports whether name is present.
func (k Knowns) Has(name string) bool {
	_, ok := k[name]
	return ok
}

// Names returns the variable names in sorted order.
func (k Knowns) Names() []string {
	names := make([]string, 0, len(k))
	for name := range k {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Subset returns a new Knowns holding only the listed names.
// Names missing from k are skipped.
func (k Knowns) Subset(names []string) Knowns {
	out := make(Knowns, len(names))
	for _, name := range names {
		if v, ok := k[name]; ok {
			out[name] = v
		}
	}
	return out
}

// SolveResult is the answer to one solve request.
//
// Explanation fields are empty for the echo case, where the target was
// already among the knowns. AlgebraSteps and EvaluationSteps serialize as
// empty arrays, never null.
type SolveResult struct {
	Result             Value    `json:"result"`
	Rule               string   `json:"rule,omitempty"`
	Equation           string   `json:"equation,omitempty"`
	RearrangedEquation string   `json:"rearranged_equation,omitempty"`
	AlgebraSteps       []string `json:"algebra_steps"`
	EvaluationSteps    []string `json:"evaluation_steps"`
}

// NewEchoResult creates a result that returns a known value unchanged.
func NewEchoResult(v float64) SolveResult {
	return SolveResult{
		Result:          Scalar(v),
		AlgebraSteps:    []string{},
		EvaluationSteps: []string{},
	}
}
