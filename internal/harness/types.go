package harness

import (
	"github.com/n-tennyson/physics-simulator/internal/engine"
	"github.com/n-tennyson/physics-simulator/internal/ir"
)

// StepOutcome records what one step produced.
// Exactly one of Solution and ErrorCode is set.
type StepOutcome struct {
	Target       string
	Knowns       ir.Knowns
	Solution     *ir.SolveResult
	ErrorCode    engine.ErrorCode
	ErrorMessage string
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every expectation held.
	Pass bool `json:"pass"`

	// Steps holds one outcome per scenario step, in order.
	Steps []StepOutcome `json:"-"`

	// Errors contains expectation failures. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Steps:  []StepOutcome{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// canonical converts an outcome to a map for canonical JSON.
func (o StepOutcome) canonical() map[string]any {
	m := map[string]any{
		"target": o.Target,
		"knowns": o.Knowns,
	}
	if o.Solution != nil {
		m["solution"] = *o.Solution
	} else {
		m["error"] = map[string]any{
			"code":    string(o.ErrorCode),
			"message": o.ErrorMessage,
		}
	}
	return m
}
