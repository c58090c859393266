package harness

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/n-tennyson/physics-simulator/internal/engine"
	"github.com/n-tennyson/physics-simulator/internal/ir"
)

// Run executes a scenario against eng and returns the result.
//
// Steps run in order. Each step is validated the way the HTTP boundary
// validates a request; a step that fails validation aborts the run with an
// error, since the scenario itself is broken. Solve errors are not run
// errors: they are recorded in the outcome and checked against expect.error.
func Run(eng *engine.Engine, scenario *Scenario) (*Result, error) {
	result := NewResult()

	for i, step := range scenario.Steps {
		if err := ir.ValidateProblem(step.Knowns, step.Target); err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}

		outcome := StepOutcome{
			Target: step.Target,
			Knowns: step.Knowns,
		}

		solution, err := eng.Solve(step.Knowns, step.Target)
		if err != nil {
			code := engine.Code(err)
			if code == "" {
				return nil, fmt.Errorf("step %d: %w", i, err)
			}
			outcome.ErrorCode = code
			outcome.ErrorMessage = err.Error()
		} else {
			outcome.Solution = &solution
		}

		result.Steps = append(result.Steps, outcome)

		if step.Expect != nil {
			for _, msg := range checkExpect(step.Expect, outcome) {
				result.AddError(fmt.Sprintf("step %d (%s): %s", i, step.Target, msg))
			}
		}

		slog.Debug("scenario step completed",
			"scenario", scenario.Name,
			"step", i,
			"target", step.Target,
			"error_code", string(outcome.ErrorCode),
		)
	}

	return result, nil
}

// checkExpect compares an outcome against its expectation.
// Returns one message per mismatch.
func checkExpect(expect *Expect, outcome StepOutcome) []string {
	var errs []string

	if expect.Error != "" {
		if outcome.Solution != nil {
			return []string{fmt.Sprintf("expected error %q, got result %s",
				expect.Error, outcome.Solution.Result)}
		}
		if string(outcome.ErrorCode) != expect.Error {
			errs = append(errs, fmt.Sprintf("expected error %q, got %q (%s)",
				expect.Error, outcome.ErrorCode, outcome.ErrorMessage))
		}
		return errs
	}

	if outcome.Solution == nil {
		return []string{fmt.Sprintf("expected a result, got error %q (%s)",
			outcome.ErrorCode, outcome.ErrorMessage)}
	}

	if expect.Rule != "" && expect.Rule != outcome.Solution.Rule {
		errs = append(errs, fmt.Sprintf("expected rule %q, got %q", expect.Rule, outcome.Solution.Rule))
	}

	if expect.Result != nil {
		want, err := expectedValue(expect.Result)
		if err != nil {
			errs = append(errs, fmt.Sprintf("invalid expected result: %v", err))
			return errs
		}
		tolerance := expect.Tolerance
		if tolerance == 0 {
			tolerance = DefaultTolerance
		}
		if !withinTolerance(want, outcome.Solution.Result, tolerance) {
			errs = append(errs, fmt.Sprintf("expected result %s, got %s", want, outcome.Solution.Result))
		}
	}

	return errs
}

// withinTolerance reports whether got matches want number by number.
// A scalar never matches a pair.
func withinTolerance(want, got ir.Value, tolerance float64) bool {
	if want.IsPair() != got.IsPair() {
		return false
	}
	w, g := want.Floats(), got.Floats()
	for i := range w {
		if math.Abs(w[i]-g[i]) > tolerance {
			return false
		}
	}
	return true
}
