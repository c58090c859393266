package engine

import (
	"log/slog"

	"github.com/n-tennyson/physics-simulator/internal/ir"
)

// Engine solves kinematics problems against a fixed rule table.
//
// Thread-safety: Engine holds no mutable state and is safe for concurrent use.
type Engine struct {
	table *Table
}

// New creates an engine over table.
func New(table *Table) *Engine {
	return &Engine{table: table}
}

// Table returns the engine's rule table.
func (e *Engine) Table() *Table {
	return e.table
}

// Select returns the rule that Solve would evaluate for target.
// It does not handle the echo case.
func (e *Engine) Select(knowns ir.Knowns, target string) (Rule, error) {
	cands := candidates(e.table.rules, target, knowns)
	if len(cands) == 0 {
		return Rule{}, &NoSolvableRuleError{Target: target, Known: knowns.Names()}
	}

	rule := lowestPriority(cands)
	slog.Debug("rule selected",
		"target", target,
		"rule", rule.ID,
		"priority", rule.Priority,
		"candidates", len(cands),
	)
	return rule, nil
}

// Solve computes target from knowns.
//
// If target is already known its value is returned with no explanation.
// Otherwise the applicable rule with the lowest priority is evaluated on
// exactly its required knowns. Formula errors are returned unchanged.
func (e *Engine) Solve(knowns ir.Knowns, target string) (ir.SolveResult, error) {
	if v, ok := knowns[target]; ok {
		return ir.NewEchoResult(v), nil
	}

	rule, err := e.Select(knowns, target)
	if err != nil {
		return ir.SolveResult{}, err
	}

	value, err := rule.Formula(knowns.Subset(rule.Requires))
	if err != nil {
		return ir.SolveResult{}, err
	}

	return explain(rule, value, knowns), nil
}

// explain assembles the result. Evaluation steps render against the full
// knowns, so they may mention variables the formula did not consume.
func explain(rule Rule, value ir.Value, knowns ir.Knowns) ir.SolveResult {
	res := ir.SolveResult{
		Result:          value,
		Rule:            rule.ID,
		AlgebraSteps:    []string{},
		EvaluationSteps: []string{},
	}

	ex := rule.Explanation
	if ex == nil {
		return res
	}

	res.Equation = ex.Equation
	res.RearrangedEquation = ex.RearrangedEquation
	res.AlgebraSteps = append(res.AlgebraSteps, ex.AlgebraSteps...)
	for _, step := range ex.EvaluationSteps {
		res.EvaluationSteps = append(res.EvaluationSteps, renderTemplate(step, knowns))
	}
	return res
}
