package engine

import (
	"github.com/n-tennyson/physics-simulator/internal/formula"
	"github.com/n-tennyson/physics-simulator/internal/ir"
)

// testRules mirrors the shipped catalog so engine tests stay independent of
// the CUE loader.
func testRules() []Rule {
	return []Rule{
		{
			ID:          "v_from_time",
			Provides:    "v",
			Requires:    []string{"v0", "a", "t"},
			Priority:    1,
			Kind:        KindLinear,
			FormulaName: "final_velocity",
			Formula: func(k ir.Knowns) (ir.Value, error) {
				return ir.Scalar(formula.FinalVelocity(k["v0"], k["a"], k["t"])), nil
			},
			Explanation: &Explanation{
				Equation:           "v = v0 + a*t",
				RearrangedEquation: "v = v0 + a*t",
				AlgebraSteps:       []string{"The equation is already solved for v."},
				EvaluationSteps:    []string{"v = {v0} + ({a})({t})"},
			},
		},
		{
			ID:          "v_from_position",
			Provides:    "v",
			Requires:    []string{"v0", "a", "x0", "x"},
			Priority:    2,
			Kind:        KindQuadratic,
			FormulaName: "velocity_from_position",
			Formula: func(k ir.Knowns) (ir.Value, error) {
				v, err := formula.VelocityFromPosition(k["v0"], k["a"], k["x0"], k["x"])
				return ir.Scalar(v), err
			},
		},
		{
			ID:          "x_from_time",
			Provides:    "x",
			Requires:    []string{"x0", "v0", "a", "t"},
			Priority:    1,
			Kind:        KindLinear,
			FormulaName: "final_position",
			Formula: func(k ir.Knowns) (ir.Value, error) {
				return ir.Scalar(formula.FinalPosition(k["x0"], k["v0"], k["a"], k["t"])), nil
			},
		},
		{
			ID:          "x_from_average_velocity",
			Provides:    "x",
			Requires:    []string{"x0", "v0", "v", "t"},
			Priority:    2,
			Kind:        KindLinear,
			FormulaName: "position_from_average_velocity",
			Formula: func(k ir.Knowns) (ir.Value, error) {
				return ir.Scalar(formula.PositionFromAverageVelocity(k["x0"], k["v0"], k["v"], k["t"])), nil
			},
		},
		{
			ID:          "t_from_velocity",
			Provides:    "t",
			Requires:    []string{"v", "v0", "a"},
			Priority:    1,
			Kind:        KindLinear,
			FormulaName: "time_from_velocity",
			Formula: func(k ir.Knowns) (ir.Value, error) {
				t, err := formula.TimeFromVelocity(k["v"], k["v0"], k["a"])
				return ir.Scalar(t), err
			},
		},
		{
			ID:          "t_from_position",
			Provides:    "t",
			Requires:    []string{"x", "x0", "v0", "a"},
			Priority:    2,
			Kind:        KindQuadratic,
			FormulaName: "time_from_position",
			Formula: func(k ir.Knowns) (ir.Value, error) {
				t1, t2, err := formula.TimeFromPosition(k["x"], k["x0"], k["v0"], k["a"])
				return ir.Pair(t1, t2), err
			},
			Explanation: &Explanation{
				Equation:           "x = x0 + v0*t + (1/2)*a*t^2",
				RearrangedEquation: "t = (-v0 ± sqrt(v0^2 - 2*a*(x0 - x))) / a",
				AlgebraSteps: []string{
					"(1/2)*a*t^2 + v0*t + (x0 - x) = 0",
				},
				EvaluationSteps: []string{
					"(1/2)({a})t^2 + ({v0})t + ({x0} - {x}) = 0",
				},
			},
		},
	}
}

func newTestEngine() *Engine {
	table, err := NewTable(testRules())
	if err != nil {
		panic(err)
	}
	return New(table)
}
