package catalog

import (
	"slices"

	"github.com/n-tennyson/physics-simulator/internal/engine"
	"github.com/n-tennyson/physics-simulator/internal/formula"
	"github.com/n-tennyson/physics-simulator/internal/ir"
)

// binding ties a formula name to its Go implementation.
// params lists the variables the function consumes; a rule using the
// formula must require exactly this set.
type binding struct {
	params []string
	fn     engine.Formula
}

var formulas = map[string]binding{
	"final_velocity": {
		params: []string{"v0", "a", "t"},
		fn: func(k ir.Knowns) (ir.Value, error) {
			return ir.Scalar(formula.FinalVelocity(k["v0"], k["a"], k["t"])), nil
		},
	},
	"final_position": {
		params: []string{"x0", "v0", "a", "t"},
		fn: func(k ir.Knowns) (ir.Value, error) {
			return ir.Scalar(formula.FinalPosition(k["x0"], k["v0"], k["a"], k["t"])), nil
		},
	},
	"velocity_from_position": {
		params: []string{"v0", "a", "x0", "x"},
		fn: func(k ir.Knowns) (ir.Value, error) {
			v, err := formula.VelocityFromPosition(k["v0"], k["a"], k["x0"], k["x"])
			if err != nil {
				return ir.Value{}, err
			}
			return ir.Scalar(v), nil
		},
	},
	"position_from_average_velocity": {
		params: []string{"x0", "v0", "v", "t"},
		fn: func(k ir.Knowns) (ir.Value, error) {
			return ir.Scalar(formula.PositionFromAverageVelocity(k["x0"], k["v0"], k["v"], k["t"])), nil
		},
	},
	"time_from_velocity": {
		params: []string{"v", "v0", "a"},
		fn: func(k ir.Knowns) (ir.Value, error) {
			t, err := formula.TimeFromVelocity(k["v"], k["v0"], k["a"])
			if err != nil {
				return ir.Value{}, err
			}
			return ir.Scalar(t), nil
		},
	},
	"time_from_position": {
		params: []string{"x", "x0", "v0", "a"},
		fn: func(k ir.Knowns) (ir.Value, error) {
			t1, t2, err := formula.TimeFromPosition(k["x"], k["x0"], k["v0"], k["a"])
			if err != nil {
				return ir.Value{}, err
			}
			return ir.Pair(t1, t2), nil
		},
	},
}

// FormulaNames returns the registered formula names, sorted.
func FormulaNames() []string {
	names := make([]string, 0, len(formulas))
	for name := range formulas {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
