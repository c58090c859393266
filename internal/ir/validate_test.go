package ir

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateProblem(t *testing.T) {
	tests := []struct {
		name   string
		knowns Knowns
		target string
		errMsg string
	}{
		{"valid", Knowns{"v0": 5, "a": 2, "t": 3}, "v", ""},
		{"empty knowns", Knowns{}, "x", ""},
		{"acceleration target", Knowns{"v": 1}, "a", ""},
		{"echo target", Knowns{"x": 1}, "x", ""},
		{"missing target", Knowns{"v0": 5}, "", "target is required"},
		{"bad target", Knowns{"v0": 5}, "x0", `unknown target "x0"`},
		{"bad variable", Knowns{"v0": 5, "speed": 3}, "v", `unknown variable "speed"`},
		{"nan", Knowns{"v0": math.NaN()}, "v", `knowns["v0"] must be a finite number`},
		{"inf", Knowns{"t": math.Inf(1)}, "v", `knowns["t"] must be a finite number`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProblem(tt.knowns, tt.target)
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}
