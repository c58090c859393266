package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n-tennyson/physics-simulator/internal/ir"
)

func TestSolve_Text(t *testing.T) {
	out, err := execute(t, "solve", "-t", "v", "-k", "v0=5", "-k", "a=2", "-k", "t=3")
	require.NoError(t, err)

	expected := "Rule:       v_from_time\n" +
		"Equation:   v = v0 + a*t\n" +
		"Algebra:\n" +
		"  1. The equation is already solved for v.\n" +
		"Evaluation:\n" +
		"  1. v = 5 + (2)(3)\n" +
		"Result:     v = 11\n"
	assert.Equal(t, expected, out)
}

func TestSolve_TextQuadratic(t *testing.T) {
	out, err := execute(t, "solve", "--target", "t",
		"--known", "x=24", "--known", "x0=0", "--known", "v0=5", "--known", "a=2")
	require.NoError(t, err)

	assert.Contains(t, out, "Rule:       t_from_position\n")
	assert.Contains(t, out, "Rearranged: t = (-v0 ± sqrt(v0^2 - 2*a*(x0 - x))) / a\n")
	assert.Contains(t, out, "  2. t = (-(5) ± sqrt((5)^2 - 2(2)(0 - 24))) / 2\n")
	assert.Contains(t, out, "Result:     t1 = 3, t2 = -8\n")
}

func TestSolve_TextEcho(t *testing.T) {
	out, err := execute(t, "solve", "-t", "a", "-k", "a=-9.81")
	require.NoError(t, err)
	assert.Equal(t, "a = -9.81 (already known)\n", out)
}

func TestSolve_JSONFormat(t *testing.T) {
	out, err := execute(t, "solve", "-t", "x", "-k", "x0=0", "-k", "v0=5", "-k", "a=2", "-k", "t=3", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string         `json:"status"`
		Data   ir.SolveResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, ir.Scalar(24), resp.Data.Result)
	assert.Equal(t, "x_from_time", resp.Data.Rule)
	assert.Equal(t, []string{"x = 0 + (5)(3) + (1/2)(2)(3)^2"}, resp.Data.EvaluationSteps)
}

func TestSolve_JSONOutputIsCanonical(t *testing.T) {
	out, err := execute(t, "solve", "-t", "a", "-k", "a=2", "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, `{"status":"ok","data":{"algebra_steps":[],"evaluation_steps":[],"result":2}}`+"\n", out)
}

func TestSolve_JSONRequest(t *testing.T) {
	out, err := execute(t, "solve", "--json", `{"knowns": {"v": 11, "v0": 5, "a": 2}, "target": "t"}`)
	require.NoError(t, err)
	assert.Contains(t, out, "Rule:       t_from_velocity\n")
	assert.Contains(t, out, "Result:     t = 3\n")
}

func TestSolve_SolveErrors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode string
	}{
		{
			name:     "no solvable rule",
			args:     []string{"-t", "x", "-k", "v0=5"},
			wantCode: "no_solvable_rule",
		},
		{
			name:     "acceleration is never solved",
			args:     []string{"-t", "a", "-k", "v0=1", "-k", "v=3", "-k", "t=2"},
			wantCode: "no_solvable_rule",
		},
		{
			name:     "division by zero",
			args:     []string{"-t", "t", "-k", "v=10", "-k", "v0=0", "-k", "a=0"},
			wantCode: "division_by_zero",
		},
		{
			name:     "negative discriminant",
			args:     []string{"-t", "t", "-k", "x=10", "-k", "x0=0", "-k", "v0=0", "-k", "a=-2"},
			wantCode: "no_real_solution",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, append([]string{"solve"}, tt.args...)...)
			require.Error(t, err)
			assert.Equal(t, ExitFailure, ExitCode(err))
			assert.Contains(t, out, "Code:       "+tt.wantCode+"\n")
		})
	}
}

func TestSolve_SolveErrorJSON(t *testing.T) {
	out, err := execute(t, "solve", "-t", "x", "-k", "v0=5", "--format", "json")
	require.Error(t, err)

	var resp Envelope
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, Code("no_solvable_rule"), resp.Error.Code)
	assert.Equal(t, `no equation can solve for "x" from known variables [v0]`, resp.Error.Message)
}

func TestSolve_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing target", []string{"-k", "v0=5"}, "target is required"},
		{"unknown target", []string{"-t", "q", "-k", "v0=5"}, `unknown target "q"`},
		{"unknown variable", []string{"-t", "v", "-k", "speed=5"}, `unknown variable "speed"`},
		{"not a number", []string{"-t", "v", "-k", "v0=fast"}, `"fast" is not a number`},
		{"non-finite", []string{"-t", "v", "-k", "v0=Inf"}, "must be a finite number"},
		{"missing equals", []string{"-t", "v", "-k", "v0"}, "expected name=value"},
		{"duplicate", []string{"-t", "v", "-k", "v0=1", "-k", "v0=2"}, "given more than once"},
		{"bad json", []string{"--json", `{"knowns":`}, "invalid JSON request"},
		{"unknown json field", []string{"--json", `{"knowns":{},"target":"v","extra":1}`}, "unknown field"},
		{"missing json knowns", []string{"--json", `{"target":"v"}`}, "knowns is required"},
		{"trailing json", []string{"--json", `{"knowns":{},"target":"v"} {}`}, "trailing data"},
		{"null json known", []string{"--json", `{"knowns":{"v0":null,"a":2,"t":3},"target":"v"}`}, `knowns["v0"] must be a number, got null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, append([]string{"solve"}, tt.args...)...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, ExitCode(err))
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Contains(t, out, "Code:       "+string(CodeInvalidInput)+"\n")
		})
	}
}

func TestSolve_SolveErrorText(t *testing.T) {
	out, err := execute(t, "solve", "-t", "x", "-k", "v0=5")
	require.Error(t, err)

	expected := "Error:      no equation can solve for \"x\" from known variables [v0]\n" +
		"Code:       no_solvable_rule\n"
	assert.Equal(t, expected, out)
}

func TestSolve_NullKnownNotTreatedAsZero(t *testing.T) {
	out, err := execute(t, "solve", "--json", `{"knowns":{"v0":null,"a":2,"t":3},"target":"v"}`, "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, ExitCode(err))

	var resp Envelope
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Nil(t, resp.Data)
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeInvalidInput, resp.Error.Code)
}

func TestSolve_JSONExclusiveWithTarget(t *testing.T) {
	_, err := execute(t, "solve", "-t", "v", "--json", `{"knowns":{},"target":"v"}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "none of the others can be")
}

func TestParseKnowns(t *testing.T) {
	knowns, err := parseKnowns([]string{"v0=5", " a = -2.5 ", "t=1e3"})
	require.NoError(t, err)
	assert.Equal(t, ir.Knowns{"v0": 5, "a": -2.5, "t": 1000}, knowns)

	knowns, err = parseKnowns(nil)
	require.NoError(t, err)
	assert.Empty(t, knowns)
}
