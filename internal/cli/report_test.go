package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n-tennyson/physics-simulator/internal/engine"
)

func newTestReport(asJSON, verbose bool) (*Report, *bytes.Buffer, *bytes.Buffer) {
	out, diag := &bytes.Buffer{}, &bytes.Buffer{}
	return &Report{JSON: asJSON, Out: out, Diag: diag, Verbose: verbose}, out, diag
}

func TestReport_Emit(t *testing.T) {
	r, out, _ := newTestReport(true, false)

	require.NoError(t, r.Emit(map[string]float64{"result": 11}, nil))
	assert.Equal(t, `{"status":"ok","data":{"result":11}}`+"\n", out.String())
}

func TestReport_EmitWithProblem(t *testing.T) {
	r, out, _ := newTestReport(true, false)

	summary := RunSummary{Scenarios: []ScenarioVerdict{}, Failed: 1, Total: 1}
	require.NoError(t, r.Emit(summary, &Problem{Code: CodeTestFailed, Message: "1 of 1 scenarios failed"}))

	var env Envelope
	require.NoError(t, json.Unmarshal(out.Bytes(), &env))
	assert.Equal(t, "error", env.Status)
	assert.NotNil(t, env.Data)
	require.NotNil(t, env.Error)
	assert.Equal(t, CodeTestFailed, env.Error.Code)
}

func TestReport_FailJSON(t *testing.T) {
	r, out, _ := newTestReport(true, false)

	r.Fail(Problem{
		Code:    solveCode(engine.CodeNoSolvableRule),
		Message: `no equation can solve for "x" from known variables [v0]`,
	})

	var env Envelope
	require.NoError(t, json.Unmarshal(out.Bytes(), &env))
	assert.Equal(t, "error", env.Status)
	assert.Nil(t, env.Data)
	require.NotNil(t, env.Error)
	assert.Equal(t, Code("no_solvable_rule"), env.Error.Code)
	assert.Nil(t, env.Error.Details)
}

func TestReport_FailJSONDetails(t *testing.T) {
	r, out, _ := newTestReport(true, false)

	r.Fail(Problem{
		Code:    CodeCatalogSyntax,
		Message: "expected ']'",
		Details: ValidationDetails{File: "rules.cue", Line: 42},
	})

	var env Envelope
	require.NoError(t, json.Unmarshal(out.Bytes(), &env))
	require.NotNil(t, env.Error)
	assert.Equal(t, map[string]any{"file": "rules.cue", "line": float64(42)}, env.Error.Details)
}

func TestReport_FailText(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		want    string
	}{
		{
			name: "quiet",
			want: "Error:      a^2 is negative\n" +
				"Code:       domain\n",
		},
		{
			name:    "verbose",
			verbose: true,
			want: "Error:      a^2 is negative\n" +
				"Code:       domain\n" +
				"Details:    {\"rule\":\"v_from_position\"}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, out, diag := newTestReport(false, tt.verbose)

			r.Fail(Problem{
				Code:    solveCode(engine.CodeDomain),
				Message: "a^2 is negative",
				Details: ValidationDetails{Rule: "v_from_position"},
			})
			assert.Equal(t, tt.want, out.String())
			assert.Empty(t, diag.String())
		})
	}
}

func TestReport_Progressf(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		want    string
	}{
		{"verbose", true, "Compiling rules.cue\n"},
		{"quiet", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, out, diag := newTestReport(true, tt.verbose)

			r.Progressf("Compiling %s", "rules.cue")

			assert.Empty(t, out.String(), "progress never reaches the result stream")
			assert.Equal(t, tt.want, diag.String())
		})
	}
}

func TestWriteField(t *testing.T) {
	var b bytes.Buffer
	writeField(&b, "Rule", "v_from_time")
	writeField(&b, "Rearranged", "t = (v - v0) / a")
	assert.Equal(t, "Rule:       v_from_time\nRearranged: t = (v - v0) / a\n", b.String())
}

func TestExitError(t *testing.T) {
	base := errors.New("boom")

	err := WrapExitError(ExitCommandError, "failed to load rule catalog", base)
	assert.Equal(t, "failed to load rule catalog: boom", err.Error())
	assert.ErrorIs(t, err, base)

	assert.Equal(t, "solve failed", NewExitError(ExitFailure, "solve failed").Error())
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, ExitCode(NewExitError(ExitCommandError, "x")))
	assert.Equal(t, ExitFailure, ExitCode(fmt.Errorf("wrapped: %w", NewExitError(ExitFailure, "x"))))
	assert.Equal(t, ExitFailure, ExitCode(errors.New("plain")))
}
