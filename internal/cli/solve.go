package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/n-tennyson/physics-simulator/internal/engine"
	"github.com/n-tennyson/physics-simulator/internal/ir"
	"github.com/n-tennyson/physics-simulator/internal/server"
)

// SolveOptions holds flags for the solve command.
type SolveOptions struct {
	*RootOptions
	Target  string
	Knowns  []string // name=value pairs
	Request string   // JSON request body, exclusive with Target and Knowns
}

// NewSolveCommand creates the solve command.
func NewSolveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SolveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve for one unknown",
		Long: `Solve for one unknown from a set of known values.

Known values are given as repeated --known name=value flags, or as a JSON
request body in the same shape the HTTP endpoint accepts.

Exit codes:
  0 - Solved
  1 - No rule applies, or the equation has no valid result
  2 - Command error (bad flags, unknown variables)

Examples:
  kinematics solve -t v -k v0=5 -k a=2 -k t=3
  kinematics solve -t t -k x=24 -k x0=0 -k v0=5 -k a=2
  kinematics solve --json '{"knowns": {"v0": 5, "a": 2, "t": 3}, "target": "v"}'
  kinematics solve -t x -k x0=0 -k v0=5 -k a=2 -k t=3 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Target, "target", "t", "", "variable to solve for (x|v|t|a)")
	cmd.Flags().StringArrayVarP(&opts.Knowns, "known", "k", nil, "known value as name=value (repeatable)")
	cmd.Flags().StringVar(&opts.Request, "json", "", "JSON request body with knowns and target")
	cmd.MarkFlagsMutuallyExclusive("json", "target")
	cmd.MarkFlagsMutuallyExclusive("json", "known")

	return cmd
}

func runSolve(opts *SolveOptions, cmd *cobra.Command) error {
	report := newReport(opts.RootOptions, cmd)

	knowns, target, err := solveInput(opts)
	if err == nil {
		err = ir.ValidateProblem(knowns, target)
	}
	if err != nil {
		report.Fail(Problem{Code: CodeInvalidInput, Message: err.Error()})
		return WrapExitError(ExitCommandError, "invalid input", err)
	}

	eng, err := loadEngine(opts.RootOptions)
	if err != nil {
		return err
	}

	report.Progressf("Solving for %s from %v", target, knowns.Names())

	result, err := eng.Solve(knowns, target)
	if err != nil {
		if code := engine.Code(err); code != "" {
			report.Fail(Problem{Code: solveCode(code), Message: err.Error()})
		}
		return WrapExitError(ExitFailure, "solve failed", err)
	}

	if report.JSON {
		data, err := ir.MarshalCanonical(result)
		if err != nil {
			return WrapExitError(ExitFailure, "failed to encode result", err)
		}
		return report.Emit(json.RawMessage(data), nil)
	}

	writeSolution(report.Out, target, result)
	return nil
}

// solveInput returns the problem from either --json or --target/--known.
func solveInput(opts *SolveOptions) (ir.Knowns, string, error) {
	if opts.Request != "" {
		return parseRequest(opts.Request)
	}

	knowns, err := parseKnowns(opts.Knowns)
	if err != nil {
		return nil, "", err
	}
	return knowns, opts.Target, nil
}

// parseRequest decodes a JSON body strictly: unknown fields and trailing
// data are errors.
func parseRequest(body string) (ir.Knowns, string, error) {
	var req server.SolveRequest
	dec := json.NewDecoder(strings.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return nil, "", fmt.Errorf("invalid JSON request: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, "", fmt.Errorf("invalid JSON request: trailing data")
	}
	if req.Knowns == nil {
		return nil, "", fmt.Errorf("knowns is required")
	}
	return req.Knowns, req.Target, nil
}

// parseKnowns converts name=value flags into knowns.
func parseKnowns(pairs []string) (ir.Knowns, error) {
	knowns := make(ir.Knowns, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid known %q: expected name=value", pair)
		}
		if _, dup := knowns[name]; dup {
			return nil, fmt.Errorf("known %q given more than once", name)
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %q: %q is not a number", name, raw)
		}
		knowns[name] = value
	}
	return knowns, nil
}

// writeSolution prints a human-readable derivation.
func writeSolution(w io.Writer, target string, result ir.SolveResult) {
	var b bytes.Buffer

	if result.Rule == "" {
		fmt.Fprintf(&b, "%s = %s (already known)\n", target, result.Result)
		_, _ = w.Write(b.Bytes())
		return
	}

	writeField(&b, "Rule", result.Rule)
	if result.Equation != "" {
		writeField(&b, "Equation", result.Equation)
	}
	if result.RearrangedEquation != "" && result.RearrangedEquation != result.Equation {
		writeField(&b, "Rearranged", result.RearrangedEquation)
	}
	writeSteps(&b, "Algebra:", result.AlgebraSteps)
	writeSteps(&b, "Evaluation:", result.EvaluationSteps)

	if result.Result.IsPair() {
		t1, t2 := result.Result.Roots()
		writeField(&b, "Result", fmt.Sprintf("%s1 = %s, %s2 = %s",
			target, ir.FormatNumber(t1), target, ir.FormatNumber(t2)))
	} else {
		writeField(&b, "Result", fmt.Sprintf("%s = %s", target, result.Result))
	}

	_, _ = w.Write(b.Bytes())
}

func writeSteps(b *bytes.Buffer, heading string, steps []string) {
	if len(steps) == 0 {
		return
	}
	fmt.Fprintln(b, heading)
	for i, step := range steps {
		fmt.Fprintf(b, "  %d. %s\n", i+1, step)
	}
}
