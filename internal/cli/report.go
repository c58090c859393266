package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/n-tennyson/physics-simulator/internal/engine"
)

// Code classifies a command failure. Solve failures carry the engine's
// code unchanged; the E_ codes belong to the command layer.
type Code string

const (
	CodeInvalidInput  Code = "E_INVALID_INPUT"
	CodeCatalogSyntax Code = "E_CATALOG_SYNTAX" // CUE parse or schema failure
	CodeCatalogRule   Code = "E_CATALOG_RULE"   // rule failed binding or table checks
	CodeCatalogRead   Code = "E_CATALOG_READ"
	CodeTestFailed    Code = "E_TEST_FAILED"
)

func solveCode(c engine.ErrorCode) Code { return Code(c) }

// Envelope is the document every command writes under --format json.
type Envelope struct {
	Status string   `json:"status"` // "ok" or "error"
	Data   any      `json:"data,omitempty"`
	Error  *Problem `json:"error,omitempty"`
}

// Problem describes a failed command.
type Problem struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Report writes command output. Results and problems go to Out;
// progress notes go to Diag so they never interleave with JSON.
type Report struct {
	JSON    bool
	Out     io.Writer
	Diag    io.Writer
	Verbose bool
}

func newReport(opts *RootOptions, cmd *cobra.Command) *Report {
	return &Report{
		JSON:    opts.Format == "json",
		Out:     cmd.OutOrStdout(),
		Diag:    cmd.ErrOrStderr(),
		Verbose: opts.Verbose,
	}
}

// Emit writes one envelope. The status is "error" whenever p is set,
// even if data is also present.
func (r *Report) Emit(data any, p *Problem) error {
	env := Envelope{Status: "ok", Data: data, Error: p}
	if p != nil {
		env.Status = "error"
	}
	return json.NewEncoder(r.Out).Encode(env)
}

// Fail reports p. In text mode it uses the labelled layout of a solution,
// with details shown only when verbose.
func (r *Report) Fail(p Problem) {
	if r.JSON {
		_ = r.Emit(nil, &p)
		return
	}

	writeField(r.Out, "Error", p.Message)
	writeField(r.Out, "Code", string(p.Code))
	if r.Verbose && p.Details != nil {
		if data, err := json.Marshal(p.Details); err == nil {
			writeField(r.Out, "Details", string(data))
		}
	}
}

// Progressf writes a note to Diag when verbose.
func (r *Report) Progressf(format string, args ...any) {
	if !r.Verbose {
		return
	}
	fmt.Fprintf(r.Diag, format+"\n", args...)
}

// writeField prints "Label:" padded to a fixed column, then value.
func writeField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "%-12s%s\n", label+":", value)
}
