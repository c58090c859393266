package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/n-tennyson/physics-simulator/internal/catalog"
	"github.com/n-tennyson/physics-simulator/internal/engine"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid bool   `json:"valid"`
	File  string `json:"file"`
	Rules int    `json:"rules"`
}

// ValidationDetails locates a catalog error.
type ValidationDetails struct {
	File   string `json:"file,omitempty"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
	Rule   string `json:"rule,omitempty"`
	Field  string `json:"field,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [catalog.cue]",
		Short: "Validate a rule catalog",
		Long: `Compile a CUE rule catalog and report the first problem found.

Checks the CUE syntax and schema, that every formula name is bound and its
parameters match requires, and the table invariants: unique ids, unique
priorities per provided variable, and known template placeholders.

Without an argument, validates the --rules file or the built-in catalog.

Exit codes:
  0 - Catalog valid
  2 - Catalog invalid or unreadable`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			path := rootOpts.Rules
			if len(args) == 1 {
				path = args[0]
			}
			return runValidate(rootOpts, path, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	report := newReport(opts, cmd)

	var (
		table *engine.Table
		err   error
		name  = path
	)
	if path == "" {
		name = "built-in"
		table, err = catalog.Default()
	} else {
		report.Progressf("Compiling %s", path)
		table, err = catalog.Load(path)
	}

	if err != nil {
		code, details := classifyCatalogError(err)
		report.Fail(Problem{Code: code, Message: err.Error(), Details: details})
		return WrapExitError(ExitCommandError, "catalog invalid", err)
	}

	result := ValidationResult{Valid: true, File: name, Rules: table.Len()}
	if report.JSON {
		return report.Emit(result, nil)
	}
	fmt.Fprintf(report.Out, "✓ Catalog valid: %s (%d rules)\n", name, result.Rules)
	return nil
}

// classifyCatalogError maps a catalog error to an error code and location.
func classifyCatalogError(err error) (Code, any) {
	var compileErr *catalog.CompileError
	if errors.As(err, &compileErr) {
		details := &ValidationDetails{Rule: compileErr.Rule, Field: compileErr.Field}
		if compileErr.Pos.IsValid() {
			details.File = compileErr.Pos.Filename()
			details.Line = compileErr.Pos.Line()
			details.Column = compileErr.Pos.Column()
		}
		if compileErr.Field == "cue" {
			return CodeCatalogSyntax, details
		}
		return CodeCatalogRule, details
	}

	var tableErr *engine.TableError
	if errors.As(err, &tableErr) {
		return CodeCatalogRule, &ValidationDetails{Rule: tableErr.RuleID}
	}

	return CodeCatalogRead, nil
}
