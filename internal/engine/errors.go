package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/n-tennyson/physics-simulator/internal/formula"
)

// ErrNoSolvableRule is matched by every NoSolvableRuleError.
var ErrNoSolvableRule = errors.New("engine: no rule can solve for target")

// NoSolvableRuleError reports that no rule provides Target from the
// supplied knowns.
type NoSolvableRuleError struct {
	// Target is the requested variable.
	Target string

	// Known lists the supplied variable names, sorted.
	Known []string
}

// Error implements the error interface.
func (e *NoSolvableRuleError) Error() string {
	return fmt.Sprintf("no equation can solve for %q from known variables [%s]",
		e.Target, strings.Join(e.Known, ", "))
}

// Is lets errors.Is(err, ErrNoSolvableRule) match.
func (e *NoSolvableRuleError) Is(target error) bool {
	return target == ErrNoSolvableRule
}

// ErrorCode categorizes caller-input errors for transport boundaries.
type ErrorCode string

const (
	// CodeDomain indicates a quantity with no real value (negative v^2).
	CodeDomain ErrorCode = "domain"

	// CodeDivisionByZero indicates a formula divided by zero acceleration.
	CodeDivisionByZero ErrorCode = "division_by_zero"

	// CodeDegenerateEquation indicates the quadratic path with a == 0.
	CodeDegenerateEquation ErrorCode = "degenerate_equation"

	// CodeNoRealSolution indicates a negative discriminant.
	CodeNoRealSolution ErrorCode = "no_real_solution"

	// CodeNoSolvableRule indicates no rule matched the knowns.
	CodeNoSolvableRule ErrorCode = "no_solvable_rule"
)

// ValidErrorCodes defines every code Code can return.
var ValidErrorCodes = map[ErrorCode]bool{
	CodeDomain:             true,
	CodeDivisionByZero:     true,
	CodeDegenerateEquation: true,
	CodeNoRealSolution:     true,
	CodeNoSolvableRule:     true,
}

// Code returns the category of err, or "" if err is not a solve error.
// Uses errors.Is to handle wrapped errors.
func Code(err error) ErrorCode {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, formula.ErrDomain):
		return CodeDomain
	case errors.Is(err, formula.ErrDivisionByZero):
		return CodeDivisionByZero
	case errors.Is(err, formula.ErrDegenerateEquation):
		return CodeDegenerateEquation
	case errors.Is(err, formula.ErrNoRealSolution):
		return CodeNoRealSolution
	case errors.Is(err, ErrNoSolvableRule):
		return CodeNoSolvableRule
	default:
		return ""
	}
}

// IsClientError returns true if err was caused by the caller's input.
// None of these errors are retryable.
func IsClientError(err error) bool {
	return Code(err) != ""
}

// TableError reports an invalid rule found while building a Table.
type TableError struct {
	RuleID  string
	Message string
}

// Error implements the error interface.
func (e *TableError) Error() string {
	if e.RuleID != "" {
		return fmt.Sprintf("rule %q: %s", e.RuleID, e.Message)
	}
	return e.Message
}
