package formula

import "errors"

// Sentinel errors for the formula package.
// Use errors.Is to check: errors.Is(err, formula.ErrNoRealSolution)
var (
	ErrDomain             = errors.New("formula: no real value exists for the requested quantity")
	ErrDivisionByZero     = errors.New("formula: division by zero acceleration")
	ErrDegenerateEquation = errors.New("formula: quadratic degenerates when acceleration is zero")
	ErrNoRealSolution     = errors.New("formula: negative discriminant, no real solution")
)
