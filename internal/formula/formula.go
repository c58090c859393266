package formula

import (
	"fmt"
	"math"
)

// FinalVelocity returns v = v0 + a*t.
func FinalVelocity(v0, a, t float64) float64 {
	return v0 + a*t
}

// FinalPosition returns x = x0 + v0*t + 1/2*a*t^2.
func FinalPosition(x0, v0, a, t float64) float64 {
	return x0 + v0*t + 0.5*a*t*t
}

// VelocitySquared returns v^2 = v0^2 + 2a(x - x0), the no-time form.
// The result may be negative; callers wanting a velocity use
// VelocityFromPosition.
func VelocitySquared(v0, a, x0, x float64) float64 {
	return v0*v0 + 2*a*(x-x0)
}

// VelocityFromPosition returns the non-negative root of VelocitySquared.
// Only the magnitude is recoverable from the no-time form.
func VelocityFromPosition(v0, a, x0, x float64) (float64, error) {
	sq := VelocitySquared(v0, a, x0, x)
	if sq < 0 {
		return 0, fmt.Errorf("%w: v^2 = %g", ErrDomain, sq)
	}
	return math.Sqrt(sq), nil
}

// PositionFromAverageVelocity returns x = x0 + 1/2*(v + v0)*t.
func PositionFromAverageVelocity(x0, v0, v, t float64) float64 {
	return x0 + 0.5*(v+v0)*t
}

// TimeFromVelocity returns t = (v - v0) / a.
func TimeFromVelocity(v, v0, a float64) (float64, error) {
	if a == 0 {
		return 0, fmt.Errorf("%w: t = (v - v0) / a with a = 0", ErrDivisionByZero)
	}
	return (v - v0) / a, nil
}

// TimeFromPosition solves 1/2*a*t^2 + v0*t + (x0 - x) = 0 for t.
//
// Both roots are returned: t1 takes +sqrt(discriminant), t2 takes
// -sqrt(discriminant). A zero discriminant yields t1 == t2.
func TimeFromPosition(x, x0, v0, a float64) (t1, t2 float64, err error) {
	if a == 0 {
		return 0, 0, fmt.Errorf("%w: use t = (v - v0) / a or x = x0 + v0*t instead", ErrDegenerateEquation)
	}

	qa := 0.5 * a
	qb := v0
	qc := x0 - x

	disc := Discriminant(qa, qb, qc)
	if disc < 0 {
		return 0, 0, fmt.Errorf("%w: discriminant = %g", ErrNoRealSolution, disc)
	}

	root := math.Sqrt(disc)
	t1 = (-qb + root) / (2 * qa)
	t2 = (-qb - root) / (2 * qa)
	return t1, t2, nil
}

// Discriminant returns b^2 - 4ac.
func Discriminant(a, b, c float64) float64 {
	return b*b - 4*a*c
}
