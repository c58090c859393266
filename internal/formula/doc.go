// Package formula implements the closed-form identities of one-dimensional
// motion under constant acceleration.
//
// Every function is pure: no state, no I/O, float64 in and float64 out.
// Cases with no real answer return one of the sentinel errors in errors.go
// instead of producing NaN or Inf.
//
// Variables follow the usual naming:
//
//	x0  initial position (m)
//	x   final position (m)
//	v0  initial velocity (m/s)
//	v   final velocity (m/s)
//	a   constant acceleration (m/s^2)
//	t   elapsed time (s)
package formula
