// Package ir provides the shared data model of the kinematics solver.
//
// This package contains type definitions and their serialization only. All
// other internal packages import ir; ir imports nothing internal.
//
// Key design constraints:
//   - Numbers are float64 throughout; NaN and Inf never reach the wire
//   - All JSON tags use snake_case
//   - Map iteration is never observable: output always uses sorted keys
package ir
