// Package server exposes the kinematics engine over HTTP.
//
// Routes:
//
//	GET  /                     health check
//	POST /solve/kinematics/1d  solve one problem
//
// Request body:
//
//	{"knowns": {"v0": 5, "a": 2, "t": 3}, "target": "v"}
//
// A successful response is an ir.SolveResult. Every caller-input error,
// whether a malformed body or a solve failure, is 400 with
// {"detail": "<message>"}. Every response carries an X-Request-ID header.
package server
