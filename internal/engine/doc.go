// Package engine implements the rule selector/evaluator of the kinematics
// solver.
//
// A Table is an immutable, ordered set of Rules. Each rule declares the one
// variable it provides, the variables it requires, a priority, and the
// Formula that computes it. Given a set of knowns and a target, the engine:
//
//  1. Echoes the target's value when it is already known
//  2. Filters the table to rules that provide the target and whose
//     requirements are all known
//  3. Selects the candidate with the lowest priority
//  4. Evaluates its formula on exactly the required knowns
//  5. Renders the rule's explanation against the full knowns
//
// Formula errors are returned unchanged. The engine adds one error of its
// own, ErrNoSolvableRule.
//
// Priorities are unique within each provides group, checked by NewTable, so
// selection never depends on table order. A Table has no writers after
// construction and may be shared by any number of goroutines.
package engine
