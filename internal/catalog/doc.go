// Package catalog compiles the declarative rule catalog into an engine.Table.
//
// Rules are written in CUE (rules.cue, embedded in the binary). The CUE
// schema checks shape and enumerations; Compile then binds each rule's
// formula name to a Go function and hands the result to engine.NewTable for
// cross-rule checks such as priority uniqueness.
//
// Adding an equation is one CUE entry plus, if the formula is new, one
// binding in registry.go.
package catalog
