// Package harness runs solve scenarios against the engine.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: velocity_from_time
//	description: "v = v0 + at"
//	steps:
//	  - target: v
//	    knowns: { v0: 5, a: 2, t: 3 }
//	    expect:
//	      result: 11
//	      rule: v_from_time
//	  - target: t
//	    knowns: { x: 24, x0: 0, v0: 5, a: 2 }
//	    expect:
//	      result: [3, -8]
//	  - target: x
//	    knowns: { v0: 5 }
//	    expect:
//	      error: no_solvable_rule
//
// result is a number, or a two-element list for the quadratic time rule
// (root order matters). error is one of the engine.ErrorCode values. A step
// without expect is only recorded.
//
// # Golden Files
//
// Every run produces a snapshot: each step's target, knowns, and either the
// full solution (explanation included) or the error code and message. The
// snapshot is canonical JSON, so identical runs are byte-identical and can be
// compared against testdata/golden/<name>.golden.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/velocity.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(eng, scenario)
//	if !result.Pass {
//	    for _, e := range result.Errors {
//	        log.Println(e)
//	    }
//	}
package harness
