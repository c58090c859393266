package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/n-tennyson/physics-simulator/internal/engine"
)

//go:embed rules.cue
var rulesCUE []byte

// ruleSpec is the decoded form of one #Rule entry.
type ruleSpec struct {
	ID                 string   `json:"id"`
	Provides           string   `json:"provides"`
	Requires           []string `json:"requires"`
	Priority           int      `json:"priority"`
	Kind               string   `json:"kind"`
	Formula            string   `json:"formula"`
	Equation           string   `json:"equation"`
	RearrangedEquation string   `json:"rearranged_equation"`
	AlgebraSteps       []string `json:"algebra_steps"`
	EvaluationSteps    []string `json:"evaluation_steps"`
}

func (s ruleSpec) hasExplanation() bool {
	return s.Equation != "" || s.RearrangedEquation != "" ||
		len(s.AlgebraSteps) > 0 || len(s.EvaluationSteps) > 0
}

var loadDefault = sync.OnceValues(func() (*engine.Table, error) {
	return Compile(rulesCUE, "rules.cue")
})

// Default returns the table compiled from the embedded catalog.
// The catalog is compiled once per process.
func Default() (*engine.Table, error) {
	return loadDefault()
}

// Source returns the embedded catalog source.
func Source() []byte {
	return slices.Clone(rulesCUE)
}

// Load reads and compiles the catalog file at path.
func Load(path string) (*engine.Table, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Compile(src, path)
}

// Compile parses CUE catalog source into a validated rule table.
// filename is used in error positions only.
func Compile(src []byte, filename string) (*engine.Table, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	rulesVal := v.LookupPath(cue.ParsePath("rules"))
	if !rulesVal.Exists() {
		return nil, &CompileError{Field: "rules", Message: "rules list is required"}
	}
	if err := rulesVal.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	iter, err := rulesVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var rules []engine.Rule
	for iter.Next() {
		elem := iter.Value()

		var spec ruleSpec
		if err := elem.Decode(&spec); err != nil {
			return nil, formatCUEError(err)
		}

		rule, err := bind(spec, elem.Pos())
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	table, err := engine.NewTable(rules)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return table, nil
}

// bind resolves the formula name and converts spec to an engine.Rule.
func bind(spec ruleSpec, pos token.Pos) (engine.Rule, error) {
	b, ok := formulas[spec.Formula]
	if !ok {
		return engine.Rule{}, &CompileError{
			Rule:    spec.ID,
			Field:   "formula",
			Message: fmt.Sprintf("unknown formula %q", spec.Formula),
			Pos:     pos,
		}
	}

	if !sameSet(spec.Requires, b.params) {
		return engine.Rule{}, &CompileError{
			Rule:  spec.ID,
			Field: "requires",
			Message: fmt.Sprintf("formula %q takes %v, rule requires %v",
				spec.Formula, b.params, spec.Requires),
			Pos: pos,
		}
	}

	rule := engine.Rule{
		ID:          spec.ID,
		Provides:    spec.Provides,
		Requires:    spec.Requires,
		Priority:    spec.Priority,
		Kind:        engine.Kind(spec.Kind),
		FormulaName: spec.Formula,
		Formula:     b.fn,
	}
	if spec.hasExplanation() {
		rule.Explanation = &engine.Explanation{
			Equation:           spec.Equation,
			RearrangedEquation: spec.RearrangedEquation,
			AlgebraSteps:       spec.AlgebraSteps,
			EvaluationSteps:    spec.EvaluationSteps,
		}
	}
	return rule, nil
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	sa, sb := slices.Clone(a), slices.Clone(b)
	slices.Sort(sa)
	slices.Sort(sb)
	return slices.Equal(sa, sb)
}

// CompileError reports a catalog problem with its CUE position when known.
type CompileError struct {
	Rule    string
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	field := e.Field
	if e.Rule != "" {
		field = e.Rule + "." + e.Field
	}
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			field, e.Message)
	}
	return fmt.Sprintf("%s: %s", field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	// CUE errors may contain multiple errors
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
