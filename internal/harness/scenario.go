package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/n-tennyson/physics-simulator/internal/engine"
	"github.com/n-tennyson/physics-simulator/internal/ir"
)

// Scenario is a named sequence of solve steps with expectations.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Steps are solved in order against the same engine.
	Steps []Step `yaml:"steps"`
}

// Step is one solve request.
type Step struct {
	Target string    `yaml:"target"`
	Knowns ir.Knowns `yaml:"knowns"`

	// Expect is optional; without it the step is only recorded.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect describes the expected outcome of a step.
// Error is exclusive with Result and Rule.
type Expect struct {
	// Result is a number or a two-element list of numbers.
	Result interface{} `yaml:"result,omitempty"`

	// Rule is the expected rule ID.
	Rule string `yaml:"rule,omitempty"`

	// Error is the expected engine.ErrorCode.
	Error string `yaml:"error,omitempty"`

	// Tolerance bounds the absolute difference per number.
	// Defaults to DefaultTolerance.
	Tolerance float64 `yaml:"tolerance,omitempty"`
}

// DefaultTolerance is used when Expect.Tolerance is zero.
const DefaultTolerance = 1e-9

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "expects:" vs "expect:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if step.Target == "" {
			return fmt.Errorf("steps[%d]: target is required", i)
		}
		if step.Knowns == nil {
			return fmt.Errorf("steps[%d]: knowns is required (use {} if none)", i)
		}
		if step.Expect != nil {
			if err := validateExpect(i, step.Expect); err != nil {
				return err
			}
		}
	}

	return nil
}

func validateExpect(index int, e *Expect) error {
	if e.Error != "" {
		if !engine.ValidErrorCodes[engine.ErrorCode(e.Error)] {
			return fmt.Errorf("steps[%d].expect: unknown error code %q", index, e.Error)
		}
		if e.Result != nil || e.Rule != "" {
			return fmt.Errorf("steps[%d].expect: error cannot be combined with result or rule", index)
		}
		return nil
	}

	if e.Result == nil && e.Rule == "" {
		return fmt.Errorf("steps[%d].expect: one of result, rule, or error is required", index)
	}
	if e.Result != nil {
		if _, err := expectedValue(e.Result); err != nil {
			return fmt.Errorf("steps[%d].expect.result: %w", index, err)
		}
	}
	if e.Tolerance < 0 {
		return fmt.Errorf("steps[%d].expect: tolerance must be non-negative", index)
	}

	return nil
}

// expectedValue converts a decoded YAML result into an ir.Value.
func expectedValue(raw interface{}) (ir.Value, error) {
	if list, ok := raw.([]interface{}); ok {
		if len(list) != 2 {
			return ir.Value{}, fmt.Errorf("list must have exactly 2 numbers, got %d", len(list))
		}
		first, err := toFloat(list[0])
		if err != nil {
			return ir.Value{}, err
		}
		second, err := toFloat(list[1])
		if err != nil {
			return ir.Value{}, err
		}
		return ir.Pair(first, second), nil
	}

	f, err := toFloat(raw)
	if err != nil {
		return ir.Value{}, err
	}
	return ir.Scalar(f), nil
}

func toFloat(v interface{}) (float64, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case float64:
		return n, nil
	default:
		return 0, fmt.Errorf("expected a number, got %T", v)
	}
}
