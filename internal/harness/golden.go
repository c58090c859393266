package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/n-tennyson/physics-simulator/internal/engine"
	"github.com/n-tennyson/physics-simulator/internal/ir"
)

// Snapshot returns the canonical JSON record of a scenario run:
//
//	{"scenario_name":...,"steps":[{"knowns":{...},"solution":{...},"target":"v"}, ...]}
//
// A failed step carries "error":{"code":...,"message":...} instead of "solution".
func Snapshot(scenarioName string, result *Result) ([]byte, error) {
	steps := make([]any, len(result.Steps))
	for i, outcome := range result.Steps {
		steps[i] = outcome.canonical()
	}

	return ir.MarshalCanonical(map[string]any{
		"scenario_name": scenarioName,
		"steps":         steps,
	})
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the snapshot doesn't match.
func RunWithGolden(t *testing.T, eng *engine.Engine, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(eng, scenario)
	if err != nil {
		return nil, err
	}

	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against its golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	snapshot, err := Snapshot(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, snapshot)

	return nil
}

// GoldenPath returns the golden file location for a scenario under dir.
func GoldenPath(dir, scenarioName string) string {
	return filepath.Join(dir, scenarioName+".golden")
}

// WriteGolden writes the snapshot to dir, creating dir if needed.
func WriteGolden(dir, scenarioName string, result *Result) error {
	snapshot, err := Snapshot(scenarioName, result)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create golden directory: %w", err)
	}
	if err := os.WriteFile(GoldenPath(dir, scenarioName), snapshot, 0o644); err != nil {
		return fmt.Errorf("failed to write golden file: %w", err)
	}
	return nil
}

// CompareGolden reports whether the snapshot matches the golden file in dir.
// A missing golden file is an error, not a mismatch.
func CompareGolden(dir, scenarioName string, result *Result) (bool, error) {
	snapshot, err := Snapshot(scenarioName, result)
	if err != nil {
		return false, err
	}

	expected, err := os.ReadFile(GoldenPath(dir, scenarioName))
	if err != nil {
		if os.IsNotExist(err) {
			return false, fmt.Errorf("golden file not found: %s (run with --update to create)", GoldenPath(dir, scenarioName))
		}
		return false, fmt.Errorf("failed to read golden file: %w", err)
	}

	return bytes.Equal(snapshot, expected), nil
}
