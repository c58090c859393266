package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/n-tennyson/physics-simulator/internal/engine"
	"github.com/n-tennyson/physics-simulator/internal/harness"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Update    bool
	Filter    string // glob matched against the file name without extension
	GoldenDir string // defaults to <scenarios-dir>/golden
}

// ScenarioVerdict is the outcome of one scenario file.
type ScenarioVerdict struct {
	Name   string   `json:"name"`
	Pass   bool     `json:"pass"`
	Errors []string `json:"errors,omitempty"`
}

// RunSummary tallies the verdicts of a scenarios directory.
type RunSummary struct {
	Scenarios []ScenarioVerdict `json:"scenarios"`
	Passed    int               `json:"passed"`
	Failed    int               `json:"failed"`
	Total     int               `json:"total"`
}

func (s *RunSummary) record(v ScenarioVerdict) {
	s.Scenarios = append(s.Scenarios, v)
	s.Total++
	if v.Pass {
		s.Passed++
	} else {
		s.Failed++
	}
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <scenarios-dir>",
		Short: "Run solve scenarios",
		Long: `Run YAML solve scenarios against the rule catalog.

Every step is solved and checked against its expect block. When a golden
file named after the scenario exists, the recorded solutions must match it
byte for byte; --update rewrites the golden files instead.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (missing directory, bad filter, broken catalog)

Examples:
  kinematics test ./scenarios
  kinematics test ./scenarios --filter "time_*"
  kinematics test ./scenarios --golden ./golden --update
  kinematics test ./scenarios --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Update, "update", false, "rewrite golden files from the current solutions")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "only run scenarios whose file name matches this glob")
	cmd.Flags().StringVar(&opts.GoldenDir, "golden", "", "golden file directory (default <scenarios-dir>/golden)")

	return cmd
}

func runTests(opts *TestOptions, dir string, cmd *cobra.Command) error {
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return NewExitError(ExitCommandError, fmt.Sprintf("scenarios directory not found: %s", dir))
	}

	goldenDir := opts.GoldenDir
	if goldenDir == "" {
		goldenDir = filepath.Join(dir, "golden")
	}

	paths, err := scenarioPaths(dir, opts.Filter)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to find scenarios", err)
	}

	eng, err := loadEngine(opts.RootOptions)
	if err != nil {
		return err
	}

	report := newReport(opts.RootOptions, cmd)
	summary := RunSummary{Scenarios: []ScenarioVerdict{}}
	for _, path := range paths {
		report.Progressf("Solving %s", path)
		v := solveScenario(eng, path, goldenDir, opts.Update)
		summary.record(v)
		if !report.JSON {
			writeVerdict(report.Out, v)
		}
	}

	var problem *Problem
	if summary.Failed > 0 {
		problem = &Problem{
			Code:    CodeTestFailed,
			Message: fmt.Sprintf("%d of %d scenarios failed", summary.Failed, summary.Total),
		}
	}

	if report.JSON {
		if err := report.Emit(summary, problem); err != nil {
			return err
		}
	} else {
		writeSummary(report.Out, summary)
	}

	if problem != nil {
		return NewExitError(ExitFailure, problem.Message)
	}
	return nil
}

// scenarioPaths lists the .yaml and .yml files under dir in lexical order.
func scenarioPaths(dir, filter string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}
		ok, err := matchesFilter(filter, strings.TrimSuffix(d.Name(), ext))
		if err != nil {
			return err
		}
		if ok {
			paths = append(paths, path)
		}
		return nil
	})
	return paths, err
}

func matchesFilter(filter, name string) (bool, error) {
	if filter == "" {
		return true, nil
	}
	ok, err := filepath.Match(filter, name)
	if err != nil {
		return false, fmt.Errorf("invalid filter pattern %q: %w", filter, err)
	}
	return ok, nil
}

// solveScenario runs one scenario file and checks its solutions against
// the expect blocks and the golden file.
func solveScenario(eng *engine.Engine, path, goldenDir string, update bool) ScenarioVerdict {
	scenario, err := harness.LoadScenario(path)
	if err != nil {
		return failVerdict(filepath.Base(path), err.Error())
	}

	result, err := harness.Run(eng, scenario)
	if err != nil {
		return failVerdict(scenario.Name, "scenario aborted: "+err.Error())
	}

	name := scenario.Name
	if update {
		if err := harness.WriteGolden(goldenDir, scenario.Name, result); err != nil {
			return failVerdict(name, err.Error())
		}
		name += " (golden written)"
	} else if msg := checkGolden(goldenDir, scenario.Name, result); msg != "" {
		return failVerdict(name, msg)
	}

	if !result.Pass {
		return failVerdict(name, result.Errors...)
	}
	return ScenarioVerdict{Name: name, Pass: true}
}

// checkGolden returns a mismatch message, or "" when the solutions match
// or there is no golden file to match.
func checkGolden(dir, name string, result *harness.Result) string {
	path := harness.GoldenPath(dir, name)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return ""
	}

	match, err := harness.CompareGolden(dir, name, result)
	if err != nil {
		return err.Error()
	}
	if !match {
		return fmt.Sprintf("solutions differ from %s (rerun with --update to accept)", path)
	}
	return ""
}

func failVerdict(name string, errs ...string) ScenarioVerdict {
	return ScenarioVerdict{Name: name, Errors: errs}
}

func writeVerdict(w io.Writer, v ScenarioVerdict) {
	mark := "PASS"
	if !v.Pass {
		mark = "FAIL"
	}
	fmt.Fprintf(w, "%s  %s\n", mark, v.Name)
	for _, e := range v.Errors {
		fmt.Fprintf(w, "      %s\n", e)
	}
}

func writeSummary(w io.Writer, s RunSummary) {
	if s.Total == 0 {
		fmt.Fprintln(w, "No scenario files found.")
		return
	}
	fmt.Fprintf(w, "\n%d scenarios: %d passed, %d failed\n", s.Total, s.Passed, s.Failed)
}
