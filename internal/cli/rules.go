package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/n-tennyson/physics-simulator/internal/engine"
)

// RuleSummary is the JSON form of one catalog rule.
type RuleSummary struct {
	ID                 string   `json:"id"`
	Provides           string   `json:"provides"`
	Requires           []string `json:"requires"`
	Priority           int      `json:"priority"`
	Kind               string   `json:"kind"`
	Formula            string   `json:"formula"`
	Equation           string   `json:"equation,omitempty"`
	RearrangedEquation string   `json:"rearranged_equation,omitempty"`
}

// NewRulesCommand creates the rules command.
func NewRulesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the rule catalog",
		Long: `List the rules in catalog order.

Within a group, the rule with the lowest priority is tried first.

Examples:
  kinematics rules
  kinematics rules --format json
  kinematics rules --rules ./my-rules.cue`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRules(rootOpts, cmd)
		},
	}

	return cmd
}

func runRules(opts *RootOptions, cmd *cobra.Command) error {
	table, err := loadTable(opts)
	if err != nil {
		return err
	}

	rules := table.Rules()
	summaries := make([]RuleSummary, len(rules))
	for i, r := range rules {
		summaries[i] = summarize(r)
	}

	report := newReport(opts, cmd)
	if report.JSON {
		return report.Emit(summaries, nil)
	}

	w := report.Out
	fmt.Fprintf(w, "%-24s %-8s %-16s %-8s %-9s %s\n", "ID", "PROVIDES", "REQUIRES", "PRIORITY", "KIND", "EQUATION")
	for _, s := range summaries {
		fmt.Fprintf(w, "%-24s %-8s %-16s %-8d %-9s %s\n",
			s.ID, s.Provides, strings.Join(s.Requires, ","), s.Priority, s.Kind, s.Equation)
	}
	return nil
}

func summarize(r engine.Rule) RuleSummary {
	s := RuleSummary{
		ID:       r.ID,
		Provides: r.Provides,
		Requires: r.Requires,
		Priority: r.Priority,
		Kind:     string(r.Kind),
		Formula:  r.FormulaName,
	}
	if r.Explanation != nil {
		s.Equation = r.Explanation.Equation
		s.RearrangedEquation = r.Explanation.RearrangedEquation
	}
	return s
}
