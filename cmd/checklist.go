package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/stacktrail/guardrail/internal/domain/assessment"
	"github.com/stacktrail/guardrail/internal/scoring"
)

// ChecklistItem describes one questionnaire key together with the finding it
// produces when left unanswered.
type ChecklistItem struct {
	Key              assessment.ChecklistKey `json:"key" yaml:"key"`
	Weight           float64                 `json:"weight" yaml:"weight"`
	Title            string                  `json:"title" yaml:"title"`
	Severity         scoring.Severity        `json:"severity" yaml:"severity"`
	Category         scoring.Category        `json:"category" yaml:"category"`
	TimeToFixMinutes int                     `json:"time_to_fix_minutes" yaml:"time_to_fix_minutes"`
}

var checklistCmd = &cobra.Command{
	Use:   "checklist",
	Short: "List the questionnaire keys, their weights and remediation titles",
	Long: `Checklist prints the twelve questionnaire keys in the order they are
asked. Answers are yes, no, partial or enforced; a missing or unknown answer
counts as no. Partial answers carry half the penalty.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx := getAppContext(cmd)
		items := getChecklistCatalog()
		return writeOutput(cmd.OutOrStdout(), appCtx.Config.Output.Format, items, func(w io.Writer) error {
			return printChecklist(w, items)
		})
	},
}

func getChecklistCatalog() []ChecklistItem {
	keys := assessment.ChecklistKeys()
	items := make([]ChecklistItem, 0, len(keys))
	for _, key := range keys {
		item := ChecklistItem{Key: key, Weight: scoring.Weight(key)}
		if def, ok := scoring.LookupDefinition(key); ok {
			item.Title = def.Title
			item.Severity = def.Severity
			item.Category = def.Category
			item.TimeToFixMinutes = def.TimeToFixMinutes
		}
		items = append(items, item)
	}
	return items
}

func printChecklist(w io.Writer, items []ChecklistItem) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tWEIGHT\tSEVERITY\tFIX (MIN)\tTITLE")
	for _, item := range items {
		fmt.Fprintf(tw, "%s\t%.0f\t%s\t%d\t%s\n", item.Key, item.Weight, item.Severity, item.TimeToFixMinutes, item.Title)
	}
	return tw.Flush()
}
