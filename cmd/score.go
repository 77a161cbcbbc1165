package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/stacktrail/guardrail/internal/domain/assessment"
	"github.com/stacktrail/guardrail/internal/report"
	"github.com/stacktrail/guardrail/internal/scoring"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score an assessment questionnaire",
	Long: `Score reads an assessment file (YAML or JSON) with an "organization"
profile and "answers" to the twelve checklist questions, then prints the cyber
health score, risk band, insurance readiness, downtime and breach cost
estimates and the prioritized findings.`,
	Example: `  guardrail score --input assessment.yaml
  guardrail score --input assessment.json -o json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx := getAppContext(cmd)
		input, _ := cmd.Flags().GetString("input")

		doc, err := loadAssessment(input)
		if err != nil {
			return err
		}

		result := scoring.Score(doc.Organization, doc.Answers)
		appCtx.Logger.Infow("assessment scored",
			"organization", doc.Organization.Name,
			"score", result.Score,
			"risk_band", result.RiskBand,
			"findings", len(result.Findings))

		return writeOutput(cmd.OutOrStdout(), appCtx.Config.Output.Format, result, func(w io.Writer) error {
			return printScore(w, doc.Organization, result)
		})
	},
}

func printScore(w io.Writer, profile assessment.Profile, result *scoring.Result) error {
	if profile.Name != "" {
		fmt.Fprintf(w, "%s %s (%s)\n", colorBold("Organization:"), profile.Name, profile.BusinessType.Label())
	}
	fmt.Fprintf(w, "%s %d/100 (%s risk)\n", colorBold("Cyber Health Score:"), result.Score, formatBandWithColor(result.RiskBand))
	fmt.Fprintf(w, "Insurance readiness: %s\n", formatReadinessWithColor(result.InsuranceReadiness))
	fmt.Fprintf(w, "Estimated downtime: %d-%d days\n", result.DowntimeDays.Low, result.DowntimeDays.High)
	fmt.Fprintf(w, "Estimated breach cost: %s - %s\n", report.FormatMoney(result.BreachCost.Low), report.FormatMoney(result.BreachCost.High))

	if len(result.Findings) == 0 {
		fmt.Fprintf(w, "\n%s No findings, every checklist item is covered.\n", colorSuccess("✓"))
		return nil
	}

	fmt.Fprintf(w, "\nFindings (%d), highest priority first:\n", len(result.Findings))
	for i, f := range result.Findings {
		fmt.Fprintf(w, "  %2d. [%s] %s\n", i+1, formatSeverityWithColor(f.Severity), f.Title)
		fmt.Fprintf(w, "      priority %.2f | ~%d min | -%d%% risk | %s\n",
			f.PriorityScore, f.TimeToFixMinutes, f.EstimatedRiskReductionPct, f.Category)
	}
	return nil
}

func init() {
	scoreCmd.Flags().StringP("input", "i", "", "assessment file (YAML or JSON)")
	_ = scoreCmd.MarkFlagRequired("input")
}
