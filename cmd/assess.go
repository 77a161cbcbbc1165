package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/stacktrail/guardrail/internal/checker"
	"github.com/stacktrail/guardrail/internal/report"
	"github.com/stacktrail/guardrail/internal/scoring"
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Score a questionnaire, scan its primary domain and print the combined report",
	Long: `Assess runs the whole check-up in one step: the questionnaire is scored,
the organization's primary domain is scanned (example.com when none is set)
and both are combined into a report with the top risks, their remediation
steps and ticket descriptions that include any checklist notes.`,
	Example: `  guardrail assess --input assessment.yaml
  guardrail assess --input assessment.yaml --no-scan -o json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx := getAppContext(cmd)
		input, _ := cmd.Flags().GetString("input")
		noScan, _ := cmd.Flags().GetBool("no-scan")

		doc, err := loadAssessment(input)
		if err != nil {
			return err
		}
		result := scoring.Score(doc.Organization, doc.Answers)

		var scan *checker.ScanResult
		if !noScan {
			domain, err := checker.NormalizeDomain(doc.Organization.ScanDomain())
			if err != nil {
				return &InvalidDomainError{Input: doc.Organization.ScanDomain(), Err: err}
			}
			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()
			scan = newScanner(appCtx).Scan(ctx, domain)
		}

		rep := report.Build(doc.Organization, result, scan)
		rep.AttachTickets(doc.Notes, nil)
		appCtx.Logger.Infow("assessment complete",
			"organization", doc.Organization.Name,
			"score", result.Score,
			"scanned", scan != nil)

		return writeOutput(cmd.OutOrStdout(), appCtx.Config.Output.Format, rep, func(w io.Writer) error {
			if err := report.WriteText(w, rep); err != nil {
				return err
			}
			if scan != nil {
				fmt.Fprintln(w)
				printScanResult(w, scan)
			}
			return nil
		})
	},
}

func init() {
	assessCmd.Flags().StringP("input", "i", "", "assessment file (YAML or JSON)")
	assessCmd.Flags().Bool("no-scan", false, "skip the domain scan")
	_ = assessCmd.MarkFlagRequired("input")
}
