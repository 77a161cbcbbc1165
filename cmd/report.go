package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/stacktrail/guardrail/internal/checker"
	"github.com/stacktrail/guardrail/internal/report"
	"github.com/stacktrail/guardrail/internal/scoring"
	"github.com/stacktrail/guardrail/internal/shared/constants"
)

const (
	reportFormatMarkdown = "md"
	reportFormatHTML     = "html"
	reportFormatPDF      = "pdf"
	defaultPDFFilename   = "report.pdf"
)

var reportFormats = []string{formatText, formatJSON, formatYAML, reportFormatMarkdown, reportFormatHTML, reportFormatPDF}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a report from an assessment and an optional saved scan",
	Long: `Report scores the assessment file and combines it with a scan result saved
earlier (guardrail scan -o json > scan.json). The report carries the summary
line, the top three risks with remediation steps and a ticket description for
each of them, including any checklist notes from the assessment file.`,
	Example: `  guardrail report --input assessment.yaml --markdown
  guardrail report --input assessment.yaml --scan-result scan.json --format html --out report.html
  guardrail report --input assessment.yaml --format pdf`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx := getAppContext(cmd)
		input, _ := cmd.Flags().GetString("input")
		scanPath, _ := cmd.Flags().GetString("scan-result")
		format, _ := cmd.Flags().GetString("format")
		markdown, _ := cmd.Flags().GetBool("markdown")
		outPath, _ := cmd.Flags().GetString("out")

		format = strings.ToLower(strings.TrimSpace(format))
		if markdown {
			format = reportFormatMarkdown
		}
		if format == "" {
			format = appCtx.Config.Output.Format
		}
		if !isReportFormat(format) {
			return &UnsupportedFormatError{Format: format, Allowed: reportFormats}
		}

		doc, err := loadAssessment(input)
		if err != nil {
			return err
		}
		var scan *checker.ScanResult
		if scanPath != "" {
			if scan, err = loadScanResult(scanPath); err != nil {
				return err
			}
		}

		rep := report.Build(doc.Organization, scoring.Score(doc.Organization, doc.Answers), scan)
		rep.AttachTickets(doc.Notes, nil)

		content, err := renderReport(rep, format)
		if err != nil {
			return fmt.Errorf("failed to generate report: %w", err)
		}

		if format == reportFormatPDF && outPath == "" {
			outPath = defaultPDFFilename
		}
		if outPath == "" {
			_, err := cmd.OutOrStdout().Write(content)
			return err
		}
		if err := os.WriteFile(outPath, content, constants.DefaultFilePerm); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		appCtx.Logger.Infow("report written", "path", outPath, "format", format)
		fmt.Fprintf(cmd.OutOrStdout(), "Report generated: %s\n", outPath)
		fmt.Fprintf(cmd.OutOrStdout(), "Format: %s\n", format)
		return nil
	},
}

func isReportFormat(format string) bool {
	for _, f := range reportFormats {
		if f == format {
			return true
		}
	}
	return false
}

func renderReport(rep *report.Report, format string) ([]byte, error) {
	switch format {
	case reportFormatMarkdown:
		md, err := report.Markdown(rep)
		return []byte(md), err
	case reportFormatHTML:
		html, err := report.HTML(rep)
		return []byte(html), err
	case reportFormatPDF:
		return report.PDF(rep)
	default:
		var buf strings.Builder
		err := writeOutput(&buf, format, rep, func(w io.Writer) error {
			return report.WriteText(w, rep)
		})
		return []byte(buf.String()), err
	}
}

func init() {
	reportCmd.Flags().StringP("input", "i", "", "assessment file (YAML or JSON)")
	reportCmd.Flags().String("scan-result", "", "saved scan result (.json or .yaml)")
	reportCmd.Flags().String("format", "", "report format: text, json, yaml, md, html or pdf (default from --output)")
	reportCmd.Flags().Bool("markdown", false, "shorthand for --format md")
	reportCmd.Flags().String("out", "", "write the report to this file instead of stdout")
	_ = reportCmd.MarkFlagRequired("input")
}
