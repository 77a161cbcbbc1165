package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

const pdfPageBreakY = 260

// PDF renders the report as an A4 document using the core Arial font.
func PDF(r *Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	title := "Cyber Health Report"
	if r.Organization != "" {
		title += ": " + r.Organization
	}
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Business type: %s | Generated: %s", r.BusinessType, formatTimestamp(r.GeneratedAt))), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	section(pdf, "Summary")
	pdf.MultiCell(0, 5, tr(r.Summary), "", "", false)
	pdf.Ln(3)

	if s := r.Score; s != nil {
		section(pdf, "Score")
		rows := [][2]string{
			{"Cyber Health Score", fmt.Sprintf("%d/100", s.Score)},
			{"Risk band", string(s.RiskBand)},
			{"Insurance readiness", s.InsuranceReadiness.Label()},
			{"Estimated downtime", fmt.Sprintf("%d-%d days", s.DowntimeDays.Low, s.DowntimeDays.High)},
			{"Estimated breach cost", FormatMoney(s.BreachCost.Low) + " - " + FormatMoney(s.BreachCost.High)},
		}
		for _, row := range rows {
			pdf.CellFormat(60, 6, row[0], "1", 0, "", false, 0, "")
			pdf.CellFormat(0, 6, tr(row[1]), "1", 1, "", false, 0, "")
		}
		pdf.Ln(3)
	}

	if len(r.Recommendations) > 0 {
		section(pdf, "Top risks and recommendations")
		for i, rec := range r.Recommendations {
			if pdf.GetY() > pdfPageBreakY {
				pdf.AddPage()
			}
			pdf.SetFont("Arial", "B", 10)
			pdf.CellFormat(0, 6, tr(fmt.Sprintf("%d. %s", i+1, rec.Title)), "", 1, "", false, 0, "")
			pdf.SetFont("Arial", "", 9)
			for _, step := range rec.Steps {
				pdf.MultiCell(0, 5, tr("  - "+step), "", "", false)
			}
			pdf.Ln(1)
		}
		pdf.Ln(2)
	}

	if s := r.Scan; s != nil {
		if pdf.GetY() > pdfPageBreakY {
			pdf.AddPage()
		}
		section(pdf, "Domain scan: "+s.Domain)
		status := fmt.Sprintf("Overall status: %s", s.Status)
		if len(s.Issues) > 0 {
			status += " (" + joinIssues(s.Issues) + ")"
		}
		pdf.CellFormat(0, 6, tr(status), "", 1, "", false, 0, "")
		rows := [][2]string{
			{"MX", recordLabel(s.MX)},
			{"SPF", recordLabel(s.SPF)},
			{"DMARC", recordLabel(s.DMARC)},
			{"DKIM (low confidence)", recordLabel(s.DKIM)},
			{"TLS certificate", certLabel(s.Certificate)},
			{"HTTPS", yesNo(s.Redirect.HTTPSOK)},
			{"HTTP to HTTPS", yesNo(s.Redirect.RedirectsToHTTPS)},
			{"HSTS", yesNo(s.Headers.HSTS)},
			{"nosniff", yesNo(s.Headers.XContentTypeOptions)},
		}
		for _, row := range rows {
			pdf.CellFormat(60, 6, row[0], "1", 0, "", false, 0, "")
			pdf.CellFormat(0, 6, tr(truncate(row[1], 80)), "1", 1, "", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, title, "", 1, "", false, 0, "")
	pdf.SetFont("Arial", "", 10)
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
