package report

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"io"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/stacktrail/guardrail/internal/checker"
)

const (
	markdownTemplatePath = "templates/report.md"
	htmlTemplatePath     = "templates/report.html"
)

//go:embed templates/report.md templates/report.html
var templateFS embed.FS

var (
	templateFuncs = map[string]any{
		"add":         func(a, b int) int { return a + b },
		"formatTime":  formatTimestamp,
		"money":       FormatMoney,
		"yesNo":       yesNo,
		"recordLabel": recordLabel,
		"certLabel":   certLabel,
		"joinIssues":  joinIssues,
		"badgeClass":  badgeClass,
	}

	markdownTemplate = template.Must(
		template.New("report.md").Funcs(templateFuncs).ParseFS(templateFS, markdownTemplatePath),
	)
	htmlTemplate = htmltemplate.Must(
		htmltemplate.New("report.html").Funcs(templateFuncs).ParseFS(templateFS, htmlTemplatePath),
	)
)

// Markdown renders the report as GitHub-flavoured markdown.
func Markdown(r *Report) (string, error) {
	var buf bytes.Buffer
	if err := markdownTemplate.Execute(&buf, r); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// HTML renders the report as a standalone HTML page.
func HTML(r *Report) (string, error) {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, r); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return buf.String(), nil
}

// WriteText writes a plain-text rendering suitable for a terminal.
func WriteText(w io.Writer, r *Report) error {
	var b strings.Builder
	if r.Organization != "" {
		fmt.Fprintf(&b, "Organization: %s (%s)\n", r.Organization, r.BusinessType)
	}
	fmt.Fprintf(&b, "Summary: %s\n", r.Summary)

	if s := r.Score; s != nil {
		fmt.Fprintf(&b, "Insurance readiness: %s\n", s.InsuranceReadiness.Label())
		fmt.Fprintf(&b, "Estimated downtime: %d-%d days\n", s.DowntimeDays.Low, s.DowntimeDays.High)
		fmt.Fprintf(&b, "Estimated breach cost: %s - %s\n", FormatMoney(s.BreachCost.Low), FormatMoney(s.BreachCost.High))
	}
	if len(r.TopRisks) > 0 {
		b.WriteString("\nTop risks:\n")
		for i, risk := range r.TopRisks {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, risk)
		}
	}
	for _, rec := range r.Recommendations {
		fmt.Fprintf(&b, "\n%s\n", rec.Title)
		for _, step := range rec.Steps {
			fmt.Fprintf(&b, "  - %s\n", step)
		}
	}
	if s := r.Scan; s != nil {
		fmt.Fprintf(&b, "\nDomain scan: %s (%s)\n", s.Domain, s.Status)
		if len(s.Issues) > 0 {
			fmt.Fprintf(&b, "  Issues: %s\n", joinIssues(s.Issues))
		}
		if failed := s.FailedChecks(); len(failed) > 0 {
			fmt.Fprintf(&b, "  Checks that could not complete: %s\n", strings.Join(failed, ", "))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02 15:04 MST")
}

// FormatMoney renders whole dollars with thousands separators, e.g. $25,384.
func FormatMoney(amount int) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := strconv.Itoa(amount)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return sign + "$" + b.String()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func recordLabel(r checker.RecordCheck) string {
	switch {
	case r.Failed():
		return "lookup failed: " + r.Error
	case r.Present:
		return "present"
	default:
		return "missing"
	}
}

func certLabel(c checker.CertificateCheck) string {
	if c.Failed() || !c.Valid {
		if c.Error != "" {
			return "invalid: " + c.Error
		}
		return "invalid"
	}
	if c.DaysUntilExpiry == nil {
		return "valid"
	}
	return fmt.Sprintf("valid, expires in %d days", *c.DaysUntilExpiry)
}

func joinIssues(issues []checker.Issue) string {
	parts := make([]string, len(issues))
	for i, issue := range issues {
		parts[i] = string(issue)
	}
	return strings.Join(parts, ", ")
}

func badgeClass(value string) string {
	return "badge-" + strings.ToLower(strings.TrimSpace(value))
}
