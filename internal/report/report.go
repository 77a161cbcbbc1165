package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/stacktrail/guardrail/internal/checker"
	"github.com/stacktrail/guardrail/internal/domain/assessment"
	"github.com/stacktrail/guardrail/internal/scoring"
	"github.com/stacktrail/guardrail/internal/shared/constants"
)

const emptySummary = "No assessment or scan data yet."

// Recommendation is one top finding with its remediation steps.
type Recommendation struct {
	Key   assessment.ChecklistKey `json:"key" yaml:"key"`
	Title string                  `json:"title" yaml:"title"`
	Steps []string                `json:"steps" yaml:"steps"`
}

// Ticket is a ready-to-file work item for one top finding.
type Ticket struct {
	Key         assessment.ChecklistKey `json:"key" yaml:"key"`
	Title       string                  `json:"title" yaml:"title"`
	Description string                  `json:"description" yaml:"description"`
}

// Report is the combined view over a scoring result and a domain scan.
// Either input may be missing.
type Report struct {
	Organization    string              `json:"organization" yaml:"organization"`
	BusinessType    string              `json:"business_type" yaml:"business_type"`
	GeneratedAt     time.Time           `json:"generated_at" yaml:"generated_at"`
	Summary         string              `json:"summary" yaml:"summary"`
	TopRisks        []string            `json:"top_risks" yaml:"top_risks"`
	Recommendations []Recommendation    `json:"recommendations" yaml:"recommendations"`
	Tickets         []Ticket            `json:"tickets,omitempty" yaml:"tickets,omitempty"`
	Score           *scoring.Result     `json:"score,omitempty" yaml:"score,omitempty"`
	Scan            *checker.ScanResult `json:"scan,omitempty" yaml:"scan,omitempty"`
}

// Build assembles a report. result and scan may each be nil.
func Build(profile assessment.Profile, result *scoring.Result, scan *checker.ScanResult) *Report {
	r := &Report{
		Organization:    profile.Name,
		BusinessType:    profile.BusinessType.Label(),
		GeneratedAt:     time.Now().UTC(),
		TopRisks:        []string{},
		Recommendations: []Recommendation{},
		Score:           result,
		Scan:            scan,
	}

	var parts []string
	if result != nil {
		parts = append(parts, fmt.Sprintf("Cyber Health Score: %d/100 (%s risk).", result.Score, result.RiskBand))
		for _, f := range topFindings(result.Findings) {
			r.TopRisks = append(r.TopRisks, f.Title)
			r.Recommendations = append(r.Recommendations, Recommendation{
				Key:   f.Key,
				Title: f.Title,
				Steps: append([]string(nil), f.RemediationSteps...),
			})
		}
	}
	if scan != nil {
		parts = append(parts, fmt.Sprintf("Domain scan: %s. SPF/DMARC/TLS checked.", scan.Status))
	}

	r.Summary = strings.Join(parts, " ")
	if r.Summary == "" {
		r.Summary = emptySummary
	}
	return r
}

// AttachTickets adds a ticket for every top finding, folding in the matching
// checklist note. Suggestions are keyed by checklist key as well.
func (r *Report) AttachTickets(notes map[assessment.ChecklistKey]string, suggestions map[assessment.ChecklistKey][]string) {
	r.Tickets = nil
	if r.Score == nil {
		return
	}
	for _, f := range topFindings(r.Score.Findings) {
		r.Tickets = append(r.Tickets, Ticket{
			Key:         f.Key,
			Title:       f.Title,
			Description: TicketDescription(f, notes[f.Key], suggestions[f.Key]),
		})
	}
}

// topFindings returns the highest-priority findings. Findings arrive sorted
// from the scoring engine.
func topFindings(findings []scoring.Finding) []scoring.Finding {
	if len(findings) > constants.TopRiskCount {
		return findings[:constants.TopRiskCount]
	}
	return findings
}

// TicketDescription builds the body of a work item for a finding: the
// explanation followed by optional to-do, notes and suggestion sections.
func TicketDescription(f scoring.Finding, note string, suggestions []string) string {
	var b strings.Builder
	b.WriteString(f.Explanation)
	if len(f.RemediationSteps) > 0 {
		b.WriteString("\n\nTo-do:\n")
		b.WriteString(bulletList(f.RemediationSteps))
	}
	if note != "" {
		b.WriteString("\n\nNotes: ")
		b.WriteString(note)
	}
	if len(suggestions) > 0 {
		b.WriteString("\n\nAI suggestions:\n")
		b.WriteString(bulletList(suggestions))
	}
	return b.String()
}

func bulletList(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + item
	}
	return strings.Join(lines, "\n")
}
