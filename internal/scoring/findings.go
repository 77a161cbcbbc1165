package scoring

import (
	"sort"

	"github.com/stacktrail/guardrail/internal/domain/assessment"
)

// Severity of a finding.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Weight is the severity factor used in priority scoring.
func (s Severity) Weight() float64 {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	default:
		return 1
	}
}

// Category groups findings by control area.
type Category string

const (
	CategoryIdentity   Category = "identity"
	CategoryEmail      Category = "email"
	CategoryBackups    Category = "backups"
	CategoryDevices    Category = "devices"
	CategoryTraining   Category = "training"
	CategoryDataAccess Category = "data_access"
	CategoryPlanning   Category = "planning"
	CategoryPayments   Category = "payments"
)

// Finding is one remediation item generated for an unmet checklist key.
type Finding struct {
	Key                       assessment.ChecklistKey `json:"key" yaml:"key"`
	Title                     string                  `json:"title" yaml:"title"`
	Severity                  Severity                `json:"severity" yaml:"severity"`
	Category                  Category                `json:"category" yaml:"category"`
	Impact                    string                  `json:"impact" yaml:"impact"`
	TimeToFixMinutes          int                     `json:"time_to_fix_minutes" yaml:"time_to_fix_minutes"`
	EstimatedRiskReductionPct int                     `json:"estimated_risk_reduction_pct" yaml:"estimated_risk_reduction_pct"`
	Explanation               string                  `json:"explanation" yaml:"explanation"`
	RemediationSteps          []string                `json:"remediation_steps" yaml:"remediation_steps"`
	PriorityScore             float64                 `json:"priority_score" yaml:"priority_score"`
}

// FindingDefinition is the static remediation content for one checklist key.
type FindingDefinition struct {
	Key                       assessment.ChecklistKey
	Title                     string
	Severity                  Severity
	Category                  Category
	Impact                    string
	TimeToFixMinutes          int
	EstimatedRiskReductionPct int
	Explanation               string
	RemediationSteps          []string
}

var findingCatalog = []FindingDefinition{
	{
		Key:                       assessment.KeyMFAAll,
		Title:                     "2-step login (MFA) for everyone",
		Severity:                  SeverityHigh,
		Category:                  CategoryIdentity,
		Impact:                    "Account takeover risk",
		TimeToFixMinutes:          120,
		EstimatedRiskReductionPct: 60,
		Explanation:               "MFA greatly reduces account takeover.",
		RemediationSteps: []string{
			"Enable MFA in your identity provider.",
			"Require it for all users.",
		},
	},
	{
		Key:                       assessment.KeyAdminProtection,
		Title:                     "Admin accounts protected",
		Severity:                  SeverityHigh,
		Category:                  CategoryIdentity,
		Impact:                    "Privilege escalation risk",
		TimeToFixMinutes:          90,
		EstimatedRiskReductionPct: 50,
		Explanation:               "Admins need extra protection.",
		RemediationSteps: []string{
			"Use separate admin accounts.",
			"Require MFA for admins.",
		},
	},
	{
		Key:                       assessment.KeySharedLogins,
		Title:                     "No shared logins for critical systems",
		Severity:                  SeverityHigh,
		Category:                  CategoryIdentity,
		Impact:                    "Unauditable access",
		TimeToFixMinutes:          180,
		EstimatedRiskReductionPct: 55,
		Explanation:               "Shared logins prevent accountability.",
		RemediationSteps: []string{
			"Issue individual accounts.",
			"Use SSO or password manager for teams.",
		},
	},
	{
		Key:                       assessment.KeyMFAPayments,
		Title:                     "MFA on payment platforms",
		Severity:                  SeverityHigh,
		Category:                  CategoryPayments,
		Impact:                    "Payment fraud risk",
		TimeToFixMinutes:          60,
		EstimatedRiskReductionPct: 50,
		Explanation:               "Payment dashboards are high-value targets.",
		RemediationSteps: []string{
			"Turn on MFA in Stripe/Square/QuickBooks.",
			"Require for all approvers.",
		},
	},
	{
		Key:                       assessment.KeyEmailForwarding,
		Title:                     "Email forwarding restricted",
		Severity:                  SeverityMedium,
		Category:                  CategoryEmail,
		Impact:                    "Data exfiltration risk",
		TimeToFixMinutes:          90,
		EstimatedRiskReductionPct: 35,
		Explanation:               "Unrestricted forwarding can leak mail.",
		RemediationSteps: []string{
			"Review forwarding rules in Google/Microsoft admin.",
			"Restrict or disable automatic forwarding.",
		},
	},
	{
		Key:                       assessment.KeyFileSharingLimited,
		Title:                     "File sharing limited to organization",
		Severity:                  SeverityMedium,
		Category:                  CategoryDataAccess,
		Impact:                    "Data exposure",
		TimeToFixMinutes:          120,
		EstimatedRiskReductionPct: 40,
		Explanation:               "External sharing increases leak risk.",
		RemediationSteps: []string{
			"Set sharing defaults to internal only.",
			"Review existing shared links.",
		},
	},
	{
		Key:                       assessment.KeyAccessReview,
		Title:                     "Regular access review",
		Severity:                  SeverityMedium,
		Category:                  CategoryDataAccess,
		Impact:                    "Overprivileged users",
		TimeToFixMinutes:          180,
		EstimatedRiskReductionPct: 35,
		Explanation:               "Regular reviews catch over-access.",
		RemediationSteps: []string{
			"Quarterly review of who has access to what.",
			"Remove access when roles change.",
		},
	},
	{
		Key:                       assessment.KeyIndependentBackups,
		Title:                     "Independent backups outside SaaS",
		Severity:                  SeverityHigh,
		Category:                  CategoryBackups,
		Impact:                    "Data loss risk",
		TimeToFixMinutes:          240,
		EstimatedRiskReductionPct: 60,
		Explanation:               "Relying only on provider backups is risky.",
		RemediationSteps: []string{
			"Use a backup tool (e.g. Backupify, Spanning).",
			"Verify backups are not in same tenant.",
		},
	},
	{
		Key:                       assessment.KeyRestoreTested,
		Title:                     "Restore tested recently",
		Severity:                  SeverityMedium,
		Category:                  CategoryBackups,
		Impact:                    "Restore failure risk",
		TimeToFixMinutes:          120,
		EstimatedRiskReductionPct: 40,
		Explanation:               "Untested backups often fail when needed.",
		RemediationSteps: []string{
			"Run a test restore at least every 6 months.",
			"Document the steps.",
		},
	},
	{
		Key:                       assessment.KeyPhishingTraining,
		Title:                     "Phishing training for staff",
		Severity:                  SeverityMedium,
		Category:                  CategoryTraining,
		Impact:                    "Click-through risk",
		TimeToFixMinutes:          120,
		EstimatedRiskReductionPct: 35,
		Explanation:               "Training reduces successful phishing.",
		RemediationSteps: []string{
			"Run quarterly phishing awareness.",
			"Use a short simulated phishing test.",
		},
	},
	{
		Key:                       assessment.KeyIncidentPlan,
		Title:                     "Incident response plan",
		Severity:                  SeverityHigh,
		Category:                  CategoryPlanning,
		Impact:                    "Chaos during incidents",
		TimeToFixMinutes:          180,
		EstimatedRiskReductionPct: 45,
		Explanation:               "A plan reduces response time.",
		RemediationSteps: []string{
			"Write a one-page plan: who to call, what to do first.",
			"Share with key staff.",
		},
	},
	{
		Key:                       assessment.KeyDomainEmailProtection,
		Title:                     "Domain email protection (SPF/DKIM/DMARC)",
		Severity:                  SeverityMedium,
		Category:                  CategoryEmail,
		Impact:                    "Spoofing and deliverability",
		TimeToFixMinutes:          180,
		EstimatedRiskReductionPct: 45,
		Explanation:               "SPF/DKIM/DMARC reduce spoofing.",
		RemediationSteps: []string{
			"Add SPF, DKIM, and DMARC records at your DNS host.",
			"Start with DMARC policy none, then tighten.",
		},
	},
}

// Catalog returns a copy of the static finding definitions in questionnaire order.
func Catalog() []FindingDefinition {
	out := make([]FindingDefinition, len(findingCatalog))
	for i, def := range findingCatalog {
		def.RemediationSteps = append([]string(nil), def.RemediationSteps...)
		out[i] = def
	}
	return out
}

// LookupDefinition returns the static definition for key.
func LookupDefinition(key assessment.ChecklistKey) (FindingDefinition, bool) {
	for _, def := range findingCatalog {
		if def.Key == key {
			def.RemediationSteps = append([]string(nil), def.RemediationSteps...)
			return def, true
		}
	}
	return FindingDefinition{}, false
}

// PriorityScore ranks a finding by expected value of remediation:
// severity weight x risk reduction x multiplier / effort.
func PriorityScore(def FindingDefinition, multiplier float64) float64 {
	minutes := def.TimeToFixMinutes
	if minutes < 1 {
		minutes = 1
	}
	return def.Severity.Weight() * float64(def.EstimatedRiskReductionPct) * multiplier / float64(minutes)
}

// GenerateFindings builds the full finding list for answers, one per key whose
// answer is not yes, enforced or partial, sorted by descending priority. Ties
// keep questionnaire order.
func GenerateFindings(answers assessment.AnswerSet, multipliers map[assessment.ChecklistKey]float64) []Finding {
	findings := make([]Finding, 0, len(findingCatalog))
	for _, def := range findingCatalog {
		if answers.Get(def.Key).Addressed() {
			continue
		}
		mult, ok := multipliers[def.Key]
		if !ok {
			mult = 1.0
		}
		findings = append(findings, Finding{
			Key:                       def.Key,
			Title:                     def.Title,
			Severity:                  def.Severity,
			Category:                  def.Category,
			Impact:                    def.Impact,
			TimeToFixMinutes:          def.TimeToFixMinutes,
			EstimatedRiskReductionPct: def.EstimatedRiskReductionPct,
			Explanation:               def.Explanation,
			RemediationSteps:          append([]string(nil), def.RemediationSteps...),
			PriorityScore:             PriorityScore(def, mult),
		})
	}

	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].PriorityScore > findings[j].PriorityScore
	})
	return findings
}
