package scoring

import "github.com/stacktrail/guardrail/internal/domain/assessment"

// Readiness summarizes whether the organization meets baseline cyber-insurance
// underwriting expectations.
type Readiness string

const (
	ReadinessNotReady Readiness = "not_ready"
	ReadinessBaseline Readiness = "baseline"
	ReadinessStrong   Readiness = "strong"
)

// Label returns the display name of the tier.
func (r Readiness) Label() string {
	switch r {
	case ReadinessNotReady:
		return "Not Ready"
	case ReadinessBaseline:
		return "Baseline"
	case ReadinessStrong:
		return "Strong"
	default:
		return string(r)
	}
}

// InsuranceReadiness derives the tier from the answers. MFA, independent
// backups and an incident plan are required for any tier above Not Ready;
// Strong additionally needs no shared logins and a tested restore.
func InsuranceReadiness(answers assessment.AnswerSet) Readiness {
	mfa := answers.Get(assessment.KeyMFAAll).Addressed()
	backups := isOneOf(answers.Get(assessment.KeyIndependentBackups), assessment.AnswerYes, assessment.AnswerPartial)
	plan := answers.Get(assessment.KeyIncidentPlan) == assessment.AnswerYes
	if !(mfa && backups && plan) {
		return ReadinessNotReady
	}

	noShared := answers.Get(assessment.KeySharedLogins) != assessment.AnswerYes
	restoreOK := answers.Get(assessment.KeyRestoreTested) == assessment.AnswerYes
	if noShared && restoreOK {
		return ReadinessStrong
	}
	return ReadinessBaseline
}

func isOneOf(a assessment.Answer, values ...assessment.Answer) bool {
	for _, v := range values {
		if a == v {
			return true
		}
	}
	return false
}
