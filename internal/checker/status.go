package checker

import "github.com/stacktrail/guardrail/internal/shared/constants"

// Classify derives the issue list and overall status of a scan. A missing SPF
// record only counts when the lookup itself succeeded; resolution failures
// are not treated as absence.
//
//   - error: the TLS certificate is invalid or SPF is absent
//   - warning: any other issue (no DMARC, certificate expiring, no HSTS)
//   - ok: no issues
func Classify(r *ScanResult) (Status, []Issue) {
	issues := make([]Issue, 0, 5)
	if r.SPF.Absent() {
		issues = append(issues, IssueNoSPF)
	}
	if r.DMARC.Absent() {
		issues = append(issues, IssueNoDMARC)
	}
	if !r.Certificate.Valid {
		issues = append(issues, IssueTLSInvalid)
	}
	if r.Certificate.ExpiresWithin(constants.CertExpiryWarningDays) {
		issues = append(issues, IssueCertExpiringSoon)
	}
	if !r.Headers.HSTS {
		issues = append(issues, IssueNoHSTS)
	}

	switch {
	case len(issues) == 0:
		return StatusOK, issues
	case hasIssue(issues, IssueTLSInvalid), hasIssue(issues, IssueNoSPF):
		return StatusError, issues
	default:
		return StatusWarning, issues
	}
}

func hasIssue(issues []Issue, want Issue) bool {
	for _, i := range issues {
		if i == want {
			return true
		}
	}
	return false
}
