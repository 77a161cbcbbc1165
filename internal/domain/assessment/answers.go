package assessment

import (
	"sort"

	sharedErrors "github.com/stacktrail/guardrail/internal/shared/errors"
)

// ChecklistKey identifies one questionnaire item.
type ChecklistKey string

const (
	KeyMFAAll                ChecklistKey = "mfa_all"
	KeyAdminProtection       ChecklistKey = "admin_protection"
	KeySharedLogins          ChecklistKey = "shared_logins"
	KeyMFAPayments           ChecklistKey = "mfa_payments"
	KeyEmailForwarding       ChecklistKey = "email_forwarding"
	KeyFileSharingLimited    ChecklistKey = "file_sharing_limited"
	KeyAccessReview          ChecklistKey = "access_review"
	KeyIndependentBackups    ChecklistKey = "independent_backups"
	KeyRestoreTested         ChecklistKey = "restore_tested"
	KeyPhishingTraining      ChecklistKey = "phishing_training"
	KeyIncidentPlan          ChecklistKey = "incident_plan"
	KeyDomainEmailProtection ChecklistKey = "domain_email_protection"
)

// checklistKeys is the canonical questionnaire order.
var checklistKeys = []ChecklistKey{
	KeyMFAAll,
	KeyAdminProtection,
	KeySharedLogins,
	KeyMFAPayments,
	KeyEmailForwarding,
	KeyFileSharingLimited,
	KeyAccessReview,
	KeyIndependentBackups,
	KeyRestoreTested,
	KeyPhishingTraining,
	KeyIncidentPlan,
	KeyDomainEmailProtection,
}

// ChecklistKeys returns the twelve checklist keys in questionnaire order.
func ChecklistKeys() []ChecklistKey {
	return append([]ChecklistKey(nil), checklistKeys...)
}

// Known reports whether k is one of the checklist keys.
func (k ChecklistKey) Known() bool {
	for _, key := range checklistKeys {
		if key == k {
			return true
		}
	}
	return false
}

// Answer is a questionnaire response literal.
type Answer string

const (
	AnswerYes      Answer = "yes"
	AnswerNo       Answer = "no"
	AnswerPartial  Answer = "partial"
	AnswerEnforced Answer = "enforced"
)

// Valid reports whether a is one of the four answer literals.
func (a Answer) Valid() bool {
	switch a {
	case AnswerYes, AnswerNo, AnswerPartial, AnswerEnforced:
		return true
	}
	return false
}

// Satisfied is true for answers that carry no penalty at all.
func (a Answer) Satisfied() bool {
	return a == AnswerYes || a == AnswerEnforced
}

// Addressed is true for answers that suppress a finding.
func (a Answer) Addressed() bool {
	return a.Satisfied() || a == AnswerPartial
}

// AnswerSet maps checklist keys to answers. Missing keys read as "no".
type AnswerSet map[ChecklistKey]Answer

// NewAnswerSet builds an AnswerSet from raw string pairs, normalizing values.
func NewAnswerSet(raw map[string]string) AnswerSet {
	set := make(AnswerSet, len(raw))
	for k, v := range raw {
		set[ChecklistKey(normalizeEnum(k))] = Answer(normalizeEnum(v))
	}
	return set
}

// Get returns the stored answer for key, or AnswerNo when absent. Values are
// compared exactly; only NewAnswerSet normalizes input.
func (s AnswerSet) Get(key ChecklistKey) Answer {
	a, ok := s[key]
	if !ok {
		return AnswerNo
	}
	return a
}

// Validate reports unknown keys and answer literals outside the four allowed values.
func (s AnswerSet) Validate() error {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)

	var errs []error
	for _, k := range keys {
		key := ChecklistKey(k)
		if !key.Known() {
			errs = append(errs, newValidationError("answers."+k, "", sharedErrors.ErrUnknownChecklistKey))
			continue
		}
		if a := s.Get(key); !a.Valid() {
			errs = append(errs, newValidationError("answers."+k, string(a), sharedErrors.ErrInvalidAnswer))
		}
	}
	return joinErrors(errs)
}
