package scoring

import "github.com/stacktrail/guardrail/internal/domain/assessment"

// sensitivityBonus is added to a key's multiplier for each rule that marks it sensitive.
const sensitivityBonus = 0.3

// partialCredit is the share of the multiplied weight charged for a "partial" answer.
const partialCredit = 0.5

type keyWeight struct {
	key    assessment.ChecklistKey
	weight float64
}

// penaltyWeights lists every checklist key with the points it costs when unmet.
// The order is the questionnaire order and is the tie-break order for findings.
var penaltyWeights = []keyWeight{
	{assessment.KeyMFAAll, 15},
	{assessment.KeyAdminProtection, 8},
	{assessment.KeySharedLogins, 12},
	{assessment.KeyMFAPayments, 10},
	{assessment.KeyEmailForwarding, 6},
	{assessment.KeyFileSharingLimited, 8},
	{assessment.KeyAccessReview, 6},
	{assessment.KeyIndependentBackups, 12},
	{assessment.KeyRestoreTested, 8},
	{assessment.KeyPhishingTraining, 6},
	{assessment.KeyIncidentPlan, 10},
	{assessment.KeyDomainEmailProtection, 10},
}

// industrySensitiveKeys lists the keys that weigh more for a business type.
var industrySensitiveKeys = map[assessment.BusinessType][]assessment.ChecklistKey{
	assessment.BusinessLawFirm: {
		assessment.KeyMFAAll,
		assessment.KeyDomainEmailProtection,
		assessment.KeyIndependentBackups,
		assessment.KeyAccessReview,
	},
	assessment.BusinessMedical: {
		assessment.KeyMFAAll,
		assessment.KeyIndependentBackups,
		assessment.KeyAccessReview,
		assessment.KeyDomainEmailProtection,
	},
	assessment.BusinessRetail: {
		assessment.KeyMFAPayments,
		assessment.KeySharedLogins,
		assessment.KeyIndependentBackups,
	},
}

// downtimeSensitiveKeys lists the keys that weigh more for a downtime tolerance.
var downtimeSensitiveKeys = map[assessment.DowntimeImpact][]assessment.ChecklistKey{
	assessment.DowntimeCantOperate: {
		assessment.KeyIndependentBackups,
		assessment.KeyRestoreTested,
		assessment.KeyIncidentPlan,
	},
}

// Weight returns the base penalty for key, or zero for unknown keys.
func Weight(key assessment.ChecklistKey) float64 {
	for _, kw := range penaltyWeights {
		if kw.key == key {
			return kw.weight
		}
	}
	return 0
}

// Multiplier returns the scoring adjustment for key given the organization profile.
// It is 1.0 plus 0.3 for each of the industry and downtime rules that apply.
func Multiplier(profile assessment.Profile, key assessment.ChecklistKey) float64 {
	m := 1.0
	if containsKey(industrySensitiveKeys[profile.BusinessType], key) {
		m += sensitivityBonus
	}
	if containsKey(downtimeSensitiveKeys[profile.DowntimeImpact], key) {
		m += sensitivityBonus
	}
	return m
}

func containsKey(keys []assessment.ChecklistKey, key assessment.ChecklistKey) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

func penalty(weight, multiplier float64, answer assessment.Answer) float64 {
	switch {
	case answer.Satisfied():
		return 0
	case answer == assessment.AnswerPartial:
		return weight * multiplier * partialCredit
	default:
		return weight * multiplier
	}
}
