package scoring

import (
	"math"

	"github.com/stacktrail/guardrail/internal/domain/assessment"
)

// RiskBand is the categorical bucket derived from the numeric score.
type RiskBand string

const (
	BandLow      RiskBand = "Low"
	BandModerate RiskBand = "Moderate"
	BandHigh     RiskBand = "High"
	BandCritical RiskBand = "Critical"
)

// Range is an inclusive integer range with Low <= High.
type Range struct {
	Low  int `json:"low" yaml:"low"`
	High int `json:"high" yaml:"high"`
}

// Result is the full output of one scoring call. It shares no state with the
// engine and is owned by the caller.
type Result struct {
	Score              int                                 `json:"score" yaml:"score"`
	RiskBand           RiskBand                            `json:"risk_band" yaml:"risk_band"`
	InsuranceReadiness Readiness                           `json:"insurance_readiness" yaml:"insurance_readiness"`
	BreachCost         Range                               `json:"breach_cost" yaml:"breach_cost"`
	DowntimeDays       Range                               `json:"downtime_days" yaml:"downtime_days"`
	Multipliers        map[assessment.ChecklistKey]float64 `json:"multipliers" yaml:"multipliers"`
	Findings           []Finding                           `json:"findings" yaml:"findings"`
}

// Score evaluates answers for the given organization. It performs no I/O,
// never fails, and treats any missing or unrecognized answer as "no".
func Score(profile assessment.Profile, answers assessment.AnswerSet) *Result {
	score, multipliers := scoreAnswers(profile, answers)
	band := BandForScore(score)
	days := DowntimeDays(band, profile.DowntimeImpact)

	return &Result{
		Score:              score,
		RiskBand:           band,
		InsuranceReadiness: InsuranceReadiness(answers),
		BreachCost:         BreachCost(profile, days),
		DowntimeDays:       days,
		Multipliers:        multipliers,
		Findings:           GenerateFindings(answers, multipliers),
	}
}

// scoreAnswers sums the per-key penalties as floats and floors the total once.
func scoreAnswers(profile assessment.Profile, answers assessment.AnswerSet) (int, map[assessment.ChecklistKey]float64) {
	total := 0.0
	multipliers := make(map[assessment.ChecklistKey]float64, len(penaltyWeights))
	for _, kw := range penaltyWeights {
		mult := Multiplier(profile, kw.key)
		multipliers[kw.key] = mult
		total += penalty(kw.weight, mult, answers.Get(kw.key))
	}
	return clamp(100-int(math.Floor(total)), 0, 100), multipliers
}

// BandForScore maps a score to its risk band.
func BandForScore(score int) RiskBand {
	switch {
	case score >= 85:
		return BandLow
	case score >= 70:
		return BandModerate
	case score >= 50:
		return BandHigh
	default:
		return BandCritical
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
