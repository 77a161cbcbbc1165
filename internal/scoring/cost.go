package scoring

import (
	"math"

	"github.com/stacktrail/guardrail/internal/domain/assessment"
)

const (
	// workingDaysPerYear converts annual revenue into daily revenue.
	workingDaysPerYear = 260.0
	// largeOrgEmployees is the headcount above which incident handling costs more.
	largeOrgEmployees = 15
	smallOrgFixedCost = 10_000
	largeOrgFixedCost = 30_000
	// fixedCostHighFactor scales the fixed cost for the upper estimate.
	fixedCostHighFactor = 1.5
)

var baseDowntimeDays = map[RiskBand]Range{
	BandLow:      {Low: 1, High: 2},
	BandModerate: {Low: 2, High: 4},
	BandHigh:     {Low: 4, High: 7},
	BandCritical: {Low: 7, High: 14},
}

// defaultDowntimeDays applies to bands outside the four known ones.
var defaultDowntimeDays = Range{Low: 3, High: 7}

var annualRevenueMidpoint = map[assessment.RevenueRange]float64{
	assessment.RevenueUnder250K: 150_000,
	assessment.Revenue250KTo1M:  500_000,
	assessment.Revenue1MTo5M:    2_000_000,
	assessment.RevenueOver5M:    6_000_000,
}

const defaultAnnualRevenue = 150_000

// DowntimeDays estimates how many days an incident would take the organization offline.
func DowntimeDays(band RiskBand, impact assessment.DowntimeImpact) Range {
	base, ok := baseDowntimeDays[band]
	if !ok {
		base = defaultDowntimeDays
	}

	switch impact {
	case assessment.DowntimeCantOperate:
		return Range{Low: base.Low + 1, High: base.High + 3}
	case assessment.DowntimeLoseMoney:
		return base
	default:
		return Range{Low: max(0, base.Low-1), High: max(1, base.High-1)}
	}
}

// DailyRevenue returns the annual revenue midpoint spread over working days.
func DailyRevenue(revenue assessment.RevenueRange) float64 {
	annual, ok := annualRevenueMidpoint[revenue]
	if !ok {
		annual = defaultAnnualRevenue
	}
	return annual / workingDaysPerYear
}

// BreachCost estimates the financial impact of an incident lasting days.
func BreachCost(profile assessment.Profile, days Range) Range {
	daily := DailyRevenue(profile.RevenueRange)
	fixed := float64(smallOrgFixedCost)
	if profile.EmployeeCount > largeOrgEmployees {
		fixed = largeOrgFixedCost
	}

	return Range{
		Low:  int(math.Floor(daily*float64(days.Low) + fixed)),
		High: int(math.Floor(daily*float64(days.High) + fixed*fixedCostHighFactor)),
	}
}
