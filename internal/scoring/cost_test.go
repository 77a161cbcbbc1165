package scoring

import (
	"testing"

	"github.com/stacktrail/guardrail/internal/domain/assessment"
)

func TestDowntimeDays(t *testing.T) {
	tests := []struct {
		band   RiskBand
		impact assessment.DowntimeImpact
		want   Range
	}{
		{BandLow, assessment.DowntimeLoseMoney, Range{1, 2}},
		{BandModerate, assessment.DowntimeLoseMoney, Range{2, 4}},
		{BandHigh, assessment.DowntimeCantOperate, Range{5, 10}},
		{BandCritical, assessment.DowntimeCantOperate, Range{8, 17}},
		{BandLow, assessment.DowntimeMinor, Range{0, 1}},
		{BandCritical, assessment.DowntimeMinor, Range{6, 13}},
		{RiskBand("Unknown"), assessment.DowntimeLoseMoney, Range{3, 7}},
	}

	for _, tt := range tests {
		t.Run(string(tt.band)+"/"+string(tt.impact), func(t *testing.T) {
			if got := DowntimeDays(tt.band, tt.impact); got != tt.want {
				t.Fatalf("DowntimeDays = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRangesOrderedForAllCombinations(t *testing.T) {
	bands := []RiskBand{BandLow, BandModerate, BandHigh, BandCritical, RiskBand("Unknown")}
	impacts := []assessment.DowntimeImpact{assessment.DowntimeMinor, assessment.DowntimeLoseMoney, assessment.DowntimeCantOperate}
	revenues := []assessment.RevenueRange{
		assessment.RevenueUnder250K, assessment.Revenue250KTo1M, assessment.Revenue1MTo5M, assessment.RevenueOver5M,
	}

	for _, band := range bands {
		for _, impact := range impacts {
			days := DowntimeDays(band, impact)
			if days.Low < 0 || days.Low > days.High {
				t.Fatalf("%s/%s: invalid downtime range %+v", band, impact, days)
			}
			for _, revenue := range revenues {
				for _, employees := range []int{1, 15, 16, 200} {
					profile := assessment.Profile{RevenueRange: revenue, EmployeeCount: employees, DowntimeImpact: impact}
					cost := BreachCost(profile, days)
					if cost.Low < 0 || cost.Low > cost.High {
						t.Fatalf("%s/%s/%s/%d: invalid cost range %+v", band, impact, revenue, employees, cost)
					}
				}
			}
		}
	}
}

func TestBreachCostFixedCostThreshold(t *testing.T) {
	days := Range{Low: 0, High: 0}

	small := BreachCost(assessment.Profile{EmployeeCount: 15}, days)
	if small != (Range{Low: 10000, High: 15000}) {
		t.Errorf("15 employees: got %+v", small)
	}

	large := BreachCost(assessment.Profile{EmployeeCount: 16}, days)
	if large != (Range{Low: 30000, High: 45000}) {
		t.Errorf("16 employees: got %+v", large)
	}
}

func TestDailyRevenueDefault(t *testing.T) {
	if got, want := DailyRevenue("unknown"), 150_000/260.0; got != want {
		t.Fatalf("DailyRevenue(unknown) = %v, want %v", got, want)
	}
	if got, want := DailyRevenue(assessment.RevenueOver5M), 6_000_000/260.0; got != want {
		t.Fatalf("DailyRevenue(gt_5m) = %v, want %v", got, want)
	}
}
