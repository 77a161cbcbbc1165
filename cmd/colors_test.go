package cmd

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stacktrail/guardrail/internal/scoring"
)

func disableColor(t *testing.T) {
	t.Helper()
	original := color.NoColor
	color.NoColor = true
	t.Cleanup(func() {
		color.NoColor = original
	})
}

func TestFormatStatusWithColor(t *testing.T) {
	disableColor(t)

	tests := []struct {
		name   string
		status string
		want   string
	}{
		{name: "ok", status: "ok", want: "ok"},
		{name: "present", status: "present", want: "present"},
		{name: "warning", status: "warning", want: "warning"},
		{name: "failure", status: "FAILED", want: "FAILED"},
		{name: "unknown", status: "pending", want: "pending"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatStatusWithColor(tt.status); got != tt.want {
				t.Fatalf("formatStatusWithColor(%q) = %q, want %q", tt.status, got, tt.want)
			}
		})
	}
}

func TestFormatBandAndSeverityWithColor(t *testing.T) {
	disableColor(t)

	if got := formatBandWithColor(scoring.BandCritical); got != "Critical" {
		t.Errorf("formatBandWithColor(Critical) = %q", got)
	}
	if got := formatBandWithColor(scoring.RiskBand("Unknown")); got != "Unknown" {
		t.Errorf("formatBandWithColor(Unknown) = %q", got)
	}
	if got := formatSeverityWithColor(scoring.SeverityHigh); got != "HIGH" {
		t.Errorf("formatSeverityWithColor(high) = %q", got)
	}
	if got := formatSeverityWithColor(scoring.SeverityLow); got != "LOW" {
		t.Errorf("formatSeverityWithColor(low) = %q", got)
	}
	if got := formatReadinessWithColor(scoring.ReadinessStrong); got != scoring.ReadinessStrong.Label() {
		t.Errorf("formatReadinessWithColor(strong) = %q", got)
	}
}
