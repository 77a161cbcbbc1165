package cmd

import (
	"strings"

	"github.com/fatih/color"
	"github.com/stacktrail/guardrail/internal/scoring"
)

var (
	colorSuccess = color.New(color.FgGreen).SprintFunc()
	colorInfo    = color.New(color.FgCyan).SprintFunc()
	colorWarn    = color.New(color.FgYellow).SprintFunc()
	colorError   = color.New(color.FgRed).SprintFunc()
	colorBold    = color.New(color.Bold).SprintFunc()
	colorSevere  = color.New(color.FgRed, color.Bold).SprintFunc()
)

func formatStatusWithColor(status string) string {
	switch strings.ToLower(status) {
	case "ok", "present", "yes":
		return colorSuccess(status)
	case "warning", "missing":
		return colorWarn(status)
	case "error", "failed", "no":
		return colorError(status)
	default:
		return status
	}
}

func formatBandWithColor(band scoring.RiskBand) string {
	label := string(band)
	switch band {
	case scoring.BandLow:
		return colorSuccess(label)
	case scoring.BandModerate:
		return colorWarn(label)
	case scoring.BandHigh:
		return colorError(label)
	case scoring.BandCritical:
		return colorSevere(label)
	default:
		return label
	}
}

func formatSeverityWithColor(sev scoring.Severity) string {
	label := strings.ToUpper(string(sev))
	switch sev {
	case scoring.SeverityHigh:
		return colorError(label)
	case scoring.SeverityMedium:
		return colorWarn(label)
	default:
		return colorInfo(label)
	}
}

func formatReadinessWithColor(r scoring.Readiness) string {
	switch r {
	case scoring.ReadinessStrong:
		return colorSuccess(r.Label())
	case scoring.ReadinessBaseline:
		return colorWarn(r.Label())
	default:
		return colorError(r.Label())
	}
}
