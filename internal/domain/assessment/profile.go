package assessment

import (
	"fmt"
	"strings"

	"github.com/stacktrail/guardrail/internal/shared/constants"
	sharedErrors "github.com/stacktrail/guardrail/internal/shared/errors"
)

// BusinessType classifies the organization for industry-specific weighting.
type BusinessType string

const (
	BusinessLawFirm      BusinessType = "law_firm"
	BusinessMedical      BusinessType = "medical"
	BusinessStartup      BusinessType = "startup"
	BusinessRetail       BusinessType = "retail"
	BusinessAccounting   BusinessType = "accounting"
	BusinessRealEstate   BusinessType = "real_estate"
	BusinessConsulting   BusinessType = "consulting"
	BusinessConstruction BusinessType = "construction"
	BusinessNonprofit    BusinessType = "nonprofit"
	BusinessOther        BusinessType = "other"
)

var businessTypes = map[BusinessType]string{
	BusinessLawFirm:      "Law firm",
	BusinessMedical:      "Medical practice",
	BusinessStartup:      "Startup / SaaS",
	BusinessRetail:       "Retail",
	BusinessAccounting:   "Accounting",
	BusinessRealEstate:   "Real estate",
	BusinessConsulting:   "Consulting / agency",
	BusinessConstruction: "Construction / contractor",
	BusinessNonprofit:    "Nonprofit",
	BusinessOther:        "Other",
}

// Label returns the human readable name of the business type.
func (b BusinessType) Label() string {
	if label, ok := businessTypes[b]; ok {
		return label
	}
	return string(b)
}

// Valid reports whether b is one of the known business types.
func (b BusinessType) Valid() bool {
	_, ok := businessTypes[b]
	return ok
}

// RevenueRange is the annual revenue band of the organization.
type RevenueRange string

const (
	RevenueUnder250K RevenueRange = "lt_250k"
	Revenue250KTo1M  RevenueRange = "250k_1m"
	Revenue1MTo5M    RevenueRange = "1m_5m"
	RevenueOver5M    RevenueRange = "gt_5m"
)

// Valid reports whether r is one of the known revenue bands.
func (r RevenueRange) Valid() bool {
	switch r {
	case RevenueUnder250K, Revenue250KTo1M, Revenue1MTo5M, RevenueOver5M:
		return true
	}
	return false
}

// DowntimeImpact describes how badly an outage hurts the organization.
type DowntimeImpact string

const (
	DowntimeMinor       DowntimeImpact = "minor"
	DowntimeLoseMoney   DowntimeImpact = "lose_money"
	DowntimeCantOperate DowntimeImpact = "cant_operate"
)

// Valid reports whether d is one of the known downtime impacts.
func (d DowntimeImpact) Valid() bool {
	switch d {
	case DowntimeMinor, DowntimeLoseMoney, DowntimeCantOperate:
		return true
	}
	return false
}

// Profile holds the organization attributes that modulate scoring.
type Profile struct {
	Name           string         `json:"name,omitempty" yaml:"name,omitempty"`
	BusinessType   BusinessType   `json:"business_type" yaml:"business_type"`
	EmployeeCount  int            `json:"employee_count" yaml:"employee_count"`
	RevenueRange   RevenueRange   `json:"revenue_range" yaml:"revenue_range"`
	DowntimeImpact DowntimeImpact `json:"downtime_impact" yaml:"downtime_impact"`
	PrimaryDomain  string         `json:"primary_domain,omitempty" yaml:"primary_domain,omitempty"`
}

// ApplyDefaults fills unset fields with the defaults a new organization gets.
func (p *Profile) ApplyDefaults() {
	p.BusinessType = BusinessType(normalizeEnum(string(p.BusinessType)))
	p.RevenueRange = RevenueRange(normalizeEnum(string(p.RevenueRange)))
	p.DowntimeImpact = DowntimeImpact(normalizeEnum(string(p.DowntimeImpact)))
	p.PrimaryDomain = strings.TrimSpace(p.PrimaryDomain)

	if p.BusinessType == "" {
		p.BusinessType = BusinessOther
	}
	if p.EmployeeCount == 0 {
		p.EmployeeCount = 1
	}
	if p.RevenueRange == "" {
		p.RevenueRange = RevenueUnder250K
	}
	if p.DowntimeImpact == "" {
		p.DowntimeImpact = DowntimeLoseMoney
	}
}

// ScanDomain returns the domain to scan for this organization.
func (p Profile) ScanDomain() string {
	if d := strings.TrimSpace(p.PrimaryDomain); d != "" {
		return d
	}
	return constants.DefaultScanDomain
}

// Validate checks the enumerated fields and the employee count.
func (p Profile) Validate() error {
	var errs []error
	if !p.BusinessType.Valid() {
		errs = append(errs, newValidationError("business_type", string(p.BusinessType), sharedErrors.ErrUnknownBusinessType))
	}
	if p.EmployeeCount <= 0 {
		errs = append(errs, newValidationError("employee_count", fmt.Sprint(p.EmployeeCount), sharedErrors.ErrInvalidEmployeeCount))
	}
	if !p.RevenueRange.Valid() {
		errs = append(errs, newValidationError("revenue_range", string(p.RevenueRange), sharedErrors.ErrUnknownRevenueRange))
	}
	if !p.DowntimeImpact.Valid() {
		errs = append(errs, newValidationError("downtime_impact", string(p.DowntimeImpact), sharedErrors.ErrUnknownDowntimeImpact))
	}
	return joinErrors(errs)
}

func normalizeEnum(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
