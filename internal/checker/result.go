package checker

import (
	"fmt"
	"strings"
	"time"
)

// Status is the coarse classification of a whole scan.
type Status string

const (
	StatusOK      Status = "ok"
	StatusWarning Status = "warning"
	StatusError   Status = "error"
)

// CheckStatus tells whether an individual check ran to completion.
type CheckStatus string

const (
	CheckSucceeded CheckStatus = "ok"
	CheckFailed    CheckStatus = "error"
)

// Outcome is the success-or-failure part of every check result. A failed
// outcome carries the reason; a succeeded one never does. "Found nothing" is a
// successful outcome with empty data, never a failure.
type Outcome struct {
	Status CheckStatus `json:"status" yaml:"status"`
	Error  string      `json:"error,omitempty" yaml:"error,omitempty"`
}

func succeeded() Outcome {
	return Outcome{Status: CheckSucceeded}
}

func failed(format string, args ...any) Outcome {
	return Outcome{Status: CheckFailed, Error: fmt.Sprintf(format, args...)}
}

// Failed reports whether the check could not complete.
func (o Outcome) Failed() bool {
	return o.Status == CheckFailed
}

// Reason returns the failure message, empty on success.
func (o Outcome) Reason() string {
	return o.Error
}

// RecordCheck is the result of a DNS record check (MX, SPF, DMARC, DKIM).
// Name is the DNS name that was queried. Selector and LowConfidence are only
// set by the DKIM heuristic.
type RecordCheck struct {
	Outcome       `yaml:",inline"`
	Name          string   `json:"name" yaml:"name"`
	Present       bool     `json:"present" yaml:"present"`
	Records       []string `json:"records,omitempty" yaml:"records,omitempty"`
	Selector      string   `json:"selector,omitempty" yaml:"selector,omitempty"`
	LowConfidence bool     `json:"low_confidence,omitempty" yaml:"low_confidence,omitempty"`
}

// Absent is true when the lookup succeeded and found no matching record.
func (r RecordCheck) Absent() bool {
	return !r.Failed() && !r.Present
}

// CertificateCheck is the result of the TLS handshake on port 443.
type CertificateCheck struct {
	Outcome         `yaml:",inline"`
	Valid           bool       `json:"valid" yaml:"valid"`
	Expires         *time.Time `json:"expires,omitempty" yaml:"expires,omitempty"`
	DaysUntilExpiry *int       `json:"days_until_expiry,omitempty" yaml:"days_until_expiry,omitempty"`
	Issuer          string     `json:"issuer,omitempty" yaml:"issuer,omitempty"`
}

// ExpiresWithin reports whether the certificate expiry is known and closer than days.
func (c CertificateCheck) ExpiresWithin(days int) bool {
	return c.DaysUntilExpiry != nil && *c.DaysUntilExpiry < days
}

// Probe is one HTTP request made by the redirect check.
type Probe struct {
	Outcome    `yaml:",inline"`
	URL        string `json:"url" yaml:"url"`
	FinalURL   string `json:"final_url,omitempty" yaml:"final_url,omitempty"`
	StatusCode int    `json:"status_code,omitempty" yaml:"status_code,omitempty"`
}

// RedirectCheck records whether the site serves HTTPS and upgrades plain HTTP.
type RedirectCheck struct {
	HTTPSOK          bool  `json:"https_ok" yaml:"https_ok"`
	RedirectsToHTTPS bool  `json:"redirects_to_https" yaml:"redirects_to_https"`
	HTTPS            Probe `json:"https" yaml:"https"`
	HTTP             Probe `json:"http" yaml:"http"`
}

// Failed reports whether either probe could not complete.
func (r RedirectCheck) Failed() bool {
	return r.HTTPS.Failed() || r.HTTP.Failed()
}

// Reason joins the failure messages of both probes.
func (r RedirectCheck) Reason() string {
	var reasons []string
	if r.HTTPS.Failed() {
		reasons = append(reasons, "https: "+r.HTTPS.Error)
	}
	if r.HTTP.Failed() {
		reasons = append(reasons, "http: "+r.HTTP.Error)
	}
	return strings.Join(reasons, "; ")
}

// HeaderCheck is the result of the security header inspection. Headers holds
// every response header with lower-cased keys. Recommendations carries one
// "severity: fix" line per entry in Missing.
type HeaderCheck struct {
	Outcome             `yaml:",inline"`
	HSTS                bool              `json:"hsts" yaml:"hsts"`
	XContentTypeOptions bool              `json:"x_content_type_options" yaml:"x_content_type_options"`
	Headers             map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Missing             []string          `json:"missing,omitempty" yaml:"missing,omitempty"`
	Recommendations     []string          `json:"recommendations,omitempty" yaml:"recommendations,omitempty"`
}

// Issue is a condition that lowers the overall scan status.
type Issue string

const (
	IssueNoSPF            Issue = "no_spf"
	IssueNoDMARC          Issue = "no_dmarc"
	IssueTLSInvalid       Issue = "tls_invalid"
	IssueCertExpiringSoon Issue = "cert_expiring_soon"
	IssueNoHSTS           Issue = "no_hsts"
)

// ScanResult is the full output of one domain scan. It is owned by the caller.
type ScanResult struct {
	Domain      string           `json:"domain" yaml:"domain"`
	Registrable string           `json:"registrable_domain,omitempty" yaml:"registrable_domain,omitempty"`
	ScannedAt   time.Time        `json:"scanned_at" yaml:"scanned_at"`
	DurationMS  float64          `json:"duration_ms" yaml:"duration_ms"`
	MX          RecordCheck      `json:"mx" yaml:"mx"`
	SPF         RecordCheck      `json:"spf" yaml:"spf"`
	DMARC       RecordCheck      `json:"dmarc" yaml:"dmarc"`
	DKIM        RecordCheck      `json:"dkim_heuristic" yaml:"dkim_heuristic"`
	Certificate CertificateCheck `json:"tls_certificate" yaml:"tls_certificate"`
	Redirect    RedirectCheck    `json:"https_redirect" yaml:"https_redirect"`
	Headers     HeaderCheck      `json:"headers" yaml:"headers"`
	Issues      []Issue          `json:"issues" yaml:"issues"`
	Status      Status           `json:"overall_status" yaml:"overall_status"`
}

// FailedChecks lists the names of checks that could not complete.
func (r *ScanResult) FailedChecks() []string {
	var names []string
	if r.MX.Failed() {
		names = append(names, nameMX)
	}
	if r.SPF.Failed() {
		names = append(names, nameSPF)
	}
	if r.DMARC.Failed() {
		names = append(names, nameDMARC)
	}
	if r.DKIM.Failed() {
		names = append(names, nameDKIM)
	}
	if r.Certificate.Failed() {
		names = append(names, nameCertificate)
	}
	if r.Redirect.Failed() {
		names = append(names, nameRedirect)
	}
	if r.Headers.Failed() {
		names = append(names, nameHeaders)
	}
	return names
}
