package checker

import (
	"context"
	"reflect"
	"testing"
)

func intPtr(v int) *int { return &v }

// cleanResult has every classified condition clear.
func cleanResult() *ScanResult {
	return &ScanResult{
		Domain:      "example.com",
		SPF:         RecordCheck{Outcome: succeeded(), Present: true},
		DMARC:       RecordCheck{Outcome: succeeded(), Present: true},
		Certificate: CertificateCheck{Outcome: succeeded(), Valid: true, DaysUntilExpiry: intPtr(120)},
		Headers:     HeaderCheck{Outcome: succeeded(), HSTS: true},
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(r *ScanResult)
		wantStatus Status
		wantIssues []Issue
	}{
		{
			name:       "all clear",
			mutate:     func(r *ScanResult) {},
			wantStatus: StatusOK,
			wantIssues: []Issue{},
		},
		{
			name:       "only HSTS missing",
			mutate:     func(r *ScanResult) { r.Headers.HSTS = false },
			wantStatus: StatusWarning,
			wantIssues: []Issue{IssueNoHSTS},
		},
		{
			name: "TLS invalid",
			mutate: func(r *ScanResult) {
				r.Certificate = CertificateCheck{Outcome: failed("handshake timeout")}
			},
			wantStatus: StatusError,
			wantIssues: []Issue{IssueTLSInvalid},
		},
		{
			name:       "SPF absent",
			mutate:     func(r *ScanResult) { r.SPF = RecordCheck{Outcome: succeeded()} },
			wantStatus: StatusError,
			wantIssues: []Issue{IssueNoSPF},
		},
		{
			name:       "SPF lookup failed is not absence",
			mutate:     func(r *ScanResult) { r.SPF = RecordCheck{Outcome: failed("i/o timeout")} },
			wantStatus: StatusOK,
			wantIssues: []Issue{},
		},
		{
			name:       "DMARC absent",
			mutate:     func(r *ScanResult) { r.DMARC = RecordCheck{Outcome: succeeded()} },
			wantStatus: StatusWarning,
			wantIssues: []Issue{IssueNoDMARC},
		},
		{
			name:       "DMARC lookup failed is not absence",
			mutate:     func(r *ScanResult) { r.DMARC = RecordCheck{Outcome: failed("servfail")} },
			wantStatus: StatusOK,
			wantIssues: []Issue{},
		},
		{
			name:       "certificate expiring in 29 days",
			mutate:     func(r *ScanResult) { r.Certificate.DaysUntilExpiry = intPtr(29) },
			wantStatus: StatusWarning,
			wantIssues: []Issue{IssueCertExpiringSoon},
		},
		{
			name:       "certificate expiring in exactly 30 days",
			mutate:     func(r *ScanResult) { r.Certificate.DaysUntilExpiry = intPtr(30) },
			wantStatus: StatusOK,
			wantIssues: []Issue{},
		},
		{
			name:       "unknown expiry",
			mutate:     func(r *ScanResult) { r.Certificate.DaysUntilExpiry = nil },
			wantStatus: StatusOK,
			wantIssues: []Issue{},
		},
		{
			name: "everything wrong",
			mutate: func(r *ScanResult) {
				r.SPF = RecordCheck{Outcome: succeeded()}
				r.DMARC = RecordCheck{Outcome: succeeded()}
				r.Certificate = CertificateCheck{Outcome: failed("refused")}
				r.Headers = HeaderCheck{Outcome: failed("refused")}
			},
			wantStatus: StatusError,
			wantIssues: []Issue{IssueNoSPF, IssueNoDMARC, IssueTLSInvalid, IssueNoHSTS},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := cleanResult()
			tt.mutate(r)

			status, issues := Classify(r)
			if status != tt.wantStatus {
				t.Errorf("status = %s, want %s", status, tt.wantStatus)
			}
			if !reflect.DeepEqual(issues, tt.wantIssues) {
				t.Errorf("issues = %v, want %v", issues, tt.wantIssues)
			}
		})
	}
}

func TestFailedChecks(t *testing.T) {
	r := cleanResult()
	r.MX = RecordCheck{Outcome: failed("timeout")}
	r.Redirect.HTTP = Probe{Outcome: failed("refused")}

	got := r.FailedChecks()
	want := []string{nameMX, nameRedirect}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FailedChecks() = %v, want %v", got, want)
	}
	if reason := r.Redirect.Reason(); reason != "http: refused" {
		t.Errorf("unexpected redirect reason %q", reason)
	}
}

// A domain with no _dmarc name at all is classified like one with no DMARC
// record: the lookup succeeded and found nothing.
func TestClassifyDMARCNameNotFoundIsWarning(t *testing.T) {
	resolver := &fakeResolver{errs: map[string]error{"_dmarc.example.com": ErrNameNotFound}}

	r := cleanResult()
	r.DMARC = checkDMARCRecord(context.Background(), resolver, "example.com")

	status, issues := Classify(r)
	if status != StatusWarning {
		t.Fatalf("expected warning, got %s", status)
	}
	if !reflect.DeepEqual(issues, []Issue{IssueNoDMARC}) {
		t.Fatalf("expected only no_dmarc, got %v", issues)
	}
}
