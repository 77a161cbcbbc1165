package checker

import (
	"context"
	"strings"
	"testing"

	"github.com/stacktrail/guardrail/internal/shared/constants"
)

func TestCheckMXRecords(t *testing.T) {
	ctx := context.Background()

	result := checkMXRecords(ctx, healthyZone(), "example.com")
	if result.Failed() || !result.Present {
		t.Fatalf("expected present MX, got %+v", result)
	}
	if len(result.Records) != 1 || result.Records[0] != "mx1.example.com" {
		t.Errorf("unexpected records: %v", result.Records)
	}

	none := checkMXRecords(ctx, &fakeResolver{}, "example.com")
	if none.Failed() || none.Present {
		t.Errorf("expected absent MX without error, got %+v", none)
	}

	broken := checkMXRecords(ctx, &fakeResolver{errs: map[string]error{"example.com": ErrNameNotFound}}, "example.com")
	if !broken.Failed() || broken.Present {
		t.Errorf("expected failed MX for NXDOMAIN, got %+v", broken)
	}
	if broken.Error == "" {
		t.Error("failed check must carry an error message")
	}
}

func TestCheckSPFRecord(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		resolver   *fakeResolver
		wantFailed bool
		wantAbsent bool
	}{
		{
			name:     "present",
			resolver: healthyZone(),
		},
		{
			name: "other TXT records only",
			resolver: &fakeResolver{txt: map[string][]string{
				"example.com": {"google-site-verification=xyz", "spf1 without prefix"},
			}},
			wantAbsent: true,
		},
		{
			name:       "no TXT records",
			resolver:   &fakeResolver{},
			wantAbsent: true,
		},
		{
			name:       "timeout is not absence",
			resolver:   &fakeResolver{errs: map[string]error{"example.com": errTimeout}},
			wantFailed: true,
		},
		{
			name:       "NXDOMAIN on the domain is a failure",
			resolver:   &fakeResolver{errs: map[string]error{"example.com": ErrNameNotFound}},
			wantFailed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := checkSPFRecord(ctx, tt.resolver, "example.com")
			if result.Failed() != tt.wantFailed {
				t.Errorf("Failed() = %v, want %v (error %q)", result.Failed(), tt.wantFailed, result.Error)
			}
			if result.Absent() != tt.wantAbsent {
				t.Errorf("Absent() = %v, want %v", result.Absent(), tt.wantAbsent)
			}
		})
	}
}

func TestCheckSPFRecord_TruncatesLongRecords(t *testing.T) {
	long := "v=spf1 " + strings.Repeat("include:a.example.com ", 40) + "-all"
	r := &fakeResolver{txt: map[string][]string{"example.com": {long}}}

	result := checkSPFRecord(context.Background(), r, "example.com")
	if !result.Present {
		t.Fatal("expected SPF present")
	}
	if got := len(result.Records[0]); got != constants.RecordCaptureLimit {
		t.Errorf("expected record truncated to %d chars, got %d", constants.RecordCaptureLimit, got)
	}
}

func TestCheckDMARCRecord(t *testing.T) {
	ctx := context.Background()

	result := checkDMARCRecord(ctx, healthyZone(), "example.com")
	if !result.Present || result.Name != "_dmarc.example.com" {
		t.Errorf("expected DMARC present on _dmarc subdomain, got %+v", result)
	}

	nx := checkDMARCRecord(ctx, &fakeResolver{errs: map[string]error{"_dmarc.example.com": ErrNameNotFound}}, "example.com")
	if !nx.Absent() {
		t.Errorf("NXDOMAIN on _dmarc should be absent, got %+v", nx)
	}

	servfail := checkDMARCRecord(ctx, &fakeResolver{errs: map[string]error{"_dmarc.example.com": errTimeout}}, "example.com")
	if !servfail.Failed() {
		t.Errorf("resolver failure should be reported as failed, got %+v", servfail)
	}
}

func TestCheckDKIMRecord(t *testing.T) {
	ctx := context.Background()

	result := checkDKIMRecord(ctx, healthyZone(), "example.com", "")
	if !result.Present {
		t.Errorf("expected DKIM present for default selector, got %+v", result)
	}
	if !result.LowConfidence {
		t.Error("DKIM heuristic must always be low confidence")
	}
	if result.Selector != constants.DefaultDKIMSelector {
		t.Errorf("expected selector %q, got %q", constants.DefaultDKIMSelector, result.Selector)
	}

	custom := checkDKIMRecord(ctx, healthyZone(), "example.com", "google")
	if custom.Name != "google._domainkey.example.com" {
		t.Errorf("unexpected query name %q", custom.Name)
	}
	if !custom.Absent() || !custom.LowConfidence {
		t.Errorf("expected absent low-confidence result, got %+v", custom)
	}
}
