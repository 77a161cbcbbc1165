package checker

import (
	"context"
	"strings"

	"github.com/stacktrail/guardrail/internal/shared/constants"
)

const (
	spfPrefix   = "v=spf1"
	dmarcPrefix = "v=DMARC1"
)

// checkMXRecords resolves mail exchangers. An NXDOMAIN for the domain itself is a
// failure; a name with no MX records is a successful, absent result.
func checkMXRecords(ctx context.Context, r Resolver, domain string) RecordCheck {
	result := RecordCheck{Name: domain}
	hosts, err := r.LookupMX(ctx, domain)
	if err != nil {
		result.Outcome = failed("%v", err)
		return result
	}
	result.Outcome = succeeded()
	result.Records = hosts
	result.Present = len(hosts) > 0
	return result
}

// checkTXTPrefix looks for a TXT record on name starting with prefix.
// missingIsAbsent controls whether NXDOMAIN counts as "no record" rather
// than a failure, which is the case for policy subdomains like _dmarc.
func checkTXTPrefix(ctx context.Context, r Resolver, name, prefix string, missingIsAbsent bool) RecordCheck {
	result := RecordCheck{Name: name}
	records, err := r.LookupTXT(ctx, name)
	if err != nil && !(missingIsAbsent && IsNotFound(err)) {
		result.Outcome = failed("%v", err)
		return result
	}
	result.Outcome = succeeded()
	for _, rec := range records {
		if strings.HasPrefix(strings.TrimSpace(rec), prefix) {
			result.Records = append(result.Records, truncateRecord(rec))
		}
	}
	result.Present = len(result.Records) > 0
	return result
}

func checkSPFRecord(ctx context.Context, r Resolver, domain string) RecordCheck {
	return checkTXTPrefix(ctx, r, domain, spfPrefix, false)
}

func checkDMARCRecord(ctx context.Context, r Resolver, domain string) RecordCheck {
	return checkTXTPrefix(ctx, r, "_dmarc."+domain, dmarcPrefix, true)
}

// checkDKIMRecord probes a single selector. Real deployments mostly use
// provider-specific selectors, so absence here proves nothing and the result
// is always flagged low confidence.
func checkDKIMRecord(ctx context.Context, r Resolver, domain, selector string) RecordCheck {
	if selector == "" {
		selector = constants.DefaultDKIMSelector
	}
	name := selector + "._domainkey." + domain
	result := RecordCheck{Name: name, Selector: selector, LowConfidence: true}
	records, err := r.LookupTXT(ctx, name)
	if err != nil && !IsNotFound(err) {
		result.Outcome = failed("%v", err)
		return result
	}
	result.Outcome = succeeded()
	for _, rec := range records {
		result.Records = append(result.Records, truncateRecord(rec))
	}
	result.Present = len(result.Records) > 0
	return result
}

func truncateRecord(rec string) string {
	if len(rec) <= constants.RecordCaptureLimit {
		return rec
	}
	runes := []rune(rec)
	if len(runes) <= constants.RecordCaptureLimit {
		return rec
	}
	return string(runes[:constants.RecordCaptureLimit])
}
