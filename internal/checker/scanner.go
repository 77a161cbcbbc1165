package checker

import (
	"context"
	"crypto/x509"
	"sync"
	"time"

	"github.com/stacktrail/guardrail/internal/shared/constants"
	"go.uber.org/zap"
)

// Check names used in logs and FailedChecks.
const (
	nameMX          = "mx"
	nameSPF         = "spf"
	nameDMARC       = "dmarc"
	nameDKIM        = "dkim"
	nameCertificate = "tls_certificate"
	nameRedirect    = "https_redirect"
	nameHeaders     = "headers"
)

// Scanner runs the domain checks. The zero value is usable: it resolves with
// the system nameservers, trusts the system roots and waits the default
// per-check timeout.
//
// Timeout bounds each individual check. DKIMSelector is the selector probed by
// the DKIM heuristic. RootCAs and DialContext override trust roots and TCP
// dialing for the TLS and HTTP checks.
type Scanner struct {
	Timeout      time.Duration
	DKIMSelector string
	Resolver     Resolver
	RootCAs      *x509.CertPool
	DialContext  DialContextFunc
	Logger       *zap.Logger
	Now          func() time.Time
}

// Scan checks domain and always returns a result. Individual check failures
// are recorded in the matching result field and never stop the other checks.
// The caller is expected to pass a domain already cleaned by NormalizeDomain.
func (s *Scanner) Scan(ctx context.Context, domain string) *ScanResult {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = constants.DefaultCheckTimeout
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	resolver := s.Resolver
	if resolver == nil {
		resolver = NewDNSResolver(nil, timeout)
	}
	logger = logger.With(zap.String("domain", domain))

	start := now()
	result := &ScanResult{
		Domain:      domain,
		Registrable: RegistrableDomain(domain),
		ScannedAt:   start.UTC(),
	}

	client := newHTTPClient(timeout, s.RootCAs, s.DialContext)
	defer client.CloseIdleConnections()
	probe := tlsProbe{RootCAs: s.RootCAs, DialContext: s.DialContext, Now: now}

	var wg sync.WaitGroup
	run := func(name string, fn func(ctx context.Context) failer) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			checkCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			began := time.Now()
			out := fn(checkCtx)
			logger.Debug("check finished",
				zap.String("check", name),
				zap.Duration("duration", time.Since(began)))
			if out.Failed() {
				logger.Warn("check failed",
					zap.String("check", name),
					zap.String("error", out.Reason()))
			}
		}()
	}

	// Each goroutine writes to its own field of result.
	run(nameMX, func(ctx context.Context) failer {
		result.MX = checkMXRecords(ctx, resolver, domain)
		return result.MX
	})
	run(nameSPF, func(ctx context.Context) failer {
		result.SPF = checkSPFRecord(ctx, resolver, domain)
		return result.SPF
	})
	run(nameDMARC, func(ctx context.Context) failer {
		result.DMARC = checkDMARCRecord(ctx, resolver, domain)
		return result.DMARC
	})
	run(nameDKIM, func(ctx context.Context) failer {
		result.DKIM = checkDKIMRecord(ctx, resolver, domain, s.DKIMSelector)
		return result.DKIM
	})
	run(nameCertificate, func(ctx context.Context) failer {
		result.Certificate = probe.check(ctx, domain)
		return result.Certificate
	})
	run(nameRedirect, func(ctx context.Context) failer {
		result.Redirect = checkRedirect(ctx, client, domain, timeout)
		return result.Redirect
	})
	run(nameHeaders, func(ctx context.Context) failer {
		result.Headers = checkSecurityHeaders(ctx, client, domain)
		return result.Headers
	})
	wg.Wait()

	result.Status, result.Issues = Classify(result)
	result.DurationMS = float64(now().Sub(start).Microseconds()) / 1000
	logger.Info("scan complete",
		zap.String("status", string(result.Status)),
		zap.Int("issues", len(result.Issues)),
		zap.Strings("failed_checks", result.FailedChecks()))
	return result
}

type failer interface {
	Failed() bool
	Reason() string
}
