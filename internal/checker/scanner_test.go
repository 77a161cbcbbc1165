package checker

import (
	"context"
	"crypto/x509"
	"net"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"syscall"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

// testSite serves example.com: HTTPS on a TLS test server and plain HTTP that
// redirects to it. The httptest certificate is valid for example.com.
type testSite struct {
	https *httptest.Server
	http  *httptest.Server
	roots *x509.CertPool
}

func newTestSite(t *testing.T, setHeaders func(h http.Header)) *testSite {
	t.Helper()

	httpsSrv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if setHeaders != nil {
			setHeaders(w.Header())
		}
		_, _ = w.Write([]byte("hello"))
	}))
	t.Cleanup(httpsSrv.Close)

	httpSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "https://example.com"+r.URL.Path, http.StatusMovedPermanently)
	}))
	t.Cleanup(httpSrv.Close)

	roots := x509.NewCertPool()
	roots.AddCert(httpsSrv.Certificate())

	return &testSite{https: httpsSrv, http: httpSrv, roots: roots}
}

// dial routes example.com:443 and :80 to the test servers. Ports listed in
// refused fail as if nothing were listening.
func (s *testSite) dial(refused ...string) DialContextFunc {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		_, port, _ := net.SplitHostPort(addr)
		for _, p := range refused {
			if p == port {
				return nil, &net.OpError{Op: "dial", Net: network, Err: syscall.ECONNREFUSED}
			}
		}
		switch port {
		case "443":
			addr = s.https.Listener.Addr().String()
		case "80":
			addr = s.http.Listener.Addr().String()
		}
		var d net.Dialer
		return d.DialContext(ctx, network, addr)
	}
}

func secureHeaders(h http.Header) {
	h.Set("Strict-Transport-Security", "max-age=63072000")
	h.Set("X-Content-Type-Options", "nosniff")
}

func TestScanner_HealthyDomain(t *testing.T) {
	site := newTestSite(t, secureHeaders)
	scanner := &Scanner{
		Timeout:     2 * time.Second,
		Resolver:    healthyZone(),
		RootCAs:     site.roots,
		DialContext: site.dial(),
		Logger:      zaptest.NewLogger(t),
	}

	result := scanner.Scan(context.Background(), "example.com")

	if result.Status != StatusOK {
		t.Fatalf("expected ok status, got %s (issues %v, failed %v)", result.Status, result.Issues, result.FailedChecks())
	}
	if len(result.Issues) != 0 {
		t.Errorf("expected no issues, got %v", result.Issues)
	}
	if result.Registrable != "example.com" {
		t.Errorf("unexpected registrable domain %q", result.Registrable)
	}
	if !result.MX.Present || !result.SPF.Present || !result.DMARC.Present || !result.DKIM.Present {
		t.Errorf("expected all DNS records present: %+v %+v %+v %+v", result.MX, result.SPF, result.DMARC, result.DKIM)
	}
	if !result.Certificate.Valid || result.Certificate.Expires == nil || result.Certificate.DaysUntilExpiry == nil {
		t.Errorf("expected valid certificate with expiry, got %+v", result.Certificate)
	}
	if !strings.Contains(result.Certificate.Issuer, "organizationName=Acme Co") {
		t.Errorf("unexpected issuer %q", result.Certificate.Issuer)
	}
	if !result.Redirect.HTTPSOK || !result.Redirect.RedirectsToHTTPS {
		t.Errorf("expected https ok and redirect, got %+v", result.Redirect)
	}
	if result.Redirect.HTTP.FinalURL != "https://example.com/" && result.Redirect.HTTP.FinalURL != "https://example.com" {
		t.Errorf("unexpected final URL %q", result.Redirect.HTTP.FinalURL)
	}
	if !result.Headers.HSTS || !result.Headers.XContentTypeOptions {
		t.Errorf("expected both security headers, got %+v", result.Headers)
	}
	if result.Headers.Headers["strict-transport-security"] != "max-age=63072000" {
		t.Errorf("expected captured HSTS value, got %v", result.Headers.Headers)
	}
}

func TestScanner_OnlyHSTSMissingIsWarning(t *testing.T) {
	site := newTestSite(t, func(h http.Header) {
		h.Set("X-Content-Type-Options", "nosniff")
	})
	scanner := &Scanner{
		Timeout:     2 * time.Second,
		Resolver:    healthyZone(),
		RootCAs:     site.roots,
		DialContext: site.dial(),
		Logger:      zaptest.NewLogger(t),
	}

	result := scanner.Scan(context.Background(), "example.com")

	if result.Status != StatusWarning {
		t.Errorf("expected warning, got %s", result.Status)
	}
	if !reflect.DeepEqual(result.Issues, []Issue{IssueNoHSTS}) {
		t.Errorf("expected only no_hsts, got %v", result.Issues)
	}
}

func TestScanner_TLSFailureDoesNotStopOtherChecks(t *testing.T) {
	site := newTestSite(t, secureHeaders)
	scanner := &Scanner{
		Timeout:     2 * time.Second,
		Resolver:    healthyZone(),
		RootCAs:     site.roots,
		DialContext: site.dial("443"),
		Logger:      zaptest.NewLogger(t),
	}

	result := scanner.Scan(context.Background(), "example.com")

	if result.Status != StatusError {
		t.Errorf("expected error status, got %s", result.Status)
	}
	if !result.Certificate.Failed() || result.Certificate.Valid || result.Certificate.Error == "" {
		t.Errorf("expected failed certificate check with reason, got %+v", result.Certificate)
	}
	if !result.MX.Present || !result.SPF.Present || !result.DMARC.Present {
		t.Error("DNS checks should still complete when TLS fails")
	}
	if result.Redirect.HTTPSOK || result.Redirect.RedirectsToHTTPS {
		t.Errorf("expected both redirect probes to fail, got %+v", result.Redirect)
	}
	if result.Headers.HSTS {
		t.Error("header check cannot see HSTS without an HTTPS response")
	}
}

func TestScanner_UntrustedCertificate(t *testing.T) {
	site := newTestSite(t, secureHeaders)
	scanner := &Scanner{
		Timeout:     2 * time.Second,
		Resolver:    healthyZone(),
		RootCAs:     x509.NewCertPool(),
		DialContext: site.dial(),
	}

	result := scanner.Scan(context.Background(), "example.com")

	if result.Certificate.Valid {
		t.Error("expected certificate from an unknown root to be invalid")
	}
	if result.Status != StatusError {
		t.Errorf("expected error status, got %s", result.Status)
	}
}

func TestScanner_DNSFailureKeepsWebChecks(t *testing.T) {
	site := newTestSite(t, secureHeaders)
	zone := healthyZone()
	zone.errs = map[string]error{"example.com": errTimeout}
	scanner := &Scanner{
		Timeout:     2 * time.Second,
		Resolver:    zone,
		RootCAs:     site.roots,
		DialContext: site.dial(),
		Logger:      zaptest.NewLogger(t),
	}

	result := scanner.Scan(context.Background(), "example.com")

	if !result.MX.Failed() || !result.SPF.Failed() {
		t.Fatalf("expected MX and SPF to fail, got %+v %+v", result.MX, result.SPF)
	}
	if !result.Certificate.Valid || !result.Headers.HSTS {
		t.Error("TLS and header checks should succeed despite DNS failure")
	}
	// A failed SPF lookup is not an absent SPF record.
	if result.Status != StatusOK {
		t.Errorf("expected ok status, got %s with issues %v", result.Status, result.Issues)
	}
	want := []string{nameMX, nameSPF}
	if got := result.FailedChecks(); !reflect.DeepEqual(got, want) {
		t.Errorf("FailedChecks() = %v, want %v", got, want)
	}
}

func TestScanner_CertificateExpiringSoon(t *testing.T) {
	site := newTestSite(t, secureHeaders)
	notAfter := site.https.Certificate().NotAfter
	scanner := &Scanner{
		Timeout:     2 * time.Second,
		Resolver:    healthyZone(),
		RootCAs:     site.roots,
		DialContext: site.dial(),
		Now:         func() time.Time { return notAfter.Add(-10 * 24 * time.Hour) },
	}

	result := scanner.Scan(context.Background(), "example.com")

	if got := result.Certificate.DaysUntilExpiry; got == nil || *got != 10 {
		t.Fatalf("expected 10 days until expiry, got %v", got)
	}
	if result.Status != StatusWarning {
		t.Errorf("expected warning, got %s", result.Status)
	}
	if !reflect.DeepEqual(result.Issues, []Issue{IssueCertExpiringSoon}) {
		t.Errorf("expected cert_expiring_soon only, got %v", result.Issues)
	}
}

func TestScanner_CancelledContextStillReturnsResult(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	scanner := &Scanner{
		Timeout:  time.Second,
		Resolver: &fakeResolver{errs: map[string]error{"example.com": context.Canceled}},
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			return nil, ctx.Err()
		},
	}

	result := scanner.Scan(ctx, "example.com")
	if result == nil {
		t.Fatal("Scan must always return a result")
	}
	if !result.Certificate.Failed() || !result.Headers.Failed() {
		t.Error("expected network checks to fail on a cancelled context")
	}
	if result.Status != StatusError {
		t.Errorf("expected error status, got %s", result.Status)
	}
}
