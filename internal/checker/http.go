package checker

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// UserAgent is sent with every HTTP probe.
const UserAgent = "guardrail-scanner/1.0"

const (
	maxRedirects  = 10
	maxDrainBytes = 1 << 20
)

// newHTTPClient builds a client owned by a single scan. Callers must call
// CloseIdleConnections when the scan is done.
func newHTTPClient(timeout time.Duration, rootCAs *x509.CertPool, dial DialContextFunc) *http.Client {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			RootCAs:    rootCAs,
			MinVersion: tls.VersionTLS12,
		},
		TLSHandshakeTimeout:   timeout,
		ResponseHeaderTimeout: timeout,
		DisableKeepAlives:     true,
	}
	if dial != nil {
		transport.DialContext = dial
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}
}

// get issues a GET and follows redirects. The body is drained and closed
// before returning; only the final URL, status and headers are kept.
func get(ctx context.Context, client *http.Client, url string) (Probe, http.Header) {
	probe := Probe{URL: url}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		probe.Outcome = failed("create request: %v", err)
		return probe, nil
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		probe.Outcome = failed("%v", err)
		return probe, nil
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainBytes))

	probe.Outcome = succeeded()
	probe.StatusCode = resp.StatusCode
	probe.FinalURL = resp.Request.URL.String()
	return probe, resp.Header
}

// checkRedirect confirms HTTPS is served and that plain HTTP ends up on HTTPS.
// The two requests run concurrently, each under its own timeout, so a hung
// HTTPS endpoint cannot starve the HTTP probe.
func checkRedirect(ctx context.Context, client *http.Client, domain string, timeout time.Duration) RedirectCheck {
	var result RedirectCheck
	var wg sync.WaitGroup
	probe := func(dst *Probe, url string) {
		defer wg.Done()
		probeCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		*dst, _ = get(probeCtx, client, url)
	}

	wg.Add(2)
	go probe(&result.HTTPS, "https://"+domain)
	go probe(&result.HTTP, "http://"+domain)
	wg.Wait()

	result.HTTPSOK = !result.HTTPS.Failed() && isHTTPS(result.HTTPS.FinalURL)
	result.RedirectsToHTTPS = !result.HTTP.Failed() && isHTTPS(result.HTTP.FinalURL)
	return result
}

// checkSecurityHeaders fetches the HTTPS front page once and inspects its headers.
func checkSecurityHeaders(ctx context.Context, client *http.Client, domain string) HeaderCheck {
	probe, headers := get(ctx, client, "https://"+domain)
	if probe.Failed() {
		return HeaderCheck{Outcome: probe.Outcome}
	}
	result := AnalyzeSecurityHeaders(headers)
	result.Outcome = succeeded()
	return result
}

func isHTTPS(u string) bool {
	return strings.HasPrefix(strings.ToLower(u), "https://")
}
