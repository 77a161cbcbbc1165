package checker

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	sharedErrors "github.com/stacktrail/guardrail/internal/shared/errors"
	"golang.org/x/net/publicsuffix"
)

// NormalizeDomain reduces user input to a bare, lower-cased hostname.
// It accepts the same loose formats people paste into a form:
//   - example.com
//   - https://Example.com/path
//   - example.com:8443
//   - example.com.
func NormalizeDomain(input string) (string, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return "", sharedErrors.ErrEmptyDomain
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || strings.Contains(parsed.Scheme, ".") || parsed.Host == "" {
		parsed, err = url.Parse("http://" + raw)
		if err != nil {
			return "", fmt.Errorf("%w: %q", sharedErrors.ErrInvalidDomain, input)
		}
	}

	host := strings.ToLower(strings.TrimSuffix(parsed.Hostname(), "."))
	if host == "" {
		return "", fmt.Errorf("%w: %q", sharedErrors.ErrInvalidDomain, input)
	}
	if net.ParseIP(host) != nil {
		return "", fmt.Errorf("%w: %q is an IP address", sharedErrors.ErrInvalidDomain, input)
	}
	if !strings.Contains(host, ".") {
		return "", fmt.Errorf("%w: %q has no top-level domain", sharedErrors.ErrInvalidDomain, input)
	}
	for _, label := range strings.Split(host, ".") {
		if !validLabel(label) {
			return "", fmt.Errorf("%w: bad label %q in %q", sharedErrors.ErrInvalidDomain, label, input)
		}
	}
	return host, nil
}

func validLabel(label string) bool {
	if label == "" || len(label) > 63 {
		return false
	}
	if label[0] == '-' || label[len(label)-1] == '-' {
		return false
	}
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

// RegistrableDomain returns the eTLD+1 of host, or host itself when the
// public suffix list has no answer (e.g. the host is itself a public suffix).
func RegistrableDomain(host string) string {
	registrable, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return registrable
}
