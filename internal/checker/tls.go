package checker

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/asn1"
	"fmt"
	"math"
	"net"
	"strings"
	"time"

	"github.com/stacktrail/guardrail/internal/shared/constants"
)

// DialContextFunc matches net.Dialer.DialContext.
type DialContextFunc func(ctx context.Context, network, addr string) (net.Conn, error)

// oidNames maps the common distinguished name attributes to their long names.
var oidNames = map[string]string{
	"2.5.4.3":  "commonName",
	"2.5.4.5":  "serialNumber",
	"2.5.4.6":  "countryName",
	"2.5.4.7":  "localityName",
	"2.5.4.8":  "stateOrProvinceName",
	"2.5.4.10": "organizationName",
	"2.5.4.11": "organizationalUnitName",
}

// tlsProbe performs the certificate check against host:443.
type tlsProbe struct {
	RootCAs     *x509.CertPool
	DialContext DialContextFunc
	Now         func() time.Time
}

func (p tlsProbe) check(ctx context.Context, host string) CertificateCheck {
	cfg := &tls.Config{
		ServerName: host,
		RootCAs:    p.RootCAs,
		MinVersion: tls.VersionTLS12,
	}
	conn, err := p.handshake(ctx, net.JoinHostPort(host, constants.HTTPSPort), cfg)
	if err != nil {
		return CertificateCheck{Outcome: failed("%v", err)}
	}
	defer conn.Close()

	state := conn.ConnectionState()
	if len(state.PeerCertificates) == 0 {
		return CertificateCheck{Outcome: failed("server presented no certificate")}
	}
	leaf := state.PeerCertificates[0]

	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	expires := leaf.NotAfter.UTC()
	days := daysUntil(expires, now())
	return CertificateCheck{
		Outcome:         succeeded(),
		Valid:           true,
		Expires:         &expires,
		DaysUntilExpiry: &days,
		Issuer:          flattenName(leaf.Issuer),
	}
}

// handshake opens the TCP connection and runs the TLS handshake on top of it.
// The raw connection is closed on every failure path.
func (p tlsProbe) handshake(ctx context.Context, addr string, cfg *tls.Config) (*tls.Conn, error) {
	dial := p.DialContext
	if dial == nil {
		dial = (&net.Dialer{}).DialContext
	}
	raw, err := dial(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	conn := tls.Client(raw, cfg)
	if err := conn.HandshakeContext(ctx); err != nil {
		raw.Close()
		return nil, err
	}
	return conn, nil
}

// daysUntil returns whole days from now to t, rounding toward negative infinity.
func daysUntil(t, now time.Time) int {
	return int(math.Floor(t.Sub(now).Hours() / 24))
}

// flattenName renders a distinguished name as "countryName=US, organizationName=...".
func flattenName(name pkix.Name) string {
	parts := make([]string, 0, len(name.Names))
	for _, atv := range name.Names {
		parts = append(parts, fmt.Sprintf("%s=%v", attributeName(atv.Type), atv.Value))
	}
	return strings.Join(parts, ", ")
}

func attributeName(oid asn1.ObjectIdentifier) string {
	if n, ok := oidNames[oid.String()]; ok {
		return n
	}
	return oid.String()
}
