package checker

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/miekg/dns"
	"github.com/stacktrail/guardrail/internal/shared/constants"
)

const resolvConfPath = "/etc/resolv.conf"

// Resolver answers the two record types the scanner needs. A name that exists
// but has no records of the requested type yields an empty slice and no error.
type Resolver interface {
	LookupMX(ctx context.Context, name string) ([]string, error)
	LookupTXT(ctx context.Context, name string) ([]string, error)
}

// DNSResolver queries nameservers directly so NXDOMAIN, empty answers and
// transport failures can be told apart.
type DNSResolver struct {
	Servers []string
	Timeout time.Duration
}

// NewDNSResolver returns a resolver for servers, or the system nameservers when servers is empty.
func NewDNSResolver(servers []string, timeout time.Duration) *DNSResolver {
	if len(servers) == 0 {
		servers = SystemNameservers()
	}
	normalized := make([]string, 0, len(servers))
	for _, s := range servers {
		normalized = append(normalized, withDefaultPort(s))
	}
	return &DNSResolver{Servers: normalized, Timeout: timeout}
}

// SystemNameservers reads resolv.conf, falling back to a public resolver.
func SystemNameservers() []string {
	cfg, err := dns.ClientConfigFromFile(resolvConfPath)
	if err != nil || len(cfg.Servers) == 0 {
		return []string{constants.FallbackNameserver}
	}
	servers := make([]string, 0, len(cfg.Servers))
	for _, s := range cfg.Servers {
		servers = append(servers, net.JoinHostPort(s, cfg.Port))
	}
	return servers
}

func withDefaultPort(server string) string {
	if _, _, err := net.SplitHostPort(server); err == nil {
		return server
	}
	return net.JoinHostPort(strings.Trim(server, "[]"), "53")
}

// LookupMX returns the mail exchanger hostnames for name without the trailing dot.
func (r *DNSResolver) LookupMX(ctx context.Context, name string) ([]string, error) {
	answers, err := r.query(ctx, name, dns.TypeMX)
	if err != nil {
		return nil, err
	}
	hosts := make([]string, 0, len(answers))
	for _, rr := range answers {
		if mx, ok := rr.(*dns.MX); ok {
			hosts = append(hosts, strings.TrimSuffix(mx.Mx, "."))
		}
	}
	return hosts, nil
}

// LookupTXT returns each TXT record of name with its strings concatenated.
func (r *DNSResolver) LookupTXT(ctx context.Context, name string) ([]string, error) {
	answers, err := r.query(ctx, name, dns.TypeTXT)
	if err != nil {
		return nil, err
	}
	records := make([]string, 0, len(answers))
	for _, rr := range answers {
		if txt, ok := rr.(*dns.TXT); ok {
			records = append(records, strings.Join(txt.Txt, ""))
		}
	}
	return records, nil
}

// query asks each server in turn until one gives a definitive answer.
func (r *DNSResolver) query(ctx context.Context, name string, qtype uint16) ([]dns.RR, error) {
	lookupErr := &LookupError{Name: name, Type: dns.TypeToString[qtype]}
	if len(r.Servers) == 0 {
		lookupErr.Err = ErrNoNameservers
		return nil, lookupErr
	}

	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(name), qtype)
	msg.RecursionDesired = true

	udp := &dns.Client{Net: "udp", Timeout: r.Timeout}
	tcp := &dns.Client{Net: "tcp", Timeout: r.Timeout}

	var lastErr error
	for _, server := range r.Servers {
		if err := ctx.Err(); err != nil {
			lastErr = err
			break
		}

		resp, _, err := udp.ExchangeContext(ctx, msg, server)
		if err == nil && resp != nil && resp.Truncated {
			resp, _, err = tcp.ExchangeContext(ctx, msg, server)
		}
		if err != nil {
			lastErr = err
			continue
		}
		if resp == nil {
			lastErr = fmt.Errorf("empty response from %s", server)
			continue
		}

		switch resp.Rcode {
		case dns.RcodeSuccess:
			return resp.Answer, nil
		case dns.RcodeNameError:
			lookupErr.Err = ErrNameNotFound
			return nil, lookupErr
		default:
			lastErr = fmt.Errorf("server %s answered %s", server, dns.RcodeToString[resp.Rcode])
		}
	}

	lookupErr.Err = lastErr
	return nil, lookupErr
}
