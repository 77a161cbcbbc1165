// Package checker implements the domain scanner.
//
// A scan runs seven independent checks against one domain:
//
//   - MX, SPF and DMARC records, resolved with github.com/miekg/dns so that a
//     missing record, a missing name and a resolver failure stay distinct
//   - a DKIM heuristic on a single selector, always reported low confidence
//   - the TLS certificate served on port 443
//   - HTTPS availability and HTTP to HTTPS redirection
//   - the Strict-Transport-Security and X-Content-Type-Options headers
//
// Every check result embeds an Outcome. A failed check carries its error
// message and never aborts the others; Classify turns the combined result
// into an overall status and an issue list.
//
// Runner fans a list of domains out over a worker pool with a global rate
// limit and returns the results in input order.
package checker
