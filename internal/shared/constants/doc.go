// Package constants centralizes defaults shared across the CLI and the scanner.
//
// Check timeouts, the certificate warning window, TXT capture limits and the
// DKIM selector live here so cmd/ and internal/ agree on them without
// introducing import cycles.
package constants
