// Package report turns a scoring result and a domain scan into the
// organization-facing report: a one-line summary, the top three risks with
// their remediation steps and ready-to-file ticket descriptions. Reports
// render as plain text, markdown, HTML or PDF.
package report
