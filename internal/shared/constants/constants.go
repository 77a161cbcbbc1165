package constants

import (
	"io/fs"
	"time"
)

const (
	// DefaultDirPerm is the default permission used when creating directories.
	DefaultDirPerm fs.FileMode = 0o755
	// DefaultFilePerm is the default permission used when creating files.
	DefaultFilePerm fs.FileMode = 0o644
)

const (
	// DefaultCheckTimeout bounds every individual network check of a scan.
	DefaultCheckTimeout = 5 * time.Second
	// CertExpiryWarningDays marks a certificate as expiring soon.
	CertExpiryWarningDays = 30
	// RecordCaptureLimit caps how many characters of a matching TXT record we keep.
	RecordCaptureLimit = 500
	// DefaultDKIMSelector is the selector probed by the DKIM heuristic.
	DefaultDKIMSelector = "default"
	// DefaultScanDomain is scanned when an organization has no primary domain.
	DefaultScanDomain = "example.com"
	// FallbackNameserver is used when the system resolver config cannot be read.
	FallbackNameserver = "1.1.1.1:53"
	// HTTPSPort is the port dialed by the TLS certificate check.
	HTTPSPort = "443"
)

const (
	// TopRiskCount is how many findings a report lists as top risks.
	TopRiskCount = 3
)
