package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/stacktrail/guardrail/internal/checker"
	"go.uber.org/zap"
)

var scanCmd = &cobra.Command{
	Use:   "scan DOMAIN...",
	Short: "Run passive security checks against one or more domains",
	Long: `Scan resolves MX, SPF, DMARC and a DKIM record (default selector, low
confidence), checks the TLS certificate on port 443, confirms HTTPS is served
and that plain HTTP redirects to it, and inspects the Strict-Transport-Security
and X-Content-Type-Options headers. A failure in one check never stops the
others. Several domains are scanned concurrently under a global rate limit.`,
	Example: `  guardrail scan example.com
  guardrail scan example.com example.org -o json --progress
  guardrail scan example.com --nameserver 9.9.9.9 --dkim-selector google`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx := getAppContext(cmd)

		domains, err := normalizeDomains(args)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
		defer stop()

		results := runScans(ctx, appCtx, domains, cmd.ErrOrStderr())

		var payload any = results
		if len(results) == 1 {
			payload = results[0]
		}
		return writeOutput(cmd.OutOrStdout(), appCtx.Config.Output.Format, payload, func(w io.Writer) error {
			for i, r := range results {
				if i > 0 {
					fmt.Fprintln(w)
				}
				printScanResult(w, r)
			}
			return nil
		})
	},
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func normalizeDomains(inputs []string) ([]string, error) {
	domains := make([]string, 0, len(inputs))
	for _, in := range inputs {
		d, err := checker.NormalizeDomain(in)
		if err != nil {
			return nil, &InvalidDomainError{Input: in, Err: err}
		}
		domains = append(domains, d)
	}
	return domains, nil
}

// newScanner builds a scanner from the runtime configuration.
func newScanner(appCtx *AppContext) *checker.Scanner {
	cfg := appCtx.Config.Scan
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second

	var logger *zap.Logger
	if appCtx.Logger != nil {
		logger = appCtx.Logger.Desugar()
	}
	return &checker.Scanner{
		Timeout:      timeout,
		DKIMSelector: cfg.DKIMSelector,
		Resolver:     checker.NewDNSResolver(cfg.Nameservers, timeout),
		Logger:       logger,
	}
}

// runScans scans a single domain directly and fans out through the Runner
// otherwise. Results are returned in input order; a domain skipped because of
// cancellation is dropped.
func runScans(ctx context.Context, appCtx *AppContext, domains []string, progressOut io.Writer) []*checker.ScanResult {
	scanner := newScanner(appCtx)
	if len(domains) == 1 {
		return []*checker.ScanResult{scanner.Scan(ctx, domains[0])}
	}

	cfg := appCtx.Config.Scan
	runner := &checker.Runner{
		Concurrency: cfg.Concurrency,
		RateLimit:   cfg.RateLimit,
	}

	var progress *progressPrinter
	var progressFn checker.ProgressFunc
	if cfg.Progress {
		progress = newProgressPrinter(progressOut, len(domains), "scan")
		progress.Start()
		progressFn = func(domain string, result *checker.ScanResult, duration float64) {
			progress.Increment(result.Status, duration)
		}
	}

	results := runner.RunScans(ctx, domains, scanner, progressFn)
	if progress != nil {
		progress.Stop()
	}

	completed := make([]*checker.ScanResult, 0, len(results))
	for i, r := range results {
		if r == nil {
			appCtx.Logger.Warnw("scan skipped", "domain", domains[i], "reason", ctx.Err())
			continue
		}
		completed = append(completed, r)
	}
	return completed
}

func printScanResult(w io.Writer, r *checker.ScanResult) {
	fmt.Fprintf(w, "%s %s", colorBold("Domain:"), r.Domain)
	if r.Registrable != "" && r.Registrable != r.Domain {
		fmt.Fprintf(w, " (registrable: %s)", r.Registrable)
	}
	fmt.Fprintf(w, "\nOverall status: %s", formatStatusWithColor(string(r.Status)))
	if len(r.Issues) > 0 {
		issues := make([]string, len(r.Issues))
		for i, issue := range r.Issues {
			issues[i] = string(issue)
		}
		fmt.Fprintf(w, " (%s)", strings.Join(issues, ", "))
	}
	fmt.Fprintln(w)

	printRecord(w, "MX", r.MX)
	printRecord(w, "SPF", r.SPF)
	printRecord(w, "DMARC", r.DMARC)
	printRecord(w, fmt.Sprintf("DKIM (%s, low confidence)", r.DKIM.Selector), r.DKIM)

	switch {
	case r.Certificate.Valid && r.Certificate.DaysUntilExpiry != nil:
		fmt.Fprintf(w, "  %-28s %s, expires in %d days, issuer %s\n", "TLS certificate",
			formatStatusWithColor("ok"), *r.Certificate.DaysUntilExpiry, r.Certificate.Issuer)
	case r.Certificate.Valid:
		fmt.Fprintf(w, "  %-28s %s\n", "TLS certificate", formatStatusWithColor("ok"))
	default:
		fmt.Fprintf(w, "  %-28s %s %s\n", "TLS certificate", formatStatusWithColor("error"), r.Certificate.Error)
	}

	printBool(w, "HTTPS served", r.Redirect.HTTPSOK, r.Redirect.HTTPS.Error)
	printBool(w, "HTTP redirects to HTTPS", r.Redirect.RedirectsToHTTPS, r.Redirect.HTTP.Error)
	printBool(w, "Strict-Transport-Security", r.Headers.HSTS, r.Headers.Error)
	printBool(w, "X-Content-Type-Options", r.Headers.XContentTypeOptions, r.Headers.Error)
	for _, rec := range r.Headers.Recommendations {
		fmt.Fprintf(w, "    %s %s\n", colorInfo("fix"), rec)
	}
	fmt.Fprintf(w, "  %-28s %.0f ms\n", "Duration", r.DurationMS)
}

func printRecord(w io.Writer, label string, rc checker.RecordCheck) {
	switch {
	case rc.Failed():
		fmt.Fprintf(w, "  %-28s %s %s\n", label, formatStatusWithColor("failed"), rc.Error)
	case rc.Present:
		detail := ""
		if len(rc.Records) > 0 {
			detail = rc.Records[0]
			if len(rc.Records) > 1 {
				detail += fmt.Sprintf(" (+%d more)", len(rc.Records)-1)
			}
		}
		fmt.Fprintf(w, "  %-28s %s %s\n", label, formatStatusWithColor("present"), detail)
	default:
		fmt.Fprintf(w, "  %-28s %s\n", label, formatStatusWithColor("missing"))
	}
}

func printBool(w io.Writer, label string, ok bool, reason string) {
	if ok {
		fmt.Fprintf(w, "  %-28s %s\n", label, formatStatusWithColor("yes"))
		return
	}
	if reason != "" {
		fmt.Fprintf(w, "  %-28s %s %s\n", label, formatStatusWithColor("no"), reason)
		return
	}
	fmt.Fprintf(w, "  %-28s %s\n", label, formatStatusWithColor("no"))
}

func init() {
	scanCmd.Flags().IntVar(&cliConfig.Scan.TimeoutSecs, "timeout", defaultScanTimeoutSecs, "per-check timeout in seconds")
	scanCmd.Flags().StringVar(&cliConfig.Scan.DKIMSelector, "dkim-selector", cliConfig.Scan.DKIMSelector, "DKIM selector to probe")
	scanCmd.Flags().StringSliceVar(&cliConfig.Scan.Nameservers, "nameserver", nil, "nameserver host[:port] (repeatable, default from resolv.conf)")
	scanCmd.Flags().IntVar(&cliConfig.Scan.Concurrency, "concurrency", defaultScanConcurrency, "concurrent domain scans")
	scanCmd.Flags().IntVar(&cliConfig.Scan.RateLimit, "rate-limit", defaultScanRateLimit, "domain scans started per second")
	scanCmd.Flags().BoolVar(&cliConfig.Scan.Progress, "progress", false, "show progress when scanning several domains")
}
