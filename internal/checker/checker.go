package checker

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DomainScanner is implemented by *Scanner; the Runner only needs Scan.
type DomainScanner interface {
	Scan(ctx context.Context, domain string) *ScanResult
}

// ProgressFunc is called once per finished domain with its wall-clock duration in seconds.
type ProgressFunc func(domain string, result *ScanResult, duration float64)

// Runner scans several domains with bounded concurrency and a global rate limit.
type Runner struct {
	Concurrency int           // Maximum number of concurrent scans
	RateLimit   int           // Scans started per second (global)
	Timeout     time.Duration // Upper bound for one whole domain scan, 0 for none
}

// RunScans scans every domain and returns the results in input order.
// A domain that never started because ctx was cancelled gets a nil entry.
func (r *Runner) RunScans(ctx context.Context, domains []string, scanner DomainScanner, progressFn ProgressFunc) []*ScanResult {
	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	limit := rate.Inf
	burst := 1
	if r.RateLimit > 0 {
		limit = rate.Limit(r.RateLimit)
		burst = r.RateLimit
	}
	limiter := rate.NewLimiter(limit, burst)

	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	results := make([]*ScanResult, len(domains))

	for i, domain := range domains {
		wg.Add(1)
		go func(i int, d string) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			if err := limiter.Wait(ctx); err != nil {
				return
			}

			scanCtx := ctx
			if r.Timeout > 0 {
				var cancel context.CancelFunc
				scanCtx, cancel = context.WithTimeout(ctx, r.Timeout)
				defer cancel()
			}

			start := time.Now()
			result := scanner.Scan(scanCtx, d)
			if progressFn != nil {
				progressFn(d, result, time.Since(start).Seconds())
			}

			// Each goroutine owns slot i.
			results[i] = result
		}(i, domain)
	}

	wg.Wait()
	return results
}
