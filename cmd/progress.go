package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/stacktrail/guardrail/internal/checker"
)

const progressRefresh = 300 * time.Millisecond

// progressPrinter renders a single self-overwriting status line while a
// multi-domain scan runs.
type progressPrinter struct {
	out      io.Writer
	total    int
	name     string
	mu       sync.Mutex
	ok       int
	warn     int
	fail     int
	duration float64
	updates  chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func newProgressPrinter(out io.Writer, total int, name string) *progressPrinter {
	if out == nil {
		out = os.Stderr
	}
	if total <= 0 {
		total = 1
	}
	return &progressPrinter{
		out:     out,
		total:   total,
		name:    name,
		updates: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
}

func (p *progressPrinter) Start() {
	go p.loop()
}

func (p *progressPrinter) Increment(status checker.Status, duration float64) {
	p.mu.Lock()
	switch status {
	case checker.StatusOK:
		p.ok++
	case checker.StatusWarning:
		p.warn++
	default:
		p.fail++
	}
	p.duration += duration
	p.mu.Unlock()

	select {
	case p.updates <- struct{}{}:
	default:
	}
}

func (p *progressPrinter) Stop() {
	p.stopOnce.Do(func() {
		close(p.done)
	})
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "\r%s\r", strings.Repeat(" ", 80))
	fmt.Fprintln(p.out, p.lineLocked())
}

func (p *progressPrinter) loop() {
	ticker := time.NewTicker(progressRefresh)
	defer ticker.Stop()

	for {
		select {
		case <-p.updates:
			p.print()
		case <-ticker.C:
			p.print()
		case <-p.done:
			return
		}
	}
}

func (p *progressPrinter) print() {
	p.mu.Lock()
	defer p.mu.Unlock()
	select {
	case <-p.done:
		return
	default:
	}
	fmt.Fprintf(p.out, "\r%s", p.lineLocked())
}

func (p *progressPrinter) lineLocked() string {
	completed := p.ok + p.warn + p.fail
	if completed > p.total {
		p.total = completed
	}

	percent := (float64(completed) / float64(p.total)) * 100
	avg := 0.0
	if completed > 0 {
		avg = p.duration / float64(completed)
	}

	return fmt.Sprintf("[%s] Progress: %d/%d (%.1f%%) OK:%d Warn:%d Error:%d Avg:%.2fs",
		p.name, completed, p.total, percent, p.ok, p.warn, p.fail, avg)
}
