// Package probe performs TCP connect-scans against a single target.
//
// A connect-scan attempts a full TCP handshake per port, which needs no
// elevated privileges and is enough for a diagnostic tool. Attempts run
// concurrently but bounded: a token semaphore caps in-flight dials so a
// large range cannot exhaust file descriptors or threads.
package probe

import (
	"context"
	"fmt"
	"net"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/P70-ops/netanalyzer/internal/clock"
	"github.com/P70-ops/netanalyzer/internal/logging"
)

// Config holds prober configuration.
type Config struct {
	Timeout     time.Duration // Per-port dial timeout
	Concurrency int           // Max concurrent connection attempts
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Timeout:     1 * time.Second,
		Concurrency: 100,
	}
}

// Prober scans a port range on one target host.
type Prober struct {
	logger      *logging.Logger
	timeout     time.Duration
	concurrency int
}

// New creates a new Prober.
func New(logger *logging.Logger, cfg Config) *Prober {
	if cfg.Timeout == 0 {
		cfg.Timeout = 1 * time.Second
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = 100
	}
	return &Prober{
		logger:      logger,
		timeout:     cfg.Timeout,
		concurrency: cfg.Concurrency,
	}
}

// ParsePortRange parses an inclusive "start-end" port range.
// This is the only operation-level failure of a scan: a malformed range
// rejects the whole scan up front, it never partially scans.
func ParsePortRange(s string) (start, end int, err error) {
	first, second, ok := strings.Cut(s, "-")
	if !ok {
		return 0, 0, fmt.Errorf("invalid port range %q: want \"start-end\"", s)
	}
	start, err = strconv.Atoi(strings.TrimSpace(first))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid port range %q: %w", s, err)
	}
	end, err = strconv.Atoi(strings.TrimSpace(second))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid port range %q: %w", s, err)
	}
	if start < 1 || end > 65535 || start > end {
		return 0, 0, fmt.Errorf("invalid port range %q: want 1 <= start <= end <= 65535", s)
	}
	return start, end, nil
}

// Scan probes every port in the inclusive range and returns the open ones,
// sorted ascending. Individual connection failures, refusals and timeouts
// are not errors; they simply exclude the port. The scan returns only after
// every launched attempt has terminated. Cancelling ctx stops launching new
// attempts and aborts in-flight dials.
func (p *Prober) Scan(ctx context.Context, target, portRange string) ([]int, error) {
	start, end, err := ParsePortRange(portRange)
	if err != nil {
		return nil, err
	}

	began := clock.Now()
	p.logger.Info("Starting port scan",
		"target", target,
		"range", portRange,
		"ports", end-start+1,
		"concurrency", p.concurrency,
	)

	var (
		wg      sync.WaitGroup
		openMu  sync.Mutex
		open    = []int{}
		sem     = make(chan struct{}, p.concurrency)
		stopped bool
	)

	for port := start; port <= end; port++ {
		select {
		case <-ctx.Done():
			stopped = true
		default:
		}
		if stopped {
			break
		}

		wg.Add(1)
		go func(port int) {
			defer wg.Done()
			sem <- struct{}{}        // Acquire
			defer func() { <-sem }() // Release

			if p.isPortOpen(ctx, target, port) {
				openMu.Lock()
				open = append(open, port)
				openMu.Unlock()
			}
		}(port)
	}

	// Join barrier: detection order is nondeterministic, the operation is
	// complete only once every attempt has terminated.
	wg.Wait()
	sort.Ints(open)

	p.logger.Info("Port scan complete",
		"target", target,
		"open", len(open),
		"duration", clock.Since(began),
	)

	if stopped {
		return open, ctx.Err()
	}
	return open, nil
}

// isPortOpen checks if a TCP port accepts a connection within the timeout.
func (p *Prober) isPortOpen(ctx context.Context, target string, port int) bool {
	addr := net.JoinHostPort(target, strconv.Itoa(port))

	dialer := net.Dialer{Timeout: p.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}
