// Package speedtest coordinates a best-effort bandwidth measurement:
// one best-server negotiation followed by concurrent download and upload
// phases. The result is all-or-nothing; a half-complete bandwidth figure
// is worse than an honest failure.
package speedtest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/P70-ops/netanalyzer/internal/clock"
	"github.com/P70-ops/netanalyzer/internal/logging"
)

// Report is the outcome of one measurement. Exactly one variant is
// populated: either the four success fields or Err.
type Report struct {
	DownloadBps float64 `json:"download_bps,omitempty"`
	UploadBps   float64 `json:"upload_bps,omitempty"`
	PingMillis  float64 `json:"ping_ms,omitempty"`
	ServerName  string  `json:"server,omitempty"`
	Err         string  `json:"error,omitempty"`
}

// OK reports whether the measurement succeeded.
func (r Report) OK() bool {
	return r.Err == ""
}

// DownloadMbps returns the download rate in megabits per second.
func (r Report) DownloadMbps() float64 { return r.DownloadBps / 1e6 }

// UploadMbps returns the upload rate in megabits per second.
func (r Report) UploadMbps() float64 { return r.UploadBps / 1e6 }

func failure(err error) Report {
	return Report{Err: err.Error()}
}

// Server is one negotiated measurement endpoint.
type Server interface {
	Name() string
	PingMillis() float64
	// Download and Upload run one measurement phase and return the
	// measured rate in bits per second.
	Download(ctx context.Context) (float64, error)
	Upload(ctx context.Context) (float64, error)
}

// Backend negotiates the best measurement server. It is an interface so
// tests can measure without touching the network.
type Backend interface {
	BestServer(ctx context.Context) (Server, error)
}

// Orchestrator runs bandwidth measurements against a Backend.
type Orchestrator struct {
	logger  *logging.Logger
	backend Backend
	timeout time.Duration
}

// New creates an Orchestrator. A zero timeout means no whole-measurement
// deadline beyond the caller's context.
func New(logger *logging.Logger, backend Backend, timeout time.Duration) *Orchestrator {
	return &Orchestrator{
		logger:  logger,
		backend: backend,
		timeout: timeout,
	}
}

// Measure negotiates the best server, then measures download and upload
// concurrently and joins both before reporting. Any failure, during
// negotiation or either phase, yields the failure variant and discards
// partial numbers. Measure always returns a Report, never an error.
func (o *Orchestrator) Measure(ctx context.Context) Report {
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	began := clock.Now()
	server, err := o.backend.BestServer(ctx)
	if err != nil {
		o.logger.Warn("Best-server negotiation failed", "error", err)
		return failure(fmt.Errorf("server negotiation: %w", err))
	}
	o.logger.Info("Measuring bandwidth",
		"server", server.Name(),
		"ping_ms", server.PingMillis(),
	)

	// Download and upload are independent; measuring them concurrently
	// shortens wall-clock time and exercises both directions under
	// comparable network conditions.
	var (
		wg             sync.WaitGroup
		downBps, upBps float64
		downErr, upErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		downBps, downErr = server.Download(ctx)
	}()
	go func() {
		defer wg.Done()
		upBps, upErr = server.Upload(ctx)
	}()
	wg.Wait()

	if downErr != nil {
		return failure(fmt.Errorf("download measurement: %w", downErr))
	}
	if upErr != nil {
		return failure(fmt.Errorf("upload measurement: %w", upErr))
	}

	report := Report{
		DownloadBps: downBps,
		UploadBps:   upBps,
		PingMillis:  server.PingMillis(),
		ServerName:  server.Name(),
	}
	o.logger.Info("Bandwidth measurement complete",
		"download_mbps", fmt.Sprintf("%.2f", report.DownloadMbps()),
		"upload_mbps", fmt.Sprintf("%.2f", report.UploadMbps()),
		"duration", clock.Since(began),
	)
	return report
}
