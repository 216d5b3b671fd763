// Package extip resolves the host's public IP via HTTPS echo services.
package extip

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/P70-ops/netanalyzer/internal/brand"
	"github.com/P70-ops/netanalyzer/internal/logging"
)

// maxBodySize bounds the echo response; a public-IP echo is a few bytes.
const maxBodySize = 256

// Lookup queries the configured endpoints in order and returns the first
// successful echo, trimmed. Endpoints are tried strictly in fallback order:
// endpoint 1, then on any failure endpoint 2, and so on.
type Lookup struct {
	logger    *logging.Logger
	endpoints []string
	client    *http.Client
}

// New creates a Lookup. The http.Client is replaceable for tests.
func New(logger *logging.Logger, endpoints []string, timeout time.Duration) *Lookup {
	return &Lookup{
		logger:    logger,
		endpoints: endpoints,
		client:    &http.Client{Timeout: timeout},
	}
}

// WithClient overrides the HTTP client, returning the Lookup for chaining.
func (l *Lookup) WithClient(c *http.Client) *Lookup {
	l.client = c
	return l
}

// IP returns the public IP, or an error when every endpoint failed.
func (l *Lookup) IP(ctx context.Context) (string, error) {
	var lastErr error
	for _, endpoint := range l.endpoints {
		ip, err := l.fetch(ctx, endpoint)
		if err != nil {
			l.logger.Debug("Public IP endpoint failed", "endpoint", endpoint, "error", err)
			lastErr = err
			continue
		}
		return ip, nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no endpoints configured")
	}
	return "", fmt.Errorf("all public IP endpoints failed: %w", lastErr)
}

// Describe returns the public IP, or a displayable "Error: ..." placeholder.
// It never fails; the collector embeds the result directly in the report.
func (l *Lookup) Describe(ctx context.Context) string {
	ip, err := l.IP(ctx)
	if err != nil {
		return "Error: " + err.Error()
	}
	return ip
}

func (l *Lookup) fetch(ctx context.Context, endpoint string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", brand.UserAgent())

	resp, err := l.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s returned status %d", endpoint, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", err
	}
	ip := strings.TrimSpace(string(body))
	if ip == "" {
		return "", fmt.Errorf("%s returned an empty body", endpoint)
	}
	return ip, nil
}
