//go:build !linux

package collect

import (
	"context"

	"github.com/P70-ops/netanalyzer/internal/report"
)

func (c *Collector) collectARP(ctx context.Context, r *report.Report) error {
	out, err := c.run(ctx, "arp", "-a")
	if err != nil {
		r.ARP = report.TextSection{Err: err.Error()}
		return err
	}
	r.ARP = report.TextSection{Text: out}
	return nil
}
