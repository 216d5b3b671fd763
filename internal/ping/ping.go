// Package ping wraps ICMP echo testing. Unprivileged UDP ping is used so
// the tool works without CAP_NET_RAW.
package ping

import (
	"fmt"
	"time"

	probing "github.com/prometheus-community/pro-bing"
)

// Result summarizes one ping run.
type Result struct {
	Target      string        `json:"target"`
	PacketsSent int           `json:"packets_sent"`
	PacketsRecv int           `json:"packets_recv"`
	PacketLoss  float64       `json:"packet_loss"`
	AvgRtt      time.Duration `json:"avg_rtt"`
	MinRtt      time.Duration `json:"min_rtt"`
	MaxRtt      time.Duration `json:"max_rtt"`
}

// Reachable reports whether any echo reply came back.
func (r *Result) Reachable() bool {
	return r.PacketsRecv > 0
}

// RunFunc performs a ping run. It is a variable so tests can stub the
// network out.
var RunFunc = func(target string, count int, timeout time.Duration) (*Result, error) {
	pinger, err := probing.NewPinger(target)
	if err != nil {
		return nil, fmt.Errorf("failed to create pinger: %w", err)
	}

	pinger.Count = count
	pinger.Timeout = timeout
	pinger.SetPrivileged(false)

	if err := pinger.Run(); err != nil {
		return nil, err
	}

	stats := pinger.Statistics()
	return &Result{
		Target:      target,
		PacketsSent: stats.PacketsSent,
		PacketsRecv: stats.PacketsRecv,
		PacketLoss:  stats.PacketLoss,
		AvgRtt:      stats.AvgRtt,
		MinRtt:      stats.MinRtt,
		MaxRtt:      stats.MaxRtt,
	}, nil
}

// Run pings target count times with a deadline proportional to count.
func Run(target string, count int) (*Result, error) {
	return RunFunc(target, count, time.Duration(count)*2*time.Second)
}

// Check performs a single-echo liveness check.
func Check(target string) error {
	res, err := RunFunc(target, 1, 1*time.Second)
	if err != nil {
		return err
	}
	if !res.Reachable() {
		return fmt.Errorf("packet loss")
	}
	return nil
}
