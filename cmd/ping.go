package cmd

import (
	"fmt"
	"time"

	"github.com/P70-ops/netanalyzer/internal/ping"
)

// RunPing sends ICMP echoes to one target and prints packet statistics.
func RunPing(configFile, target string, count int) error {
	if _, _, err := setup(configFile); err != nil {
		return err
	}
	if target == "" {
		return fmt.Errorf("ping requires a target host")
	}
	if count <= 0 {
		count = 4
	}

	res, err := ping.Run(target, count)
	if err != nil {
		return fmt.Errorf("ping %s: %w", target, err)
	}

	fmt.Printf("--- %s ping statistics ---\n", res.Target)
	fmt.Printf("%d packets transmitted, %d received, %.1f%% packet loss\n",
		res.PacketsSent, res.PacketsRecv, res.PacketLoss)
	if res.PacketsRecv > 0 {
		fmt.Printf("rtt min/avg/max = %s/%s/%s\n",
			res.MinRtt.Round(time.Microsecond),
			res.AvgRtt.Round(time.Microsecond),
			res.MaxRtt.Round(time.Microsecond))
	}
	if !res.Reachable() {
		return fmt.Errorf("%s is unreachable", target)
	}
	return nil
}
