package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/P70-ops/netanalyzer/internal/speedtest"
)

// RunSpeedtest measures download and upload bandwidth against the best
// available server and prints the result.
func RunSpeedtest(configFile string, jsonOut bool) error {
	cfg, logger, err := setup(configFile)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	orch := speedtest.New(logger.WithComponent("speedtest"),
		speedtest.NewNetBackend(), cfg.Speedtest.MeasureTimeout())

	fmt.Fprintln(os.Stderr, "Running speed test, this can take a minute...")
	r := orch.Measure(ctx)

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}

	if !r.OK() {
		return fmt.Errorf("speed test failed: %s", r.Err)
	}
	fmt.Printf("Server:   %s\n", r.ServerName)
	fmt.Printf("Ping:     %.1f ms\n", r.PingMillis)
	fmt.Printf("Download: %.2f Mbps\n", r.DownloadMbps())
	fmt.Printf("Upload:   %.2f Mbps\n", r.UploadMbps())
	return nil
}
