package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/P70-ops/netanalyzer/internal/probe"
)

// ScanOptions are the flags of the scan subcommand. Zero Timeout and
// Concurrency fall back to the config file values.
type ScanOptions struct {
	ConfigFile  string
	Target      string
	Ports       string
	Timeout     time.Duration
	Concurrency int
}

// RunScan probes a TCP port range on one target and prints the open ports.
func RunScan(opts ScanOptions) error {
	cfg, logger, err := setup(opts.ConfigFile)
	if err != nil {
		return err
	}
	if opts.Target == "" {
		return fmt.Errorf("scan requires a target host")
	}
	ports := opts.Ports
	if ports == "" {
		ports = cfg.Scan.DefaultPorts
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = cfg.Scan.ScanTimeout()
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = cfg.Scan.Concurrency
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	prober := probe.New(logger.WithComponent("probe"), probe.Config{
		Timeout:     timeout,
		Concurrency: concurrency,
	})

	open, err := prober.Scan(ctx, opts.Target, ports)
	if err != nil {
		return err
	}

	if len(open) == 0 {
		fmt.Printf("No open TCP ports on %s in range %s\n", opts.Target, ports)
		return nil
	}

	fmt.Printf("Open TCP ports on %s (%s):\n", opts.Target, ports)
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "PORT\tSERVICE")
	for _, p := range open {
		fmt.Fprintf(tw, "%d\t%s\n", p, wellKnownService(p))
	}
	tw.Flush()
	return nil
}

// wellKnownService names the handful of ports worth labeling in scan
// output; everything else renders as a dash.
func wellKnownService(port int) string {
	services := map[int]string{
		21: "ftp", 22: "ssh", 23: "telnet", 25: "smtp", 53: "dns",
		80: "http", 110: "pop3", 143: "imap", 443: "https",
		445: "smb", 3306: "mysql", 3389: "rdp", 5432: "postgres",
		6379: "redis", 8080: "http-alt",
	}
	if name, ok := services[port]; ok {
		return name
	}
	return "-"
}
