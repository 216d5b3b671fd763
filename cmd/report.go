package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/P70-ops/netanalyzer/internal/collect"
	"github.com/P70-ops/netanalyzer/internal/history"
	"github.com/P70-ops/netanalyzer/internal/report"
	"github.com/P70-ops/netanalyzer/internal/speedtest"
)

// ReportOptions are the flags of the report subcommand.
type ReportOptions struct {
	ConfigFile string
	Format     string // table, json or yaml
	Speedtest  bool   // also run the bandwidth measurement
	Save       bool   // persist the report to the history database
}

// RunReport collects every diagnostic section and writes the report to
// stdout. Individual section failures are reported inline, not fatal.
func RunReport(opts ReportOptions) error {
	cfg, logger, err := setup(opts.ConfigFile)
	if err != nil {
		return err
	}
	format, err := report.ParseFormat(opts.Format)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	collector := collect.New(collect.Options{Config: cfg, Logger: logger})
	r := collector.CollectAll(ctx)

	if opts.Speedtest {
		orch := speedtest.New(logger.WithComponent("speedtest"),
			speedtest.NewNetBackend(), cfg.Speedtest.MeasureTimeout())
		st := orch.Measure(ctx)
		r.Speedtest = &st
	}

	if opts.Save {
		store, err := history.Open(history.Options{Path: cfg.History.Path})
		if err != nil {
			return fmt.Errorf("failed to open history: %w", err)
		}
		defer store.Close()
		if err := store.Save(ctx, r); err != nil {
			return err
		}
		logger.Info("Report saved", "id", r.ID, "path", cfg.History.Path)
	}

	return report.Write(os.Stdout, r, format)
}
