package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/P70-ops/netanalyzer/internal/history"
	"github.com/P70-ops/netanalyzer/internal/report"
)

// RunHistoryList prints stored reports, newest first.
func RunHistoryList(configFile string, limit int) error {
	cfg, _, err := setup(configFile)
	if err != nil {
		return err
	}

	store, err := history.Open(history.Options{Path: cfg.History.Path})
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer store.Close()

	entries, err := store.List(context.Background(), limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No stored reports.")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "ID\tHOST\tGENERATED\tEXTERNAL IP")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			e.ID, e.Hostname, e.GeneratedAt.Local().Format(time.RFC3339), e.ExternalIP)
	}
	return tw.Flush()
}

// RunHistoryShow re-renders one stored report by its ID.
func RunHistoryShow(configFile, id, formatName string) error {
	cfg, _, err := setup(configFile)
	if err != nil {
		return err
	}
	if id == "" {
		return fmt.Errorf("history show requires a report ID")
	}
	format, err := report.ParseFormat(formatName)
	if err != nil {
		return err
	}

	store, err := history.Open(history.Options{Path: cfg.History.Path})
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer store.Close()

	r, err := store.Get(context.Background(), id)
	if err != nil {
		return err
	}
	return report.Write(os.Stdout, r, format)
}
