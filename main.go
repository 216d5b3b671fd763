package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/P70-ops/netanalyzer/cmd"
	"github.com/P70-ops/netanalyzer/internal/brand"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "report":
		reportFlags := flag.NewFlagSet("report", flag.ExitOnError)
		configFile := reportFlags.String("config", brand.DefaultConfigPath(), "Configuration file")
		reportFlags.StringVar(configFile, "c", brand.DefaultConfigPath(), "Configuration file (short)")

		format := reportFlags.String("format", "table", "Output format: table, json, yaml")
		reportFlags.StringVar(format, "o", "table", "Output format (short)")

		withSpeedtest := reportFlags.Bool("speedtest", false, "Also run the bandwidth measurement")
		save := reportFlags.Bool("save", false, "Persist the report to the history database")

		reportFlags.Parse(os.Args[2:])

		fail(cmd.RunReport(cmd.ReportOptions{
			ConfigFile: *configFile,
			Format:     *format,
			Speedtest:  *withSpeedtest,
			Save:       *save,
		}))

	case "scan":
		scanFlags := flag.NewFlagSet("scan", flag.ExitOnError)
		configFile := scanFlags.String("config", brand.DefaultConfigPath(), "Configuration file")
		ports := scanFlags.String("ports", "", "Port range, e.g. 1-1024")
		scanFlags.StringVar(ports, "p", "", "Port range (short)")
		timeout := scanFlags.Duration("timeout", 0, "Per-port dial timeout")
		scanFlags.DurationVar(timeout, "t", 0, "Per-port dial timeout (short)")
		concurrency := scanFlags.Int("concurrency", 0, "Max concurrent connection attempts")
		scanFlags.Parse(os.Args[2:])

		fail(cmd.RunScan(cmd.ScanOptions{
			ConfigFile:  *configFile,
			Target:      scanFlags.Arg(0),
			Ports:       *ports,
			Timeout:     *timeout,
			Concurrency: *concurrency,
		}))

	case "speedtest":
		stFlags := flag.NewFlagSet("speedtest", flag.ExitOnError)
		configFile := stFlags.String("config", brand.DefaultConfigPath(), "Configuration file")
		jsonOut := stFlags.Bool("json", false, "Emit JSON instead of text")
		stFlags.Parse(os.Args[2:])

		fail(cmd.RunSpeedtest(*configFile, *jsonOut))

	case "ping":
		pingFlags := flag.NewFlagSet("ping", flag.ExitOnError)
		configFile := pingFlags.String("config", brand.DefaultConfigPath(), "Configuration file")
		count := pingFlags.Int("count", 4, "Number of echo requests")
		pingFlags.IntVar(count, "n", 4, "Number of echo requests (short)")
		pingFlags.Parse(os.Args[2:])

		fail(cmd.RunPing(*configFile, pingFlags.Arg(0), *count))

	case "history":
		historyFlags := flag.NewFlagSet("history", flag.ExitOnError)
		configFile := historyFlags.String("config", brand.DefaultConfigPath(), "Configuration file")
		limit := historyFlags.Int("limit", 20, "Max entries to list")
		format := historyFlags.String("format", "table", "Output format for show: table, json, yaml")
		historyFlags.Parse(os.Args[2:])

		switch historyFlags.Arg(0) {
		case "", "list":
			fail(cmd.RunHistoryList(*configFile, *limit))
		case "show":
			fail(cmd.RunHistoryShow(*configFile, historyFlags.Arg(1), *format))
		default:
			fmt.Fprintf(os.Stderr, "Unknown history subcommand: %s\n", historyFlags.Arg(0))
			os.Exit(1)
		}

	case "version", "--version", "-v":
		fmt.Printf("%s version %s (%s/%s)\n", brand.Name, brand.Version, runtime.GOOS, runtime.GOARCH)

	case "help", "--help", "-h":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func fail(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`%s - %s

Usage:
  %s <command> [options]

Commands:
  report     Collect and print the full network diagnostic report
             Options: --format (-o) table|json|yaml, --speedtest, --save, --config (-c) <file>
  scan       Scan a TCP port range on a host
             Usage: %s scan [--ports (-p) <start-end>] [--timeout (-t) <dur>] [--concurrency <n>] <host>
  speedtest  Measure download/upload bandwidth
             Options: --json
  ping       Send ICMP echoes to a host
             Usage: %s ping [--count (-n) <n>] <host>
  history    List or re-render stored reports
             Usage: %s history [list|show <id>] [--limit <n>] [--format <fmt>]
  version    Print version information

Examples:
  %s report                          # Full diagnostic report
  %s report -o json --save           # JSON output, archived to history
  %s scan -p 1-1024 192.168.1.1      # Scan the first 1024 ports
  %s speedtest --json                # Bandwidth measurement as JSON
`, brand.Name, brand.Description, brand.BinaryName, brand.BinaryName, brand.BinaryName,
		brand.BinaryName, brand.BinaryName, brand.BinaryName, brand.BinaryName, brand.BinaryName)
}
