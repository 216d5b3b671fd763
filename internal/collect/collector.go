// Package collect gathers every diagnostic section into one report.
//
// Collection is best-effort: items run sequentially, each records its
// elapsed time and outcome, and one failing item never aborts the rest.
package collect

import (
	"context"
	"os"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/P70-ops/netanalyzer/internal/clock"
	"github.com/P70-ops/netanalyzer/internal/config"
	"github.com/P70-ops/netanalyzer/internal/extip"
	"github.com/P70-ops/netanalyzer/internal/logging"
	"github.com/P70-ops/netanalyzer/internal/ping"
	"github.com/P70-ops/netanalyzer/internal/report"
	"github.com/P70-ops/netanalyzer/internal/routetable"
)

// CommandRunner executes an external command and returns its decoded output.
// It exists so tests never shell out.
type CommandRunner func(ctx context.Context, name string, args ...string) (string, error)

// DNSProbe measures one resolver's answer latency.
type DNSProbe func(ctx context.Context, server string) (time.Duration, error)

// PingFunc performs a single-target liveness ping.
type PingFunc func(target string) (*ping.Result, error)

// Options configures a Collector. Zero fields get production defaults.
type Options struct {
	Config   *config.Config
	Logger   *logging.Logger
	Clock    clock.Clock
	Fetcher  routetable.Fetcher
	Runner   CommandRunner
	ExtIP    *extip.Lookup
	DNSProbe DNSProbe
	Ping     PingFunc
}

// Collector sequences the diagnostic items.
type Collector struct {
	cfg      *config.Config
	logger   *logging.Logger
	clk      clock.Clock
	fetcher  routetable.Fetcher
	run      CommandRunner
	extIP    *extip.Lookup
	dnsProbe DNSProbe
	ping     PingFunc
}

// New creates a Collector.
func New(opts Options) *Collector {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}
	if opts.Clock == nil {
		opts.Clock = &clock.RealClock{}
	}
	if opts.Fetcher == nil {
		opts.Fetcher = routetable.CommandFetcher{}
	}
	if opts.Runner == nil {
		opts.Runner = runCommand
	}
	if opts.ExtIP == nil {
		opts.ExtIP = extip.New(opts.Logger.WithComponent("extip"),
			opts.Config.ExternalIP.Endpoints, opts.Config.ExternalIP.LookupTimeout())
	}
	if opts.DNSProbe == nil {
		opts.DNSProbe = probeDNSServer
	}
	if opts.Ping == nil {
		opts.Ping = func(target string) (*ping.Result, error) {
			return ping.RunFunc(target, 1, time.Second)
		}
	}
	return &Collector{
		cfg:      opts.Config,
		logger:   opts.Logger.WithComponent("collect"),
		clk:      opts.Clock,
		fetcher:  opts.Fetcher,
		run:      opts.Runner,
		extIP:    opts.ExtIP,
		dnsProbe: opts.DNSProbe,
		ping:     opts.Ping,
	}
}

// CollectAll runs every diagnostic item and returns the aggregate report.
// It always returns a report; failures are recorded per item.
func (c *Collector) CollectAll(ctx context.Context) *report.Report {
	began := c.clk.Now()
	hostname, _ := os.Hostname()

	r := &report.Report{
		ID:          uuid.NewString(),
		Hostname:    hostname,
		GeneratedAt: began,
	}

	items := []struct {
		name string
		fn   func(ctx context.Context, r *report.Report) error
	}{
		{"System Info", c.collectSystem},
		{"Routing Table", c.collectRoutes},
		{"Interfaces", c.collectInterfaces},
		{"ARP Table", c.collectARP},
		{"DNS Info", c.collectDNS},
		{"Gateways", c.collectGateways},
		{"External IP", c.collectExternalIP},
		{"WiFi Info", c.collectWiFi},
		{"Active Connections", c.collectConnections},
	}

	for _, item := range items {
		start := c.clk.Now()
		err := item.fn(ctx, r)
		elapsed := c.clk.Since(start)

		timing := report.Timing{Name: item.name, Elapsed: elapsed}
		if err != nil {
			timing.Err = err.Error()
			c.logger.Warn("Collection item failed", "item", item.name, "error", err, "elapsed", elapsed)
		} else {
			c.logger.Debug("Collection item done", "item", item.name, "elapsed", elapsed)
		}
		r.Timings = append(r.Timings, timing)
	}

	r.Elapsed = c.clk.Since(began)
	return r
}

func (c *Collector) collectSystem(ctx context.Context, r *report.Report) error {
	info := &report.SystemInfo{
		OS:   runtime.GOOS,
		Arch: runtime.GOARCH,
	}
	info.Hostname, _ = os.Hostname()
	fillUname(info)
	r.System = report.SystemSection{Info: info}
	return nil
}

func (c *Collector) collectRoutes(ctx context.Context, r *report.Report) error {
	family, ok := routetable.Native()
	if !ok {
		r.Routes = report.RoutesSection{Err: "unsupported OS"}
		return errUnsupported(runtime.GOOS)
	}
	records, err := routetable.FetchAndParse(ctx, c.fetcher, family)
	if err != nil {
		r.Routes = report.RoutesSection{Err: err.Error()}
		return err
	}
	r.Routes = report.RoutesSection{Records: records}
	return nil
}

func (c *Collector) collectGateways(ctx context.Context, r *report.Report) error {
	if r.Routes.Err != "" {
		r.Gateways = report.GatewaysSection{Err: "routing table unavailable"}
		return nil
	}

	var gws []report.Gateway
	for _, rec := range r.Routes.Records {
		if !rec.IsDefault() || rec.Gateway == "" {
			continue
		}
		gw := report.Gateway{IP: rec.Gateway, Interface: rec.Interface}
		if res, err := c.ping(rec.Gateway); err == nil && res.Reachable() {
			gw.Reachable = true
			gw.LatencyMs = float64(res.AvgRtt) / float64(time.Millisecond)
		}
		gws = append(gws, gw)
	}
	r.Gateways = report.GatewaysSection{Gateways: gws}
	return nil
}

func (c *Collector) collectExternalIP(ctx context.Context, r *report.Report) error {
	lookupCtx, cancel := context.WithTimeout(ctx, 2*c.cfg.ExternalIP.LookupTimeout())
	defer cancel()

	ip, err := c.extIP.IP(lookupCtx)
	if err != nil {
		r.ExternalIP = report.TextSection{Err: err.Error()}
		return err
	}
	r.ExternalIP = report.TextSection{Text: ip}
	return nil
}
