package collect

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/P70-ops/netanalyzer/internal/config"
	"github.com/P70-ops/netanalyzer/internal/extip"
	"github.com/P70-ops/netanalyzer/internal/logging"
	"github.com/P70-ops/netanalyzer/internal/ping"
	"github.com/P70-ops/netanalyzer/internal/report"
	"github.com/P70-ops/netanalyzer/internal/routetable"
)

func testLogger() *logging.Logger {
	return logging.New(logging.Config{Level: logging.LevelError, Output: io.Discard})
}

type stubFetcher struct {
	out string
	err error
}

func (s stubFetcher) Fetch(ctx context.Context, family routetable.Family) (string, error) {
	return s.out, s.err
}

const linuxRoutes = `Kernel IP routing table
Destination     Gateway         Genmask         Flags   MSS Window  irtt Iface
default         192.168.1.1     0.0.0.0         UG        0 0          0 eth0
192.168.1.0     0.0.0.0         255.255.255.0   U         0 0          0 eth0
`

func stubPing(reachable bool) PingFunc {
	return func(target string) (*ping.Result, error) {
		res := &ping.Result{Target: target, PacketsSent: 1}
		if reachable {
			res.PacketsRecv = 1
			res.AvgRtt = 2 * time.Millisecond
		} else {
			res.PacketLoss = 100
		}
		return res, nil
	}
}

func newTestCollector(t *testing.T, opts Options) *Collector {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = testLogger()
	}
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	return New(opts)
}

func TestCollectAllRecordsEveryItem(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "203.0.113.9")
	}))
	defer srv.Close()

	c := newTestCollector(t, Options{
		Fetcher: stubFetcher{out: linuxRoutes},
		Runner: func(ctx context.Context, name string, args ...string) (string, error) {
			return "stub output", nil
		},
		ExtIP: extip.New(testLogger(), []string{srv.URL}, time.Second),
		DNSProbe: func(ctx context.Context, server string) (time.Duration, error) {
			return 5 * time.Millisecond, nil
		},
		Ping: stubPing(true),
	})

	r := c.CollectAll(context.Background())
	require.NotNil(t, r)
	assert.NotEmpty(t, r.ID)
	assert.NotZero(t, r.GeneratedAt)

	want := []string{
		"System Info", "Routing Table", "Interfaces", "ARP Table",
		"DNS Info", "Gateways", "External IP", "WiFi Info",
		"Active Connections",
	}
	require.Len(t, r.Timings, len(want))
	for i, name := range want {
		assert.Equal(t, name, r.Timings[i].Name)
	}

	assert.Equal(t, "203.0.113.9", r.ExternalIP.Text)
	require.NotNil(t, r.System.Info)
	assert.NotEmpty(t, r.System.Info.OS)
}

func TestCollectAllFailureIsolated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestCollector(t, Options{
		Fetcher: stubFetcher{err: errors.New("route command missing")},
		Runner: func(ctx context.Context, name string, args ...string) (string, error) {
			return "", errors.New("exec disabled")
		},
		ExtIP: extip.New(testLogger(), []string{srv.URL}, time.Second),
		DNSProbe: func(ctx context.Context, server string) (time.Duration, error) {
			return 0, errors.New("refused")
		},
		Ping: stubPing(false),
	})

	r := c.CollectAll(context.Background())
	require.NotNil(t, r)

	assert.NotEmpty(t, r.Routes.Err)
	assert.Equal(t, "routing table unavailable", r.Gateways.Err)
	assert.NotEmpty(t, r.ExternalIP.Err)
	assert.NotEmpty(t, r.Connections.Err)

	var failed int
	for _, tm := range r.Timings {
		if !tm.OK() {
			failed++
		}
	}
	assert.Greater(t, failed, 0)
	// every item still ran
	assert.Len(t, r.Timings, 9)
}

func TestCollectGateways(t *testing.T) {
	c := newTestCollector(t, Options{Ping: stubPing(true)})
	r := &report.Report{}
	r.Routes = report.RoutesSection{Records: []routetable.Record{
		{Destination: "default", Gateway: "192.168.1.1", Interface: "eth0"},
		{Destination: "10.0.0.0", Gateway: "10.0.0.1"},
	}}

	require.NoError(t, c.collectGateways(context.Background(), r))
	require.Len(t, r.Gateways.Gateways, 1)
	gw := r.Gateways.Gateways[0]
	assert.Equal(t, "192.168.1.1", gw.IP)
	assert.Equal(t, "eth0", gw.Interface)
	assert.True(t, gw.Reachable)
	assert.InDelta(t, 2.0, gw.LatencyMs, 0.01)
}

func TestCollectGatewaysUnreachable(t *testing.T) {
	c := newTestCollector(t, Options{Ping: stubPing(false)})
	r := &report.Report{}
	r.Routes = report.RoutesSection{Records: []routetable.Record{
		{Destination: "default", Gateway: "192.168.1.1"},
	}}

	require.NoError(t, c.collectGateways(context.Background(), r))
	require.Len(t, r.Gateways.Gateways, 1)
	assert.False(t, r.Gateways.Gateways[0].Reachable)
}

func TestCollectConnectionsPassThrough(t *testing.T) {
	var gotName string
	c := newTestCollector(t, Options{
		Runner: func(ctx context.Context, name string, args ...string) (string, error) {
			gotName = name
			return "Proto Local Address\n", nil
		},
	})

	r := &report.Report{}
	require.NoError(t, c.collectConnections(context.Background(), r))
	assert.Equal(t, "netstat", gotName)
	assert.Contains(t, r.Connections.Text, "Proto")
}

func TestParseResolvConf(t *testing.T) {
	text := `# resolver config
; generated
nameserver 192.168.1.1
nameserver 8.8.8.8
search lan example.org
domain home
options timeout:2
garbage
`
	servers, search := parseResolvConf(text)
	assert.Equal(t, []string{"192.168.1.1", "8.8.8.8"}, servers)
	assert.Equal(t, []string{"lan", "example.org", "home"}, search)
}

func TestParseResolvConfEmpty(t *testing.T) {
	servers, search := parseResolvConf("")
	assert.Empty(t, servers)
	assert.Empty(t, search)
}
