// Package report defines the consolidated diagnostic report and its
// rendering. Every section is a tagged variant: either its data or a
// displayable error, so one failed collector never blanks the rest of
// the report.
package report

import (
	"time"

	"github.com/P70-ops/netanalyzer/internal/routetable"
	"github.com/P70-ops/netanalyzer/internal/speedtest"
)

// Report is the aggregate of one collection run.
type Report struct {
	ID          string        `json:"id" yaml:"id"`
	Hostname    string        `json:"hostname" yaml:"hostname"`
	GeneratedAt time.Time     `json:"generated_at" yaml:"generated_at"`
	Elapsed     time.Duration `json:"elapsed_ns" yaml:"elapsed_ns"`

	System      SystemSection     `json:"system" yaml:"system"`
	Interfaces  InterfacesSection `json:"interfaces" yaml:"interfaces"`
	Routes      RoutesSection     `json:"routes" yaml:"routes"`
	Gateways    GatewaysSection   `json:"gateways" yaml:"gateways"`
	ARP         TextSection       `json:"arp" yaml:"arp"`
	DNS         DNSSection        `json:"dns" yaml:"dns"`
	ExternalIP  TextSection       `json:"external_ip" yaml:"external_ip"`
	WiFi        WiFiSection       `json:"wifi" yaml:"wifi"`
	Connections TextSection       `json:"connections" yaml:"connections"`

	Speedtest *speedtest.Report `json:"speedtest,omitempty" yaml:"speedtest,omitempty"`

	// Timings records per-item collection durations and outcomes.
	Timings []Timing `json:"timings" yaml:"timings"`
}

// Timing is the per-item collection record.
type Timing struct {
	Name    string        `json:"name" yaml:"name"`
	Elapsed time.Duration `json:"elapsed_ns" yaml:"elapsed_ns"`
	Err     string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// OK reports whether the item collected successfully.
func (t Timing) OK() bool { return t.Err == "" }

// SystemInfo holds basic host identity.
type SystemInfo struct {
	OS       string `json:"os" yaml:"os"`
	Kernel   string `json:"kernel,omitempty" yaml:"kernel,omitempty"`
	Release  string `json:"release,omitempty" yaml:"release,omitempty"`
	Arch     string `json:"arch" yaml:"arch"`
	Hostname string `json:"hostname" yaml:"hostname"`
}

// SystemSection is the system info variant.
type SystemSection struct {
	Info *SystemInfo `json:"info,omitempty" yaml:"info,omitempty"`
	Err  string      `json:"error,omitempty" yaml:"error,omitempty"`
}

// Interface is one network interface with its primary IPv4 binding.
type Interface struct {
	Name      string `json:"name" yaml:"name"`
	IPv4      string `json:"ipv4,omitempty" yaml:"ipv4,omitempty"`
	Netmask   string `json:"netmask,omitempty" yaml:"netmask,omitempty"`
	Broadcast string `json:"broadcast,omitempty" yaml:"broadcast,omitempty"`
	MAC       string `json:"mac,omitempty" yaml:"mac,omitempty"`
	MTU       int    `json:"mtu,omitempty" yaml:"mtu,omitempty"`
	SpeedMbps int    `json:"speed_mbps,omitempty" yaml:"speed_mbps,omitempty"`
	Up        bool   `json:"up" yaml:"up"`
}

// InterfacesSection is the interfaces variant.
type InterfacesSection struct {
	Interfaces []Interface `json:"interfaces,omitempty" yaml:"interfaces,omitempty"`
	Err        string      `json:"error,omitempty" yaml:"error,omitempty"`
}

// RoutesSection is the routing-table variant.
type RoutesSection struct {
	Records []routetable.Record `json:"records,omitempty" yaml:"records,omitempty"`
	Err     string              `json:"error,omitempty" yaml:"error,omitempty"`
}

// Gateway is one default gateway.
type Gateway struct {
	IP        string  `json:"ip" yaml:"ip"`
	Interface string  `json:"interface,omitempty" yaml:"interface,omitempty"`
	LatencyMs float64 `json:"latency_ms,omitempty" yaml:"latency_ms,omitempty"`
	Reachable bool    `json:"reachable" yaml:"reachable"`
}

// GatewaysSection is the default-gateways variant.
type GatewaysSection struct {
	Gateways []Gateway `json:"gateways,omitempty" yaml:"gateways,omitempty"`
	Err      string    `json:"error,omitempty" yaml:"error,omitempty"`
}

// TextSection carries pass-through command output or a lookup result.
type TextSection struct {
	Text string `json:"text,omitempty" yaml:"text,omitempty"`
	Err  string `json:"error,omitempty" yaml:"error,omitempty"`
}

// DNSServer is one configured resolver with its probe outcome.
type DNSServer struct {
	Address   string  `json:"address" yaml:"address"`
	LatencyMs float64 `json:"latency_ms,omitempty" yaml:"latency_ms,omitempty"`
	Err       string  `json:"error,omitempty" yaml:"error,omitempty"`
}

// DNSSection is the DNS configuration variant.
type DNSSection struct {
	Servers []DNSServer `json:"servers,omitempty" yaml:"servers,omitempty"`
	Search  []string    `json:"search,omitempty" yaml:"search,omitempty"`
	Err     string      `json:"error,omitempty" yaml:"error,omitempty"`
}

// WiFiInfo holds wireless link details; fields missing on a platform
// stay empty.
type WiFiInfo struct {
	SSID    string `json:"ssid,omitempty" yaml:"ssid,omitempty"`
	Quality string `json:"quality,omitempty" yaml:"quality,omitempty"`
	Signal  string `json:"signal,omitempty" yaml:"signal,omitempty"`
	Noise   string `json:"noise,omitempty" yaml:"noise,omitempty"`
}

// WiFiSection is the wireless variant.
type WiFiSection struct {
	Info *WiFiInfo `json:"info,omitempty" yaml:"info,omitempty"`
	Err  string    `json:"error,omitempty" yaml:"error,omitempty"`
}
