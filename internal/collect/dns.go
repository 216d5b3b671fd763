package collect

import (
	"context"
	"net"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/miekg/dns"

	"github.com/P70-ops/netanalyzer/internal/report"
)

const resolvConfPath = "/etc/resolv.conf"

// probeQuestion is a name every public resolver can answer.
const probeQuestion = "example.com."

// parseResolvConf extracts resolvers and search domains from resolv.conf
// text. Unknown directives and comments are skipped.
func parseResolvConf(text string) (servers, search []string) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		switch fields[0] {
		case "nameserver":
			servers = append(servers, fields[1])
		case "search", "domain":
			search = append(search, fields[1:]...)
		}
	}
	return servers, search
}

// probeDNSServer is the production DNSProbe: one A query, answer
// latency as measured by the resolver exchange.
func probeDNSServer(ctx context.Context, server string) (time.Duration, error) {
	client := new(dns.Client)
	msg := new(dns.Msg)
	msg.SetQuestion(probeQuestion, dns.TypeA)
	_, rtt, err := client.ExchangeContext(ctx, msg, net.JoinHostPort(server, "53"))
	if err != nil {
		return 0, err
	}
	return rtt, nil
}

func (c *Collector) collectDNS(ctx context.Context, r *report.Report) error {
	if runtime.GOOS == "windows" {
		err := errUnsupported(runtime.GOOS)
		r.DNS = report.DNSSection{Err: err.Error()}
		return err
	}

	raw, err := os.ReadFile(resolvConfPath)
	if err != nil {
		r.DNS = report.DNSSection{Err: err.Error()}
		return err
	}
	servers, search := parseResolvConf(string(raw))

	section := report.DNSSection{Search: search}
	for _, addr := range servers {
		entry := report.DNSServer{Address: addr}
		probeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		rtt, probeErr := c.dnsProbe(probeCtx, addr)
		cancel()
		if probeErr != nil {
			entry.Err = probeErr.Error()
		} else {
			entry.LatencyMs = float64(rtt) / float64(time.Millisecond)
		}
		section.Servers = append(section.Servers, entry)
	}
	r.DNS = section
	return nil
}
