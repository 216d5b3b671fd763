package collect

import (
	"context"
	"fmt"
	"strings"

	"github.com/vishvananda/netlink"

	"github.com/P70-ops/netanalyzer/internal/report"
)

// collectARP reads the IPv4 neighbor table over netlink and renders it
// in the familiar `ip neigh` shape. If netlink is unavailable it falls
// back to the arp binary.
func (c *Collector) collectARP(ctx context.Context, r *report.Report) error {
	neighs, err := netlink.NeighList(0, netlink.FAMILY_V4)
	if err != nil {
		out, runErr := c.run(ctx, "arp", "-n")
		if runErr != nil {
			r.ARP = report.TextSection{Err: runErr.Error()}
			return runErr
		}
		r.ARP = report.TextSection{Text: out}
		return nil
	}

	names := linkNames()
	var b strings.Builder
	for _, n := range neighs {
		if n.IP == nil {
			continue
		}
		fmt.Fprintf(&b, "%s dev %s", n.IP, names[n.LinkIndex])
		if len(n.HardwareAddr) > 0 {
			fmt.Fprintf(&b, " lladdr %s", n.HardwareAddr)
		}
		fmt.Fprintf(&b, " %s\n", neighStateName(n.State))
	}
	r.ARP = report.TextSection{Text: b.String()}
	return nil
}

func linkNames() map[int]string {
	names := make(map[int]string)
	links, err := netlink.LinkList()
	if err != nil {
		return names
	}
	for _, l := range links {
		attrs := l.Attrs()
		names[attrs.Index] = attrs.Name
	}
	return names
}

func neighStateName(state int) string {
	switch {
	case state&netlink.NUD_PERMANENT != 0:
		return "PERMANENT"
	case state&netlink.NUD_REACHABLE != 0:
		return "REACHABLE"
	case state&netlink.NUD_STALE != 0:
		return "STALE"
	case state&netlink.NUD_DELAY != 0:
		return "DELAY"
	case state&netlink.NUD_PROBE != 0:
		return "PROBE"
	case state&netlink.NUD_FAILED != 0:
		return "FAILED"
	case state&netlink.NUD_INCOMPLETE != 0:
		return "INCOMPLETE"
	default:
		return "NONE"
	}
}
