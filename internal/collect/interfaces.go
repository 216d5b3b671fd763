package collect

import (
	"context"
	"net"

	"github.com/P70-ops/netanalyzer/internal/report"
)

// collectInterfaces lists interfaces with their primary IPv4 binding.
// Interfaces without an IPv4 address are still listed so a down link is
// visible in the report.
func (c *Collector) collectInterfaces(ctx context.Context, r *report.Report) error {
	ifaces, err := net.Interfaces()
	if err != nil {
		r.Interfaces = report.InterfacesSection{Err: err.Error()}
		return err
	}

	var out []report.Interface
	for _, iface := range ifaces {
		entry := report.Interface{
			Name: iface.Name,
			MAC:  iface.HardwareAddr.String(),
			MTU:  iface.MTU,
			Up:   iface.Flags&net.FlagUp != 0,
		}

		addrs, err := iface.Addrs()
		if err == nil {
			for _, addr := range addrs {
				ipnet, ok := addr.(*net.IPNet)
				if !ok {
					continue
				}
				ip4 := ipnet.IP.To4()
				if ip4 == nil {
					continue
				}
				entry.IPv4 = ip4.String()
				entry.Netmask = net.IP(ipnet.Mask).String()
				entry.Broadcast = broadcastAddr(ip4, ipnet.Mask)
				break
			}
		}

		if speed := linkSpeedMbps(iface.Name); speed > 0 {
			entry.SpeedMbps = speed
		}
		out = append(out, entry)
	}

	r.Interfaces = report.InterfacesSection{Interfaces: out}
	return nil
}

// broadcastAddr computes the IPv4 directed-broadcast address.
func broadcastAddr(ip net.IP, mask net.IPMask) string {
	if len(mask) == 16 {
		mask = mask[12:]
	}
	if len(ip) != 4 || len(mask) != 4 {
		return ""
	}
	bcast := make(net.IP, 4)
	for i := range bcast {
		bcast[i] = ip[i] | ^mask[i]
	}
	return bcast.String()
}
