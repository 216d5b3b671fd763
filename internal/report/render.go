package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v2"
)

// Format selects the report output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a format flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatTable, FormatJSON, FormatYAML:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown format %q: want table, json or yaml", s)
	}
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	headerStyle  = lipgloss.NewStyle().Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	dividerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

// Write encodes the report in the requested format.
func Write(w io.Writer, r *Report, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		data, err := yaml.Marshal(r)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		Render(w, r)
		return nil
	}
}

// Render writes the human-readable report.
func Render(w io.Writer, r *Report) {
	divider := dividerStyle.Render(strings.Repeat("-", 72))

	fmt.Fprintln(w, titleStyle.Render("NETWORK DIAGNOSTIC REPORT"))
	fmt.Fprintf(w, "%s  %s\n", r.Hostname, dimStyle.Render(r.GeneratedAt.Format(time.RFC1123)))

	section := func(title string) {
		fmt.Fprintln(w)
		fmt.Fprintln(w, divider)
		fmt.Fprintln(w, headerStyle.Render(title))
		fmt.Fprintln(w, divider)
	}

	section("SYSTEM")
	if r.System.Err != "" {
		fmt.Fprintln(w, placeholder(r.System.Err))
	} else if r.System.Info != nil {
		tw := newTab(w)
		fmt.Fprintf(tw, "OS:\t%s\n", r.System.Info.OS)
		if r.System.Info.Kernel != "" {
			fmt.Fprintf(tw, "Kernel:\t%s %s\n", r.System.Info.Kernel, r.System.Info.Release)
		}
		fmt.Fprintf(tw, "Arch:\t%s\n", r.System.Info.Arch)
		fmt.Fprintf(tw, "Hostname:\t%s\n", r.System.Info.Hostname)
		tw.Flush()
	}

	section("NETWORK INTERFACES")
	if r.Interfaces.Err != "" {
		fmt.Fprintln(w, placeholder(r.Interfaces.Err))
	} else {
		tw := newTab(w)
		fmt.Fprintln(tw, headerStyle.Render("INTERFACE\tIP ADDRESS\tNETMASK\tMAC\tSPEED\tSTATE"))
		for _, iface := range r.Interfaces.Interfaces {
			state := "down"
			if iface.Up {
				state = "up"
			}
			speed := "-"
			if iface.SpeedMbps > 0 {
				speed = fmt.Sprintf("%d Mb/s", iface.SpeedMbps)
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
				iface.Name, orDash(iface.IPv4), orDash(iface.Netmask), orDash(iface.MAC), speed, state)
		}
		tw.Flush()
	}

	section("ROUTING TABLE")
	if r.Routes.Err != "" {
		fmt.Fprintln(w, placeholder(r.Routes.Err))
	} else if len(r.Routes.Records) == 0 {
		fmt.Fprintln(w, dimStyle.Render("no routes recognized"))
	} else {
		tw := newTab(w)
		fmt.Fprintln(tw, headerStyle.Render("DESTINATION\tGATEWAY\tNETMASK\tINTERFACE\tMETRIC/FLAGS"))
		for _, rt := range r.Routes.Records {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
				rt.Destination, orDash(rt.Gateway), orDash(rt.Netmask), orDash(rt.Interface), orDash(rt.MetricOrFlags))
		}
		tw.Flush()
	}

	section("DEFAULT GATEWAYS")
	if r.Gateways.Err != "" {
		fmt.Fprintln(w, placeholder(r.Gateways.Err))
	} else if len(r.Gateways.Gateways) == 0 {
		fmt.Fprintln(w, dimStyle.Render("no default gateway found"))
	} else {
		tw := newTab(w)
		fmt.Fprintln(tw, headerStyle.Render("GATEWAY\tINTERFACE\tLATENCY\tREACHABLE"))
		for _, gw := range r.Gateways.Gateways {
			latency := "-"
			if gw.LatencyMs > 0 {
				latency = fmt.Sprintf("%.1f ms", gw.LatencyMs)
			}
			reach := errStyle.Render("no")
			if gw.Reachable {
				reach = okStyle.Render("yes")
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", gw.IP, orDash(gw.Interface), latency, reach)
		}
		tw.Flush()
	}

	section("ARP TABLE")
	writeText(w, r.ARP)

	section("DNS")
	if r.DNS.Err != "" {
		fmt.Fprintln(w, placeholder(r.DNS.Err))
	} else {
		tw := newTab(w)
		fmt.Fprintln(tw, headerStyle.Render("SERVER\tLATENCY\tSTATUS"))
		for _, srv := range r.DNS.Servers {
			if srv.Err != "" {
				fmt.Fprintf(tw, "%s\t-\t%s\n", srv.Address, errStyle.Render(srv.Err))
				continue
			}
			fmt.Fprintf(tw, "%s\t%.1f ms\t%s\n", srv.Address, srv.LatencyMs, okStyle.Render("ok"))
		}
		tw.Flush()
		if len(r.DNS.Search) > 0 {
			fmt.Fprintf(w, "search: %s\n", strings.Join(r.DNS.Search, " "))
		}
	}

	section("EXTERNAL IP")
	if r.ExternalIP.Err != "" {
		fmt.Fprintln(w, placeholder(r.ExternalIP.Err))
	} else {
		fmt.Fprintf(w, "Public IP address: %s\n", okStyle.Render(r.ExternalIP.Text))
	}

	section("WIFI")
	if r.WiFi.Err != "" {
		fmt.Fprintln(w, placeholder(r.WiFi.Err))
	} else if r.WiFi.Info == nil {
		fmt.Fprintln(w, dimStyle.Render("no wireless link"))
	} else {
		tw := newTab(w)
		fmt.Fprintf(tw, "SSID:\t%s\n", orDash(r.WiFi.Info.SSID))
		fmt.Fprintf(tw, "Quality:\t%s\n", orDash(r.WiFi.Info.Quality))
		fmt.Fprintf(tw, "Signal:\t%s\n", orDash(r.WiFi.Info.Signal))
		if r.WiFi.Info.Noise != "" {
			fmt.Fprintf(tw, "Noise:\t%s\n", r.WiFi.Info.Noise)
		}
		tw.Flush()
	}

	section("ACTIVE CONNECTIONS")
	writeText(w, r.Connections)

	if r.Speedtest != nil {
		section("SPEED TEST")
		if !r.Speedtest.OK() {
			fmt.Fprintln(w, placeholder(r.Speedtest.Err))
		} else {
			tw := newTab(w)
			fmt.Fprintf(tw, "Download:\t%.2f Mbps\n", r.Speedtest.DownloadMbps())
			fmt.Fprintf(tw, "Upload:\t%.2f Mbps\n", r.Speedtest.UploadMbps())
			fmt.Fprintf(tw, "Ping:\t%.2f ms\n", r.Speedtest.PingMillis)
			fmt.Fprintf(tw, "Server:\t%s\n", r.Speedtest.ServerName)
			tw.Flush()
		}
	}

	section("COLLECTION")
	tw := newTab(w)
	for _, item := range r.Timings {
		mark := okStyle.Render("ok")
		detail := ""
		if !item.OK() {
			mark = errStyle.Render("failed")
			detail = dimStyle.Render(item.Err)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", item.Name, item.Elapsed.Round(time.Millisecond), mark, detail)
	}
	tw.Flush()

	fmt.Fprintln(w)
	fmt.Fprintln(w, okStyle.Render(fmt.Sprintf("Report completed in %s", r.Elapsed.Round(10*time.Millisecond))))
}

func newTab(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
}

func writeText(w io.Writer, s TextSection) {
	if s.Err != "" {
		fmt.Fprintln(w, placeholder(s.Err))
		return
	}
	text := strings.TrimRight(s.Text, "\n")
	if text == "" {
		fmt.Fprintln(w, dimStyle.Render("N/A"))
		return
	}
	fmt.Fprintln(w, text)
}

func placeholder(errText string) string {
	return errStyle.Render("N/A (" + errText + ")")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
