package collect

import (
	"context"
	"regexp"
	"runtime"

	"github.com/P70-ops/netanalyzer/internal/report"
)

const airportPath = "/System/Library/PrivateFrameworks/Apple80211.framework/Versions/Current/Resources/airport"

var (
	iwconfigSSID    = regexp.MustCompile(`ESSID:"(.*?)"`)
	iwconfigQuality = regexp.MustCompile(`Link Quality=(\d+/\d+)`)
	iwconfigSignal  = regexp.MustCompile(`Signal level=(-?\d+) dBm`)

	airportSSID   = regexp.MustCompile(`\bSSID: (.+)`)
	airportSignal = regexp.MustCompile(`agrCtlRSSI: (-?\d+)`)
	airportNoise  = regexp.MustCompile(`agrCtlNoise: (-?\d+)`)
)

// ParseIwconfig extracts wireless link details from iwconfig output.
// It returns nil when no association is present.
func ParseIwconfig(out string) *report.WiFiInfo {
	info := &report.WiFiInfo{}
	if m := iwconfigSSID.FindStringSubmatch(out); m != nil {
		info.SSID = m[1]
	}
	if m := iwconfigQuality.FindStringSubmatch(out); m != nil {
		info.Quality = m[1]
	}
	if m := iwconfigSignal.FindStringSubmatch(out); m != nil {
		info.Signal = m[1] + " dBm"
	}
	if info.SSID == "" && info.Quality == "" && info.Signal == "" {
		return nil
	}
	return info
}

// ParseAirport extracts wireless link details from the macOS airport
// utility's -I output. It returns nil when no association is present.
func ParseAirport(out string) *report.WiFiInfo {
	info := &report.WiFiInfo{}
	if m := airportSSID.FindStringSubmatch(out); m != nil {
		info.SSID = m[1]
	}
	if m := airportSignal.FindStringSubmatch(out); m != nil {
		info.Signal = m[1] + " dBm"
	}
	if m := airportNoise.FindStringSubmatch(out); m != nil {
		info.Noise = m[1] + " dBm"
	}
	if info.SSID == "" && info.Signal == "" && info.Noise == "" {
		return nil
	}
	return info
}

func (c *Collector) collectWiFi(ctx context.Context, r *report.Report) error {
	var info *report.WiFiInfo
	var out string
	var err error

	switch runtime.GOOS {
	case "linux":
		out, err = c.run(ctx, "iwconfig")
		if err == nil {
			info = ParseIwconfig(out)
		}
	case "darwin":
		out, err = c.run(ctx, airportPath, "-I")
		if err == nil {
			info = ParseAirport(out)
		}
	default:
		err = errUnsupported(runtime.GOOS)
	}

	if err != nil {
		r.WiFi = report.WiFiSection{Err: err.Error()}
		return err
	}
	if info == nil {
		r.WiFi = report.WiFiSection{Err: "no wireless association"}
		return nil
	}
	r.WiFi = report.WiFiSection{Info: info}
	return nil
}
