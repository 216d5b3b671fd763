// Package routetable normalizes OS routing-table dumps into structured records.
//
// Two textual layouts exist in the wild: the Windows `route print` table
// (layout style 1) and the Unix `netstat -rn` table shared by Linux and
// macOS (layout style 2). Both are whitespace-aligned columns whose widths
// vary with locale and interface-name length, so lines are split on runs of
// whitespace and mapped positionally per shape instead of matched with one
// fragile table regex.
//
// Parsing is deliberately lenient: a line that does not match one of the
// recognized shapes is skipped, so garbled or partial command output degrades
// to fewer records, never to an error.
package routetable

import (
	"regexp"
	"runtime"
	"strings"
)

// Family identifies which routing-table text layout to expect.
type Family string

const (
	FamilyWindows Family = "windows" // layout style 1: `route print`
	FamilyLinux   Family = "linux"   // layout style 2: `netstat -rn`
	FamilyDarwin  Family = "darwin"  // layout style 2: `netstat -rn`
)

// DefaultDestination is the normalized destination for default routes
// reported with the literal "default" label.
const DefaultDestination = "default"

// zeroDestination is the destination token used for default routes on
// families that print them numerically.
const zeroDestination = "0.0.0.0"

// Record is one normalized routing-table entry. Destination and Gateway are
// always set (possibly to ""), so consumers never need presence checks.
// MetricOrFlags is opaque text: a numeric metric on Windows, flag letters on
// Unix. It is never interpreted further.
type Record struct {
	Destination   string `json:"destination"`
	Gateway       string `json:"gateway"`
	Netmask       string `json:"netmask,omitempty"`
	Interface     string `json:"interface,omitempty"`
	MetricOrFlags string `json:"metric_or_flags,omitempty"`
}

// IsDefault reports whether the record describes a default route.
func (r Record) IsDefault() bool {
	return r.Destination == DefaultDestination || r.Destination == zeroDestination
}

// FamilyFromOS maps a GOOS value to its route-table layout family.
// The second return is false for platforms with no recognized layout.
func FamilyFromOS(goos string) (Family, bool) {
	switch goos {
	case "windows":
		return FamilyWindows, true
	case "linux":
		return FamilyLinux, true
	case "darwin":
		return FamilyDarwin, true
	default:
		return "", false
	}
}

// Native returns the layout family of the running platform.
func Native() (Family, bool) {
	return FamilyFromOS(runtime.GOOS)
}

// dottedDecimal anchors layout-style-2 network lines: the line must open
// with four dot-separated digit groups ("10.0.0.0", "10.0.0.0/24", ...).
var dottedDecimal = regexp.MustCompile(`^\d+\.\d+\.\d+\.\d+`)

// Parse converts a raw routing-table dump into ordered records.
// It is pure and total: unknown families and unrecognized lines yield
// fewer (possibly zero) records, never an error.
func Parse(family Family, raw string) []Record {
	switch family {
	case FamilyWindows:
		return parseStyle1(raw)
	case FamilyLinux, FamilyDarwin:
		return parseStyle2(raw)
	default:
		return nil
	}
}

// parseStyle1 handles the Windows `route print` table. Only default-route
// lines are extracted; everything else in the dump (adapter lists, IPv6
// section, persistent routes) is skipped.
func parseStyle1(raw string) []Record {
	var records []Record
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, zeroDestination) {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 5 {
			continue
		}
		// Columns: Network Destination, Netmask, Gateway, Interface, Metric
		records = append(records, Record{
			Destination:   fields[0],
			Netmask:       fields[1],
			Gateway:       fields[2],
			Interface:     fields[3],
			MetricOrFlags: fields[4],
		})
	}
	return records
}

// parseStyle2 handles the `netstat -rn` table used by Linux and macOS.
// Two line shapes are recognized: default-route lines and plain IPv4
// network lines.
func parseStyle2(raw string) []Record {
	var records []Record
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, DefaultDestination) || strings.HasPrefix(line, zeroDestination):
			fields := strings.Fields(line)
			if len(fields) < 4 {
				continue
			}
			rec := Record{
				Destination:   fields[0],
				Gateway:       fields[1],
				Netmask:       fields[2],
				MetricOrFlags: fields[3],
			}
			if fields[0] == DefaultDestination {
				rec.Destination = DefaultDestination
			}
			// The interface is the trailing column; Linux pads extra
			// columns (MSS, Window, irtt) between the flags and it.
			if len(fields) >= 6 {
				rec.Interface = fields[len(fields)-1]
			}
			records = append(records, rec)

		case dottedDecimal.MatchString(line):
			fields := strings.Fields(line)
			if len(fields) < 5 {
				continue
			}
			rec := Record{
				Destination:   fields[0],
				Gateway:       fields[1],
				Netmask:       fields[2],
				MetricOrFlags: fields[3],
			}
			if len(fields) >= 6 {
				rec.Interface = fields[len(fields)-1]
			}
			records = append(records, rec)
		}
	}
	return records
}

// DefaultGateways returns the gateways of all default routes, first-seen
// order preserved.
func DefaultGateways(records []Record) []string {
	var gws []string
	for _, r := range records {
		if r.IsDefault() && r.Gateway != "" {
			gws = append(gws, r.Gateway)
		}
	}
	return gws
}
