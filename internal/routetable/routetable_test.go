package routetable

import (
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const linuxNetstat = `Kernel IP routing table
Destination     Gateway         Genmask         Flags   MSS Window  irtt Iface
default         192.168.1.1     0.0.0.0         UG        0 0          0 eth0
192.168.1.0     0.0.0.0         255.255.255.0   U         0 0          0 eth0
172.17.0.0      0.0.0.0         255.255.0.0     U         0 0          0 docker0
`

const windowsRoute = `===========================================================================
Interface List
 12...00 1c 42 9a 2b 11 ......Intel(R) Ethernet Connection
===========================================================================
IPv4 Route Table
===========================================================================
Active Routes:
Network Destination        Netmask          Gateway       Interface  Metric
          0.0.0.0          0.0.0.0      192.168.1.1     192.168.1.7     25
        127.0.0.0        255.0.0.0         On-link         127.0.0.1    331
===========================================================================
`

func TestParseStyle2DefaultLine(t *testing.T) {
	records := Parse(FamilyLinux, "default         192.168.1.1     0.0.0.0         UG        0 0          0 eth0\n")
	require.Len(t, records, 1)
	assert.Equal(t, Record{
		Destination:   "default",
		Gateway:       "192.168.1.1",
		Netmask:       "0.0.0.0",
		MetricOrFlags: "UG",
		Interface:     "eth0",
	}, records[0])
	assert.True(t, records[0].IsDefault())
}

func TestParseStyle2FullTable(t *testing.T) {
	records := Parse(FamilyLinux, linuxNetstat)
	require.Len(t, records, 3)

	// Order mirrors the raw output
	assert.Equal(t, "default", records[0].Destination)
	assert.Equal(t, "192.168.1.0", records[1].Destination)
	assert.Equal(t, "172.17.0.0", records[2].Destination)

	assert.Equal(t, Record{
		Destination:   "192.168.1.0",
		Gateway:       "0.0.0.0",
		Netmask:       "255.255.255.0",
		MetricOrFlags: "U",
		Interface:     "eth0",
	}, records[1])
}

func TestParseStyle2DarwinShortDefault(t *testing.T) {
	// macOS prints flags where Linux prints the genmask; the field stays
	// positional and opaque.
	records := Parse(FamilyDarwin, "default            192.168.1.1        UGScg                 en0\n")
	require.Len(t, records, 1)
	assert.Equal(t, "192.168.1.1", records[0].Gateway)
	assert.Equal(t, "UGScg", records[0].Netmask)
	assert.Equal(t, "", records[0].Interface) // fewer than 6 fields
}

func TestParseStyle1(t *testing.T) {
	records := Parse(FamilyWindows, windowsRoute)
	require.Len(t, records, 1)
	assert.Equal(t, Record{
		Destination:   "0.0.0.0",
		Netmask:       "0.0.0.0",
		Gateway:       "192.168.1.1",
		Interface:     "192.168.1.7",
		MetricOrFlags: "25",
	}, records[0])
}

func TestParseStyle1IgnoresDefaultLabel(t *testing.T) {
	// Style 1 intentionally matches only the numeric zero destination.
	// A "default" label on that family is dropped, not guessed at.
	records := Parse(FamilyWindows, "default   0.0.0.0   192.168.1.1   192.168.1.7   25\n")
	assert.Empty(t, records)
}

func TestParseGarbageInput(t *testing.T) {
	garbage := "]]]] not a routing table\n\x00\xffweird bytes\n12345\n=== header ===\n"
	for _, family := range []Family{FamilyWindows, FamilyLinux, FamilyDarwin} {
		assert.Empty(t, Parse(family, garbage), "family %s", family)
	}
}

func TestParseEmptyAndUnknownFamily(t *testing.T) {
	assert.Empty(t, Parse(FamilyLinux, ""))
	assert.Empty(t, Parse(Family("plan9"), linuxNetstat))
}

func TestParseSkipsShortLines(t *testing.T) {
	// Four fields are too few for a network line, recognized but incomplete
	// default lines need at least four.
	raw := "10.0.0.0 gw mask\ndefault gw\n"
	assert.Empty(t, Parse(FamilyLinux, raw))
}

func TestParseIdempotent(t *testing.T) {
	a := Parse(FamilyLinux, linuxNetstat)
	b := Parse(FamilyLinux, linuxNetstat)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("parsing is not value-idempotent: %v != %v", a, b)
	}
}

func TestParseEligibleLineCount(t *testing.T) {
	// Every well-formed dotted-decimal line with >=5 fields must produce
	// exactly one record.
	raw := `10.1.0.0 10.0.0.1 255.255.0.0 UG 0 0 0 wan0
10.2.0.0 10.0.0.1 255.255.0.0 UG 0 0 0 wan0
10.3.0.0 10.0.0.1 255.255.0.0 UG 0 0 0 wan0
not-a-route line here
`
	records := Parse(FamilyLinux, raw)
	assert.Len(t, records, 3)
}

func TestDefaultGateways(t *testing.T) {
	records := Parse(FamilyLinux, linuxNetstat)
	assert.Equal(t, []string{"192.168.1.1"}, DefaultGateways(records))
}

type stubFetcher struct {
	raw string
	err error
}

func (s stubFetcher) Fetch(ctx context.Context, family Family) (string, error) {
	return s.raw, s.err
}

func TestFetchAndParse(t *testing.T) {
	records, err := FetchAndParse(context.Background(), stubFetcher{raw: linuxNetstat}, FamilyLinux)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestFamilyFromOS(t *testing.T) {
	tests := []struct {
		goos   string
		family Family
		ok     bool
	}{
		{"windows", FamilyWindows, true},
		{"linux", FamilyLinux, true},
		{"darwin", FamilyDarwin, true},
		{"freebsd", "", false},
	}
	for _, tc := range tests {
		family, ok := FamilyFromOS(tc.goos)
		assert.Equal(t, tc.ok, ok, tc.goos)
		assert.Equal(t, tc.family, family, tc.goos)
	}
}
