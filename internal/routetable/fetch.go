package routetable

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Fetcher obtains a raw routing-table dump for a layout family.
// Implementations are the I/O boundary; Parse stays pure.
type Fetcher interface {
	Fetch(ctx context.Context, family Family) (string, error)
}

// CommandFetcher shells out to the platform routing-table command.
type CommandFetcher struct{}

// Fetch runs `route print` on Windows and `netstat -rn` elsewhere and
// returns the decoded output. Command output is decoded best-effort:
// invalid UTF-8 bytes are replaced rather than failing the fetch, since
// some platforms emit locale-encoded table headers.
func (CommandFetcher) Fetch(ctx context.Context, family Family) (string, error) {
	var cmd *exec.Cmd
	switch family {
	case FamilyWindows:
		cmd = exec.CommandContext(ctx, "route", "print")
	case FamilyLinux, FamilyDarwin:
		cmd = exec.CommandContext(ctx, "netstat", "-rn")
	default:
		return "", fmt.Errorf("no routing-table command for family %q", family)
	}

	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("%s failed: %w", cmd.Path, err)
	}
	return strings.ToValidUTF8(string(out), "�"), nil
}

// FetchAndParse is the convenience path used by the collector.
func FetchAndParse(ctx context.Context, f Fetcher, family Family) ([]Record, error) {
	raw, err := f.Fetch(ctx, family)
	if err != nil {
		return nil, err
	}
	return Parse(family, raw), nil
}
