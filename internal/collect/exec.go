package collect

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/P70-ops/netanalyzer/internal/report"
)

// runCommand is the production CommandRunner. Output is decoded
// best-effort: invalid UTF-8 bytes are replaced, not fatal.
func runCommand(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		return "", fmt.Errorf("%s failed: %w", name, err)
	}
	return strings.ToValidUTF8(string(out), "�"), nil
}

func errUnsupported(goos string) error {
	return fmt.Errorf("not supported on %s", goos)
}

// collectConnections captures the active-connection listing as pass-through
// text; the report does not interpret it.
func (c *Collector) collectConnections(ctx context.Context, r *report.Report) error {
	var out string
	var err error
	if runtime.GOOS == "windows" {
		out, err = c.run(ctx, "netstat", "-ano")
	} else {
		out, err = c.run(ctx, "netstat", "-tulnp")
	}
	if err != nil {
		r.Connections = report.TextSection{Err: err.Error()}
		return err
	}
	r.Connections = report.TextSection{Text: out}
	return nil
}
