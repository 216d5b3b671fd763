package testutil

import (
	"os"
	"testing"
)

// RequireNet skips the test unless the NETANALYZER_NET_TEST environment
// variable is set. Tests that reach real resolvers, echo services or
// measurement servers only run in environments that opted in.
func RequireNet(t *testing.T) {
	t.Helper()
	if os.Getenv("NETANALYZER_NET_TEST") == "" {
		t.Skip("Skipping test: requires NETANALYZER_NET_TEST environment")
	}
}
