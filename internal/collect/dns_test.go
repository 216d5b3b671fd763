package collect

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/P70-ops/netanalyzer/internal/testutil"
)

func TestProbeDNSServerLive(t *testing.T) {
	testutil.RequireNet(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rtt, err := probeDNSServer(ctx, "1.1.1.1")
	require.NoError(t, err)
	assert.Greater(t, rtt, time.Duration(0))
}
