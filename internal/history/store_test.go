package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/P70-ops/netanalyzer/internal/report"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(Options{Path: filepath.Join(t.TempDir(), "history.db")})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleReport(id string, at time.Time) *report.Report {
	return &report.Report{
		ID:          id,
		Hostname:    "workstation",
		GeneratedAt: at,
		ExternalIP:  report.TextSection{Text: "203.0.113.9"},
		Timings:     []report.Timing{{Name: "System Info", Elapsed: time.Millisecond}},
	}
}

func TestSaveAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	r := sampleReport("abc-123", time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, s.Save(ctx, r))

	got, err := s.Get(ctx, "abc-123")
	require.NoError(t, err)
	assert.Equal(t, "workstation", got.Hostname)
	assert.Equal(t, "203.0.113.9", got.ExternalIP.Text)
	require.Len(t, got.Timings, 1)
	assert.Equal(t, "System Info", got.Timings[0].Name)
}

func TestGetMissing(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"one", "two", "three"} {
		require.NoError(t, s.Save(ctx, sampleReport(id, base.Add(time.Duration(i)*time.Hour))))
	}

	entries, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "three", entries[0].ID)
	assert.Equal(t, "one", entries[2].ID)

	limited, err := s.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestSaveReplacesByID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	at := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.Save(ctx, sampleReport("dup", at)))

	updated := sampleReport("dup", at)
	updated.Hostname = "laptop"
	require.NoError(t, s.Save(ctx, updated))

	entries, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "laptop", entries[0].Hostname)
}
