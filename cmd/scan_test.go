package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunScanRequiresTarget(t *testing.T) {
	err := RunScan(ScanOptions{})
	assert.ErrorContains(t, err, "target")
}

func TestWellKnownService(t *testing.T) {
	assert.Equal(t, "ssh", wellKnownService(22))
	assert.Equal(t, "https", wellKnownService(443))
	assert.Equal(t, "-", wellKnownService(12345))
}
