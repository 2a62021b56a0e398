package enginelog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewNopDoesNotPanic(t *testing.T) {
	log := NewNop()
	log.ResolutionTrace("resolving")
	log.PhaseBoundary("precompute")
	log.MutabilityWarning("skipped write")
	log.Fatal("step failed")
	require.NoError(t, log.Sync())
}

func TestNewBuildsUsableLogger(t *testing.T) {
	log, err := New(true)
	require.NoError(t, err)
	require.NotNil(t, log)
	log.PhaseBoundary("compute")
}
