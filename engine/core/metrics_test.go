package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsCountersAndReset(t *testing.T) {
	require.NoError(t, MetricsInitialize())
	MetricsReset()

	MetricsWorldMatrixRecomputed()
	MetricsWorldMatrixRecomputed()
	MetricsUniformFlushed()
	MetricsNodeAttached()
	MetricsNodeDetached()

	s := MetricsSnapshot()
	assert.Equal(t, uint64(2), s.WorldMatrixRecomputes)
	assert.Equal(t, uint64(1), s.UniformFlushes)
	assert.Equal(t, uint32(1), s.NodesAttached)
	assert.Equal(t, uint32(1), s.NodesDetached)

	MetricsReset()
	assert.Equal(t, MetricsState{}, MetricsSnapshot())
}

func TestMetricsSafeBeforeInitialize(t *testing.T) {
	// Counters silently drop updates until initialization; the snapshot
	// is always readable.
	assert.NotPanics(t, func() {
		MetricsWorldMatrixRecomputed()
		_ = MetricsSnapshot()
	})
}
