package core

import "sync"

type MetricsState struct {
	// Number of world matrices recomputed since the last reset.
	WorldMatrixRecomputes uint64
	// Number of uniform byte-range flushes handed to the backend.
	UniformFlushes uint64
	// Number of nodes attached/detached since the last reset.
	NodesAttached uint32
	NodesDetached uint32
}

var onceMetrics sync.Once
var metricsState *MetricsState = nil

func MetricsInitialize() error {
	onceMetrics.Do(func() {
		metricsState = &MetricsState{}
	})
	return nil
}

func MetricsWorldMatrixRecomputed() {
	if metricsState != nil {
		metricsState.WorldMatrixRecomputes++
	}
}

func MetricsUniformFlushed() {
	if metricsState != nil {
		metricsState.UniformFlushes++
	}
}

func MetricsNodeAttached() {
	if metricsState != nil {
		metricsState.NodesAttached++
	}
}

func MetricsNodeDetached() {
	if metricsState != nil {
		metricsState.NodesDetached++
	}
}

// MetricsSnapshot returns a copy of the current counters.
func MetricsSnapshot() MetricsState {
	if metricsState == nil {
		return MetricsState{}
	}
	return *metricsState
}

// MetricsReset zeroes all counters. Typically called once per frame by
// the host after it has sampled the snapshot.
func MetricsReset() {
	if metricsState != nil {
		*metricsState = MetricsState{}
	}
}
