package qgate

import (
	"sync"
	"time"
)

// Metrics records the stage sizes of the most recent compilation plus
// running totals.
type Metrics struct {
	mu sync.RWMutex

	Compilations   int64
	SynthesizedOps int
	ConvertedOps   int
	OptimizedOps   int
	SelectedOps    int

	TotalCompileTime time.Duration
}

func newMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) recordCompile(start time.Time, synthesized, converted, optimized, selected int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Compilations++
	m.SynthesizedOps = synthesized
	m.ConvertedOps = converted
	m.OptimizedOps = optimized
	m.SelectedOps = selected
	m.TotalCompileTime += time.Since(start)
}

// Snapshot returns a copy safe to read after further compilations.
func (m *Metrics) Snapshot() Metrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Metrics{
		Compilations:     m.Compilations,
		SynthesizedOps:   m.SynthesizedOps,
		ConvertedOps:     m.ConvertedOps,
		OptimizedOps:     m.OptimizedOps,
		SelectedOps:      m.SelectedOps,
		TotalCompileTime: m.TotalCompileTime,
	}
}
