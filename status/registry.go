// Package status holds lock-free counters and gauges published by the window
// and its pacer. Writers cache metric pointers once and update atomics
// directly; the terminal status line reads them through Summary.
package status

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Well-known metric keys
const (
	FramesRendered = "pacer.frames.rendered"
	FramesSkipped  = "pacer.frames.skipped"
	FrameRate      = "pacer.fps"
	Snapshots      = "window.snapshots"
	LastSnapshot   = "window.snapshot.last"
	RenderMode     = "window.render_mode"
	KeyEvents      = "input.key.events"
	MouseEvents    = "input.mouse.events"
	Repaints       = "runtime.repaints"
)

// Registry is the central metrics facade
type Registry struct {
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// Summary renders selected metrics as "key=value" pairs in the given order
// Unknown keys are skipped
func (r *Registry) Summary(keys ...string) string {
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		switch {
		case r.Ints.Has(k):
			parts = append(parts, fmt.Sprintf("%s=%d", k, r.Ints.Get(k).Load()))
		case r.Floats.Has(k):
			parts = append(parts, fmt.Sprintf("%s=%.1f", k, r.Floats.Get(k).Get()))
		case r.Strings.Has(k):
			parts = append(parts, fmt.Sprintf("%s=%s", k, r.Strings.Get(k).Load()))
		}
	}
	return strings.Join(parts, " ")
}
