// Package status holds live frame telemetry written by the host loop and read by anyone
package status

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// Well-known keys published by the frame runner
const (
	KeyFrames     = "frames"
	KeySlowFrames = "slow_frames"
	KeySubsteps   = "substeps"
	KeyFPS        = "fps"
	KeyRemaining  = "clock_remaining"
	KeyPhase      = "phase"
)

// Registry groups metrics by value type
// Writers cache the pointers once; reads and writes after that are lock-free
type Registry struct {
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// Count returns the number of registered metrics
func (r *Registry) Count() int {
	return r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Fields renders every metric as zap fields in key order per type
func (r *Registry) Fields() []zap.Field {
	fields := make([]zap.Field, 0, r.Count())
	r.Ints.Range(func(k string, v *atomic.Int64) {
		fields = append(fields, zap.Int64(k, v.Load()))
	})
	r.Floats.Range(func(k string, v *AtomicFloat) {
		fields = append(fields, zap.Float64(k, v.Get()))
	})
	r.Strings.Range(func(k string, v *AtomicString) {
		fields = append(fields, zap.String(k, v.Load()))
	})
	return fields
}
