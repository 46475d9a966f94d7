// Package engine drives the match from a host loop with measured wall-clock elapsed time
package engine

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/gridiron/match"
	"github.com/lixenwraith/gridiron/status"
	"go.uber.org/zap"
)

// Ticker advances the simulation by elapsed seconds
type Ticker interface {
	Tick(elapsed float64) match.Frame
}

// slowFrameFactor marks a frame slow when elapsed exceeds this multiple of the target interval
const slowFrameFactor = 4

// Runner measures time between frames and feeds it to a Ticker
// Not safe for concurrent use; call Frame from the host loop only
type Runner struct {
	target   Ticker
	clock    Clock
	log      *zap.Logger
	interval time.Duration

	last    time.Time
	started bool
	frames  uint64
	slow    uint64
	fps     float64
	frame   match.Frame

	metrics *metrics
}

// metrics are cached registry cells
type metrics struct {
	frames    *atomic.Int64
	slow      *atomic.Int64
	substeps  *atomic.Int64
	fps       *status.AtomicFloat
	remaining *status.AtomicFloat
	phase     *status.AtomicString
}

// NewRunner creates a runner; interval is the host's intended frame period, used only for diagnostics
func NewRunner(target Ticker, clock Clock, interval time.Duration, log *zap.Logger) *Runner {
	if clock == nil {
		clock = NewTimeProvider()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		target:   target,
		clock:    clock,
		log:      log,
		interval: interval,
	}
}

// Frame ticks once with the time since the previous Frame; the first call ticks with zero
func (r *Runner) Frame() match.Frame {
	now := r.clock.Now()
	var elapsed time.Duration
	if r.started {
		elapsed = now.Sub(r.last)
		if elapsed < 0 {
			elapsed = 0
		}
	}
	r.last = now
	r.started = true

	if r.interval > 0 && elapsed > slowFrameFactor*r.interval {
		r.slow++
		r.log.Debug("slow frame", zap.Duration("elapsed", elapsed), zap.Duration("interval", r.interval))
	}

	seconds := elapsed.Seconds()
	if seconds > 0 {
		// Exponential moving average over roughly ten frames
		inst := 1 / seconds
		if r.fps == 0 {
			r.fps = inst
		} else {
			r.fps += (inst - r.fps) * 0.1
		}
	}

	r.frames++
	r.frame = r.target.Tick(seconds)

	if m := r.metrics; m != nil {
		m.frames.Store(int64(r.frames))
		m.slow.Store(int64(r.slow))
		m.substeps.Add(int64(r.frame.Substeps))
		m.fps.Set(r.fps)
		m.remaining.Set(r.frame.Remaining)
		m.phase.Store(r.frame.Phase.String())
	}
	return r.frame
}

// Publish mirrors frame counters into reg after every frame
func (r *Runner) Publish(reg *status.Registry) {
	if reg == nil {
		r.metrics = nil
		return
	}
	r.metrics = &metrics{
		frames:    reg.Ints.Get(status.KeyFrames),
		slow:      reg.Ints.Get(status.KeySlowFrames),
		substeps:  reg.Ints.Get(status.KeySubsteps),
		fps:       reg.Floats.Get(status.KeyFPS),
		remaining: reg.Floats.Get(status.KeyRemaining),
		phase:     reg.Strings.Get(status.KeyPhase),
	}
}

// Resync drops the time accrued since the last frame, e.g. after the host was suspended
func (r *Runner) Resync() {
	r.last = r.clock.Now()
}

// Last returns the most recent frame
func (r *Runner) Last() match.Frame {
	return r.frame
}

// Frames returns the number of frames run
func (r *Runner) Frames() uint64 {
	return r.frames
}

// SlowFrames returns how many frames overran the interval
func (r *Runner) SlowFrames() uint64 {
	return r.slow
}

// FPS returns the smoothed frame rate
func (r *Runner) FPS() float64 {
	return r.fps
}
