// Package camera computes a smoothed chase view behind a target
package camera

import (
	"fmt"
	"math"
	"strings"

	"github.com/lixenwraith/gridiron/render"
	"github.com/lixenwraith/gridiron/vmath"
)

// Mode selects how the smoothing factor is applied
type Mode uint8

const (
	// ModeFixed applies the factor once per Update regardless of dt
	ModeFixed Mode = iota
	// ModeDecay applies 1-exp(-k*dt), matching ModeFixed at ReferenceRate
	ModeDecay
)

// ReferenceRate is the frame rate at which both modes converge identically
const ReferenceRate = 60.0

// Defaults for the chase rig
var (
	DefaultOffset   = vmath.V3(0, 5, 10)
	DefaultPosition = vmath.V3(0, 20, 30)
)

const DefaultSmoothing = 0.1

func (m Mode) String() string {
	switch m {
	case ModeFixed:
		return "fixed"
	case ModeDecay:
		return "decay"
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

// ParseMode accepts "fixed" or "decay"; empty selects fixed
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fixed":
		return ModeFixed, nil
	case "decay":
		return ModeDecay, nil
	}
	return ModeFixed, fmt.Errorf("unknown camera mode %q", s)
}

// Controller tracks a target with position lag and a locked gaze
type Controller struct {
	offset    vmath.Vec3
	smoothing float64
	mode      Mode
	// Decay rate derived from smoothing at ReferenceRate
	k float64

	position vmath.Vec3
	lookAt   vmath.Vec3
}

// New creates a controller; smoothing must lie in (0, 1]
func New(offset vmath.Vec3, smoothing float64, mode Mode) (*Controller, error) {
	if !(smoothing > 0 && smoothing <= 1) {
		return nil, fmt.Errorf("camera smoothing must be in (0,1], got %v", smoothing)
	}
	if mode > ModeDecay {
		return nil, fmt.Errorf("invalid camera mode %d", mode)
	}
	c := &Controller{
		offset:    offset,
		smoothing: smoothing,
		mode:      mode,
		position:  DefaultPosition,
	}
	if smoothing < 1 {
		c.k = -math.Log(1-smoothing) * ReferenceRate
	}
	return c, nil
}

// NewDefault returns the standard chase rig
func NewDefault() *Controller {
	c, _ := New(DefaultOffset, DefaultSmoothing, ModeFixed)
	return c
}

// factor returns the lerp weight for one update
func (c *Controller) factor(dt float64) float64 {
	if c.mode == ModeFixed || c.smoothing >= 1 {
		return c.smoothing
	}
	if !(dt > 0) || math.IsInf(dt, 0) {
		if math.IsInf(dt, 1) {
			return 1
		}
		return 0
	}
	return 1 - math.Exp(-c.k*dt)
}

// Update moves the camera toward target+offset and locks gaze on target
func (c *Controller) Update(target vmath.Vec3, dt float64) {
	goal := target.Add(c.offset)
	c.position = c.position.Lerp(goal, c.factor(dt))
	c.lookAt = target
}

// Reset places the camera at pos looking at lookAt with no lag
func (c *Controller) Reset(pos, lookAt vmath.Vec3) {
	c.position = pos
	c.lookAt = lookAt
}

// Snap jumps straight to the chase position for target
func (c *Controller) Snap(target vmath.Vec3) {
	c.Reset(target.Add(c.offset), target)
}

// View returns the current camera transform
func (c *Controller) View() render.View {
	return render.View{Position: c.position, LookAt: c.lookAt}
}

// Position returns the smoothed camera position
func (c *Controller) Position() vmath.Vec3 {
	return c.position
}

// LookAt returns the current gaze target
func (c *Controller) LookAt() vmath.Vec3 {
	return c.lookAt
}

// Offset returns the chase offset
func (c *Controller) Offset() vmath.Vec3 {
	return c.offset
}

// Mode returns the smoothing mode
func (c *Controller) Mode() Mode {
	return c.mode
}
