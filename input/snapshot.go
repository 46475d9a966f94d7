package input

import (
	"github.com/lixenwraith/gridiron/vmath"
)

// Key is a logical direction key
type Key uint8

const (
	KeyForward Key = iota
	KeyBackward
	KeyLeft
	KeyRight
	keyCount
)

var keyNames = [keyCount]string{"forward", "backward", "left", "right"}

func (k Key) String() string {
	if k < keyCount {
		return keyNames[k]
	}
	return "unknown"
}

// Snapshot is the current pressed-state of the direction keys
// Only the latest state matters; presses are not queued
type Snapshot struct {
	pressed [keyCount]bool
}

// Press marks k as held
func (s *Snapshot) Press(k Key) {
	s.Set(k, true)
}

// Release marks k as not held
func (s *Snapshot) Release(k Key) {
	s.Set(k, false)
}

// Set writes the pressed-state of k; unknown keys are ignored
func (s *Snapshot) Set(k Key, down bool) {
	if k < keyCount {
		s.pressed[k] = down
	}
}

// Pressed reports whether k is held
func (s Snapshot) Pressed(k Key) bool {
	return k < keyCount && s.pressed[k]
}

// Clear releases every key
func (s *Snapshot) Clear() {
	s.pressed = [keyCount]bool{}
}

// Any reports whether at least one key is held
func (s Snapshot) Any() bool {
	for _, p := range s.pressed {
		if p {
			return true
		}
	}
	return false
}

// Direction maps a snapshot to a planar direction with components in {-1, 0, 1}
// Forward is -Z, backward +Z, left -X, right +X; Y is always 0
// Opposite keys held together cancel on their axis
func Direction(s Snapshot) vmath.Vec3 {
	var d vmath.Vec3
	if s.pressed[KeyForward] {
		d.Z -= 1
	}
	if s.pressed[KeyBackward] {
		d.Z += 1
	}
	if s.pressed[KeyLeft] {
		d.X -= 1
	}
	if s.pressed[KeyRight] {
		d.X += 1
	}
	return d
}
