package input

import (
	"time"
)

// Latch synthesizes key releases for hosts that only report presses
// A terminal sends repeated press events while a key is held and nothing on release;
// the latch keeps a key down until no press has arrived for the hold window
type Latch struct {
	hold      time.Duration
	lastPress [keyCount]time.Time
	snapshot  Snapshot
}

// DefaultHoldWindow covers typical terminal auto-repeat delay
const DefaultHoldWindow = 550 * time.Millisecond

// NewLatch creates a latch; hold <= 0 selects DefaultHoldWindow
func NewLatch(hold time.Duration) *Latch {
	if hold <= 0 {
		hold = DefaultHoldWindow
	}
	return &Latch{hold: hold}
}

// Press records a press of k at now
func (l *Latch) Press(k Key, now time.Time) {
	if k >= keyCount {
		return
	}
	// Pressing a direction releases its opposite so reversing is immediate
	if opp, ok := opposite(k); ok {
		l.snapshot.Release(opp)
		l.lastPress[opp] = time.Time{}
	}
	l.lastPress[k] = now
	l.snapshot.Press(k)
}

// Update releases keys whose hold window has elapsed and returns the snapshot
func (l *Latch) Update(now time.Time) Snapshot {
	for k := Key(0); k < keyCount; k++ {
		if !l.snapshot.Pressed(k) {
			continue
		}
		if now.Sub(l.lastPress[k]) >= l.hold {
			l.snapshot.Release(k)
		}
	}
	return l.snapshot
}

// Reset releases every key
func (l *Latch) Reset() {
	l.snapshot.Clear()
	l.lastPress = [keyCount]time.Time{}
}

func opposite(k Key) (Key, bool) {
	switch k {
	case KeyForward:
		return KeyBackward, true
	case KeyBackward:
		return KeyForward, true
	case KeyLeft:
		return KeyRight, true
	case KeyRight:
		return KeyLeft, true
	}
	return keyCount, false
}
