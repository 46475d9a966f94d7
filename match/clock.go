package match

import (
	"fmt"
	"math"
)

// FormatClock renders seconds as m:ss; negative and NaN show as 0:00
func FormatClock(seconds float64) string {
	if !(seconds > 0) {
		return "0:00"
	}
	if math.IsInf(seconds, 1) {
		return "--:--"
	}
	minutes := math.Floor(seconds / 60)
	secs := math.Floor(math.Mod(seconds, 60))
	return fmt.Sprintf("%d:%02d", int64(minutes), int64(secs))
}

// countdown is a clock that only runs down and holds at zero
type countdown struct {
	remaining float64
	expired   bool
}

func (c *countdown) reset(seconds float64) {
	c.remaining = seconds
	c.expired = false
}

// advance subtracts elapsed and reports true exactly once, on the tick that reaches zero
func (c *countdown) advance(elapsed float64) bool {
	if c.expired {
		return false
	}
	c.remaining -= elapsed
	if c.remaining <= 0 {
		c.remaining = 0
		c.expired = true
		return true
	}
	return false
}
