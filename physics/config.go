package physics

import (
	"fmt"
	"math"
)

// Config holds world-wide simulation parameters
type Config struct {
	Gravity     float64 // Vertical acceleration, m/s^2 (negative = down)
	FixedStep   float64 // Internal sub-step size in seconds
	MaxSubSteps int     // Upper bound on sub-steps per Step call

	// Contact response between bodies and between bodies and static planes
	Restitution float64 // 0 = no bounce, 1 = perfectly elastic
	Friction    float64 // Coulomb coefficient applied while grounded
}

// DefaultConfig matches the stadium tuning: earth gravity, 60 Hz sub-steps, at most 3 per frame
func DefaultConfig() Config {
	return Config{
		Gravity:     -9.82,
		FixedStep:   1.0 / 60.0,
		MaxSubSteps: 3,
		Restitution: 0,
		Friction:    0.3,
	}
}

// Validate rejects configurations the stepper cannot run with
func (c Config) Validate() error {
	if !(c.FixedStep > 0) || math.IsInf(c.FixedStep, 0) {
		return fmt.Errorf("%w: fixed step must be positive, got %v", ErrInvalidConfig, c.FixedStep)
	}
	if c.MaxSubSteps < 1 {
		return fmt.Errorf("%w: max sub-steps must be >= 1, got %d", ErrInvalidConfig, c.MaxSubSteps)
	}
	if c.Restitution < 0 || c.Restitution > 1 {
		return fmt.Errorf("%w: restitution must be in [0,1], got %v", ErrInvalidConfig, c.Restitution)
	}
	if c.Friction < 0 {
		return fmt.Errorf("%w: friction must be >= 0, got %v", ErrInvalidConfig, c.Friction)
	}
	if math.IsNaN(c.Gravity) || math.IsInf(c.Gravity, 0) {
		return fmt.Errorf("%w: gravity must be finite", ErrInvalidConfig)
	}
	return nil
}
