package config

import (
	"fmt"
	"time"

	"github.com/lixenwraith/gridiron/audio"
	"github.com/lixenwraith/gridiron/camera"
	"github.com/lixenwraith/gridiron/input"
	"github.com/lixenwraith/gridiron/match"
	"github.com/lixenwraith/gridiron/physics"
	"github.com/lixenwraith/gridiron/team"
	"github.com/lixenwraith/gridiron/vmath"
)

// MatchConfig converts to the match spawn layout
func (c Config) MatchConfig() match.Config {
	mc := match.DefaultConfig()
	mc.AwayTeam = c.Match.AwayTeam
	mc.HomeSpawn = c.Match.HomeSpawn.Vec()
	mc.DefenderSpawns = make([]vmath.Vec3, len(c.Match.DefenderSpawns))
	for i, p := range c.Match.DefenderSpawns {
		mc.DefenderSpawns[i] = p.Vec()
	}
	mc.SpawnHeight = c.Match.SpawnHeight
	mc.PlayerSpeed = c.Match.PlayerSpeed
	mc.BodyRadius = c.Physics.BodyRadius
	mc.BodyHeight = c.Physics.BodyHeight
	mc.BodyMass = c.Physics.BodyMass
	return mc
}

// PhysicsConfig converts to the world parameters
func (c Config) PhysicsConfig() physics.Config {
	return physics.Config{
		Gravity:     c.Physics.Gravity,
		FixedStep:   c.Physics.FixedStep,
		MaxSubSteps: c.Physics.MaxSubSteps,
		Restitution: c.Physics.Restitution,
		Friction:    c.Physics.Friction,
	}
}

// NewCamera builds the chase camera
func (c Config) NewCamera() (*camera.Controller, error) {
	mode, err := camera.ParseMode(c.Camera.Mode)
	if err != nil {
		return nil, err
	}
	return camera.New(c.Camera.Offset.Vec(), c.Camera.Smoothing, mode)
}

// Bindings returns the key table with overrides applied
func (c Config) Bindings() (input.Bindings, error) {
	return input.ParseBindings(c.Input.Bindings)
}

// HoldWindow is the terminal key latch window
func (c Config) HoldWindow() time.Duration {
	return c.Input.Hold
}

// TeamRegistry loads the configured team file or returns the built-in clubs
// Both match teams must exist in the result
func (c Config) TeamRegistry() (*team.Registry, error) {
	reg := team.Default()
	if c.Teams != "" {
		r, err := team.LoadFile(c.Teams)
		if err != nil {
			return nil, err
		}
		reg = r
	}
	for _, key := range []string{c.Match.AwayTeam, c.Match.HomeTeam} {
		if key == "" {
			continue
		}
		if _, ok := reg.Lookup(key); !ok {
			return nil, fmt.Errorf("%w: team %q not in registry", ErrInvalidConfig, key)
		}
	}
	return reg, nil
}

// AudioConfig converts to the cue player settings
func (c Config) AudioConfig() audio.Config {
	return audio.Config{
		Enabled: c.Audio.Enabled,
		Muted:   c.Audio.Muted,
		Volume:  c.Audio.Volume,
	}
}

// FrameInterval is the host tick period
func (c Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.Render.FPS)
}
