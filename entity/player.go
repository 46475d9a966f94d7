// Package entity couples one render visual with one physics body
// Physics is authoritative; the visual is derived through SyncVisualFromPhysics only
package entity

import (
	"errors"
	"fmt"
	"math"

	"github.com/lixenwraith/gridiron/physics"
	"github.com/lixenwraith/gridiron/render"
	"github.com/lixenwraith/gridiron/team"
	"github.com/lixenwraith/gridiron/vmath"
)

// ErrDestroyed is returned when operating on a torn-down player
var ErrDestroyed = errors.New("player destroyed")

// Default body dimensions and speed
const (
	DefaultRadius = 0.5
	DefaultHeight = 2.0
	DefaultMass   = 80.0
	DefaultSpeed  = 10.0
)

// Spec describes a player to spawn
type Spec struct {
	Team       team.Descriptor
	Controlled bool
	// Away players are drawn in the white road jersey
	Away     bool
	Position vmath.Vec3
	Yaw      float64

	// Zero values select the defaults above
	Speed  float64
	Radius float64
	Height float64
	Mass   float64
}

func (s Spec) withDefaults() Spec {
	if s.Speed == 0 {
		s.Speed = DefaultSpeed
	}
	if s.Radius == 0 {
		s.Radius = DefaultRadius
	}
	if s.Height == 0 {
		s.Height = DefaultHeight
	}
	if s.Mass == 0 {
		s.Mass = DefaultMass
	}
	return s
}

// Player is one field entity
type Player struct {
	team       team.Descriptor
	controlled bool
	speed      float64

	surface render.Surface
	world   *physics.World
	visual  *render.Visual
	body    physics.Body

	destroyed bool
}

// NewPlayer creates the body and the visual together
// On failure neither is registered
func NewPlayer(surface render.Surface, world *physics.World, spec Spec) (*Player, error) {
	spec = spec.withDefaults()
	if spec.Speed < 0 || math.IsNaN(spec.Speed) || math.IsInf(spec.Speed, 0) {
		return nil, fmt.Errorf("%w: speed %v", physics.ErrInvalidBody, spec.Speed)
	}

	body, err := world.AddBody(physics.BodyDef{
		Shape:         physics.Cylinder{Radius: spec.Radius, Height: spec.Height},
		Mass:          spec.Mass,
		Position:      spec.Position,
		FixedRotation: true,
	})
	if err != nil {
		return nil, fmt.Errorf("spawn %s player: %w", spec.Team.Key, err)
	}

	// Away players wear white; the helmet keeps the team's secondary color
	jersey := render.Hex(spec.Team.Primary.Hex())
	if spec.Away {
		jersey = render.RGBWhite
	}
	visual := &render.Visual{
		Position:   spec.Position,
		Yaw:        spec.Yaw,
		Radius:     spec.Radius,
		Height:     spec.Height,
		Primary:    jersey,
		Secondary:  render.Hex(spec.Team.Secondary.Hex()),
		Label:      spec.Team.Key,
		Controlled: spec.Controlled,
	}
	surface.AddVisual(visual)

	return &Player{
		team:       spec.Team,
		controlled: spec.Controlled,
		speed:      spec.Speed,
		surface:    surface,
		world:      world,
		visual:     visual,
		body:       body,
	}, nil
}

// Move steers the player on the horizontal plane
// Vertical velocity is preserved; a zero direction stops horizontal motion and keeps facing
func (p *Player) Move(dir vmath.Vec3) error {
	if p.destroyed {
		return ErrDestroyed
	}
	vel, err := p.world.Velocity(p.body)
	if err != nil {
		return err
	}

	h := dir.Planar().Normalize().Scale(p.speed)
	if err := p.world.SetVelocity(p.body, vmath.V3(h.X, vel.Y, h.Z)); err != nil {
		return err
	}

	if planar := dir.Planar(); planar.LenSq() > 0 {
		p.visual.Yaw = planar.Yaw()
	}
	return nil
}

// SyncVisualFromPhysics copies the body position into the visual
// The only writer of visual position; yaw is left to Move
func (p *Player) SyncVisualFromPhysics() error {
	if p.destroyed {
		return ErrDestroyed
	}
	pos, err := p.world.Position(p.body)
	if err != nil {
		return err
	}
	p.visual.Position = pos
	return nil
}

// Destroy removes the visual and the body together; safe to call twice
func (p *Player) Destroy() {
	if p.destroyed {
		return
	}
	p.destroyed = true
	p.surface.RemoveVisual(p.visual)
	p.world.RemoveBody(p.body)
}

// Destroyed reports whether Destroy has run
func (p *Player) Destroyed() bool {
	return p.destroyed
}

// Team returns the owning team
func (p *Player) Team() team.Descriptor {
	return p.team
}

// Controlled reports whether the user steers this player
func (p *Player) Controlled() bool {
	return p.controlled
}

// Speed returns the planar speed constant
func (p *Player) Speed() float64 {
	return p.speed
}

// Position returns the visual position, which tracks the body as of the last sync
func (p *Player) Position() vmath.Vec3 {
	return p.visual.Position
}

// Yaw returns the visual heading
func (p *Player) Yaw() float64 {
	return p.visual.Yaw
}

// Visual returns the owned render node
func (p *Player) Visual() *render.Visual {
	return p.visual
}

// Body returns the owned physics handle
func (p *Player) Body() physics.Body {
	return p.body
}
