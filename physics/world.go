package physics

import (
	"fmt"
	"math"

	"github.com/mlange-42/ark/ecs"
	"go.uber.org/zap"

	"github.com/lixenwraith/gridiron/vmath"
)

// World owns the simulation context and advances it in fixed sub-steps
// Not safe for concurrent use; driven from the single frame loop
type World struct {
	cfg Config
	log *zap.Logger

	world   ecs.World
	dynamic *ecs.Map3[transform, motion, collider]
	planes  *ecs.Map1[staticPlane]

	dynFilter   *ecs.Filter3[transform, motion, collider]
	planeFilter *ecs.Filter1[staticPlane]

	// Scratch buffers reused across steps
	bodies      []ecs.Entity
	planeYs     []float64
	accumulator float64

	// Counters
	stepCount uint64
	simTime   float64
	dropped   float64
}

// NewWorld creates a world with an immovable ground plane at y=0
func NewWorld(cfg Config, logger *zap.Logger) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	w := &World{
		cfg:   cfg,
		log:   logger.Named("physics"),
		world: ecs.NewWorld(),
	}
	w.dynamic = ecs.NewMap3[transform, motion, collider](&w.world)
	w.planes = ecs.NewMap1[staticPlane](&w.world)
	w.dynFilter = ecs.NewFilter3[transform, motion, collider](&w.world)
	w.planeFilter = ecs.NewFilter1[staticPlane](&w.world)

	if _, err := w.AddBody(BodyDef{Shape: Plane{}, Mass: 0}); err != nil {
		return nil, fmt.Errorf("ground plane: %w", err)
	}
	return w, nil
}

// Config returns the active configuration
func (w *World) Config() Config {
	return w.cfg
}

// AddBody registers a static plane or a dynamic cylinder
func (w *World) AddBody(def BodyDef) (Body, error) {
	if err := validateDef(def); err != nil {
		return Body{}, err
	}

	switch s := def.Shape.(type) {
	case Plane:
		e := w.planes.NewEntity(&staticPlane{Height: def.Position.Y})
		return Body{entity: e}, nil
	case Cylinder:
		e := w.dynamic.NewEntity(
			&transform{Pos: def.Position},
			&motion{},
			&collider{
				Radius:        s.Radius,
				HalfHeight:    s.Height / 2,
				Mass:          def.Mass,
				InvMass:       1.0 / def.Mass,
				FixedRotation: def.FixedRotation,
			},
		)
		w.log.Debug("body added",
			zap.Uint32("id", e.ID()),
			zap.Float64("mass", def.Mass),
			zap.Float64("x", def.Position.X),
			zap.Float64("y", def.Position.Y),
			zap.Float64("z", def.Position.Z),
		)
		return Body{entity: e}, nil
	}
	// validateDef rejects everything else
	return Body{}, fmt.Errorf("%w: unsupported shape %T", ErrInvalidBody, def.Shape)
}

// RemoveBody unregisters a body; removing a dead handle is a no-op
func (w *World) RemoveBody(b Body) {
	if b.IsZero() || !w.world.Alive(b.entity) {
		return
	}
	w.world.RemoveEntity(b.entity)
}

// Alive reports whether the handle refers to a registered body
func (w *World) Alive(b Body) bool {
	return !b.IsZero() && w.world.Alive(b.entity)
}

// BodyCount returns the number of dynamic bodies
func (w *World) BodyCount() int {
	n := 0
	query := w.dynFilter.Query()
	for query.Next() {
		n++
	}
	return n
}

// Position returns the body's current position
func (w *World) Position(b Body) (vmath.Vec3, error) {
	if !w.isDynamic(b) {
		return vmath.Vec3{}, ErrUnknownBody
	}
	t, _, _ := w.dynamic.Get(b.entity)
	return t.Pos, nil
}

// Velocity returns the body's current linear velocity
func (w *World) Velocity(b Body) (vmath.Vec3, error) {
	if !w.isDynamic(b) {
		return vmath.Vec3{}, ErrUnknownBody
	}
	_, m, _ := w.dynamic.Get(b.entity)
	return m.Vel, nil
}

// SetVelocity overwrites the body's linear velocity
func (w *World) SetVelocity(b Body, v vmath.Vec3) error {
	if !w.isDynamic(b) {
		return ErrUnknownBody
	}
	_, m, _ := w.dynamic.Get(b.entity)
	m.Vel = v
	return nil
}

// Grounded reports whether the body touched a static plane during the last sub-step
func (w *World) Grounded(b Body) bool {
	if !w.isDynamic(b) {
		return false
	}
	_, _, c := w.dynamic.Get(b.entity)
	return c.Grounded
}

// RotationLocked reports whether the body ignores collision torque
// Rotation is never integrated by this world, so dynamic bodies are always upright
func (w *World) RotationLocked(b Body) bool {
	return w.isDynamic(b)
}

func (w *World) isDynamic(b Body) bool {
	return w.Alive(b) && w.dynamic.HasAll(b.entity)
}

// Step advances the simulation by elapsed seconds using fixed sub-steps
// At most MaxSubSteps are taken; leftover time beyond that is dropped
// Returns the number of sub-steps performed
func (w *World) Step(elapsed float64) int {
	// Rejects negative, zero and NaN
	if !(elapsed > 0) {
		return 0
	}
	if math.IsInf(elapsed, 1) {
		// Saturate: run the full sub-step budget, drop the rest
		elapsed = w.cfg.FixedStep * (float64(w.cfg.MaxSubSteps) + 0.5)
	}

	h := w.cfg.FixedStep
	w.accumulator += elapsed

	substeps := 0
	for w.accumulator >= h && substeps < w.cfg.MaxSubSteps {
		w.internalStep(h)
		w.accumulator -= h
		substeps++
	}

	if w.accumulator >= h {
		lost := w.accumulator - math.Mod(w.accumulator, h)
		w.dropped += lost
		w.log.Debug("simulation time truncated",
			zap.Float64("elapsed", elapsed),
			zap.Float64("dropped", lost),
			zap.Int("substeps", substeps),
		)
	}
	w.accumulator = math.Mod(w.accumulator, h)

	w.stepCount += uint64(substeps)
	w.simTime += float64(substeps) * h
	return substeps
}

// Stats returns total sub-steps, simulated seconds and dropped seconds
func (w *World) Stats() (steps uint64, simulated, dropped float64) {
	return w.stepCount, w.simTime, w.dropped
}

// internalStep integrates one fixed sub-step
func (w *World) internalStep(h float64) {
	w.planeYs = w.planeYs[:0]
	pq := w.planeFilter.Query()
	for pq.Next() {
		p := pq.Get()
		w.planeYs = append(w.planeYs, p.Height)
	}

	// Integrate: semi-implicit Euler, v += g*h; p += v*h
	w.bodies = w.bodies[:0]
	query := w.dynFilter.Query()
	for query.Next() {
		t, m, c := query.Get()

		m.Vel.Y += w.cfg.Gravity * h
		t.Pos = t.Pos.Add(m.Vel.Scale(h))

		c.Grounded = false
		for _, y := range w.planeYs {
			if restOnPlane(t, m, c, y, w.cfg.Restitution) {
				c.Grounded = true
			}
		}
		if c.Grounded {
			applyFriction(m, w.cfg.Friction, w.cfg.Gravity, h)
		}

		w.bodies = append(w.bodies, query.Entity())
	}

	// Pairwise body contacts; body counts are small (a handful of players)
	for i := 0; i < len(w.bodies); i++ {
		tA, mA, cA := w.dynamic.Get(w.bodies[i])
		for j := i + 1; j < len(w.bodies); j++ {
			tB, mB, cB := w.dynamic.Get(w.bodies[j])
			nx, nz, touching := separateCylinders(tA, tB, cA, cB)
			if !touching {
				continue
			}
			resolveImpulse(mA, mB, cA, cB, nx, nz, w.cfg.Restitution)
		}
	}
}
