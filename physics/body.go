package physics

import (
	"errors"
	"fmt"
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/lixenwraith/gridiron/vmath"
)

var (
	ErrInvalidBody   = errors.New("invalid body definition")
	ErrInvalidConfig = errors.New("invalid physics config")
	ErrUnknownBody   = errors.New("unknown or removed body")
)

// Shape is the collision geometry of a body
type Shape interface {
	shape()
}

// Cylinder is an upright cylinder centered on the body position
type Cylinder struct {
	Radius float64
	Height float64
}

// Plane is an infinite horizontal plane; the body position Y is its height
type Plane struct{}

func (Cylinder) shape() {}
func (Plane) shape()    {}

// BodyDef describes a body to register
// Mass 0 makes the body static (immovable); only planes may be static
type BodyDef struct {
	Shape         Shape
	Mass          float64
	Position      vmath.Vec3
	FixedRotation bool
}

// Body is an opaque handle to a registered body
type Body struct {
	entity ecs.Entity
}

// IsZero reports whether the handle was never assigned
func (b Body) IsZero() bool {
	return b.entity.IsZero()
}

// Components stored in the ark world

type transform struct {
	Pos vmath.Vec3
}

type motion struct {
	Vel vmath.Vec3
}

type collider struct {
	Radius     float64
	HalfHeight float64
	InvMass    float64
	Mass       float64
	Grounded   bool
	// Rotation is never integrated; kept to answer queries about the lock
	FixedRotation bool
}

type staticPlane struct {
	Height float64
}

func validateDef(def BodyDef) error {
	if !finite(def.Position) {
		return fmt.Errorf("%w: non-finite position %v", ErrInvalidBody, def.Position)
	}
	switch s := def.Shape.(type) {
	case Cylinder:
		if !(s.Radius > 0) || !(s.Height > 0) {
			return fmt.Errorf("%w: cylinder needs positive radius and height, got r=%v h=%v", ErrInvalidBody, s.Radius, s.Height)
		}
		if !(def.Mass > 0) || math.IsInf(def.Mass, 0) {
			return fmt.Errorf("%w: dynamic cylinder needs positive mass, got %v", ErrInvalidBody, def.Mass)
		}
	case Plane:
		if def.Mass != 0 {
			return fmt.Errorf("%w: planes are static and must have zero mass, got %v", ErrInvalidBody, def.Mass)
		}
	case nil:
		return fmt.Errorf("%w: missing shape", ErrInvalidBody)
	default:
		return fmt.Errorf("%w: unsupported shape %T", ErrInvalidBody, s)
	}
	return nil
}

func finite(v vmath.Vec3) bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
