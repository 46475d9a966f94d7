package vmath

import (
	"math"
)

// Vec3 is a float64 3D vector in world units (meters)
// Y is up; the field plane is XZ
type Vec3 struct {
	X, Y, Z float64
}

// Zero is the origin / no-movement vector
var Zero = Vec3{}

func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func (v Vec3) Len() float64 {
	return math.Sqrt(v.LenSq())
}

// Normalize returns the unit vector, or Zero for a zero-length input
func (v Vec3) Normalize() Vec3 {
	mag := v.Len()
	if mag == 0 {
		return Vec3{}
	}
	inv := 1.0 / mag
	return Vec3{v.X * inv, v.Y * inv, v.Z * inv}
}

// IsZero reports an exact zero vector
func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Lerp moves v toward target by fraction t (0 = stay, 1 = snap)
func (v Vec3) Lerp(target Vec3, t float64) Vec3 {
	return Vec3{
		v.X + (target.X-v.X)*t,
		v.Y + (target.Y-v.Y)*t,
		v.Z + (target.Z-v.Z)*t,
	}
}

// Planar drops the vertical component
func (v Vec3) Planar() Vec3 {
	return Vec3{X: v.X, Z: v.Z}
}

// PlanarLen is the horizontal magnitude, ignoring Y
func (v Vec3) PlanarLen() float64 {
	return math.Hypot(v.X, v.Z)
}

// Yaw returns the heading of the planar component, measured from +Z toward +X
func (v Vec3) Yaw() float64 {
	return math.Atan2(v.X, v.Z)
}

// Dist returns distance between two points
func Dist(a, b Vec3) float64 {
	return a.Sub(b).Len()
}

// ApproxEqual compares component-wise within eps
func ApproxEqual(a, b Vec3, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps && math.Abs(a.Z-b.Z) <= eps
}

// Clamp limits x to [lo, hi]
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
