package physics

import (
	"math"
)

// separateCylinders pushes two overlapping upright cylinders apart on the horizontal plane
// Vertical extents must overlap for a contact to exist
// Returns the contact normal (A toward B) and whether the bodies were touching
func separateCylinders(posA, posB *transform, a, b *collider) (nx, nz float64, touching bool) {
	// Vertical extent check
	if math.Abs(posB.Pos.Y-posA.Pos.Y) >= a.HalfHeight+b.HalfHeight {
		return 0, 0, false
	}

	dx := posB.Pos.X - posA.Pos.X
	dz := posB.Pos.Z - posA.Pos.Z

	distSq := dx*dx + dz*dz
	minDist := a.Radius + b.Radius
	if distSq >= minDist*minDist {
		return 0, 0, false
	}

	// Coincident centers: pick a deterministic axis
	if distSq == 0 {
		dx, dz, distSq = 0, 1, 1
	}

	dist := math.Sqrt(distSq)
	invDist := 1.0 / dist
	nx, nz = dx*invDist, dz*invDist

	overlap := minDist - dist
	invSum := a.InvMass + b.InvMass
	if invSum == 0 {
		return nx, nz, true
	}

	// Heavier body moves less
	sepA := overlap * a.InvMass / invSum
	sepB := overlap * b.InvMass / invSum

	posA.Pos.X -= nx * sepA
	posA.Pos.Z -= nz * sepA
	posB.Pos.X += nx * sepB
	posB.Pos.Z += nz * sepB

	return nx, nz, true
}

// resolveImpulse applies a planar collision impulse along normal (nx, nz)
// No-op when bodies are already separating
func resolveImpulse(velA, velB *motion, a, b *collider, nx, nz, restitution float64) bool {
	relVx := velA.Vel.X - velB.Vel.X
	relVz := velA.Vel.Z - velB.Vel.Z

	vn := relVx*nx + relVz*nz
	if vn <= 0 {
		return false
	}

	invSum := a.InvMass + b.InvMass
	if invSum == 0 {
		return false
	}

	j := (1.0 + restitution) * vn / invSum

	jInvA := j * a.InvMass
	jInvB := j * b.InvMass

	velA.Vel.X -= jInvA * nx
	velA.Vel.Z -= jInvA * nz
	velB.Vel.X += jInvB * nx
	velB.Vel.Z += jInvB * nz

	return true
}

// restOnPlane clamps a cylinder above a static plane and removes penetrating velocity
// Returns true when the body is in contact with the plane
func restOnPlane(pos *transform, vel *motion, c *collider, planeY, restitution float64) bool {
	bottom := pos.Pos.Y - c.HalfHeight
	if bottom > planeY {
		return false
	}

	pos.Pos.Y = planeY + c.HalfHeight
	if vel.Vel.Y < 0 {
		vel.Vel.Y = -vel.Vel.Y * restitution
		// Kill micro-bounces so bodies settle
		if vel.Vel.Y < restingSpeed {
			vel.Vel.Y = 0
		}
	}
	return true
}

// applyFriction decelerates planar velocity by mu*|g|*dt without reversing it
func applyFriction(vel *motion, mu, gravity, dt float64) {
	speed := math.Hypot(vel.Vel.X, vel.Vel.Z)
	if speed == 0 || mu == 0 {
		return
	}
	drop := mu * math.Abs(gravity) * dt
	if drop >= speed {
		vel.Vel.X, vel.Vel.Z = 0, 0
		return
	}
	k := (speed - drop) / speed
	vel.Vel.X *= k
	vel.Vel.Z *= k
}

// restingSpeed is the bounce speed below which a grounded body stops bouncing
const restingSpeed = 0.1
