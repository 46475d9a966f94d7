// Package render defines the boundary between the simulation and a display backend
// The simulation only adds/removes visuals, hands over a camera view each frame and reports resizes
package render

import (
	"github.com/lixenwraith/gridiron/vmath"
)

// Stadium palette
var (
	ColorSky   = Hex(0x87CEEB)
	ColorGrass = Hex(0x2D5A27)
	ColorLine  = Hex(0xFFFFFF)
	ColorStand = Hex(0x333333)
	ColorText  = Hex(0xFFFFFF)
	ColorPanel = Hex(0x101820)
)

// Visual is the drawable half of an entity
// Position and Yaw are written only by the owning entity
type Visual struct {
	Position vmath.Vec3
	Yaw      float64 // Heading, radians from +Z toward +X

	Radius float64
	Height float64

	Primary   RGB // Jersey
	Secondary RGB // Helmet and facing marker

	Label      string
	Controlled bool
}

// View is the camera transform for one frame
type View struct {
	Position vmath.Vec3
	LookAt   vmath.Vec3
}

// Distance from camera to its target
func (v View) Distance() float64 {
	return vmath.Dist(v.Position, v.LookAt)
}

// HUD is the text surfaced to the player each frame
type HUD struct {
	Title  string   // e.g. "KC vs SF"
	Clock  string   // m:ss
	Status string   // phase or message
	Lines  []string // Overlay block drawn centered (menu)
}

// Surface is a display backend
// Render has no failure path; backends swallow and log their own errors
type Surface interface {
	AddVisual(v *Visual)
	RemoveVisual(v *Visual)
	Render(view View, hud HUD)
	Resize(width, height int)
}
