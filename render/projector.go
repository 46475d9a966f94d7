package render

import (
	"math"

	"github.com/lixenwraith/gridiron/vmath"
)

// Field dimensions in meters, centered on the origin
// X spans the width, Z the length
const (
	FieldWidth     = 53.3
	FieldLength    = 100.0
	YardLineStep   = 10.0
	StandOffsetX   = 40.0
	StandHalfWidth = 35.0
)

// referenceDistance is the camera-to-target distance at which BaseScale applies
// Matches the chase offset (0, 5, 10)
var referenceDistance = math.Hypot(5, 10)

// Projector maps field coordinates to a 2D viewport as seen from above the camera target
// Forward (-Z) points up the screen
type Projector struct {
	Width, Height int
	BaseScale     float64 // Viewport units per meter at the reference distance
	Aspect        float64 // Horizontal stretch; 2 for terminal cells that are twice as tall as wide
}

// Scale returns viewport units per meter for the given view
// Zooms in as the camera closes on the target
func (p Projector) Scale(view View) float64 {
	d := view.Distance()
	if d < 1 {
		d = 1
	}
	return p.BaseScale * referenceDistance / d
}

// Project returns viewport coordinates of a world point
func (p Projector) Project(view View, world vmath.Vec3) (x, y float64) {
	s := p.Scale(view)
	aspect := p.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	x = (world.X-view.LookAt.X)*s*aspect + float64(p.Width)/2
	y = (world.Z-view.LookAt.Z)*s + float64(p.Height)/2
	return x, y
}

// Unproject returns the field point under viewport coordinates (y = 0 plane)
func (p Projector) Unproject(view View, x, y float64) vmath.Vec3 {
	s := p.Scale(view)
	aspect := p.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	return vmath.Vec3{
		X: (x-float64(p.Width)/2)/(s*aspect) + view.LookAt.X,
		Z: (y-float64(p.Height)/2)/s + view.LookAt.Z,
	}
}

// Terrain classifies a field point for backends that paint per cell
type Terrain uint8

const (
	TerrainSky Terrain = iota
	TerrainGrass
	TerrainLine
	TerrainStand
)

// TerrainAt returns what lies at a world point; lineTolerance is half a line's width in meters
func TerrainAt(pt vmath.Vec3, lineTolerance float64) Terrain {
	halfW := FieldWidth / 2
	halfL := FieldLength / 2

	if math.Abs(pt.X) <= halfW && math.Abs(pt.Z) <= halfL {
		// Sidelines and yard lines
		if halfW-math.Abs(pt.X) <= lineTolerance {
			return TerrainLine
		}
		off := math.Mod(pt.Z+halfL, YardLineStep)
		if off <= lineTolerance || YardLineStep-off <= lineTolerance {
			return TerrainLine
		}
		return TerrainGrass
	}

	// Stands run the length of both sidelines
	if math.Abs(pt.Z) <= 60 {
		dx := math.Abs(math.Abs(pt.X) - StandOffsetX)
		if dx <= StandHalfWidth && math.Abs(pt.X) > halfW {
			return TerrainStand
		}
	}
	return TerrainSky
}

// FacingGlyph picks an arrow for a heading; yaw 0 faces +Z (down the screen)
func FacingGlyph(yaw float64) rune {
	glyphs := [8]rune{'↓', '↘', '→', '↗', '↑', '↖', '←', '↙'}
	octant := int(math.Round(yaw/(math.Pi/4))) % 8
	if octant < 0 {
		octant += 8
	}
	return glyphs[octant]
}
