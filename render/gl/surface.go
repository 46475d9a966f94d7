// Package gl draws the field into an Ebiten window
// Render captures a frame; Draw paints the latest capture when Ebiten asks for it
package gl

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lixenwraith/gridiron/render"
	"github.com/lixenwraith/gridiron/vmath"
	"go.uber.org/zap"
)

const (
	// Pixels per meter at the reference camera distance
	defaultScale = 14.0
	// Debug font cell size
	charWidth  = 6
	charHeight = 16
	hudHeight  = 20
)

type frame struct {
	view    render.View
	hud     render.HUD
	visuals []render.Visual
}

// Surface renders the scene through Ebiten
type Surface struct {
	log    *zap.Logger
	scene  render.Scene
	proj   render.Projector
	latest frame
	frames uint64
}

// New creates a surface with the given logical size in pixels
func New(width, height int, log *zap.Logger) *Surface {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Surface{
		log:  log,
		proj: render.Projector{BaseScale: defaultScale, Aspect: 1},
	}
	s.Resize(width, height)
	return s
}

// AddVisual registers a visual for drawing
func (s *Surface) AddVisual(v *render.Visual) {
	s.scene.Add(v)
}

// RemoveVisual stops drawing v
func (s *Surface) RemoveVisual(v *render.Visual) {
	s.scene.Remove(v)
}

// Resize sets the logical screen size
func (s *Surface) Resize(width, height int) {
	if width == s.proj.Width && height == s.proj.Height {
		return
	}
	s.proj.Width = max(width, 0)
	s.proj.Height = max(height, 0)
	s.log.Debug("surface resized", zap.Int("width", width), zap.Int("height", height))
}

// Size returns the logical screen size
func (s *Surface) Size() (int, int) {
	return s.proj.Width, s.proj.Height
}

// Frames returns the number of captured frames
func (s *Surface) Frames() uint64 {
	return s.frames
}

// Render captures the scene for the next Draw
func (s *Surface) Render(view render.View, hud render.HUD) {
	s.latest.view = view
	s.latest.hud = hud
	s.latest.visuals = s.scene.Snapshot(s.latest.visuals)
	s.frames++
}

// Draw paints the latest captured frame
func (s *Surface) Draw(screen *ebiten.Image) {
	f := &s.latest

	screen.Fill(rgba(render.ColorSky))
	s.drawField(screen, f.view)
	for i := range f.visuals {
		s.drawVisual(screen, f.view, &f.visuals[i])
	}
	if len(f.hud.Lines) > 0 {
		s.drawOverlay(screen, f.hud.Lines)
	}
	s.drawHUD(screen, f.hud)
}

func rgba(c render.RGB) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// rect projects an axis-aligned field rectangle and fills it
func (s *Surface) rect(dst *ebiten.Image, view render.View, x0, z0, x1, z1 float64, c render.RGB) {
	ax, ay := s.proj.Project(view, vmath.V3(x0, 0, z0))
	bx, by := s.proj.Project(view, vmath.V3(x1, 0, z1))
	left, top := math.Min(ax, bx), math.Min(ay, by)
	w, h := math.Abs(bx-ax), math.Abs(by-ay)
	vector.FillRect(dst, float32(left), float32(top), float32(w), float32(h), rgba(c), false)
}

func (s *Surface) drawField(dst *ebiten.Image, view render.View) {
	halfW := render.FieldWidth / 2
	halfL := render.FieldLength / 2

	// Stands either side
	for _, sign := range []float64{-1, 1} {
		inner := sign * halfW
		outer := sign * (render.StandOffsetX + render.StandHalfWidth)
		s.rect(dst, view, inner, -60, outer, 60, render.ColorStand)
	}

	s.rect(dst, view, -halfW, -halfL, halfW, halfL, render.ColorGrass)

	lineW := float32(math.Max(1, s.proj.Scale(view)*0.2))
	line := rgba(render.ColorLine)
	for z := -halfL; z <= halfL; z += render.YardLineStep {
		ax, ay := s.proj.Project(view, vmath.V3(-halfW, 0, z))
		bx, by := s.proj.Project(view, vmath.V3(halfW, 0, z))
		vector.StrokeLine(dst, float32(ax), float32(ay), float32(bx), float32(by), lineW, line, false)
	}
	for _, x := range []float64{-halfW, halfW} {
		ax, ay := s.proj.Project(view, vmath.V3(x, 0, -halfL))
		bx, by := s.proj.Project(view, vmath.V3(x, 0, halfL))
		vector.StrokeLine(dst, float32(ax), float32(ay), float32(bx), float32(by), lineW, line, false)
	}
}

func (s *Surface) drawVisual(dst *ebiten.Image, view render.View, v *render.Visual) {
	scale := s.proj.Scale(view)
	cx, cy := s.proj.Project(view, v.Position)
	r := float32(math.Max(2, v.Radius*scale))

	vector.DrawFilledCircle(dst, float32(cx), float32(cy), r, rgba(v.Primary), true)
	if v.Controlled {
		vector.StrokeCircle(dst, float32(cx), float32(cy), r+1, 1.5, rgba(render.ColorLine), true)
	}

	// Helmet marker on the facing side, yaw 0 faces +Z (down screen)
	hx := cx + math.Sin(v.Yaw)*float64(r)*0.6
	hy := cy + math.Cos(v.Yaw)*float64(r)*0.6
	vector.DrawFilledCircle(dst, float32(hx), float32(hy), r*0.4, rgba(v.Secondary), true)

	if v.Label != "" {
		ebitenutil.DebugPrintAt(dst, v.Label, int(cx)-len(v.Label)*charWidth/2, int(cy-float64(r))-charHeight)
	}
}

func (s *Surface) drawHUD(dst *ebiten.Image, hud render.HUD) {
	w := s.proj.Width
	vector.FillRect(dst, 0, 0, float32(w), hudHeight, rgba(render.ColorPanel), false)

	if hud.Title != "" {
		ebitenutil.DebugPrintAt(dst, hud.Title, 6, 2)
	}
	if hud.Clock != "" {
		ebitenutil.DebugPrintAt(dst, hud.Clock, (w-len(hud.Clock)*charWidth)/2, 2)
	}
	if hud.Status != "" {
		ebitenutil.DebugPrintAt(dst, hud.Status, w-len(hud.Status)*charWidth-6, 2)
	}
}

func (s *Surface) drawOverlay(dst *ebiten.Image, lines []string) {
	w, h := s.proj.Width, s.proj.Height

	// Dim the field
	vector.FillRect(dst, 0, 0, float32(w), float32(h), color.RGBA{A: 0x90}, false)

	width := 0
	for _, l := range lines {
		width = max(width, len(l))
	}
	boxW := (width + 4) * charWidth
	boxH := (len(lines) + 1) * charHeight
	x0 := (w - boxW) / 2
	y0 := (h - boxH) / 2
	vector.FillRect(dst, float32(x0), float32(y0), float32(boxW), float32(boxH), rgba(render.ColorPanel), false)
	for i, l := range lines {
		ebitenutil.DebugPrintAt(dst, l, x0+2*charWidth, y0+charHeight/2+i*charHeight)
	}
}
