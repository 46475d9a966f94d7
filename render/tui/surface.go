// Package tui draws the field top-down into a tcell screen
package tui

import (
	"math"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/gridiron/render"
	"github.com/lixenwraith/gridiron/vmath"
	"go.uber.org/zap"
)

const (
	// Terminal cells are roughly twice as tall as wide
	cellAspect = 2.0
	// Rows per meter at the reference camera distance
	defaultScale = 1.0
	// HUD bar rows at the top of the screen
	hudRows = 1
	// Background dim factor while an overlay is up
	overlayDim = 0.45
)

// Surface renders the scene into a tcell screen
type Surface struct {
	screen tcell.Screen
	log    *zap.Logger
	scene  render.Scene
	buf    *Buffer
	proj   render.Projector
	frames uint64
}

// New creates a surface sized to the screen
func New(screen tcell.Screen, log *zap.Logger) *Surface {
	if log == nil {
		log = zap.NewNop()
	}
	w, h := screen.Size()
	s := &Surface{
		screen: screen,
		log:    log,
		buf:    NewBuffer(w, h, render.ColorSky),
		proj: render.Projector{
			BaseScale: defaultScale,
			Aspect:    cellAspect,
		},
	}
	s.Resize(w, h)
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

// Visuals returns the number of registered visuals
func (s *Surface) Visuals() int {
	return s.scene.Len()
}

// Frames returns the number of completed Render calls
func (s *Surface) Frames() uint64 {
	return s.frames
}

// SetScale overrides rows per meter at the reference distance
func (s *Surface) SetScale(scale float64) {
	if scale > 0 && !math.IsInf(scale, 0) {
		s.proj.BaseScale = scale
	}
}

// Resize adapts the viewport to a new terminal size
func (s *Surface) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	s.buf.Resize(width, height)
	s.proj.Width = width
	s.proj.Height = height - hudRows
	s.log.Debug("surface resized", zap.Int("width", width), zap.Int("height", height))
}

// Render composites one frame and presents it
func (s *Surface) Render(view render.View, hud render.HUD) {
	s.buf.Clear()

	s.drawField(view)
	s.drawVisuals(view)

	if len(hud.Lines) > 0 {
		s.buf.Dim(overlayDim)
		s.drawOverlay(hud.Lines)
	}
	s.drawHUD(hud)

	s.buf.Flush(s.screen)
	s.screen.Show()
	s.frames++
}

// drawField paints terrain under each cell center
func (s *Surface) drawField(view render.View) {
	w, h := s.buf.Bounds()
	scale := s.proj.Scale(view)
	// Half a row in meters so lines never vanish between cells
	tol := 0.5 / scale

	for y := hudRows; y < h; y++ {
		for x := 0; x < w; x++ {
			pt := s.proj.Unproject(view, float64(x)+0.5, float64(y-hudRows)+0.5)
			switch render.TerrainAt(pt, tol) {
			case render.TerrainGrass:
				s.buf.SetWithBg(x, y, ' ', render.ColorLine, render.ColorGrass)
			case render.TerrainLine:
				s.buf.SetWithBg(x, y, ' ', render.ColorLine, render.ColorLine)
			case render.TerrainStand:
				s.buf.SetWithBg(x, y, '░', render.Scale(render.ColorStand, 1.8), render.ColorStand)
			default:
				s.buf.SetWithBg(x, y, ' ', render.ColorText, render.ColorSky)
			}
		}
	}
}

// drawVisuals paints each visual as a filled ellipse with a facing arrow
func (s *Surface) drawVisuals(view render.View) {
	scale := s.proj.Scale(view)

	s.scene.Each(func(v *render.Visual) {
		cx, cy := s.proj.Project(view, v.Position)
		cy += hudRows

		ry := v.Radius * scale
		rx := ry * cellAspect
		if ry < 0.5 {
			ry = 0.5
		}
		if rx < 0.5 {
			rx = 0.5
		}

		for y := int(math.Floor(cy - ry)); y <= int(math.Floor(cy+ry)); y++ {
			if y < hudRows {
				continue
			}
			for x := int(math.Floor(cx - rx)); x <= int(math.Floor(cx+rx)); x++ {
				dx := (float64(x) + 0.5 - cx) / rx
				dy := (float64(y) + 0.5 - cy) / ry
				if dx*dx+dy*dy <= 1 {
					s.buf.SetWithBg(x, y, ' ', v.Secondary, v.Primary)
				}
			}
		}

		px, py := int(math.Floor(cx)), int(math.Floor(cy))
		if py >= hudRows {
			s.buf.SetWithBg(px, py, render.FacingGlyph(v.Yaw), v.Secondary, v.Primary)
		}

		if v.Label != "" {
			ly := int(math.Floor(cy-ry)) - 1
			if ly >= hudRows {
				lx := px - utf8.RuneCountInString(v.Label)/2
				s.buf.Text(lx, ly, v.Label, render.ColorText, render.Scale(v.Primary, 0.6), v.Controlled)
			}
		}
	})
}

// drawHUD paints the top bar: title left, clock centered, status right
func (s *Surface) drawHUD(hud render.HUD) {
	w, h := s.buf.Bounds()
	if h == 0 {
		return
	}
	for x := 0; x < w; x++ {
		s.buf.SetWithBg(x, 0, ' ', render.ColorText, render.ColorPanel)
	}

	if hud.Title != "" {
		s.buf.Text(1, 0, hud.Title, render.ColorText, render.ColorPanel, true)
	}
	if hud.Clock != "" {
		n := utf8.RuneCountInString(hud.Clock)
		s.buf.Text((w-n)/2, 0, hud.Clock, render.ColorText, render.ColorPanel, true)
	}
	if hud.Status != "" {
		n := utf8.RuneCountInString(hud.Status)
		s.buf.Text(w-n-1, 0, hud.Status, render.Scale(render.ColorText, 0.8), render.ColorPanel, false)
	}
}

// drawOverlay paints a centered panel with one line per row
func (s *Surface) drawOverlay(lines []string) {
	w, h := s.buf.Bounds()

	width := 0
	for _, l := range lines {
		width = max(width, utf8.RuneCountInString(l))
	}
	boxW := width + 4
	boxH := len(lines) + 2
	x0 := (w - boxW) / 2
	y0 := hudRows + (h-hudRows-boxH)/2

	for y := y0; y < y0+boxH; y++ {
		for x := x0; x < x0+boxW; x++ {
			s.buf.SetWithBg(x, y, ' ', render.ColorText, render.ColorPanel)
		}
	}
	for i, l := range lines {
		s.buf.Text(x0+2, y0+1+i, l, render.ColorText, render.ColorPanel, i == 0)
	}
}

// Cell exposes the composited cell at x,y for inspection
func (s *Surface) Cell(x, y int) Cell {
	return s.buf.Get(x, y)
}

// ScreenPoint returns the cell a world point maps to under view
func (s *Surface) ScreenPoint(view render.View, pt vmath.Vec3) (int, int) {
	x, y := s.proj.Project(view, pt)
	return int(math.Floor(x)), int(math.Floor(y)) + hudRows
}
