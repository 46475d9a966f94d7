package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/gridiron/render"
)

// Cell is one composited terminal cell
type Cell struct {
	Rune rune
	Fg   render.RGB
	Bg   render.RGB
	Bold bool
}

// Buffer is a compositor backed by a flat cell array with touch tracking
// Untouched cells receive the default background on flush
type Buffer struct {
	cells   []Cell
	touched []bool
	width   int
	height  int
	bg      render.RGB
}

// NewBuffer creates a buffer with the specified dimensions
func NewBuffer(width, height int, bg render.RGB) *Buffer {
	b := &Buffer{bg: bg}
	b.Resize(width, height)
	return b
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *Buffer) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
		b.touched = make([]bool, size)
	} else {
		b.cells = b.cells[:size]
		b.touched = b.touched[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Bounds returns buffer dimensions
func (b *Buffer) Bounds() (int, int) {
	return b.width, b.height
}

// Clear resets all cells to empty using exponential copy
func (b *Buffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = Cell{Rune: ' ', Fg: render.ColorText, Bg: b.bg}
	b.touched[0] = false
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
	for filled := 1; filled < len(b.touched); filled *= 2 {
		copy(b.touched[filled:], b.touched[:filled])
	}
}

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Get returns the cell at x,y; out of bounds yields the zero cell
func (b *Buffer) Get(x, y int) Cell {
	if !b.inBounds(x, y) {
		return Cell{}
	}
	return b.cells[y*b.width+x]
}

// SetWithBg writes a cell with explicit fg and bg colors (opaque replace)
func (b *Buffer) SetWithBg(x, y int, r rune, fg, bg render.RGB) {
	if !b.inBounds(x, y) {
		return
	}
	idx := y*b.width + x
	b.cells[idx] = Cell{Rune: r, Fg: fg, Bg: bg}
	b.touched[idx] = true
}

// SetFgOnly writes rune and foreground while preserving existing background
func (b *Buffer) SetFgOnly(x, y int, r rune, fg render.RGB, bold bool) {
	if !b.inBounds(x, y) {
		return
	}
	dst := &b.cells[y*b.width+x]
	dst.Rune = r
	dst.Fg = fg
	dst.Bold = bold
}

// BlendBg alpha-blends bg over the existing background
func (b *Buffer) BlendBg(x, y int, bg render.RGB, alpha float64) {
	if !b.inBounds(x, y) {
		return
	}
	idx := y*b.width + x
	b.cells[idx].Bg = render.Blend(b.cells[idx].Bg, bg, alpha)
	b.touched[idx] = true
}

// Dim scales every cell toward black
func (b *Buffer) Dim(factor float64) {
	for i := range b.cells {
		b.cells[i].Fg = render.Scale(b.cells[i].Fg, factor)
		b.cells[i].Bg = render.Scale(b.cells[i].Bg, factor)
	}
}

// Text writes s left to right starting at x,y, clipped to the buffer
func (b *Buffer) Text(x, y int, s string, fg, bg render.RGB, bold bool) int {
	n := 0
	for _, r := range s {
		b.SetWithBg(x+n, y, r, fg, bg)
		if bold && b.inBounds(x+n, y) {
			b.cells[y*b.width+x+n].Bold = true
		}
		n++
	}
	return n
}

func toTcell(c render.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Flush writes the buffer to screen; untouched cells get the default background
func (b *Buffer) Flush(screen tcell.Screen) {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			idx := y*b.width + x
			c := b.cells[idx]
			bg := c.Bg
			if !b.touched[idx] {
				bg = b.bg
			}
			style := tcell.StyleDefault.Foreground(toTcell(c.Fg)).Background(toTcell(bg)).Bold(c.Bold)
			r := c.Rune
			if r == 0 {
				r = ' '
			}
			screen.SetContent(x, y, r, nil, style)
		}
	}
}
