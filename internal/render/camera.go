// Package render draws the world into a terminal cell buffer.
package render

import "github.com/vovakirdan/tui-adventure/internal/core"

// Camera maps world pixels to screen cells. One cell covers CellW x CellH
// world pixels.
type Camera struct {
	CellW, CellH int
	ViewW, ViewH int // viewport size in cells

	worldW, worldH int
	origin         core.Point // world pixel at the top-left cell
}

// NewCamera creates a camera for a viewport of the given size in cells.
func NewCamera(cellW, cellH, viewW, viewH int) *Camera {
	return &Camera{
		CellW: max(cellW, 1),
		CellH: max(cellH, 1),
		ViewW: viewW,
		ViewH: viewH,
	}
}

// SetWorldBounds sets the world size in pixels the camera stays within.
func (c *Camera) SetWorldBounds(w, h int) {
	c.worldW, c.worldH = w, h
}

// Resize changes the viewport size in cells.
func (c *Camera) Resize(viewW, viewH int) {
	c.ViewW, c.ViewH = viewW, viewH
}

// Origin returns the world pixel shown in the top-left cell.
func (c *Camera) Origin() core.Point {
	return c.origin
}

// LookAt centers the view on p without showing space outside the world. A
// world smaller than the view is centered instead.
func (c *Camera) LookAt(p core.Point) {
	c.origin = core.Pt(
		axis(p.X, c.ViewW*c.CellW, c.worldW),
		axis(p.Y, c.ViewH*c.CellH, c.worldH),
	)
}

func axis(center, view, world int) int {
	o := center - view/2
	if world <= 0 {
		return o
	}
	if world <= view {
		return -(view - world) / 2
	}
	return core.Clamp(o, 0, world-view)
}

// WorldToScreen returns the cell containing world pixel p.
func (c *Camera) WorldToScreen(p core.Point) core.Point {
	return core.Pt(floorDiv(p.X-c.origin.X, c.CellW), floorDiv(p.Y-c.origin.Y, c.CellH))
}

// ScreenToWorld returns the world pixel at the center of cell p.
func (c *Camera) ScreenToWorld(p core.Point) core.Point {
	return core.Pt(
		c.origin.X+p.X*c.CellW+c.CellW/2,
		c.origin.Y+p.Y*c.CellH+c.CellH/2,
	)
}

// CellRect returns the cells covered by a world rectangle: every cell whose
// top-left pixel lies inside r.
func (c *Camera) CellRect(r core.Rect) core.Rect {
	x0 := ceilDiv(r.X-c.origin.X, c.CellW)
	y0 := ceilDiv(r.Y-c.origin.Y, c.CellH)
	x1 := ceilDiv(r.Right()-c.origin.X, c.CellW)
	y1 := ceilDiv(r.Bottom()-c.origin.Y, c.CellH)
	return core.NewRect(x0, y0, x1-x0, y1-y0)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}
