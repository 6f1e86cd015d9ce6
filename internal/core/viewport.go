package core

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Viewport projects world coordinates onto a grid of screen cells.
// One cell covers CellW x CellH world units; the camera origin is the world
// point drawn at the top-left cell of the view area.
type Viewport struct {
	Origin       r2.Vec // world position of the view's top-left corner
	CellW, CellH float64
	Area         Rect // screen cells available for the world
}

// NewViewport creates a viewport that shows a world of the given size inside area.
// The scale is chosen so the world height fits the area; wide worlds scroll.
func NewViewport(world Box, area Rect) Viewport {
	cellH := math.Max(1, world.H/float64(max(1, area.H)))
	// Terminal cells are roughly twice as tall as they are wide.
	cellW := cellH / 2
	return Viewport{CellW: cellW, CellH: cellH, Area: area, Origin: world.Min()}
}

// Follow centers the camera horizontally on focus, keeping the view inside world.
func (v *Viewport) Follow(focus r2.Vec, world Box) {
	viewW := float64(v.Area.W) * v.CellW
	viewH := float64(v.Area.H) * v.CellH
	v.Origin.X = Clamp(focus.X-viewW/2, world.X, math.Max(world.X, world.Right()-viewW))
	v.Origin.Y = Clamp(focus.Y-viewH/2, world.Y, math.Max(world.Y, world.Bottom()-viewH))
}

// Point converts a world point to a screen cell.
func (v Viewport) Point(p r2.Vec) (int, int) {
	x := int(math.Floor((p.X-v.Origin.X)/v.CellW)) + v.Area.X
	y := int(math.Floor((p.Y-v.Origin.Y)/v.CellH)) + v.Area.Y
	return x, y
}

// Project converts a world box to the cell rectangle covering it.
// Every non-empty box covers at least one cell so thin objects stay visible.
func (v Viewport) Project(b Box) Rect {
	x0, y0 := v.Point(b.Min())
	x1 := int(math.Ceil((b.Right()-v.Origin.X)/v.CellW)) + v.Area.X
	y1 := int(math.Ceil((b.Bottom()-v.Origin.Y)/v.CellH)) + v.Area.Y
	return Rect{X: x0, Y: y0, W: max(1, x1-x0), H: max(1, y1-y0)}
}

// Clip intersects a cell rectangle with the view area.
func (v Viewport) Clip(r Rect) (Rect, bool) {
	x0 := max(r.X, v.Area.X)
	y0 := max(r.Y, v.Area.Y)
	x1 := min(r.Right(), v.Area.Right())
	y1 := min(r.Bottom(), v.Area.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}, false
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}, true
}
