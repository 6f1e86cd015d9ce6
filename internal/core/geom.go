// Package core provides fundamental types and utilities for the arcade platform.
// It contains no terminal dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import (
	"cmp"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Box is an axis-aligned bounding box in world units (pixels).
// X and Y name the top-left corner; Y grows downward.
type Box struct {
	X, Y float64
	W, H float64
}

// NewBox creates a box with the given position and dimensions.
func NewBox(x, y, w, h float64) Box {
	return Box{X: x, Y: y, W: w, H: h}
}

// BoxAt creates a box whose top-left corner is at pos.
func BoxAt(pos, size r2.Vec) Box {
	return Box{X: pos.X, Y: pos.Y, W: size.X, H: size.Y}
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 {
	return b.Y + b.H
}

// Min returns the top-left corner.
func (b Box) Min() r2.Vec {
	return r2.Vec{X: b.X, Y: b.Y}
}

// Size returns the width and height as a vector.
func (b Box) Size() r2.Vec {
	return r2.Vec{X: b.W, Y: b.H}
}

// Center returns the center point of the box.
func (b Box) Center() r2.Vec {
	return r2.Vec{X: b.X + b.W/2, Y: b.Y + b.H/2}
}

// Intersects reports whether two boxes overlap with positive area.
// Boxes that only share an edge do not intersect, which keeps a body resting
// on a platform from registering as penetrating it.
func (b Box) Intersects(other Box) bool {
	if b.X >= other.Right() || other.X >= b.Right() {
		return false
	}
	if b.Y >= other.Bottom() || other.Y >= b.Bottom() {
		return false
	}
	return true
}

// Contains reports whether point p lies inside the box (right/bottom exclusive).
func (b Box) Contains(p r2.Vec) bool {
	return p.X >= b.X && p.X < b.Right() && p.Y >= b.Y && p.Y < b.Bottom()
}

// Translate returns the box moved by d.
func (b Box) Translate(d r2.Vec) Box {
	b.X += d.X
	b.Y += d.Y
	return b
}

// Inflate grows the box by d on every side. Negative d shrinks it.
func (b Box) Inflate(d float64) Box {
	return Box{X: b.X - d, Y: b.Y - d, W: b.W + 2*d, H: b.H + 2*d}
}

// ClampInto returns the box moved so it lies inside bounds.
// A box larger than bounds is pinned to the top-left corner.
func (b Box) ClampInto(bounds Box) Box {
	b.X = Clamp(b.X, bounds.X, math.Max(bounds.X, bounds.Right()-b.W))
	b.Y = Clamp(b.Y, bounds.Y, math.Max(bounds.Y, bounds.Bottom()-b.H))
	return b
}

// Clamp restricts a value to be within [lo, hi].
func Clamp[T cmp.Ordered](val, lo, hi T) T {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// Approach moves current toward target by at most step.
func Approach(current, target, step float64) float64 {
	if current < target {
		return math.Min(current+step, target)
	}
	return math.Max(current-step, target)
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Sign returns -1, 0 or 1 matching the sign of x.
func Sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
