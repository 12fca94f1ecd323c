// Package core provides fundamental types and utilities for the puzzle engine.
// It contains no external dependencies to keep puzzle logic pure and testable.
package core

import "fmt"

// Vec2 is a 2D vector in world units. Y grows upwards.
type Vec2 struct {
	X, Y float64
}

// V creates a vector.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// IsZero reports whether both components are zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}

// AABB represents an axis-aligned bounding box in world space.
type AABB struct {
	Min, Max Vec2
}

// NewAABB creates a box from its lower-left corner and size.
func NewAABB(x, y, w, h float64) AABB {
	return AABB{Min: Vec2{X: x, Y: y}, Max: Vec2{X: x + w, Y: y + h}}
}

// CenteredAABB creates a box of the given size centred on c.
func CenteredAABB(c Vec2, size Vec2) AABB {
	half := size.Scale(0.5)
	return AABB{Min: c.Sub(half), Max: c.Add(half)}
}

// Intersects returns true if this box overlaps with another.
// Boxes that only share an edge do intersect, matching the engine's
// inclusive world AABB test.
func (b AABB) Intersects(other AABB) bool {
	// No overlap if one box is completely to the left, right, above, or below
	if b.Min.X > other.Max.X || other.Min.X > b.Max.X {
		return false
	}
	if b.Min.Y > other.Max.Y || other.Min.Y > b.Max.Y {
		return false
	}
	return true
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
