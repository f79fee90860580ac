// Package core provides fundamental types and utilities shared by the game
// and the platform layer. It has no UI dependencies so game logic stays pure
// and testable.
package core

import "math"

// Rect is an axis-aligned box in screen cells.
type Rect struct {
	X, Y int
	W, H int
}

// Right returns the x-coordinate just past the right edge.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the y-coordinate just past the bottom edge.
func (r Rect) Bottom() int { return r.Y + r.H }

// Vec is a point or direction in world units.
type Vec struct {
	X, Y float64
}

// FromAngle returns the unit vector for an angle in degrees measured from
// straight up, positive to the right. Y grows downward.
func FromAngle(deg float64) Vec {
	rad := deg * math.Pi / 180
	return Vec{X: math.Sin(rad), Y: -math.Cos(rad)}
}

// Add returns v+o.
func (v Vec) Add(o Vec) Vec { return Vec{X: v.X + o.X, Y: v.Y + o.Y} }

// Scale returns v*k.
func (v Vec) Scale(k float64) Vec { return Vec{X: v.X * k, Y: v.Y * k} }

// Dist2 returns the squared distance between v and o.
func (v Vec) Dist2(o Vec) float64 {
	dx, dy := v.X-o.X, v.Y-o.Y
	return dx*dx + dy*dy
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// ClampF restricts a float64 value to be within [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
