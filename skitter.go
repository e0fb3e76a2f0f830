package skitter

import "math"

// Vec2 is a 2D vector used for positions, offsets, and directions in screen
// space. The origin is at the top-left with Y increasing downward.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Dist returns the Euclidean distance between v and o.
func (v Vec2) Dist(o Vec2) float64 { return math.Hypot(o.X-v.X, o.Y-v.Y) }

// Normal returns the left-hand perpendicular (-Y, X). For a heading this is
// the body's lateral axis.
func (v Vec2) Normal() Vec2 { return Vec2{-v.Y, v.X} }

// Normalize returns v scaled to unit length. Vectors shorter than
// zeroLength return fallback unchanged.
func (v Vec2) Normalize(fallback Vec2) Vec2 {
	l := v.Len()
	if l < zeroLength {
		return fallback
	}
	return Vec2{v.X / l, v.Y / l}
}

// zeroLength is the distance below which a direction is treated as undefined.
const zeroLength = 1e-4

// Lerp linearly interpolates from a to b. t is not clamped; callers may
// overshoot on purpose.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpVec interpolates both components of a toward b.
func LerpVec(a, b Vec2, t float64) Vec2 {
	return Vec2{Lerp(a.X, b.X, t), Lerp(a.Y, b.Y, t)}
}
