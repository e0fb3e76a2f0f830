package skitter

import "math"

// ProjectToReach returns the point along the ray from anchor toward target
// whose distance from anchor is clamped to [minReach, maxReach]. Targets
// closer than 1e-4 to the anchor have no direction; they resolve to the point
// maxReach along +X.
//
// Every foot write goes through this function, which keeps the foot inside
// its reach annulus.
func ProjectToReach(anchor, target Vec2, minReach, maxReach float64) Vec2 {
	dx := target.X - anchor.X
	dy := target.Y - anchor.Y
	dist := math.Hypot(dx, dy)
	if dist < zeroLength {
		return Vec2{anchor.X + maxReach, anchor.Y}
	}
	if dist > maxReach {
		s := maxReach / dist
		dx *= s
		dy *= s
	} else if dist < minReach {
		s := minReach / dist
		dx *= s
		dy *= s
	}
	return Vec2{anchor.X + dx, anchor.Y + dy}
}
