package skitter

import "math"

// Bone is one rigid segment of a limb. (X, Y) is the segment's inner joint,
// the end nearer the anchor. Length never changes after construction; Angle
// is rewritten by every solve and exists only for renderers.
type Bone struct {
	X, Y   float64
	Length float64
	Angle  float64
}

// Joint returns the bone's inner joint position.
func (b Bone) Joint() Vec2 { return Vec2{b.X, b.Y} }

// NewBones creates one bone per length with every joint placed at at. The
// first length is the distal segment (touching the foot), the last is the
// proximal segment (pinned to the anchor).
func NewBones(lengths []float64, at Vec2) []Bone {
	bones := make([]Bone, len(lengths))
	for i, l := range lengths {
		bones[i] = Bone{X: at.X, Y: at.Y, Length: l}
	}
	return bones
}

// SolveChain bends bones toward tip while pinning the last joint to anchor.
//
// The first pass walks distal to proximal: each joint is pulled onto the
// line from the running point to its previous position, exactly Length away.
// The second pass translates the whole chain so the proximal joint sits on
// anchor. The tip constraint is not re-satisfied after the shift; chains are
// re-solved every frame, so the error never accumulates.
//
// SolveChain returns the shifted tip, the point the distal bone actually
// reaches. It is a no-op for an empty chain and returns tip unchanged.
func SolveChain(bones []Bone, tip, anchor Vec2) Vec2 {
	if len(bones) == 0 {
		return tip
	}
	tx, ty := tip.X, tip.Y
	for i := range bones {
		b := &bones[i]
		angle := math.Atan2(ty-b.Y, tx-b.X)
		b.Angle = angle
		sin, cos := math.Sincos(angle)
		b.X = tx - cos*b.Length
		b.Y = ty - sin*b.Length
		tx, ty = b.X, b.Y
	}

	base := bones[len(bones)-1]
	ox := anchor.X - base.X
	oy := anchor.Y - base.Y
	for i := range bones {
		bones[i].X += ox
		bones[i].Y += oy
	}
	return Vec2{tip.X + ox, tip.Y + oy}
}

// ChainLength returns the sum of the segment lengths.
func ChainLength(lengths []float64) float64 {
	var total float64
	for _, l := range lengths {
		total += l
	}
	return total
}
