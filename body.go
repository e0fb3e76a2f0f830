package skitter

import "math"

// Body is the creature's central pose. Heading is always unit length.
type Body struct {
	Thorax  Vec2
	Abdomen Vec2
	Head    Vec2
	Heading Vec2

	PrevThorax Vec2
	Velocity   Vec2    // thorax displacement over the last frame
	Speed      float64 // length of Velocity
}

const (
	headingFollow  = 0.18
	headingMinMove = 0.001

	abdomenOffset = 74.0
	headOffset    = 58.0
)

// newBody returns the reset pose for a viewport of the given size.
func newBody(width, height float64) Body {
	thorax := Vec2{width * 0.5, height * 0.56}
	return Body{
		Thorax:     thorax,
		Abdomen:    thorax.Add(Vec2{-72, 18}),
		Head:       thorax.Add(Vec2{58, -10}),
		Heading:    Vec2{1, 0},
		PrevThorax: thorax,
	}
}

// idleTarget is the wander point the body drifts along when no pointer is
// active: independent cosine and sine paths with different periods.
func idleTarget(width, height, seconds float64) Vec2 {
	return Vec2{
		X: width*0.5 + math.Cos(seconds*0.25)*80,
		Y: height*0.58 + math.Sin(seconds*0.2)*60,
	}
}

// frame returns the body-local to world matrix.
func (b *Body) frame() affine {
	return bodyFrame(b.Thorax, b.Heading)
}

// ToWorld maps a body-local (forward, side) offset into world space.
func (b *Body) ToWorld(forward, side float64) Vec2 {
	return b.frame().apply(forward, side)
}

// ToLocal maps a world point into body-local (forward, side) coordinates.
func (b *Body) ToLocal(p Vec2) Vec2 {
	return b.frame().inverse().apply(p.X, p.Y)
}

// seek moves the thorax toward target by at most travel pixels.
func (b *Body) seek(target Vec2, travel float64) {
	d := target.Sub(b.Thorax)
	dist := d.Len()
	if dist <= zeroLength {
		return
	}
	step := math.Min(dist, travel)
	b.Thorax = b.Thorax.Add(d.Scale(step / dist))
}

// steer updates velocity and eases the heading toward the direction of
// travel. A body at rest keeps its previous heading.
func (b *Body) steer() {
	b.Velocity = b.Thorax.Sub(b.PrevThorax)
	b.Speed = b.Velocity.Len()
	desired := b.Heading
	if b.Speed > headingMinMove {
		desired = b.Velocity.Scale(1 / b.Speed)
	}
	h := LerpVec(b.Heading, desired, headingFollow)
	b.Heading = h.Normalize(b.Heading)
	b.PrevThorax = b.Thorax
}

// update runs one frame of body kinematics.
func (b *Body) update(target Vec2, travelSpeed, seconds, delta, abdomenMin, abdomenMax float64) {
	b.seek(target, travelSpeed*delta)
	b.steer()

	normal := b.Heading.Normal()

	sway := math.Sin(seconds * 1.3)
	abdomenTarget := b.Thorax.
		Sub(b.Heading.Scale(abdomenOffset)).
		Add(Vec2{normal.X * sway * 10, normal.Y * sway * 12})
	abdomenTarget.Y += math.Cos(seconds*1.8) * 5
	follow := math.Min(0.24+b.Speed*0.9, 0.6)
	b.Abdomen = LerpVec(b.Abdomen, abdomenTarget, follow)
	b.Abdomen = ProjectToReach(b.Thorax, b.Abdomen, abdomenMin, abdomenMax)

	headTarget := b.Thorax.
		Add(b.Heading.Scale(headOffset)).
		Add(normal.Scale(math.Sin(seconds*2.4) * 10))
	b.Head = LerpVec(b.Head, headTarget, 0.22+delta*0.4)
}
