package skitter

// affine is a 2D affine map stored column-major as [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type affine [6]float64

var identityAffine = affine{1, 0, 0, 1, 0, 0}

// bodyFrame maps body-local (forward, side) offsets into world space. The
// local X axis is the heading and local Y is the heading's normal, so a
// positive side offset lands on the right-hand side (+1).
func bodyFrame(origin, heading Vec2) affine {
	return affine{heading.X, heading.Y, -heading.Y, heading.X, origin.X, origin.Y}
}

// then returns m applied after inner: points go through inner first.
func (m affine) then(inner affine) affine {
	return affine{
		m[0]*inner[0] + m[2]*inner[1],
		m[1]*inner[0] + m[3]*inner[1],
		m[0]*inner[2] + m[2]*inner[3],
		m[1]*inner[2] + m[3]*inner[3],
		m[0]*inner[4] + m[2]*inner[5] + m[4],
		m[1]*inner[4] + m[3]*inner[5] + m[5],
	}
}

// shiftLocal offsets the origin along m's own axes.
func (m affine) shiftLocal(forward, side float64) affine {
	return m.then(affine{1, 0, 0, 1, forward, side})
}

// shiftWorld offsets the result in world space.
func (m affine) shiftWorld(dx, dy float64) affine {
	m[4] += dx
	m[5] += dy
	return m
}

// inverse returns the inverse map, or identity when m is singular.
func (m affine) inverse() affine {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityAffine
	}
	a, b := m[3]/det, -m[1]/det
	c, d := -m[2]/det, m[0]/det
	return affine{a, b, c, d, -(a*m[4] + c*m[5]), -(b*m[4] + d*m[5])}
}

// apply maps a local point.
func (m affine) apply(x, y float64) Vec2 {
	return Vec2{m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]}
}
