package ebitenview

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/skitter"
)

// tint is a straight-alpha color with components in [0, 1].
// Premultiplication happens when vertices are written.
type tint struct {
	R, G, B, A float32
}

func (c tint) vertex(x, y float64) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   0.5,
		SrcY:   0.5,
		ColorR: c.R * c.A,
		ColorG: c.G * c.A,
		ColorB: c.B * c.A,
		ColorA: c.A,
	}
}

// limbStrip is a tapered triangle strip along a leg polyline. Buffers grow
// to their high-water mark and are reused every frame.
type limbStrip struct {
	verts  []ebiten.Vertex
	inds   []uint16
	cumLen []float64
}

// setPoints rebuilds the strip. points run from the foot to the shoulder;
// the width ramps from tipWidth at the first point to rootWidth at the last.
// For N points: 2N vertices, 6(N-1) indices.
func (s *limbStrip) setPoints(points []skitter.Vec2, tipWidth, rootWidth float64, c tint) {
	if len(points) < 2 {
		s.verts = s.verts[:0]
		s.inds = s.inds[:0]
		return
	}

	n := len(points)
	numVerts := n * 2
	numInds := (n - 1) * 6
	if cap(s.verts) < numVerts {
		s.verts = make([]ebiten.Vertex, numVerts)
	}
	s.verts = s.verts[:numVerts]
	if cap(s.inds) < numInds {
		s.inds = make([]uint16, numInds)
	}
	s.inds = s.inds[:numInds]

	if cap(s.cumLen) < n {
		s.cumLen = make([]float64, n)
	}
	s.cumLen = s.cumLen[:n]
	s.cumLen[0] = 0
	for i := 1; i < n; i++ {
		s.cumLen[i] = s.cumLen[i-1] + points[i].Dist(points[i-1])
	}
	total := s.cumLen[n-1]

	for i := 0; i < n; i++ {
		var nx, ny float64
		switch i {
		case 0:
			nx, ny = perpendicular(points[0], points[1])
		case n - 1:
			nx, ny = perpendicular(points[n-2], points[n-1])
		default:
			// Average of adjacent segment normals.
			nx0, ny0 := perpendicular(points[i-1], points[i])
			nx1, ny1 := perpendicular(points[i], points[i+1])
			nx, ny = nx0+nx1, ny0+ny1
			if ln := math.Hypot(nx, ny); ln > 1e-10 {
				nx /= ln
				ny /= ln
			}
		}

		t := 0.0
		if total > 0 {
			t = s.cumLen[i] / total
		}
		half := skitter.Lerp(tipWidth, rootWidth, t) / 2

		p := points[i]
		s.verts[i*2] = c.vertex(p.X+nx*half, p.Y+ny*half)
		s.verts[i*2+1] = c.vertex(p.X-nx*half, p.Y-ny*half)
	}

	// Two triangles per segment.
	for i := 0; i < n-1; i++ {
		ii := i * 6
		v := uint16(i * 2)
		s.inds[ii+0] = v
		s.inds[ii+1] = v + 1
		s.inds[ii+2] = v + 2
		s.inds[ii+3] = v + 1
		s.inds[ii+4] = v + 3
		s.inds[ii+5] = v + 2
	}
}

// perpendicular returns the unit left-perpendicular of the segment from a to b.
func perpendicular(a, b skitter.Vec2) (float64, float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	ln := math.Hypot(dx, dy)
	if ln < 1e-10 {
		return 0, -1
	}
	return -dy / ln, dx / ln
}

// ellipseFan appends a fan-triangulated ellipse centered at c with radii
// (rx, ry), its rx axis along dir. Vertex 0 is the hub.
func ellipseFan(verts []ebiten.Vertex, inds []uint16, c, dir skitter.Vec2, rx, ry float64, segments int, col tint) ([]ebiten.Vertex, []uint16) {
	base := uint16(len(verts))
	verts = append(verts, col.vertex(c.X, c.Y))
	normal := dir.Normal()
	for i := 0; i < segments; i++ {
		a := float64(i) / float64(segments) * 2 * math.Pi
		p := c.Add(dir.Scale(math.Cos(a) * rx)).Add(normal.Scale(math.Sin(a) * ry))
		verts = append(verts, col.vertex(p.X, p.Y))
	}
	for i := 0; i < segments; i++ {
		next := (i+1)%segments + 1
		inds = append(inds, base, base+uint16(i+1), base+uint16(next))
	}
	return verts, inds
}
