package skitter

// LegSnapshot is a renderer's copy of one leg.
type LegSnapshot struct {
	Side     Side
	Anchor   Vec2
	Foot     Vec2
	Target   Vec2
	Tip      Vec2      // end of the solved chain
	Joints   []Vec2    // distal first; the last joint sits on Anchor
	Angles   []float64 // per bone, from the solve
	Stepping bool
	Progress float64 // step progress, 0 while planted
}

// Snapshot is a deep copy of the spider's pose for one frame. Renderers draw
// from it without touching the simulation.
type Snapshot struct {
	Seconds       float64
	Width, Height float64

	Thorax  Vec2
	Abdomen Vec2
	Head    Vec2
	Heading Vec2

	Legs []LegSnapshot
}

// Snapshot copies the current pose.
func (s *Spider) Snapshot() Snapshot {
	snap := Snapshot{
		Seconds: s.seconds,
		Width:   s.width,
		Height:  s.height,
		Thorax:  s.body.Thorax,
		Abdomen: s.body.Abdomen,
		Head:    s.body.Head,
		Heading: s.body.Heading,
		Legs:    make([]LegSnapshot, len(s.legs)),
	}
	for i, l := range s.legs {
		snap.Legs[i] = l.snapshot()
	}
	return snap
}

// Legs copies just the legs, in simulation order.
func (s *Spider) Legs() []LegSnapshot {
	legs := make([]LegSnapshot, len(s.legs))
	for i, l := range s.legs {
		legs[i] = l.snapshot()
	}
	return legs
}

func (l *Leg) snapshot() LegSnapshot {
	ls := LegSnapshot{
		Side:   l.Side,
		Anchor: l.Anchor,
		Foot:   l.Foot,
		Target: l.Target,
		Tip:    l.Tip,
		Joints: make([]Vec2, len(l.Bones)),
		Angles: make([]float64, len(l.Bones)),
	}
	for j, b := range l.Bones {
		ls.Joints[j] = b.Joint()
		ls.Angles[j] = b.Angle
	}
	if st, ok := l.State.(*Stepping); ok {
		ls.Stepping = true
		ls.Progress = st.Progress
	}
	return ls
}

// Segments returns the drawable polyline of the leg from foot to anchor:
// the foot followed by every joint.
func (l LegSnapshot) Segments() []Vec2 {
	pts := make([]Vec2, 0, len(l.Joints)+1)
	pts = append(pts, l.Foot)
	return append(pts, l.Joints...)
}
