package skitter

import "math"

// Side mirrors a leg across the body's forward axis.
type Side int8

const (
	SideLeft  Side = -1 // negative normal
	SideRight Side = 1  // positive normal
)

// String returns "left" or "right".
func (s Side) String() string {
	if s < 0 {
		return "left"
	}
	return "right"
}

// index maps a side onto a sideTally slot.
func (s Side) index() int {
	if s < 0 {
		return 0
	}
	return 1
}

// LegBlueprint is the static description of one leg pair. Offsets are in
// body-local pixels: forward along the heading, side along the normal
// (mirrored per leg).
type LegBlueprint struct {
	AnchorForward, AnchorSide float64 // shoulder offset from thorax
	RestForward, RestSide     float64 // foot offset when stationary
	Phase                     float64 // gait-cycle offset, radians
	StepForward, StepSide     float64 // oscillation amplitude
	Lift                      float64 // swing arc height

	// SwingForward and SwingSide scale the oscillation; ReachScale scales
	// the maximum reach. Zero means 1.
	SwingForward, SwingSide float64
	ReachScale              float64
}

func (b LegBlueprint) withDefaults() LegBlueprint {
	if b.SwingForward == 0 {
		b.SwingForward = 1
	}
	if b.SwingSide == 0 {
		b.SwingSide = 1
	}
	if b.ReachScale == 0 {
		b.ReachScale = 1
	}
	return b
}

// LegState is either Planted or *Stepping.
type LegState interface {
	legState()
}

// Planted is the state of a foot on the ground with no step in flight.
type Planted struct{}

// Stepping is an in-flight swing from Origin to Target. Target is re-aimed
// every frame while the body moves.
type Stepping struct {
	Progress float64 // [0, 1]
	Duration float64 // seconds
	Origin   Vec2
	Target   Vec2
	Lift     float64 // arc height in pixels
}

func (Planted) legState()   {}
func (*Stepping) legState() {}

// Leg is one limb: its blueprint, reach annulus, bone chain, and gait state.
// Fields are owned by the Spider; read them through Spider.Snapshot.
type Leg struct {
	Index     int
	Side      Side
	Phase     float64
	Blueprint LegBlueprint

	Bones        []Bone
	MinReach     float64
	MaxReach     float64
	RestDistance float64

	Anchor Vec2
	Foot   Vec2
	Target Vec2
	Tip    Vec2 // where the solved chain actually ends

	State        LegState
	StepDuration float64
	LastStepTime float64
}

// Stepping reports whether a step is in flight.
func (l *Leg) Stepping() bool {
	_, ok := l.State.(*Stepping)
	return ok
}

// sideTally counts stepping legs per side for the frame in progress.
// Index 0 is SideLeft, 1 is SideRight.
type sideTally [2]int

func (t *sideTally) count(s Side) int { return t[s.index()] }
func (t *sideTally) inc(s Side)       { t[s.index()]++ }
func (t *sideTally) dec(s Side) {
	if t[s.index()] > 0 {
		t[s.index()]--
	}
}

// tallySteps builds the tally from the previous frame's leg states.
func tallySteps(legs []*Leg) sideTally {
	var t sideTally
	for _, l := range legs {
		if l.Stepping() {
			t.inc(l.Side)
		}
	}
	return t
}

// StepEvent describes a step starting or landing.
type StepEvent struct {
	Leg    int
	Side   Side
	Origin Vec2
	Target Vec2
	Time   float64 // seconds
}

// StepObserver receives step events as they happen inside Spider.Update.
type StepObserver interface {
	StepStarted(StepEvent)
	StepLanded(StepEvent)
}

// gaitFrame is the per-frame input shared by every leg.
type gaitFrame struct {
	seconds float64
	delta   float64
	speed   float64 // thorax displacement this frame, pixels

	heading      Vec2
	anchorFrame  affine // body frame plus shoulder sway
	desiredFrame affine // body frame plus vertical bob

	globalPhase     float64
	velocityForward float64
	sway            float64

	minInterval float64
	maxStepping int

	observer StepObserver
	stats    *FrameStats
}

const (
	anchorSwayFactor  = 0.35
	lateralSwayFactor = 0.12
	bobFactor         = 0.1
	phaseGate         = -0.2
	minStepDuration   = 0.18
)

// update advances the leg by one frame. tally is shared by every leg in the
// frame and is read before and written after this leg's decision.
func (l *Leg) update(g *gaitFrame, tally *sideTally) {
	bp := &l.Blueprint
	side := float64(l.Side)

	l.Anchor = g.anchorFrame.apply(bp.AnchorForward, bp.AnchorSide*side)

	phase := g.globalPhase + l.Phase
	forwardOsc := (math.Sin(phase)*bp.StepForward*0.35 + g.velocityForward*18) * bp.SwingForward
	lateralOsc := (math.Cos(phase)*bp.StepSide*0.3 + g.sway*lateralSwayFactor) * bp.SwingSide
	desired := g.desiredFrame.apply(bp.RestForward+forwardOsc, (bp.RestSide+lateralOsc)*side)
	projected := ProjectToReach(l.Anchor, desired, l.MinReach, l.MaxReach)

	switch st := l.State.(type) {
	case *Stepping:
		l.Target = projected
		st.Target = projected
	default:
		if l.shouldStep(g, phase, projected, tally) {
			l.startStep(g, projected, tally)
		}
	}

	if st, ok := l.State.(*Stepping); ok {
		l.swing(g, st, tally)
	} else {
		settle := math.Min(0.22+g.speed*0.32, 0.65)
		l.Foot = LerpVec(l.Foot, l.Target, settle)
	}

	l.Foot = ProjectToReach(l.Anchor, l.Foot, l.MinReach, l.MaxReach)
	l.Tip = SolveChain(l.Bones, l.Foot, l.Anchor)
}

// shouldStep applies the trigger test to a planted leg.
func (l *Leg) shouldStep(g *gaitFrame, phase float64, projected Vec2, tally *sideTally) bool {
	if g.seconds-l.LastStepTime <= g.minInterval {
		return false
	}
	if math.Sin(phase) <= phaseGate {
		return false
	}
	if tally.count(l.Side) >= g.maxStepping {
		return false
	}
	d := projected.Sub(l.Target)
	triggerDistance := math.Max(l.MaxReach*0.45, 14+g.speed*60)
	forwardTrigger := math.Max(l.MaxReach*0.3, 8+g.speed*36)
	return d.Len() > triggerDistance || d.Dot(g.heading) > forwardTrigger
}

func (l *Leg) startStep(g *gaitFrame, projected Vec2, tally *sideTally) {
	l.Target = projected
	l.State = &Stepping{
		Duration: math.Max(minStepDuration, l.StepDuration-g.speed*0.08),
		Origin:   l.Foot,
		Target:   projected,
		Lift:     l.Blueprint.Lift*0.45 + 12 + g.speed*38,
	}
	tally.inc(l.Side)
	if g.stats != nil {
		g.stats.StepsStarted++
	}
	if g.observer != nil {
		g.observer.StepStarted(StepEvent{Leg: l.Index, Side: l.Side, Origin: l.Foot, Target: projected, Time: g.seconds})
	}
}

// swing moves the foot along the step arc and lands it when progress
// reaches 1.
func (l *Leg) swing(g *gaitFrame, st *Stepping, tally *sideTally) {
	st.Progress = math.Min(1, st.Progress+g.delta/st.Duration)
	eased := EaseInOutQuad(st.Progress)
	arc := math.Sin(st.Progress*math.Pi) * st.Lift
	foot := LerpVec(st.Origin, st.Target, eased)
	foot.Y -= arc
	l.Foot = ProjectToReach(l.Anchor, foot, l.MinReach, l.MaxReach)

	if st.Progress < 1 {
		return
	}
	l.Foot = st.Target
	l.Target = st.Target
	l.State = Planted{}
	l.LastStepTime = g.seconds
	tally.dec(l.Side)
	if g.stats != nil {
		g.stats.StepsLanded++
	}
	if g.observer != nil {
		g.observer.StepLanded(StepEvent{Leg: l.Index, Side: l.Side, Origin: st.Origin, Target: st.Target, Time: g.seconds})
	}
}

// newLeg creates a leg from its blueprint. place must be called before the
// leg is simulated.
func newLeg(index int, bp LegBlueprint, side Side, lengths []float64, cfg *Config, at Vec2) *Leg {
	phase := bp.Phase
	if side > 0 {
		phase += math.Pi
	}
	total := ChainLength(lengths)
	return &Leg{
		Index:        index,
		Side:         side,
		Phase:        phase,
		Blueprint:    bp,
		Bones:        NewBones(lengths, at),
		MinReach:     total * cfg.MinReachRatio,
		MaxReach:     total * cfg.MaxReachRatio,
		Anchor:       at,
		Foot:         at,
		Target:       at,
		State:        Planted{},
		StepDuration: cfg.StepDuration,
		LastStepTime: -math.Abs(bp.Phase) * 0.4,
	}
}

// place puts the leg at its rest pose in frame and fits the reach annulus
// to the rest distance so the rest pose is always reachable.
func (l *Leg) place(frame affine, totalLength float64) {
	bp := &l.Blueprint
	side := float64(l.Side)
	l.Anchor = frame.apply(bp.AnchorForward, bp.AnchorSide*side)
	l.Foot = frame.apply(bp.RestForward, bp.RestSide*side)
	l.Target = l.Foot
	l.State = Planted{}
	l.LastStepTime = -math.Abs(l.Phase) * 0.4

	rest := l.Foot.Dist(l.Anchor)
	if rest == 0 {
		rest = 1
	}
	l.RestDistance = rest
	l.MinReach = math.Min(l.MinReach, rest*0.7)
	maxCap := totalLength * 0.95 * bp.ReachScale
	l.MaxReach = math.Min(math.Max(l.MaxReach, rest*1.02*bp.ReachScale), maxCap)
	l.Tip = SolveChain(l.Bones, l.Foot, l.Anchor)
}
