package skitter

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const frameMS = 16.0

func newTestSpider(t *testing.T, w, h float64) *Spider {
	t.Helper()
	s, err := New(DefaultConfig(), w, h)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

// assertReach checks the reach annulus invariant for every leg.
func assertReach(t *testing.T, s *Spider, when string) {
	t.Helper()
	const tol = 1e-6
	for i, l := range s.legs {
		d := l.Foot.Dist(l.Anchor)
		if math.IsNaN(d) {
			t.Fatalf("%s: leg %d foot is NaN", when, i)
		}
		if d < l.MinReach-tol || d > l.MaxReach+tol {
			t.Fatalf("%s: leg %d foot distance %v outside [%v, %v]", when, i, d, l.MinReach, l.MaxReach)
		}
	}
}

// circlePointer moves an active pointer around center.
func circlePointer(center Vec2, radius, seconds float64) Pointer {
	return Pointer{
		X:      center.X + math.Cos(seconds*0.8)*radius,
		Y:      center.Y + math.Sin(seconds*0.8)*radius,
		Active: true,
	}
}

func TestNewBuildsEightMirroredLegs(t *testing.T) {
	s := newTestSpider(t, 800, 600)
	if len(s.legs) != 8 {
		t.Fatalf("legs = %d, want 8", len(s.legs))
	}
	for i, l := range s.legs {
		wantSide := SideLeft
		if i%2 == 1 {
			wantSide = SideRight
		}
		if l.Side != wantSide {
			t.Errorf("leg %d side = %v, want %v", i, l.Side, wantSide)
		}
		if l.Index != i {
			t.Errorf("leg %d index = %d", i, l.Index)
		}
		if l.Stepping() {
			t.Errorf("leg %d starts stepping", i)
		}
		if len(l.Bones) != 3 {
			t.Errorf("leg %d has %d bones", i, len(l.Bones))
		}
	}
	// Right legs run half a cycle behind their left twin.
	assertNear(t, "phase offset", s.legs[3].Phase-s.legs[2].Phase, math.Pi)
	assertReach(t, s, "after New")
}

func TestResetFitsReachToRestPose(t *testing.T) {
	s := newTestSpider(t, 800, 600)
	total := ChainLength(s.cfg.SegmentLengths)
	for i, l := range s.legs {
		if l.MinReach > l.RestDistance*0.7+epsilon {
			t.Errorf("leg %d min reach %v above 70%% of rest %v", i, l.MinReach, l.RestDistance)
		}
		limit := total * 0.95 * l.Blueprint.ReachScale
		if l.MaxReach > limit+epsilon {
			t.Errorf("leg %d max reach %v above cap %v", i, l.MaxReach, limit)
		}
		if l.RestDistance > l.MaxReach+epsilon {
			t.Errorf("leg %d rest %v unreachable (max %v)", i, l.RestDistance, l.MaxReach)
		}
	}
}

func TestResizeResetsLegsAroundNewThorax(t *testing.T) {
	s := newTestSpider(t, 1000, 800)
	clock := &ManualClock{}
	for i := 0; i < 60; i++ {
		clock.Advance(frameMS)
		s.Update(clock.Millis(), circlePointer(Vec2{500, 400}, 200, clock.Millis()/1000), 220)
	}

	s.Reset(500, 400)
	b := s.Body()
	assertVecNear(t, "thorax", b.Thorax, Vec2{250, 224}, epsilon)
	assertVecNear(t, "heading", b.Heading, Vec2{1, 0}, epsilon)
	for i, l := range s.legs {
		side := float64(l.Side)
		assertVecNear(t, "anchor", l.Anchor, b.ToWorld(l.Blueprint.AnchorForward, l.Blueprint.AnchorSide*side), 1e-9)
		assertVecNear(t, "foot", l.Foot, b.ToWorld(l.Blueprint.RestForward, l.Blueprint.RestSide*side), 1e-9)
		if l.Stepping() {
			t.Errorf("leg %d still stepping after reset", i)
		}
	}
	assertReach(t, s, "after resize")

	clock.Advance(frameMS)
	s.Update(clock.Millis(), Pointer{}, 220)
	assertReach(t, s, "first frame after resize")
}

func TestWalkingKeepsInvariants(t *testing.T) {
	s := newTestSpider(t, 800, 600)
	counter := NewGaitCounter()
	s.SetStepObserver(counter)
	clock := &ManualClock{}

	for frame := 0; frame < 1250; frame++ {
		clock.Advance(frameMS)
		sec := clock.Millis() / 1000
		stats := s.Update(clock.Millis(), circlePointer(Vec2{400, 300}, 250, sec), 220)

		assertReach(t, s, "walking")
		b := s.Body()
		if b.Speed > 0 {
			if d := math.Abs(b.Heading.Len() - 1); d > 1e-9 {
				t.Fatalf("frame %d: heading length off by %v", frame, d)
			}
		}
		var count [2]int
		for _, l := range s.legs {
			if l.Stepping() {
				count[l.Side.index()]++
			}
		}
		if count != stats.Stepping {
			t.Fatalf("frame %d: stats stepping %v, counted %v", frame, stats.Stepping, count)
		}
		if count[0] > 2 || count[1] > 2 {
			t.Fatalf("frame %d: %v legs stepping per side, limit 2", frame, count)
		}
	}
	if counter.Total() == 0 {
		t.Error("no steps taken while chasing a moving pointer")
	}
}

func TestIdleWanderKeepsInvariants(t *testing.T) {
	s := newTestSpider(t, 640, 480)
	clock := &ManualClock{}
	for frame := 0; frame < 600; frame++ {
		clock.Advance(frameMS)
		s.Update(clock.Millis(), Pointer{}, 220)
		assertReach(t, s, "idle")
	}
	if s.Body().Thorax == (Vec2{320, 480 * 0.56}) {
		t.Error("thorax never left its reset position while idle")
	}
}

func TestStationaryBodySettles(t *testing.T) {
	s := newTestSpider(t, 800, 600)
	counter := NewGaitCounter()
	s.SetStepObserver(counter)
	thorax := s.Body().Thorax
	clock := &ManualClock{}
	d := &Driver{
		Spider: s,
		Clock:  clock,
		Input:  StaticInput{P: Pointer{X: thorax.X, Y: thorax.Y, Active: true}},
		Speed:  FixedSpeed(220),
	}
	for clock.Millis() < 5000 {
		clock.Advance(frameMS)
		d.Tick()
		assertReach(t, s, "stationary")
	}

	b := s.Body()
	for i, l := range s.legs {
		if l.Stepping() {
			t.Errorf("leg %d still stepping after 5s at rest", i)
		}
		side := float64(l.Side)
		rest := b.ToWorld(l.Blueprint.RestForward, l.Blueprint.RestSide*side)
		if d := l.Foot.Dist(rest); d > 1 {
			t.Errorf("leg %d foot %v from rest, want within 1", i, d)
		}
		if n := counter.Started[i]; n > 1 {
			t.Errorf("leg %d took %d corrective steps, want at most 1", i, n)
		}
	}
}

func TestZeroDeltaIsIdempotent(t *testing.T) {
	s := newTestSpider(t, 800, 600)
	clock := &ManualClock{}
	for i := 0; i < 90; i++ {
		clock.Advance(frameMS)
		s.Update(clock.Millis(), circlePointer(Vec2{400, 300}, 220, clock.Millis()/1000), 220)
	}
	before := s.Snapshot()
	ptr := circlePointer(Vec2{400, 300}, 220, clock.Millis()/1000)
	for i := 0; i < 10; i++ {
		stats := s.Update(clock.Millis(), ptr, 220)
		if stats.StepsStarted != 0 || stats.StepsLanded != 0 {
			t.Fatalf("zero-delta frame changed gait: %+v", stats)
		}
	}
	if diff := cmp.Diff(before, s.Snapshot()); diff != "" {
		t.Errorf("zero-delta updates changed the pose (-before +after):\n%s", diff)
	}
}

func TestDeltaClamped(t *testing.T) {
	s := newTestSpider(t, 800, 600)
	stats := s.Update(5000, Pointer{}, 220)
	assertNear(t, "first delta", stats.Delta, 0.03)

	stats = s.Update(5016, Pointer{}, 220)
	assertNear(t, "normal delta", stats.Delta, 0.016)

	stats = s.Update(9000, Pointer{}, 220)
	assertNear(t, "spike delta", stats.Delta, 0.03)

	// Time running backwards is treated as no elapsed time.
	before := s.Snapshot()
	s.Update(8000, Pointer{}, 220)
	if diff := cmp.Diff(before, s.Snapshot()); diff != "" {
		t.Errorf("backwards clock changed the pose:\n%s", diff)
	}
}

func TestTravelSpeedCapsThorax(t *testing.T) {
	s := newTestSpider(t, 800, 600)
	s.Update(16, Pointer{}, 100)
	start := s.Body().Thorax

	far := Pointer{X: start.X + 500, Y: start.Y, Active: true}
	s.Update(32, far, 100)
	moved := s.Body().Thorax.Dist(start)
	assertNear(t, "moved", moved, 100*0.016)
}

// lifecycleObserver checks that every landing leaves a planted foot on the
// step target.
type lifecycleObserver struct {
	started []StepEvent
	landed  []StepEvent
}

func (o *lifecycleObserver) StepStarted(e StepEvent) { o.started = append(o.started, e) }
func (o *lifecycleObserver) StepLanded(e StepEvent)  { o.landed = append(o.landed, e) }

func TestStepLifecycleLandsExactly(t *testing.T) {
	s := newTestSpider(t, 800, 600)
	obs := &lifecycleObserver{}
	s.SetStepObserver(obs)
	clock := &ManualClock{}

	for frame := 0; frame < 2000; frame++ {
		clock.Advance(frameMS)
		sec := clock.Millis() / 1000
		obs.landed = obs.landed[:0]
		s.Update(clock.Millis(), circlePointer(Vec2{400, 300}, 250, sec), 220)

		for _, e := range obs.landed {
			l := s.legs[e.Leg]
			if l.Stepping() {
				t.Fatalf("leg %d landed but still stepping", e.Leg)
			}
			assertVecNear(t, "foot on target", l.Foot, e.Target, 1e-9)
			assertVecNear(t, "target", l.Target, e.Target, 1e-9)
			assertNear(t, "last step time", l.LastStepTime, sec)
			assertChain(t, l.Bones, l.Tip, l.Anchor)
		}
		if len(obs.landed) > 0 {
			return
		}
	}
	t.Fatal("no step landed")
}

func TestTallyAndTriggerGates(t *testing.T) {
	s := newTestSpider(t, 800, 600)
	l := s.legs[0]
	g := &gaitFrame{seconds: 10, heading: Vec2{1, 0}, minInterval: 0.16, maxStepping: 2}
	far := l.Target.Add(Vec2{200, 0})
	up := math.Pi / 2

	full := sideTally{2, 0}
	if l.shouldStep(g, up, far, &full) {
		t.Error("left leg stepped with two left legs already stepping")
	}
	free := sideTally{0, 2}
	if !l.shouldStep(g, up, far, &free) {
		t.Error("left leg blocked by right-side tally")
	}
	if l.shouldStep(g, -math.Pi/2, far, &free) {
		t.Error("phase gate did not block the back half of the cycle")
	}
	if l.shouldStep(g, up, l.Target.Add(Vec2{1, 1}), &free) {
		t.Error("stepped without enough displacement")
	}
	l.LastStepTime = 9.9
	if l.shouldStep(g, up, far, &free) {
		t.Error("cooldown did not block the step")
	}
}

func TestTallyStepsCountsPerSide(t *testing.T) {
	s := newTestSpider(t, 800, 600)
	s.legs[0].State = &Stepping{Duration: 0.2}
	s.legs[2].State = &Stepping{Duration: 0.2}
	s.legs[5].State = &Stepping{Duration: 0.2}
	got := tallySteps(s.legs)
	if got != (sideTally{2, 1}) {
		t.Errorf("tally = %v, want [2 1]", got)
	}
	got.dec(SideRight)
	got.dec(SideRight)
	if got.count(SideRight) != 0 {
		t.Errorf("tally went negative: %v", got)
	}
}

func TestSwingArcAndLanding(t *testing.T) {
	s := newTestSpider(t, 800, 600)
	l := s.legs[6]
	origin := l.Foot
	target := origin.Add(Vec2{10, 0})
	st := &Stepping{Duration: 0.2, Origin: origin, Target: target, Lift: 5}
	l.State = st
	tally := sideTally{1, 0}
	g := &gaitFrame{seconds: 3, delta: 0.1}

	l.swing(g, st, &tally)
	assertNear(t, "progress", st.Progress, 0.5)
	mid := LerpVec(origin, target, 0.5)
	assertVecNear(t, "apex", l.Foot, Vec2{mid.X, mid.Y - 5}, 1e-6)
	if !l.Stepping() {
		t.Fatal("landed early")
	}

	g.delta = 0.5
	l.swing(g, st, &tally)
	if l.Stepping() {
		t.Fatal("did not land at progress 1")
	}
	if l.Foot != target || l.Target != target {
		t.Errorf("landing foot %+v target %+v, want %+v", l.Foot, l.Target, target)
	}
	if tally.count(SideLeft) != 0 {
		t.Errorf("tally not released: %v", tally)
	}
	assertNear(t, "last step", l.LastStepTime, 3)
}

func TestSnapshotIsACopy(t *testing.T) {
	s := newTestSpider(t, 800, 600)
	snap := s.Snapshot()
	snap.Legs[0].Joints[0] = Vec2{-1, -1}
	if s.legs[0].Bones[0].Joint() == (Vec2{-1, -1}) {
		t.Error("snapshot aliases bone storage")
	}
	for i, ls := range snap.Legs {
		if got := ls.Joints[len(ls.Joints)-1]; got.Dist(ls.Anchor) > 1e-9 {
			t.Errorf("leg %d proximal joint %+v not on anchor %+v", i, got, ls.Anchor)
		}
		if pts := ls.Segments(); len(pts) != 4 || pts[0] != ls.Foot {
			t.Errorf("leg %d segments = %v", i, pts)
		}
	}
}

func TestLegsMatchSnapshot(t *testing.T) {
	s := newTestSpider(t, 800, 600)
	for i := 1; i <= 40; i++ {
		s.Update(float64(i)*frameMS, Pointer{X: 600, Y: 200, Active: true}, 220)
	}
	legs := s.Legs()
	if diff := cmp.Diff(s.Snapshot().Legs, legs); diff != "" {
		t.Errorf("Legs differs from Snapshot().Legs (-snapshot +legs):\n%s", diff)
	}
	legs[2].Foot = Vec2{-5, -5}
	legs[2].Joints[1] = Vec2{-5, -5}
	if s.legs[2].Foot == (Vec2{-5, -5}) || s.legs[2].Bones[1].Joint() == (Vec2{-5, -5}) {
		t.Error("Legs aliases leg storage")
	}
}

func TestConfigAccessorCopies(t *testing.T) {
	s := newTestSpider(t, 800, 600)
	c := s.Config()
	c.Legs[0].RestSide = 0
	if s.cfg.Legs[0].RestSide == 0 {
		t.Error("Config() aliases the spider's blueprints")
	}
}
