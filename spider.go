package skitter

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
)

// Pointer is the input signal: a screen position and whether it is live.
// An inactive pointer sends the body wandering along its idle path.
type Pointer struct {
	X, Y   float64
	Active bool
}

// Spider owns the whole creature: body, legs, clock bookkeeping, and the
// viewport it lives in. It is created by New, reset on viewport changes, and
// advanced by Update. A Spider is not safe for concurrent use.
type Spider struct {
	cfg         Config
	totalLength float64

	width, height float64

	body Body
	legs []*Leg

	started  bool
	lastTime float64 // ms
	seconds  float64

	observer StepObserver
	debug    bool
	stats    FrameStats
}

// New validates cfg (after filling zero fields from DefaultConfig) and
// returns a spider reset for a viewport of width × height pixels.
func New(cfg Config, width, height float64) (*Spider, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !(width > 0) || !(height > 0) {
		return nil, fmt.Errorf("%w: viewport %vx%v must be positive", ErrInvalidConfig, width, height)
	}
	s := &Spider{
		cfg:         cfg,
		totalLength: ChainLength(cfg.SegmentLengths),
	}
	s.Reset(width, height)
	return s, nil
}

// Reset re-seeds the body for a viewport of width × height and rebuilds
// every leg at its rest pose. Clock bookkeeping is preserved so the next
// Update continues from the same timeline.
func (s *Spider) Reset(width, height float64) {
	s.width, s.height = width, height
	s.body = newBody(width, height)

	s.legs = s.legs[:0]
	frame := s.body.frame()
	center := Vec2{width * 0.5, height * 0.5}
	for _, bp := range s.cfg.Legs {
		for _, side := range [...]Side{SideLeft, SideRight} {
			l := newLeg(len(s.legs), bp, side, s.cfg.SegmentLengths, &s.cfg, center)
			l.place(frame, s.totalLength)
			s.legs = append(s.legs, l)
		}
	}
	s.stats = FrameStats{}

	Logger().Info("spider reset",
		zap.Float64("width", width),
		zap.Float64("height", height),
		zap.Int("legs", len(s.legs)),
	)
}

// Update advances the simulation to timeMS (a monotonic clock reading in
// milliseconds) using the given pointer and thorax travel speed in pixels
// per second. The elapsed time is clamped to Config.MaxDelta. Once started,
// a call with no elapsed time changes nothing.
//
// The body is always updated before the legs, and legs are processed in
// index order against a per-side tally of stepping legs.
func (s *Spider) Update(timeMS float64, ptr Pointer, travelSpeed float64) FrameStats {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	delta := (timeMS - s.lastTime) / 1000
	if math.IsNaN(delta) || delta < 0 {
		delta = 0
	}
	delta = math.Min(delta, s.cfg.MaxDelta)
	if s.started && delta == 0 {
		s.lastTime = timeMS
		return FrameStats{Seconds: s.seconds, Stepping: s.stepping()}
	}
	s.started = true
	s.lastTime = timeMS
	s.seconds = timeMS * 0.001
	seconds := s.seconds

	target := idleTarget(s.width, s.height, seconds)
	if ptr.Active {
		target = Vec2{ptr.X, ptr.Y}
	}
	s.body.update(target, travelSpeed, seconds, delta, s.cfg.AbdomenMinReach, s.cfg.AbdomenMaxReach)

	b := &s.body
	sway := math.Sin(seconds*3.2) * 6
	bob := math.Sin(seconds*2.1) * 10
	frame := b.frame()
	stats := FrameStats{Seconds: seconds, Delta: delta, Speed: b.Speed}
	g := gaitFrame{
		seconds:         seconds,
		delta:           delta,
		speed:           b.Speed,
		heading:         b.Heading,
		anchorFrame:     frame.shiftLocal(0, sway*anchorSwayFactor),
		desiredFrame:    frame.shiftWorld(0, -bob*bobFactor),
		globalPhase:     seconds * (2.4 + b.Speed*8),
		velocityForward: b.Velocity.Dot(b.Heading),
		sway:            sway,
		minInterval:     s.cfg.MinStepInterval,
		maxStepping:     s.cfg.MaxSteppingPerSide,
		observer:        s.observer,
		stats:           &stats,
	}

	tally := tallySteps(s.legs)
	for _, l := range s.legs {
		l.update(&g, &tally)
	}
	stats.Stepping = [2]int(tally)

	if s.debug {
		stats.UpdateTime = time.Since(t0)
		s.debugLog(stats)
	}
	s.stats = stats
	return stats
}

// stepping counts legs currently mid-step, per side.
func (s *Spider) stepping() [2]int {
	return [2]int(tallySteps(s.legs))
}

// Size returns the viewport the spider was last reset for.
func (s *Spider) Size() (width, height float64) {
	return s.width, s.height
}

// Seconds returns the simulation time of the last processed frame.
func (s *Spider) Seconds() float64 {
	return s.seconds
}

// Config returns a copy of the resolved configuration.
func (s *Spider) Config() Config {
	c := s.cfg
	c.SegmentLengths = append([]float64(nil), c.SegmentLengths...)
	c.Legs = append([]LegBlueprint(nil), c.Legs...)
	return c
}

// Body returns a copy of the body pose.
func (s *Spider) Body() Body {
	return s.body
}

// LastStats returns the stats of the most recent simulated frame.
func (s *Spider) LastStats() FrameStats {
	return s.stats
}

// SetStepObserver registers an observer for step start and landing events.
// Pass nil to remove it.
func (s *Spider) SetStepObserver(o StepObserver) {
	s.observer = o
}

// SetDebugMode enables per-frame timing and debug-level stats logging.
func (s *Spider) SetDebugMode(enabled bool) {
	s.debug = enabled
}
