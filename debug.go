package skitter

import (
	"time"

	"go.uber.org/zap"
)

// FrameStats summarizes one simulated frame.
type FrameStats struct {
	Seconds float64
	Delta   float64
	Speed   float64 // thorax displacement this frame, pixels

	StepsStarted int
	StepsLanded  int
	Stepping     [2]int // legs mid-step at frame end: [left, right]

	// UpdateTime is only measured in debug mode.
	UpdateTime time.Duration
}

// SteppingOn returns the number of legs on side mid-step at frame end.
func (f FrameStats) SteppingOn(side Side) int {
	return f.Stepping[side.index()]
}

// debugLog writes frame stats at debug level.
func (s *Spider) debugLog(stats FrameStats) {
	if !s.debug {
		return
	}
	Logger().Debug("frame",
		zap.Float64("t", stats.Seconds),
		zap.Float64("dt", stats.Delta),
		zap.Float64("speed", stats.Speed),
		zap.Int("started", stats.StepsStarted),
		zap.Int("landed", stats.StepsLanded),
		zap.Int("stepping_left", stats.Stepping[0]),
		zap.Int("stepping_right", stats.Stepping[1]),
		zap.Duration("update", stats.UpdateTime),
	)
}

// GaitCounter is a StepObserver that tallies step events per leg. Front ends
// use it for overlays; tests use it to bound corrective steps.
type GaitCounter struct {
	Started map[int]int
	Landed  map[int]int
	Last    StepEvent
}

// NewGaitCounter returns an empty counter.
func NewGaitCounter() *GaitCounter {
	return &GaitCounter{Started: make(map[int]int), Landed: make(map[int]int)}
}

func (c *GaitCounter) StepStarted(e StepEvent) {
	c.Started[e.Leg]++
	c.Last = e
}

func (c *GaitCounter) StepLanded(e StepEvent) {
	c.Landed[e.Leg]++
	c.Last = e
}

// Total returns the number of steps started across all legs.
func (c *GaitCounter) Total() int {
	n := 0
	for _, v := range c.Started {
		n += v
	}
	return n
}

// MultiObserver fans step events out to several observers in order.
type MultiObserver []StepObserver

func (m MultiObserver) StepStarted(e StepEvent) {
	for _, o := range m {
		o.StepStarted(e)
	}
}

func (m MultiObserver) StepLanded(e StepEvent) {
	for _, o := range m {
		o.StepLanded(e)
	}
}
