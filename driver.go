package skitter

import "time"

// Clock supplies monotonically increasing time in milliseconds.
type Clock interface {
	Millis() float64
}

// InputProvider supplies the pointer state once per frame.
type InputProvider interface {
	Pointer() Pointer
}

// SpeedProvider supplies the thorax travel speed in pixels per second.
type SpeedProvider interface {
	TravelSpeed() float64
}

// Viewport supplies the current drawable size in pixels.
type Viewport interface {
	Size() (width, height float64)
}

// pointerSetter is an InputProvider whose pointer can be repositioned.
// Driver puts it on the thorax after every reset.
type pointerSetter interface {
	SetPointer(Vec2)
}

// Driver ties a Spider to its collaborators and advances it one frame per
// Tick. Nil collaborators fall back to: an inactive pointer, the configured
// travel speed, and the spider's current size. Clock must be set.
type Driver struct {
	Spider   *Spider
	Clock    Clock
	Input    InputProvider
	Speed    SpeedProvider
	Viewport Viewport
}

// Tick reads every collaborator once, resets the spider if the viewport
// changed size, and simulates one frame.
func (d *Driver) Tick() FrameStats {
	s := d.Spider
	if d.Viewport != nil {
		w, h := d.Viewport.Size()
		if w > 0 && h > 0 {
			if cw, ch := s.Size(); w != cw || h != ch {
				s.Reset(w, h)
				if ps, ok := d.Input.(pointerSetter); ok {
					ps.SetPointer(s.body.Thorax)
				}
			}
		}
	}

	var ptr Pointer
	if d.Input != nil {
		ptr = d.Input.Pointer()
	}
	speed := s.cfg.TravelSpeed
	if d.Speed != nil {
		speed = d.Speed.TravelSpeed()
	}
	return s.Update(d.Clock.Millis(), ptr, speed)
}

// SystemClock reads wall time relative to its creation.
type SystemClock struct {
	start time.Time
}

// NewSystemClock returns a clock starting at zero now.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

func (c *SystemClock) Millis() float64 {
	return float64(time.Since(c.start)) / float64(time.Millisecond)
}

// ManualClock only moves when advanced. Headless playback and tests use it
// for deterministic frame timing.
type ManualClock struct {
	ms float64
}

// Advance moves the clock forward by ms milliseconds.
func (c *ManualClock) Advance(ms float64) {
	c.ms += ms
}

func (c *ManualClock) Millis() float64 { return c.ms }

// StaticInput always reports the same pointer.
type StaticInput struct {
	P Pointer
}

func (s StaticInput) Pointer() Pointer { return s.P }

// FixedSpeed is a constant travel speed in pixels per second.
type FixedSpeed float64

func (f FixedSpeed) TravelSpeed() float64 { return float64(f) }

// FixedViewport is a constant viewport size.
type FixedViewport struct {
	Width, Height float64
}

func (v FixedViewport) Size() (float64, float64) { return v.Width, v.Height }
