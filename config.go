package skitter

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is wrapped by every error Config.Validate returns.
var ErrInvalidConfig = errors.New("skitter: invalid config")

// Config holds the creature's blueprint and gait tunables. The zero value of
// any field falls back to the matching DefaultConfig value when passed to New.
type Config struct {
	// SegmentLengths lists limb segment lengths, distal first.
	// Default [32, 48, 62].
	SegmentLengths []float64

	// Legs lists one blueprint per leg pair. Each blueprint produces a left
	// and a right leg. Default: four pairs (DefaultBlueprints).
	Legs []LegBlueprint

	// TravelSpeed caps thorax motion in pixels per second. Default 220.
	TravelSpeed float64

	// MaxDelta clamps the per-frame elapsed time in seconds. Default 0.03.
	MaxDelta float64

	// StepDuration is the nominal swing time in seconds before speed
	// shortening. Default 0.26.
	StepDuration float64

	// MinStepInterval is the cooldown in seconds between a leg landing and
	// its next step. Default 0.16.
	MinStepInterval float64

	// MaxSteppingPerSide limits how many legs on one side may swing at once.
	// Default 2.
	MaxSteppingPerSide int

	// MinReachRatio and MaxReachRatio size the initial reach annulus as a
	// fraction of total limb length. Defaults 0.36 and 0.9.
	MinReachRatio float64
	MaxReachRatio float64

	// AbdomenMinReach and AbdomenMaxReach bound the abdomen's distance from
	// the thorax in pixels. Defaults 54 and 86.
	AbdomenMinReach float64
	AbdomenMaxReach float64
}

// DefaultBlueprints returns the four leg pairs of the reference creature,
// front to back.
func DefaultBlueprints() []LegBlueprint {
	return []LegBlueprint{
		{AnchorForward: 28, AnchorSide: 26, RestForward: 96, RestSide: 126, Phase: 0, StepForward: 26, StepSide: 16, Lift: 30, SwingForward: 1.35, SwingSide: 1.4, ReachScale: 1.08},
		{AnchorForward: 6, AnchorSide: 32, RestForward: 58, RestSide: 140, Phase: math.Pi * 0.5, StepForward: 24, StepSide: 16, Lift: 34, SwingForward: 1.18, SwingSide: 1.25, ReachScale: 1.05},
		{AnchorForward: -18, AnchorSide: 30, RestForward: 8, RestSide: 128, Phase: math.Pi, StepForward: 20, StepSide: 14, Lift: 28, SwingForward: 1.02, SwingSide: 1.05},
		{AnchorForward: -44, AnchorSide: 24, RestForward: -46, RestSide: 110, Phase: math.Pi * 1.5, StepForward: 22, StepSide: 12, Lift: 24, SwingForward: 0.96, SwingSide: 0.92},
	}
}

// DefaultConfig returns the reference creature configuration.
func DefaultConfig() Config {
	return Config{
		SegmentLengths:     []float64{32, 48, 62},
		Legs:               DefaultBlueprints(),
		TravelSpeed:        220,
		MaxDelta:           0.03,
		StepDuration:       0.26,
		MinStepInterval:    0.16,
		MaxSteppingPerSide: 2,
		MinReachRatio:      0.36,
		MaxReachRatio:      0.9,
		AbdomenMinReach:    54,
		AbdomenMaxReach:    86,
	}
}

// withDefaults fills zero-valued fields from DefaultConfig. Slices are
// copied so the caller's config is never aliased.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if len(c.SegmentLengths) == 0 {
		c.SegmentLengths = d.SegmentLengths
	} else {
		c.SegmentLengths = append([]float64(nil), c.SegmentLengths...)
	}
	if len(c.Legs) == 0 {
		c.Legs = d.Legs
	} else {
		c.Legs = append([]LegBlueprint(nil), c.Legs...)
	}
	for i := range c.Legs {
		c.Legs[i] = c.Legs[i].withDefaults()
	}
	if c.TravelSpeed == 0 {
		c.TravelSpeed = d.TravelSpeed
	}
	if c.MaxDelta == 0 {
		c.MaxDelta = d.MaxDelta
	}
	if c.StepDuration == 0 {
		c.StepDuration = d.StepDuration
	}
	if c.MinStepInterval == 0 {
		c.MinStepInterval = d.MinStepInterval
	}
	if c.MaxSteppingPerSide == 0 {
		c.MaxSteppingPerSide = d.MaxSteppingPerSide
	}
	if c.MinReachRatio == 0 {
		c.MinReachRatio = d.MinReachRatio
	}
	if c.MaxReachRatio == 0 {
		c.MaxReachRatio = d.MaxReachRatio
	}
	if c.AbdomenMinReach == 0 {
		c.AbdomenMinReach = d.AbdomenMinReach
	}
	if c.AbdomenMaxReach == 0 {
		c.AbdomenMaxReach = d.AbdomenMaxReach
	}
	return c
}

// Validate reports the first problem found in c.
func (c Config) Validate() error {
	if len(c.SegmentLengths) == 0 {
		return fmt.Errorf("%w: no limb segments", ErrInvalidConfig)
	}
	for i, l := range c.SegmentLengths {
		if !(l > 0) || math.IsInf(l, 0) {
			return fmt.Errorf("%w: segment %d length %v must be positive", ErrInvalidConfig, i, l)
		}
	}
	if len(c.Legs) == 0 {
		return fmt.Errorf("%w: no leg blueprints", ErrInvalidConfig)
	}
	for i, bp := range c.Legs {
		if bp.ReachScale < 0 || bp.SwingForward < 0 || bp.SwingSide < 0 {
			return fmt.Errorf("%w: leg %d has a negative multiplier", ErrInvalidConfig, i)
		}
		if bp.Lift < 0 {
			return fmt.Errorf("%w: leg %d lift %v is negative", ErrInvalidConfig, i, bp.Lift)
		}
	}
	switch {
	case c.TravelSpeed < 0:
		return fmt.Errorf("%w: travel speed %v is negative", ErrInvalidConfig, c.TravelSpeed)
	case c.MaxDelta <= 0:
		return fmt.Errorf("%w: max delta %v must be positive", ErrInvalidConfig, c.MaxDelta)
	case c.StepDuration <= 0:
		return fmt.Errorf("%w: step duration %v must be positive", ErrInvalidConfig, c.StepDuration)
	case c.MinStepInterval < 0:
		return fmt.Errorf("%w: step interval %v is negative", ErrInvalidConfig, c.MinStepInterval)
	case c.MaxSteppingPerSide < 1:
		return fmt.Errorf("%w: max stepping per side %d must be at least 1", ErrInvalidConfig, c.MaxSteppingPerSide)
	case c.MinReachRatio < 0 || c.MaxReachRatio <= c.MinReachRatio:
		return fmt.Errorf("%w: reach ratios [%v, %v] are not an increasing range", ErrInvalidConfig, c.MinReachRatio, c.MaxReachRatio)
	case c.AbdomenMinReach < 0 || c.AbdomenMaxReach < c.AbdomenMinReach:
		return fmt.Errorf("%w: abdomen reach [%v, %v] is not a range", ErrInvalidConfig, c.AbdomenMinReach, c.AbdomenMaxReach)
	}
	return nil
}
