package skitter

import (
	"errors"
	"testing"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestZeroConfigFillsDefaults(t *testing.T) {
	c := Config{}.withDefaults()
	if err := c.Validate(); err != nil {
		t.Fatalf("zero config after defaults invalid: %v", err)
	}
	if len(c.Legs) != 4 {
		t.Errorf("legs = %d, want 4", len(c.Legs))
	}
	assertNear(t, "speed", c.TravelSpeed, 220)
	assertNear(t, "max delta", c.MaxDelta, 0.03)
	if c.MaxSteppingPerSide != 2 {
		t.Errorf("max stepping = %d, want 2", c.MaxSteppingPerSide)
	}
}

func TestBlueprintMultipliersDefaultToOne(t *testing.T) {
	c := Config{Legs: []LegBlueprint{{RestSide: 100}}}.withDefaults()
	bp := c.Legs[0]
	assertNear(t, "swing forward", bp.SwingForward, 1)
	assertNear(t, "swing side", bp.SwingSide, 1)
	assertNear(t, "reach scale", bp.ReachScale, 1)
}

func TestWithDefaultsDoesNotAlias(t *testing.T) {
	lengths := []float64{10, 20}
	c := Config{SegmentLengths: lengths}.withDefaults()
	c.SegmentLengths[0] = 99
	if lengths[0] != 10 {
		t.Error("withDefaults aliased the caller's slice")
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		mut  func(*Config)
	}{
		{"no segments", func(c *Config) { c.SegmentLengths = nil }},
		{"zero segment", func(c *Config) { c.SegmentLengths = []float64{10, 0} }},
		{"no legs", func(c *Config) { c.Legs = nil }},
		{"negative reach scale", func(c *Config) { c.Legs[0].ReachScale = -1 }},
		{"negative lift", func(c *Config) { c.Legs[1].Lift = -3 }},
		{"negative speed", func(c *Config) { c.TravelSpeed = -1 }},
		{"zero delta", func(c *Config) { c.MaxDelta = 0 }},
		{"zero step duration", func(c *Config) { c.StepDuration = 0 }},
		{"no stepping slots", func(c *Config) { c.MaxSteppingPerSide = 0 }},
		{"inverted reach ratios", func(c *Config) { c.MinReachRatio, c.MaxReachRatio = 0.9, 0.3 }},
		{"inverted abdomen", func(c *Config) { c.AbdomenMinReach, c.AbdomenMaxReach = 90, 50 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.mut(&c)
			err := c.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error %v does not wrap ErrInvalidConfig", err)
			}
		})
	}
}

func TestNewRejectsBadViewport(t *testing.T) {
	if _, err := New(DefaultConfig(), 0, 600); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("New with zero width: err = %v, want ErrInvalidConfig", err)
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	c := DefaultConfig()
	c.TravelSpeed = -5
	if _, err := New(c, 800, 600); err == nil {
		t.Error("expected error for negative travel speed")
	}
}
