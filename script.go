package skitter

import (
	"encoding/json"
	"fmt"

	"github.com/tanema/gween"
)

// scriptStep is a single action in an input script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Ease   string  `json:"ease,omitempty"`
}

// scriptFile is the top-level JSON structure of an input script.
type scriptFile struct {
	Width   float64      `json:"width,omitempty"`
	Height  float64      `json:"height,omitempty"`
	FrameMS float64      `json:"frameMs,omitempty"`
	Steps   []scriptStep `json:"steps"`
}

const defaultFrameMS = 16

// Script plays back a sequence of pointer moves, waits, resizes and snapshot
// requests, one frame per Advance. It implements InputProvider and Viewport
// so it can be plugged straight into a Driver.
//
//	{"width": 800, "height": 600, "steps": [
//		{"action": "move", "x": 600, "y": 300, "frames": 60, "ease": "inOutQuad"},
//		{"action": "wait", "frames": 30},
//		{"action": "snapshot", "label": "walked"},
//		{"action": "leave"},
//		{"action": "resize", "width": 400, "height": 300}
//	]}
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool

	pointer       Pointer
	width, height float64
	frameMS       float64

	tweenX, tweenY *gween.Tween
	pending        []string
}

// LoadScript parses a JSON input script.
func LoadScript(data []byte) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range f.Steps {
		switch st.Action {
		case "move":
			if _, ok := EaseByName(st.Ease); !ok {
				return nil, fmt.Errorf("parse script: step %d: unknown ease %q", i, st.Ease)
			}
		case "resize":
			if st.Width <= 0 || st.Height <= 0 {
				return nil, fmt.Errorf("parse script: step %d: resize needs a positive size", i)
			}
		case "leave", "wait", "snapshot":
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	frameMS := f.FrameMS
	if frameMS <= 0 {
		frameMS = defaultFrameMS
	}
	return &Script{
		steps:   f.Steps,
		width:   f.Width,
		height:  f.Height,
		frameMS: frameMS,
	}, nil
}

// Pointer implements InputProvider.
func (s *Script) Pointer() Pointer { return s.pointer }

// Size implements Viewport. A script that never sets a size reports 0x0,
// which a Driver ignores.
func (s *Script) Size() (float64, float64) { return s.width, s.height }

// FrameMS returns the simulated frame length in milliseconds.
func (s *Script) FrameMS() float64 { return s.frameMS }

// Done reports whether every step has been executed.
func (s *Script) Done() bool { return s.done }

// TakeSnapshots returns and clears the snapshot labels requested so far.
func (s *Script) TakeSnapshots() []string {
	labels := s.pending
	s.pending = nil
	return labels
}

// SetPointer moves the pointer to p without changing whether it is active.
// A move already in progress keeps its tween.
func (s *Script) SetPointer(p Vec2) {
	if s.tweenX != nil {
		return
	}
	s.pointer.X, s.pointer.Y = p.X, p.Y
}

// Advance moves the script forward by one frame.
func (s *Script) Advance() {
	if s.done {
		return
	}
	if s.tweenX != nil {
		s.stepTween()
		s.checkDone()
		return
	}
	if s.waitCount > 0 {
		s.waitCount--
		s.checkDone()
		return
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return
	}

	st := s.steps[s.cursor]
	s.cursor++

	switch st.Action {
	case "move":
		s.pointer.Active = true
		if st.Frames <= 1 {
			s.pointer.X, s.pointer.Y = st.X, st.Y
			break
		}
		fn, _ := EaseByName(st.Ease)
		d := float32(st.Frames)
		s.tweenX = gween.New(float32(s.pointer.X), float32(st.X), d, fn)
		s.tweenY = gween.New(float32(s.pointer.Y), float32(st.Y), d, fn)
		s.stepTween() // this frame counts as one
	case "leave":
		s.pointer.Active = false
	case "wait":
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1
		}
	case "resize":
		s.width, s.height = st.Width, st.Height
	case "snapshot":
		s.pending = append(s.pending, st.Label)
	}
	s.checkDone()
}

// stepTween advances the pointer tween by one frame.
func (s *Script) stepTween() {
	x, doneX := s.tweenX.Update(1)
	y, doneY := s.tweenY.Update(1)
	s.pointer.X, s.pointer.Y = float64(x), float64(y)
	if doneX && doneY {
		s.tweenX, s.tweenY = nil, nil
	}
}

func (s *Script) checkDone() {
	if s.cursor >= len(s.steps) && s.waitCount == 0 && s.tweenX == nil {
		s.done = true
	}
}

// Play drives sp through the whole script on a manual clock, one frame per
// step. A fresh script's pointer starts on the thorax, so the first move
// tweens out from the body. onSnapshot, if non-nil, is called after the
// frame on which a snapshot step ran. Play returns the number of frames
// simulated.
func Play(sp *Spider, sc *Script, onSnapshot func(label string, snap Snapshot)) int {
	clock := &ManualClock{ms: sp.lastTime}
	d := &Driver{Spider: sp, Clock: clock, Input: sc, Viewport: sc}
	if sc.cursor == 0 {
		sc.SetPointer(sp.Body().Thorax)
	}
	frames := 0
	for !sc.Done() {
		sc.Advance()
		clock.Advance(sc.FrameMS())
		d.Tick()
		frames++
		labels := sc.TakeSnapshots()
		if onSnapshot == nil {
			continue
		}
		for _, label := range labels {
			onSnapshot(label, sp.Snapshot())
		}
	}
	return frames
}
