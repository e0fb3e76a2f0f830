package termview

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/phanxgames/skitter"
	"go.uber.org/zap"
)

const sampleRate = beep.SampleRate(44100)

// footsteps plays a short tick each time a foot lands. Left and right feet
// tick at different pitches.
type footsteps struct {
	rate beep.SampleRate
	play func(beep.Streamer)
}

// newFootsteps initializes the speaker.
func newFootsteps() (*footsteps, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	return &footsteps{rate: sampleRate, play: func(s beep.Streamer) { speaker.Play(s) }}, nil
}

func (f *footsteps) StepStarted(skitter.StepEvent) {}

func (f *footsteps) StepLanded(e skitter.StepEvent) {
	freq := 660.0
	if e.Side == skitter.SideRight {
		freq = 520
	}
	s, err := tick(f.rate, freq)
	if err != nil {
		skitter.Logger().Warn("footstep tone", zap.Float64("freq", freq), zap.Error(err))
		return
	}
	f.play(s)
}

// tick returns a 60ms sine burst with an exponential decay.
func tick(rate beep.SampleRate, freq float64) (beep.Streamer, error) {
	tone, err := generators.SineTone(rate, freq)
	if err != nil {
		return nil, err
	}
	decay := float64(rate.N(12 * time.Millisecond))
	pos := 0
	shaped := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n, ok := tone.Stream(samples)
		for i := 0; i < n; i++ {
			env := 0.25 * math.Exp(-float64(pos)/decay)
			samples[i][0] *= env
			samples[i][1] *= env
			pos++
		}
		return n, ok
	})
	return beep.Take(rate.N(60*time.Millisecond), shaped), nil
}
