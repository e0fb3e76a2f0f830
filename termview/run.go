// Package termview runs a skitter.Spider in a terminal. Each cell covers an
// 8×16 pixel block of the simulation. The mouse drives the pointer, a right
// click releases it, and Esc, q or Ctrl-C quits.
package termview

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/skitter"
	"go.uber.org/zap"
)

// Options configures Run.
type Options struct {
	// Sound plays a tick on every footfall.
	Sound bool
	// Speed is the thorax travel speed in pixels per second. Zero uses the
	// spider's configured speed.
	Speed float64
	// ShowTargets marks the foothold of every stepping leg.
	ShowTargets bool
	// FrameInterval is the tick period. Default 16ms.
	FrameInterval time.Duration
}

// termInput holds the pointer derived from mouse events.
type termInput struct {
	p skitter.Pointer
}

func (t *termInput) Pointer() skitter.Pointer { return t.p }

// handle applies one mouse event.
func (t *termInput) handle(ev *tcell.EventMouse) {
	if ev.Buttons()&tcell.Button2 != 0 {
		t.p.Active = false
		return
	}
	x, y := ev.Position()
	c := toWorld(x, y)
	t.p = skitter.Pointer{X: c.X, Y: c.Y, Active: true}
}

// screenViewport reports the terminal size in pixels.
type screenViewport struct {
	scr tcell.Screen
}

func (v screenViewport) Size() (float64, float64) {
	return viewSize(v.scr.Size())
}

// quitKey reports whether ev asks to leave.
func quitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}

// Run takes over the terminal and animates sp until ctx is done or the user
// quits.
func Run(ctx context.Context, sp *skitter.Spider, opts Options) error {
	scr, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := scr.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer scr.Fini()
	scr.EnableMouse(tcell.MouseMotionEvents)
	scr.HideCursor()
	return run(ctx, scr, sp, opts)
}

func run(ctx context.Context, scr tcell.Screen, sp *skitter.Spider, opts Options) error {
	log := skitter.Logger()

	input := &termInput{}
	d := &skitter.Driver{
		Spider:   sp,
		Clock:    skitter.NewSystemClock(),
		Input:    input,
		Viewport: screenViewport{scr: scr},
	}
	if opts.Speed > 0 {
		d.Speed = skitter.FixedSpeed(opts.Speed)
	}
	if opts.Sound {
		fs, err := newFootsteps()
		if err != nil {
			// Non-fatal, the view runs without sound.
			log.Warn("audio disabled", zap.Error(err))
		} else {
			sp.SetStepObserver(fs)
			defer sp.SetStepObserver(nil)
		}
	}

	interval := opts.FrameInterval
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := scr.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	p := painter{showTargets: opts.ShowTargets}
	cols, rows := scr.Size()
	log.Info("terminal view started", zap.Int("cols", cols), zap.Int("rows", rows))

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if quitKey(ev) {
					return nil
				}
			case *tcell.EventMouse:
				input.handle(ev)
			case *tcell.EventResize:
				scr.Sync()
			}
		case <-ticker.C:
			d.Tick()
			p.draw(scr, sp.Snapshot())
			scr.Show()
		}
	}
}
