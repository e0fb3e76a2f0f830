// Package ebitenview runs a skitter.Spider in a resizable ebiten window. The
// mouse cursor drives the spider while it is inside a focused window; F12
// saves a screenshot and Escape quits.
package ebitenview

import (
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phanxgames/skitter"
	"go.uber.org/zap"
)

// RunConfig holds optional parameters for Run.
type RunConfig struct {
	// Title is the window title.
	Title string
	// Width and Height are the initial window size. Zero uses the spider's
	// current size.
	Width, Height int
	// ShowFPS draws the FPS and gait overlay.
	ShowFPS bool
	// ShowTargets marks the foothold of every stepping leg.
	ShowTargets bool
	// Speed is the thorax travel speed in pixels per second. Zero uses the
	// spider's configured speed.
	Speed float64
	// ScreenshotDir is where F12 and script snapshots are written.
	// Default "screenshots".
	ScreenshotDir string
	// Script, if set, replaces the mouse as the pointer source. Its
	// snapshot steps become screenshots.
	Script *skitter.Script
}

// cursorInput reports the mouse cursor as the spider's pointer. The pointer
// is active only while the window is focused and the cursor is inside it.
type cursorInput struct {
	vp *layoutViewport
}

func (c cursorInput) Pointer() skitter.Pointer {
	x, y := ebiten.CursorPosition()
	w, h := c.vp.Size()
	inside := x >= 0 && y >= 0 && float64(x) < w && float64(y) < h
	return skitter.Pointer{X: float64(x), Y: float64(y), Active: inside && ebiten.IsFocused()}
}

// layoutViewport records the size ebiten last passed to Layout.
type layoutViewport struct {
	w, h int
}

func (v *layoutViewport) Size() (float64, float64) {
	return float64(v.w), float64(v.h)
}

// game implements ebiten.Game.
type game struct {
	spider  *skitter.Spider
	driver  *skitter.Driver
	vp      *layoutViewport
	script  *skitter.Script
	painter painter
	shots   screenshots
	overlay *overlay
	counter *skitter.GaitCounter
	stats   skitter.FrameStats
}

func newGame(sp *skitter.Spider, cfg RunConfig) *game {
	vp := &layoutViewport{}
	counter := skitter.NewGaitCounter()
	sp.SetStepObserver(counter)

	d := &skitter.Driver{
		Spider:   sp,
		Clock:    skitter.NewSystemClock(),
		Input:    cursorInput{vp: vp},
		Viewport: vp,
	}
	if cfg.Speed > 0 {
		d.Speed = skitter.FixedSpeed(cfg.Speed)
	}
	if cfg.Script != nil {
		cfg.Script.SetPointer(sp.Body().Thorax)
		d.Input = cfg.Script
	}

	dir := cfg.ScreenshotDir
	if dir == "" {
		dir = "screenshots"
	}
	g := &game{
		spider:  sp,
		driver:  d,
		vp:      vp,
		script:  cfg.Script,
		shots:   screenshots{dir: dir},
		counter: counter,
	}
	g.painter.ShowTargets = cfg.ShowTargets
	if cfg.ShowFPS {
		g.overlay = newOverlay(counter)
	}
	return g
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		g.shots.request("f12")
	}
	if g.script != nil {
		g.script.Advance()
		for _, label := range g.script.TakeSnapshots() {
			g.shots.request(label)
		}
	}

	g.stats = g.driver.Tick()
	if g.overlay != nil {
		g.overlay.update(1/float64(ebiten.TPS()), g.stats)
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.painter.draw(screen, g.spider.Snapshot())
	if g.overlay != nil {
		g.overlay.draw(screen)
	}
	g.shots.flush(screen)
}

// Layout tracks the window size; the driver resets the spider when it
// changes.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.vp.w, g.vp.h = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Run opens a window and animates sp until the window is closed or Escape
// is pressed.
func Run(sp *skitter.Spider, cfg RunConfig) error {
	w, h := cfg.Width, cfg.Height
	if w <= 0 || h <= 0 {
		sw, sh := sp.Size()
		w, h = int(sw), int(sh)
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	log := skitter.Logger()
	log.Info("window opened", zap.Int("width", w), zap.Int("height", h))
	start := time.Now()

	err := ebiten.RunGame(newGame(sp, cfg))
	log.Info("window closed", zap.Duration("uptime", time.Since(start)))
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
