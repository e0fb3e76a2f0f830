package ebitenview

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/phanxgames/skitter"
)

// overlay shows FPS, TPS and gait counters in the top-left corner. The text
// is refreshed every ~0.5 seconds into its own image.
type overlay struct {
	img        *ebiten.Image
	lastUpdate float64
	counter    *skitter.GaitCounter
}

func newOverlay(counter *skitter.GaitCounter) *overlay {
	// 150x64 fits four lines of debug text.
	return &overlay{img: ebiten.NewImage(150, 64), counter: counter, lastUpdate: 1}
}

func (o *overlay) update(dt float64, stats skitter.FrameStats) {
	o.lastUpdate += dt
	if o.lastUpdate < 0.5 {
		return
	}
	o.lastUpdate = 0

	o.img.Clear()
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, overlayText(ebiten.ActualFPS(), ebiten.ActualTPS(), stats, o.counter.Total()))
}

func (o *overlay) draw(screen *ebiten.Image) {
	screen.DrawImage(o.img, nil)
}

func overlayText(fps, tps float64, stats skitter.FrameStats, steps int) string {
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nStepping: L%d R%d\nSteps: %d",
		fps, tps, stats.SteppingOn(skitter.SideLeft), stats.SteppingOn(skitter.SideRight), steps)
}
