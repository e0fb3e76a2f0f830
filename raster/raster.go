// Package raster draws skitter snapshots into gg contexts and writes them as
// PNG files. It needs no window or GPU, so the render command and CI use it.
package raster

import (
	"fmt"
	"math"

	"github.com/gogpu/gg"
	"github.com/phanxgames/skitter"
	"github.com/phanxgames/skitter/internal/pngfile"
	"go.uber.org/zap"
)

// Style selects colors and stroke widths.
type Style struct {
	Background gg.RGBA
	Leg        gg.RGBA
	Joint      gg.RGBA
	Abdomen    gg.RGBA
	Thorax     gg.RGBA
	Head       gg.RGBA
	Target     gg.RGBA

	// LegWidth is the stroke width of the segment nearest the body; each
	// segment toward the foot is thinner.
	LegWidth float64

	ShowTargets bool
}

// DefaultStyle matches the window front end.
func DefaultStyle() Style {
	return Style{
		Background: gg.Hex("12141a"),
		Leg:        gg.Hex("2a2421"),
		Joint:      gg.Hex("463e3a"),
		Abdomen:    gg.Hex("332b29"),
		Thorax:     gg.Hex("3d332e"),
		Head:       gg.Hex("473b33"),
		Target:     gg.RGBA2(0.78, 0.35, 0.24, 0.6),
		LegWidth:   8,
	}
}

// Render draws snap into a new width × height context with DefaultStyle.
// The caller owns the context and should Close it.
func Render(snap skitter.Snapshot, width, height int) (*gg.Context, error) {
	return RenderStyle(snap, width, height, DefaultStyle())
}

// RenderStyle draws snap into a new context with the given style. On error
// the context is closed and the first failed fill or stroke is returned.
func RenderStyle(snap skitter.Snapshot, width, height int, st Style) (*gg.Context, error) {
	dc := gg.NewContext(width, height)
	dc.ClearWithColor(st.Background)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)

	p := &pen{dc: dc}
	for _, ls := range snap.Legs {
		p.leg(ls, st)
	}

	abd := snap.Abdomen.Sub(snap.Thorax).Normalize(snap.Heading.Scale(-1))
	p.ellipse(snap.Abdomen, abd, 46, 34, st.Abdomen)
	p.ellipse(snap.Thorax, snap.Heading, 34, 28, st.Thorax)
	p.ellipse(snap.Head, snap.Heading, 20, 17, st.Head)
	if p.err != nil {
		dc.Close()
		return nil, fmt.Errorf("raster: %w", p.err)
	}
	return dc, nil
}

// pen keeps the first error from the context's path operations.
type pen struct {
	dc  *gg.Context
	err error
}

func (p *pen) fill() {
	if err := p.dc.Fill(); err != nil && p.err == nil {
		p.err = err
	}
}

func (p *pen) stroke() {
	if err := p.dc.Stroke(); err != nil && p.err == nil {
		p.err = err
	}
}

func (p *pen) leg(ls skitter.LegSnapshot, st Style) {
	dc := p.dc
	if st.ShowTargets && ls.Stepping {
		dc.SetColor(st.Target.Color())
		dc.DrawCircle(ls.Target.X, ls.Target.Y, 4)
		p.fill()
	}

	pts := ls.Segments()
	dc.SetColor(st.Leg.Color())
	for i := len(pts) - 1; i > 0; i-- {
		// Segment i runs from pts[i] (proximal) to pts[i-1].
		dc.SetLineWidth(segmentWidth(st.LegWidth, i, len(pts)-1))
		dc.DrawLine(pts[i].X, pts[i].Y, pts[i-1].X, pts[i-1].Y)
		p.stroke()
	}

	dc.SetColor(st.Joint.Color())
	for _, j := range ls.Joints {
		dc.DrawCircle(j.X, j.Y, 3)
		p.fill()
	}
}

// segmentWidth tapers from root at the shoulder to a third of it at the foot.
func segmentWidth(root float64, i, n int) float64 {
	if n <= 1 {
		return root
	}
	t := float64(i-1) / float64(n-1)
	return skitter.Lerp(root/3, root, t)
}

func (p *pen) ellipse(c, dir skitter.Vec2, rx, ry float64, col gg.RGBA) {
	dc := p.dc
	dc.Push()
	dc.RotateAbout(math.Atan2(dir.Y, dir.X), c.X, c.Y)
	dc.DrawEllipse(c.X, c.Y, rx, ry)
	dc.SetColor(col.Color())
	p.fill()
	dc.Pop()
}

// Save renders snap and writes it to path as a PNG.
func Save(snap skitter.Snapshot, path string) error {
	dc, err := Render(snap, int(snap.Width), int(snap.Height))
	if err != nil {
		return err
	}
	defer dc.Close()
	if err := dc.FlushGPU(); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	return pngfile.Write(path, dc.Image())
}

// RenderScript plays sc against sp and writes one PNG per snapshot step to
// dir, named <n>_<label>.png where n counts snapshots from 1. It returns the written paths. Playback
// always runs to the end; the first write error is returned.
func RenderScript(sp *skitter.Spider, sc *skitter.Script, dir string) ([]string, error) {
	var (
		paths    []string
		firstErr error
		seq      int
	)
	log := skitter.Logger()
	n := skitter.Play(sp, sc, func(label string, snap skitter.Snapshot) {
		seq++
		path := pngfile.Path(dir, fmt.Sprintf("%04d", seq), label)
		if err := Save(snap, path); err != nil {
			log.Warn("render snapshot", zap.String("label", label), zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
			return
		}
		paths = append(paths, path)
	})
	log.Info("script rendered", zap.Int("frames", n), zap.Int("images", len(paths)))
	return paths, firstErr
}

// RenderFrames simulates frames frames of idle wandering at frameMS
// milliseconds each and writes the final pose to path.
func RenderFrames(sp *skitter.Spider, frames int, frameMS float64, path string) error {
	clock := &skitter.ManualClock{}
	clock.Advance(sp.Seconds() * 1000)
	d := &skitter.Driver{Spider: sp, Clock: clock}
	for i := 0; i < frames; i++ {
		clock.Advance(frameMS)
		d.Tick()
	}
	return Save(sp.Snapshot(), path)
}
