package raster

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/gg"
	"github.com/phanxgames/skitter"
)

func newSpider(t *testing.T) *skitter.Spider {
	t.Helper()
	sp, err := skitter.New(skitter.DefaultConfig(), 320, 240)
	if err != nil {
		t.Fatal(err)
	}
	return sp
}

func TestRenderSize(t *testing.T) {
	sp := newSpider(t)
	dc, err := Render(sp.Snapshot(), 320, 240)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	defer dc.Close()
	if dc.Width() != 320 || dc.Height() != 240 {
		t.Errorf("context = %dx%d, want 320x240", dc.Width(), dc.Height())
	}
}

func TestRenderPaintsBody(t *testing.T) {
	sp := newSpider(t)
	snap := sp.Snapshot()
	dc, err := Render(snap, 320, 240)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	defer dc.Close()
	img := dc.Image()

	bg := DefaultStyle().Background.Color()
	if got := img.At(2, 2); !sameColor(got, bg) {
		t.Errorf("corner = %v, want background %v", got, bg)
	}
	th := snap.Thorax
	if got := img.At(int(th.X), int(th.Y)); sameColor(got, bg) {
		t.Error("thorax center was not painted")
	}
}

func sameColor(a, b color.Color) bool {
	r1, g1, b1, a1 := a.RGBA()
	r2, g2, b2, a2 := b.RGBA()
	return r1>>8 == r2>>8 && g1>>8 == g2>>8 && b1>>8 == b2>>8 && a1>>8 == a2>>8
}

func TestPenKeepsFirstError(t *testing.T) {
	dc := gg.NewContext(16, 16)
	defer dc.Close()
	first := errors.New("first")
	p := &pen{dc: dc, err: first}

	dc.DrawCircle(8, 8, 4)
	p.fill()
	dc.DrawLine(0, 0, 16, 16)
	p.stroke()
	if p.err != first {
		t.Errorf("err = %v, want the first error kept", p.err)
	}
}

func TestPenDrawsWithoutError(t *testing.T) {
	dc := gg.NewContext(32, 32)
	defer dc.Close()
	p := &pen{dc: dc}
	p.ellipse(skitter.Vec2{X: 16, Y: 16}, skitter.Vec2{X: 1}, 10, 6, DefaultStyle().Thorax)
	if p.err != nil {
		t.Fatalf("ellipse: %v", p.err)
	}
	bg := color.RGBA{}
	if got := dc.Image().At(16, 16); sameColor(got, bg) {
		t.Error("ellipse center was not painted")
	}
}

func TestSegmentWidthTapers(t *testing.T) {
	if got := segmentWidth(9, 3, 3); got != 9 {
		t.Errorf("root width = %v, want 9", got)
	}
	if got := segmentWidth(9, 1, 3); got != 3 {
		t.Errorf("foot width = %v, want 3", got)
	}
	if got := segmentWidth(9, 1, 1); got != 9 {
		t.Errorf("single segment width = %v, want 9", got)
	}
}

func TestRenderScriptWritesSnapshots(t *testing.T) {
	sp := newSpider(t)
	sc, err := skitter.LoadScript([]byte(`{"steps": [
		{"action": "snapshot", "label": "start"},
		{"action": "move", "x": 250, "y": 120, "frames": 20},
		{"action": "snapshot", "label": "moved here"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	paths, err := RenderScript(sp, sc, dir)
	if err != nil {
		t.Fatalf("RenderScript: %v", err)
	}
	want := []string{
		filepath.Join(dir, "0001_start.png"),
		filepath.Join(dir, "0002_moved_here.png"),
	}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i, p := range paths {
		if p != want[i] {
			t.Errorf("path %d = %q, want %q", i, p, want[i])
		}
		if fi, err := os.Stat(p); err != nil || fi.Size() == 0 {
			t.Errorf("%s not written: %v", p, err)
		}
	}
}

func TestRenderFrames(t *testing.T) {
	sp := newSpider(t)
	path := filepath.Join(t.TempDir(), "out", "idle.png")
	if err := RenderFrames(sp, 30, 16, path); err != nil {
		t.Fatalf("RenderFrames: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("output missing: %v", err)
	}
	if got := sp.Seconds(); got < 0.47 || got > 0.49 {
		t.Errorf("seconds = %v, want 0.48", got)
	}
}
