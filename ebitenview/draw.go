package ebitenview

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/phanxgames/skitter"
)

var (
	backgroundColor = color.RGBA{R: 18, G: 20, B: 26, A: 255}
	legColor        = tint{R: 0.16, G: 0.14, B: 0.13, A: 1}
	jointColor      = color.RGBA{R: 70, G: 62, B: 58, A: 255}
	targetColor     = color.RGBA{R: 200, G: 90, B: 60, A: 160}
	abdomenColor    = tint{R: 0.2, G: 0.17, B: 0.16, A: 1}
	thoraxColor     = tint{R: 0.24, G: 0.2, B: 0.18, A: 1}
	headColor       = tint{R: 0.28, G: 0.23, B: 0.2, A: 1}
	eyeColor        = color.RGBA{R: 220, G: 60, B: 40, A: 255}
)

const (
	limbRootWidth = 9.0
	limbTipWidth  = 2.5
	jointRadius   = 3.0
	bodySegments  = 28
)

// whitePixel is the source image for every untextured triangle. Lazily
// created because images cannot be allocated before the game loop starts.
var whitePixelImage *ebiten.Image

func whitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.White)
	}
	return whitePixelImage
}

// painter draws snapshots. It owns reusable vertex buffers.
type painter struct {
	strips    []limbStrip
	bodyVerts []ebiten.Vertex
	bodyInds  []uint16

	// ShowTargets marks the foothold each stepping leg is aiming for.
	ShowTargets bool
}

func (p *painter) draw(dst *ebiten.Image, snap skitter.Snapshot) {
	dst.Fill(backgroundColor)

	if len(p.strips) < len(snap.Legs) {
		p.strips = make([]limbStrip, len(snap.Legs))
	}

	var op ebiten.DrawTrianglesOptions
	op.AntiAlias = true
	white := whitePixel()

	for i, ls := range snap.Legs {
		if p.ShowTargets && ls.Stepping {
			vector.FillCircle(dst, float32(ls.Target.X), float32(ls.Target.Y), 4, targetColor, true)
		}
		strip := &p.strips[i]
		strip.setPoints(ls.Segments(), limbTipWidth, limbRootWidth, legColor)
		dst.DrawTriangles(strip.verts, strip.inds, white, &op)
		for _, j := range ls.Joints {
			vector.FillCircle(dst, float32(j.X), float32(j.Y), jointRadius, jointColor, true)
		}
	}

	// The abdomen's long axis runs from the thorax through its center.
	abdDir := snap.Abdomen.Sub(snap.Thorax).Normalize(snap.Heading.Scale(-1))
	p.bodyVerts, p.bodyInds = p.bodyVerts[:0], p.bodyInds[:0]
	p.bodyVerts, p.bodyInds = ellipseFan(p.bodyVerts, p.bodyInds, snap.Abdomen, abdDir, 46, 34, bodySegments, abdomenColor)
	p.bodyVerts, p.bodyInds = ellipseFan(p.bodyVerts, p.bodyInds, snap.Thorax, snap.Heading, 34, 28, bodySegments, thoraxColor)
	p.bodyVerts, p.bodyInds = ellipseFan(p.bodyVerts, p.bodyInds, snap.Head, snap.Heading, 20, 17, bodySegments, headColor)
	dst.DrawTriangles(p.bodyVerts, p.bodyInds, white, &op)

	for _, eye := range eyes(snap.Head, snap.Heading) {
		vector.FillCircle(dst, float32(eye.X), float32(eye.Y), 2.5, eyeColor, true)
	}
}

// eyes sits a pair of eyes ahead of the head's center, one per side.
func eyes(head, heading skitter.Vec2) [2]skitter.Vec2 {
	ahead := head.Add(heading.Scale(10))
	n := heading.Normal()
	return [2]skitter.Vec2{ahead.Sub(n.Scale(6)), ahead.Add(n.Scale(6))}
}
