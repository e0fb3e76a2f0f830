package termview

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/skitter"
)

// Each terminal cell stands for a cellW × cellH pixel block of the
// simulation viewport.
const (
	cellW = 8
	cellH = 16
)

// cells is the part of tcell.Screen the renderer writes to.
type cells interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (width, height int)
	Clear()
}

// toCell maps a world point to the cell containing it.
func toCell(p skitter.Vec2) (int, int) {
	return int(math.Floor(p.X / cellW)), int(math.Floor(p.Y / cellH))
}

// toWorld maps a cell to the world point at its center.
func toWorld(x, y int) skitter.Vec2 {
	return skitter.Vec2{X: (float64(x) + 0.5) * cellW, Y: (float64(y) + 0.5) * cellH}
}

// viewSize converts a terminal size in cells to a viewport size in pixels.
func viewSize(cols, rows int) (float64, float64) {
	return float64(cols * cellW), float64(rows * cellH)
}

// line calls plot for every cell on the Bresenham line from (x0, y0) to
// (x1, y1), both ends included.
func line(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// slopeRune picks a line glyph for the world-space segment a→b.
func slopeRune(a, b skitter.Vec2) rune {
	// Cells are twice as tall as wide; compare in cell units.
	dx := (b.X - a.X) / cellW
	dy := (b.Y - a.Y) / cellH
	ang := math.Atan2(dy, dx)
	if ang < 0 {
		ang += math.Pi
	}
	switch {
	case ang < math.Pi/8 || ang >= 7*math.Pi/8:
		return '-'
	case ang < 3*math.Pi/8:
		return '\\'
	case ang < 5*math.Pi/8:
		return '|'
	default:
		return '/'
	}
}

var (
	styleLeg     = tcell.StyleDefault.Foreground(tcell.NewRGBColor(150, 130, 115))
	styleJoint   = tcell.StyleDefault.Foreground(tcell.NewRGBColor(200, 180, 160))
	styleFoot    = tcell.StyleDefault.Foreground(tcell.NewRGBColor(230, 210, 190))
	styleTarget  = tcell.StyleDefault.Foreground(tcell.NewRGBColor(200, 90, 60))
	styleAbdomen = tcell.StyleDefault.Foreground(tcell.NewRGBColor(120, 95, 85))
	styleThorax  = tcell.StyleDefault.Foreground(tcell.NewRGBColor(150, 120, 100))
	styleHead    = tcell.StyleDefault.Foreground(tcell.NewRGBColor(180, 140, 110))
)

// painter draws snapshots as text.
type painter struct {
	showTargets bool
}

func (p painter) draw(scr cells, snap skitter.Snapshot) {
	scr.Clear()
	cols, rows := scr.Size()
	put := func(x, y int, r rune, st tcell.Style) {
		if x >= 0 && y >= 0 && x < cols && y < rows {
			scr.SetContent(x, y, r, nil, st)
		}
	}

	for _, ls := range snap.Legs {
		pts := ls.Segments()
		for i := 1; i < len(pts); i++ {
			r := slopeRune(pts[i-1], pts[i])
			x0, y0 := toCell(pts[i-1])
			x1, y1 := toCell(pts[i])
			line(x0, y0, x1, y1, func(x, y int) { put(x, y, r, styleLeg) })
		}
		for _, j := range ls.Joints {
			x, y := toCell(j)
			put(x, y, 'o', styleJoint)
		}
		x, y := toCell(ls.Foot)
		put(x, y, '*', styleFoot)
		if p.showTargets && ls.Stepping {
			x, y := toCell(ls.Target)
			put(x, y, '+', styleTarget)
		}
	}

	fillDisc(snap.Abdomen, 40, func(x, y int) { put(x, y, '%', styleAbdomen) })
	fillDisc(snap.Thorax, 30, func(x, y int) { put(x, y, '#', styleThorax) })
	fillDisc(snap.Head, 18, func(x, y int) { put(x, y, '@', styleHead) })
}

// fillDisc calls plot for every cell whose center lies within r pixels of c.
func fillDisc(c skitter.Vec2, r float64, plot func(x, y int)) {
	x0, y0 := toCell(skitter.Vec2{X: c.X - r, Y: c.Y - r})
	x1, y1 := toCell(skitter.Vec2{X: c.X + r, Y: c.Y + r})
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if toWorld(x, y).Dist(c) <= r {
				plot(x, y)
			}
		}
	}
}
