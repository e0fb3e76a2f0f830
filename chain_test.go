package skitter

import (
	"math"
	"testing"
)

// assertChain checks every adjacent pair along tip → joints → anchor.
func assertChain(t *testing.T, bones []Bone, tip, anchor Vec2) {
	t.Helper()
	prev := tip
	for i, b := range bones {
		d := prev.Dist(b.Joint())
		if math.Abs(d-b.Length) > 1e-9 {
			t.Errorf("bone %d span = %v, want %v", i, d, b.Length)
		}
		prev = b.Joint()
	}
	assertVecNear(t, "proximal joint", bones[len(bones)-1].Joint(), anchor, 1e-9)
}

func TestSolveChainStraight(t *testing.T) {
	bones := NewBones([]float64{32, 48, 62}, Vec2{})
	tip := SolveChain(bones, Vec2{100, 0}, Vec2{0, 0})
	assertChain(t, bones, tip, Vec2{0, 0})

	// Collinear seed: the chain lies on the X axis, shifted so its base is
	// on the anchor.
	assertVecNear(t, "tip", tip, Vec2{142, 0}, 1e-9)
	for i, b := range bones {
		assertNear(t, "angle", b.Angle, 0)
		if b.Y != 0 {
			t.Errorf("bone %d Y = %v, want 0", i, b.Y)
		}
	}
}

func TestSolveChainBentSeed(t *testing.T) {
	bones := NewBones([]float64{32, 48, 62}, Vec2{})
	bones[0].X, bones[0].Y = 70, -40
	bones[1].X, bones[1].Y = 40, -60
	bones[2].X, bones[2].Y = 5, -5
	anchor := Vec2{0, 0}
	tip := SolveChain(bones, Vec2{100, 0}, anchor)
	assertChain(t, bones, tip, anchor)

	// The knee keeps bending the way it was seeded.
	if bones[1].Y >= 0 {
		t.Errorf("knee Y = %v, want negative (seeded upward)", bones[1].Y)
	}
}

func TestSolveChainRepeatedSolvesStayRigid(t *testing.T) {
	bones := NewBones([]float64{32, 48, 62}, Vec2{50, 50})
	anchor := Vec2{0, 0}
	for i := 0; i < 50; i++ {
		a := float64(i) * 0.2
		target := Vec2{math.Cos(a) * 90, math.Sin(a) * 90}
		tip := SolveChain(bones, target, anchor)
		assertChain(t, bones, tip, anchor)
	}
}

func TestSolveChainCoincidentJoint(t *testing.T) {
	// Running point on top of a stored joint: atan2(0, 0) is 0, never NaN.
	bones := NewBones([]float64{10}, Vec2{5, 5})
	tip := SolveChain(bones, Vec2{5, 5}, Vec2{0, 0})
	if math.IsNaN(bones[0].X) || math.IsNaN(tip.X) {
		t.Fatal("coincident solve produced NaN")
	}
	assertChain(t, bones, tip, Vec2{0, 0})
}

func TestSolveChainEmpty(t *testing.T) {
	tip := Vec2{3, 4}
	if got := SolveChain(nil, tip, Vec2{}); got != tip {
		t.Errorf("empty chain tip = %+v, want %+v", got, tip)
	}
}

func TestChainLength(t *testing.T) {
	assertNear(t, "total", ChainLength([]float64{32, 48, 62}), 142)
	assertNear(t, "empty", ChainLength(nil), 0)
}
