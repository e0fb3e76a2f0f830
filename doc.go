// Package skitter animates a procedurally walking arachnid in 2D.
//
// A [Spider] owns a body (head, thorax, abdomen) that chases a pointer or
// wanders along an idle path, and eight three-bone legs whose feet are placed
// by a gait state machine and whose joints are bent by a short two-pass chain
// solver. The package has no display dependency: front ends read a
// [Snapshot] each frame and draw it however they like. See the ebitenview,
// raster and termview packages for three of them.
//
// # Quick start
//
//	sp, err := skitter.New(skitter.DefaultConfig(), 800, 600)
//	if err != nil {
//		log.Fatal(err)
//	}
//	d := &skitter.Driver{
//		Spider: sp,
//		Clock:  skitter.NewSystemClock(),
//		Input:  myPointer, // anything with Pointer() skitter.Pointer
//	}
//	for running {
//		d.Tick()
//		draw(sp.Snapshot())
//	}
//
// # Legs
//
// Each leg is either [Planted] or [*Stepping]. A planted foot eases toward its
// target; when the desired foothold drifts too far (and the gait phase,
// cooldown, and per-side concurrency limit allow it) the leg swings to a new
// target along a lifted arc. Every foot write is clamped into the leg's reach
// annulus with [ProjectToReach], so a foot is always between MinReach and
// MaxReach from its shoulder.
//
// # Scripts
//
// [LoadScript] parses JSON input scripts (pointer moves tweened with gween,
// waits, resizes, snapshot requests) and [Play] runs them headless on a
// manual clock, which is how the render command and many tests drive the
// simulation.
package skitter
