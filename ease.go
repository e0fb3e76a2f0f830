package skitter

import (
	"strings"

	"github.com/tanema/gween/ease"
)

// EaseInOutQuad is the quadratic ease-in-out curve, mapping [0, 1] onto
// [0, 1] symmetrically about 0.5. Both endpoints are exact.
func EaseInOutQuad(t float64) float64 {
	return float64(ease.InOutQuad(float32(t), 0, 1, 1))
}

var easeNames = map[string]ease.TweenFunc{
	"linear":     ease.Linear,
	"inquad":     ease.InQuad,
	"outquad":    ease.OutQuad,
	"inoutquad":  ease.InOutQuad,
	"incubic":    ease.InCubic,
	"outcubic":   ease.OutCubic,
	"inoutcubic": ease.InOutCubic,
	"insine":     ease.InSine,
	"outsine":    ease.OutSine,
	"inoutsine":  ease.InOutSine,
	"outbounce":  ease.OutBounce,
	"outelastic": ease.OutElastic,
}

// EaseByName resolves an easing name such as "linear", "inOutQuad" or
// "outCubic" (case-insensitive). The empty name resolves to Linear.
func EaseByName(name string) (ease.TweenFunc, bool) {
	if name == "" {
		return ease.Linear, true
	}
	fn, ok := easeNames[strings.ToLower(name)]
	return fn, ok
}
