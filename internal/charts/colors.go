package charts

import (
	"math"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

const fallbackColor = "#9E9E9E"

func hexColor(hex string) drawing.Color {
	if hex == "" {
		hex = fallbackColor
	}

	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

// lerpColor interpolates between the two gradient stops; t is clamped to [0,1].
func lerpColor(gradient [2]string, t float64) drawing.Color {
	if math.IsNaN(t) {
		return hexColor(fallbackColor)
	}

	t = math.Max(0, math.Min(1, t))
	from, to := hexColor(gradient[0]), hexColor(gradient[1])

	mix := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
	}

	return drawing.Color{R: mix(from.R, to.R), G: mix(from.G, to.G), B: mix(from.B, to.B), A: 255}
}

// valueRange returns the smallest and largest finite value; ok is false when there is none.
func valueRange(values []float64) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)

	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}

		lo, hi, ok = math.Min(lo, v), math.Max(hi, v), true
	}

	return lo, hi, ok
}

func normalize(v, lo, hi float64) float64 {
	if hi == lo {
		return 1
	}

	return (v - lo) / (hi - lo)
}
