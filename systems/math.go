package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// clampFloat clamps v between minVal and maxVal.
func clampFloat(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// finite reports whether both components of v are finite.
func finite(v r2.Vec) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// direction returns the unit vector of v, or the zero vector when v has no
// usable length.
func direction(v r2.Vec) r2.Vec {
	n := r2.Norm(v)
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return r2.Vec{}
	}
	return r2.Scale(1/n, v)
}
