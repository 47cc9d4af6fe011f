package bezier

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Polyline returns a piecewise-linear approximation of the curve whose
// maximum deviation from the true curve is governed by flatness (smaller
// is finer). The result is cached together with the flatness used to build
// it; a request with a materially different flatness recomputes it. The
// returned slice is the cache itself and must be treated read-only, like
// the matrix handles of a Basis; callers wanting to modify it copy first.
func (c *Curve) Polyline(flatness float64) []Pair {
	if c.cache.polyline == nil || math.Abs(c.cache.polylineFlatness-flatness) >= 1e-10 {
		polyline := []Pair{c.pairAt(0)}
		if c.n == 2 {
			polyline = append(polyline, c.pairAt(1))
		} else if c.n > 2 {
			polyline = c.flatten(polyline, flatness)
		}
		c.cache.polyline = polyline
		c.cache.polylineFlatness = flatness
	}
	return c.cache.polyline
}

// Depth-first subdivision over an explicit stack of subcurve control-point
// matrices. A subcurve is accepted once the binomial-weighted offsets of
// its interior control points from the endpoint chord stay within
// 16·flatness²; otherwise it is split at the midpoint, right half pushed
// first so the output points come in increasing parameter order.
func (c *Curve) flatten(polyline []Pair, flatness float64) []Pair {
	n := c.n
	subcurves := []*mat.Dense{c.points}
	weights := make([]float64, n-2)
	for k := 1; k <= n-2; k++ {
		weights[k-1] = binomial(n-1, k)
	}
	limit := 16 * flatness * flatness

	for len(subcurves) > 0 {
		cp := subcurves[len(subcurves)-1]
		subcurves = subcurves[:len(subcurves)-1]

		stepX := (cp.At(n-1, 0) - cp.At(0, 0)) / float64(n-1)
		stepY := (cp.At(n-1, 1) - cp.At(0, 1)) / float64(n-1)
		maxX, maxY := 0.0, 0.0
		for k := 1; k <= n-2; k++ {
			dx := weights[k-1] * (cp.At(k, 0) - cp.At(0, 0) - float64(k)*stepX)
			dy := weights[k-1] * (cp.At(k, 1) - cp.At(0, 1) - float64(k)*stepY)
			maxX = math.Max(maxX, dx*dx)
			maxY = math.Max(maxY, dy*dy)
		}

		if maxX+maxY <= limit {
			polyline = append(polyline, P(cp.At(n-1, 0), cp.At(n-1, 1)))
		} else {
			var left, right mat.Dense
			left.Mul(c.basis.SplittingLeft(n, 0.5), cp)
			right.Mul(c.basis.SplittingRight(n, 0.5), cp)
			subcurves = append(subcurves, &right, &left)
		}
	}
	return polyline
}
