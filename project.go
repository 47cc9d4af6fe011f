package bezier

import (
	"github.com/npillmayer/bezier/polyroot"
)

// The squared distance of a point to the curve is extremal where
// (curve(t) - point) · curve'(t) = 0. The point-independent part of that
// polynomial -- the convolution of the curve's coordinate polynomials with
// the derivative's -- is cached; only the point-dependent term is
// subtracted per query.
func (c *Curve) projectionPolynomial(point Pair) []float64 {
	if c.cache.projPart == nil {
		curvePoly := c.polynomial()
		derivPoly := c.Derivative().polynomial()
		dRows, _ := derivPoly.Dims()

		part := make([]float64, c.n+dRows-1) // lowest degree first
		for k := 0; k < c.n; k++ {
			for j := 0; j < dRows; j++ {
				part[k+j] += derivPoly.At(j, 0)*curvePoly.At(k, 0) +
					derivPoly.At(j, 1)*curvePoly.At(k, 1)
			}
		}
		c.cache.projPart = part
		c.cache.projDeriv = derivPoly
	}

	polynomial := append([]float64(nil), c.cache.projPart...)
	dRows, _ := c.cache.projDeriv.Dims()
	for j := 0; j < dRows; j++ {
		polynomial[j] -= c.cache.projDeriv.At(j, 0)*point.X() +
			c.cache.projDeriv.At(j, 1)*point.Y()
	}
	return polynomial
}

// ProjectPoint returns the parameter of the curve point nearest to the
// given point. Candidates are the real roots of the distance-derivative
// polynomial restricted to [0,1], compared by Euclidean distance against
// both endpoints; the nearest wins. Self-intersecting curves are not
// specially handled.
func (c *Curve) ProjectPoint(point Pair) float64 {
	if c.n <= 1 {
		return 0.0
	}
	polynomial := c.projectionPolynomial(point)

	// highest degree first for the root finder
	coeffs := make([]float64, len(polynomial))
	for i, v := range polynomial {
		coeffs[len(polynomial)-1-i] = v
	}
	candidates := polyroot.RealRoots(coeffs)

	projection := 1.0
	if (point - c.ValueAt(0.0)).Norm() < (point - c.ValueAt(1.0)).Norm() {
		projection = 0.0
	}
	min := (point - c.ValueAt(projection)).Norm()
	for _, candidate := range candidates {
		if candidate < 0 || candidate > 1 {
			continue
		}
		if dist := (point - c.ValueAt(candidate)).Norm(); dist < min {
			projection = candidate
			min = dist
		}
	}
	return projection
}

// ProjectPoints projects a list of points, returning their parameters.
func (c *Curve) ProjectPoints(points []Pair) []float64 {
	ts := make([]float64, len(points))
	for k, point := range points {
		ts[k] = c.ProjectPoint(point)
	}
	return ts
}

// Distance returns the Euclidean distance of a point to the curve.
func (c *Curve) Distance(point Pair) float64 {
	return (point - c.ValueAt(c.ProjectPoint(point))).Norm()
}

// Distances returns the Euclidean distances of a list of points to the
// curve.
func (c *Curve) Distances(points []Pair) []float64 {
	dists := make([]float64, len(points))
	for k, point := range points {
		dists[k] = c.Distance(point)
	}
	return dists
}
