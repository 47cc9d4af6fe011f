package bezier

import (
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

// order of the Gauss-Legendre rule for arc-length integration
const legendreGaussN = 30

// iteration bound for the arc-length inversion
const lengthMaxIter = 100

// Length returns the arc length of the whole curve.
func (c *Curve) Length() float64 {
	return c.LengthBetween(0.0, 1.0)
}

// LengthAt returns the arc length from the curve start to parameter t.
func (c *Curve) LengthAt(t float64) float64 {
	return c.LengthBetween(0.0, t)
}

// LengthBetween returns the arc length between two parameters, integrating
// the derivative's norm by fixed-order Gauss-Legendre quadrature.
func (c *Curve) LengthBetween(t1, t2 float64) float64 {
	if t1 == t2 {
		return 0
	}
	sign := 1.0
	if t2 < t1 {
		t1, t2 = t2, t1
		sign = -1
	}
	speed := func(t float64) float64 {
		return c.DerivativeAt(t).Norm()
	}
	return sign * quad.Fixed(speed, t1, t2, legendreGaussN, quad.Legendre{}, 0)
}

// IterateByLength returns the parameter of the point lying the signed arc
// length s away from the point at parameter t, along the curve. Arc length
// is inverted with Halley's method to precision epsilon. If the requested
// length leaves the curve, the result clamps to 0 or 1.
func (c *Curve) IterateByLength(t, s, epsilon float64) float64 {
	sT := c.LengthAt(t)
	if sT+s < 0 {
		return 0
	}
	if sT+s > c.Length() {
		return 1
	}

	f := -s
	for iter := 0; math.Abs(f) > epsilon && iter < lengthMaxIter; iter++ {
		fD := c.DerivativeAt(t).Norm()
		t -= (2 * f * fD) / (2*fD*fD - f*c.derivAt(2, t).Norm())
		f = c.LengthAt(t) - sT - s
	}
	return t
}
