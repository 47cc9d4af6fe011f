package bezier

import (
	"fmt"
	"math"
	"math/cmplx"
)

// === Numeric Data Type =====================================================

// Deg2Rad is a constant for converting from DEG to RAD or vice versa
var Deg2Rad float64 = 0.01745329251

// Epsilon : numbers below ε are considered 0
var Epsilon float64 = 0.0000001

// DefaultFlatness is the default tolerance for polyline approximations.
var DefaultFlatness float64 = 1.0001

// DefaultEpsilon is the default precision for intersections and root
// isolation.
var DefaultEpsilon float64 = 0.001

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// Is1 is a predicate: is n = 1.0 ?
func Is1(n float64) bool {
	return math.Abs(1-n) <= Epsilon
}

// Zap makes n = 0 if n "means" to be zero
func Zap(n float64) float64 {
	if Is0(n) {
		n = 0
	}
	return n
}

// Round to ε.
func Round(n float64) float64 {
	return math.Round(n/Epsilon) * Epsilon
}

// === Pair Data Type ========================================================

// Pair is a 2D-point or vector.
type Pair complex128

// Origin represents the frequently used constant (0,0).
var Origin = P(float64(0), float64(0))

// Pretty Stringer for simple pairs.
func (p Pair) String() string {
	return fmt.Sprintf("(%g,%g)", real(p), imag(p))
}

// C returns a Pair as a complex number.
func (p Pair) C() complex128 {
	return complex128(p)
}

// C2P returns a Pair from a complex number.
func C2P(c complex128) Pair {
	if cmplx.IsNaN(c) || cmplx.IsInf(c) {
		tracer().Errorf("created pair for complex.NaN")
		return P(0, 0)
	}
	return P(real(c), imag(c))
}

// P is a quick notation for contructing a pair from floats.
func P(x, y float64) Pair {
	return Pair(complex(x, y))
}

// F is a quick notation for getting float values from a pair.
func (p Pair) F() (float64, float64) {
	px := real(p.C())
	py := imag(p.C())
	return px, py
}

// X is the x-part of a pair.
func (p Pair) X() float64 {
	return real(p.C())
}

// Y is the y-part of a pair.
func (p Pair) Y() float64 {
	return imag(p.C())
}

// Zap rounds x-part and y-part to Epsilon.
func (p Pair) Zap() Pair {
	p = P(Zap(p.X()), Zap(p.Y()))
	return p
}

// IsOrigin is a predicate: is this pair origin?
func (p Pair) IsOrigin() bool {
	return p.Equal(Origin)
}

// Equal compares two pairs.
func (p Pair) Equal(p2 Pair) bool {
	p2 = p2.Zap()
	return Is0(p.X()-p2.X()) && Is0(p.Y()-p2.Y())
}

// Scaled returns a new pair scaled by factor a.
func (p Pair) Scaled(a float64) Pair {
	return P(p.X()*a, p.Y()*a)
}

// XScaled returns a new pair x-scaled by factor a.
func (p Pair) XScaled(a float64) Pair {
	return P(p.X()*a, p.Y())
}

// YScaled returns a new pair y-scaled by factor a.
func (p Pair) YScaled(a float64) Pair {
	return P(p.X(), p.Y()*a)
}

// Shifted returns a new pair translated by v.
func (p Pair) Shifted(v Pair) Pair {
	T := Translation(v)
	return T.Transform(p)
}

// Rotated returns a new pair rotated around origin by theta (counterclockwise).
func (p Pair) Rotated(theta float64) Pair {
	T := Rotation(theta)
	return T.Transform(p)
}

// Rotatedaround returns a new pair rotated around v by theta (counterclockwise).
func (p Pair) Rotatedaround(v Pair, theta float64) Pair {
	return p.Shifted(-v).Rotated(theta).Shifted(v)
}

// Norm is the Euclidean length of p, seen as a vector.
func (p Pair) Norm() float64 {
	return cmplx.Abs(p.C())
}

// Dot is the dot product of p and p2, seen as vectors.
func (p Pair) Dot(p2 Pair) float64 {
	return p.X()*p2.X() + p.Y()*p2.Y()
}

// Cross is the z-component of the cross product of p and p2, seen as
// vectors. Its sign tells on which side of p the vector p2 lies.
func (p Pair) Cross(p2 Pair) float64 {
	return p.X()*p2.Y() - p.Y()*p2.X()
}
