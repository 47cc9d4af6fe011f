package bezier

import (
	"errors"
	"fmt"
	"math"

	"github.com/npillmayer/bezier/polyroot"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrDerivativeOrderZero indicates a request for a 0th derivative.
	ErrDerivativeOrderZero = errors.New("derivative order must not be zero")
	// ErrControlPointIndex indicates an out-of-range control point index.
	ErrControlPointIndex = errors.New("control point index out of range")
	// ErrCurvatureManipulation indicates curvature manipulation on an unsupported order.
	ErrCurvatureManipulation = errors.New("only quadratic and cubic curves can be manipulated")
	// ErrOrderTooLow indicates order lowering on a two-point curve.
	ErrOrderTooLow = errors.New("cannot further reduce curve order")
	// ErrContinuityOrder indicates more continuity constraints than control points.
	ErrContinuityOrder = errors.New("continuity order exceeds curve order")
)

// Curve is a planar Bézier curve of arbitrary order, defined by its control
// points. The control points are the sole source of truth; every derived
// quantity (derivative curve, roots, bounding boxes, polyline, projection
// polynomial) is computed lazily from them and cached until the next
// mutation. A Curve is single-owner: clients sharing one across goroutines
// provide their own synchronization.
type Curve struct {
	points *mat.Dense // N x 2 matrix, row k = control point k
	n      int        // number of control points (order + 1)
	basis  *Basis
	cache  curveCache
}

// All derived attributes live here, so a mutation invalidates them in one
// assignment, never piecemeal.
type curveCache struct {
	derivative       *Curve
	roots            []float64
	hasRoots         bool
	bboxTight        *BoundingBox
	bboxRelaxed      *BoundingBox
	polyline         []Pair
	polylineFlatness float64
	projPart         []float64 // point-independent projection polynomial, lowest degree first
	projDeriv        *mat.Dense
}

// New creates a curve from its control points.
func New(points []Pair) *Curve {
	m := mat.NewDense(maxInt(len(points), 1), 2, nil)
	for k, p := range points {
		m.Set(k, 0, p.X())
		m.Set(k, 1, p.Y())
	}
	return &Curve{points: m, n: len(points), basis: DefaultBasis}
}

// FromMatrix creates a curve from an N x 2 matrix where each row is a
// control point. The matrix is copied.
func FromMatrix(points *mat.Dense) *Curve {
	rows, cols := points.Dims()
	if cols != 2 {
		tracer().Errorf("control point matrix must have 2 columns, got %d", cols)
	}
	m := mat.NewDense(rows, 2, nil)
	m.Copy(points)
	return &Curve{points: m, n: rows, basis: DefaultBasis}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Clone returns an independent copy of the curve, without cached data.
func (c *Curve) Clone() *Curve {
	return FromMatrix(c.points)
}

func (c *Curve) String() string {
	s := ""
	for k := 0; k < c.n; k++ {
		if k > 0 {
			s += " .. "
		}
		s += c.pairAt(k).String()
	}
	return fmt.Sprintf("bezier[%s]", s)
}

// Order is the polynomial order of the curve: control point count - 1.
func (c *Curve) Order() int {
	return c.n - 1
}

// ControlPoints returns a copy of the control points.
func (c *Curve) ControlPoints() []Pair {
	points := make([]Pair, c.n)
	for k := 0; k < c.n; k++ {
		points[k] = c.pairAt(k)
	}
	return points
}

// ControlPoint returns the control point at the given index.
func (c *Curve) ControlPoint(idx int) (Pair, error) {
	if idx < 0 || idx >= c.n {
		return Origin, fmt.Errorf("%w: %d of %d", ErrControlPointIndex, idx, c.n)
	}
	return c.pairAt(idx), nil
}

// EndPoints returns the first and last control point, which the curve
// interpolates.
func (c *Curve) EndPoints() (Pair, Pair) {
	return c.pairAt(0), c.pairAt(c.n - 1)
}

func (c *Curve) pairAt(k int) Pair {
	return P(c.points.At(k, 0), c.points.At(k, 1))
}

func (c *Curve) setPair(k int, p Pair) {
	c.points.Set(k, 0, p.X())
	c.points.Set(k, 1, p.Y())
}

// resetCache drops all derived data in one step. Every mutating operation
// calls this before returning.
func (c *Curve) resetCache() {
	rows, _ := c.points.Dims()
	c.n = rows
	c.cache = curveCache{}
}

// coordinate polynomial matrix: Bernstein basis times control points.
// Row i holds the coefficients of t^i for both axes.
func (c *Curve) polynomial() *mat.Dense {
	var poly mat.Dense
	poly.Mul(c.basis.Bernstein(c.n), c.points)
	return &poly
}

// coefficients of one axis, highest degree first, for the root finder
func polyColumn(poly *mat.Dense, axis int) []float64 {
	rows, _ := poly.Dims()
	coeffs := make([]float64, rows)
	for i := 0; i < rows; i++ {
		coeffs[i] = poly.At(rows-1-i, axis)
	}
	return coeffs
}

// === Evaluation ============================================================

// ValueAt evaluates the curve at parameter t. The curve is defined for
// t in [0,1]; values outside are the polynomial's continuation, without
// clamping. A curve without control points evaluates to origin.
func (c *Curve) ValueAt(t float64) Pair {
	if c.n == 0 {
		return Origin
	}
	pow := mat.NewDense(1, c.n, nil)
	tk := 1.0
	for i := 0; i < c.n; i++ {
		pow.Set(0, i, tk)
		tk *= t
	}
	var val mat.Dense
	val.Mul(pow, c.polynomial())
	return P(val.At(0, 0), val.At(0, 1))
}

// ValueAtMany evaluates the curve at a list of parameters. The result is
// numerically identical to repeated ValueAt calls.
func (c *Curve) ValueAtMany(ts []float64) []Pair {
	points := make([]Pair, 0, len(ts))
	if len(ts) == 0 {
		return points
	}
	if c.n == 0 {
		for range ts {
			points = append(points, Origin)
		}
		return points
	}
	pow := mat.NewDense(len(ts), c.n, nil)
	for k, t := range ts {
		tk := 1.0
		for i := 0; i < c.n; i++ {
			pow.Set(k, i, tk)
			tk *= t
		}
	}
	var vals mat.Dense
	vals.Mul(pow, c.polynomial())
	for k := range ts {
		points = append(points, P(vals.At(k, 0), vals.At(k, 1)))
	}
	return points
}

// === Differentiation =======================================================

// Derivative returns the derivative curve: the (N-1)-point curve whose
// control points are N-1 times the difference of consecutive control
// points. This is the exact polynomial derivative in the lower-order
// Bernstein basis, not a numerical estimate. The result is an independent
// curve, cached until the next mutation.
func (c *Curve) Derivative() *Curve {
	if c.cache.derivative == nil {
		if c.n <= 1 {
			c.cache.derivative = New([]Pair{Origin})
		} else {
			pts := mat.NewDense(c.n-1, 2, nil)
			scale := float64(c.n - 1)
			for k := 0; k < c.n-1; k++ {
				pts.Set(k, 0, scale*(c.points.At(k+1, 0)-c.points.At(k, 0)))
				pts.Set(k, 1, scale*(c.points.At(k+1, 1)-c.points.At(k, 1)))
			}
			c.cache.derivative = &Curve{points: pts, n: c.n - 1, basis: c.basis}
		}
	}
	return c.cache.derivative
}

// DerivativeN chains Derivative n times. n = 0 is an error.
func (c *Curve) DerivativeN(n int) (*Curve, error) {
	if n == 0 {
		return nil, ErrDerivativeOrderZero
	}
	d := c.Derivative()
	for k := 1; k < n; k++ {
		d = d.Derivative()
	}
	return d, nil
}

// DerivativeAt evaluates the first derivative at t.
func (c *Curve) DerivativeAt(t float64) Pair {
	return c.Derivative().ValueAt(t)
}

// DerivativeNAt evaluates the n-th derivative at t. n = 0 is an error.
func (c *Curve) DerivativeNAt(n int, t float64) (Pair, error) {
	d, err := c.DerivativeN(n)
	if err != nil {
		return Origin, err
	}
	return d.ValueAt(t), nil
}

// nth derivative value for internal closed-form combinations
func (c *Curve) derivAt(n int, t float64) Pair {
	d := c.Derivative()
	for k := 1; k < n; k++ {
		d = d.Derivative()
	}
	return d.ValueAt(t)
}

// TangentAt returns the tangent vector at t. A zero-length tangent is
// returned unnormalized.
func (c *Curve) TangentAt(t float64, normalize bool) Pair {
	p := c.DerivativeAt(t)
	if normalize && p.Norm() > 0 {
		p = p.Scaled(1 / p.Norm())
	}
	return p
}

// NormalAt returns the normal vector at t: the tangent rotated by 90°
// counterclockwise.
func (c *Curve) NormalAt(t float64, normalize bool) Pair {
	tangent := c.TangentAt(t, normalize)
	return P(-tangent.Y(), tangent.X())
}

// CurvatureAt returns the signed curvature of the curve at t.
func (c *Curve) CurvatureAt(t float64) float64 {
	d1 := c.derivAt(1, t)
	d2 := c.derivAt(2, t)
	return d1.Cross(d2) / math.Pow(d1.Norm(), 3)
}

// CurvatureDerivativeAt returns the derivative of the signed curvature
// with respect to the curve parameter, at t.
func (c *Curve) CurvatureDerivativeAt(t float64) float64 {
	d1 := c.derivAt(1, t)
	d2 := c.derivAt(2, t)
	d3 := c.derivAt(3, t)
	return d1.Cross(d3)/math.Pow(d1.Norm(), 3) -
		3*d1.Dot(d2)*d1.Cross(d2)/math.Pow(d1.Norm(), 5)
}

// === Roots and bounding box ================================================

// Roots returns the parameter values in [0,1] where either coordinate
// polynomial of the curve vanishes, found by companion-matrix
// eigen-decomposition. The result is cached.
func (c *Curve) Roots() []float64 {
	if !c.cache.hasRoots {
		roots := make([]float64, 0, 2*c.n)
		if c.n > 1 {
			poly := c.polynomial()
			for axis := 0; axis < 2; axis++ {
				for _, t := range polyroot.RealRoots(polyColumn(poly, axis)) {
					if t >= 0 && t <= 1 {
						roots = append(roots, t)
					}
				}
			}
		}
		c.cache.roots = roots
		c.cache.hasRoots = true
	}
	return c.cache.roots
}

// Extrema returns the parameter values in [0,1] where a coordinate's
// derivative vanishes.
func (c *Curve) Extrema() []float64 {
	return c.Derivative().Roots()
}

// BoundingBox returns the axis-aligned bounding box of the curve. With
// useRoots the box is tight: it spans the curve values at the extrema plus
// both endpoints. Without, it is the relaxed hull of the control points.
// Both variants are cached.
func (c *Curve) BoundingBox(useRoots bool) BoundingBox {
	if !useRoots {
		if c.cache.bboxRelaxed == nil {
			box := pointsBox(c.points)
			c.cache.bboxRelaxed = &box
		}
		return *c.cache.bboxRelaxed
	}
	if c.cache.bboxTight == nil {
		extremes := c.ValueAtMany(c.Extrema())
		extremes = append(extremes, c.pairAt(0), c.pairAt(c.n-1))
		box := pairsBox(extremes)
		c.cache.bboxTight = &box
	}
	return *c.cache.bboxTight
}

// === Splitting =============================================================

// SplitAt splits the curve at parameter z into two independent curves of
// the same order, jointly covering the original shape.
func (c *Curve) SplitAt(z float64) (*Curve, *Curve) {
	var left, right mat.Dense
	left.Mul(c.basis.SplittingLeft(c.n, z), c.points)
	right.Mul(c.basis.SplittingRight(c.n, z), c.points)
	return FromMatrix(&left), FromMatrix(&right)
}

// Split splits the curve at the parametric midpoint.
func (c *Curve) Split() (*Curve, *Curve) {
	return c.SplitAt(0.5)
}

// === Mutation ==============================================================

// Reverse inverts the control point order, reversing the parameter
// direction of the curve.
func (c *Curve) Reverse() {
	for k := 0; k < c.n/2; k++ {
		i, j := k, c.n-1-k
		pi, pj := c.pairAt(i), c.pairAt(j)
		c.setPair(i, pj)
		c.setPair(j, pi)
	}
	c.resetCache()
}

// MoveControlPoint sets new coordinates for one control point.
func (c *Curve) MoveControlPoint(idx int, point Pair) error {
	if idx < 0 || idx >= c.n {
		return fmt.Errorf("%w: %d of %d", ErrControlPointIndex, idx, c.n)
	}
	c.setPair(idx, point)
	c.resetCache()
	return nil
}

// Transform applies an affine transform to every control point.
func (c *Curve) Transform(m AT) {
	for k := 0; k < c.n; k++ {
		c.setPair(k, m.Transform(c.pairAt(k)))
	}
	c.resetCache()
}

// ElevateOrder raises the curve order by one. The shape is retained
// exactly.
func (c *Curve) ElevateOrder() {
	var points mat.Dense
	points.Mul(c.basis.ElevateOrder(c.n), c.points)
	c.points = &points
	c.resetCache()
}

// LowerOrder reduces the curve order by one. If the shape cannot be
// described by the lower order, the result is its least-squares best
// approximation. Lowering a two-point curve is an error.
func (c *Curve) LowerOrder() error {
	if c.n == 2 {
		return ErrOrderTooLow
	}
	var points mat.Dense
	points.Mul(c.basis.LowerOrder(c.n), c.points)
	c.points = &points
	c.resetCache()
	return nil
}

// ManipulateCurvature moves the interior control points so that the curve
// passes through the given point at parameter t. Only quadratic and cubic
// curves can be manipulated; the quadratic case back-solves the single
// interior point in closed form, the cubic case matches first derivatives
// on both sides of t.
func (c *Curve) ManipulateCurvature(t float64, point Pair) error {
	if c.n < 3 || c.n > 4 {
		return fmt.Errorf("%w: order %d", ErrCurvatureManipulation, c.n-1)
	}
	e := float64(c.n - 1)
	tn := math.Pow(t, e)
	sn := math.Pow(1-t, e)
	r := math.Abs((tn + sn - 1) / (tn + sn))
	u := sn / (tn + sn)
	first, last := c.pairAt(0), c.pairAt(c.n-1)
	C := first.Scaled(u) + last.Scaled(1-u)
	B := point
	A := B - (C - B).Scaled(1 / r)

	switch c.n {
	case 3:
		c.setPair(1, A)
	case 4:
		p0, p1, p2, p3 := c.pairAt(0), c.pairAt(1), c.pairAt(2), c.pairAt(3)
		e1 := p0.Scaled((1-t)*(1-t)) + p1.Scaled(2*t*(1-t)) + p2.Scaled(t*t)
		e2 := p1.Scaled((1-t)*(1-t)) + p2.Scaled(2*t*(1-t)) + p3.Scaled(t*t)
		v := c.ValueAt(t)
		e1 = B + e1 - v
		e2 = B + e2 - v
		v1 := A - (A - e1).Scaled(1 / (1 - t))
		v2 := A + (e2 - A).Scaled(1 / t)
		c.setPair(1, p0+(v1-p0).Scaled(1/t))
		c.setPair(2, p3-(p3-v2).Scaled(1/(1-t)))
	}
	c.resetCache()
	return nil
}
