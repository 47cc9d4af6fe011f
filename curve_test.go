package bezier

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func approx(t *testing.T, got, want, tol float64, what string) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %g, want %g (tol %g)", what, got, want, tol)
	}
}

func approxPair(t *testing.T, got, want Pair, tol float64, what string) {
	t.Helper()
	if (got - want).Norm() > tol {
		t.Errorf("%s = %s, want %s (tol %g)", what, got, want, tol)
	}
}

// the arch-like cubic used throughout: (0,0),(0,1),(1,1),(1,0)
func archCubic() *Curve {
	return New([]Pair{P(0, 0), P(0, 1), P(1, 1), P(1, 0)})
}

// a line-like cubic along the rising diagonal
func diagonalCubic() *Curve {
	return New([]Pair{P(0, 0), P(1.0/3, 1.0/3), P(2.0/3, 2.0/3), P(1, 1)})
}

func TestCubicScenario(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := archCubic()
	approxPair(t, c.ValueAt(0), P(0, 0), 1e-12, "ValueAt(0)")
	approxPair(t, c.ValueAt(1), P(1, 0), 1e-12, "ValueAt(1)")
	approxPair(t, c.ValueAt(0.5), P(0.5, 0.75), 1e-12, "ValueAt(0.5)")

	// y has its single extremum at t = 0.5
	interior := 0
	for _, ext := range c.Extrema() {
		if ext > 1e-6 && ext < 1-1e-6 {
			interior++
			approx(t, ext, 0.5, 1e-6, "interior extremum")
		}
	}
	if interior != 1 {
		t.Errorf("Expected exactly 1 interior extremum, got %d", interior)
	}

	box := c.BoundingBox(true)
	approxPair(t, box.Min, P(0, 0), 1e-9, "tight box min")
	approxPair(t, box.Max, P(1, 0.75), 1e-9, "tight box max")
}

func TestValueAtManyMatchesSingle(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := archCubic()
	ts := []float64{0, 0.1, 0.25, 0.5, 0.75, 0.9, 1}
	points := c.ValueAtMany(ts)
	for k, tp := range ts {
		approxPair(t, points[k], c.ValueAt(tp), 1e-12, "batched evaluation")
	}
}

func TestSplitContinuity(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := archCubic()
	z := 0.37
	left, right := c.SplitAt(z)
	approxPair(t, left.ValueAt(1), c.ValueAt(z), 1e-9, "left end")
	approxPair(t, right.ValueAt(0), c.ValueAt(z), 1e-9, "right start")
	for _, u := range []float64{0.2, 0.5, 0.8} {
		approxPair(t, left.ValueAt(u), c.ValueAt(u*z), 1e-9, "left reparametrization")
		approxPair(t, right.ValueAt(u), c.ValueAt(z+u*(1-z)), 1e-9, "right reparametrization")
	}
	// splitting must not alias the parent: mutate the parent and recheck
	if err := c.MoveControlPoint(1, P(5, 5)); err != nil {
		t.Fatalf("MoveControlPoint failed: %v", err)
	}
	approxPair(t, left.ValueAt(0), P(0, 0), 1e-12, "left is independent of parent")
}

func TestDerivativeExactness(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := archCubic()
	h := 1e-6
	for _, tp := range []float64{0.2, 0.5, 0.8} {
		fd := (c.ValueAt(tp+h) - c.ValueAt(tp-h)).Scaled(1 / (2 * h))
		approxPair(t, c.DerivativeAt(tp), fd, 1e-5, "derivative vs finite difference")
	}
}

func TestStraightLineHasZeroCurvature(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := diagonalCubic()
	for _, tp := range []float64{0.1, 0.5, 0.9} {
		approx(t, c.CurvatureAt(tp), 0, 1e-9, "line curvature")
	}
}

func TestDerivativeOrderZeroFails(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	if _, err := archCubic().DerivativeN(0); !errors.Is(err, ErrDerivativeOrderZero) {
		t.Errorf("Expected ErrDerivativeOrderZero, got %v", err)
	}
}

func TestTangentNormal(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := diagonalCubic()
	want := P(1/math.Sqrt2, 1/math.Sqrt2)
	approxPair(t, c.TangentAt(0.5, true), want, 1e-9, "normalized tangent")
	approxPair(t, c.NormalAt(0.5, true), P(-want.Y(), want.X()), 1e-9, "normal")

	// degenerate curve: zero tangent comes back unnormalized, no NaN
	point := New([]Pair{P(1, 1), P(1, 1)})
	tangent := point.TangentAt(0.5, true)
	if tangent != Origin {
		t.Errorf("Expected zero tangent for degenerate curve, got %s", tangent)
	}
}

func TestElevateLowerRoundTrip(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := archCubic()
	original := c.ControlPoints()
	c.ElevateOrder()
	if c.Order() != 4 {
		t.Fatalf("Expected order 4 after elevation, got %d", c.Order())
	}
	approxPair(t, c.ValueAt(0.3), archCubic().ValueAt(0.3), 1e-9, "shape after elevation")
	if err := c.LowerOrder(); err != nil {
		t.Fatalf("LowerOrder failed: %v", err)
	}
	for k, p := range c.ControlPoints() {
		approxPair(t, p, original[k], 1e-9, "round-tripped control point")
	}
}

func TestLowerOrderOnLineFails(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	line := New([]Pair{P(0, 0), P(1, 1)})
	if err := line.LowerOrder(); !errors.Is(err, ErrOrderTooLow) {
		t.Errorf("Expected ErrOrderTooLow, got %v", err)
	}
}

func TestReverse(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := archCubic()
	r := archCubic()
	r.Reverse()
	for _, tp := range []float64{0, 0.25, 0.5, 1} {
		approxPair(t, r.ValueAt(tp), c.ValueAt(1-tp), 1e-12, "reversed evaluation")
	}
}

func TestMoveControlPointChecksIndex(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := archCubic()
	if err := c.MoveControlPoint(4, P(0, 0)); !errors.Is(err, ErrControlPointIndex) {
		t.Errorf("Expected ErrControlPointIndex, got %v", err)
	}
	if _, err := c.ControlPoint(-1); !errors.Is(err, ErrControlPointIndex) {
		t.Errorf("Expected ErrControlPointIndex, got %v", err)
	}
}

func TestMutationInvalidatesCache(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := archCubic()
	before := c.BoundingBox(true)
	_ = c.Derivative()
	_ = c.Polyline(DefaultFlatness)
	if err := c.MoveControlPoint(1, P(0, 5)); err != nil {
		t.Fatalf("MoveControlPoint failed: %v", err)
	}
	after := c.BoundingBox(true)
	if after.Max.Y() <= before.Max.Y() {
		t.Errorf("Expected bounding box to grow after mutation: %s -> %s", before, after)
	}
	d := c.Derivative()
	approxPair(t, d.ValueAt(0), P(0, 15), 1e-12, "derivative after mutation")
}

func TestTransform(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := archCubic()
	c.Transform(Translation(P(2, -1)))
	approxPair(t, c.ValueAt(0), P(2, -1), 1e-12, "translated start")
	approxPair(t, c.ValueAt(0.5), P(2.5, -0.25), 1e-12, "translated midpoint")
	c.Transform(Scaling(2, 2))
	approxPair(t, c.ValueAt(0), P(4, -2), 1e-12, "scaled start")
}

func TestManipulateCurvatureQuadratic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := New([]Pair{P(0, 0), P(1, 2), P(2, 0)})
	target := P(1, 3)
	if err := c.ManipulateCurvature(0.5, target); err != nil {
		t.Fatalf("ManipulateCurvature failed: %v", err)
	}
	approxPair(t, c.ValueAt(0.5), target, 1e-9, "quadratic pass-through")
}

func TestManipulateCurvatureCubic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := archCubic()
	target := P(0.4, 1.2)
	if err := c.ManipulateCurvature(0.4, target); err != nil {
		t.Fatalf("ManipulateCurvature failed: %v", err)
	}
	approxPair(t, c.ValueAt(0.4), target, 1e-9, "cubic pass-through")
}

func TestManipulateCurvatureRejectsOrder(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	line := New([]Pair{P(0, 0), P(1, 1)})
	if err := line.ManipulateCurvature(0.5, P(1, 2)); !errors.Is(err, ErrCurvatureManipulation) {
		t.Errorf("Expected ErrCurvatureManipulation, got %v", err)
	}
	quintic := New([]Pair{P(0, 0), P(1, 1), P(2, 0), P(3, 1), P(4, 0), P(5, 1)})
	if err := quintic.ManipulateCurvature(0.5, P(1, 2)); !errors.Is(err, ErrCurvatureManipulation) {
		t.Errorf("Expected ErrCurvatureManipulation, got %v", err)
	}
}

func TestClone(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := archCubic()
	clone := c.Clone()
	approxPair(t, clone.ValueAt(0.37), c.ValueAt(0.37), 1e-12, "cloned curve value")
	if err := clone.MoveControlPoint(1, P(0, 9)); err != nil {
		t.Fatalf("MoveControlPoint failed: %v", err)
	}
	// mutating the clone must not write through to the original
	approxPair(t, c.ValueAt(0.5), P(0.5, 0.75), 1e-9, "original after clone mutation")
	if clone.ValueAt(0.5).Equal(c.ValueAt(0.5)) {
		t.Errorf("Expected clone to diverge after mutation")
	}
}
