package bezier

import (
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestBernsteinQuadratic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	// (1-t)² P0 + 2t(1-t) P1 + t² P2 in power form
	want := [3][3]float64{
		{1, 0, 0},
		{-2, 2, 0},
		{1, -2, 1},
	}
	coeffs := NewBasis().Bernstein(3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(coeffs.At(i, j)-want[i][j]) > 1e-12 {
				t.Errorf("Bernstein(3)[%d,%d] = %g, want %g", i, j, coeffs.At(i, j), want[i][j])
			}
		}
	}
}

func TestSplittingLinear(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	left := NewBasis().SplittingLeft(2, 0.5)
	want := [2][2]float64{
		{1, 0},
		{0.5, 0.5},
	}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if math.Abs(left.At(i, j)-want[i][j]) > 1e-12 {
				t.Errorf("SplittingLeft(2)[%d,%d] = %g, want %g", i, j, left.At(i, j), want[i][j])
			}
		}
	}
}

func TestBasisReferentialStability(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	b := NewBasis()
	if b.Bernstein(4) != b.Bernstein(4) {
		t.Errorf("Expected stable handle for Bernstein(4)")
	}
	if b.SplittingLeft(4, 0.5) != b.SplittingLeft(4, 0.5) {
		t.Errorf("Expected stable handle for SplittingLeft(4, 0.5)")
	}
	if b.ElevateOrder(4) != b.ElevateOrder(4) {
		t.Errorf("Expected stable handle for ElevateOrder(4)")
	}
	if b.LowerOrder(4) != b.LowerOrder(4) {
		t.Errorf("Expected stable handle for LowerOrder(4)")
	}
}

func TestBasisPrecompute(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	b := NewBasis()
	b.Precompute(6)
	rows, cols := b.ElevateOrder(6).Dims()
	if rows != 7 || cols != 6 {
		t.Errorf("ElevateOrder(6) has dims %dx%d, want 7x6", rows, cols)
	}
	rows, cols = b.LowerOrder(6).Dims()
	if rows != 5 || cols != 6 {
		t.Errorf("LowerOrder(6) has dims %dx%d, want 5x6", rows, cols)
	}
}
