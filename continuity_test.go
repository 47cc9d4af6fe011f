package bezier

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestApplyContinuityC1(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	source := New([]Pair{P(0, 0), P(1, 2), P(2, 0)})
	c := New([]Pair{P(5, 5), P(6, 5), P(7, 6), P(8, 5)})
	if err := c.ApplyContinuity(source, []float64{1}); err != nil {
		t.Fatalf("ApplyContinuity failed: %v", err)
	}
	approxPair(t, c.ValueAt(0), source.ValueAt(1), 1e-9, "joined value")
	approxPair(t, c.DerivativeAt(0), source.DerivativeAt(1), 1e-9, "joined first derivative")
}

func TestApplyContinuityC2(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	source := New([]Pair{P(0, 0), P(1, 2), P(3, 2), P(4, 0)})
	c := New([]Pair{P(5, 5), P(6, 5), P(7, 6), P(8, 5)})
	if err := c.ApplyContinuity(source, []float64{1, 0}); err != nil {
		t.Fatalf("ApplyContinuity failed: %v", err)
	}
	approxPair(t, c.ValueAt(0), source.ValueAt(1), 1e-9, "joined value")
	approxPair(t, c.DerivativeAt(0), source.DerivativeAt(1), 1e-9, "joined first derivative")
	d2c := c.derivAt(2, 0)
	d2s := source.derivAt(2, 1)
	approxPair(t, d2c, d2s, 1e-9, "joined second derivative")
}

func TestApplyContinuityGeometric(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	source := New([]Pair{P(0, 0), P(1, 2), P(2, 0)})
	c := New([]Pair{P(5, 5), P(6, 5), P(7, 6), P(8, 5)})
	beta := 2.0
	if err := c.ApplyContinuity(source, []float64{beta}); err != nil {
		t.Fatalf("ApplyContinuity failed: %v", err)
	}
	approxPair(t, c.ValueAt(0), source.ValueAt(1), 1e-9, "joined value")
	// G¹ with beta 2: same tangent direction, doubled magnitude
	approxPair(t, c.DerivativeAt(0), source.DerivativeAt(1).Scaled(beta), 1e-9, "scaled first derivative")
}

func TestApplyContinuityOrderCheck(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	source := New([]Pair{P(0, 0), P(1, 2), P(2, 0)})
	line := New([]Pair{P(5, 5), P(6, 5)})
	if err := line.ApplyContinuity(source, []float64{1, 1, 1}); !errors.Is(err, ErrContinuityOrder) {
		t.Errorf("Expected ErrContinuityOrder, got %v", err)
	}
}
