package bezier

import (
	"math"
	"sync"

	"github.com/emirpasic/gods/maps/treemap"
	"gonum.org/v1/gonum/mat"
)

func factorial(k int) float64 {
	return math.Gamma(float64(k) + 1)
}

func binomial(n, k int) float64 {
	return factorial(n) / (factorial(k) * factorial(n-k))
}

// Basis caches the per-order coefficient matrices of the Bernstein form:
// the power-to-Bernstein change of basis, the subdivision matrices for a
// split at t=0.5, and the degree elevation/reduction matrices. The tables
// are keyed by point count (order+1), populated on first use, and never
// invalidated. All methods are safe for concurrent use.
//
// Returned matrices are shared handles: callers must treat them as
// read-only. The same key yields the same matrix on every call.
type Basis struct {
	mx         sync.RWMutex
	bernstein  *treemap.Map // point count -> n x n change of basis
	splitLeft  *treemap.Map // point count -> n x n subdivision, t = [0, 0.5]
	splitRight *treemap.Map // point count -> n x n subdivision, t = [0.5, 1]
	elevate    *treemap.Map // point count -> (n+1) x n degree elevation
	lower      *treemap.Map // point count -> (n-1) x n degree reduction
}

// NewBasis creates an empty set of coefficient tables.
func NewBasis() *Basis {
	return &Basis{
		bernstein:  treemap.NewWithIntComparator(),
		splitLeft:  treemap.NewWithIntComparator(),
		splitRight: treemap.NewWithIntComparator(),
		elevate:    treemap.NewWithIntComparator(),
		lower:      treemap.NewWithIntComparator(),
	}
}

// DefaultBasis is the process-wide table set shared by all curves.
var DefaultBasis = NewBasis()

func (b *Basis) lookup(tm *treemap.Map, n int) *mat.Dense {
	b.mx.RLock()
	defer b.mx.RUnlock()
	if v, ok := tm.Get(n); ok {
		return v.(*mat.Dense)
	}
	return nil
}

// store keeps the first matrix ever put for key n, so that handles stay
// referentially stable even if two goroutines computed one concurrently.
func (b *Basis) store(tm *treemap.Map, n int, m *mat.Dense) *mat.Dense {
	b.mx.Lock()
	defer b.mx.Unlock()
	if v, ok := tm.Get(n); ok {
		return v.(*mat.Dense)
	}
	tm.Put(n, m)
	return m
}

// Precompute populates all tables up to the given point count, for callers
// preferring eager table construction over first-use population.
func (b *Basis) Precompute(maxN int) {
	for n := 1; n <= maxN; n++ {
		b.Bernstein(n)
		b.SplittingLeft(n, 0.5)
		b.SplittingRight(n, 0.5)
		b.ElevateOrder(n)
		if n > 2 {
			b.LowerOrder(n)
		}
	}
}

// Bernstein returns the n x n matrix M with p(t) = [1 t ... t^(n-1)] M P
// for an n-point curve with control-point matrix P.
func (b *Basis) Bernstein(n int) *mat.Dense {
	if m := b.lookup(b.bernstein, n); m != nil {
		return m
	}
	// exp of the subdiagonal generator yields the signed Pascal matrix
	gen := mat.NewDense(n, n, nil)
	for i := 1; i < n; i++ {
		gen.Set(i, i-1, -float64(i))
	}
	var coeffs mat.Dense
	coeffs.Exp(gen)
	for k := 0; k < n; k++ {
		bin := binomial(n-1, k)
		for j := 0; j < n; j++ {
			coeffs.Set(k, j, coeffs.At(k, j)*bin)
		}
	}
	return b.store(b.bernstein, n, &coeffs)
}

// SplittingLeft returns the subdivision matrix producing the control points
// of the subcurve t = [0, z]. The matrix for z = 0.5 is cached; other split
// parameters are computed on demand.
func (b *Basis) SplittingLeft(n int, z float64) *mat.Dense {
	if z == 0.5 {
		if m := b.lookup(b.splitLeft, n); m != nil {
			return m
		}
		return b.store(b.splitLeft, n, b.computeSplittingLeft(n, z))
	}
	return b.computeSplittingLeft(n, z)
}

func (b *Basis) computeSplittingLeft(n int, z float64) *mat.Dense {
	diag := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		diag.Set(i, i, math.Pow(z, float64(i)))
	}
	bc := b.Bernstein(n)
	var inv, tmp, coeffs mat.Dense
	if err := inv.Inverse(bc); err != nil {
		tracer().Errorf("Bernstein matrix inversion failed: %v", err)
	}
	tmp.Mul(diag, bc)
	coeffs.Mul(&inv, &tmp)
	return &coeffs
}

// SplittingRight returns the subdivision matrix producing the control
// points of the subcurve t = [z, 1].
func (b *Basis) SplittingRight(n int, z float64) *mat.Dense {
	if z == 0.5 {
		if m := b.lookup(b.splitRight, n); m != nil {
			return m
		}
		return b.store(b.splitRight, n, b.computeSplittingRight(n, z))
	}
	return b.computeSplittingRight(n, z)
}

func (b *Basis) computeSplittingRight(n int, z float64) *mat.Dense {
	left := b.SplittingLeft(n, z)
	coeffs := mat.NewDense(n, n, nil)
	for k := 0; k < n; k++ {
		for j := 0; j < n-k; j++ {
			coeffs.Set(k, k+j, left.At(n-1-k, j))
		}
	}
	return coeffs
}

// ElevateOrder returns the (n+1) x n matrix mapping an n-point curve onto
// the (n+1)-point curve of identical shape.
func (b *Basis) ElevateOrder(n int) *mat.Dense {
	if m := b.lookup(b.elevate, n); m != nil {
		return m
	}
	coeffs := mat.NewDense(n+1, n, nil)
	for i := 0; i < n; i++ {
		coeffs.Set(i, i, 1-float64(i)/float64(n))
		coeffs.Set(i+1, i, float64(i+1)/float64(n))
	}
	return b.store(b.elevate, n, coeffs)
}

// LowerOrder returns the (n-1) x n matrix mapping an n-point curve onto its
// least-squares best (n-1)-point approximation. It is the Moore-Penrose
// inverse of the elevation matrix, so elevating and lowering round-trips
// exactly.
func (b *Basis) LowerOrder(n int) *mat.Dense {
	if m := b.lookup(b.lower, n); m != nil {
		return m
	}
	elevate := b.ElevateOrder(n - 1) // n x (n-1)
	var gram, inv mat.Dense
	gram.Mul(elevate.T(), elevate)
	if err := inv.Inverse(&gram); err != nil {
		tracer().Errorf("degree reduction matrix inversion failed: %v", err)
	}
	coeffs := mat.NewDense(n-1, n, nil)
	coeffs.Mul(&inv, elevate.T())
	return b.store(b.lower, n, coeffs)
}
