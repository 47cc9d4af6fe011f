package bezier

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ApplyContinuity moves the leading control points of the curve so that its
// value and first k derivatives at t=0 match the trailing derivatives of
// the source curve at t=1, scaled by the supplied continuity (beta)
// coefficients. k is the number of coefficients. With all betas 1 this is
// parametric continuity; other values give geometric continuity of
// arbitrary order, via a Bell-polynomial composition of the reparametrized
// derivatives.
func (c *Curve) ApplyContinuity(source *Curve, betas []float64) error {
	cOrder := len(betas)
	if cOrder+1 > c.n {
		return fmt.Errorf("%w: %d constraints for %d control points", ErrContinuityOrder, cOrder+1, c.n)
	}

	// signed Pascal matrix as exponential of the subdiagonal generator
	gen := mat.NewDense(cOrder+1, cOrder+1, nil)
	for i := 1; i <= cOrder; i++ {
		gen.Set(i, i-1, -float64(i))
	}
	var pascal mat.Dense
	pascal.Exp(gen)

	// Bell composition matrix from the beta coefficients
	bell := mat.NewDense(cOrder+1, cOrder+1, nil)
	bell.Set(0, cOrder, 1)
	for i := 0; i < cOrder; i++ {
		for row := 0; row <= i; row++ {
			sum := 0.0
			for j := 0; j <= i; j++ {
				sum += bell.At(row, cOrder-i+j) * absf(pascal.At(i, j)) * betas[j]
			}
			bell.Set(row+1, cOrder-i-1, sum)
		}
	}

	factorials := mat.NewDense(cOrder+1, cOrder+1, nil)
	for i := 0; i <= cOrder; i++ {
		factorials.Set(i, i, factorial(c.n-1)/factorial(c.n-1-i))
	}

	// trailing derivatives of the source at t=1, one column per order
	derivatives := mat.NewDense(2, cOrder+1, nil)
	last := source.pairAt(source.n - 1)
	derivatives.Set(0, 0, last.X())
	derivatives.Set(1, 0, last.Y())
	d := source
	for i := 1; i <= cOrder; i++ {
		d = d.Derivative()
		p := d.pairAt(d.n - 1)
		derivatives.Set(0, i, p.X())
		derivatives.Set(1, i, p.Y())
	}

	var wanted mat.Dense
	wanted.Mul(derivatives, bell) // 2 x (cOrder+1)

	var scaled, inv, heads mat.Dense
	scaled.Mul(factorials, &pascal)
	if err := inv.Inverse(&scaled); err != nil {
		tracer().Errorf("continuity matrix inversion failed: %v", err)
		return err
	}
	// columns of wanted come highest-derivative-first; reverse and
	// transpose into one row per constrained control point
	reversed := mat.NewDense(cOrder+1, 2, nil)
	for i := 0; i <= cOrder; i++ {
		reversed.Set(i, 0, wanted.At(0, cOrder-i))
		reversed.Set(i, 1, wanted.At(1, cOrder-i))
	}
	heads.Mul(&inv, reversed)

	for i := 0; i <= cOrder; i++ {
		c.points.Set(i, 0, heads.At(i, 0))
		c.points.Set(i, 1, heads.At(i, 1))
	}
	c.resetCache()
	return nil
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
