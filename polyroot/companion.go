package polyroot

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// eigenvalues with an imaginary part below this are taken as real roots
const realRootTolerance = 1e-10

// drop exact-zero leading coefficients
func trimLeading(coeffs []float64) []float64 {
	k := 0
	for k < len(coeffs) && coeffs[k] == 0.0 {
		k++
	}
	return coeffs[k:]
}

// RealRoots returns all real roots of the polynomial with the given
// coefficients, highest degree first. Exact-zero leading coefficients are
// trimmed, exact-zero trailing coefficients are factored out as a root at
// zero. A constant polynomial has no roots. Roots are not restricted to any
// interval.
func RealRoots(coeffs []float64) []float64 {
	c := trimLeading(coeffs)
	roots := make([]float64, 0, len(c))
	zeros := 0
	for len(c) > 1 && c[len(c)-1] == 0.0 {
		c = c[:len(c)-1]
		zeros++
	}
	if zeros > 0 {
		roots = append(roots, 0.0)
	}
	d := len(c) - 1 // degree
	if d < 1 {
		return roots
	}
	if d == 1 {
		return append(roots, -c[1]/c[0])
	}
	// companion matrix: ones on the subdiagonal, negated monic
	// coefficients in the last column
	comp := mat.NewDense(d, d, nil)
	for i := 1; i < d; i++ {
		comp.Set(i, i-1, 1)
	}
	for i := 0; i < d; i++ {
		comp.Set(i, d-1, -c[d-i]/c[0])
	}
	var eig mat.Eigen
	if ok := eig.Factorize(comp, mat.EigenNone); !ok {
		tracer().Errorf("companion matrix eigen-decomposition failed for degree %d", d)
		return roots
	}
	for _, v := range eig.Values(nil) {
		if math.Abs(imag(v)) <= realRootTolerance*(1.0+math.Abs(real(v))) {
			roots = append(roots, real(v))
		}
	}
	return roots
}
