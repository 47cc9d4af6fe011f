package polyroot

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// RootType selects which roots the Sturm strategy reports, by the local
// shape of the polynomial at the root.
type RootType int

const (
	Convex     RootType = 1 // sign change from - to +
	Concave    RootType = 2 // sign change from + to -
	Inflection RootType = 4 // touching roots without sign change
	All        RootType = 8 // all roots, overpowers the other flags
)

// Chain generates the Sturm chain of the polynomial with the given
// coefficients, highest degree first. Row i of the result holds the i-th
// chain polynomial, right-aligned. The chain ends early when a remainder
// degenerates to a constant; epsilon governs the degeneracy tests.
func Chain(polynomial []float64, epsilon float64) *mat.Dense {
	n := len(polynomial)
	// two scratch columns keep the remainder indexing in bounds
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n+2)
	}
	copy(rows[0], polynomial)
	for j := 1; j < n; j++ {
		rows[1][j] = float64(n-j) * rows[0][j-1]
	}

	for i := 2; i < n; i++ {
		d2 := rows[i-2][i-2:]
		d1 := rows[i-1][i-1:]

		if math.Abs(norm(d1)-math.Abs(d1[len(d1)-3])) < epsilon {
			// previous remainder is essentially constant
			return chainMatrix(rows[:i], n)
		}

		if math.Abs(d1[0]) > epsilon {
			// deg d2 = deg d1 + 1: the quotient is linear
			T := d2[0] / d1[0]
			M := (d2[1] - T*d1[1]) / d1[0]
			for j := 0; j < n-i; j++ {
				rows[i][i+j] = -(d2[j+2] - M*d1[j+1] - T*d1[j+2])
			}
		} else {
			// near-zero leading coefficient: pseudo-division with
			// leading-term trimming
			a := trimLeading(clone(d2[:len(d2)-2]))
			b := trimLeading(clone(d1[:len(d1)-2]))
			r := a
			for len(r) > 0 && len(r) >= len(b) {
				L := r[0] / b[0]
				for k := 0; k < len(b); k++ {
					r[k] -= L * b[k]
				}
				r = trimLeading(r)
			}
			copy(rows[i][n-len(r):], r)
		}
	}
	return chainMatrix(rows, n)
}

func clone(v []float64) []float64 {
	return append([]float64(nil), v...)
}

func norm(v []float64) float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// strip the scratch columns
func chainMatrix(rows [][]float64, n int) *mat.Dense {
	chain := mat.NewDense(len(rows), n, nil)
	for i, row := range rows {
		for j := 0; j < n; j++ {
			chain.Set(i, j, row[j])
		}
	}
	return chain
}

// row i of the chain, evaluated at t (Horner, highest degree first)
func evalChainRow(chain *mat.Dense, i int, t float64) float64 {
	_, cols := chain.Dims()
	v := 0.0
	for j := 0; j < cols; j++ {
		v = v*t + chain.At(i, j)
	}
	return v
}

// CountInterval counts the roots of the chain's head polynomial in the
// interval (t1, t2]. The count is exact: the number of sign changes along
// the chain is monotone non-increasing in t, and drops by one at each root.
func CountInterval(chain *mat.Dense, t1, t2 float64) int {
	rows, _ := chain.Dims()
	count1, count2 := 0, 0
	prev1 := evalChainRow(chain, 0, t1)
	prev2 := evalChainRow(chain, 0, t2)
	for i := 1; i < rows; i++ {
		cur1 := evalChainRow(chain, i, t1)
		cur2 := evalChainRow(chain, i, t2)
		if math.Signbit(prev1) != math.Signbit(cur1) {
			count1++
		}
		if math.Signbit(prev2) != math.Signbit(cur2) {
			count2++
		}
		prev1, prev2 = cur1, cur2
	}
	return count1 - count2
}

// a candidate interval of the bisection; flagged means the root-type filter
// already accepted it
type interval struct {
	a, b    float64
	flagged bool
}

// Roots isolates all roots of the polynomial (coefficients highest degree
// first) in the interval [0, 1] by Sturm-chain bisection, to a precision of
// epsilon. Only roots matching the rootType mask are reported. Termination
// is guaranteed: each step halves the interval, and the exact root count of
// an interval never grows under shrinking.
func Roots(polynomial []float64, rootType RootType, epsilon float64) []float64 {
	chain := Chain(polynomial, epsilon)
	var stack []interval
	var roots []float64

	iterate := func(iv interval) {
		a, b, flag := iv.a, iv.b, iv.flagged
		ab := (a + b) / 2
		count := CountInterval(chain, a, b)
		if count != 0 && ab-a < epsilon {
			count = 1
		}
		if count == 0 {
			return
		}
		if count == 1 {
			if ab-a < epsilon {
				roots = append(roots, (a+ab)/2)
				return
			}
			if rootType != All && !flag {
				ga := evalChainRow(chain, 0, a)
				gb := evalChainRow(chain, 0, b)
				if rootType&All == 0 {
					if rootType&Convex != 0 && ga <= 0 && gb > 0 {
						flag = true
					}
					if rootType&Concave != 0 && ga > 0 && gb <= 0 {
						flag = true
					}
					if rootType&Inflection != 0 && ((ga >= 0 && gb >= 0) || (ga <= 0 && gb <= 0)) {
						flag = true
					}
					if !flag {
						return
					}
				}
			}
		}
		stack = append(stack, interval{a, ab, flag}, interval{ab, b, flag})
	}

	iterate(interval{0.0, 1.0, false})
	for len(stack) > 0 {
		iv := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		ab := (iv.a + iv.b) / 2
		iterate(interval{iv.a, ab, iv.flagged})
		iterate(interval{ab, iv.b, iv.flagged})
	}
	tracer().Debugf("isolated %d root(s) in [0,1]", len(roots))
	return roots
}
