package bezier

import (
	"sort"

	"gonum.org/v1/gonum/mat"
)

// a pair of curve segments still suspected of intersecting
type segmentPair struct {
	a, b *mat.Dense
}

// Intersections returns the points where two curves cross, to a precision
// of epsilon. Passing the receiver itself finds self-intersections. The
// search recursively clips segment pairs by their bounding boxes: pairs
// with disjoint boxes are discarded, pairs whose boxes both shrank below
// epsilon have converged to an intersection point, all others are
// subdivided. Exactly tangential or overlapping curves may yield fewer
// points than geometrically exist.
func (c *Curve) Intersections(other *Curve, epsilon float64) []Pair {
	var worklist []segmentPair
	if c != other {
		worklist = append(worklist, segmentPair{a: c.points, b: other.points})
	} else {
		worklist = c.selfIntersectionPairs(epsilon)
	}
	return c.clipPairs(worklist, epsilon)
}

// SelfIntersections returns the points where the curve crosses itself.
func (c *Curve) SelfIntersections(epsilon float64) []Pair {
	return c.Intersections(c, epsilon)
}

// For self-intersection the curve is cut at its extrema into monotone-ish
// segments first. Each cut is approached from an epsilon offset on both
// sides, so a tangential self-touch at the cut does not register as a
// spurious intersection of neighboring segments. All unordered segment
// pairs become work items.
func (c *Curve) selfIntersectionPairs(epsilon float64) []segmentPair {
	ts := append([]float64(nil), c.Extrema()...)
	sort.Float64s(ts)

	var subcurves []*mat.Dense
	for k := 0; k < len(ts); k++ {
		remainder := c.points
		if len(subcurves) > 0 {
			remainder = subcurves[len(subcurves)-1]
			subcurves = subcurves[:len(subcurves)-1]
		}
		var left, right mat.Dense
		left.Mul(c.basis.SplittingLeft(c.n, ts[k]-epsilon/2), remainder)
		right.Mul(c.basis.SplittingRight(c.n, ts[k]+epsilon/2), remainder)
		subcurves = append(subcurves, &left, &right)

		// remaining split parameters lie in the right part; renormalize
		for i := k + 1; i < len(ts); i++ {
			ts[i] = (ts[i] - ts[k]) / (1 - ts[k])
		}
	}

	var pairs []segmentPair
	for k := 0; k < len(subcurves); k++ {
		for i := k + 1; i < len(subcurves); i++ {
			pairs = append(pairs, segmentPair{a: subcurves[k], b: subcurves[i]})
		}
	}
	tracer().Debugf("self-intersection search over %d segment pair(s)", len(pairs))
	return pairs
}

func (c *Curve) clipPairs(worklist []segmentPair, epsilon float64) []Pair {
	var points []Pair

	for len(worklist) > 0 {
		pair := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		boxA := pointsBox(pair.a)
		boxB := pointsBox(pair.b)
		if !boxA.Intersects(boxB) {
			continue
		}

		if boxA.Diagonal() < epsilon && boxB.Diagonal() < epsilon {
			// converged; deduplicate against found points
			point := boxA.Center()
			known := false
			for _, p := range points {
				if (p - point).Norm() < epsilon {
					known = true
					break
				}
			}
			if !known {
				points = append(points, point)
			}
			continue
		}

		// boxes still overlap but are too large: halve whichever
		// segment has not converged yet and recombine
		halvesA := c.halveSegment(pair.a, boxA, epsilon)
		halvesB := c.halveSegment(pair.b, boxB, epsilon)
		for _, b := range halvesB {
			for _, a := range halvesA {
				worklist = append(worklist, segmentPair{a: a, b: b})
			}
		}
	}
	return points
}

func (c *Curve) halveSegment(cp *mat.Dense, box BoundingBox, epsilon float64) []*mat.Dense {
	if box.Diagonal() < epsilon {
		return []*mat.Dense{cp}
	}
	rows, _ := cp.Dims()
	var left, right mat.Dense
	left.Mul(c.basis.SplittingLeft(rows, 0.5), cp)
	right.Mul(c.basis.SplittingRight(rows, 0.5), cp)
	// right half first, so the smallest parameter ranges surface last
	return []*mat.Dense{&right, &left}
}
