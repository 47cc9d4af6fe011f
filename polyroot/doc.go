// Package polyroot isolates real roots of scalar polynomials.
/*

Two interchangeable strategies are provided, sharing one coefficient
convention (highest degree first):

RealRoots computes all real roots of a polynomial by eigen-decomposition of
its companion matrix. It is fast and is the workhorse behind curve extrema,
bounding boxes and nearest-point projection.

Roots isolates the roots lying in the interval [0,1] with a Sturm sequence:
the sign-change count of the chain evaluated at two points yields the exact
number of roots in between, so recursive bisection can never miss a root nor
count one twice, unlike naive sampling. Candidate intervals holding a single
root may additionally be classified by the local shape of the polynomial at
the root (convex, concave, or inflection), selected with a RootType mask.

The Sturm chain is the canonical polynomial remainder sequence. A near-zero
leading coefficient in a remainder would poison the usual quadratic-quotient
step, so that degeneracy falls back to pseudo-division with leading-term
trimming.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package polyroot

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'bezier.polyroot'
func tracer() tracing.Trace {
	return tracing.Select("bezier.polyroot")
}
