// Package bezier implements an algebra engine for planar Bézier curves of
// arbitrary order.
/*

A curve is defined by an ordered set of control points; every other quantity
is derived from them. The package computes curve values and derivatives,
curvature, arc length, axis-aligned bounding boxes, polyline approximations,
curve/curve and self-intersections, nearest-point projection, and degree
elevation/reduction. Derived quantities are cached per curve and recomputed
lazily after a mutation.

The engine follows the matrix formulation of Bézier curves: a curve value is
a power-basis row vector times the Bernstein change-of-basis matrix times the
control-point matrix. The per-order coefficient matrices (Bernstein basis,
subdivision, degree elevation and reduction) depend on the order only and are
computed once per order, process-wide.

Sources of information for the employed algorithms:

   A Primer on Bézier Curves -- Mike "Pomax" Kamermans
   https://pomax.github.io/bezierinfo/

   Curves and Surfaces for CAGD: A Practical Guide -- Gerald Farin
   Morgan Kaufmann, 5th edition, 2001

   Improved Algebraic Algorithm On Point Projection For Bézier Curves
   Xiao-Diao Chen et al., 2nd International Multi-Symposium on
   Computer and Computational Sciences, 2007

Root isolation for coordinate polynomials comes in two flavors, living in
subpackage polyroot: a companion-matrix eigenvalue solver used for extrema,
bounding boxes and point projection, and a Sturm-sequence bisection used when
exact root counts or root-shape classification are needed.

Concurrency

Queries are pure; mutating operations invalidate the per-curve cache before
they return. A single Curve must not be mutated concurrently -- instances
are single-owner and clients provide external synchronization if they share
one. The process-wide coefficient tables are populated lazily behind a lock
and are safe for concurrent readers.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package bezier

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'bezier'
func tracer() tracing.Trace {
	return tracing.Select("bezier")
}
