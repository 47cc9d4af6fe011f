// Package polygon deals with closed polygons, in particular polygon
// approximations of closed Bézier curves, and boolean operations on them.
/*

Polygons are built with the same kind of builder pattern as paths:

   pg := polygon.NullPolygon().Knot(P(0,0)).Knot(P(1,3)).Knot(P(3,0)).Cycle()

A closed Bézier curve becomes a polygon through its polyline approximation:

   pg := polygon.FromCurve(curve, bezier.DefaultFlatness)

Boolean operations (union, intersection, difference) are delegated to the
polyclip-go implementation of the Martinez-Rueda-Feito algorithm and may
return more than one result polygon.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package polygon

import (
	"fmt"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/npillmayer/bezier"
	"github.com/npillmayer/schuko/tracing"
)

// L traces to trace with key 'bezier.polygon'
func L() tracing.Trace {
	return tracing.Select("bezier.polygon")
}

// Polygon is a planar polygon, open while being built, closed by Cycle.
type Polygon struct {
	points []bezier.Pair
	cycle  bool
}

// NullPolygon creates an empty polygon, the starting point of the builder.
func NullPolygon() *Polygon {
	return &Polygon{}
}

// Knot appends a vertex.
func (pg *Polygon) Knot(p bezier.Pair) *Polygon {
	pg.points = append(pg.points, p)
	return pg
}

// Cycle closes the polygon.
func (pg *Polygon) Cycle() *Polygon {
	pg.cycle = true
	return pg
}

// Box creates a rectangular polygon from two opposite corners.
func Box(p1, p2 bezier.Pair) *Polygon {
	box := bezier.NewBoundingBox(p1, p2)
	return NullPolygon().
		Knot(box.Min).
		Knot(bezier.P(box.Max.X(), box.Min.Y())).
		Knot(box.Max).
		Knot(bezier.P(box.Min.X(), box.Max.Y())).
		Cycle()
}

// FromCurve approximates a curve by its polyline and closes it into a
// polygon. If the curve's endpoints coincide, the duplicate terminal vertex
// is dropped; otherwise the closing edge is the endpoint chord.
func FromCurve(c *bezier.Curve, flatness float64) *Polygon {
	polyline := c.Polyline(flatness)
	if len(polyline) > 1 && polyline[0].Equal(polyline[len(polyline)-1]) {
		polyline = polyline[:len(polyline)-1]
	}
	pg := NullPolygon()
	for _, p := range polyline {
		pg.Knot(p)
	}
	return pg.Cycle()
}

// N is the number of vertices.
func (pg *Polygon) N() int {
	return len(pg.points)
}

// Pt returns vertex i.
func (pg *Polygon) Pt(i int) bezier.Pair {
	return pg.points[i]
}

// IsCycle is a predicate: has the polygon been closed?
func (pg *Polygon) IsCycle() bool {
	return pg.cycle
}

// AsString returns a polygon as a (debugging) string.
func AsString(pg *Polygon) string {
	s := ""
	for i, p := range pg.points {
		if i > 0 {
			s += " -- "
		}
		s += fmt.Sprintf("%s", p)
	}
	if pg.cycle {
		s += " -- cycle"
	}
	return s
}

// Area is the unsigned area of the polygon (shoelace formula).
func (pg *Polygon) Area() float64 {
	sum := 0.0
	n := pg.N()
	for i := 0; i < n; i++ {
		sum += pg.points[i].Cross(pg.points[(i+1)%n])
	}
	if sum < 0 {
		sum = -sum
	}
	return sum / 2
}

func (pg *Polygon) clipPolygon() polyclip.Polygon {
	contour := make(polyclip.Contour, 0, pg.N())
	for _, p := range pg.points {
		contour = append(contour, polyclip.Point{X: p.X(), Y: p.Y()})
	}
	return polyclip.Polygon{contour}
}

func wrap(clipped polyclip.Polygon) []*Polygon {
	result := make([]*Polygon, 0, len(clipped))
	for _, contour := range clipped {
		pg := NullPolygon()
		for _, p := range contour {
			pg.Knot(bezier.P(p.X, p.Y))
		}
		result = append(result, pg.Cycle())
	}
	return result
}

func (pg *Polygon) construct(op polyclip.Op, other *Polygon) []*Polygon {
	result := wrap(pg.clipPolygon().Construct(op, other.clipPolygon()))
	L().Debugf("boolean op yields %d polygon(s)", len(result))
	return result
}

// Union returns the union of two closed polygons. The result may consist
// of more than one polygon.
func (pg *Polygon) Union(other *Polygon) []*Polygon {
	return pg.construct(polyclip.UNION, other)
}

// Intersect returns the intersection of two closed polygons.
func (pg *Polygon) Intersect(other *Polygon) []*Polygon {
	return pg.construct(polyclip.INTERSECTION, other)
}

// Difference returns the difference of two closed polygons.
func (pg *Polygon) Difference(other *Polygon) []*Polygon {
	return pg.construct(polyclip.DIFFERENCE, other)
}
