package bezier

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// BoundingBox is an axis-aligned box given by two opposite corners.
// Degenerate (zero-area) boxes are valid.
type BoundingBox struct {
	Min Pair // corner with smallest x and y
	Max Pair // corner with largest x and y
}

// NewBoundingBox normalizes two arbitrary opposite corners into a box.
func NewBoundingBox(p1, p2 Pair) BoundingBox {
	return BoundingBox{
		Min: P(math.Min(p1.X(), p2.X()), math.Min(p1.Y(), p2.Y())),
		Max: P(math.Max(p1.X(), p2.X()), math.Max(p1.Y(), p2.Y())),
	}
}

func (box BoundingBox) String() string {
	return fmt.Sprintf("[%s --- %s]", box.Min, box.Max)
}

// Intersects is a predicate: do two boxes overlap? Touching boxes overlap.
func (box BoundingBox) Intersects(other BoundingBox) bool {
	if box.Max.X() < other.Min.X() || other.Max.X() < box.Min.X() {
		return false
	}
	if box.Max.Y() < other.Min.Y() || other.Max.Y() < box.Min.Y() {
		return false
	}
	return true
}

// Diagonal is the length of the box diagonal.
func (box BoundingBox) Diagonal() float64 {
	return (box.Max - box.Min).Norm()
}

// Center is the midpoint of the box.
func (box BoundingBox) Center() Pair {
	return (box.Min + box.Max).Scaled(0.5)
}

// Contains is a predicate: does the box contain point p? Boundary points
// are contained.
func (box BoundingBox) Contains(p Pair) bool {
	return p.X() >= box.Min.X() && p.X() <= box.Max.X() &&
		p.Y() >= box.Min.Y() && p.Y() <= box.Max.Y()
}

// Extended returns the box grown by eps on every side.
func (box BoundingBox) Extended(eps float64) BoundingBox {
	return BoundingBox{
		Min: box.Min - P(eps, eps),
		Max: box.Max + P(eps, eps),
	}
}

// box over the rows of an N x 2 control-point matrix.
func pointsBox(points *mat.Dense) BoundingBox {
	rows, _ := points.Dims()
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for k := 0; k < rows; k++ {
		x, y := points.At(k, 0), points.At(k, 1)
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	return BoundingBox{Min: P(minX, minY), Max: P(maxX, maxY)}
}

// box over a list of pairs.
func pairsBox(points []Pair) BoundingBox {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X()), math.Max(maxX, p.X())
		minY, maxY = math.Min(minY, p.Y()), math.Max(maxY, p.Y())
	}
	return BoundingBox{Min: P(minX, minY), Max: P(maxX, maxY)}
}
