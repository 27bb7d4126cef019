// Package geom provides the straight-line geometry used to decide whether two
// pipe connections cross.
//
// Connections are straight segments between fixed node positions. Two
// connections cross only when their segments meet strictly inside both
// segments; touching at a shared node is always legal.
//
// The model deliberately works with slope/intercept lines rather than a general
// orientation test:
//
//   - [LineOf] is undefined for vertical segments and returns [ErrVertical].
//     Topologies are validated at load time so that no two nodes share an
//     x-coordinate.
//   - [Intersects] reports false for lines with equal slopes. Parallel lines
//     never meet, and collinear overlapping segments are not detected either.
package geom

import (
	"errors"
	"fmt"
)

// ErrVertical is returned by [LineOf] when both points share an x-coordinate,
// which makes the slope undefined.
var ErrVertical = errors.New("vertical segment has no slope")

// Point is a fixed 2-D node position.
type Point struct {
	X float64
	Y float64
}

// String returns the point as "(x, y)".
func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Segment is the straight segment between two points.
type Segment struct {
	A Point
	B Point
}

// Line is the infinite line y = Slope*x + Intercept.
type Line struct {
	Slope     float64
	Intercept float64
}

// LineOf returns the line through p1 and p2.
func LineOf(p1, p2 Point) (Line, error) {
	if p1.X == p2.X {
		return Line{}, fmt.Errorf("%w: %v and %v", ErrVertical, p1, p2)
	}
	slope := (p2.Y - p1.Y) / (p2.X - p1.X)
	return Line{Slope: slope, Intercept: p1.Y - slope*p1.X}, nil
}

// Line returns the line through the segment's endpoints.
func (s Segment) Line() (Line, error) {
	return LineOf(s.A, s.B)
}

// Intersects reports whether segment sa (lying on la) and segment sb (lying on
// lb) cross. The intersection x-coordinate of the two lines must lie strictly
// between the endpoint x-coordinates of both segments, in either endpoint
// order. Lines with equal slopes never intersect.
func Intersects(la Line, sa Segment, lb Line, sb Segment) bool {
	if la.Slope == lb.Slope {
		return false
	}

	// Solve {-mA, 1; -mB, 1} . (x, y) = (bA, bB) for x.
	x := (la.Intercept - lb.Intercept) / (lb.Slope - la.Slope)

	return strictlyBetween(x, sa.A.X, sa.B.X) && strictlyBetween(x, sb.A.X, sb.B.X)
}

// SegmentsCross reports whether two segments cross. Segments sharing an
// endpoint never cross: for non-parallel lines the shared point is the only
// intersection, and it is not strictly inside either segment.
func SegmentsCross(a, b Segment) (bool, error) {
	if a.sharesEndpoint(b) {
		return false, nil
	}
	la, err := a.Line()
	if err != nil {
		return false, err
	}
	lb, err := b.Line()
	if err != nil {
		return false, err
	}
	return Intersects(la, a, lb, b), nil
}

func (s Segment) sharesEndpoint(o Segment) bool {
	return s.A == o.A || s.A == o.B || s.B == o.A || s.B == o.B
}

// strictlyBetween reports whether x lies in the open interval between lo and
// hi, whichever order they are given in.
func strictlyBetween(x, lo, hi float64) bool {
	return (lo < x && x < hi) || (lo > x && x > hi)
}
