package linmath

import (
	"fmt"
	"math"
)

// ParallelTolerance is the smallest |dot(direction, normal)| for which a
// line and a plane are treated as intersecting.
const ParallelTolerance = 1e-6

// Plane is a point on the plane plus its unit normal.
type Plane struct {
	P Vector
	N Vector
}

// NewPlane builds a plane through point with the given normal. The normal is
// normalized when it is not already of unit length.
func NewPlane(point, normal Vector) (Plane, error) {
	if err := point.sameDim(normal); err != nil {
		return Plane{}, err
	}
	n, err := unit(normal)
	if err != nil {
		return Plane{}, fmt.Errorf("plane normal: %w", err)
	}
	return Plane{P: point, N: n}, nil
}

// Contains reports whether point lies on the plane within eps.
func (pl Plane) Contains(point Vector, eps float64) (bool, error) {
	d, err := point.Sub(pl.P)
	if err != nil {
		return false, err
	}
	dist, err := d.Dot(pl.N)
	if err != nil {
		return false, err
	}
	return math.Abs(dist) <= eps, nil
}

// IntersectLine returns the point where l crosses the plane.
func (pl Plane) IntersectLine(l Line) (Vector, error) {
	return intersect(l, pl)
}

func (pl Plane) String() string {
	return fmt.Sprintf("plane{point=%v normal=%v}", pl.P, pl.N)
}

func intersect(l Line, pl Plane) (Vector, error) {
	denom, err := l.V.Dot(pl.N)
	if err != nil {
		return nil, err
	}
	if math.Abs(denom) < ParallelTolerance {
		return nil, fmt.Errorf("%w: %v and %v", ErrParallel, l, pl)
	}
	qp, err := pl.P.Sub(l.P)
	if err != nil {
		return nil, err
	}
	num, err := qp.Dot(pl.N)
	if err != nil {
		return nil, err
	}
	return l.P.Add(l.V.Scale(num / denom))
}

// unit returns v unchanged when it already has length 1.
func unit(v Vector) (Vector, error) {
	if v.Length() == 1 {
		return v, nil
	}
	return v.Norm()
}
