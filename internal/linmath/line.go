package linmath

import "fmt"

// Line is a point on the line plus its unit direction.
type Line struct {
	P Vector
	V Vector
}

// NewLine builds a line through point heading along direction. The
// direction is normalized when it is not already of unit length.
func NewLine(point, direction Vector) (Line, error) {
	if err := point.sameDim(direction); err != nil {
		return Line{}, err
	}
	v, err := unit(direction)
	if err != nil {
		return Line{}, fmt.Errorf("line direction: %w", err)
	}
	return Line{P: point, V: v}, nil
}

// IntersectPlane returns the point where the line crosses pl.
func (l Line) IntersectPlane(pl Plane) (Vector, error) {
	return intersect(l, pl)
}

func (l Line) String() string {
	return fmt.Sprintf("line{point=%v direction=%v}", l.P, l.V)
}
