package linmath

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Axis selects the coordinate axis a 3D rotation is performed around.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return fmt.Sprintf("Axis(%d)", uint8(a))
	}
}

// ParseAxis maps "x", "y" or "z" to an Axis.
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "x", "X":
		return AxisX, nil
	case "y", "Y":
		return AxisY, nil
	case "z", "Z":
		return AxisZ, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAxis, s)
}

// Rotate2D rotates a 2D vector counter-clockwise by degrees.
func Rotate2D(v Vector, degrees float64) (Vector, error) {
	if v.Dim() != 2 {
		return nil, fmt.Errorf("%w: Rotate2D needs a 2D vector, got %v", ErrDimensionMismatch, v)
	}
	r := mgl64.Rotate2D(mgl64.DegToRad(degrees)).Mul2x1(mgl64.Vec2{v[0], v[1]})
	return Vector{r[0], r[1]}, nil
}

// Rotate3D rotates a 3D vector by degrees around the given axis through the
// origin. Positive angles are counter-clockwise when looking from the
// positive end of the axis towards the origin.
func Rotate3D(v Vector, degrees float64, axis Axis) (Vector, error) {
	if v.Dim() != 3 {
		return nil, fmt.Errorf("%w: Rotate3D needs a 3D vector, got %v", ErrDimensionMismatch, v)
	}
	rad := mgl64.DegToRad(degrees)
	var m mgl64.Mat3
	switch axis {
	case AxisX:
		m = mgl64.Rotate3DX(rad)
	case AxisY:
		m = mgl64.Rotate3DY(rad)
	case AxisZ:
		m = mgl64.Rotate3DZ(rad)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownAxis, axis)
	}
	r := m.Mul3x1(mgl64.Vec3{v[0], v[1], v[2]})
	return Vector{r[0], r[1], r[2]}, nil
}
