// Package linmath holds the small amount of linear algebra needed to move
// points between the ground plane and the tilted camera plane.
package linmath

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Vector is an ordered list of coordinates. Operations never modify the
// receiver, they return a new Vector.
type Vector []float64

func Vec2(x, y float64) Vector {
	return Vector{x, y}
}

func Vec3(x, y, z float64) Vector {
	return Vector{x, y, z}
}

// Dim returns the number of coordinates.
func (v Vector) Dim() int {
	return len(v)
}

func (v Vector) sameDim(o Vector) error {
	if len(v) != len(o) {
		return fmt.Errorf("%w: %v and %v", ErrDimensionMismatch, v, o)
	}
	return nil
}

// Add returns v + o.
func (v Vector) Add(o Vector) (Vector, error) {
	if err := v.sameDim(o); err != nil {
		return nil, err
	}
	out := make(Vector, len(v))
	for i := range v {
		out[i] = v[i] + o[i]
	}
	return out, nil
}

// Sub returns v - o.
func (v Vector) Sub(o Vector) (Vector, error) {
	return v.Add(o.Neg())
}

func (v Vector) Neg() Vector {
	return v.Scale(-1)
}

// Scale multiplies every coordinate by k.
func (v Vector) Scale(k float64) Vector {
	out := make(Vector, len(v))
	for i := range v {
		out[i] = v[i] * k
	}
	return out
}

// Dot returns the scalar product of v and o.
func (v Vector) Dot(o Vector) (float64, error) {
	if err := v.sameDim(o); err != nil {
		return 0, err
	}
	var sum float64
	for i := range v {
		sum += v[i] * o[i]
	}
	return sum, nil
}

// Length returns the Euclidean norm.
func (v Vector) Length() float64 {
	var sum float64
	for _, c := range v {
		sum += c * c
	}
	return math.Sqrt(sum)
}

// Norm returns the unit vector pointing the same way as v.
func (v Vector) Norm() (Vector, error) {
	l := v.Length()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return nil, fmt.Errorf("%w: cannot normalize %v", ErrDegenerateVector, v)
	}
	return v.Scale(1 / l), nil
}

// Round rounds every coordinate to n decimal places.
func (v Vector) Round(n int) Vector {
	out := make(Vector, len(v))
	for i, c := range v {
		out[i] = Round(c, n)
	}
	return out
}

// Lift returns v as a 3D vector, appending z = 0 to 2D input.
func (v Vector) Lift() (Vector, error) {
	switch len(v) {
	case 2:
		return Vector{v[0], v[1], 0}, nil
	case 3:
		return Vector{v[0], v[1], v[2]}, nil
	default:
		return nil, fmt.Errorf("%w: cannot lift %d-dimensional %v to 3D", ErrDimensionMismatch, len(v), v)
	}
}

// ApproxEqual reports whether v and o have the same dimension and every
// coordinate differs by at most eps.
func (v Vector) ApproxEqual(o Vector, eps float64) bool {
	if len(v) != len(o) {
		return false
	}
	for i := range v {
		if math.Abs(v[i]-o[i]) > eps {
			return false
		}
	}
	return true
}

func (v Vector) String() string {
	parts := make([]string, len(v))
	for i, c := range v {
		parts[i] = strconv.FormatFloat(c, 'g', -1, 64)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Round rounds x to n decimal places. Negative zero comes back as 0.
func Round(x float64, n int) float64 {
	p := math.Pow(10, float64(n))
	r := math.Round(x*p) / p
	if r == 0 {
		return 0
	}
	return r
}
