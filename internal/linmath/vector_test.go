package linmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorArithmetic(t *testing.T) {
	a := Vec3(1, 2, 3)
	b := Vec3(4, -5, 6)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, Vec3(5, -3, 9), sum)

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.Equal(t, Vec3(-3, 7, -3), diff)

	dot, err := a.Dot(b)
	require.NoError(t, err)
	assert.Equal(t, 12.0, dot)

	assert.Equal(t, Vec3(2, 4, 6), a.Scale(2))
	assert.Equal(t, Vec3(-1, -2, -3), a.Neg())

	// operands are left alone
	assert.Equal(t, Vec3(1, 2, 3), a)
}

func TestVectorDimensionMismatch(t *testing.T) {
	a := Vec2(1, 2)
	b := Vec3(1, 2, 3)

	_, err := a.Add(b)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	_, err = a.Sub(b)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	_, err = a.Dot(b)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestVectorLengthAndNorm(t *testing.T) {
	v := Vec2(3, 4)
	assert.Equal(t, 5.0, v.Length())

	n, err := v.Norm()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, n.Length(), 1e-12)
	assert.True(t, n.ApproxEqual(Vec2(0.6, 0.8), 1e-12))

	_, err = Vec3(0, 0, 0).Norm()
	assert.ErrorIs(t, err, ErrDegenerateVector)
}

func TestVectorRound(t *testing.T) {
	v := Vec3(1.26, -0.0004, 2.5)
	assert.Equal(t, Vec3(1.3, 0, 2.5), v.Round(1))
	assert.Equal(t, Vec3(1, 0, 3), v.Round(0))

	r := Vec2(-0.2, 0.1).Round(0)
	assert.False(t, math.Signbit(r[0]), "negative zero should be normalised")
}

func TestVectorLift(t *testing.T) {
	v, err := Vec2(3, 4).Lift()
	require.NoError(t, err)
	assert.Equal(t, Vec3(3, 4, 0), v)

	v, err = Vec3(3, 4, 5).Lift()
	require.NoError(t, err)
	assert.Equal(t, Vec3(3, 4, 5), v)

	_, err = Vector{1}.Lift()
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestVectorString(t *testing.T) {
	assert.Equal(t, "(1, -2.5, 0)", Vec3(1, -2.5, 0).String())
}
