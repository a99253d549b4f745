package linmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlaneNormalizes(t *testing.T) {
	pl, err := NewPlane(Vec3(0, 0, 0), Vec3(0, 0, 4))
	require.NoError(t, err)
	assert.Equal(t, Vec3(0, 0, 1), pl.N)

	_, err = NewPlane(Vec3(0, 0, 0), Vec3(0, 0, 0))
	assert.ErrorIs(t, err, ErrDegenerateVector)

	_, err = NewPlane(Vec2(0, 0), Vec3(0, 0, 1))
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestNewLineNormalizes(t *testing.T) {
	l, err := NewLine(Vec3(1, 1, 1), Vec3(0, 3, 4))
	require.NoError(t, err)
	assert.True(t, l.V.ApproxEqual(Vec3(0, 0.6, 0.8), 1e-12))

	_, err = NewLine(Vec3(1, 1, 1), Vec3(0, 0, 0))
	assert.ErrorIs(t, err, ErrDegenerateVector)
}

func TestIntersection(t *testing.T) {
	ground, err := NewPlane(Vec3(0, 0, 0), Vec3(0, 0, 1))
	require.NoError(t, err)
	l, err := NewLine(Vec3(3, 4, 10), Vec3(0, 0, -1))
	require.NoError(t, err)

	p, err := l.IntersectPlane(ground)
	require.NoError(t, err)
	assert.True(t, p.ApproxEqual(Vec3(3, 4, 0), 1e-12), "got %v", p)

	q, err := ground.IntersectLine(l)
	require.NoError(t, err)
	assert.Equal(t, p, q)

	on, err := ground.Contains(p, 1e-9)
	require.NoError(t, err)
	assert.True(t, on)
}

func TestIntersectionTiltedPlane(t *testing.T) {
	n, err := Rotate3D(Vec3(0, 0, 1), -25, AxisX)
	require.NoError(t, err)
	pi, err := NewPlane(Vec3(0, 0, 0), n)
	require.NoError(t, err)
	l, err := NewLine(Vec3(-20, -20, 0), Vec3(0, 0, -1))
	require.NoError(t, err)

	p, err := l.IntersectPlane(pi)
	require.NoError(t, err)
	on, err := pi.Contains(p, 1e-9)
	require.NoError(t, err)
	assert.True(t, on)
	assert.InDelta(t, -20, p[0], 1e-9)
	assert.InDelta(t, -20, p[1], 1e-9)
	// z = -tan(25°) * y
	assert.InDelta(t, 9.3261531, p[2], 1e-6)
}

func TestIntersectionParallel(t *testing.T) {
	ground, err := NewPlane(Vec3(0, 0, 0), Vec3(0, 0, 1))
	require.NoError(t, err)
	l, err := NewLine(Vec3(0, 0, 5), Vec3(1, 1, 1e-9))
	require.NoError(t, err)

	_, err = l.IntersectPlane(ground)
	assert.ErrorIs(t, err, ErrParallel)
	_, err = ground.IntersectLine(l)
	assert.ErrorIs(t, err, ErrParallel)
}

func TestContains(t *testing.T) {
	pl, err := NewPlane(Vec3(0, 0, 2), Vec3(0, 0, 1))
	require.NoError(t, err)

	on, err := pl.Contains(Vec3(10, -3, 2), 1e-9)
	require.NoError(t, err)
	assert.True(t, on)

	on, err = pl.Contains(Vec3(10, -3, 2.5), 1e-9)
	require.NoError(t, err)
	assert.False(t, on)

	_, err = pl.Contains(Vec2(1, 1), 1e-9)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}
