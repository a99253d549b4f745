// Package boundaries derives car hitbox points for every sprite heading from
// points marked on a single reference frame.
//
// Sprites are rendered by a camera tilted by a fixed angle fi. A point marked
// on frame 0 is cast along the camera ray onto the tilted pi plane, brought
// into the car's ground orientation, rotated by the frame heading, tilted
// back and cast onto the ground (sigma) plane again.
package boundaries

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"carbounds/internal/linmath"
)

// DriftTolerance is how far from z = 0 a rotated point may land before it is
// reported as ErrDrift.
const DriftTolerance = 1e-6

// PointSet is a named, ordered list of points.
type PointSet struct {
	Name   string
	Points []Point
}

type pointSet struct {
	name   string
	points []linmath.Vector
}

// Generator holds the two planes, the camera rays and the rotation centre for
// one car. It is not modified by the rotation methods, so they may be called
// from several goroutines once all point sets have been added.
type Generator struct {
	fi float64

	sigma linmath.Plane
	pi    linmath.Plane
	v     linmath.Vector
	u     linmath.Vector

	center     linmath.Vector
	centerOnPi linmath.Vector

	sets []pointSet

	logger  *zap.Logger
	workers int
}

type Option func(*Generator)

// WithLogger sets the logger used for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithWorkers limits how many frames Frames computes at once.
func WithWorkers(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.workers = n
		}
	}
}

// NewGenerator prepares a generator rotating around center, for sprites
// rendered with the camera tilted by projectionAngle degrees.
func NewGenerator(center Point, projectionAngle float64, opts ...Option) (*Generator, error) {
	g := &Generator{
		fi:      projectionAngle,
		v:       linmath.Vec3(0, 0, -1),
		logger:  zap.NewNop(),
		workers: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.u = g.v.Neg()

	origin := linmath.Vec3(0, 0, 0)
	sigmaN := linmath.Vec3(0, 0, 1)
	piN, err := linmath.Rotate3D(sigmaN, -g.fi, linmath.AxisX)
	if err != nil {
		return nil, err
	}
	if g.sigma, err = linmath.NewPlane(origin, sigmaN); err != nil {
		return nil, err
	}
	if g.pi, err = linmath.NewPlane(origin, piN); err != nil {
		return nil, err
	}

	g.center = linmath.Vec3(center.X, center.Y, 0)
	centerLine, err := linmath.NewLine(g.center, g.v)
	if err != nil {
		return nil, err
	}
	if g.centerOnPi, err = centerLine.IntersectPlane(g.pi); err != nil {
		return nil, fmt.Errorf("projecting centre onto pi plane: %w", err)
	}

	g.logger.Debug("generator ready",
		zap.Float64("fi", g.fi),
		zap.Stringer("center", g.center),
		zap.Stringer("pi_normal", g.pi.N),
	)
	return g, nil
}

// ProjectionAngle returns fi in degrees.
func (g *Generator) ProjectionAngle() float64 {
	return g.fi
}

// Center returns the rotation centre on the ground plane.
func (g *Generator) Center() Point {
	return Point{X: g.center[0], Y: g.center[1]}
}

// CenterOnPi returns the rotation centre cast onto the pi plane.
func (g *Generator) CenterOnPi() linmath.Vector {
	return g.centerOnPi
}

// AddPointSet appends a named point set. 2D points get z = 0. Names are not
// required to be unique.
func (g *Generator) AddPointSet(name string, points []linmath.Vector) error {
	vectors := make([]linmath.Vector, 0, len(points))
	for _, p := range points {
		v, err := p.Lift()
		if err != nil {
			return fmt.Errorf("point set %q: %w", name, err)
		}
		vectors = append(vectors, v)
	}
	g.sets = append(g.sets, pointSet{name: name, points: vectors})
	return nil
}

// AddPoints is AddPointSet for 2D points.
func (g *Generator) AddPoints(name string, points ...Point) error {
	vectors := make([]linmath.Vector, len(points))
	for i, p := range points {
		vectors[i] = p.Vector()
	}
	return g.AddPointSet(name, vectors)
}

// SetNames returns the point set names in insertion order.
func (g *Generator) SetNames() []string {
	names := make([]string, len(g.sets))
	for i, s := range g.sets {
		names[i] = s.name
	}
	return names
}

// ProjectAndRotate moves point to where it appears on the frame rotated by
// degrees (counter-clockwise), rounded to precision decimals.
func (g *Generator) ProjectAndRotate(point linmath.Vector, degrees float64, precision int) (linmath.Vector, error) {
	r, err := g.projectAndRotate(point, degrees)
	if err != nil {
		return nil, err
	}
	return r.Round(precision), nil
}

func (g *Generator) projectAndRotate(point linmath.Vector, degrees float64) (linmath.Vector, error) {
	point, err := point.Lift()
	if err != nil {
		return nil, err
	}
	fromCenter, err := point.Sub(g.center)
	if err != nil {
		return nil, err
	}
	pointLine, err := linmath.NewLine(fromCenter, g.v)
	if err != nil {
		return nil, err
	}
	projected, err := pointLine.IntersectPlane(g.pi)
	if err != nil {
		return nil, err
	}

	sigmaVec, err := linmath.Rotate3D(projected, g.fi, linmath.AxisX)
	if err != nil {
		return nil, err
	}
	rotated, err := linmath.Rotate3D(sigmaVec, degrees, linmath.AxisZ)
	if err != nil {
		return nil, err
	}
	rotatedPi, err := linmath.Rotate3D(rotated, -g.fi, linmath.AxisX)
	if err != nil {
		return nil, err
	}

	backLine, err := linmath.NewLine(rotatedPi, g.u)
	if err != nil {
		return nil, err
	}
	onSigma, err := backLine.IntersectPlane(g.sigma)
	if err != nil {
		return nil, err
	}
	return g.center.Add(onSigma)
}

// GroundProjection casts point along the camera ray straight onto the ground
// plane.
func (g *Generator) GroundProjection(point linmath.Vector) (linmath.Vector, error) {
	point, err := point.Lift()
	if err != nil {
		return nil, err
	}
	l, err := linmath.NewLine(point, g.v)
	if err != nil {
		return nil, err
	}
	return l.IntersectPlane(g.sigma)
}

// RotatedByAngle applies ProjectAndRotate to every point of every set. Set
// order and point order match the order they were added in.
func (g *Generator) RotatedByAngle(degrees float64, precision int) ([]PointSet, error) {
	out := make([]PointSet, 0, len(g.sets))
	for _, s := range g.sets {
		points := make([]Point, 0, len(s.points))
		for _, p := range s.points {
			r, err := g.projectAndRotate(p, degrees)
			if err != nil {
				return nil, fmt.Errorf("point set %q at %g°: %w", s.name, degrees, err)
			}
			if math.Abs(r[2]) > DriftTolerance {
				return nil, fmt.Errorf("%w: point set %q at %g°: %v", ErrDrift, s.name, degrees, r)
			}
			points = append(points, Point{
				X: linmath.Round(r[0], precision),
				Y: linmath.Round(r[1], precision),
			})
		}
		out = append(out, PointSet{Name: s.name, Points: points})
	}
	return out, nil
}

// FrameAngle returns the heading of frame i out of n.
func FrameAngle(i, n int) float64 {
	return float64(i) * 360 / float64(n)
}

// Frames computes RotatedByAngle for n evenly spaced headings, frame i being
// rotated by i*360/n degrees. Frames are computed concurrently and returned
// in order.
func (g *Generator) Frames(ctx context.Context, n, precision int) ([][]PointSet, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrNoFrames, n)
	}
	frames := make([][]PointSet, n)

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)
	for i := 0; i < n; i++ {
		i := i
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			angle := FrameAngle(i, n)
			sets, err := g.RotatedByAngle(angle, precision)
			if err != nil {
				return fmt.Errorf("frame %d: %w", i, err)
			}
			frames[i] = sets
			g.logger.Debug("frame generated", zap.Int("frame", i), zap.Float64("angle", angle))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return frames, nil
}
