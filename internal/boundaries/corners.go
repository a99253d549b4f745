package boundaries

import "carbounds/internal/linmath"

// Point is a 2D position. Depending on context it is either a screen
// position (Y grows downward) or an image-local one (origin at the image's
// bottom-left corner, Y grows upward).
type Point struct {
	X, Y float64
}

// Vector returns p as a 2D linmath vector.
func (p Point) Vector() linmath.Vector {
	return linmath.Vec2(p.X, p.Y)
}

// Size is a sprite's pixel size.
type Size struct {
	W, H float64
}

// Rect is a rectangle dragged on screen from Start to End.
type Rect struct {
	Start, End Point
}

func (r Rect) Width() float64  { return r.End.X - r.Start.X }
func (r Rect) Height() float64 { return r.End.Y - r.Start.Y }

// Center returns the middle of the rectangle.
func (r Rect) Center() Point {
	return Point{X: (r.Start.X + r.End.X) / 2, Y: (r.Start.Y + r.End.Y) / 2}
}

// Corner order used by RelativeCorners and CornersToScreen.
const (
	TopLeft = iota
	TopRight
	BottomLeft
	BottomRight
)

// RelativeCorners converts a screen rectangle into its four corners in the
// image-local frame of a sprite drawn at origin with the given size. The
// corners are returned as top-left, top-right, bottom-left, bottom-right.
func RelativeCorners(r Rect, origin Point, size Size) [4]Point {
	w, h := r.Width(), r.Height()
	leftX := r.Start.X - origin.X
	rightX := r.Start.X + w - origin.X
	topY := size.H - (r.Start.Y - origin.Y)
	bottomY := size.H - (r.Start.Y + h - origin.Y)
	return [4]Point{
		{X: leftX, Y: topY},
		{X: rightX, Y: topY},
		{X: leftX, Y: bottomY},
		{X: rightX, Y: bottomY},
	}
}

// ToImageLocal converts a screen position into the image-local frame.
func ToImageLocal(p, origin Point, size Size) Point {
	return Point{X: p.X - origin.X, Y: size.H - (p.Y - origin.Y)}
}

// ToScreen is the inverse of ToImageLocal.
func ToScreen(p, origin Point, size Size) Point {
	return Point{X: p.X + origin.X, Y: size.H - p.Y + origin.Y}
}

// CornersToScreen maps image-local corners back to screen positions.
func CornersToScreen(corners [4]Point, origin Point, size Size) [4]Point {
	var out [4]Point
	for i, c := range corners {
		out[i] = ToScreen(c, origin, size)
	}
	return out
}

// ImageCorners returns the corners of the image itself in the image-local
// frame, with the bottom-left corner at (0, 0).
func ImageCorners(size Size) [4]Point {
	return [4]Point{
		{X: 0, Y: size.H},
		{X: size.W, Y: size.H},
		{X: 0, Y: 0},
		{X: size.W, Y: 0},
	}
}
