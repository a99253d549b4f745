package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"carbounds/internal/boundaries"
)

// setColours is cycled through by point set index.
var setColours = []color.RGBA{
	{R: 255, G: 0, B: 0, A: 255},
	{R: 0, G: 200, B: 255, A: 255},
	{R: 255, G: 220, B: 0, A: 255},
	{R: 0, G: 255, B: 120, A: 255},
	{R: 255, G: 0, B: 255, A: 255},
}

var centreColour = color.RGBA{R: 255, G: 255, B: 255, A: 255}

func setColour(i int) color.RGBA {
	return setColours[i%len(setColours)]
}

// DrawLine draws a line on the image from (x1, y1) to (x2, y2) using a DDA walk
func DrawLine(img *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	dx := float64(x2 - x1)
	dy := float64(y2 - y1)
	steps := math.Max(math.Abs(dx), math.Abs(dy))
	if steps == 0 {
		setPixel(img, x1, y1, col)
		return
	}

	xInc := dx / steps
	yInc := dy / steps

	x := float64(x1)
	y := float64(y1)

	for i := 0; i <= int(steps); i++ {
		setPixel(img, int(math.Round(x)), int(math.Round(y)), col)
		x += xInc
		y += yInc
	}
}

func setPixel(img *image.RGBA, x, y int, col color.RGBA) {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return
	}
	offset := img.PixOffset(x, y)
	img.Pix[offset] = col.R
	img.Pix[offset+1] = col.G
	img.Pix[offset+2] = col.B
	img.Pix[offset+3] = col.A
}

// outline orders a point set for drawing as a closed polygon. Rectangle
// corners come in top-left, top-right, bottom-left, bottom-right order and
// are walked around the rectangle instead.
func outline(points []boundaries.Point) []boundaries.Point {
	if len(points) != 4 {
		return points
	}
	return []boundaries.Point{
		points[boundaries.TopLeft],
		points[boundaries.TopRight],
		points[boundaries.BottomRight],
		points[boundaries.BottomLeft],
	}
}

// DrawPolygon draws the closed outline through points.
func DrawPolygon(img *image.RGBA, points []boundaries.Point, col color.RGBA) {
	for i, p := range points {
		q := points[(i+1)%len(points)]
		DrawLine(img, int(math.Round(p.X)), int(math.Round(p.Y)), int(math.Round(q.X)), int(math.Round(q.Y)), col)
	}
}

// renderFrame draws one frame's point sets and the pivot onto a transparent
// image of the sprite's size.
func renderFrame(size boundaries.Size, sets []boundaries.PointSet, centre boundaries.Point) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, int(math.Ceil(size.W)), int(math.Ceil(size.H))))
	for i, set := range sets {
		DrawPolygon(img, outline(set.Points), setColour(i))
	}
	cx, cy := int(math.Round(centre.X)), int(math.Round(centre.Y))
	DrawLine(img, cx-2, cy, cx+2, cy, centreColour)
	DrawLine(img, cx, cy-2, cx, cy+2, centreColour)
	return img
}

func writeFramePNGs(dir string, res *result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for i, frame := range res.frames {
		img := renderFrame(res.size, frame, res.centre)
		path := filepath.Join(dir, fmt.Sprintf("%04d.png", i))
		if err := writePNG(path, img); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
	}
	return nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
