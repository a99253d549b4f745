package main

import (
	"context"
	"encoding/json"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"carbounds/internal/boundaries"
	"carbounds/internal/carconfig"
)

const testSession = `
car: kart
image_size: [200, 200]
origin: [0, 0]
frames: 4
output: out/config.json
regions:
  - name: tyres
    start: [80, 80]
    end: [120, 120]
  - name: boundaries
    start: [60, 50]
    end: [140, 150]
`

func writeSession(t *testing.T) (dir, path string) {
	t.Helper()
	dir = t.TempDir()
	path = filepath.Join(dir, "kart.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testSession), 0o644))
	return dir, path
}

func TestRun(t *testing.T) {
	dir, path := writeSession(t)
	out := filepath.Join(dir, "out", "config.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(out), 0o755))
	require.NoError(t, os.WriteFile(out, []byte(`{"name": "kart"}`), 0o644))

	res, err := run(context.Background(), zaptest.NewLogger(t), path, 2)
	require.NoError(t, err)
	require.Len(t, res.frames, 4)
	assert.Equal(t, boundaries.Point{X: 100, Y: 100}, res.centre)

	// frame 0 matches the rectangle as drawn, in image pixels
	assert.Equal(t, []boundaries.Point{{X: 80, Y: 80}, {X: 120, Y: 80}, {X: 80, Y: 120}, {X: 120, Y: 120}},
		res.frames[0][0].Points)
	// half turn swaps opposite corners
	assert.Equal(t, []boundaries.Point{{X: 120, Y: 120}, {X: 80, Y: 120}, {X: 120, Y: 80}, {X: 80, Y: 80}},
		res.frames[2][0].Points)

	obj, err := carconfig.Read(out)
	require.NoError(t, err)
	assert.JSONEq(t, `"kart"`, string(obj["name"]))

	var points carconfig.Points
	require.NoError(t, json.Unmarshal(obj[carconfig.PointsKey], &points))
	assert.Equal(t, carconfig.XY{100, 100}, points.Centre)
	require.Len(t, points.Regions, 2)
	assert.Equal(t, "tyres", points.Regions[0].Name)
	assert.Equal(t, "boundaries", points.Regions[1].Name)
	assert.Len(t, points.Regions[1].Frames, 4)
	assert.Equal(t, []carconfig.XY{{60, 50}, {140, 50}, {60, 150}, {140, 150}}, points.Regions[1].Frames[0])
}

func TestRunInvalidSession(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("car: kart\n"), 0o644))

	_, err := run(context.Background(), zaptest.NewLogger(t), path, 0)
	assert.ErrorIs(t, err, carconfig.ErrInvalidSession)
}

func TestWriteFramePNGs(t *testing.T) {
	_, path := writeSession(t)
	res, err := run(context.Background(), zaptest.NewLogger(t), path, 0)
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "frames")
	require.NoError(t, writeFramePNGs(dir, res))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Equal(t, "0000.png", entries[0].Name())
}

func TestOutline(t *testing.T) {
	corners := []boundaries.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}
	assert.Equal(t, []boundaries.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}, outline(corners))

	tri := []boundaries.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}
	assert.Equal(t, tri, outline(tri))
}

func TestRenderFrame(t *testing.T) {
	sets := []boundaries.PointSet{{
		Name:   "tyres",
		Points: []boundaries.Point{{X: 2, Y: 2}, {X: 7, Y: 2}, {X: 2, Y: 7}, {X: 7, Y: 7}},
	}}
	img := renderFrame(boundaries.Size{W: 10, H: 10}, sets, boundaries.Point{X: 5, Y: 5})

	assert.Equal(t, image.Rect(0, 0, 10, 10), img.Bounds())
	assert.Equal(t, setColour(0), img.RGBAAt(4, 2))
	assert.Equal(t, setColour(0), img.RGBAAt(2, 4))
	assert.Equal(t, setColour(0), img.RGBAAt(7, 7))
	assert.Equal(t, color.RGBA{}, img.RGBAAt(4, 4))
	assert.Equal(t, centreColour, img.RGBAAt(5, 5))
}

func TestDrawLineClips(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	col := color.RGBA{R: 1, A: 255}

	DrawLine(img, -5, 1, 10, 1, col)
	for x := 0; x < 4; x++ {
		assert.Equal(t, col, img.RGBAAt(x, 1))
	}

	DrawLine(img, 3, 3, 3, 3, col)
	assert.Equal(t, col, img.RGBAAt(3, 3))
}
