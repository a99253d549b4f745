// Package carconfig reads boundary capture sessions and writes the generated
// points into a car's JSON configuration file.
package carconfig

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"carbounds/internal/boundaries"
)

// DefaultProjectionAngle is the camera tilt the car sprites were rendered
// with. Existing car configs were generated with it.
const DefaultProjectionAngle = 25.0

// PivotRegion is the region whose centre is used as the rotation pivot when
// a session does not name one.
const PivotRegion = "boundaries"

// XY is a point stored as a two element array.
type XY [2]float64

func (p XY) Point() boundaries.Point {
	return boundaries.Point{X: p[0], Y: p[1]}
}

func FromPoint(p boundaries.Point) XY {
	return XY{p.X, p.Y}
}

// Region is one rectangle drawn over the reference sprite, in screen
// coordinates.
type Region struct {
	Name  string `json:"name" yaml:"name"`
	Start XY     `json:"start" yaml:"start"`
	End   XY     `json:"end" yaml:"end"`
}

func (r Region) Rect() boundaries.Rect {
	return boundaries.Rect{Start: r.Start.Point(), End: r.End.Point()}
}

// Session describes one capture session for a single car.
type Session struct {
	Car       string `json:"car" yaml:"car"`
	ImageSize XY     `json:"image_size" yaml:"image_size"`
	// Origin is the screen position of the sprite's top-left corner.
	Origin          XY       `json:"origin" yaml:"origin"`
	ProjectionAngle *float64 `json:"projection_angle,omitempty" yaml:"projection_angle,omitempty"`
	// Frames wins over Images when both are set.
	Frames    int      `json:"frames,omitempty" yaml:"frames,omitempty"`
	Images    string   `json:"images,omitempty" yaml:"images,omitempty"`
	Pivot     *XY      `json:"pivot,omitempty" yaml:"pivot,omitempty"`
	Precision int      `json:"precision,omitempty" yaml:"precision,omitempty"`
	Output    string   `json:"output" yaml:"output"`
	Regions   []Region `json:"regions" yaml:"regions"`
}

// LoadJSON loads a session from JSON.
func LoadJSON(r io.Reader) (*Session, error) {
	var s Session
	dec := json.NewDecoder(r)
	if err := dec.Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadYAML loads a session from YAML.
func LoadYAML(r io.Reader) (*Session, error) {
	var s Session
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads a session file, picking the decoder from the extension. Relative
// images and output paths are resolved against the session file's directory.
func Load(path string) (*Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var s *Session
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		s, err = LoadYAML(f)
	case ".json":
		s, err = LoadJSON(f)
	default:
		return nil, fmt.Errorf("%w: unsupported session file %q", ErrInvalidSession, path)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	s.Images = resolve(dir, s.Images)
	s.Output = resolve(dir, s.Output)
	return s, nil
}

func resolve(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// Angle returns the projection angle, falling back to DefaultProjectionAngle.
func (s *Session) Angle() float64 {
	if s.ProjectionAngle == nil {
		return DefaultProjectionAngle
	}
	return *s.ProjectionAngle
}

func (s *Session) Size() boundaries.Size {
	return boundaries.Size{W: s.ImageSize[0], H: s.ImageSize[1]}
}

// Validate checks the session before any geometry is done.
func (s *Session) Validate() error {
	if s.Car == "" {
		return fmt.Errorf("%w: car name is empty", ErrInvalidSession)
	}
	if s.ImageSize[0] <= 0 || s.ImageSize[1] <= 0 {
		return fmt.Errorf("%w: image size %v", ErrInvalidSession, s.ImageSize)
	}
	if s.Output == "" {
		return fmt.Errorf("%w: output path is empty", ErrInvalidSession)
	}
	if s.Frames < 0 {
		return fmt.Errorf("%w: frames %d", ErrInvalidSession, s.Frames)
	}
	if s.Frames == 0 && s.Images == "" {
		return fmt.Errorf("%w: neither frames nor images set", ErrInvalidSession)
	}
	if s.Precision < 0 {
		return fmt.Errorf("%w: precision %d", ErrInvalidSession, s.Precision)
	}
	if len(s.Regions) == 0 {
		return fmt.Errorf("%w: no regions", ErrInvalidSession)
	}
	seen := make(map[string]bool, len(s.Regions))
	for _, r := range s.Regions {
		if r.Name == "" {
			return fmt.Errorf("%w: region without a name", ErrInvalidSession)
		}
		if seen[r.Name] {
			return fmt.Errorf("%w: region %q listed twice", ErrInvalidSession, r.Name)
		}
		seen[r.Name] = true
		if r.Start[0] == r.End[0] || r.Start[1] == r.End[1] {
			return fmt.Errorf("%w: region %q from %v to %v", ErrDegenerateRect, r.Name, r.Start, r.End)
		}
	}
	return nil
}

// FrameCount returns the number of sprite frames, counting the regular files
// in Images when Frames is not set.
func (s *Session) FrameCount() (int, error) {
	if s.Frames > 0 {
		return s.Frames, nil
	}
	entries, err := os.ReadDir(s.Images)
	if err != nil {
		return 0, fmt.Errorf("reading images folder: %w", err)
	}
	n := 0
	for _, e := range entries {
		if e.Type().IsRegular() {
			n++
		}
	}
	if n == 0 {
		return 0, fmt.Errorf("%w: no images in %s", ErrInvalidSession, s.Images)
	}
	return n, nil
}

// PivotScreen returns the rotation pivot in screen coordinates: the explicit
// pivot when given, otherwise the centre of the PivotRegion rectangle, or of
// the first region when there is none.
func (s *Session) PivotScreen() boundaries.Point {
	if s.Pivot != nil {
		return s.Pivot.Point()
	}
	for _, r := range s.Regions {
		if r.Name == PivotRegion {
			return r.Rect().Center()
		}
	}
	return s.Regions[0].Rect().Center()
}
