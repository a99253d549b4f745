package carconfig

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"carbounds/internal/boundaries"
)

// PointsKey is the top level key the generated points are stored under.
const PointsKey = "points"

// CentreKey holds the pivot inside the points object.
const CentreKey = "centre"

// RegionFrames is one region's points for every frame.
type RegionFrames struct {
	Name   string
	Frames [][]XY
}

// Points is the "points" object of a car config. It marshals as
//
//	{"tyres": [[[x, y], ...], ...], "boundaries": [...], "centre": [x, y]}
//
// with regions in capture order.
type Points struct {
	Regions []RegionFrames
	Centre  XY
}

// NewPoints regroups generator frames by region. Every frame must carry the
// same point sets in the same order.
func NewPoints(frames [][]boundaries.PointSet, centre boundaries.Point) (*Points, error) {
	p := &Points{Centre: FromPoint(centre)}
	if len(frames) == 0 {
		return p, nil
	}
	for _, set := range frames[0] {
		p.Regions = append(p.Regions, RegionFrames{Name: set.Name, Frames: make([][]XY, 0, len(frames))})
	}
	for i, frame := range frames {
		if len(frame) != len(p.Regions) {
			return nil, fmt.Errorf("frame %d has %d point sets, want %d", i, len(frame), len(p.Regions))
		}
		for j, set := range frame {
			if set.Name != p.Regions[j].Name {
				return nil, fmt.Errorf("frame %d point set %d is %q, want %q", i, j, set.Name, p.Regions[j].Name)
			}
			xy := make([]XY, len(set.Points))
			for k, pt := range set.Points {
				xy[k] = FromPoint(pt)
			}
			p.Regions[j].Frames = append(p.Regions[j].Frames, xy)
		}
	}
	return p, nil
}

// Region returns the frames stored for name.
func (p *Points) Region(name string) ([][]XY, bool) {
	for _, r := range p.Regions {
		if r.Name == name {
			return r.Frames, true
		}
	}
	return nil, false
}

func (p Points) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for _, r := range p.Regions {
		if err := writeMember(&buf, r.Name, r.Frames); err != nil {
			return nil, err
		}
		buf.WriteByte(',')
	}
	if err := writeMember(&buf, CentreKey, p.Centre); err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeMember(buf *bytes.Buffer, key string, value any) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	v, err := json.Marshal(value)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}

func (p *Points) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("points: expected an object, got %v", tok)
	}
	*p = Points{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key := tok.(string)
		if key == CentreKey {
			if err := dec.Decode(&p.Centre); err != nil {
				return fmt.Errorf("points: %s: %w", key, err)
			}
			continue
		}
		var frames [][]XY
		if err := dec.Decode(&frames); err != nil {
			return fmt.Errorf("points: %s: %w", key, err)
		}
		p.Regions = append(p.Regions, RegionFrames{Name: key, Frames: frames})
	}
	_, err = dec.Token()
	return err
}

// Read loads a car config as its top level members.
func Read(path string) (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil || obj == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotObject, path)
	}
	return obj, nil
}

// Update sets key to value in the JSON object stored at path, keeping every
// other member. The file is created when it does not exist.
func Update(path, key string, value any) error {
	obj, err := Read(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		obj = make(map[string]json.RawMessage)
	case err != nil:
		return err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	obj[key] = raw

	data, err := json.MarshalIndent(obj, "", "    ")
	if err != nil {
		return err
	}
	return writeFile(path, append(data, '\n'))
}

func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
