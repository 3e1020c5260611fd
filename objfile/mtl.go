package objfile

import (
	"fmt"
	"io"
	"strings"

	"github.com/andrerochasouza/view3d/geom"
)

// ParseMTL reads newmtl, Kd and the non-standard cullBackFace statement.
// A material starts light gray with culling off until told otherwise.
func ParseMTL(r io.Reader) (map[string]geom.Material, error) {
	mats := make(map[string]geom.Material)
	lr := newLineReader(r)

	var current *geom.Material
	flush := func() {
		if current != nil {
			mats[current.Name] = *current
		}
	}

	for lr.Scan() {
		line := lr.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "newmtl":
			flush()
			current = &geom.Material{
				Name:    strings.TrimSpace(strings.Join(fields[1:], " ")),
				Diffuse: geom.LightGray,
			}

		case "Kd":
			if current == nil {
				continue
			}
			rgb, err := parseVector(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lr.Line(), err)
			}
			current.Diffuse = geom.ColorFromFloats(rgb.X, rgb.Y, rgb.Z)

		case "cullBackFace":
			if current == nil || len(fields) < 2 {
				continue
			}
			// anything but "true" turns culling off
			current.CullBackFace = strings.EqualFold(fields[1], "true")
		}
	}
	flush()

	if err := lr.Err(); err != nil {
		return nil, fmt.Errorf("error reading MTL source: %w", err)
	}
	return mats, nil
}
