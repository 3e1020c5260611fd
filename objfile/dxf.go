package objfile

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/andrerochasouza/view3d/geom"
)

// ParseDXF reads the 3DFACE entities of a simplified ASCII DXF file. Each
// entity is three header lines followed by four vertices, every coordinate
// preceded by its group-code line. A repeated fourth vertex makes a triangle.
// Faces use the default material and no group.
func ParseDXF(r io.Reader, opts Options) (*Model, error) {
	m := newModel()
	lr := newLineReader(r)
	mat := geom.DefaultMaterial()

	readFloatLine := func() (float64, error) {
		if !lr.Scan() {
			if err := lr.Err(); err != nil {
				return 0, err
			}
			return 0, io.ErrUnexpectedEOF
		}
		val, err := strconv.ParseFloat(strings.TrimSpace(lr.Text()), 64)
		if err != nil {
			return 0, fmt.Errorf("line %d: could not parse float value '%s': %w", lr.Line(), lr.Text(), err)
		}
		return val, nil
	}

	for lr.Scan() {
		if !strings.HasPrefix(strings.TrimSpace(lr.Text()), "3DFACE") {
			continue
		}
		start := lr.Line()

		for i := 0; i < 3; i++ {
			if !lr.Scan() {
				return nil, fmt.Errorf("line %d: unexpected end of file while parsing 3DFACE header", lr.Line())
			}
		}

		face := make([]geom.Vector3, 0, 4)
		for c := 0; c < 4; c++ {
			var xyz [3]float64
			for axis := range xyz {
				v, err := readFloatLine()
				if err != nil {
					return nil, fmt.Errorf("vertex %d of 3DFACE at line %d: %w", c, start, err)
				}
				xyz[axis] = v
				lr.Scan() // group code of the next value
			}
			face = appendDistinct(face, geom.Vector3{X: xyz[0], Y: xyz[1], Z: xyz[2]})
		}
		if len(face) > 1 && face[0] == face[len(face)-1] {
			face = face[:len(face)-1]
		}
		if opts.ReverseWinding {
			reverse(face)
		}
		m.addFace(face, mat, "", start, opts)
	}

	if err := lr.Err(); err != nil {
		return nil, fmt.Errorf("error reading from DXF source: %w", err)
	}
	return m, nil
}

func appendDistinct(face []geom.Vector3, v geom.Vector3) []geom.Vector3 {
	if n := len(face); n > 0 && face[n-1] == v {
		return face
	}
	return append(face, v)
}
