package objfile

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"path"
	"strconv"
	"strings"

	"github.com/andrerochasouza/view3d/geom"
)

// libraryOpener resolves an mtllib reference.
type libraryOpener func(name string) (io.ReadCloser, error)

// fsLibraries resolves material libraries relative to dir inside fsys.
func fsLibraries(fsys fs.FS, dir string) libraryOpener {
	return func(name string) (io.ReadCloser, error) {
		return fsys.Open(path.Join(dir, name))
	}
}

// ParseOBJ reads an OBJ stream. mtllib references cannot be resolved without
// a file system, so every usemtl falls back to the default material.
func ParseOBJ(r io.Reader, opts Options) (*Model, error) {
	return parseOBJ(r, opts, nil)
}

func parseOBJ(r io.Reader, opts Options, libs libraryOpener) (*Model, error) {
	m := newModel()
	lr := newLineReader(r)

	var vertices []geom.Vector3
	var group, material string

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
		case "v":
			v, err := parseVector(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lr.Line(), err)
			}
			vertices = append(vertices, v)

		case "f":
			face := make([]geom.Vector3, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				idx, err := vertexIndex(ref, len(vertices))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lr.Line(), err)
				}
				face = append(face, vertices[idx])
			}
			m.addFace(face, m.material(material), group, lr.Line(), opts)

		case "g", "o":
			group = strings.TrimSpace(strings.Join(fields[1:], " "))

		case "usemtl":
			material = strings.TrimSpace(strings.Join(fields[1:], " "))

		case "mtllib":
			for _, lib := range fields[1:] {
				if err := m.loadLibrary(libs, lib); err != nil {
					return nil, err
				}
			}
		}
	}

	if err := lr.Err(); err != nil {
		return nil, fmt.Errorf("error reading OBJ source: %w", err)
	}
	return m, nil
}

// material looks name up, falling back to the default material.
func (m *Model) material(name string) geom.Material {
	if mat, ok := m.Materials[name]; ok {
		return mat
	}
	return geom.DefaultMaterial()
}

// loadLibrary merges a material library into m. A missing library is not an
// error.
func (m *Model) loadLibrary(libs libraryOpener, name string) error {
	if libs == nil {
		log.Printf("material library %s ignored: no file system", name)
		return nil
	}

	f, err := libs(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Printf("material library %s not found, using default materials", name)
			return nil
		}
		return fmt.Errorf("could not open material library %s: %w", name, err)
	}
	defer f.Close()

	mats, err := ParseMTL(f)
	if err != nil {
		return fmt.Errorf("material library %s: %w", name, err)
	}
	for k, v := range mats {
		m.Materials[k] = v
	}
	return nil
}

func parseVector(fields []string) (geom.Vector3, error) {
	if len(fields) < 3 {
		return geom.Vector3{}, fmt.Errorf("expected 3 coordinates, got %d", len(fields))
	}
	var xyz [3]float64
	for i := range xyz {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return geom.Vector3{}, fmt.Errorf("could not parse float value '%s': %w", fields[i], err)
		}
		xyz[i] = f
	}
	return geom.Vector3{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}

// vertexIndex resolves the position part of i, i/j or i/j/k. Negative
// indices count back from the last vertex read.
func vertexIndex(ref string, count int) (int, error) {
	pos, _, _ := strings.Cut(ref, "/")
	n, err := strconv.Atoi(pos)
	if err != nil {
		return 0, fmt.Errorf("could not parse vertex index '%s': %w", ref, err)
	}

	idx := n - 1
	if n < 0 {
		idx = count + n
	}
	if n == 0 || idx < 0 || idx >= count {
		return 0, fmt.Errorf("vertex index %d out of range (%d vertices)", n, count)
	}
	return idx, nil
}
