// Package objfile reads level geometry: Wavefront OBJ with MTL materials,
// plus the 3DFACE subset of DXF and ASCII PLY.
package objfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"path"
	"strings"

	"github.com/andrerochasouza/view3d/collision"
	"github.com/andrerochasouza/view3d/geom"
)

var (
	// ErrResourceNotFound is returned when the primary geometry file is
	// missing or the name is empty.
	ErrResourceNotFound = errors.New("objfile: resource not found")
	// ErrUnsupportedFormat is returned for unknown extensions and binary PLY.
	ErrUnsupportedFormat = errors.New("objfile: unsupported format")
)

// DefaultCollisionGroups are the OBJ groups that become collision objects.
var DefaultCollisionGroups = []string{"Wall", "Floor"}

type Options struct {
	// CollisionGroups are matched case-insensitively against group names.
	CollisionGroups []string
	// ReverseWinding flips the vertex order of DXF and PLY faces.
	ReverseWinding bool
}

func DefaultOptions() Options {
	return Options{CollisionGroups: DefaultCollisionGroups}
}

// Model is everything a geometry file produced.
type Model struct {
	Polygons  []*geom.Polygon
	Materials map[string]geom.Material
	Objects   []collision.Object
}

func newModel() *Model {
	return &Model{Materials: make(map[string]geom.Material)}
}

// Load reads name from fsys, choosing the parser by extension. OBJ is the
// default for files without a known extension.
func Load(fsys fs.FS, name string, opts Options) (*Model, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("empty geometry path: %w", ErrResourceNotFound)
	}

	f, err := fsys.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", name, ErrResourceNotFound)
		}
		return nil, fmt.Errorf("could not open %s: %w", name, err)
	}
	defer f.Close()

	log.Printf("Loading geometry from %s", name)

	var m *Model
	switch strings.ToLower(path.Ext(name)) {
	case ".dxf":
		m, err = ParseDXF(f, opts)
	case ".ply":
		m, err = ParsePLY(f, opts)
	case ".obj", "":
		m, err = parseOBJ(f, opts, fsLibraries(fsys, path.Dir(name)))
	default:
		return nil, fmt.Errorf("%s: %w", name, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", name, err)
	}

	log.Printf("Polygons: %d, materials: %d, collision objects: %d",
		len(m.Polygons), len(m.Materials), len(m.Objects))
	return m, nil
}

// addFace builds a polygon, recording a collision object for collision
// groups. Degenerate faces are skipped with a warning.
func (m *Model) addFace(vertices []geom.Vector3, mat geom.Material, group string, line int, opts Options) {
	poly, err := geom.NewPolygonFromMaterial(vertices, mat, group)
	if err != nil {
		log.Printf("line %d: skipping face: %v", line, err)
		return
	}
	m.Polygons = append(m.Polygons, poly)

	if isCollisionGroup(group, opts.CollisionGroups) {
		m.Objects = append(m.Objects, collision.ObjectFromVertices(group, vertices))
	}
}

func isCollisionGroup(group string, groups []string) bool {
	if group == "" {
		return false
	}
	for _, g := range groups {
		if strings.EqualFold(g, group) {
			return true
		}
	}
	return false
}

// lineReader is a bufio.Scanner that counts lines.
type lineReader struct {
	scanner *bufio.Scanner
	line    int
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{scanner: bufio.NewScanner(r)}
}

func (lr *lineReader) Scan() bool {
	if lr.scanner.Scan() {
		lr.line++
		return true
	}
	return false
}

func (lr *lineReader) Text() string { return lr.scanner.Text() }
func (lr *lineReader) Err() error   { return lr.scanner.Err() }

// Line is the 1-based number of the current line.
func (lr *lineReader) Line() int { return lr.line }

func reverse(vertices []geom.Vector3) {
	for i, j := 0, len(vertices)-1; i < j; i, j = i+1, j-1 {
		vertices[i], vertices[j] = vertices[j], vertices[i]
	}
}
