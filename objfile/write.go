package objfile

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/andrerochasouza/view3d/geom"
)

// mesh is a vertex list with duplicates merged.
type mesh struct {
	points []geom.Vector3
	index  map[geom.Vector3]int
}

func newMesh() *mesh {
	return &mesh{index: make(map[geom.Vector3]int)}
}

func (m *mesh) add(v geom.Vector3) int {
	if i, ok := m.index[v]; ok {
		return i
	}
	m.points = append(m.points, v)
	m.index[v] = len(m.points) - 1
	return len(m.points) - 1
}

// Save writes polys to name, choosing DXF or PLY by extension.
func Save(name string, polys []*geom.Polygon) error {
	var write func(io.Writer, []*geom.Polygon) error
	switch strings.ToLower(path.Ext(name)) {
	case ".dxf":
		write = WriteDXF
	case ".ply":
		write = WritePLY
	default:
		return fmt.Errorf("%s: %w", name, ErrUnsupportedFormat)
	}

	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", name, err)
	}
	if err := write(f, polys); err != nil {
		f.Close()
		return fmt.Errorf("could not write %s: %w", name, err)
	}
	log.Printf("Saved %d polygons to %s", len(polys), name)
	return f.Close()
}

// WriteDXF writes every polygon as 3DFACE entities. Triangles repeat their
// third vertex; larger polygons are split into a fan of quads and triangles.
// Colours and groups are not kept.
func WriteDXF(w io.Writer, polys []*geom.Polygon) error {
	bw := bufio.NewWriter(w)
	writePair := func(code int, value string) {
		fmt.Fprintf(bw, "%d\n%s\n", code, value)
	}

	writePair(0, "SECTION")
	writePair(2, "HEADER")
	writePair(0, "ENDSEC")
	writePair(0, "SECTION")
	writePair(2, "ENTITIES")

	for _, p := range polys {
		for _, face := range dxfFaces(p.Vertices()) {
			writePair(0, "3DFACE")
			writePair(8, "0")
			for i, v := range face {
				writePair(10+i, formatFloat(v.X))
				writePair(20+i, formatFloat(v.Y))
				writePair(30+i, formatFloat(v.Z))
			}
		}
	}

	writePair(0, "ENDSEC")
	writePair(0, "EOF")
	return bw.Flush()
}

// dxfFaces splits a polygon into four-vertex records sharing its first
// vertex.
func dxfFaces(vertices []geom.Vector3) [][4]geom.Vector3 {
	var faces [][4]geom.Vector3
	for i := 1; i+1 < len(vertices); i += 2 {
		f := [4]geom.Vector3{vertices[0], vertices[i], vertices[i+1], vertices[i+1]}
		if i+2 < len(vertices) {
			f[3] = vertices[i+2]
		}
		faces = append(faces, f)
	}
	return faces
}

// WritePLY writes an ASCII PLY with shared vertices and one colour per face.
func WritePLY(w io.Writer, polys []*geom.Polygon) error {
	m := newMesh()
	faces := make([][]int, len(polys))
	for i, p := range polys {
		for _, v := range p.Vertices() {
			faces[i] = append(faces[i], m.add(v))
		}
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "ply")
	fmt.Fprintln(bw, "format ascii 1.0")
	fmt.Fprintln(bw, "comment Generated by view3d with face colors")
	fmt.Fprintf(bw, "element vertex %d\n", len(m.points))
	fmt.Fprintln(bw, "property float x")
	fmt.Fprintln(bw, "property float y")
	fmt.Fprintln(bw, "property float z")
	fmt.Fprintf(bw, "element face %d\n", len(polys))
	fmt.Fprintln(bw, "property list uchar int vertex_indices")
	fmt.Fprintln(bw, "property uchar red")
	fmt.Fprintln(bw, "property uchar green")
	fmt.Fprintln(bw, "property uchar blue")
	fmt.Fprintln(bw, "end_header")

	for _, v := range m.points {
		fmt.Fprintf(bw, "%s %s %s\n", formatFloat(v.X), formatFloat(v.Y), formatFloat(v.Z))
	}

	for i, p := range polys {
		fmt.Fprintf(bw, "%d", len(faces[i]))
		for _, idx := range faces[i] {
			fmt.Fprintf(bw, " %d", idx)
		}
		c := p.Color()
		fmt.Fprintf(bw, " %d %d %d\n", c.R, c.G, c.B)
	}

	return bw.Flush()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
