package objfile

import (
	"errors"
	"image/color"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/andrerochasouza/view3d/geom"
)

const roomOBJ = `# two walls and a floor
mtllib room.mtl
v 0 0 0
v 4 0 0
v 4 0 4
v 0 0 4
v 0 3 0
v 4 3 0

g Floor
usemtl stone
f 1 2 3 4

g Wall
usemtl brick
f 1/1 2/2 6/3 5/4   # texture refs are ignored
g Decoration
usemtl missing
f -6//1 -5//2 -2//3
`

const roomMTL = `newmtl stone
Kd 0.5 0.5 0.5
cullBackFace true

newmtl brick
Kd 1.0 0.0 0.0
`

func TestLoadOBJ(t *testing.T) {
	fsys := fstest.MapFS{
		"maps/room.obj": {Data: []byte(roomOBJ)},
		"maps/room.mtl": {Data: []byte(roomMTL)},
	}

	m, err := Load(fsys, "maps/room.obj", DefaultOptions())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(m.Polygons) != 3 {
		t.Fatalf("got %d polygons, want 3", len(m.Polygons))
	}
	if len(m.Materials) != 2 {
		t.Errorf("got %d materials, want 2", len(m.Materials))
	}

	testCases := []struct {
		name     string
		index    int
		group    string
		vertices int
		color    color.RGBA
		cull     bool
	}{
		{"Floor uses stone", 0, "Floor", 4, color.RGBA{R: 128, G: 128, B: 128, A: 255}, true},
		{"Wall uses brick without culling", 1, "Wall", 4, color.RGBA{R: 255, A: 255}, false},
		{"Unknown material falls back to default", 2, "Decoration", 3, geom.LightGray, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := m.Polygons[tc.index]
			if p.Group() != tc.group {
				t.Errorf("Group() = %q, want %q", p.Group(), tc.group)
			}
			if p.VertexCount() != tc.vertices {
				t.Errorf("VertexCount() = %d, want %d", p.VertexCount(), tc.vertices)
			}
			if p.Color() != tc.color {
				t.Errorf("Color() = %v, want %v", p.Color(), tc.color)
			}
			if p.CullBackFace() != tc.cull {
				t.Errorf("CullBackFace() = %v, want %v", p.CullBackFace(), tc.cull)
			}
		})
	}

	// negative indices: -6 is vertex 1, -5 vertex 2, -2 vertex 5
	if got := m.Polygons[2].Vertex(2); got != (geom.Vector3{Y: 3}) {
		t.Errorf("negative index resolved to %v, want (0,3,0)", got)
	}

	if len(m.Objects) != 2 {
		t.Fatalf("got %d collision objects, want 2", len(m.Objects))
	}
	floor := m.Objects[0]
	if floor.Name != "Floor" || floor.Min != (geom.Vector3{}) || floor.Max != (geom.Vector3{X: 4, Z: 4}) {
		t.Errorf("floor object = %+v", floor)
	}
}

func TestLoadMissingMaterialLibrary(t *testing.T) {
	fsys := fstest.MapFS{
		"room.obj": {Data: []byte(roomOBJ)},
	}

	m, err := Load(fsys, "room.obj", DefaultOptions())
	if err != nil {
		t.Fatalf("missing MTL should not be fatal: %v", err)
	}
	for _, p := range m.Polygons {
		if p.Color() != geom.LightGray || !p.CullBackFace() {
			t.Errorf("polygon %q did not fall back to the default material", p.Group())
		}
	}
}

func TestLoadErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"bad.obj":    {Data: []byte("v 1 2 x\n")},
		"range.obj":  {Data: []byte("v 0 0 0\nv 1 0 0\nf 1 2 3\n")},
		"model.3ds":  {Data: []byte{0x4d, 0x4d}},
		"binary.ply": {Data: []byte("ply\nformat binary_little_endian 1.0\nend_header\n")},
	}

	testCases := []struct {
		name    string
		path    string
		target  error
		message string
	}{
		{"Missing file", "nope.obj", ErrResourceNotFound, ""},
		{"Empty path", "", ErrResourceNotFound, ""},
		{"Bad number", "bad.obj", nil, "line 1"},
		{"Index out of range", "range.obj", nil, "line 3"},
		{"Unknown extension", "model.3ds", ErrUnsupportedFormat, ""},
		{"Binary PLY", "binary.ply", ErrUnsupportedFormat, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(fsys, tc.path, DefaultOptions())
			if err == nil {
				t.Fatal("Load() error = nil")
			}
			if tc.target != nil && !errors.Is(err, tc.target) {
				t.Errorf("Load() error = %v, want %v", err, tc.target)
			}
			if tc.message != "" && !strings.Contains(err.Error(), tc.message) {
				t.Errorf("Load() error = %q, want it to mention %q", err, tc.message)
			}
		})
	}
}

func TestParseOBJSkipsDegenerateFaces(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 1 1 0\nf 1 2\nf 1 2 3\n"
	m, err := ParseOBJ(strings.NewReader(src), DefaultOptions())
	if err != nil {
		t.Fatalf("ParseOBJ() error = %v", err)
	}
	if len(m.Polygons) != 1 {
		t.Errorf("got %d polygons, want 1", len(m.Polygons))
	}
}

func TestCollisionGroupsAreConfigurable(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 1 1 0\ng crate\nf 1 2 3\ng wall\nf 1 2 3\n"
	m, err := ParseOBJ(strings.NewReader(src), Options{CollisionGroups: []string{"Crate"}})
	if err != nil {
		t.Fatalf("ParseOBJ() error = %v", err)
	}
	if len(m.Objects) != 1 || m.Objects[0].Name != "crate" {
		t.Errorf("Objects = %+v, want only the crate", m.Objects)
	}
}

func TestParseMTL(t *testing.T) {
	mats, err := ParseMTL(strings.NewReader(roomMTL + "Kd 2 -1 0.25 # clamped\n"))
	if err != nil {
		t.Fatalf("ParseMTL() error = %v", err)
	}

	brick := mats["brick"]
	if brick.Diffuse != (color.RGBA{R: 255, G: 0, B: 64, A: 255}) {
		t.Errorf("brick Diffuse = %v", brick.Diffuse)
	}
	if brick.CullBackFace {
		t.Error("materials default to culling off")
	}
	if !mats["stone"].CullBackFace {
		t.Error("stone should cull back faces")
	}

	lenient, err := ParseMTL(strings.NewReader("newmtl a\ncullBackFace TRUE\nnewmtl b\ncullBackFace yes\n"))
	if err != nil {
		t.Fatalf("ParseMTL() error = %v", err)
	}
	if !lenient["a"].CullBackFace {
		t.Error("cullBackFace TRUE should turn culling on")
	}
	if lenient["b"].CullBackFace {
		t.Error("cullBackFace yes should leave culling off")
	}
}

const quadDXF = `0
SECTION
0
3DFACE
8
0
10
0.0
20
0.0
30
0.0
11
1.0
21
0.0
31
0.0
12
1.0
22
1.0
32
0.0
13
0.0
23
1.0
33
0.0
0
3DFACE
8
0
10
0.0
20
0.0
30
1.0
11
1.0
21
0.0
31
1.0
12
1.0
22
1.0
32
1.0
13
1.0
23
1.0
33
1.0
0
ENDSEC
`

func TestLoadDXF(t *testing.T) {
	m, err := Load(fstest.MapFS{"shape.dxf": {Data: []byte(quadDXF)}}, "shape.dxf", DefaultOptions())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(m.Polygons) != 2 {
		t.Fatalf("got %d polygons, want 2", len(m.Polygons))
	}
	if m.Polygons[0].VertexCount() != 4 {
		t.Errorf("quad has %d vertices, want 4", m.Polygons[0].VertexCount())
	}
	if m.Polygons[1].VertexCount() != 3 {
		t.Errorf("repeated fourth vertex should give a triangle, got %d", m.Polygons[1].VertexCount())
	}
	if m.Polygons[0].Normal() != (geom.Vector3{Z: 1}) {
		t.Errorf("Normal() = %v, want (0,0,1)", m.Polygons[0].Normal())
	}

	rev, err := ParseDXF(strings.NewReader(quadDXF), Options{ReverseWinding: true})
	if err != nil {
		t.Fatalf("ParseDXF() error = %v", err)
	}
	if rev.Polygons[0].Normal() != (geom.Vector3{Z: -1}) {
		t.Errorf("reversed Normal() = %v, want (0,0,-1)", rev.Polygons[0].Normal())
	}
}

func TestParseDXFTruncated(t *testing.T) {
	src := "0\n3DFACE\n8\n0\n10\n0.0\n20\n"
	if _, err := ParseDXF(strings.NewReader(src), DefaultOptions()); err == nil {
		t.Error("ParseDXF() accepted a truncated face")
	}
}

func TestParsePLY(t *testing.T) {
	testCases := []struct {
		name     string
		src      string
		expected color.RGBA
	}{
		{
			name: "Face colours",
			src: `ply
format ascii 1.0
element vertex 3
property float x
property float y
property float z
element face 1
property list uchar int vertex_indices
property uchar red
property uchar green
property uchar blue
end_header
0 0 0
1 0 0
0 1 0
3 0 1 2 10 20 30
`,
			expected: color.RGBA{R: 10, G: 20, B: 30, A: 255},
		},
		{
			name: "Vertex colours are averaged",
			src: `ply
format ascii 1.0
element vertex 3
property float x
property float y
property float z
property uchar red
property uchar green
property uchar blue
element face 1
property list uchar int vertex_indices
end_header
0 0 0 30 0 0
1 0 0 0 30 0
0 1 0 0 0 30
3 0 1 2
`,
			expected: color.RGBA{R: 10, G: 10, B: 10, A: 255},
		},
		{
			name: "No colour uses the default material",
			src: `ply
format ascii 1.0
element vertex 3
property float x
property float y
property float z
element face 1
property list uchar int vertex_indices
end_header
0 0 0
1 0 0
0 1 0
3 0 1 2
`,
			expected: geom.LightGray,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := ParsePLY(strings.NewReader(tc.src), DefaultOptions())
			if err != nil {
				t.Fatalf("ParsePLY() error = %v", err)
			}
			if len(m.Polygons) != 1 {
				t.Fatalf("got %d polygons, want 1", len(m.Polygons))
			}
			if m.Polygons[0].Color() != tc.expected {
				t.Errorf("Color() = %v, want %v", m.Polygons[0].Color(), tc.expected)
			}
		})
	}
}

func TestParsePLYErrors(t *testing.T) {
	testCases := []struct {
		name    string
		src     string
		message string
	}{
		{"Negative vertex count", "ply\nformat ascii 1.0\nelement vertex -1\nproperty float x\nend_header\n", "negative vertex count"},
		{"Negative face count", "ply\nformat ascii 1.0\nelement vertex 0\nelement face -1\nend_header\n", "negative face count"},
		{"Count larger than the data", "ply\nformat ascii 1.0\nelement vertex 1000000000000\nend_header\n0 0 0\n", "unexpected end of file"},
		{"Binary", "ply\nformat binary_little_endian 1.0\nend_header\n", "unsupported"},
		{"No end_header", "ply\nformat ascii 1.0\n", "missing end_header"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParsePLY(strings.NewReader(tc.src), DefaultOptions())
			if err == nil {
				t.Fatal("ParsePLY() error = nil")
			}
			if !strings.Contains(err.Error(), tc.message) {
				t.Errorf("ParsePLY() error = %q, want it to mention %q", err, tc.message)
			}
		})
	}
}
