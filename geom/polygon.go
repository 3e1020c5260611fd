package geom

import (
	"errors"
	"fmt"
	"image/color"
)

// ErrDegenerateGeometry is returned for polygons with fewer than three vertices.
var ErrDegenerateGeometry = errors.New("geom: degenerate polygon")

// Polygon is a convex, co-planar face. It is immutable once built.
type Polygon struct {
	vertices     []Vector3
	col          color.RGBA
	cullBackFace bool
	group        string

	normal   Vector3
	centroid Vector3
}

// NewPolygon copies the vertices and caches the normal and centroid.
func NewPolygon(vertices []Vector3, col color.RGBA, cullBackFace bool, group string) (*Polygon, error) {
	if len(vertices) < 3 {
		return nil, fmt.Errorf("polygon with %d vertices: %w", len(vertices), ErrDegenerateGeometry)
	}

	p := &Polygon{
		vertices:     make([]Vector3, len(vertices)),
		col:          col,
		cullBackFace: cullBackFace,
		group:        group,
	}
	copy(p.vertices, vertices)
	p.normal = createNormal(p.vertices)
	p.centroid = midPoint(p.vertices)
	return p, nil
}

// NewPolygonFromMaterial builds a polygon coloured and culled according to m.
func NewPolygonFromMaterial(vertices []Vector3, m Material, group string) (*Polygon, error) {
	return NewPolygon(vertices, m.Diffuse, m.CullBackFace, group)
}

// Vertices returns a copy of the vertex list.
func (p *Polygon) Vertices() []Vector3 {
	out := make([]Vector3, len(p.vertices))
	copy(out, p.vertices)
	return out
}

func (p *Polygon) VertexCount() int {
	return len(p.vertices)
}

// Vertex returns the i-th vertex.
func (p *Polygon) Vertex(i int) Vector3 {
	return p.vertices[i]
}

func (p *Polygon) Color() color.RGBA {
	return p.col
}

func (p *Polygon) CullBackFace() bool {
	return p.cullBackFace
}

func (p *Polygon) Group() string {
	return p.group
}

// Normal is normalize((v1-v0) x (v2-v0)).
func (p *Polygon) Normal() Vector3 {
	return p.normal
}

// Centroid is the average of the vertices.
func (p *Polygon) Centroid() Vector3 {
	return p.centroid
}

// Plane returns the supporting plane of the polygon.
func (p *Polygon) Plane() Plane {
	return NewPlane(p.normal, p.vertices[0])
}

func createNormal(vertices []Vector3) Vector3 {
	edge1 := vertices[1].Sub(vertices[0])
	edge2 := vertices[2].Sub(vertices[0])
	return edge1.Cross(edge2).Normalize()
}

func midPoint(vertices []Vector3) Vector3 {
	var sum Vector3
	for _, v := range vertices {
		sum = sum.Add(v)
	}
	count := float64(len(vertices))
	return Vector3{sum.X / count, sum.Y / count, sum.Z / count}
}
