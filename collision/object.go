package collision

import (
	"math"

	"github.com/andrerochasouza/view3d/geom"
)

// Object is a named static box built from a piece of level geometry.
type Object struct {
	Name string
	Min  geom.Vector3
	Max  geom.Vector3
}

// ObjectFromVertices returns the bounding box of vertices. An empty slice
// gives a degenerate box at the origin.
func ObjectFromVertices(name string, vertices []geom.Vector3) Object {
	if len(vertices) == 0 {
		return Object{Name: name}
	}

	min := geom.Vector3{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	max := geom.Vector3{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, v := range vertices {
		min.X = math.Min(min.X, v.X)
		min.Y = math.Min(min.Y, v.Y)
		min.Z = math.Min(min.Z, v.Z)
		max.X = math.Max(max.X, v.X)
		max.Y = math.Max(max.Y, v.Y)
		max.Z = math.Max(max.Z, v.Z)
	}
	return Object{Name: name, Min: min, Max: max}
}

// Collider returns a fresh AABB for the object.
func (o Object) Collider() *AABB {
	return NewAABB(o.Min, o.Max)
}

// Colliders converts a set of objects for use as slide obstacles.
func Colliders(objects []Object) []Collider {
	out := make([]Collider, len(objects))
	for i, o := range objects {
		out[i] = o.Collider()
	}
	return out
}
