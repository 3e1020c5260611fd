package collision

import "github.com/andrerochasouza/view3d/geom"

// Collider is one of *Sphere or *AABB.
type Collider interface {
	Position() geom.Vector3
	MoveTo(p geom.Vector3)
	Bounds() (min, max geom.Vector3)
}

type Sphere struct {
	Center geom.Vector3
	Radius float64
}

func NewSphere(center geom.Vector3, radius float64) *Sphere {
	return &Sphere{Center: center, Radius: radius}
}

func (s *Sphere) Position() geom.Vector3 { return s.Center }

func (s *Sphere) MoveTo(p geom.Vector3) { s.Center = p }

func (s *Sphere) Bounds() (geom.Vector3, geom.Vector3) {
	r := geom.Vector3{X: s.Radius, Y: s.Radius, Z: s.Radius}
	return s.Center.Sub(r), s.Center.Add(r)
}

// AABB is an axis-aligned box. Its position is the centre.
type AABB struct {
	Min geom.Vector3
	Max geom.Vector3
}

func NewAABB(min, max geom.Vector3) *AABB {
	return &AABB{Min: min, Max: max}
}

// NewAABBAt builds a box of the given full size centred on center.
func NewAABBAt(center, size geom.Vector3) *AABB {
	half := size.Mul(0.5)
	return &AABB{Min: center.Sub(half), Max: center.Add(half)}
}

func (b *AABB) Position() geom.Vector3 { return b.Center() }

func (b *AABB) Center() geom.Vector3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

func (b *AABB) Size() geom.Vector3 {
	return b.Max.Sub(b.Min)
}

// MoveTo recentres the box on p, keeping its size.
func (b *AABB) MoveTo(p geom.Vector3) {
	half := b.Size().Mul(0.5)
	b.Min = p.Sub(half)
	b.Max = p.Add(half)
}

func (b *AABB) Bounds() (geom.Vector3, geom.Vector3) { return b.Min, b.Max }

// ClosestPoint clamps p onto the box.
func (b *AABB) ClosestPoint(p geom.Vector3) geom.Vector3 {
	return geom.Vector3{
		X: clampf(p.X, b.Min.X, b.Max.X),
		Y: clampf(p.Y, b.Min.Y, b.Max.Y),
		Z: clampf(p.Z, b.Min.Z, b.Max.Z),
	}
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
