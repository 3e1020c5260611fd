package collision

import (
	"math"

	"github.com/andrerochasouza/view3d/geom"
)

// Info describes one overlap. Normal points toward the first collider and
// Penetration is the vector that separates it. Both are zero when Hit is
// false.
type Info struct {
	Hit         bool
	Normal      geom.Vector3
	Penetration geom.Vector3
}

// Depth is the penetration length.
func (i Info) Depth() float64 {
	return i.Penetration.Len()
}

// Negate returns the same contact seen from the other collider.
func (i Info) Negate() Info {
	if !i.Hit {
		return i
	}
	return Info{Hit: true, Normal: i.Normal.Negate(), Penetration: i.Penetration.Negate()}
}

var fallbackNormal = geom.Vector3{X: 1}

// Check tests a against b. Unknown collider types never collide.
func Check(a, b Collider) Info {
	if !boundsOverlap(a, b) {
		return Info{}
	}

	switch ca := a.(type) {
	case *Sphere:
		switch cb := b.(type) {
		case *Sphere:
			return sphereSphere(ca, cb)
		case *AABB:
			return sphereAABB(ca, cb)
		}
	case *AABB:
		switch cb := b.(type) {
		case *Sphere:
			return sphereAABB(cb, ca).Negate()
		case *AABB:
			return aabbAABB(ca, cb)
		}
	}
	return Info{}
}

// boundsOverlap rejects pairs whose bounding boxes do not even touch.
func boundsOverlap(a, b Collider) bool {
	aMin, aMax := a.Bounds()
	bMin, bMax := b.Bounds()
	return aMin.X <= bMax.X && aMax.X >= bMin.X &&
		aMin.Y <= bMax.Y && aMax.Y >= bMin.Y &&
		aMin.Z <= bMax.Z && aMax.Z >= bMin.Z
}

func sphereSphere(a, b *Sphere) Info {
	delta := a.Center.Sub(b.Center)
	dist := delta.Len()
	radii := a.Radius + b.Radius
	if dist > radii {
		return Info{}
	}

	normal := fallbackNormal
	if dist > 0 {
		normal = delta.Mul(1 / dist)
	}
	return Info{Hit: true, Normal: normal, Penetration: normal.Mul(radii - dist)}
}

func sphereAABB(s *Sphere, b *AABB) Info {
	closest := b.ClosestPoint(s.Center)
	delta := s.Center.Sub(closest)
	distSq := delta.LenSqr()
	if distSq > s.Radius*s.Radius {
		return Info{}
	}

	dist := math.Sqrt(distSq)
	normal := fallbackNormal
	if dist > 0 {
		normal = delta.Mul(1 / dist)
	}
	return Info{Hit: true, Normal: normal, Penetration: normal.Mul(s.Radius - dist)}
}

func aabbAABB(a, b *AABB) Info {
	overlapX := math.Min(a.Max.X, b.Max.X) - math.Max(a.Min.X, b.Min.X)
	overlapY := math.Min(a.Max.Y, b.Max.Y) - math.Max(a.Min.Y, b.Min.Y)
	overlapZ := math.Min(a.Max.Z, b.Max.Z) - math.Max(a.Min.Z, b.Min.Z)
	if overlapX < 0 || overlapY < 0 || overlapZ < 0 {
		return Info{}
	}

	ac, bc := a.Center(), b.Center()
	var normal geom.Vector3
	depth := overlapX
	switch {
	case overlapX <= overlapY && overlapX <= overlapZ:
		normal = geom.Vector3{X: sign(ac.X - bc.X)}
	case overlapY <= overlapZ:
		depth = overlapY
		normal = geom.Vector3{Y: sign(ac.Y - bc.Y)}
	default:
		depth = overlapZ
		normal = geom.Vector3{Z: sign(ac.Z - bc.Z)}
	}
	return Info{Hit: true, Normal: normal, Penetration: normal.Mul(depth)}
}

// sign treats 0 as positive so the normal is never zero.
func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
