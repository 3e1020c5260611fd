package geom

import "math"

// Plane is the set of points p with Normal·p + D == 0.
type Plane struct {
	Normal Vector3
	D      float64
}

const planeThickness = 1e-9

// NewPlane builds the plane through point with the given normal.
func NewPlane(normal, point Vector3) Plane {
	return Plane{Normal: normal, D: -normal.Dot(point)}
}

// Distance is the signed distance of p when Normal is unit length.
func (p Plane) Distance(point Vector3) float64 {
	return p.Normal.Dot(point) + p.D
}

// Side returns 1 in front, -1 behind and 0 on the plane.
func (p Plane) Side(point Vector3) int {
	d := p.Distance(point)
	if math.Abs(d) < planeThickness {
		return 0
	}
	if d > 0 {
		return 1
	}
	return -1
}

// Straddles reports whether poly has vertices strictly on both sides.
func (p Plane) Straddles(poly *Polygon) bool {
	front, back := false, false
	for _, v := range poly.vertices {
		switch p.Side(v) {
		case 1:
			front = true
		case -1:
			back = true
		}
	}
	return front && back
}
