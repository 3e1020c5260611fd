package render

import "github.com/andrerochasouza/view3d/geom"

// ClipNearPlane clips a camera-space polygon to z >= zNear
// (Sutherland–Hodgman against a single plane). The result may have fewer than
// three vertices, which callers treat as invisible.
func ClipNearPlane(points []geom.Vector3, zNear float64) []geom.Vector3 {
	out := make([]geom.Vector3, 0, len(points)+1)
	if len(points) == 0 {
		return out
	}

	prev := points[len(points)-1]
	prevIn := prev.Z >= zNear
	for _, cur := range points {
		curIn := cur.Z >= zNear
		if curIn {
			if !prevIn {
				out = append(out, IntersectNearPlane(prev, cur, zNear))
			}
			out = append(out, cur)
		} else if prevIn {
			out = append(out, IntersectNearPlane(prev, cur, zNear))
		}
		prev, prevIn = cur, curIn
	}
	return out
}

// IntersectNearPlane returns where segment p1-p2 crosses z = zNear. A segment
// parallel to the plane returns p1.
func IntersectNearPlane(p1, p2 geom.Vector3, zNear float64) geom.Vector3 {
	dz := p2.Z - p1.Z
	if dz == 0 {
		return p1
	}
	t := (zNear - p1.Z) / dz
	return geom.Vector3{
		X: p1.X + t*(p2.X-p1.X),
		Y: p1.Y + t*(p2.Y-p1.Y),
		Z: zNear,
	}
}

type edge int

const (
	edgeLeft edge = iota
	edgeRight
	edgeTop
	edgeBottom
)

// ClipPolygon clips a projected polygon to the screen rectangle, with one
// pixel of slack on the right and bottom so fills reach the last column.
func ClipPolygon(points []Point, width, height float32) []Point {
	out := points
	for _, e := range []edge{edgeLeft, edgeRight, edgeTop, edgeBottom} {
		if len(out) == 0 {
			break
		}
		out = clipEdge(out, e, width+1, height+1)
	}
	if out == nil {
		return []Point{}
	}
	return out
}

func inside(p Point, e edge, maxX, maxY float32) bool {
	switch e {
	case edgeLeft:
		return p.X >= 0
	case edgeRight:
		return p.X <= maxX
	case edgeTop:
		return p.Y >= 0
	default:
		return p.Y <= maxY
	}
}

func intersectEdge(a, b Point, e edge, maxX, maxY float32) Point {
	switch e {
	case edgeLeft, edgeRight:
		x := float32(0)
		if e == edgeRight {
			x = maxX
		}
		t := (x - a.X) / (b.X - a.X)
		return Point{X: x, Y: a.Y + t*(b.Y-a.Y)}
	default:
		y := float32(0)
		if e == edgeBottom {
			y = maxY
		}
		t := (y - a.Y) / (b.Y - a.Y)
		return Point{X: a.X + t*(b.X-a.X), Y: y}
	}
}

func clipEdge(points []Point, e edge, maxX, maxY float32) []Point {
	out := make([]Point, 0, len(points)+1)
	prev := points[len(points)-1]
	prevIn := inside(prev, e, maxX, maxY)
	for _, cur := range points {
		curIn := inside(cur, e, maxX, maxY)
		if curIn {
			if !prevIn {
				out = append(out, intersectEdge(prev, cur, e, maxX, maxY))
			}
			out = append(out, cur)
		} else if prevIn {
			out = append(out, intersectEdge(prev, cur, e, maxX, maxY))
		}
		prev, prevIn = cur, curIn
	}
	return out
}
