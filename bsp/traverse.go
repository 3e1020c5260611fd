package bsp

import "github.com/andrerochasouza/view3d/geom"

type step struct {
	idx  int
	emit bool
}

// Traverse emits every polygon once, farthest half-space first.
//
// At each node the side of the camera is dot(normal, camera - centroid) >= 0.
// In front: back subtree, the node, front subtree. Behind: the mirror.
func (t *Tree) Traverse(camera geom.Vector3, emit func(*geom.Polygon)) {
	if t == nil || t.root == None {
		return
	}

	stack := []step{{idx: t.root}}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := t.nodes[s.idx]
		if s.emit {
			emit(n.Polygon)
			continue
		}

		near, far := n.Front, n.Back
		if !InFront(n.Polygon, camera) {
			near, far = far, near
		}

		// pushed in reverse: far, self, near
		if near != None {
			stack = append(stack, step{idx: near})
		}
		stack = append(stack, step{idx: s.idx, emit: true})
		if far != None {
			stack = append(stack, step{idx: far})
		}
	}
}

// Order returns the polygons in draw order for the given camera position.
func (t *Tree) Order(camera geom.Vector3) []*geom.Polygon {
	out := make([]*geom.Polygon, 0, t.Len())
	t.Traverse(camera, func(p *geom.Polygon) {
		out = append(out, p)
	})
	return out
}

// InFront reports whether point lies on the normal side of the polygon's plane.
func InFront(poly *geom.Polygon, point geom.Vector3) bool {
	return poly.Normal().Dot(point.Sub(poly.Centroid())) >= 0
}
