package bsp

import (
	"log"

	"github.com/andrerochasouza/view3d/geom"
)

// None marks an absent child.
const None = -1

// Node holds one partition polygon and the indices of its children.
type Node struct {
	Polygon *geom.Polygon
	Front   int
	Back    int
}

// IsLeaf reports whether both children are absent.
func (n Node) IsLeaf() bool {
	return n.Front == None && n.Back == None
}

// Tree is an arena of nodes. It is read-only once Build returns.
type Tree struct {
	nodes []Node
	root  int
	depth int
}

type buildTask struct {
	polys  []*geom.Polygon
	parent int
	front  bool
	depth  int
}

// Build partitions polys into a tree. The first remaining polygon is always
// the partition and nothing is split: a polygon crossing the plane is
// classified by its centroid alone. Returns nil for empty input.
func Build(polys []*geom.Polygon) *Tree {
	if len(polys) == 0 {
		return nil
	}

	log.Println("Creating BSP Tree...")

	t := &Tree{
		nodes: make([]Node, 0, len(polys)),
		root:  None,
	}
	straddling := 0

	stack := []buildTask{{polys: polys, parent: None, depth: 1}}
	for len(stack) > 0 {
		task := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		partition := task.polys[0]
		normal := partition.Normal()
		centre := partition.Centroid()
		plane := partition.Plane()

		var frontList, backList []*geom.Polygon
		for _, poly := range task.polys[1:] {
			if plane.Straddles(poly) {
				straddling++
			}
			toPoly := poly.Centroid().Sub(centre)
			if normal.Dot(toPoly) >= 0 {
				frontList = append(frontList, poly)
			} else {
				backList = append(backList, poly)
			}
		}

		idx := len(t.nodes)
		t.nodes = append(t.nodes, Node{Polygon: partition, Front: None, Back: None})
		if task.parent == None {
			t.root = idx
		} else if task.front {
			t.nodes[task.parent].Front = idx
		} else {
			t.nodes[task.parent].Back = idx
		}
		if task.depth > t.depth {
			t.depth = task.depth
		}

		if len(backList) > 0 {
			stack = append(stack, buildTask{polys: backList, parent: idx, front: false, depth: task.depth + 1})
		}
		if len(frontList) > 0 {
			stack = append(stack, buildTask{polys: frontList, parent: idx, front: true, depth: task.depth + 1})
		}
	}

	log.Printf("BSP Tree Created. Nodes: %d, leaves: %d, depth: %d", len(t.nodes), t.Leaves(), t.depth)
	if straddling > 0 {
		log.Printf("BSP: %d polygons straddle a partition plane and were classified by centroid", straddling)
	}

	return t
}

// Len is the number of nodes, which equals the number of input polygons.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.nodes)
}

// Leaves counts the nodes without children.
func (t *Tree) Leaves() int {
	if t == nil {
		return 0
	}
	leaves := 0
	for _, n := range t.nodes {
		if n.IsLeaf() {
			leaves++
		}
	}
	return leaves
}

func (t *Tree) Depth() int {
	if t == nil {
		return 0
	}
	return t.depth
}

// Root returns the root index, or None for an empty tree.
func (t *Tree) Root() int {
	if t == nil {
		return None
	}
	return t.root
}

func (t *Tree) Node(i int) Node {
	return t.nodes[i]
}

// Walk visits every node once in pre-order (node, front, back).
func (t *Tree) Walk(fn func(idx int, n Node)) {
	if t == nil || t.root == None {
		return
	}
	stack := []int{t.root}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.nodes[idx]
		fn(idx, n)
		if n.Back != None {
			stack = append(stack, n.Back)
		}
		if n.Front != None {
			stack = append(stack, n.Front)
		}
	}
}
