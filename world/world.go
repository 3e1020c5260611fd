// Package world holds the static scene: the polygons, their BSP tree and the
// collision objects the loader found.
package world

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"

	"github.com/andrerochasouza/view3d/bsp"
	"github.com/andrerochasouza/view3d/collision"
	"github.com/andrerochasouza/view3d/geom"
	"github.com/andrerochasouza/view3d/objfile"
	"github.com/andrerochasouza/view3d/physics"
)

// ErrConfiguration is returned when no geometry path is configured.
var ErrConfiguration = errors.New("world: no geometry path configured")

type World struct {
	polygons  []*geom.Polygon
	materials map[string]geom.Material
	objects   []collision.Object
	tree      *bsp.Tree
}

// Load reads name from fsys and builds the BSP tree. Loader errors are
// returned wrapped.
func Load(fsys fs.FS, name string, opts objfile.Options) (*World, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrConfiguration
	}

	log.Printf("Loading world %s...", name)
	m, err := objfile.Load(fsys, name, opts)
	if err != nil {
		return nil, fmt.Errorf("could not load world: %w", err)
	}

	w := New(m.Polygons, m.Objects)
	w.materials = m.Materials
	log.Printf("World ready: %d polygons, %d collision objects", len(w.polygons), len(w.objects))
	return w, nil
}

// New builds a world from polygons made in code.
func New(polys []*geom.Polygon, objects []collision.Object) *World {
	return &World{
		polygons:  polys,
		materials: make(map[string]geom.Material),
		objects:   objects,
		tree:      bsp.Build(polys),
	}
}

// Tree is nil for an empty world.
func (w *World) Tree() *bsp.Tree                     { return w.tree }
func (w *World) Polygons() []*geom.Polygon           { return w.polygons }
func (w *World) Materials() map[string]geom.Material { return w.materials }
func (w *World) Objects() []collision.Object         { return w.objects }

// Colliders returns a fresh AABB per collision object.
func (w *World) Colliders() []collision.Collider {
	return collision.Colliders(w.objects)
}

// StaticBodies wraps every collision object in an immovable body for the
// physics engine.
func (w *World) StaticBodies() []*physics.StaticBody {
	bodies := make([]*physics.StaticBody, 0, len(w.objects))
	for _, o := range w.objects {
		bodies = append(bodies, physics.NewStaticBody(o.Collider()))
	}
	return bodies
}

// Bounds is the box around every polygon vertex, or false for an empty
// world.
func (w *World) Bounds() (collision.Object, bool) {
	if len(w.polygons) == 0 {
		return collision.Object{}, false
	}
	var all []geom.Vector3
	for _, p := range w.polygons {
		all = append(all, p.Vertices()...)
	}
	return collision.ObjectFromVertices("world", all), true
}
