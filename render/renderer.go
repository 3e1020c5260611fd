package render

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/andrerochasouza/view3d/bsp"
	"github.com/andrerochasouza/view3d/geom"
)

const (
	DefaultFOV   = 70.0
	DefaultZNear = 0.1

	// used in place of a zero depth during projection
	zEpsilon = 1e-4
)

// View is the camera pose: a position and an orthonormal basis.
type View struct {
	Position  geom.Vector3
	Right     geom.Vector3
	Up        geom.Vector3
	Direction geom.Vector3
}

// Point is a projected screen coordinate.
type Point struct {
	X, Y float32
}

// Command is one convex polygon ready to rasterize, in paint order.
type Command struct {
	Points []Point
	Color  color.RGBA
	Source *geom.Polygon
}

// Renderer turns a BSP tree and a view into draw commands.
type Renderer struct {
	Width  int
	Height int
	// FOV is the vertical field of view in degrees.
	FOV   float64
	ZNear float64

	// Shade applies the spotlight model to fill colours.
	Shade bool
	// ClipToScreen clips projected polygons against the screen rectangle.
	ClipToScreen bool

	camPoints []geom.Vector3 // scratch, reused across polygons
}

func NewRenderer(width, height int) *Renderer {
	return &Renderer{
		Width:  width,
		Height: height,
		FOV:    DefaultFOV,
		ZNear:  DefaultZNear,
	}
}

func (r *Renderer) SetScreenSize(width, height int) {
	r.Width = width
	r.Height = height
}

// FocalLength is H / (2 tan(fov/2)) in pixels.
func (r *Renderer) FocalLength() float64 {
	return float64(r.Height) / (2 * math.Tan(mgl64.DegToRad(r.FOV)/2))
}

// Render walks the tree back to front and returns the visible polygons in
// paint order. A nil tree renders nothing.
func (r *Renderer) Render(tree *bsp.Tree, view View) []Command {
	if tree == nil {
		return nil
	}

	basis := ViewMatrix(view)
	f := r.FocalLength()
	halfW := float64(r.Width) / 2
	halfH := float64(r.Height) / 2

	cmds := make([]Command, 0, tree.Len())
	tree.Traverse(view.Position, func(poly *geom.Polygon) {
		if Culled(poly, view.Position) {
			return
		}

		r.camPoints = r.camPoints[:0]
		for i := 0; i < poly.VertexCount(); i++ {
			r.camPoints = append(r.camPoints, ToCamera(basis, view.Position, poly.Vertex(i)))
		}

		clipped := ClipNearPlane(r.camPoints, r.ZNear)
		if len(clipped) < 3 {
			return
		}

		points := make([]Point, len(clipped))
		for i, p := range clipped {
			points[i] = Project(p, f, halfW, halfH)
		}

		if r.ClipToScreen {
			points = ClipPolygon(points, float32(r.Width), float32(r.Height))
			if len(points) < 3 {
				return
			}
		}

		col := poly.Color()
		if r.Shade {
			normal := geom.FromVec3(basis.Mul3x1(poly.Normal().Vec3()))
			col = Shade(col, normal, centroidOf(clipped))
		}

		cmds = append(cmds, Command{Points: points, Color: col, Source: poly})
	})
	return cmds
}

// Culled reports whether a one-sided polygon faces away from the camera.
func Culled(poly *geom.Polygon, camera geom.Vector3) bool {
	if !poly.CullBackFace() {
		return false
	}
	toPoly := poly.Centroid().Sub(camera).Normalize()
	return poly.Normal().Dot(toPoly) < 0
}

// ViewMatrix has the camera basis as rows, so M·(p - cam) is (right, up, dir)
// coordinates.
func ViewMatrix(view View) mgl64.Mat3 {
	return mgl64.Mat3FromRows(view.Right.Vec3(), view.Up.Vec3(), view.Direction.Vec3())
}

// ToCamera maps a world point into camera space.
func ToCamera(basis mgl64.Mat3, camera, p geom.Vector3) geom.Vector3 {
	return geom.FromVec3(basis.Mul3x1(p.Sub(camera).Vec3()))
}

// Project applies the pinhole projection with screen y pointing down.
func Project(p geom.Vector3, f, halfW, halfH float64) Point {
	z := p.Z
	if z == 0 {
		z = zEpsilon
	}
	return Point{
		X: float32(p.X*f/z + halfW),
		Y: float32(-p.Y*f/z + halfH),
	}
}

func centroidOf(points []geom.Vector3) geom.Vector3 {
	var sum geom.Vector3
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Mul(1 / float64(len(points)))
}
