package display

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	whiteImage = ebiten.NewImage(3, 3)
	whiteSub   *ebiten.Image
)

func init() {
	whiteImage.Fill(color.White)
	whiteSub = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

// a stroke never adds more than this many vertices for the polygons we draw
const strokeHeadroom = 1024

const maxBatchVertices = math.MaxUint16 - strokeHeadroom

// Surface rasterizes convex polygons onto an ebiten image. Fills and strokes
// go into one triangle batch so paint order is kept with few draw calls.
type Surface struct {
	dst       *ebiten.Image
	AntiAlias bool

	vertices []ebiten.Vertex
	indices  []uint16
}

func NewSurface() *Surface {
	return &Surface{AntiAlias: true}
}

// Begin starts a frame on dst, dropping anything not yet flushed.
func (s *Surface) Begin(dst *ebiten.Image) {
	s.dst = dst
	s.vertices = s.vertices[:0]
	s.indices = s.indices[:0]
}

func (s *Surface) FillPolygon(xs, ys []float32, clr color.RGBA) {
	if len(xs) < 3 {
		return
	}
	s.reserve(len(xs))
	s.vertices, s.indices = appendConvexPolygon(s.vertices, s.indices, xs, ys, clr)
}

func (s *Surface) StrokePolygon(xs, ys []float32, width float32, clr color.RGBA) {
	if len(xs) < 2 {
		return
	}
	s.reserve(len(xs) * 8)

	var path vector.Path
	path.MoveTo(xs[0], ys[0])
	for i := 1; i < len(xs); i++ {
		path.LineTo(xs[i], ys[i])
	}
	path.Close()

	start := len(s.vertices)
	s.vertices, s.indices = path.AppendVerticesAndIndicesForStroke(s.vertices, s.indices, &vector.StrokeOptions{
		Width: width,
	})
	paint(s.vertices[start:], clr)
}

// Flush draws the pending batch.
func (s *Surface) Flush() {
	if s.dst != nil && len(s.indices) > 0 {
		op := &ebiten.DrawTrianglesOptions{AntiAlias: s.AntiAlias}
		s.dst.DrawTriangles(s.vertices, s.indices, whiteSub, op)
	}
	s.vertices = s.vertices[:0]
	s.indices = s.indices[:0]
}

// reserve flushes when n more vertices would overflow uint16 indices.
func (s *Surface) reserve(n int) {
	if len(s.vertices)+n > maxBatchVertices {
		s.Flush()
	}
}

// appendConvexPolygon triangulates a convex polygon as a fan around its
// first vertex.
func appendConvexPolygon(vertices []ebiten.Vertex, indices []uint16, xs, ys []float32, clr color.RGBA) ([]ebiten.Vertex, []uint16) {
	base := uint16(len(vertices))
	start := len(vertices)
	for i := range xs {
		vertices = append(vertices, ebiten.Vertex{
			DstX: xs[i],
			DstY: ys[i],
			SrcX: 1,
			SrcY: 1,
		})
	}
	paint(vertices[start:], clr)

	for i := 2; i < len(xs); i++ {
		indices = append(indices, base, base+uint16(i-1), base+uint16(i))
	}
	return vertices, indices
}

// paint sets the colour of vertices that sample whiteSub.
func paint(vertices []ebiten.Vertex, clr color.RGBA) {
	cr := float32(clr.R) / 255.0
	cg := float32(clr.G) / 255.0
	cb := float32(clr.B) / 255.0
	ca := float32(clr.A) / 255.0

	for i := range vertices {
		vertices[i].ColorR = cr
		vertices[i].ColorG = cg
		vertices[i].ColorB = cb
		vertices[i].ColorA = ca
		vertices[i].SrcX = 1
		vertices[i].SrcY = 1
	}
}
