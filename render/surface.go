package render

import "image/color"

// OutlineColor is the stroke used when outlines are on.
var OutlineColor = color.RGBA{R: 100, G: 100, B: 100, A: 20}

// Surface is anything that can rasterize convex polygons. The coordinate
// slices are reused between calls and must not be retained.
type Surface interface {
	FillPolygon(xs, ys []float32, clr color.RGBA)
	StrokePolygon(xs, ys []float32, width float32, clr color.RGBA)
}

// Draw hands the commands to the surface in order.
func Draw(surface Surface, cmds []Command, outline bool) {
	var xs, ys []float32
	for _, cmd := range cmds {
		xs, ys = xs[:0], ys[:0]
		for _, p := range cmd.Points {
			xs = append(xs, p.X)
			ys = append(ys, p.Y)
		}
		surface.FillPolygon(xs, ys, cmd.Color)
		if outline {
			surface.StrokePolygon(xs, ys, 1.0, OutlineColor)
		}
	}
}
