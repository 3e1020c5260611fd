package geom

import "image/color"

// LightGray is the fill used when a face has no usable material.
var LightGray = color.RGBA{R: 192, G: 192, B: 192, A: 255}

// Material is only consulted while geometry is loaded.
type Material struct {
	Name         string
	Diffuse      color.RGBA
	CullBackFace bool
}

// DefaultMaterial is light gray with back-face culling on.
func DefaultMaterial() Material {
	return Material{
		Name:         "default",
		Diffuse:      LightGray,
		CullBackFace: true,
	}
}

// ColorFromFloats converts 0..1 channels to RGBA, clamping out-of-range values.
func ColorFromFloats(r, g, b float64) color.RGBA {
	return color.RGBA{R: channel(r), G: channel(g), B: channel(b), A: 255}
}

func channel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
