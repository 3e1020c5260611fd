package render

import (
	"image/color"
	"math"

	"github.com/andrerochasouza/view3d/geom"
)

const (
	// minimum brightness of any surface
	ambientLight = 0.65
	// higher values give a tighter spotlight cone
	spotlightConePower   = 10.0
	spotlightLightAmount = 1.0 - ambientLight

	darkest = 7
)

// Shade darkens base with a camera-mounted spotlight. normal and centre are in
// camera space. Either winding of a face square to the view axis gets full
// brightness; faces seen edge-on fall to the ambient level.
func Shade(base color.RGBA, normal, centre geom.Vector3) color.RGBA {
	diffuseFactor := math.Abs(normal.Z)

	spotlightFactor := 1.0
	if l := centre.Len(); l > 0 {
		cosAngle := centre.Z / l
		if cosAngle < 0 {
			cosAngle = 0
		}
		spotlightFactor = math.Pow(cosAngle, spotlightConePower)
	}

	brightness := ambientLight + diffuseFactor*spotlightFactor*spotlightLightAmount

	// 1.0 leaves the colour alone, 0.0 subtracts 240
	c := 240 - int(brightness*240)

	return color.RGBA{
		R: uint8(clamp(int(base.R)-c, darkest, 255)),
		G: uint8(clamp(int(base.G)-c, darkest, 255)),
		B: uint8(clamp(int(base.B)-c, darkest, 255)),
		A: base.A,
	}
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
