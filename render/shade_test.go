package render

import (
	"image/color"
	"testing"

	"github.com/andrerochasouza/view3d/geom"
)

func TestShade(t *testing.T) {
	grey := color.RGBA{R: 200, G: 200, B: 200, A: 255}

	testCases := []struct {
		name     string
		base     color.RGBA
		centre   geom.Vector3
		normal   geom.Vector3
		expected color.RGBA
	}{
		{
			name:     "Head-on lighting, in spotlight center",
			base:     grey,
			centre:   geom.Vector3{Z: 10},
			normal:   geom.Vector3{Z: 1},
			expected: grey,
		},
		{
			name:     "Opposite winding, in spotlight center",
			base:     grey,
			centre:   geom.Vector3{Z: 10},
			normal:   geom.Vector3{Z: -1},
			expected: grey,
		},
		{
			name:     "90 degrees to light, diffuse should be 0",
			base:     grey,
			centre:   geom.Vector3{X: 10, Z: 10},
			normal:   geom.Vector3{X: 1},
			expected: color.RGBA{R: 116, G: 116, B: 116, A: 255}, // ambient only
		},
		{
			name:     "45 degrees to light, off spotlight center",
			base:     grey,
			centre:   geom.Vector3{X: 10, Z: 10},
			normal:   geom.Vector3{X: 0.70710678118, Z: 0.70710678118},
			expected: color.RGBA{R: 117, G: 117, B: 117, A: 255},
		},
		{
			name:     "Behind the spotlight",
			base:     grey,
			centre:   geom.Vector3{Z: -10},
			normal:   geom.Vector3{Z: 1},
			expected: color.RGBA{R: 116, G: 116, B: 116, A: 255},
		},
		{
			name:     "Color clamping low",
			base:     color.RGBA{R: 10, G: 10, B: 10, A: 255},
			centre:   geom.Vector3{Z: 10},
			normal:   geom.Vector3{Y: 1},
			expected: color.RGBA{R: 7, G: 7, B: 7, A: 255},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// 45 degrees: diffuse 0.7071, spot 0.7071^10 = 0.03125,
			// brightness 0.65 + 0.7071*0.03125*0.35 = 0.6577, c = 240 - 157 = 83
			result := Shade(tc.base, tc.normal, tc.centre)
			if result != tc.expected {
				t.Errorf("Shade() = %v, want %v", result, tc.expected)
			}
		})
	}
}
