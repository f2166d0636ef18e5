package render

import "github.com/taigrr/spincube/pkg/math3d"

// Directional light used for flat shading. It travels along -Z, toward the
// camera, so faces turned toward the viewer are the brightest.
var lightDirection = math3d.V3(0, 0, -1)

// minAlignment keeps lit faces from going fully black.
const minAlignment = 0.1

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}

// LightToColor maps a light alignment in [lo, hi] to a grey level: the
// clamped value is normalized to [0, 1], scaled to [0, 255] and truncated.
// lo must differ from hi.
func LightToColor(alignment, lo, hi float64) Color {
	clamped := Clamp(alignment, lo, hi)
	normalized := (clamped - lo) / (hi - lo)
	return Grey(uint8(normalized * 255))
}

// Shade returns the flat color for a face with unit normal n.
func Shade(n math3d.Vec3) Color {
	alignment := lightDirection.Normalize().Dot(n)
	alignment = max(alignment, minAlignment)
	return LightToColor(alignment, -1, 1)
}
