package render

import (
	"math"
)

// Wireframe is a Surface that outlines triangles instead of filling them.
type Wireframe struct {
	fb    *Framebuffer
	color Color
}

// NewWireframe creates a wireframe surface drawing into fb with color.
// A zero color (A == 0) outlines each triangle in its shaded color.
func NewWireframe(fb *Framebuffer, color Color) *Wireframe {
	return &Wireframe{
		fb:    fb,
		color: color,
	}
}

// FillTriangle draws the three edges of the triangle.
func (w *Wireframe) FillTriangle(x0, y0, x1, y1, x2, y2 float64, c Color) {
	if w.color.A != 0 {
		c = w.color
	}
	w.line(x0, y0, x1, y1, c)
	w.line(x1, y1, x2, y2, c)
	w.line(x2, y2, x0, y0, c)
}

// line draws the part of the segment that lies within one pixel of the
// framebuffer. Segments with a NaN or infinite endpoint are skipped.
func (w *Wireframe) line(x0, y0, x1, y1 float64, c Color) {
	for _, v := range [4]float64{x0, y0, x1, y1} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return
		}
	}

	x0, y0, x1, y1, ok := clipSegment(x0, y0, x1, y1, -1, -1, float64(w.fb.Width), float64(w.fb.Height))
	if !ok {
		return
	}
	w.fb.DrawLine(int(math.Floor(x0)), int(math.Floor(y0)), int(math.Floor(x1)), int(math.Floor(y1)), c)
}

// clipSegment clips a segment to the rectangle [xmin, xmax] x [ymin, ymax]
// (Liang-Barsky). ok is false when no part of it lies inside.
func clipSegment(x0, y0, x1, y1, xmin, ymin, xmax, ymax float64) (cx0, cy0, cx1, cy1 float64, ok bool) {
	dx, dy := x1-x0, y1-y0
	if math.IsInf(dx, 0) || math.IsInf(dy, 0) {
		return 0, 0, 0, 0, false
	}

	t0, t1 := 0.0, 1.0
	for _, edge := range [4][2]float64{
		{-dx, x0 - xmin},
		{dx, xmax - x0},
		{-dy, y0 - ymin},
		{dy, ymax - y0},
	} {
		p, q := edge[0], edge[1]
		if p == 0 {
			// Parallel to this edge
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = min(t1, r)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}
