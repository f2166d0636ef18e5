// Package render turns meshes into pixels: the per-frame transform, cull,
// shade and project pipeline plus the surfaces it draws into.
package render

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
)

// Surface is the drawing primitive the pipeline submits visible triangles
// to. Implementations fill opaquely with no blending and no depth test.
type Surface interface {
	FillTriangle(x0, y0, x1, y1, x2, y2 float64, c Color)
}

// Framebuffer is a 2D array of pixels.
// Terminal output uses half-block characters (▀), so a terminal of R rows
// shows a framebuffer 2R pixels tall.
type Framebuffer struct {
	Width  int     // Width in pixels
	Height int     // Height in pixels
	Pixels []Color // Row-major pixel data
}

// NewFramebuffer creates a new framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]Color, width*height),
	}
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c Color) {
	n := len(fb.Pixels)
	if n == 0 {
		return
	}
	// Use copy-doubling for faster clearing
	fb.Pixels[0] = c
	for i := 1; i < n; i *= 2 {
		copy(fb.Pixels[i:], fb.Pixels[:i])
	}
}

// SetPixel sets a pixel at (x, y) to the given color.
// Bounds checking is performed.
func (fb *Framebuffer) SetPixel(x, y int, c Color) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) Color {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return Color{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// edgeCoeffs returns A, B, C for the edge function
// edge(x,y) = A*x + B*y + C of the directed edge (x0,y0) -> (x1,y1).
// Positive = left of edge, negative = right of edge, zero = on edge.
func edgeCoeffs(x0, y0, x1, y1 float64) (A, B, C float64) {
	A = y0 - y1 // dy
	B = x1 - x0 // -dx
	C = x0*y1 - x1*y0
	return
}

// edgeFunc evaluates edge function at point (x, y)
func edgeFunc(A, B, C, x, y float64) float64 {
	return A*x + B*y + C
}

// FillTriangle rasterizes a solid triangle given in pixel coordinates.
// A pixel is covered when its centre lies inside or on the triangle.
// Both windings are accepted; zero-area and non-finite triangles draw
// nothing.
func (fb *Framebuffer) FillTriangle(x0, y0, x1, y1, x2, y2 float64, c Color) {
	for _, v := range [6]float64{x0, y0, x1, y1, x2, y2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return
		}
	}

	// Twice the signed area; its sign tells the winding
	area2 := (x1-x0)*(y2-y0) - (y1-y0)*(x2-x0)
	if area2 == 0 {
		return
	}
	if area2 < 0 {
		// Make the edge functions positive inside
		x1, y1, x2, y2 = x2, y2, x1, y1
	}

	// Bounding box, clamped to the screen in float space so far off-screen
	// coordinates never reach the int conversion
	bx0, bx1 := min(x0, x1, x2), max(x0, x1, x2)
	by0, by1 := min(y0, y1, y2), max(y0, y1, y2)
	if bx0 > float64(fb.Width-1) || bx1 < 0 || by0 > float64(fb.Height-1) || by1 < 0 {
		return
	}
	minX := int(math.Max(0, math.Floor(bx0)))
	maxX := int(math.Min(float64(fb.Width-1), math.Ceil(bx1)))
	minY := int(math.Max(0, math.Floor(by0)))
	maxY := int(math.Min(float64(fb.Height-1), math.Ceil(by1)))
	if minX > maxX || minY > maxY {
		return
	}

	// Edge 0: v1 -> v2, Edge 1: v2 -> v0, Edge 2: v0 -> v1
	A0, B0, C0 := edgeCoeffs(x1, y1, x2, y2)
	A1, B1, C1 := edgeCoeffs(x2, y2, x0, y0)
	A2, B2, C2 := edgeCoeffs(x0, y0, x1, y1)

	// Evaluate edge functions at the first pixel centre
	px := float64(minX) + 0.5
	py := float64(minY) + 0.5
	w0Row := edgeFunc(A0, B0, C0, px, py)
	w1Row := edgeFunc(A1, B1, C1, px, py)
	w2Row := edgeFunc(A2, B2, C2, px, py)

	for y := minY; y <= maxY; y++ {
		w0, w1, w2 := w0Row, w1Row, w2Row
		row := fb.Pixels[y*fb.Width : (y+1)*fb.Width]

		for x := minX; x <= maxX; x++ {
			if w0 >= 0 && w1 >= 0 && w2 >= 0 {
				row[x] = c
			}

			// Step in X direction
			w0 += A0
			w1 += A1
			w2 += A2
		}

		// Step in Y direction
		w0Row += B0
		w1Row += B1
		w2Row += B2
	}
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's algorithm.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// CountPixels returns how many pixels currently hold color c.
func (fb *Framebuffer) CountPixels(c Color) int {
	n := 0
	for _, p := range fb.Pixels {
		if p == c {
			n++
		}
	}
	return n
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			img.SetRGBA(x, y, fb.Pixels[y*fb.Width+x])
		}
	}
	return img
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	return SaveImagePNG(fb.ToImage(), path)
}

// SaveImagePNG writes img to path as PNG.
func SaveImagePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
