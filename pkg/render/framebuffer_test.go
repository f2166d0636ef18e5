package render

import (
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFramebufferClear(t *testing.T) {
	for _, size := range [][2]int{{1, 1}, {3, 5}, {17, 9}, {0, 0}} {
		fb := NewFramebuffer(size[0], size[1])
		fb.Clear(ColorSlate)
		if got := fb.CountPixels(ColorSlate); got != size[0]*size[1] {
			t.Errorf("%dx%d: cleared %d pixels, want %d", size[0], size[1], got, size[0]*size[1])
		}
	}
}

func TestFramebufferPixelBounds(t *testing.T) {
	fb := NewFramebuffer(4, 3)
	fb.SetPixel(2, 1, ColorWhite)
	if fb.GetPixel(2, 1) != ColorWhite {
		t.Error("SetPixel did not write the pixel")
	}

	// Out of bounds writes are ignored, reads are transparent
	for _, p := range [][2]int{{-1, 0}, {4, 0}, {0, -1}, {0, 3}} {
		fb.SetPixel(p[0], p[1], ColorGreen)
		if got := fb.GetPixel(p[0], p[1]); got != (Color{}) {
			t.Errorf("GetPixel(%d, %d) = %v, want zero", p[0], p[1], got)
		}
	}
	if fb.CountPixels(ColorGreen) != 0 {
		t.Error("out of bounds SetPixel wrote into the buffer")
	}
}

func TestFillTriangleCoverage(t *testing.T) {
	tests := []struct {
		name                   string
		x0, y0, x1, y1, x2, y2 float64
		want                   int
	}{
		// Pixel centres with x+y <= 9: 10+9+...+1
		{"right triangle", 0, 0, 10, 0, 0, 10, 55},
		{"reversed winding", 0, 0, 0, 10, 10, 0, 55},
		{"rotated vertex order", 10, 0, 0, 10, 0, 0, 55},
		{"degenerate line", 0, 0, 5, 5, 10, 10, 0},
		{"degenerate point", 3, 3, 3, 3, 3, 3, 0},
		{"entirely off screen", -30, -30, -20, -30, -30, -20, 0},
		{"beyond int range right", 1e19, 0, 2e19, 0, 1e19, 10, 0},
		{"beyond int range below", 0, 1e19, 10, 1e19, 0, 2e19, 0},
		{"beyond int range left", -2e19, 0, -1e19, 0, -1e19, 10, 0},
		{"NaN vertex", 0, 0, math.NaN(), 0, 0, 10, 0},
		{"infinite vertex", 0, 0, math.Inf(1), 0, 0, 10, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb := NewFramebuffer(20, 20)
			fb.Clear(ColorBlack)
			fb.FillTriangle(tc.x0, tc.y0, tc.x1, tc.y1, tc.x2, tc.y2, ColorWhite)
			if got := fb.CountPixels(ColorWhite); got != tc.want {
				t.Errorf("covered %d pixels, want %d", got, tc.want)
			}
		})
	}
}

func TestFillTriangleClipsToBuffer(t *testing.T) {
	fb := NewFramebuffer(8, 6)
	fb.Clear(ColorBlack)

	// Covers the whole buffer and far beyond
	fb.FillTriangle(-100, -100, 300, -100, -100, 300, ColorWhite)
	if got := fb.CountPixels(ColorWhite); got != 48 {
		t.Errorf("covered %d pixels, want all 48", got)
	}
}

func TestFillTriangleHugeCoordinates(t *testing.T) {
	fb := NewFramebuffer(64, 32)
	fb.Clear(ColorBlack)

	done := make(chan struct{})
	go func() {
		defer close(done)
		fb.FillTriangle(1e19, 0, 2e19, 0, 1e19, 10, ColorWhite)
		// Spans the buffer with endpoints far outside it
		fb.FillTriangle(-1e19, 5, 1e19, 5, 0, 1e19, ColorGreen)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("FillTriangle did not return for coordinates beyond int range")
	}
	if fb.CountPixels(ColorWhite) != 0 {
		t.Error("off-screen triangle drew pixels")
	}
}

func TestFillTriangleOverwrites(t *testing.T) {
	fb := NewFramebuffer(20, 20)
	fb.Clear(ColorBlack)

	fb.FillTriangle(0, 0, 20, 0, 0, 20, ColorWhite)
	fb.FillTriangle(0, 0, 10, 0, 0, 10, ColorGreen)

	if fb.GetPixel(1, 1) != ColorGreen {
		t.Error("later triangle should overwrite earlier one")
	}
	if fb.GetPixel(12, 2) != ColorWhite {
		t.Error("pixel outside the second triangle should keep the first color")
	}
}

func TestDrawLine(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		want           int
	}{
		{"horizontal", 0, 0, 9, 0, 10},
		{"vertical", 2, 0, 2, 4, 5},
		{"diagonal", 0, 0, 4, 4, 5},
		{"reversed", 9, 0, 0, 0, 10},
		{"single point", 3, 3, 3, 3, 1},
		{"clipped", -5, 1, 4, 1, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb := NewFramebuffer(10, 10)
			fb.DrawLine(tc.x0, tc.y0, tc.x1, tc.y1, ColorWhite)
			if got := fb.CountPixels(ColorWhite); got != tc.want {
				t.Errorf("drew %d pixels, want %d", got, tc.want)
			}
		})
	}
}

func TestFramebufferSavePNG(t *testing.T) {
	fb := NewFramebuffer(6, 4)
	fb.Clear(ColorSlate)
	fb.SetPixel(5, 3, ColorGreen)

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := fb.SavePNG(path); err != nil {
		t.Fatalf("SavePNG() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 6 || img.Bounds().Dy() != 4 {
		t.Errorf("image size = %v, want 6x4", img.Bounds())
	}
	r, g, b, _ := img.At(5, 3).RGBA()
	if r>>8 != 0 || g>>8 != 255 || b>>8 != 128 {
		t.Errorf("pixel (5, 3) = %d,%d,%d, want 0,255,128", r>>8, g>>8, b>>8)
	}
}

func TestSaveImagePNGBadPath(t *testing.T) {
	fb := NewFramebuffer(1, 1)
	if err := fb.SavePNG(filepath.Join(t.TempDir(), "missing", "frame.png")); err == nil {
		t.Error("expected error for a missing directory")
	}
}

func TestCellAndPixelSize(t *testing.T) {
	cols, rows := CellSize(80, 47)
	if cols != 80 || rows != 24 {
		t.Errorf("CellSize(80, 47) = %d, %d, want 80, 24", cols, rows)
	}
	w, h := PixelSize(80, 24)
	if w != 80 || h != 48 {
		t.Errorf("PixelSize(80, 24) = %d, %d, want 80, 48", w, h)
	}
}

func BenchmarkFillTriangle(b *testing.B) {
	fb := NewFramebuffer(320, 200)

	for b.Loop() {
		fb.FillTriangle(10, 10, 300, 40, 120, 190, ColorWhite)
	}
}

func BenchmarkClear(b *testing.B) {
	fb := NewFramebuffer(320, 200)

	for b.Loop() {
		fb.Clear(ColorBlack)
	}
}
