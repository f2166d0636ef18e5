package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw converts the framebuffer to terminal cells and draws them into area.
// Each terminal row shows two framebuffer rows: ▀ with fg=top, bg=bottom.
// Framebuffer pixel (0, 0) lands on the area's top-left cell.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := (row - area.Min.Y) * 2
		if topY >= fb.Height {
			break
		}

		for col := area.Min.X; col < area.Max.X; col++ {
			x := col - area.Min.X
			if x >= fb.Width {
				break
			}

			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(fb.GetPixel(x, topY)),
					Bg: rgbaToColor(fb.GetPixel(x, topY+1)),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// CellSize returns the terminal size (columns, rows) needed to show a
// framebuffer of the given pixel size.
func CellSize(width, height int) (cols, rows int) {
	return width, (height + 1) / 2
}

// PixelSize returns the framebuffer size that fills a terminal of the
// given size.
func PixelSize(cols, rows int) (width, height int) {
	return cols, rows * 2
}

// rgbaToColor converts color.RGBA to Go's color.Color interface.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil // Transparent = no color
	}
	return c
}

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// Colors for convenience
var (
	ColorBlack = color.RGBA{0, 0, 0, 255}
	ColorWhite = color.RGBA{255, 255, 255, 255}
	ColorGreen = color.RGBA{0, 255, 128, 255}
	ColorSlate = color.RGBA{30, 30, 40, 255}
)

// RGB creates an opaque color from RGB values.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}

// Grey creates an opaque grey with r = g = b = v.
func Grey(v uint8) color.RGBA {
	return RGB(v, v, v)
}
