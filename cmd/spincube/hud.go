package main

import (
	"fmt"
	"io"
	"time"

	"github.com/taigrr/spincube/pkg/render"
)

// hud renders an overlay with mesh info and frame stats.
type hud struct {
	name      string
	polyCount int
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

func newHUD(name string, polyCount int) *hud {
	return &hud{
		name:      name,
		polyCount: polyCount,
		fpsTime:   time.Now(),
	}
}

// UpdateFPS updates the FPS counter (call once per frame)
func (h *hud) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// Status is the one-line summary the window driver prints as its overlay.
func (h *hud) Status(stats render.FrameStats) string {
	return fmt.Sprintf("%s  %.0f FPS  %d/%d drawn  %d culled",
		h.name, h.fps, stats.Drawn, h.polyCount, stats.Culled)
}

// Render draws the overlay with ANSI escapes on the top and bottom rows of
// a width x height terminal.
func (h *hud) Render(w io.Writer, width, height int, show, wireframe, paused bool, stats render.FrameStats) {
	const (
		reset     = "\x1b[0m"
		bold      = "\x1b[1m"
		dim       = "\x1b[2m"
		bgBlack   = "\x1b[40m"
		fgWhite   = "\x1b[97m"
		fgGreen   = "\x1b[92m"
		fgYellow  = "\x1b[93m"
		fgCyan    = "\x1b[96m"
		clearLine = "\x1b[2K"
	)

	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}

	// Always clear the HUD rows (so toggling off works)
	fmt.Fprint(w, moveTo(1, 1)+clearLine)
	fmt.Fprint(w, moveTo(height, 1)+clearLine)

	if !show {
		return
	}

	// Top left: FPS
	fmt.Fprintf(w, "%s%s%s %.0f FPS %s", moveTo(1, 1), bgBlack, fgGreen, h.fps, reset)

	// Top middle: mesh name
	titleCol := max((width-len(h.name)-2)/2, 1)
	fmt.Fprintf(w, "%s%s%s%s %s %s", moveTo(1, titleCol), bold, bgBlack, fgWhite, h.name, reset)

	// Top right: drawn / total triangles
	polyStr := fmt.Sprintf("%d/%d tris", stats.Drawn, h.polyCount)
	polyCol := max(width-len(polyStr)-2, 1)
	fmt.Fprintf(w, "%s%s%s%s %s %s", moveTo(1, polyCol), bgBlack, fgCyan, bold, polyStr, reset)

	// Bottom: mode checkboxes
	checkWire := "[ ]"
	if wireframe {
		checkWire = "[✓]"
	}
	checkPause := "[ ]"
	if paused {
		checkPause = "[✓]"
	}
	fmt.Fprintf(w, "%s%s%s %s Wireframe  %s Paused %s", moveTo(height, 1), bgBlack, fgWhite, checkWire, checkPause, reset)

	// Bottom right: culled count
	hint := fmt.Sprintf("%d culled", stats.Culled)
	hintCol := max(width-len(hint)-2, 1)
	fmt.Fprintf(w, "%s%s%s%s %s %s", moveTo(height, hintCol), bgBlack, dim, fgYellow, hint, reset)
}
