package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/spincube/pkg/engine"
	"github.com/taigrr/spincube/pkg/render"
)

// termView is the driver state a frame is rendered with.
type termView struct {
	cols      int
	rows      int
	wireframe bool
	showHUD   bool
	paused    bool
}

// termState is what the event goroutine shares with the render loop.
type termState struct {
	mu   sync.Mutex
	view termView
}

func (s *termState) snapshot() termView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

func (s *termState) update(fn func(v *termView)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.view)
}

// termGame drives the pipeline at the terminal's size, rebuilding it when
// the terminal is resized.
type termGame struct {
	opts     *options
	term     *uv.Terminal
	out      io.Writer
	state    *termState
	throttle *engine.Throttle
	loader   render.MeshLoader
	logger   *log.Logger
	bg       render.Color
	hud      *hud

	cols, rows int
	fb         *render.Framebuffer
	pipeline   *render.Pipeline
	view       termView
}

func (g *termGame) OnInit() error {
	g.view = g.state.snapshot()
	return g.rebuild(g.view.cols, g.view.rows, 0)
}

// rebuild creates a framebuffer and pipeline for a cols x rows terminal,
// starting the spin at angle.
func (g *termGame) rebuild(cols, rows int, angle float64) error {
	width, height := render.PixelSize(cols, rows)
	cfg, err := g.opts.config(width, height)
	if err != nil {
		return err
	}

	fb := render.NewFramebuffer(width, height)
	p := render.NewPipeline(cfg, fb,
		render.WithMeshLoader(g.loader),
		render.WithLogger(g.logger),
		render.WithAngle(angle),
	)
	if err := p.OnInit(); err != nil {
		return err
	}

	g.cols, g.rows = cols, rows
	g.fb = fb
	g.pipeline = p
	if g.hud == nil {
		g.hud = newHUD(g.opts.meshName(), p.Mesh().TriangleCount())
	}
	return nil
}

// beforeFrame applies input and resizes, then clears the framebuffer.
func (g *termGame) beforeFrame() error {
	g.view = g.state.snapshot()

	if g.view.paused != g.throttle.Paused() {
		g.throttle.Toggle()
	}

	if g.view.cols != g.cols || g.view.rows != g.rows {
		if g.view.cols <= 0 || g.view.rows <= 0 {
			g.logger.Debug("ignoring empty terminal size", "cols", g.view.cols, "rows", g.view.rows)
		} else {
			if err := g.rebuild(g.view.cols, g.view.rows, g.pipeline.Angle()); err != nil {
				return fmt.Errorf("resize: %w", err)
			}
			g.logger.Debug("resized", "cols", g.cols, "rows", g.rows, "angle", g.pipeline.Angle())
		}
	}

	if g.view.wireframe {
		g.pipeline.SetSurface(render.NewWireframe(g.fb, render.ColorGreen))
	} else {
		g.pipeline.SetSurface(g.fb)
	}
	g.fb.Clear(g.bg)
	return nil
}

func (g *termGame) OnFrameUpdate(elapsed float64) error {
	return g.pipeline.OnFrameUpdate(elapsed)
}

// present shows the frame and the HUD.
func (g *termGame) present() error {
	g.fb.Draw(g.term, uv.Rect(0, 0, g.cols, g.rows))
	if err := g.term.Display(); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	g.hud.UpdateFPS()
	g.hud.Render(g.out, g.cols, g.rows, g.view.showHUD, g.view.wireframe, g.view.paused, g.pipeline.Stats())
	return nil
}

func runTerm(ctx context.Context, o *options) error {
	// Logging to the terminal would tear up the alt screen
	logger, closeLog, err := o.newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	bg, err := o.background()
	if err != nil {
		return err
	}
	loader, err := o.meshLoader(logger)
	if err != nil {
		return err
	}

	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: terminal is %dx%d", render.ErrInvalidViewport, width, height)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		if err := term.Shutdown(context.Background()); err != nil {
			logger.Warn("terminal shutdown", "err", err)
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	state := &termState{view: termView{cols: width, rows: height}}

	// Event handler
	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				term.Erase()
				term.Resize(ev.Width, ev.Height)
				state.update(func(v *termView) {
					v.cols, v.rows = ev.Width, ev.Height
				})
			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"), ev.MatchString("ctrl+c"), ev.MatchString("q"):
					cancel()
				case ev.MatchString("space"):
					state.update(func(v *termView) { v.paused = !v.paused })
				case ev.MatchString("x"):
					state.update(func(v *termView) { v.wireframe = !v.wireframe })
				case ev.MatchString("?"), ev.MatchString("shift+/"):
					state.update(func(v *termView) { v.showHUD = !v.showHUD })
				}
			}
		}
	}()

	game := &termGame{
		opts:     o,
		term:     term,
		out:      os.Stdout,
		state:    state,
		throttle: engine.NewThrottle(o.fps),
		loader:   loader,
		logger:   logger,
		bg:       bg,
	}

	loop := &engine.Loop{
		FPS:      o.fps,
		Before:   game.beforeFrame,
		Present:  game.present,
		Throttle: game.throttle,
		Logger:   logger,
	}
	return loop.Run(ctx, game)
}
