package main

import (
	"context"
	"fmt"
	"image"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/spf13/cobra"
	"github.com/taigrr/spincube/pkg/engine"
	"github.com/taigrr/spincube/pkg/render"
)

type windowOptions struct {
	width  int
	height int
	scale  int
}

func newWindowCmd(o *options) *cobra.Command {
	wo := &windowOptions{}
	cmd := &cobra.Command{
		Use:   "window",
		Short: "Render in a desktop window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWindow(cmd.Context(), o, wo)
		},
	}
	cmd.Flags().IntVar(&wo.width, "width", 320, "framebuffer width in pixels")
	cmd.Flags().IntVar(&wo.height, "height", 240, "framebuffer height in pixels")
	cmd.Flags().IntVar(&wo.scale, "scale", 2, "window pixels per framebuffer pixel")
	return cmd
}

// windowGame adapts the pipeline to ebiten: Update advances one tick, Draw
// uploads the framebuffer.
type windowGame struct {
	ctx      context.Context
	pipeline *render.Pipeline
	fb       *render.Framebuffer
	wire     *render.Wireframe
	throttle *engine.Throttle
	hud      *hud
	bg       render.Color
	logger   *log.Logger

	img       *image.RGBA
	fbImg     *ebiten.Image
	wireframe bool
	showHUD   bool
}

func (g *windowGame) Update() error {
	select {
	case <-g.ctx.Done():
		return ebiten.Termination
	default:
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.throttle.Toggle()
	case inpututil.IsKeyJustPressed(ebiten.KeyX):
		g.wireframe = !g.wireframe
	case inpututil.IsKeyJustPressed(ebiten.KeySlash):
		g.showHUD = !g.showHUD
	}

	if g.wireframe {
		g.pipeline.SetSurface(g.wire)
	} else {
		g.pipeline.SetSurface(g.fb)
	}
	g.fb.Clear(g.bg)

	// Ebiten calls Update at a fixed rate, so one tick is the elapsed time
	g.throttle.Update()
	elapsed := g.throttle.Scale(1 / float64(ebiten.TPS()))
	if err := g.pipeline.OnFrameUpdate(elapsed); err != nil {
		return fmt.Errorf("frame: %w", err)
	}
	g.hud.UpdateFPS()
	return nil
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	if g.fbImg == nil {
		g.img = image.NewRGBA(image.Rect(0, 0, g.fb.Width, g.fb.Height))
		g.fbImg = ebiten.NewImage(g.fb.Width, g.fb.Height)
	}

	// Opaque colors only, so straight and premultiplied alpha agree
	for i, c := range g.fb.Pixels {
		j := i * 4
		g.img.Pix[j+0] = c.R
		g.img.Pix[j+1] = c.G
		g.img.Pix[j+2] = c.B
		g.img.Pix[j+3] = c.A
	}
	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)

	if g.showHUD {
		ebitenutil.DebugPrint(screen, g.hud.Status(g.pipeline.Stats()))
	}
}

func (g *windowGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.fb.Width, g.fb.Height
}

func runWindow(ctx context.Context, o *options, wo *windowOptions) error {
	logger, closeLog, err := o.newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	if wo.scale <= 0 {
		return fmt.Errorf("scale must be positive, got %d", wo.scale)
	}
	cfg, err := o.config(wo.width, wo.height)
	if err != nil {
		return err
	}
	bg, err := o.background()
	if err != nil {
		return err
	}
	loader, err := o.meshLoader(logger)
	if err != nil {
		return err
	}

	fb := render.NewFramebuffer(cfg.Width, cfg.Height)
	p := render.NewPipeline(cfg, fb,
		render.WithMeshLoader(loader),
		render.WithLogger(logger),
	)
	if err := p.OnInit(); err != nil {
		return fmt.Errorf("init: %w", err)
	}

	g := &windowGame{
		ctx:      ctx,
		pipeline: p,
		fb:       fb,
		wire:     render.NewWireframe(fb, render.ColorGreen),
		throttle: engine.NewThrottle(o.fps),
		hud:      newHUD(o.meshName(), p.Mesh().TriangleCount()),
		bg:       bg,
		logger:   logger,
	}

	ebiten.SetWindowTitle("spincube - " + o.meshName())
	ebiten.SetWindowSize(cfg.Width*wo.scale, cfg.Height*wo.scale)
	ebiten.SetTPS(o.fps)

	logger.Debug("opening window", "width", cfg.Width, "height", cfg.Height, "scale", wo.scale, "tps", o.fps)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}
