package main

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/taigrr/spincube/pkg/render"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

type snapshotOptions struct {
	width     int
	height    int
	scale     int
	frames    int
	dt        float64
	out       string
	wireframe bool
	caption   bool
}

func newSnapshotCmd(o *options) *cobra.Command {
	so := &snapshotOptions{}
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render a few frames headlessly and save the last one as PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, closeLog, err := o.newLogger(os.Stderr)
			if err != nil {
				return err
			}
			defer closeLog()

			img, stats, err := renderSnapshot(o, so, logger)
			if err != nil {
				return err
			}
			if err := render.SaveImagePNG(img, so.out); err != nil {
				return err
			}
			logger.Info("saved snapshot", "file", so.out, "drawn", stats.Drawn, "culled", stats.Culled)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&so.width, "width", 160, "framebuffer width in pixels")
	flags.IntVar(&so.height, "height", 120, "framebuffer height in pixels")
	flags.IntVar(&so.scale, "scale", 4, "output pixels per framebuffer pixel")
	flags.IntVar(&so.frames, "frames", 60, "frames to advance before saving")
	flags.Float64Var(&so.dt, "dt", 1.0/60, "seconds per frame")
	flags.StringVarP(&so.out, "out", "o", "spincube.png", "output PNG path")
	flags.BoolVar(&so.wireframe, "wireframe", false, "outline triangles instead of filling them")
	flags.BoolVar(&so.caption, "caption", true, "stamp mesh name and frame stats on the image")
	return cmd
}

// renderSnapshot advances the pipeline so.frames times by so.dt and returns
// the last frame scaled up by so.scale.
func renderSnapshot(o *options, so *snapshotOptions, logger *log.Logger) (*image.RGBA, render.FrameStats, error) {
	var stats render.FrameStats
	if so.frames <= 0 {
		return nil, stats, fmt.Errorf("frames must be positive, got %d", so.frames)
	}
	if so.scale <= 0 {
		return nil, stats, fmt.Errorf("scale must be positive, got %d", so.scale)
	}

	cfg, err := o.config(so.width, so.height)
	if err != nil {
		return nil, stats, err
	}
	bg, err := o.background()
	if err != nil {
		return nil, stats, err
	}
	loader, err := o.meshLoader(logger)
	if err != nil {
		return nil, stats, err
	}

	fb := render.NewFramebuffer(cfg.Width, cfg.Height)
	var surface render.Surface = fb
	if so.wireframe {
		surface = render.NewWireframe(fb, render.ColorGreen)
	}

	p := render.NewPipeline(cfg, surface,
		render.WithMeshLoader(loader),
		render.WithLogger(logger),
	)
	if err := p.OnInit(); err != nil {
		return nil, stats, fmt.Errorf("init: %w", err)
	}

	for frame := range so.frames {
		fb.Clear(bg)
		if err := p.OnFrameUpdate(so.dt); err != nil {
			return nil, stats, fmt.Errorf("frame %d: %w", frame, err)
		}
	}
	stats = p.Stats()
	logger.Debug("snapshot rendered", "frames", so.frames, "angle", p.Angle())

	src := fb.ToImage()
	dst := image.NewRGBA(image.Rect(0, 0, cfg.Width*so.scale, cfg.Height*so.scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	if so.caption {
		drawCaption(dst, fmt.Sprintf("%s  t=%.2fs  %d drawn  %d culled",
			o.meshName(), p.Angle(), stats.Drawn, stats.Culled))
	}
	return dst, stats, nil
}

// drawCaption writes text in the top-left corner.
func drawCaption(img draw.Image, text string) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.P(4, 4+face.Ascent),
	}
	d.DrawString(text)
}
