// spincube - Spinning Cube Renderer
// Rotates a flat-shaded mesh in front of a fixed camera and draws it in your
// terminal, in a window, or to a PNG.
//
// Controls (terminal and window):
//
//	Space  - Pause / resume the spin (eased)
//	X      - Toggle wireframe mode
//	?      - Toggle HUD overlay (FPS, mesh, drawn/culled triangles)
//	Esc    - Quit
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/taigrr/spincube/pkg/models"
	"github.com/taigrr/spincube/pkg/render"
)

var version = "dev"

// options holds the flags shared by every driver.
type options struct {
	model   string
	fov     float64
	near    float64
	far     float64
	fps     int
	bg      string
	logFile string
	debug   bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := fang.Execute(ctx, newRootCmd(), fang.WithVersion(version))
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	o := &options{}

	root := &cobra.Command{
		Use:   "spincube",
		Short: "Spin a flat-shaded cube in your terminal",
		Long: `spincube rotates a mesh (the unit cube unless --model is given) in front of
a fixed camera, culls the faces turned away from it, shades the rest with a
single directional light and draws them.

Without a subcommand it runs in the terminal.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTerm(cmd.Context(), o)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&o.model, "model", "m", "", "glTF/GLB model to spin instead of the cube")
	flags.Float64Var(&o.fov, "fov", render.DefaultFOV, "field of view in degrees")
	flags.Float64Var(&o.near, "near", render.DefaultNear, "near clipping plane")
	flags.Float64Var(&o.far, "far", render.DefaultFar, "far clipping plane")
	flags.IntVar(&o.fps, "fps", 60, "target frames per second")
	flags.StringVar(&o.bg, "bg", "30,30,40", "background color (R,G,B)")
	flags.StringVar(&o.logFile, "log-file", "", "write logs to this file")
	flags.BoolVar(&o.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newTermCmd(o),
		newWindowCmd(o),
		newSnapshotCmd(o),
	)
	return root
}

func newTermCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "term",
		Short: "Render in the terminal with half-block characters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTerm(cmd.Context(), o)
		},
	}
}

// newLogger builds the logger for a driver. Logs go to --log-file when set,
// otherwise to fallback.
func (o *options) newLogger(fallback io.Writer) (*log.Logger, func() error, error) {
	w := fallback
	closer := func() error { return nil }
	if o.logFile != "" {
		f, err := os.OpenFile(o.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closer = f.Close
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: o.logFile != "",
		Prefix:          "spincube",
		Level:           log.InfoLevel,
	})
	if o.debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closer, nil
}

// config builds the render settings for a width x height viewport.
func (o *options) config(width, height int) (render.Config, error) {
	if o.fps <= 0 {
		return render.Config{}, fmt.Errorf("fps must be positive, got %d", o.fps)
	}
	cfg := render.DefaultConfig(width, height)
	cfg.FOV = o.fov
	cfg.Near = o.near
	cfg.Far = o.far
	if err := cfg.Validate(); err != nil {
		return render.Config{}, err
	}
	return cfg, nil
}

// background parses --bg.
func (o *options) background() (render.Color, error) {
	return parseColor(o.bg)
}

// meshName is the label shown in the HUD and captions.
func (o *options) meshName() string {
	if o.model == "" {
		return "cube"
	}
	return filepath.Base(o.model)
}

// loadMesh loads --model, or the cube when it is empty.
func (o *options) loadMesh(logger *log.Logger) (*models.Mesh, error) {
	if o.model == "" {
		return models.LoadCube()
	}

	ext := strings.ToLower(filepath.Ext(o.model))
	if ext != ".glb" && ext != ".gltf" {
		return nil, fmt.Errorf("unsupported format: %s (use .glb or .gltf)", ext)
	}
	mesh, err := models.LoadGLB(o.model)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded model", "file", o.meshName(), "vertices", mesh.VertexCount(), "triangles", mesh.TriangleCount())
	return mesh, nil
}

// meshLoader loads the mesh once and hands every pipeline its own copy, so
// rebuilding after a resize does not touch the disk again.
func (o *options) meshLoader(logger *log.Logger) (render.MeshLoader, error) {
	mesh, err := o.loadMesh(logger)
	if err != nil {
		return nil, err
	}
	return func() (*models.Mesh, error) {
		return mesh.Clone(), nil
	}, nil
}

var errBadColor = errors.New("color must be R,G,B with components 0-255")

func parseColor(s string) (render.Color, error) {
	var r, g, b int
	var rest string
	n, _ := fmt.Sscanf(s, "%d,%d,%d%s", &r, &g, &b, &rest)
	if n != 3 {
		return render.Color{}, fmt.Errorf("%w: %q", errBadColor, s)
	}
	for _, v := range []int{r, g, b} {
		if v < 0 || v > 255 {
			return render.Color{}, fmt.Errorf("%w: %q", errBadColor, s)
		}
	}
	return render.RGB(uint8(r), uint8(g), uint8(b)), nil
}
