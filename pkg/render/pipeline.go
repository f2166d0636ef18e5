package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/taigrr/spincube/pkg/math3d"
	"github.com/taigrr/spincube/pkg/models"
)

var (
	ErrNoSurface       = errors.New("pipeline has no surface to draw on")
	ErrNotInitialized  = errors.New("pipeline used before OnInit")
	ErrNegativeElapsed = errors.New("elapsed time must not be negative")
)

// modelOffset pushes the rotated mesh away from the camera.
var modelOffset = math3d.V3(0, 0, 3)

// MeshLoader produces the mesh a pipeline renders. It runs once, in OnInit.
type MeshLoader func() (*models.Mesh, error)

// FrameStats counts what happened to the triangles of the last frame.
type FrameStats struct {
	Triangles int // Triangles processed
	Culled    int // Back-facing, discarded
	Drawn     int // Submitted to the surface
}

// Pipeline renders a spinning mesh: every frame each triangle is rotated,
// pushed away from the camera, back-face culled, flat shaded, projected
// and handed to the surface.
//
// A Pipeline is not safe for concurrent use.
type Pipeline struct {
	cfg     Config
	surface Surface
	loader  MeshLoader
	offset  math3d.Vec3
	logger  *log.Logger

	mesh   *models.Mesh
	camera *Camera
	angle  float64 // Accumulated elapsed time, radians
	stats  FrameStats
	ready  bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithMeshLoader sets where OnInit gets the mesh from. Defaults to the
// unit cube.
func WithMeshLoader(loader MeshLoader) Option {
	return func(p *Pipeline) {
		p.loader = loader
	}
}

// WithLogger sets the logger. Defaults to discarding everything.
func WithLogger(logger *log.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithAngle starts the angle accumulator at angle instead of zero, so a
// rebuilt pipeline can pick up where an old one stopped.
func WithAngle(angle float64) Option {
	return func(p *Pipeline) {
		p.angle = angle
	}
}

// WithOffset replaces the translation applied after rotation.
func WithOffset(offset math3d.Vec3) Option {
	return func(p *Pipeline) {
		p.offset = offset
	}
}

// NewPipeline creates a pipeline drawing into surface. Call OnInit before
// the first frame.
func NewPipeline(cfg Config, surface Surface, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:     cfg,
		surface: surface,
		loader:  models.LoadCube,
		offset:  modelOffset,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// OnInit loads the mesh and computes the projection. It must succeed before
// OnFrameUpdate is called.
func (p *Pipeline) OnInit() error {
	if p.surface == nil {
		return ErrNoSurface
	}
	if err := p.cfg.validateProjection(); err != nil {
		return err
	}

	mesh, err := p.loader()
	if err != nil {
		return fmt.Errorf("load mesh: %w", err)
	}
	if mesh == nil {
		return errors.New("load mesh: loader returned no mesh")
	}

	p.mesh = mesh
	p.camera = NewCamera(p.cfg)
	p.ready = true

	p.logger.Debug("pipeline initialized",
		"mesh", mesh.Name,
		"triangles", mesh.TriangleCount(),
		"viewport", fmt.Sprintf("%dx%d", p.cfg.Width, p.cfg.Height),
		"aspect", p.camera.AspectRatio,
		"fov", p.camera.FOV,
	)
	return nil
}

// OnFrameUpdate advances the angle by elapsed seconds and draws one frame.
// Triangles reach the surface in mesh order; with no depth buffer, later
// ones overwrite earlier ones.
func (p *Pipeline) OnFrameUpdate(elapsed float64) error {
	if !p.ready {
		return ErrNotInitialized
	}
	if elapsed < 0 {
		return fmt.Errorf("%w: %v", ErrNegativeElapsed, elapsed)
	}

	p.angle += elapsed
	rotZ, rotX := FrameRotation(p.angle)

	p.stats = FrameStats{}
	for _, tri := range p.mesh.Triangles {
		p.stats.Triangles++

		screen, visible := p.Process(tri, rotZ, rotX)
		if !visible {
			p.stats.Culled++
			continue
		}

		p.surface.FillTriangle(
			screen.P[0].X, screen.P[0].Y,
			screen.P[1].X, screen.P[1].Y,
			screen.P[2].X, screen.P[2].Y,
			screen.Color,
		)
		p.stats.Drawn++
	}
	return nil
}

// FrameRotation returns the rotation pair for an accumulated angle: Z
// turns at half the rate of X, and Z is applied first.
func FrameRotation(angle float64) (rotZ, rotX math3d.Mat4) {
	return math3d.RotateZ(angle * 0.5), math3d.RotateX(angle)
}

// Process runs one model-space triangle through the pipeline. It returns
// the triangle in pixel coordinates with its shaded color, or false when
// the triangle faces away from the camera. Before OnInit there is no
// camera and every triangle is reported as not visible.
func (p *Pipeline) Process(tri models.Triangle, rotZ, rotX math3d.Mat4) (models.Triangle, bool) {
	if !p.ready {
		return models.Triangle{}, false
	}

	// Rotate: Z first, then X
	rotated := tri.Transform(rotZ).Transform(rotX)

	// Push away from the camera
	translated := rotated.Translate(p.offset)

	// Back-face test against the ray from the camera to the first vertex
	normal := translated.Normal()
	if p.camera.IsBackFacing(normal, translated.P[0]) {
		return models.Triangle{}, false
	}

	translated.Color = Shade(normal)

	// Project to [-1, 1] and map onto the viewport
	projected := p.camera.Project(translated)
	for i := range projected.P {
		projected.P[i] = p.camera.ToViewport(projected.P[i])
	}
	return projected, true
}

// Angle returns the accumulated rotation angle in radians.
func (p *Pipeline) Angle() float64 {
	return p.angle
}

// Stats returns the counts for the last frame.
func (p *Pipeline) Stats() FrameStats {
	return p.stats
}

// Mesh returns the mesh loaded by OnInit, or nil before.
func (p *Pipeline) Mesh() *models.Mesh {
	return p.mesh
}

// Camera returns the camera built by OnInit, or nil before.
func (p *Pipeline) Camera() *Camera {
	return p.camera
}

// SetSurface redirects draw calls, e.g. to switch between filled and
// wireframe output of the same size.
func (p *Pipeline) SetSurface(s Surface) {
	p.surface = s
}
