package render

import (
	"github.com/taigrr/spincube/pkg/math3d"
	"github.com/taigrr/spincube/pkg/models"
)

// Camera is a fixed viewpoint with a perspective projection.
// Nothing about it changes after NewCamera.
type Camera struct {
	// Position in world space
	Position math3d.Vec3

	// Projection parameters
	FOV         float64 // Field of view in degrees
	AspectRatio float64 // Height / Width
	Near        float64 // Near clipping plane
	Far         float64 // Far clipping plane

	// Viewport in pixels
	Width  int
	Height int

	projMatrix math3d.Mat4
}

// NewCamera creates a camera from cfg and computes its projection matrix.
func NewCamera(cfg Config) *Camera {
	c := &Camera{
		Position:    cfg.Camera,
		FOV:         cfg.FOV,
		AspectRatio: cfg.AspectRatio(),
		Near:        cfg.Near,
		Far:         cfg.Far,
		Width:       cfg.Width,
		Height:      cfg.Height,
	}
	c.projMatrix = math3d.Perspective(c.FOV, c.AspectRatio, c.Near, c.Far)
	return c
}

// ProjectionMatrix returns the projection matrix.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	return c.projMatrix
}

// IsBackFacing reports whether a face with unit normal n through point p
// faces away from the camera. Edge-on faces (dot == 0) count as back-facing.
func (c *Camera) IsBackFacing(n, p math3d.Vec3) bool {
	ray := p.Sub(c.Position)
	return n.Dot(ray) >= 0
}

// Project applies the perspective projection to every vertex of tri.
func (c *Camera) Project(tri models.Triangle) models.Triangle {
	return tri.Transform(c.projMatrix)
}

// ToViewport maps a projected point from [-1, 1] to pixel coordinates:
// shift to [0, 2], then scale by half the viewport size. Z is kept as is.
func (c *Camera) ToViewport(p math3d.Vec3) math3d.Vec3 {
	p = p.Add(math3d.V3(1, 1, 0))
	return p.Mul(math3d.V3(0.5*float64(c.Width), 0.5*float64(c.Height), 1))
}

// WorldToScreen projects a world point straight to pixel coordinates.
func (c *Camera) WorldToScreen(p math3d.Vec3) (x, y float64) {
	s := c.ToViewport(c.projMatrix.MulVec3(p))
	return s.X, s.Y
}
