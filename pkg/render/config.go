package render

import (
	"errors"
	"fmt"

	"github.com/taigrr/spincube/pkg/math3d"
)

// Projection defaults.
const (
	DefaultFOV  = 90.0   // degrees
	DefaultNear = 0.1    // near clip plane
	DefaultFar  = 1000.0 // far clip plane
)

var (
	ErrInvalidViewport   = errors.New("viewport width and height must be positive")
	ErrInvalidClipPlanes = errors.New("clip planes must satisfy 0 < near < far")
	ErrInvalidFOV        = errors.New("field of view must be in (0, 180) degrees")
)

// Config holds the pipeline settings fixed at initialization.
type Config struct {
	Width  int // Viewport width in pixels
	Height int // Viewport height in pixels

	FOV  float64 // Field of view in degrees
	Near float64 // Near clipping plane
	Far  float64 // Far clipping plane

	// Camera position in world space; it never moves.
	Camera math3d.Vec3
}

// DefaultConfig returns the standard settings for a width x height viewport
// with the camera at the origin.
func DefaultConfig(width, height int) Config {
	return Config{
		Width:  width,
		Height: height,
		FOV:    DefaultFOV,
		Near:   DefaultNear,
		Far:    DefaultFar,
	}
}

// AspectRatio returns height / width, the ratio the projection expects.
func (c Config) AspectRatio() float64 {
	return float64(c.Height) / float64(c.Width)
}

// Validate reports the first setting that cannot produce a usable image.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidViewport, c.Width, c.Height)
	}
	return c.validateProjection()
}

// validateProjection checks what the projection matrix divides by.
func (c Config) validateProjection() error {
	if !(c.Near > 0 && c.Near < c.Far) {
		return fmt.Errorf("%w: near=%v far=%v", ErrInvalidClipPlanes, c.Near, c.Far)
	}
	if !(c.FOV > 0 && c.FOV < 180) {
		return fmt.Errorf("%w: %v", ErrInvalidFOV, c.FOV)
	}
	return nil
}
