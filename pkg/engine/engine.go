// Package engine runs a Game at a fixed frame rate.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// MaxFrameTime caps the elapsed time handed to a single frame, in seconds.
const MaxFrameTime = 0.1

// DefaultFPS is the frame rate used when Loop.FPS is not positive.
const DefaultFPS = 60

var ErrNoGame = errors.New("engine: no game to run")

// Game is driven by a Loop: OnInit once, then OnFrameUpdate every frame
// with the seconds elapsed since the previous one.
type Game interface {
	OnInit() error
	OnFrameUpdate(elapsed float64) error
}

// Loop drives a Game until its context is cancelled.
type Loop struct {
	FPS int // Target frames per second

	// Before runs ahead of every frame, e.g. to clear the framebuffer.
	Before func() error

	// Present runs after every frame to show what was drawn.
	Present func() error

	// Throttle, when set, scales each frame's elapsed time.
	Throttle *Throttle

	// MaxFrames stops the loop after that many frames. Zero runs forever.
	MaxFrames int

	Logger *log.Logger

	frames int
}

// Run initializes g and drives it until ctx is done, MaxFrames is reached
// or a callback fails. Cancellation is a clean stop and returns nil.
func (l *Loop) Run(ctx context.Context, g Game) error {
	if g == nil {
		return ErrNoGame
	}
	l.frames = 0
	logger := l.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	fps := l.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	frameDuration := time.Second / time.Duration(fps)

	if err := g.OnInit(); err != nil {
		return fmt.Errorf("init: %w", err)
	}
	logger.Debug("loop started", "fps", fps, "maxFrames", l.MaxFrames)

	lastFrame := time.Now()
	for l.MaxFrames == 0 || l.frames < l.MaxFrames {
		select {
		case <-ctx.Done():
			logger.Debug("loop stopped", "frames", l.frames)
			return nil
		default:
		}

		now := time.Now()
		dt := min(now.Sub(lastFrame).Seconds(), MaxFrameTime)
		lastFrame = now

		if l.Throttle != nil {
			l.Throttle.Update()
			dt = l.Throttle.Scale(dt)
		}

		if l.Before != nil {
			if err := l.Before(); err != nil {
				return fmt.Errorf("frame %d: before: %w", l.frames, err)
			}
		}
		if err := g.OnFrameUpdate(dt); err != nil {
			return fmt.Errorf("frame %d: %w", l.frames, err)
		}
		if l.Present != nil {
			if err := l.Present(); err != nil {
				return fmt.Errorf("frame %d: present: %w", l.frames, err)
			}
		}
		l.frames++

		// Frame timing
		if wait := frameDuration - time.Since(now); wait > 0 {
			select {
			case <-ctx.Done():
				logger.Debug("loop stopped", "frames", l.frames)
				return nil
			case <-time.After(wait):
			}
		}
	}

	logger.Debug("loop finished", "frames", l.frames)
	return nil
}

// Frames returns how many frames the last Run completed.
func (l *Loop) Frames() int {
	return l.frames
}
