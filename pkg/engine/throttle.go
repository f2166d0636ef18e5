package engine

import "github.com/charmbracelet/harmonica"

// Spring settings for the throttle. Damping 1.0 is critically damped, so the
// speed settles without overshooting past stopped or full speed.
const (
	throttleFrequency = 4.0
	throttleDamping   = 1.0
)

// Throttle eases a speed multiplier between 0 (paused) and 1 (running) so
// pausing slows the spin down instead of freezing it mid-frame.
type Throttle struct {
	spring   harmonica.Spring
	value    float64
	velocity float64 // spring velocity, not the spin speed
	target   float64
}

// NewThrottle creates a running throttle stepped once per frame at fps.
func NewThrottle(fps int) *Throttle {
	return &Throttle{
		spring: harmonica.NewSpring(harmonica.FPS(fps), throttleFrequency, throttleDamping),
		value:  1,
		target: 1,
	}
}

// Pause eases the multiplier toward 0.
func (t *Throttle) Pause() {
	t.target = 0
}

// Resume eases the multiplier toward 1.
func (t *Throttle) Resume() {
	t.target = 1
}

// Toggle flips between paused and running.
func (t *Throttle) Toggle() {
	if t.Paused() {
		t.Resume()
	} else {
		t.Pause()
	}
}

// Paused reports whether the throttle is heading toward 0.
func (t *Throttle) Paused() bool {
	return t.target == 0
}

// Update advances the spring by one frame and returns the new multiplier.
func (t *Throttle) Update() float64 {
	t.value, t.velocity = t.spring.Update(t.value, t.velocity, t.target)
	return t.Value()
}

// Value returns the multiplier clamped to [0, 1].
func (t *Throttle) Value() float64 {
	return max(0, min(t.value, 1))
}

// Scale applies the multiplier to an elapsed time. The result is never
// negative.
func (t *Throttle) Scale(dt float64) float64 {
	return max(0, dt*t.Value())
}
