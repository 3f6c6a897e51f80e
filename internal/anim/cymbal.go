package anim

import "math"

// Cymbal animates the decaying wobble of a struck cymbal. Each strike resets
// the amplitude to the configured peak; between strikes the amplitude halves
// every halfLife seconds. The phase advances monotonically at the wobble
// frequency and never resets, so the renderer's amplitude*sin(phase) stays
// continuous across strikes and seeks. The engine exposes only the scalar
// pair; displacement is the renderer's business.
type Cymbal struct {
	cursor   hitCursor
	peak     float64
	halfLife float64 // seconds per halving of the wobble
	freq     float64 // wobble cycles per second
	phase    float64
}

// NewCymbal builds a cymbal animator over a time-ordered hit list.
func NewCymbal(hits []Hit, peak, halfLife, freq float64) *Cymbal {
	clamped := make([]Hit, len(hits))
	for i, h := range hits {
		clamped[i] = Hit{Time: h.Time, Velocity: ClampVelocity(h.Velocity)}
	}
	return &Cymbal{cursor: newHitCursor(clamped), peak: peak, halfLife: halfLife, freq: freq}
}

// Tick advances the animator to time. delta only drives the phase; the
// amplitude is derived from the strike history so seeks land on the exact
// forward-playback value.
func (c *Cymbal) Tick(time, delta float64) {
	c.cursor.advance(time)
	if delta > 0 {
		c.phase += 2 * math.Pi * c.freq * delta
	}
}

// Amplitude returns the current wobble amplitude, decaying toward zero.
func (c *Cymbal) Amplitude() float64 {
	last, ok := c.cursor.lastHit()
	if !ok || c.halfLife <= 0 {
		return 0
	}
	elapsed := c.cursor.lastTime - last.Time
	return c.peak * math.Exp2(-elapsed/c.halfLife)
}

// Phase returns the monotonically advancing wobble phase in radians.
func (c *Cymbal) Phase() float64 { return c.phase }
