package anim

import "math"

// Recoil animates the downward shove of a struck drum body. A hit displaces
// the body by distance (a negative offset) scaled by a velocity dampening
// factor; the body then comes back toward zero at the fixed comeback rate
// and never overshoots. Like the striker angle, the offset is a pure
// function of the last hit, so seeks and frame hitches cannot skew it.
type Recoil struct {
	cursor   hitCursor
	distance float64 // peak displacement, negative
	comeback float64 // units per second back toward zero
	offset   float64
}

// NewRecoil builds a recoil machine over a time-ordered hit list.
func NewRecoil(hits []Hit, distance, comeback float64) *Recoil {
	clamped := make([]Hit, len(hits))
	for i, h := range hits {
		clamped[i] = Hit{Time: h.Time, Velocity: ClampVelocity(h.Velocity)}
	}
	return &Recoil{cursor: newHitCursor(clamped), distance: distance, comeback: comeback}
}

// Tick advances the recoil to time.
func (r *Recoil) Tick(time float64) {
	r.cursor.advance(time)
	r.offset = 0
	if last, ok := r.cursor.lastHit(); ok {
		peak := VelocityDampening(last.Velocity) * r.distance
		r.offset = math.Min(0, peak+r.comeback*(time-last.Time))
	}
}

// Offset returns the current displacement, always <= 0.
func (r *Recoil) Offset() float64 { return r.offset }

// VelocityDampening maps a MIDI velocity 0..127 onto a 0..1 scale factor.
// The curve is logarithmic: soft hits stay visibly soft while loud hits
// saturate, so velocity 100 and 127 recoil almost the same amount.
func VelocityDampening(velocity int) float64 {
	v := float64(ClampVelocity(velocity))
	return math.Log1p(v) / math.Log1p(127)
}
