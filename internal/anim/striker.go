package anim

import "math"

// StickStatus reports what the striker did on the frame just ticked.
type StickStatus struct {
	JustStruck bool
	Strike     Hit  // the consumed hit, valid when JustStruck
	NextHit    *Hit // the upcoming hit, nil at the end of the queue
}

// Striker animates a mallet or drumstick between discrete strikes. The angle
// peaks at maxAngle on the strike instant and eases back to the zero rest
// pose at speed degrees per second. Angle is a pure function of the time
// since the last consumed hit, so any frame rate and any seek produce the
// same pose for the same transport time.
type Striker struct {
	cursor   hitCursor
	speed    float64 // degrees per second
	maxAngle float64
	angle    float64
}

// NewStriker builds a striker over a time-ordered hit list. Velocities are
// clamped to 0..127 on the way in.
func NewStriker(hits []Hit, speed, maxAngle float64) *Striker {
	clamped := make([]Hit, len(hits))
	for i, h := range hits {
		clamped[i] = Hit{Time: h.Time, Velocity: ClampVelocity(h.Velocity)}
	}
	return &Striker{cursor: newHitCursor(clamped), speed: speed, maxAngle: maxAngle}
}

// Tick advances the striker to time and recomputes the angle.
func (s *Striker) Tick(time float64) StickStatus {
	strike, struck := s.cursor.advance(time)

	s.angle = 0
	if last, ok := s.cursor.lastHit(); ok {
		a := s.maxAngle - s.speed*(time-last.Time)
		s.angle = math.Max(0, math.Min(s.maxAngle, a))
	}

	status := StickStatus{JustStruck: struck, Strike: strike}
	if next, ok := s.cursor.nextHit(); ok {
		status.NextHit = &next
	}
	return status
}

// Angle returns the stick angle in degrees, within [0, maxAngle].
func (s *Striker) Angle() float64 { return s.angle }
