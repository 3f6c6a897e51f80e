// Package anim holds the small per-instrument physics state machines: the
// striker (mallet/stick angle), drum recoil, and cymbal wobble. The package
// works purely in seconds so it stays decoupled from the tick-domain score
// model; callers convert hits up front.
package anim

import "sort"

// Hit is one strike: a wall-clock instant and a MIDI velocity.
type Hit struct {
	Time     float64
	Velocity int
}

// ClampVelocity forces a velocity into the valid MIDI range. Upstream data
// is assumed pre-validated, so out-of-range values are clamped rather than
// reported.
func ClampVelocity(v int) int {
	if v < 0 {
		return 0
	}
	if v > 127 {
		return 127
	}
	return v
}

// hitCursor walks a time-ordered hit list as the transport advances. The
// full list is retained so a backwards time jump (seek) can re-derive the
// position from scratch instead of trusting a stale consumption index.
type hitCursor struct {
	hits     []Hit
	next     int // index of the first hit not yet due
	lastTime float64
}

func newHitCursor(hits []Hit) hitCursor {
	return hitCursor{hits: hits}
}

// advance consumes every hit due at or before time and returns the last one
// consumed this call, if any. When time moved backwards the cursor first
// rewinds by binary search over the full history.
func (c *hitCursor) advance(time float64) (Hit, bool) {
	if time < c.lastTime {
		c.next = sort.Search(len(c.hits), func(i int) bool { return c.hits[i].Time > time })
	}
	c.lastTime = time

	struck := false
	var last Hit
	for c.next < len(c.hits) && c.hits[c.next].Time <= time {
		last = c.hits[c.next]
		c.next++
		struck = true
	}
	return last, struck
}

// lastHit returns the most recent hit at or before the cursor's time.
func (c *hitCursor) lastHit() (Hit, bool) {
	if c.next == 0 {
		return Hit{}, false
	}
	return c.hits[c.next-1], true
}

// nextHit returns the first hit still ahead of the cursor's time.
func (c *hitCursor) nextHit() (Hit, bool) {
	if c.next >= len(c.hits) {
		return Hit{}, false
	}
	return c.hits[c.next], true
}
