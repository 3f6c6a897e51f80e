package midistage

import "fmt"

// Clone is one visual body standing in for one strand of polyphony on a
// monophonic instrument. Its assigned periods never overlap, so at any
// transport time at most one of them is active.
type Clone struct {
	periods []NotePeriod
	sound   intervalSet
	current *NotePeriod
	playing bool
}

// Playing reports whether the clone is sounding a note right now.
func (c *Clone) Playing() bool { return c.playing }

// CurrentNotePeriod returns the period active at the last ticked time, or
// nil while the clone is idle.
func (c *Clone) CurrentNotePeriod() *NotePeriod { return c.current }

// NotePeriods returns the clone's assigned periods, ordered by start.
func (c *Clone) NotePeriods() []NotePeriod { return c.periods }

// tick derives the clone's active period at time. The lookup runs against
// the full assignment each frame, so a seek in either direction lands on the
// correct period with no cursor to invalidate.
func (c *Clone) tick(time float64) {
	c.current = c.sound.activeAt(time)
	c.playing = c.current != nil
}

// allocateClones partitions a start-ordered period list into the fewest
// clones this first-fit pass can manage: each new period goes to the first
// clone whose latest assignment has already ended, and a fresh clone is
// created only when every existing one is still busy. The partition is
// decided once at construction and never revisited.
func allocateClones(periods []NotePeriod) []*Clone {
	type slot struct {
		endTick int64
		periods []NotePeriod
	}
	var slots []*slot
	for _, p := range periods {
		placed := false
		for _, s := range slots {
			if s.endTick <= p.StartTick {
				s.periods = append(s.periods, p)
				s.endTick = p.EndTick
				placed = true
				break
			}
		}
		if !placed {
			slots = append(slots, &slot{endTick: p.EndTick, periods: []NotePeriod{p}})
		}
	}

	clones := make([]*Clone, len(slots))
	assigned := 0
	for i, s := range slots {
		clones[i] = &Clone{periods: s.periods, sound: newIntervalSet(s.periods)}
		assigned += len(s.periods)
	}
	if assigned != len(periods) {
		// A broken partition here is a programming error, not bad input.
		panic(fmt.Sprintf("midistage: clone allocation lost periods: %d assigned of %d", assigned, len(periods)))
	}
	return clones
}
