package midistage

import "sort"

// NotePeriod is one sounded note resolved to a start/end interval. Periods
// are computed once per voice at construction and never mutated; instruments
// and their clones share the same backing slice.
type NotePeriod struct {
	StartTick int64
	EndTick   int64
	Note      uint8
	Velocity  uint8
	Start     float64 // seconds
	End       float64 // seconds
}

// PlayingAt reports whether the note is sounding at the given time. The end
// instant is exclusive so back-to-back retriggers never double-count.
func (p NotePeriod) PlayingAt(time float64) bool {
	return time >= p.Start && time < p.End
}

// PitchClass returns the note's class 0..11 (C=0).
func (p NotePeriod) PitchClass() int { return int(p.Note % 12) }

// segmentPeriods pairs a voice's note-ons with note-offs into NotePeriods.
//
// An open-note table is kept per pitch: a second note-on for an already open
// pitch closes the open note at the new on-tick (retrigger) before opening
// its own. Note-offs without a matching open note are dropped. Notes still
// open when the events run out are closed at endTick. Zero-length results
// are discarded, so StartTick < EndTick holds for every output period.
//
// The result is sorted by non-decreasing StartTick, with creation order
// preserved among equal starts.
func segmentPeriods(events []Event, endTick int64, tm *TempoMap) []NotePeriod {
	type openNote struct {
		tick     int64
		velocity uint8
	}
	open := make(map[uint8]openNote)
	var periods []NotePeriod

	closeNote := func(note uint8, at int64) {
		o, ok := open[note]
		if !ok {
			return
		}
		delete(open, note)
		if at <= o.tick {
			return
		}
		periods = append(periods, NotePeriod{
			StartTick: o.tick,
			EndTick:   at,
			Note:      note,
			Velocity:  o.velocity,
		})
	}

	for _, ev := range events {
		switch ev.Type {
		case EventNoteOn:
			closeNote(ev.Note, ev.Tick) // retrigger
			open[ev.Note] = openNote{tick: ev.Tick, velocity: ev.Velocity}
		case EventNoteOff:
			closeNote(ev.Note, ev.Tick)
		}
	}
	for note := range open {
		closeNote(note, endTick)
	}

	sort.SliceStable(periods, func(i, j int) bool {
		return periods[i].StartTick < periods[j].StartTick
	})
	for i := range periods {
		periods[i].Start = tm.Seconds(periods[i].StartTick)
		periods[i].End = tm.Seconds(periods[i].EndTick)
	}
	return periods
}

// intervalSet answers stabbing queries over a start-sorted period slice.
// maxEnd[i] is the latest end among periods[0..i], which makes "is anything
// sounding" and "when did the previous note end" O(log n) even when long
// notes overlap short ones.
type intervalSet struct {
	periods []NotePeriod
	maxEnd  []float64
}

func newIntervalSet(periods []NotePeriod) intervalSet {
	s := intervalSet{periods: periods, maxEnd: make([]float64, len(periods))}
	for i, p := range periods {
		s.maxEnd[i] = p.End
		if i > 0 && s.maxEnd[i-1] > p.End {
			s.maxEnd[i] = s.maxEnd[i-1]
		}
	}
	return s
}

func (s intervalSet) empty() bool { return len(s.periods) == 0 }

// upperBound returns the index of the first period starting after time.
func (s intervalSet) upperBound(time float64) int {
	return sort.Search(len(s.periods), func(i int) bool { return s.periods[i].Start > time })
}

// soundingAt reports whether any period covers time.
func (s intervalSet) soundingAt(time float64) bool {
	i := s.upperBound(time)
	return i > 0 && s.maxEnd[i-1] > time
}

// around returns the latest end at or before time among started periods and
// the next start after time. ok flags are false when no period lies on that
// side.
func (s intervalSet) around(time float64) (prevEnd float64, prevOK bool, nextStart float64, nextOK bool) {
	i := s.upperBound(time)
	if i > 0 {
		prevEnd, prevOK = s.maxEnd[i-1], true
	}
	if i < len(s.periods) {
		nextStart, nextOK = s.periods[i].Start, true
	}
	return
}

// activeAt returns the latest-starting period covering time, or nil. With
// non-overlapping periods (a clone's assignment) this is the unique active
// period.
func (s intervalSet) activeAt(time float64) *NotePeriod {
	i := s.upperBound(time)
	for j := i - 1; j >= 0; j-- {
		if s.periods[j].PlayingAt(time) {
			return &s.periods[j]
		}
		if s.maxEnd[j] <= time {
			break
		}
	}
	return nil
}
