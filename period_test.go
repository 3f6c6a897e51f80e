package midistage

import "testing"

func tm60() *TempoMap {
	return NewTempoMap(480, []TempoChange{{Tick: 0, BPM: 60}})
}

func on(tick int64, note, vel uint8) Event {
	return Event{Type: EventNoteOn, Tick: tick, Note: note, Velocity: vel}
}

func off(tick int64, note uint8) Event {
	return Event{Type: EventNoteOff, Tick: tick, Note: note}
}

func TestSegmentSinglePair(t *testing.T) {
	periods := segmentPeriods([]Event{on(0, 60, 100), off(480, 60)}, 960, tm60())
	if len(periods) != 1 {
		t.Fatalf("got %d periods, want 1", len(periods))
	}
	p := periods[0]
	if p.StartTick != 0 || p.EndTick != 480 || p.Note != 60 || p.Velocity != 100 {
		t.Fatalf("unexpected period %+v", p)
	}
	if p.Start != 0 || p.End != 1.0 {
		t.Fatalf("seconds not resolved: start %v end %v", p.Start, p.End)
	}
}

func TestSegmentRetriggerClosesOpenNote(t *testing.T) {
	periods := segmentPeriods([]Event{on(0, 60, 100), on(100, 60, 90), off(200, 60)}, 960, tm60())
	if len(periods) != 2 {
		t.Fatalf("got %d periods, want 2", len(periods))
	}
	if periods[0].StartTick != 0 || periods[0].EndTick != 100 {
		t.Fatalf("first period %+v, want 0..100", periods[0])
	}
	if periods[1].StartTick != 100 || periods[1].EndTick != 200 {
		t.Fatalf("second period %+v, want 100..200", periods[1])
	}
	if periods[1].Velocity != 90 {
		t.Fatalf("retrigger velocity %d, want 90", periods[1].Velocity)
	}
}

func TestSegmentOrphanNoteOffIgnored(t *testing.T) {
	periods := segmentPeriods([]Event{off(50, 60), on(100, 60, 80), off(200, 60)}, 960, tm60())
	if len(periods) != 1 {
		t.Fatalf("got %d periods, want 1", len(periods))
	}
	if periods[0].StartTick != 100 {
		t.Fatalf("period starts at %d, want 100", periods[0].StartTick)
	}
}

func TestSegmentOpenNotesCloseAtEnd(t *testing.T) {
	periods := segmentPeriods([]Event{on(100, 64, 70)}, 960, tm60())
	if len(periods) != 1 {
		t.Fatalf("got %d periods, want 1", len(periods))
	}
	if periods[0].EndTick != 960 {
		t.Fatalf("open note closed at %d, want end of timeline 960", periods[0].EndTick)
	}
}

func TestSegmentZeroLengthDiscarded(t *testing.T) {
	periods := segmentPeriods([]Event{on(100, 60, 80), off(100, 60)}, 960, tm60())
	if len(periods) != 0 {
		t.Fatalf("got %d periods, want 0", len(periods))
	}
}

func TestSegmentOutputOrderedAndWellFormed(t *testing.T) {
	events := []Event{
		on(0, 60, 100),
		on(50, 64, 90),
		on(200, 67, 80),
		off(300, 60),
		off(400, 64),
		on(450, 60, 85),
		off(500, 67),
	}
	periods := segmentPeriods(events, 960, tm60())
	if len(periods) != 4 {
		t.Fatalf("got %d periods, want 4", len(periods))
	}
	for i, p := range periods {
		if p.StartTick >= p.EndTick {
			t.Fatalf("period %d has start %d >= end %d", i, p.StartTick, p.EndTick)
		}
		if i > 0 && p.StartTick < periods[i-1].StartTick {
			t.Fatalf("period %d out of order: %d after %d", i, p.StartTick, periods[i-1].StartTick)
		}
	}
}

func TestSegmentPeriodCountMatchesNoteOns(t *testing.T) {
	// Every note-on yields exactly one period; orphan note-offs yield none.
	events := []Event{
		off(10, 60), // orphan
		on(20, 60, 100),
		on(40, 62, 100),
		off(60, 60),
		off(61, 71), // orphan
		on(80, 60, 100),
		off(120, 62),
	}
	periods := segmentPeriods(events, 960, tm60())
	if len(periods) != 3 {
		t.Fatalf("got %d periods, want 3 (one per note-on)", len(periods))
	}
}

func TestIntervalSetQueries(t *testing.T) {
	// A long note overlapping two short ones, in seconds: 0..4, 1..2, 2..3.
	tm := tm60()
	periods := segmentPeriods([]Event{
		on(0, 48, 100), on(480, 60, 100), off(960, 60),
		on(960, 62, 100), off(1440, 62), off(1920, 48),
	}, 1920, tm)
	s := newIntervalSet(periods)

	if !s.soundingAt(3.5) {
		t.Fatalf("long note should still sound at 3.5s")
	}
	if s.soundingAt(4.5) {
		t.Fatalf("nothing sounds at 4.5s")
	}
	prevEnd, prevOK, _, nextOK := s.around(4.5)
	if !prevOK || prevEnd != 4.0 {
		t.Fatalf("prev end %v ok=%v, want 4.0", prevEnd, prevOK)
	}
	if nextOK {
		t.Fatalf("no next note expected after 4.5s")
	}
	if p := s.activeAt(1.5); p == nil || p.Note != 60 {
		t.Fatalf("active at 1.5s = %+v, want note 60", p)
	}
}
