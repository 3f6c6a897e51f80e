package midistage

import "sort"

// TempoChange marks a new tempo taking effect at an absolute tick.
type TempoChange struct {
	Tick int64
	BPM  float64
}

// TempoMap converts between musical ticks and wall-clock seconds. It is a
// piecewise-linear mapping: within one tempo segment every tick lasts
// 60 / (bpm * resolution) seconds. The map is total and monotonic, so the
// two conversions round-trip to within one tick.
type TempoMap struct {
	resolution int
	changes    []tempoSegment
}

type tempoSegment struct {
	tick        int64
	seconds     float64 // wall-clock time at tick
	secsPerTick float64
}

const defaultBPM = 120

// NewTempoMap builds a tempo map from a change list. Changes need not be
// sorted; duplicates at the same tick keep the last one. A missing or empty
// list falls back to 120 BPM, and a list that does not start at tick 0 gets
// an implicit 120 BPM segment in front.
func NewTempoMap(resolution int, changes []TempoChange) *TempoMap {
	if resolution <= 0 {
		resolution = 480
	}
	sorted := make([]TempoChange, 0, len(changes)+1)
	for _, c := range changes {
		if c.BPM > 0 && c.Tick >= 0 {
			sorted = append(sorted, c)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Tick < sorted[j].Tick })
	if len(sorted) == 0 || sorted[0].Tick > 0 {
		sorted = append([]TempoChange{{Tick: 0, BPM: defaultBPM}}, sorted...)
	}

	m := &TempoMap{resolution: resolution}
	seconds := 0.0
	for i, c := range sorted {
		if i > 0 {
			prev := m.changes[len(m.changes)-1]
			seconds = prev.seconds + float64(c.Tick-prev.tick)*prev.secsPerTick
		}
		seg := tempoSegment{
			tick:        c.Tick,
			seconds:     seconds,
			secsPerTick: 60.0 / (c.BPM * float64(resolution)),
		}
		if last := len(m.changes) - 1; last >= 0 && m.changes[last].tick == c.Tick {
			m.changes[last] = seg
		} else {
			m.changes = append(m.changes, seg)
		}
	}
	return m
}

// Resolution returns the map's ticks per quarter note.
func (m *TempoMap) Resolution() int { return m.resolution }

// Seconds converts an absolute tick to wall-clock seconds.
func (m *TempoMap) Seconds(tick int64) float64 {
	if tick <= 0 {
		return float64(tick) * m.changes[0].secsPerTick
	}
	seg := m.segmentAtTick(tick)
	return seg.seconds + float64(tick-seg.tick)*seg.secsPerTick
}

// Tick converts wall-clock seconds to the tick sounding at that instant.
func (m *TempoMap) Tick(seconds float64) int64 {
	if seconds <= 0 {
		return int64(seconds / m.changes[0].secsPerTick)
	}
	seg := m.segmentAtTime(seconds)
	return seg.tick + int64((seconds-seg.seconds)/seg.secsPerTick)
}

func (m *TempoMap) segmentAtTick(tick int64) tempoSegment {
	i := sort.Search(len(m.changes), func(i int) bool { return m.changes[i].tick > tick })
	return m.changes[i-1]
}

func (m *TempoMap) segmentAtTime(seconds float64) tempoSegment {
	i := sort.Search(len(m.changes), func(i int) bool { return m.changes[i].seconds > seconds })
	return m.changes[i-1]
}
