// Package midistage derives per-frame animation state for the instruments of
// a parsed musical performance. Given a transport time and frame delta it
// answers, for every instrument instance: whether it is visible, where it
// sits in its stack of same-family instances, the pose of its mallet or
// stick, the wobble of its cymbal, and which polyphony clone bodies are
// sounding. The package computes scalars only; rendering them into spatial
// transforms is the caller's job.
package midistage

import "sort"

// Stage owns every instrument instance built from a score and drives them
// through the cooperative frame loop. All state is advanced synchronously by
// Tick; nothing blocks, suspends, or performs I/O, and no call is safe for
// concurrent use.
type Stage struct {
	score  *Score
	cfg    Config
	insts  []*Instrument
	groups [][]*Instrument
	time   float64
}

// NewStage builds the instrument instances for a score. Note periods and
// clone partitions are resolved here, once; Tick only ever touches the small
// per-instance scalar state.
func NewStage(score *Score, opts ...Option) *Stage {
	s := &Stage{score: score, cfg: DefaultConfig()}
	for _, opt := range opts {
		opt(s)
	}

	for _, v := range score.Voices {
		if len(v.Events) == 0 {
			continue
		}
		in := newInstrument(v, score.Tempo, &s.cfg)
		if len(in.periods) == 0 {
			continue
		}
		s.insts = append(s.insts, in)
	}

	// Similarity groups in creation order; the grouping is fixed for the
	// stage's lifetime, only membership visibility changes per frame.
	byKey := make(map[string]int)
	var keys []string
	for _, in := range s.insts {
		k := in.groupKey()
		if _, ok := byKey[k]; !ok {
			byKey[k] = len(keys)
			keys = append(keys, k)
			s.groups = append(s.groups, nil)
		}
		s.groups[byKey[k]] = append(s.groups[byKey[k]], in)
	}
	for _, group := range s.groups {
		for _, in := range group {
			in.similar = len(group)
		}
	}
	return s
}

// Score returns the score this stage animates.
func (s *Stage) Score() *Score { return s.score }

// Config returns the tuning in effect.
func (s *Stage) Config() Config { return s.cfg }

// Instruments returns every instance in creation order.
func (s *Stage) Instruments() []*Instrument { return s.insts }

// Duration returns the performance length in seconds.
func (s *Stage) Duration() float64 { return s.score.Duration() }

// Time returns the transport time of the last Tick.
func (s *Stage) Time() float64 { return s.time }

// Tick advances every instrument to the given transport time. delta is the
// frame step used for the integrated quantities (stacking easing, wobble
// phase); a negative delta is treated as zero. time may jump in either
// direction: the state machines re-derive their position from the full event
// history whenever it moves backwards.
func (s *Stage) Tick(time, delta float64) {
	if delta < 0 {
		delta = 0
	}
	s.time = time

	// Visibility first, for every instance, because stacking targets
	// depend on who else in the group is visible this frame.
	for _, in := range s.insts {
		in.visible = s.cfg.NeverHidden || in.calcVisibility(time)
	}
	for _, group := range s.groups {
		updateStacking(group, delta, &s.cfg)
	}
	for _, in := range s.insts {
		in.tickPhysics(time, delta)
	}
}

// VisibleInstruments returns the instances visible after the last Tick, in
// creation order.
func (s *Stage) VisibleInstruments() []*Instrument {
	var out []*Instrument
	for _, in := range s.insts {
		if in.visible {
			out = append(out, in)
		}
	}
	return out
}

// GroupSize returns how many instances share the instrument's similarity
// group.
func (s *Stage) GroupSize(in *Instrument) int { return in.similar }

// Families returns the distinct families on stage, sorted, for display.
func (s *Stage) Families() []Family {
	seen := make(map[Family]bool)
	var out []Family
	for _, in := range s.insts {
		if !seen[in.family] {
			seen[in.family] = true
			out = append(out, in.family)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
