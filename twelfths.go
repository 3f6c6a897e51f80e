package midistage

// twelfths is the wrapped-octave sustained selector: twelve bodies, one per
// pitch class, each sounding whenever any note in its class sounds. The
// per-slot state is derived straight from the period set at each tick; the
// only smoothing such instruments get is the shared stacking easing, applied
// across instrument instances rather than across slots.
type twelfths struct {
	slots   [12]intervalSet
	playing [12]bool
	current [12]*NotePeriod
}

func newTwelfths(periods []NotePeriod) *twelfths {
	var byClass [12][]NotePeriod
	for _, p := range periods {
		c := p.PitchClass()
		byClass[c] = append(byClass[c], p)
	}
	t := &twelfths{}
	for i := range t.slots {
		t.slots[i] = newIntervalSet(byClass[i])
	}
	return t
}

func (t *twelfths) tick(time float64) {
	for i := range t.slots {
		t.current[i] = t.slots[i].activeAt(time)
		t.playing[i] = t.current[i] != nil
	}
}
