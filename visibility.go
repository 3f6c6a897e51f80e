package midistage

// calcVisibility decides whether the instrument belongs on screen at time.
// The rules run in priority order:
//
//  1. a note is sounding right now;
//  2. the next note starts within the upcoming window;
//  3. the rest between the previous note's end and the next note's start is
//     no longer than the gap window, which keeps an instrument on stage
//     through short breaks instead of popping it in and out;
//  4. the previous note ended within the linger window.
//
// The decision reads only the precomputed period set and time, so repeated
// calls at a fixed time always agree.
func (in *Instrument) calcVisibility(time float64) bool {
	if in.sound.empty() {
		return false
	}
	if in.sound.soundingAt(time) {
		return true
	}
	prevEnd, prevOK, nextStart, nextOK := in.sound.around(time)
	if nextOK && nextStart-time <= in.cfg.UpcomingWindow {
		return true
	}
	if prevOK && nextOK && nextStart-prevEnd <= in.cfg.GapWindow {
		return true
	}
	if prevOK && time-prevEnd <= in.cfg.LingerWindow {
		return true
	}
	return false
}

// updateStacking assigns stacking targets within one similarity group and
// eases every member's continuous index toward its target. Visible members
// take slots 0..k-1 in group (creation) order; an invisible member drifts
// toward the back of the visible block rather than snapping to a fixed
// slot. The index is clamped to [0, group size] so an adversarially large
// delta cannot fling an instrument outside the stack.
func updateStacking(group []*Instrument, delta float64, cfg *Config) {
	visible := 0
	for _, in := range group {
		if in.visible {
			visible++
		}
	}
	rank := 0
	for _, in := range group {
		if in.visible {
			in.target = float64(rank)
			rank++
		} else {
			in.target = float64(visible - 1)
			if in.target < 0 {
				in.target = 0
			}
		}
		in.similar = len(group)
	}
	for _, in := range group {
		in.stackIndex += delta * cfg.TransitionSpeed * (in.target - in.stackIndex) / 500
		if in.stackIndex < 0 {
			in.stackIndex = 0
		}
		if max := float64(len(group)); in.stackIndex > max {
			in.stackIndex = max
		}
	}
}
