package anim

import (
	"math"
	"testing"
)

func TestStrikerAngleStaysInRange(t *testing.T) {
	hits := []Hit{{Time: 1, Velocity: 100}, {Time: 1.05, Velocity: 100}, {Time: 3, Velocity: 50}}
	s := NewStriker(hits, 200, 50)
	for time := 0.0; time < 5; time += 0.013 {
		s.Tick(time)
		if a := s.Angle(); a < 0 || a > 50 {
			t.Fatalf("angle %v out of [0, 50] at %v", a, time)
		}
	}
}

func TestStrikerPeaksOnStrikeAndEasesBack(t *testing.T) {
	s := NewStriker([]Hit{{Time: 1, Velocity: 100}}, 100, 50)
	status := s.Tick(1.0)
	if !status.JustStruck {
		t.Fatalf("expected strike at t=1")
	}
	if s.Angle() != 50 {
		t.Fatalf("angle at strike = %v, want 50", s.Angle())
	}
	s.Tick(1.25) // 100 deg/s for 0.25s
	if got := s.Angle(); math.Abs(got-25) > 1e-9 {
		t.Fatalf("angle 0.25s after strike = %v, want 25", got)
	}
	s.Tick(2.0)
	if s.Angle() != 0 {
		t.Fatalf("angle should be back at rest, got %v", s.Angle())
	}
}

func TestStrikerReportsUpcomingHit(t *testing.T) {
	s := NewStriker([]Hit{{Time: 1, Velocity: 100}, {Time: 2, Velocity: 90}}, 200, 50)
	status := s.Tick(1.0)
	if status.NextHit == nil || status.NextHit.Time != 2 {
		t.Fatalf("next hit %+v, want the one at t=2", status.NextHit)
	}
	status = s.Tick(2.5)
	if status.NextHit != nil {
		t.Fatalf("queue exhausted, next hit should be nil")
	}
}

func TestStrikerSeekBackwardsMatchesForwardPlayback(t *testing.T) {
	hits := []Hit{{Time: 0.5, Velocity: 100}, {Time: 1.9, Velocity: 80}, {Time: 5, Velocity: 127}, {Time: 9, Velocity: 60}}

	// Run one striker forward to 10s, then seek back to 2s.
	seeked := NewStriker(hits, 200, 50)
	for time := 0.0; time <= 10; time += 0.016 {
		seeked.Tick(time)
	}
	seeked.Tick(2.0)

	// Run a fresh striker forward to 2s only.
	forward := NewStriker(hits, 200, 50)
	for time := 0.0; time < 2.0; time += 0.016 {
		forward.Tick(time)
	}
	forward.Tick(2.0)

	if seeked.Angle() != forward.Angle() {
		t.Fatalf("seek angle %v != forward angle %v", seeked.Angle(), forward.Angle())
	}
	// The seeked striker must not reference already-consumed future hits:
	// the next hit from t=2 is the one at t=5.
	status := seeked.Tick(2.0)
	if status.NextHit == nil || status.NextHit.Time != 5 {
		t.Fatalf("next hit after seek %+v, want the one at t=5", status.NextHit)
	}
}

func TestStrikerLargeDeltaConsumesAllDueHits(t *testing.T) {
	hits := []Hit{{Time: 1, Velocity: 100}, {Time: 2, Velocity: 100}, {Time: 3, Velocity: 100}}
	s := NewStriker(hits, 200, 50)
	s.Tick(0)
	status := s.Tick(10) // one giant frame hitch
	if !status.JustStruck || status.Strike.Time != 3 {
		t.Fatalf("after hitch, last consumed strike %+v, want the one at t=3", status.Strike)
	}
	if status.NextHit != nil {
		t.Fatalf("all hits should be consumed")
	}
}

func TestRecoilNeverPositiveAndReturnsToZero(t *testing.T) {
	r := NewRecoil([]Hit{{Time: 1, Velocity: 127}}, -2, 22)
	for time := 0.0; time < 3; time += 0.007 {
		r.Tick(time)
		if r.Offset() > 0 {
			t.Fatalf("recoil went positive (%v) at %v", r.Offset(), time)
		}
	}
	r.Tick(3)
	if r.Offset() != 0 {
		t.Fatalf("recoil should settle at exactly 0, got %v", r.Offset())
	}
}

func TestRecoilScalesWithVelocity(t *testing.T) {
	soft := NewRecoil([]Hit{{Time: 1, Velocity: 20}}, -2, 22)
	loud := NewRecoil([]Hit{{Time: 1, Velocity: 120}}, -2, 22)
	soft.Tick(1)
	loud.Tick(1)
	if soft.Offset() >= 0 || loud.Offset() >= 0 {
		t.Fatalf("both hits should displace: soft %v loud %v", soft.Offset(), loud.Offset())
	}
	if soft.Offset() <= loud.Offset() {
		t.Fatalf("soft hit (%v) should recoil less than loud hit (%v)", soft.Offset(), loud.Offset())
	}
}

func TestVelocityDampeningSaturates(t *testing.T) {
	prev := -1.0
	for v := 0; v <= 127; v++ {
		d := VelocityDampening(v)
		if d < 0 || d > 1 {
			t.Fatalf("dampening %v out of [0, 1] at velocity %d", d, v)
		}
		if d <= prev && v > 0 {
			t.Fatalf("dampening not monotonic at velocity %d", v)
		}
		prev = d
	}
	// Diminishing returns: the top of the range gains less than the bottom.
	lowGain := VelocityDampening(40) - VelocityDampening(20)
	highGain := VelocityDampening(120) - VelocityDampening(100)
	if highGain >= lowGain {
		t.Fatalf("expected saturation: low gain %v, high gain %v", lowGain, highGain)
	}
}

func TestVelocityDampeningClampsMalformedInput(t *testing.T) {
	if VelocityDampening(-5) != 0 {
		t.Fatalf("negative velocity should clamp to 0")
	}
	if VelocityDampening(500) != 1 {
		t.Fatalf("oversized velocity should clamp to full scale")
	}
}

func TestCymbalDecayHalfLife(t *testing.T) {
	c := NewCymbal([]Hit{{Time: 1, Velocity: 100}}, 2.0, 0.5, 5)
	c.Tick(1, 0.016)
	if got := c.Amplitude(); math.Abs(got-2.0) > 1e-9 {
		t.Fatalf("amplitude at strike = %v, want peak 2.0", got)
	}
	c.Tick(1.5, 0.016)
	if got := c.Amplitude(); math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("amplitude one half-life later = %v, want 1.0", got)
	}
	c.Tick(2.5, 0.016)
	if got := c.Amplitude(); math.Abs(got-0.25) > 1e-9 {
		t.Fatalf("amplitude three half-lives later = %v, want 0.25", got)
	}
}

func TestCymbalStrikeResetsAmplitude(t *testing.T) {
	c := NewCymbal([]Hit{{Time: 1, Velocity: 100}, {Time: 4, Velocity: 100}}, 2.0, 0.5, 5)
	c.Tick(3.9, 0.016)
	faded := c.Amplitude()
	if faded >= 0.1 {
		t.Fatalf("amplitude should have faded, got %v", faded)
	}
	c.Tick(4, 0.1)
	if got := c.Amplitude(); math.Abs(got-2.0) > 1e-9 {
		t.Fatalf("second strike should reset amplitude to peak, got %v", got)
	}
}

func TestCymbalPhaseAdvancesMonotonically(t *testing.T) {
	c := NewCymbal([]Hit{{Time: 0, Velocity: 100}}, 2.0, 0.5, 5)
	prev := c.Phase()
	for time := 0.0; time < 2; time += 0.016 {
		c.Tick(time, 0.016)
		if c.Phase() <= prev {
			t.Fatalf("phase did not advance at %v", time)
		}
		prev = c.Phase()
	}
	// A seek must not rewind the phase.
	c.Tick(0.5, 0.016)
	if c.Phase() < prev {
		t.Fatalf("phase rewound on seek")
	}
}

func TestCymbalSilentBeforeFirstStrike(t *testing.T) {
	c := NewCymbal([]Hit{{Time: 5, Velocity: 100}}, 2.0, 0.5, 5)
	c.Tick(1, 0.016)
	if c.Amplitude() != 0 {
		t.Fatalf("amplitude before any strike = %v, want 0", c.Amplitude())
	}
}
