package midistage

type EventType int

const (
	EventNoteOn EventType = iota + 1
	EventNoteOff
	EventControl
)

// Event is a single timed occurrence on a voice. Events are immutable once
// the score is built; every downstream component reads the same slices.
type Event struct {
	Type     EventType
	Tick     int64
	Channel  uint8
	Note     uint8
	Velocity uint8
	Control  uint8
	Value    uint8
}

// Voice is one logical instrument line: a melodic channel/program pair, or a
// single percussion key on the drum channel.
type Voice struct {
	Channel    uint8
	Program    uint8
	Percussion bool
	Key        uint8 // percussion voices only
	Events     []Event
	EndTick    int64
}

// Score is a whole parsed performance: the voices plus the tempo map that
// places their ticks on the wall clock.
type Score struct {
	Resolution int // ticks per quarter note
	Voices     []Voice
	Tempo      *TempoMap
	EndTick    int64
}

// Duration returns the performance length in seconds.
func (s *Score) Duration() float64 {
	if s.Tempo == nil {
		return 0
	}
	return s.Tempo.Seconds(s.EndTick)
}
