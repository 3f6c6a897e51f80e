package midistage

import (
	"fmt"

	"github.com/cbegin/midistage-go/internal/anim"
)

// Family is the coarse General MIDI grouping an instrument belongs to.
// Instruments of the same family form a similarity group for stacking.
type Family int

const (
	FamilyKeyboard Family = iota + 1
	FamilyMallets
	FamilyOrgan
	FamilyGuitar
	FamilyBass
	FamilyStrings
	FamilyEnsemble
	FamilyBrass
	FamilyReed
	FamilyPipe
	FamilySynthLead
	FamilySynthPad
	FamilyEffects
	FamilyEthnic
	FamilyPercussive
	FamilySoundEffects
	FamilyDrums // one piece of the percussion channel
)

var familyNames = map[Family]string{
	FamilyKeyboard:     "Keyboard",
	FamilyMallets:      "Mallets",
	FamilyOrgan:        "Organ",
	FamilyGuitar:       "Guitar",
	FamilyBass:         "Bass",
	FamilyStrings:      "Strings",
	FamilyEnsemble:     "Ensemble",
	FamilyBrass:        "Brass",
	FamilyReed:         "Reed",
	FamilyPipe:         "Pipe",
	FamilySynthLead:    "Synth Lead",
	FamilySynthPad:     "Synth Pad",
	FamilyEffects:      "Effects",
	FamilyEthnic:       "Ethnic",
	FamilyPercussive:   "Percussive",
	FamilySoundEffects: "Sound Effects",
	FamilyDrums:        "Drums",
}

func (f Family) String() string {
	if n, ok := familyNames[f]; ok {
		return n
	}
	return fmt.Sprintf("Family(%d)", int(f))
}

// Traits is the closed set of behaviors an instrument composes instead of
// subclassing: a monophonic body that needs polyphony clones, a rank of
// twelve pitch-class bodies, a mallet/stick with drum recoil, or a wobbling
// cymbal.
type Traits struct {
	Clones   bool
	Twelfths bool
	Striker  bool
	Wobble   bool
}

func familyForProgram(program uint8) Family {
	switch {
	case program < 8:
		return FamilyKeyboard
	case program < 16:
		return FamilyMallets
	case program < 24:
		return FamilyOrgan
	case program < 32:
		return FamilyGuitar
	case program < 40:
		return FamilyBass
	case program < 48:
		return FamilyStrings
	case program < 56:
		return FamilyEnsemble
	case program < 64:
		return FamilyBrass
	case program < 72:
		return FamilyReed
	case program < 80:
		return FamilyPipe
	case program < 88:
		return FamilySynthLead
	case program < 96:
		return FamilySynthPad
	case program < 104:
		return FamilyEffects
	case program < 112:
		return FamilyEthnic
	case program < 120:
		return FamilyPercussive
	default:
		return FamilySoundEffects
	}
}

func traitsForFamily(f Family) Traits {
	switch f {
	case FamilyMallets, FamilyPercussive:
		return Traits{Striker: true}
	case FamilyBrass:
		return Traits{Twelfths: true}
	case FamilyReed, FamilyPipe:
		return Traits{Clones: true}
	default:
		return Traits{}
	}
}

// drumPiece describes one key of the percussion channel.
type drumPiece struct {
	name   string
	cymbal string // cymbal type name, empty for stick drums
}

var drumPieces = map[uint8]drumPiece{
	35: {name: "Acoustic Bass Drum"},
	36: {name: "Bass Drum"},
	37: {name: "Side Stick"},
	38: {name: "Snare Drum"},
	39: {name: "Hand Clap"},
	40: {name: "Electric Snare"},
	41: {name: "Low Floor Tom"},
	42: {name: "Closed Hi-Hat", cymbal: "hihat"},
	43: {name: "High Floor Tom"},
	44: {name: "Pedal Hi-Hat", cymbal: "hihat"},
	45: {name: "Low Tom"},
	46: {name: "Open Hi-Hat", cymbal: "hihat"},
	47: {name: "Low-Mid Tom"},
	48: {name: "Hi-Mid Tom"},
	49: {name: "Crash Cymbal 1", cymbal: "crash"},
	50: {name: "High Tom"},
	51: {name: "Ride Cymbal 1", cymbal: "ride"},
	52: {name: "Chinese Cymbal", cymbal: "crash"},
	53: {name: "Ride Bell", cymbal: "ride"},
	54: {name: "Tambourine"},
	55: {name: "Splash Cymbal", cymbal: "splash"},
	56: {name: "Cowbell"},
	57: {name: "Crash Cymbal 2", cymbal: "crash"},
	59: {name: "Ride Cymbal 2", cymbal: "ride"},
}

func pieceForKey(key uint8) drumPiece {
	if p, ok := drumPieces[key]; ok {
		return p
	}
	return drumPiece{name: fmt.Sprintf("Percussion %d", key)}
}

// Instrument is one on-screen instance. All of its mutable state is the
// per-frame scalar set (visible, stackIndex, physics outputs); everything
// else is derived once at construction and read-only afterwards.
type Instrument struct {
	name          string
	family        Family
	channel       uint8
	program       uint8
	percussionKey uint8
	traits        Traits

	periods []NotePeriod
	sound   intervalSet

	clones []*Clone
	tw     *twelfths
	strike *anim.Striker
	recoil *anim.Recoil
	cymbal *anim.Cymbal

	cfg *Config

	visible    bool
	target     float64
	stackIndex float64
	similar    int
	lastStick  anim.StickStatus
}

func newInstrument(v Voice, tm *TempoMap, cfg *Config) *Instrument {
	in := &Instrument{
		channel: v.Channel,
		program: v.Program,
		cfg:     cfg,
	}
	if v.Percussion {
		piece := pieceForKey(v.Key)
		in.family = FamilyDrums
		in.percussionKey = v.Key
		in.name = piece.name
		in.traits = Traits{Striker: true, Wobble: piece.cymbal != ""}
		in.periods = segmentPeriods(v.Events, v.EndTick, tm)
		in.sound = newIntervalSet(in.periods)
		hits := periodHits(in.periods)
		in.strike = anim.NewStriker(hits, cfg.StrikeSpeed, cfg.MaxStickAngle)
		if piece.cymbal != "" {
			p := cfg.cymbal(piece.cymbal)
			in.cymbal = anim.NewCymbal(hits, p.Amplitude, p.HalfLife, p.WobbleHz)
		} else {
			in.recoil = anim.NewRecoil(hits, cfg.RecoilDistance, cfg.RecoilComeback)
		}
		return in
	}

	in.family = familyForProgram(v.Program)
	in.name = fmt.Sprintf("%s %d", in.family, v.Channel+1)
	in.traits = traitsForFamily(in.family)
	in.periods = segmentPeriods(v.Events, v.EndTick, tm)
	in.sound = newIntervalSet(in.periods)
	switch {
	case in.traits.Clones:
		in.clones = allocateClones(in.periods)
	case in.traits.Twelfths:
		in.tw = newTwelfths(in.periods)
	case in.traits.Striker:
		hits := periodHits(in.periods)
		in.strike = anim.NewStriker(hits, cfg.StrikeSpeed, cfg.MaxStickAngle)
		in.recoil = anim.NewRecoil(hits, cfg.RecoilDistance, cfg.RecoilComeback)
	}
	return in
}

// periodHits projects note starts into the seconds-domain hit list the
// physics machines consume.
func periodHits(periods []NotePeriod) []anim.Hit {
	hits := make([]anim.Hit, len(periods))
	for i, p := range periods {
		hits[i] = anim.Hit{Time: p.Start, Velocity: int(p.Velocity)}
	}
	return hits
}

// groupKey identifies the similarity group this instance stacks within.
// Every piece of the drum channel is its own group; melodic instruments
// group by family.
func (in *Instrument) groupKey() string {
	if in.family == FamilyDrums {
		return fmt.Sprintf("drums:%d", in.percussionKey)
	}
	return in.family.String()
}

// tickPhysics advances the instance's state machines to time.
func (in *Instrument) tickPhysics(time, delta float64) {
	if in.strike != nil {
		in.lastStick = in.strike.Tick(time)
	}
	if in.recoil != nil {
		in.recoil.Tick(time)
	}
	if in.cymbal != nil {
		in.cymbal.Tick(time, delta)
	}
	for _, c := range in.clones {
		c.tick(time)
	}
	if in.tw != nil {
		in.tw.tick(time)
	}
}

// Name returns a human-readable label for monitors and demo renderers.
func (in *Instrument) Name() string { return in.name }

func (in *Instrument) Family() Family { return in.family }

func (in *Instrument) Channel() uint8 { return in.channel }

func (in *Instrument) Program() uint8 { return in.program }

// PercussionKey returns the drum key for FamilyDrums instances, else 0.
func (in *Instrument) PercussionKey() uint8 { return in.percussionKey }

func (in *Instrument) Traits() Traits { return in.traits }

// NotePeriods returns the instrument's full resolved period list.
func (in *Instrument) NotePeriods() []NotePeriod { return in.periods }

// Visible reports the visibility decided on the last Tick.
func (in *Instrument) Visible() bool { return in.visible }

// StackIndex returns the continuous position within the similarity group,
// clamped to [0, group size].
func (in *Instrument) StackIndex() float64 { return in.stackIndex }

// Clones returns the instance's polyphony bodies (nil without the trait).
func (in *Instrument) Clones() []*Clone { return in.clones }

// StickAngle returns the striker angle in degrees, 0 when unarmed.
func (in *Instrument) StickAngle() float64 {
	if in.strike == nil {
		return 0
	}
	return in.strike.Angle()
}

// JustStruck reports whether a hit landed on the last ticked frame.
func (in *Instrument) JustStruck() bool { return in.lastStick.JustStruck }

// RecoilOffset returns the drum body displacement, always <= 0.
func (in *Instrument) RecoilOffset() float64 {
	if in.recoil == nil {
		return 0
	}
	return in.recoil.Offset()
}

// WobbleAmplitude returns the cymbal wobble amplitude, 0 for non-cymbals.
func (in *Instrument) WobbleAmplitude() float64 {
	if in.cymbal == nil {
		return 0
	}
	return in.cymbal.Amplitude()
}

// WobblePhase returns the monotonically advancing cymbal phase in radians.
func (in *Instrument) WobblePhase() float64 {
	if in.cymbal == nil {
		return 0
	}
	return in.cymbal.Phase()
}

// TwelfthPlaying reports whether pitch-class slot 0..11 is sounding.
func (in *Instrument) TwelfthPlaying(slot int) bool {
	if in.tw == nil || slot < 0 || slot > 11 {
		return false
	}
	return in.tw.playing[slot]
}

// TwelfthNotePeriod returns the period sounding in a pitch-class slot, or
// nil when the slot is idle.
func (in *Instrument) TwelfthNotePeriod(slot int) *NotePeriod {
	if in.tw == nil || slot < 0 || slot > 11 {
		return nil
	}
	return in.tw.current[slot]
}

// Sounding reports whether any note of the instrument covers time.
func (in *Instrument) Sounding(time float64) bool { return in.sound.soundingAt(time) }
