package midistage

import (
	"fmt"
	"sort"

	"gitlab.com/gomidi/midi/v2/smf"
)

// percussionChannel is the General MIDI drum channel (0-based).
const percussionChannel = 9

type voiceKey struct {
	channel    uint8
	program    uint8
	percussion bool
	key        uint8
}

// ReadSMFFile loads a Standard MIDI File and resolves it into a Score.
func ReadSMFFile(path string) (*Score, error) {
	sm, err := smf.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read midi file %s: %w", path, err)
	}
	score, err := FromSMF(sm)
	if err != nil {
		return nil, fmt.Errorf("resolve midi file %s: %w", path, err)
	}
	return score, nil
}

// FromSMF resolves a parsed Standard MIDI File into the engine's score
// model: one voice per melodic channel/program pair, one voice per struck
// key on the percussion channel, and a tempo map collected from the meta
// tempo events of every track.
func FromSMF(sm *smf.SMF) (*Score, error) {
	ticks, ok := sm.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, fmt.Errorf("unsupported time format %v", sm.TimeFormat)
	}
	resolution := int(ticks)

	voices := make(map[voiceKey]*Voice)
	var order []voiceKey
	var tempos []TempoChange
	var endTick int64

	appendEvent := func(k voiceKey, ev Event) {
		v, ok := voices[k]
		if !ok {
			v = &Voice{Channel: k.channel, Program: k.program, Percussion: k.percussion, Key: k.key}
			voices[k] = v
			order = append(order, k)
		}
		v.Events = append(v.Events, ev)
	}

	for _, track := range sm.Tracks {
		var abs int64
		// The running program per channel; notes bind to whatever
		// program was last selected when they start.
		var programs [16]uint8
		for _, ev := range track {
			abs += int64(ev.Delta)
			if abs > endTick {
				endTick = abs
			}
			msg := ev.Message

			var bpm float64
			if msg.GetMetaTempo(&bpm) {
				tempos = append(tempos, TempoChange{Tick: abs, BPM: bpm})
				continue
			}

			var channel, note, velocity uint8
			var control, value uint8
			switch {
			case msg.GetNoteOn(&channel, &note, &velocity):
				typ := EventNoteOn
				if velocity == 0 {
					// Running-status note-off convention.
					typ = EventNoteOff
				}
				appendEvent(keyFor(channel, programs[channel], note),
					Event{Type: typ, Tick: abs, Channel: channel, Note: note, Velocity: velocity})
			case msg.GetNoteOff(&channel, &note, &velocity):
				appendEvent(keyFor(channel, programs[channel], note),
					Event{Type: EventNoteOff, Tick: abs, Channel: channel, Note: note})
			case msg.GetProgramChange(&channel, &value):
				programs[channel] = value
			case msg.GetControlChange(&channel, &control, &value):
				// Control changes ride along on every voice already
				// open on the channel; downstream reads them, the
				// core algorithms do not.
				for _, k := range order {
					if k.channel == channel {
						appendEvent(k, Event{Type: EventControl, Tick: abs, Channel: channel, Control: control, Value: value})
					}
				}
			}
		}
	}

	score := &Score{
		Resolution: resolution,
		Tempo:      NewTempoMap(resolution, tempos),
		EndTick:    endTick,
	}
	for _, k := range order {
		v := voices[k]
		v.EndTick = endTick
		sort.SliceStable(v.Events, func(i, j int) bool { return v.Events[i].Tick < v.Events[j].Tick })
		score.Voices = append(score.Voices, *v)
	}
	return score, nil
}

func keyFor(channel, program, note uint8) voiceKey {
	if channel == percussionChannel {
		return voiceKey{channel: channel, percussion: true, key: note}
	}
	return voiceKey{channel: channel, program: program}
}
