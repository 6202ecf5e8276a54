// Package midi provides the MIDI event model used by the style engine.
package midi

import (
	"fmt"
)

type EventType uint8

const (
	EventTypeNoteOff EventType = iota
	EventTypeNoteOn
	EventTypePolyPressure
	EventTypeControlChange
	EventTypeProgramChange
	EventTypeChannelPressure
	EventTypePitchBend
	EventTypeSystemExclusive
	EventTypeClock
	EventTypeStart
	EventTypeStop
	EventTypeContinue
	EventTypeReset
	EventTypeActiveSensing
)

func (t EventType) String() string {
	switch t {
	case EventTypeNoteOff:
		return "NoteOff"
	case EventTypeNoteOn:
		return "NoteOn"
	case EventTypePolyPressure:
		return "PolyPressure"
	case EventTypeControlChange:
		return "ControlChange"
	case EventTypeProgramChange:
		return "ProgramChange"
	case EventTypeChannelPressure:
		return "ChannelPressure"
	case EventTypePitchBend:
		return "PitchBend"
	case EventTypeSystemExclusive:
		return "SysEx"
	case EventTypeClock:
		return "Clock"
	case EventTypeStart:
		return "Start"
	case EventTypeStop:
		return "Stop"
	case EventTypeContinue:
		return "Continue"
	case EventTypeReset:
		return "Reset"
	case EventTypeActiveSensing:
		return "ActiveSensing"
	default:
		return "Unknown"
	}
}

// Event is a single timestamped MIDI event. It is a value type so the
// real-time path can copy and rewrite events without allocating.
//
// TimeSeconds is the event's position on the host timeline in seconds.
// Channel is the MIDI channel 1-16. Note and Velocity are only meaningful
// for note events; Data carries the raw value for everything else
// (controller value, program number, pressure).
type Event struct {
	Kind        EventType
	Channel     uint8
	Note        uint8
	Velocity    uint8
	Data        uint8
	TimeSeconds float64
}

// NoteOn creates a note-on event.
func NoteOn(channel, note, velocity uint8, timeSeconds float64) Event {
	return Event{
		Kind:        EventTypeNoteOn,
		Channel:     channel,
		Note:        note,
		Velocity:    velocity,
		TimeSeconds: timeSeconds,
	}
}

// NoteOff creates a note-off event.
func NoteOff(channel, note uint8, timeSeconds float64) Event {
	return Event{
		Kind:        EventTypeNoteOff,
		Channel:     channel,
		Note:        note,
		TimeSeconds: timeSeconds,
	}
}

// IsNoteOn reports whether the event starts a note. A note-on with zero
// velocity is a disguised note-off per the MIDI spec and is not treated
// as a note start.
func (e Event) IsNoteOn() bool {
	return e.Kind == EventTypeNoteOn && e.Velocity > 0
}

// SampleOffset returns the event's position as an integer sample offset
// at the given sample rate. Truncation, not rounding: events sort by the
// sample frame they fall into.
func (e Event) SampleOffset(sampleRate float64) int64 {
	return int64(e.TimeSeconds * sampleRate)
}

func (e Event) String() string {
	switch e.Kind {
	case EventTypeNoteOn, EventTypeNoteOff:
		return fmt.Sprintf("%s{ch:%d, note:%d, vel:%d, t:%.6f}",
			e.Kind, e.Channel, e.Note, e.Velocity, e.TimeSeconds)
	default:
		return fmt.Sprintf("%s{ch:%d, data:%d, t:%.6f}",
			e.Kind, e.Channel, e.Data, e.TimeSeconds)
	}
}

func NoteNumberToName(note uint8) string {
	noteNames := []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
	octave := int(note/12) - 1
	return fmt.Sprintf("%s%d", noteNames[note%12], octave)
}
