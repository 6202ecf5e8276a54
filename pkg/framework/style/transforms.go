package style

import (
	"math"
	"math/rand"

	"github.com/justyntemme/stylego/pkg/midi"
)

// Transform tuning constants.
const (
	// Off-beat window around the 8th-note midpoint, open interval.
	swingWindowLow  = 0.4
	swingWindowHigh = 0.6

	// A full-swing ratio of 1.0 delays off-beats by a 16th note.
	swingDelayBeats = 0.25

	// Downbeat window: within a tenth of a beat either side of the beat.
	accentWindow = 0.1

	// Humanization bounds at amount 1.0.
	maxTimingJitterMs = 5.0
	maxVelocityJitter = 10
)

// beatFraction returns the event's position within its beat, in [0, 1).
func beatFraction(timeSeconds, bpm float64) float64 {
	positionInBeats := timeSeconds * bpm / 60.0
	return positionInBeats - math.Floor(positionInBeats)
}

// ApplySwing delays note-ons that fall in the off-beat window, creating
// the laid-back 8th-note feel. Only the timestamp changes; channel, note
// and velocity pass through untouched. Non-note-on events are returned
// unchanged. Deterministic for fixed inputs.
func ApplySwing(e midi.Event, p Parameters, bpm float64) midi.Event {
	if !e.IsNoteOn() {
		return e
	}

	frac := beatFraction(e.TimeSeconds, bpm)
	if frac <= swingWindowLow || frac >= swingWindowHigh {
		return e
	}

	delayBeats := (p.SwingRatio - 0.5) * swingDelayBeats
	e.TimeSeconds += delayBeats * 60.0 / bpm
	return e
}

// ApplyAccent adds the accent amount to note-ons that land near an
// integer beat, on the (possibly swing-shifted) timestamp. The offset is
// added to the performer's original velocity, never assigned over it,
// and the result is clamped to the MIDI range. Timing is never altered.
func ApplyAccent(e midi.Event, p Parameters, bpm float64) midi.Event {
	if !e.IsNoteOn() {
		return e
	}

	frac := beatFraction(e.TimeSeconds, bpm)
	if frac >= accentWindow && frac <= 1.0-accentWindow {
		return e
	}

	e.Velocity = clampVelocity(int(e.Velocity) + int(math.Round(p.AccentAmount)))
	return e
}

// ApplyHumanize adds bounded random jitter to a note-on's timing and
// velocity, drawn from the caller's seeded generator. A zero amount is
// an exact identity for that dimension and draws nothing from the
// generator, so fixed seeds give reproducible sequences regardless of
// which amounts are active.
func ApplyHumanize(e midi.Event, p Parameters, rng *rand.Rand) midi.Event {
	if !e.IsNoteOn() {
		return e
	}

	if p.HumanizeTiming > 0 {
		r := rng.Float64()*2.0 - 1.0 // -1..1
		offsetMs := r * maxTimingJitterMs * p.HumanizeTiming
		e.TimeSeconds += offsetMs / 1000.0
	}

	if p.HumanizeVelocity > 0 {
		r := rng.Intn(2*maxVelocityJitter+1) - maxVelocityJitter // -10..10
		offset := int(math.Round(float64(r) * p.HumanizeVelocity))
		e.Velocity = clampVelocity(int(e.Velocity) + offset)
	}

	return e
}

func clampVelocity(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 127 {
		return 127
	}
	return uint8(v)
}
