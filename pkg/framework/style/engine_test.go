package style

import (
	"testing"

	"github.com/justyntemme/stylego/pkg/midi"
)

func newTestEngine(seed int64) *Engine {
	e := NewEngine()
	e.Prepare(48000, 64, seed)
	return e
}

func TestEngineAppliesSwingThenAccent(t *testing.T) {
	e := newTestEngine(1)

	// Beat 0.5 at 120bpm with full swing lands on beat 0.625: still
	// outside the accent window, so the accent must test the shifted
	// position, not the original one.
	p := Parameters{SwingRatio: 1.0, AccentAmount: 15}
	in := []midi.Event{midi.NoteOn(1, 60, 80, 0.25)}

	out := e.Apply(in, p, testBPM)
	if len(out) != 1 {
		t.Fatalf("expected 1 event, got %d", len(out))
	}
	// Swing delay: 0.5*0.25 beats = 0.125 beats = 0.0625s.
	if !approxEqual(out[0].TimeSeconds, 0.3125) {
		t.Errorf("TimeSeconds = %v, want 0.3125", out[0].TimeSeconds)
	}
	if out[0].Velocity != 80 {
		t.Errorf("velocity = %d, want 80 (accent window tests shifted time)", out[0].Velocity)
	}
}

func TestEngineAccentSeesSwingShiftedDownbeat(t *testing.T) {
	e := newTestEngine(1)

	// swingRatio 0 pulls the off-beat at 0.25s back by 0.125 beats to
	// beat 0.375 — still no accent. But a note just before a downbeat
	// that swing does not move keeps its accent.
	p := Parameters{SwingRatio: 0.5, AccentAmount: 15}
	in := []midi.Event{
		midi.NoteOn(1, 60, 80, 0.49), // beat 0.98, downbeat window
	}

	out := e.Apply(in, p, testBPM)
	if out[0].Velocity != 95 {
		t.Errorf("velocity = %d, want 95", out[0].Velocity)
	}
}

func TestEngineDeterministicForFixedSeed(t *testing.T) {
	p := Parameters{SwingRatio: 0.66, AccentAmount: 12, HumanizeTiming: 0.8, HumanizeVelocity: 0.8}

	in := make([]midi.Event, 0, 32)
	for i := 0; i < 16; i++ {
		in = append(in, midi.NoteOn(1, uint8(60+i%12), 70, float64(i)*0.125))
		in = append(in, midi.NoteOff(1, uint8(60+i%12), float64(i)*0.125+0.1))
	}

	run := func() []midi.Event {
		e := newTestEngine(12345)
		out := e.Apply(in, p, testBPM)
		cp := make([]midi.Event, len(out))
		copy(cp, out)
		return cp
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("run lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("event %d differs across identical runs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestEngineOutputOrderedBySampleOffset(t *testing.T) {
	e := newTestEngine(1)

	// Full swing pushes the off-beat note at 0.25s to 0.3125s, past the
	// untouched note-off at 0.26s: output must re-sort by final offset.
	p := Parameters{SwingRatio: 1.0}
	in := []midi.Event{
		midi.NoteOn(1, 60, 80, 0.25),
		midi.NoteOff(1, 59, 0.26),
	}

	out := e.Apply(in, p, testBPM)
	if len(out) != 2 {
		t.Fatalf("expected 2 events, got %d", len(out))
	}
	if out[0].Kind != midi.EventTypeNoteOff {
		t.Errorf("expected the untouched note-off first, got %v", out[0])
	}
	if out[1].Kind != midi.EventTypeNoteOn {
		t.Errorf("expected the delayed note-on second, got %v", out[1])
	}
}

func TestEngineTiesKeepInputOrder(t *testing.T) {
	e := newTestEngine(1)
	p := Parameters{} // all transforms neutral

	in := []midi.Event{
		midi.NoteOn(1, 64, 80, 1.0),
		midi.NoteOn(1, 60, 80, 1.0),
		midi.NoteOn(1, 67, 80, 1.0),
	}

	out := e.Apply(in, p, testBPM)
	wantNotes := []uint8{64, 60, 67}
	for i, e := range out {
		if e.Note != wantNotes[i] {
			t.Errorf("event %d: note = %d, want %d", i, e.Note, wantNotes[i])
		}
	}
}

func TestEngineNeutralParametersAreIdentity(t *testing.T) {
	e := newTestEngine(77)
	p := Parameters{SwingRatio: 0.5, AccentAmount: 0}

	in := []midi.Event{
		midi.NoteOn(1, 60, 80, 0.0),
		midi.NoteOn(1, 62, 90, 0.25),
		midi.NoteOff(1, 60, 0.5),
	}

	out := e.Apply(in, p, testBPM)
	if len(out) != len(in) {
		t.Fatalf("expected %d events, got %d", len(in), len(out))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("event %d changed under neutral parameters: %v -> %v", i, out[i], in[i])
		}
	}
}
