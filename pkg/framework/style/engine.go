package style

import (
	"math/rand"

	"github.com/justyntemme/stylego/pkg/midi"
)

// Engine runs the transform pipeline over blocks of events. All storage
// and the random generator are owned per engine and allocated in
// Prepare; Apply is real-time safe.
//
// Pipeline order is fixed: swing repositions time first so the accent's
// beat-window test sees final timing, and humanization adds the smallest
// variation last. Events are processed independently; note-ons are not
// paired with their note-offs (see the package tests for the ordering
// consequences of that).
type Engine struct {
	out        *midi.Buffer
	rng        *rand.Rand
	sampleRate float64
	prepared   bool
}

// NewEngine creates an unprepared engine. Prepare must run before Apply.
func NewEngine() *Engine {
	return &Engine{}
}

// Prepare allocates the output buffer and seeds the generator. Called
// from the host's setup path, never concurrently with Apply. Re-seeding
// on every prepare makes runs reproducible under a fixed seed.
func (e *Engine) Prepare(sampleRate float64, maxEvents int, seed int64) {
	e.sampleRate = sampleRate
	e.out = midi.NewBuffer(maxEvents)
	e.rng = rand.New(rand.NewSource(seed))
	e.prepared = true
}

// Prepared reports whether Prepare has run.
func (e *Engine) Prepared() bool {
	return e.prepared
}

// SampleRate returns the rate set by Prepare.
func (e *Engine) SampleRate() float64 {
	return e.sampleRate
}

// Apply transforms one block of events under a fixed snapshot and
// returns the styled block, ordered by final sample offset with input
// order breaking ties. The returned slice aliases the engine's internal
// buffer and is valid until the next Apply.
//
// No allocation, no locks, no logging: this runs on the audio thread.
func (e *Engine) Apply(events []midi.Event, p Parameters, bpm float64) []midi.Event {
	e.out.Reset()
	for _, ev := range events {
		ev = ApplySwing(ev, p, bpm)
		ev = ApplyAccent(ev, p, bpm)
		ev = ApplyHumanize(ev, p, e.rng)
		e.out.Push(ev, e.sampleRate)
	}
	return e.out.Events()
}
