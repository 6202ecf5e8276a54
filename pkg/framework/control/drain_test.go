package control

import (
	"math"
	"testing"

	"github.com/justyntemme/stylego/pkg/framework/style"
)

type recordingMirror struct {
	calls []style.Parameters
}

func (m *recordingMirror) StyleChanged(p style.Parameters) {
	m.calls = append(m.calls, p)
}

func newTestDrainer() (*Ring, *style.Store, *recordingMirror, *Drainer, *bool) {
	ring := NewRing(16)
	store := style.NewStore(style.Default())
	mirror := &recordingMirror{}
	enabled := false
	d := NewDrainer(ring, store, mirror, func(v bool) { enabled = v })
	return ring, store, mirror, d, &enabled
}

func TestDrainAppliesMessages(t *testing.T) {
	ring, store, _, d, _ := newTestDrainer()

	ring.Push(FloatMessage(SetSwing, 0.7, 0))
	ring.Push(FloatMessage(SetAccent, 25, 0))
	ring.Push(FloatMessage(SetHumanizeTiming, 0.3, 0))
	ring.Push(FloatMessage(SetHumanizeVelocity, 0.4, 0))

	if n := d.Drain(); n != 4 {
		t.Fatalf("Drain() = %d, want 4", n)
	}

	got := store.Load()
	want := style.Parameters{SwingRatio: 0.7, AccentAmount: 25, HumanizeTiming: 0.3, HumanizeVelocity: 0.4}
	if got != want {
		t.Errorf("snapshot = %+v, want %+v", got, want)
	}
}

func TestDrainLastWriteWins(t *testing.T) {
	ring, store, _, d, _ := newTestDrainer()

	ring.Push(FloatMessage(SetSwing, 0.6, 0))
	ring.Push(FloatMessage(SetSwing, 0.8, 1))
	ring.Push(FloatMessage(SetSwing, 0.65, 2))

	d.Drain()

	if got := store.Load().SwingRatio; got != 0.65 {
		t.Errorf("SwingRatio = %v, want 0.65 (last write wins)", got)
	}
}

func TestDrainClampsOutOfRangeValues(t *testing.T) {
	ring, store, _, d, _ := newTestDrainer()

	ring.Push(FloatMessage(SetSwing, 3.5, 0))
	ring.Push(FloatMessage(SetAccent, math.NaN(), 0))

	d.Drain()

	got := store.Load()
	if got.SwingRatio != style.SwingRatioMax {
		t.Errorf("SwingRatio = %v, want clamped to %v", got.SwingRatio, style.SwingRatioMax)
	}
	if got.AccentAmount != style.AccentAmountMin {
		t.Errorf("AccentAmount = %v, want %v (NaN collapses to minimum)", got.AccentAmount, style.AccentAmountMin)
	}
}

func TestDrainDiscardsMalformedMessages(t *testing.T) {
	ring, store, _, d, _ := newTestDrainer()
	before := store.Load()

	// Wrong payload kinds for the addresses.
	ring.Push(BoolMessage(SetSwing, true, 0))
	ring.Push(FloatMessage(SetEnable, 1.0, 0))

	if n := d.Drain(); n != 2 {
		t.Fatalf("Drain() = %d, want 2 (malformed messages still consumed)", n)
	}
	if d.Malformed() != 2 {
		t.Errorf("Malformed() = %d, want 2", d.Malformed())
	}
	if d.Applied() != 0 {
		t.Errorf("Applied() = %d, want 0", d.Applied())
	}
	if got := store.Load(); got != before {
		t.Errorf("malformed messages changed state: %+v -> %+v", before, got)
	}
}

func TestDrainEnableCallback(t *testing.T) {
	ring, _, _, d, enabled := newTestDrainer()

	ring.Push(BoolMessage(SetEnable, true, 0))
	d.Drain()
	if !*enabled {
		t.Error("enable callback not invoked with true")
	}

	ring.Push(BoolMessage(SetEnable, false, 1))
	d.Drain()
	if *enabled {
		t.Error("enable callback not invoked with false")
	}
}

func TestDrainMirrorSeesFinalSnapshot(t *testing.T) {
	ring, _, mirror, d, _ := newTestDrainer()

	ring.Push(FloatMessage(SetSwing, 0.9, 0))
	ring.Push(FloatMessage(SetAccent, 30, 0))
	d.Drain()

	if len(mirror.calls) != 1 {
		t.Fatalf("mirror called %d times, want 1 (one publish per drain)", len(mirror.calls))
	}
	if mirror.calls[0].SwingRatio != 0.9 || mirror.calls[0].AccentAmount != 30 {
		t.Errorf("mirror saw %+v", mirror.calls[0])
	}
}

func TestDrainEmptyRingPublishesNothing(t *testing.T) {
	_, _, mirror, d, _ := newTestDrainer()

	if n := d.Drain(); n != 0 {
		t.Errorf("Drain() = %d, want 0", n)
	}
	if len(mirror.calls) != 0 {
		t.Error("drain of empty ring published a snapshot")
	}
}
