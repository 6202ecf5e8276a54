// Package style implements the real-time MIDI style transformations:
// swing timing, accent dynamics and humanization jitter, together with
// the atomically published parameter snapshot they read from.
package style

import (
	"math"
	"sync/atomic"
)

// Declared parameter ranges. Values from outside (host automation, OSC,
// restored state) are clamped to these before becoming live.
const (
	SwingRatioMin = 0.0
	SwingRatioMax = 1.0

	AccentAmountMin = -50.0
	AccentAmountMax = 50.0

	HumanizeAmountMin = 0.0
	HumanizeAmountMax = 1.0
)

// Defaults match the plugin's declared parameter layout.
const (
	DefaultSwingRatio   = 0.5
	DefaultAccentAmount = 20.0
)

// Parameters is the immutable style snapshot read by the transform
// pipeline. It is copied by value across threads; a published snapshot
// is never mutated.
type Parameters struct {
	SwingRatio       float64 // 0.5 = straight, above = laid back
	AccentAmount     float64 // velocity added on downbeats
	HumanizeTiming   float64 // 0 = none, 1 = full +/-5ms jitter
	HumanizeVelocity float64 // 0 = none, 1 = full +/-10 jitter
}

// Default returns the snapshot the plugin starts with.
func Default() Parameters {
	return Parameters{
		SwingRatio:   DefaultSwingRatio,
		AccentAmount: DefaultAccentAmount,
	}
}

// Clamped returns a copy with every field forced into its declared
// range. NaN collapses to the range minimum so an invalid value can
// never persist past a publish.
func (p Parameters) Clamped() Parameters {
	p.SwingRatio = clamp(p.SwingRatio, SwingRatioMin, SwingRatioMax)
	p.AccentAmount = clamp(p.AccentAmount, AccentAmountMin, AccentAmountMax)
	p.HumanizeTiming = clamp(p.HumanizeTiming, HumanizeAmountMin, HumanizeAmountMax)
	p.HumanizeVelocity = clamp(p.HumanizeVelocity, HumanizeAmountMin, HumanizeAmountMax)
	return p
}

func clamp(v, min, max float64) float64 {
	if math.IsNaN(v) || v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Store publishes Parameters snapshots from the control thread to the
// real-time thread with a single atomic pointer swap. The reader takes
// one Load per block and treats the result as immutable for the block's
// duration; there is no lock and no torn read.
type Store struct {
	current atomic.Pointer[Parameters]
}

// NewStore creates a store holding the given initial snapshot, clamped.
func NewStore(p Parameters) *Store {
	s := &Store{}
	s.Publish(p)
	return s
}

// Load returns the current snapshot by value.
func (s *Store) Load() Parameters {
	return *s.current.Load()
}

// Publish clamps and installs a new snapshot. Only the control/drain
// path may call this; the store is single-writer.
func (s *Store) Publish(p Parameters) {
	p = p.Clamped()
	s.current.Store(&p)
}
