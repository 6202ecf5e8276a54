package control

import (
	"github.com/justyntemme/stylego/pkg/framework/style"
)

// Mirror receives the post-drain snapshot so a host-facing parameter
// system can stay in sync with control-driven changes. Called on the
// drain thread.
type Mirror interface {
	StyleChanged(style.Parameters)
}

// Drainer folds queued control messages into the live style snapshot.
// It runs on a non-real-time thread at a low, bounded frequency (a timer
// tick or the host's parameter callback), never on the audio path, and
// it is the ring's sole consumer and the store's sole writer.
type Drainer struct {
	ring   *Ring
	store  *style.Store
	mirror Mirror
	enable func(bool)

	applied   uint64
	malformed uint64
}

// NewDrainer wires a drainer to its ring and store. mirror and enable
// may be nil.
func NewDrainer(ring *Ring, store *style.Store, mirror Mirror, enable func(bool)) *Drainer {
	return &Drainer{
		ring:   ring,
		store:  store,
		mirror: mirror,
		enable: enable,
	}
}

// Drain consumes every ready message in FIFO order and publishes at most
// one snapshot swap. Later messages for the same address win. Messages
// carrying the wrong payload kind for their address are discarded with
// no state change. Returns the number of messages consumed.
func (d *Drainer) Drain() int {
	p := d.store.Load()
	n := 0
	styleChanged := false

	for {
		m, ok := d.ring.Pop()
		if !ok {
			break
		}
		n++

		switch m.Address {
		case SetSwing:
			if m.Kind != ValueFloat {
				d.malformed++
				continue
			}
			p.SwingRatio = m.Float
			styleChanged = true
		case SetAccent:
			if m.Kind != ValueFloat {
				d.malformed++
				continue
			}
			p.AccentAmount = m.Float
			styleChanged = true
		case SetHumanizeTiming:
			if m.Kind != ValueFloat {
				d.malformed++
				continue
			}
			p.HumanizeTiming = m.Float
			styleChanged = true
		case SetHumanizeVelocity:
			if m.Kind != ValueFloat {
				d.malformed++
				continue
			}
			p.HumanizeVelocity = m.Float
			styleChanged = true
		case SetEnable:
			if m.Kind != ValueBool {
				d.malformed++
				continue
			}
			if d.enable != nil {
				d.enable(m.Bool)
			}
		default:
			// Unrecognized addresses are ignored, not errors.
			d.malformed++
			continue
		}
		d.applied++
	}

	if styleChanged {
		// Publish clamps, so an out-of-range or NaN payload can never
		// become the live value.
		d.store.Publish(p)
		if d.mirror != nil {
			d.mirror.StyleChanged(d.store.Load())
		}
	}
	return n
}

// Applied returns the number of messages applied since creation.
func (d *Drainer) Applied() uint64 {
	return d.applied
}

// Malformed returns the number of messages discarded for carrying the
// wrong payload kind or an unknown address.
func (d *Drainer) Malformed() uint64 {
	return d.malformed
}
