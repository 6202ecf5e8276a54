package plugin

import (
	"github.com/justyntemme/stylego/pkg/framework/bus"
	"github.com/justyntemme/stylego/pkg/framework/param"
	"github.com/justyntemme/stylego/pkg/framework/process"
)

// Processor is the contract a host adapter drives. Initialize runs once
// before streaming; ProcessBlock runs once per block on the real-time
// path and must return in bounded time without allocating, locking or
// erroring — every input has defined total behavior.
type Processor interface {
	// Initialize prepares buffers and seeds for the given stream
	// configuration. Non-real-time.
	Initialize(sampleRate float64, maxBlockSize int32) error

	// ProcessBlock transforms ctx.In into ctx.Out. Real-time.
	ProcessBlock(ctx *process.Context)

	// SetActive is called around streaming start/stop. Non-real-time.
	SetActive(active bool) error

	// Parameters returns the declared parameter set.
	Parameters() *param.Registry

	// Buses returns the declared bus layout.
	Buses() *bus.Configuration
}

// BaseProcessor provides the common plumbing: registry, buses, sample
// rate, and optional lifecycle callbacks. Concrete processors embed it.
type BaseProcessor struct {
	params     *param.Registry
	buses      *bus.Configuration
	sampleRate float64

	onInitialize func(sampleRate float64, maxBlockSize int32) error
	onSetActive  func(active bool) error
	onReset      func()
}

// NewBaseProcessor creates a base with the given bus layout. A nil
// layout defaults to the MIDI-effect configuration.
func NewBaseProcessor(buses *bus.Configuration) *BaseProcessor {
	if buses == nil {
		buses = bus.NewMIDIEffectConfiguration()
	}
	return &BaseProcessor{
		params: param.NewRegistry(),
		buses:  buses,
	}
}

// Initialize implements Processor.
func (b *BaseProcessor) Initialize(sampleRate float64, maxBlockSize int32) error {
	b.sampleRate = sampleRate
	if b.onInitialize != nil {
		return b.onInitialize(sampleRate, maxBlockSize)
	}
	return nil
}

// SetActive implements Processor.
func (b *BaseProcessor) SetActive(active bool) error {
	if !active && b.onReset != nil {
		b.onReset()
	}
	if b.onSetActive != nil {
		return b.onSetActive(active)
	}
	return nil
}

// Parameters implements Processor.
func (b *BaseProcessor) Parameters() *param.Registry {
	return b.params
}

// Buses implements Processor.
func (b *BaseProcessor) Buses() *bus.Configuration {
	return b.buses
}

// SampleRate returns the rate passed to Initialize.
func (b *BaseProcessor) SampleRate() float64 {
	return b.sampleRate
}

// OnInitialize sets a callback run during Initialize.
func (b *BaseProcessor) OnInitialize(fn func(sampleRate float64, maxBlockSize int32) error) {
	b.onInitialize = fn
}

// OnSetActive sets a callback run during SetActive.
func (b *BaseProcessor) OnSetActive(fn func(active bool) error) {
	b.onSetActive = fn
}

// OnReset sets a callback run when streaming deactivates.
func (b *BaseProcessor) OnReset(fn func()) {
	b.onReset = fn
}
