// Package process provides the per-block processing context handed to a
// MIDI processor. The context is created once with preallocated storage
// and refilled by the host adapter each block; nothing here allocates on
// the block path.
package process

import (
	"github.com/justyntemme/stylego/pkg/framework/param"
	"github.com/justyntemme/stylego/pkg/midi"
)

// Context carries one block's worth of events and timing from the host
// to the processor and back.
type Context struct {
	// In holds the block's input events in arrival order. Filled by the
	// host adapter before ProcessBlock.
	In []midi.Event

	// Out holds the transformed events after ProcessBlock, ordered by
	// sample offset. It aliases processor-owned storage and is valid
	// until the next block.
	Out []midi.Event

	SampleRate float64
	Tempo      float64 // beats per minute
	BlockSize  int32   // samples per block

	// BlockStartSeconds is the host-timeline time of the block's first
	// sample.
	BlockStartSeconds float64

	params *param.Registry

	// in is the backing array for In.
	in []midi.Event
}

// NewContext creates a context able to carry maxEvents input events per
// block.
func NewContext(maxEvents int, params *param.Registry) *Context {
	return &Context{
		in:     make([]midi.Event, 0, maxEvents),
		params: params,
	}
}

// Begin resets the context for a new block. The host adapter calls this,
// then AddEvent for each arriving event, then hands the context to the
// processor.
func (c *Context) Begin(blockStartSeconds float64, blockSize int32, sampleRate, tempo float64) {
	c.in = c.in[:0]
	c.In = nil
	c.Out = nil
	c.BlockStartSeconds = blockStartSeconds
	c.BlockSize = blockSize
	c.SampleRate = sampleRate
	c.Tempo = tempo
}

// AddEvent appends an input event, preserving arrival order. Returns
// false if the block is full; the event is dropped.
func (c *Context) AddEvent(e midi.Event) bool {
	if len(c.in) == cap(c.in) {
		return false
	}
	c.in = append(c.in, e)
	c.In = c.in
	return true
}

// SetInput installs a caller-owned input slice instead of AddEvent
// staging. Used by offline drivers that already hold a block.
func (c *Context) SetInput(events []midi.Event) {
	c.In = events
}

// NumEvents returns the number of input events in the block.
func (c *Context) NumEvents() int {
	return len(c.In)
}

// PassThrough copies the input to the output unchanged.
func (c *Context) PassThrough() {
	c.Out = c.In
}

// Param returns a parameter's normalized value, or 0 if undeclared.
func (c *Context) Param(id uint32) float64 {
	if p := c.params.Get(id); p != nil {
		return p.GetValue()
	}
	return 0
}

// ParamPlain returns a parameter's plain value, or 0 if undeclared.
func (c *Context) ParamPlain(id uint32) float64 {
	if p := c.params.Get(id); p != nil {
		return p.GetPlainValue()
	}
	return 0
}
