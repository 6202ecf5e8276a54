package midi

// Buffer is a fixed-capacity event buffer for the real-time path. All
// storage is allocated up front; Push and emit in sorted order never
// allocate. Events are kept ordered by integer sample offset with ties
// preserving insertion order, which is the ordering contract of the
// style engine's output.
type Buffer struct {
	events  []Event
	offsets []int64
	len     int
	dropped uint64
}

// NewBuffer creates a buffer holding at most capacity events.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{
		events:  make([]Event, capacity),
		offsets: make([]int64, capacity),
	}
}

// Len returns the number of buffered events.
func (b *Buffer) Len() int {
	return b.len
}

// Cap returns the buffer capacity.
func (b *Buffer) Cap() int {
	return len(b.events)
}

// Dropped returns the number of events rejected because the buffer was
// full. Inspected outside the real-time path.
func (b *Buffer) Dropped() uint64 {
	return b.dropped
}

// Push inserts an event keyed by its sample offset at the given rate,
// keeping the buffer sorted. Equal offsets keep insertion order. Returns
// false if the buffer is full; the event is dropped, never corrupting
// live entries.
//
// Insertion sort, not a heap: blocks are small and bounded, and the
// common case is near-sorted input.
func (b *Buffer) Push(e Event, sampleRate float64) bool {
	if b.len == len(b.events) {
		b.dropped++
		return false
	}
	off := e.SampleOffset(sampleRate)

	i := b.len
	for i > 0 && b.offsets[i-1] > off {
		b.events[i] = b.events[i-1]
		b.offsets[i] = b.offsets[i-1]
		i--
	}
	b.events[i] = e
	b.offsets[i] = off
	b.len++
	return true
}

// Events returns the buffered events in order. The slice aliases internal
// storage and is valid until the next Push or Reset.
func (b *Buffer) Events() []Event {
	return b.events[:b.len]
}

// Reset empties the buffer without releasing storage.
func (b *Buffer) Reset() {
	b.len = 0
}
