package control

import (
	"sync/atomic"
)

// DefaultRingCapacity matches the original plugin's control FIFO depth.
const DefaultRingCapacity = 1024

// Ring is a fixed-capacity single-producer/single-consumer queue of
// control messages. One goroutine may call Push, one may call Pop; both
// are wait-free and allocation-free.
//
// Cursors only ever increase; a slot index is cursor&mask, so capacity
// must be a power of two. The producer publishes the slot before
// advancing the write cursor, and the consumer reads the slot before
// advancing the read cursor, so no slot is observed half-written or
// overwritten while live. When the ring is full, Push drops the new
// message (drop-newest): control updates are idempotent and the next
// one supersedes.
type Ring struct {
	slots []Message
	mask  uint64

	write   atomic.Uint64
	read    atomic.Uint64
	dropped atomic.Uint64
}

// NewRing creates a ring with at least the requested capacity, rounded
// up to a power of two. A capacity below 2 is raised to 2.
func NewRing(capacity int) *Ring {
	n := uint64(2)
	for n < uint64(capacity) {
		n <<= 1
	}
	return &Ring{
		slots: make([]Message, n),
		mask:  n - 1,
	}
}

// Cap returns the ring capacity.
func (r *Ring) Cap() int {
	return len(r.slots)
}

// Len returns the number of messages currently queued. Exact only for
// the two owning goroutines; advisory elsewhere.
func (r *Ring) Len() int {
	return int(r.write.Load() - r.read.Load())
}

// Push enqueues a message. Returns false and drops it if the ring is
// full. Producer side only.
func (r *Ring) Push(m Message) bool {
	w := r.write.Load()
	if w-r.read.Load() == uint64(len(r.slots)) {
		r.dropped.Add(1)
		return false
	}
	r.slots[w&r.mask] = m
	r.write.Store(w + 1) // publishes the slot write
	return true
}

// Pop dequeues the oldest message. Consumer side only.
func (r *Ring) Pop() (Message, bool) {
	rd := r.read.Load()
	if rd == r.write.Load() {
		return Message{}, false
	}
	m := r.slots[rd&r.mask]
	r.read.Store(rd + 1) // releases the slot for reuse
	return m, true
}

// Dropped returns how many messages were rejected by a full ring.
func (r *Ring) Dropped() uint64 {
	return r.dropped.Load()
}
