package midi

import (
	"sort"
	"sync"
)

// Queue is a mutex-guarded event queue for the non-real-time side of a
// host adapter: live input callbacks append events as they arrive, and
// the block loop collects everything that falls inside the next block.
// It must never be touched from the audio path; the real-time side uses
// Buffer instead.
type Queue struct {
	mu     sync.Mutex
	events []Event
	sorted bool
}

// NewQueue creates an empty queue with room for a typical block's worth
// of events before growing.
func NewQueue() *Queue {
	return &Queue{
		events: make([]Event, 0, 128),
		sorted: true,
	}
}

// Add appends an event.
func (q *Queue) Add(e Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.events = append(q.events, e)
	q.sorted = false
}

// Size returns the number of pending events.
func (q *Queue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// CollectThrough removes and returns, in timestamp order, every pending
// event with TimeSeconds strictly before the given time. The returned
// slice is owned by the caller.
func (q *Queue) CollectThrough(timeSeconds float64) []Event {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.sorted {
		sort.SliceStable(q.events, func(i, j int) bool {
			return q.events[i].TimeSeconds < q.events[j].TimeSeconds
		})
		q.sorted = true
	}

	n := sort.Search(len(q.events), func(i int) bool {
		return q.events[i].TimeSeconds >= timeSeconds
	})
	if n == 0 {
		return nil
	}

	out := make([]Event, n)
	copy(out, q.events[:n])
	rest := copy(q.events, q.events[n:])
	q.events = q.events[:rest]
	return out
}

// Clear discards all pending events.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.events = q.events[:0]
	q.sorted = true
}
