package debug

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// BlockProfiler records process-block timing so a host shell can watch
// how close the engine runs to its deadline. Disabled it costs one
// atomic load per block and allocates nothing; it ships disabled and is
// only switched on from a diagnostic path.
type BlockProfiler struct {
	enabled atomic.Bool

	mu       sync.Mutex
	count    uint64
	total    time.Duration
	min      time.Duration
	max      time.Duration
	deadline time.Duration
	misses   uint64
}

// NewBlockProfiler creates a profiler with the given block deadline
// (zero means no deadline tracking).
func NewBlockProfiler(deadline time.Duration) *BlockProfiler {
	return &BlockProfiler{deadline: deadline}
}

// SetEnabled switches profiling on or off.
func (p *BlockProfiler) SetEnabled(enabled bool) {
	p.enabled.Store(enabled)
}

// Begin starts timing one block. The returned func records the elapsed
// time; it is a no-op while disabled.
func (p *BlockProfiler) Begin() func() {
	if !p.enabled.Load() {
		return nop
	}
	start := time.Now()
	return func() {
		p.record(time.Since(start))
	}
}

func nop() {}

func (p *BlockProfiler) record(elapsed time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.count++
	p.total += elapsed
	if p.min == 0 || elapsed < p.min {
		p.min = elapsed
	}
	if elapsed > p.max {
		p.max = elapsed
	}
	if p.deadline > 0 && elapsed > p.deadline {
		p.misses++
	}
}

// Stats is a snapshot of recorded block timings.
type Stats struct {
	Count   uint64
	Average time.Duration
	Min     time.Duration
	Max     time.Duration
	Misses  uint64
}

// Snapshot returns the current statistics.
func (p *BlockProfiler) Snapshot() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := Stats{
		Count:  p.count,
		Min:    p.min,
		Max:    p.max,
		Misses: p.misses,
	}
	if p.count > 0 {
		s.Average = p.total / time.Duration(p.count)
	}
	return s
}

// Reset clears all recorded statistics.
func (p *BlockProfiler) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.count = 0
	p.total = 0
	p.min = 0
	p.max = 0
	p.misses = 0
}

func (s Stats) String() string {
	return fmt.Sprintf("blocks=%d avg=%s min=%s max=%s misses=%d",
		s.Count, s.Average, s.Min, s.Max, s.Misses)
}
