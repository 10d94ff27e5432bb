package program

import "sync/atomic"

// Clock hands out the logical sequence numbers instructions are stamped
// with. Sequence numbers start at 1 and follow program order; no wall-clock
// time is recorded, so rebuilding a job reproduces them exactly.
//
// Thread-safety: Clock is safe for concurrent use (atomic operations).
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a new clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// Next returns the next sequence number and increments the clock.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

