// internal/capture/ring.go
package capture

import (
	"errors"
	"sync/atomic"
)

// RingSize is the default ring capacity in frames (power of two).
const RingSize = 4096

// ErrRingSize is returned for a capacity that is not a power of two >= 2.
var ErrRingSize = errors.New("ring: size must be a power of two >= 2")

// Ring is a single-producer / single-consumer frame queue.
//
// One slot is always kept empty: full iff next(w) == r, empty iff w == r.
// w is written only by the producer, r only by the consumer.
// The slot is written before w is published (release); the consumer loads w
// (acquire) before copying the slot, then publishes r. The producer never
// touches slot r until r has moved past it, so a popped frame is never torn.
type Ring struct {
	slots []Frame
	mask  uint32

	w atomic.Uint32
	r atomic.Uint32

	dropped atomic.Uint64
}

// NewRing allocates a ring holding size-1 frames.
// All memory is allocated here; Push and Pop never allocate.
func NewRing(size int) (*Ring, error) {
	if size < 2 || size&(size-1) != 0 || size > 1<<30 {
		return nil, ErrRingSize
	}
	return &Ring{
		slots: make([]Frame, size),
		mask:  uint32(size - 1),
	}, nil
}

// Push enqueues f. Producer side only.
// On a full ring the frame is dropped, counted, and false is returned.
// Buffer contents are left untouched in that case.
func (rb *Ring) Push(f Frame) bool {
	w := rb.w.Load()
	next := (w + 1) & rb.mask

	if next == rb.r.Load() {
		rb.dropped.Add(1)
		return false
	}

	rb.slots[w] = f

	// Publish write index last
	rb.w.Store(next)
	return true
}

// Pop dequeues the oldest frame. Consumer side only.
// Returns false on an empty ring without mutating anything.
func (rb *Ring) Pop() (Frame, bool) {
	r := rb.r.Load()
	if r == rb.w.Load() {
		return Frame{}, false
	}

	f := rb.slots[r]
	rb.r.Store((r + 1) & rb.mask)
	return f, true
}

// Len is the number of frames waiting. Safe from any goroutine; may be stale.
func (rb *Ring) Len() int {
	return int((rb.w.Load() - rb.r.Load()) & rb.mask)
}

// Cap is the number of usable slots (size-1).
func (rb *Ring) Cap() int {
	return int(rb.mask)
}

// Dropped is the number of frames rejected because the ring was full.
// Never reset.
func (rb *Ring) Dropped() uint64 {
	return rb.dropped.Load()
}
