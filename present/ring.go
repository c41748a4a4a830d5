package present

import "sync/atomic"

const ringSlots = 64

// ring is a fixed-size single-producer, single-consumer queue. The producer
// never blocks: a full ring refuses the newest item.
type ring[T any] struct {
	_     [0]func() // prevent accidental copying.
	head  atomic.Uint32
	tail  atomic.Uint32
	slots [ringSlots]T
}

// tryPush enqueues v, returning false if the ring is full.
func (r *ring[T]) tryPush(v T) bool {
	head := r.head.Load()
	tail := r.tail.Load()
	if head-tail >= ringSlots {
		return false
	}

	// Publish the slot before the index so the consumer never reads a
	// half-written item.
	r.slots[head%ringSlots] = v
	r.head.Store(head + 1)
	return true
}

// tryPop dequeues one item, returning false if the ring is empty.
func (r *ring[T]) tryPop() (T, bool) {
	tail := r.tail.Load()
	head := r.head.Load()
	if tail == head {
		var zero T
		return zero, false
	}

	v := r.slots[tail%ringSlots]
	r.tail.Store(tail + 1)
	return v, true
}

func (r *ring[T]) len() int {
	return int(r.head.Load() - r.tail.Load())
}
