// Package ring implements the lock-free single-producer/single-consumer
// float64 ring buffer that bridges every concurrency tier of the synth
// engine: voice producer -> mix worker -> pedal worker -> device callback.
package ring

import (
	"fmt"
	"sync/atomic"
)

// Ring is a power-of-two-capacity SPSC queue of float64 samples. Exactly one
// goroutine may call the Write* methods and exactly one (possibly different)
// goroutine may call the Read* methods; concurrent calls from more than one
// writer or more than one reader are not safe.
type Ring struct {
	buf   []float64
	mask  uint64
	write atomic.Uint64
	read  atomic.Uint64
}

// New allocates a ring of the given capacity, which must be a power of two.
func New(capacity int) (*Ring, error) {
	if capacity <= 0 || capacity&(capacity-1) != 0 {
		return nil, fmt.Errorf("ring: capacity %d is not a positive power of two", capacity)
	}
	return &Ring{
		buf:  make([]float64, capacity),
		mask: uint64(capacity - 1),
	}, nil
}

// Capacity returns the usable slot count, one less than the allocated
// capacity since a full ring always keeps one slot empty.
func (r *Ring) Capacity() int { return len(r.buf) - 1 }

// Available reports how many samples are ready to read.
func (r *Ring) Available() uint64 {
	return (r.write.Load() - r.read.Load()) & r.mask
}

// Space reports how many samples can be written before the ring is full.
func (r *Ring) Space() uint64 {
	return (r.read.Load() - r.write.Load() - 1) & r.mask
}

// FillRatio returns Available()/Capacity(), the basis for every tier's
// refill-threshold check.
func (r *Ring) FillRatio() float64 {
	return float64(r.Available()) / float64(r.Capacity())
}

// WriteF64 appends v. It returns false without writing if the ring is full.
func (r *Ring) WriteF64(v float64) bool {
	w := r.write.Load()
	if (r.read.Load()-w-1)&r.mask == 0 {
		return false
	}
	r.buf[w&r.mask] = v
	r.write.Store(w + 1)
	return true
}

// ReadF64 removes and returns the oldest sample. If the ring is empty it
// returns the sentinel 0.0 without advancing the read position.
func (r *Ring) ReadF64() float64 {
	rd := r.read.Load()
	if (r.write.Load()-rd)&r.mask == 0 {
		return 0.0
	}
	v := r.buf[rd&r.mask]
	r.read.Store(rd + 1)
	return v
}

// Reset returns the ring to empty. Only safe to call when no producer or
// consumer is concurrently active (e.g. during voice start or controller
// cleanup).
func (r *Ring) Reset() {
	r.write.Store(0)
	r.read.Store(0)
}
