package pedal

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Chain is an ordered, mutable collection of Pedals processed front-to-back.
// It is stored as a contiguous slice behind a copy-on-write atomic snapshot
// (SPEC_FULL.md §9 — a vector, not the original reference's linked list),
// so the pedal-worker tier's traversal always sees one consistent ordering
// even while a structural mutation (Append/Insert/Remove/Swap) is in
// flight. Structural mutations additionally take mu to serialize against
// each other; Process never blocks on mu.
type Chain struct {
	mu       sync.Mutex
	snapshot atomic.Pointer[[]*Pedal]
}

// NewChain returns an empty chain.
func NewChain() *Chain {
	c := &Chain{}
	empty := make([]*Pedal, 0)
	c.snapshot.Store(&empty)
	return c
}

func (c *Chain) load() []*Pedal {
	return *c.snapshot.Load()
}

func (c *Chain) store(next []*Pedal) {
	c.snapshot.Store(&next)
}

// Size returns the number of pedals currently in the chain.
func (c *Chain) Size() int {
	return len(c.load())
}

// Get returns the pedal at index idx.
func (c *Chain) Get(idx int) (*Pedal, error) {
	cur := c.load()
	if idx < 0 || idx >= len(cur) {
		return nil, fmt.Errorf("pedal chain: index %d out of range (size %d)", idx, len(cur))
	}
	return cur[idx], nil
}

// Append creates a pedal of kind and adds it to the end of the chain,
// returning its index.
func (c *Chain) Append(kind Kind, sampleRate float64) (int, error) {
	p, err := New(kind, sampleRate)
	if err != nil {
		return -1, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	cur := c.load()
	next := make([]*Pedal, len(cur)+1)
	copy(next, cur)
	next[len(cur)] = p
	c.store(next)
	return len(cur), nil
}

// Insert creates a pedal of kind and inserts it at index at, shifting
// everything from at onward right by one. at == Size() appends.
func (c *Chain) Insert(at int, kind Kind, sampleRate float64) error {
	p, err := New(kind, sampleRate)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	cur := c.load()
	if at < 0 || at > len(cur) {
		return fmt.Errorf("pedal chain: insert index %d out of range (size %d)", at, len(cur))
	}
	next := make([]*Pedal, 0, len(cur)+1)
	next = append(next, cur[:at]...)
	next = append(next, p)
	next = append(next, cur[at:]...)
	c.store(next)
	return nil
}

// Remove deletes the pedal at index at.
func (c *Chain) Remove(at int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cur := c.load()
	if at < 0 || at >= len(cur) {
		return fmt.Errorf("pedal chain: remove index %d out of range (size %d)", at, len(cur))
	}
	next := make([]*Pedal, 0, len(cur)-1)
	next = append(next, cur[:at]...)
	next = append(next, cur[at+1:]...)
	c.store(next)
	return nil
}

// Swap exchanges the pedals at indices i and j. Swapping the same pair
// twice is its own inverse (S9).
func (c *Chain) Swap(i, j int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cur := c.load()
	if i < 0 || i >= len(cur) || j < 0 || j >= len(cur) {
		return fmt.Errorf("pedal chain: swap indices (%d,%d) out of range (size %d)", i, j, len(cur))
	}
	next := make([]*Pedal, len(cur))
	copy(next, cur)
	next[i], next[j] = next[j], next[i]
	c.store(next)
	return nil
}

// Process runs a stereo pair through every pedal in order. An empty chain is
// the identity transform (SPEC_FULL.md §9 — the pedal worker always routes
// through Process rather than conditionally bypassing itself).
func (c *Chain) Process(l, r float64) (float64, float64) {
	for _, p := range c.load() {
		l, r = p.Process(l, r)
	}
	return l, r
}

// Reset clears every pedal's internal state without altering the chain's
// structure.
func (c *Chain) Reset() {
	for _, p := range c.load() {
		p.Reset()
	}
}
