package pipeline

import (
	"sync/atomic"
)

// CallCounter counts processed frames between two reporter samples.
type CallCounter struct {
	n atomic.Int64
}

// Inc adds one call and returns the new count.
func (c *CallCounter) Inc() int64 {
	return c.n.Add(1)
}

// Load returns the current count without resetting it.
func (c *CallCounter) Load() int64 {
	return c.n.Load()
}

// Swap atomically returns the current count and resets it to zero. An
// increment racing with Swap lands either in the returned value or in the
// next interval, never in both and never in neither.
func (c *CallCounter) Swap() int64 {
	return c.n.Swap(0)
}
