// Package arena provides the shared flat buffer that backs all layer
// state of a network.
//
// Every layer's values, derivatives, gradients, weights, and momentum
// deltas live as disjoint offset ranges inside one contiguous float64
// buffer. Layers store integer offsets, never slices: growth is
// append-only, so a reallocation copies the existing slots in order
// and previously issued offsets keep indexing the same logical slots.
package arena

// Arena is a growable contiguous float64 buffer with an allocation
// cursor. Ranges are claimed once, in increasing order, and are never
// relinquished or moved.
//
// An Arena is exclusively owned by one network and is not safe for
// concurrent use.
type Arena struct {
	data []float64
}

// New returns an empty arena.
func New() *Arena {
	return &Arena{}
}

// Alloc claims n zeroed slots and returns the offset of the first.
//
// The underlying buffer may be reallocated to a larger array, but the
// append preserves all prior slots at their offsets.
func (a *Arena) Alloc(n int) int {
	off := len(a.data)
	a.data = append(a.data, make([]float64, n)...)
	return off
}

// Region returns the live slice for a previously claimed range.
//
// The slice is full (capped at n), so writes through it cannot spill
// into neighboring ranges. It is invalidated by the next Alloc;
// callers fetch a fresh region per operation rather than caching it.
func (a *Arena) Region(off, n int) []float64 {
	return a.data[off : off+n : off+n]
}

// Len returns the number of allocated slots.
func (a *Arena) Len() int {
	return len(a.data)
}
