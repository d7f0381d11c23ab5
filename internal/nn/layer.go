package nn

import (
	"math"
	"math/rand"

	"github.com/fern-ml/fern/internal/arena"
)

// sumClamp is the hard saturation bound on a unit's weighted sum.
// It keeps a single runaway sum from propagating numeric blow-up
// through the rest of the network; a NaN sum is treated as +sumClamp.
const sumClamp = 1000.0

// Layer owns five disjoint offset ranges inside its network's arena:
// values, derivatives, gradients, weights, and momentum deltas.
//
// A layer of size S with predecessor width P holds S slots for each of
// values, derivatives, and gradients, and S*(P+1) slots for each of
// weights and deltas: one weight per (unit, predecessor) pair plus a
// bias weight per unit, stored at column P of the unit's row. The
// bias input is implicitly 1.
//
// Layers hold offsets, not slices, and read and write through the
// arena passed into every operation; a layer has no meaning apart
// from its owning network.
type Layer struct {
	size int // unit count
	prev int // predecessor width, 0 for the input layer

	values      int
	derivatives int
	gradients   int
	weights     int
	deltas      int
}

// newLayer claims the layer's five ranges from the arena, in order.
func newLayer(a *arena.Arena, size, prev int) *Layer {
	l := &Layer{size: size, prev: prev}
	l.values = a.Alloc(size)
	l.derivatives = a.Alloc(size)
	l.gradients = a.Alloc(size)
	l.weights = a.Alloc(size * (prev + 1))
	l.deltas = a.Alloc(size * (prev + 1))
	return l
}

// Size returns the layer's unit count.
func (l *Layer) Size() int {
	return l.size
}

// Forward computes each unit's weighted sum over the predecessor's
// values plus the unit's bias weight, clamps it to ±1000 (NaN counts
// as +1000), and stores the activation's (value, derivative) pair.
func (l *Layer) Forward(a *arena.Arena, prev *Layer, fn Activation) {
	in := a.Region(prev.values, prev.size)
	w := a.Region(l.weights, l.size*(l.prev+1))
	values := a.Region(l.values, l.size)
	derivatives := a.Region(l.derivatives, l.size)

	stride := l.prev + 1
	for t := 0; t < l.size; t++ {
		row := w[t*stride : (t+1)*stride]
		sum := row[l.prev] // bias weight, input fixed at 1
		for p, v := range in {
			sum += v * row[p]
		}
		switch {
		case math.IsNaN(sum):
			sum = sumClamp
		case sum > sumClamp:
			sum = sumClamp
		case sum < -sumClamp:
			sum = -sumClamp
		}
		values[t], derivatives[t] = fn.Apply(sum)
	}
}

// Checkout seeds the layer's gradients from a target vector as
// (target - value), pairing positionally over the shorter of the
// target and the layer; slots beyond that length are left untouched.
// It applies to the output layer only.
func (l *Layer) Checkout(a *arena.Arena, target []float64) {
	values := a.Region(l.values, l.size)
	gradients := a.Region(l.gradients, l.size)

	for t := 0; t < min(len(target), l.size); t++ {
		gradients[t] = target[t] - values[t]
	}
}

// Backprop propagates this layer's gradients to the predecessor.
//
// The predecessor's gradients are zeroed, every unit's contribution
// weight[t,p]*gradient[t] is accumulated, and only then is each
// predecessor gradient scaled by its stored activation derivative.
// The scale must come after ALL accumulation: scaling per unit would
// corrupt the partial sums.
func (l *Layer) Backprop(a *arena.Arena, prev *Layer) {
	gradients := a.Region(l.gradients, l.size)
	w := a.Region(l.weights, l.size*(l.prev+1))
	prevGradients := a.Region(prev.gradients, prev.size)
	prevDerivatives := a.Region(prev.derivatives, prev.size)

	for p := range prevGradients {
		prevGradients[p] = 0
	}
	stride := l.prev + 1
	for t := 0; t < l.size; t++ {
		g := gradients[t]
		row := w[t*stride : t*stride+l.prev]
		for p, wv := range row {
			prevGradients[p] += wv * g
		}
	}
	for p := range prevGradients {
		prevGradients[p] *= prevDerivatives[p]
	}
}

// Update applies one momentum step to every weight:
//
//	delta = delta*momentum + rate*gradient[t]*input[p]
//	weight += delta
//
// The bias column uses an input of 1. Gradients are defined as
// target-minus-actual, so adding the delta moves weights downhill on
// the error.
func (l *Layer) Update(a *arena.Arena, prev *Layer, rate, momentum float64) {
	gradients := a.Region(l.gradients, l.size)
	in := a.Region(prev.values, prev.size)
	w := a.Region(l.weights, l.size*(l.prev+1))
	d := a.Region(l.deltas, l.size*(l.prev+1))

	stride := l.prev + 1
	for t := 0; t < l.size; t++ {
		g := gradients[t]
		base := t * stride
		for p := 0; p < l.prev; p++ {
			i := base + p
			d[i] = d[i]*momentum + rate*g*in[p]
			w[i] += d[i]
		}
		i := base + l.prev
		d[i] = d[i]*momentum + rate*g
		w[i] += d[i]
	}
}

// WriteValues copies data into the value region positionally; the
// copy stops at the shorter of the two lengths.
func (l *Layer) WriteValues(a *arena.Arena, data []float64) {
	copy(a.Region(l.values, l.size), data)
}

// ReadValues returns a fresh copy of the value region.
func (l *Layer) ReadValues(a *arena.Arena) []float64 {
	out := make([]float64, l.size)
	copy(out, a.Region(l.values, l.size))
	return out
}

// Reset draws every weight from the uniform distribution on
// [-0.5, 0.5] and zeroes every delta. Values, derivatives, and
// gradients are transient and left as-is.
func (l *Layer) Reset(a *arena.Arena, rng *rand.Rand) {
	w := a.Region(l.weights, l.size*(l.prev+1))
	for i := range w {
		w[i] = rng.Float64() - 0.5
	}
	d := a.Region(l.deltas, l.size*(l.prev+1))
	for i := range d {
		d[i] = 0
	}
}
