// Package nn implements the fern feed-forward network engine.
//
// A Network owns an ordered sequence of layers, the shared memory
// arena backing their state, and the training hyperparameters. All
// computation happens in place over the arena: a training step is one
// synchronous forward pass, backward pass, and weight update, with no
// allocation in steady state.
package nn

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/fern-ml/fern/internal/arena"
)

// Default hyperparameters applied by New.
const (
	DefaultLearningRate = 0.125
	DefaultMomentum     = 0.875
)

// Network is a multilayer feed-forward neural network trained online
// by backpropagation with momentum.
//
// The topology is fixed at construction; the learning rate, momentum,
// and the two activation slots are mutable for the network's entire
// lifetime and take effect on the next call. A Network must not be
// used from multiple goroutines without external synchronization.
type Network struct {
	topology []int
	layers   []*Layer
	arena    *arena.Arena

	rate     float64
	momentum float64
	hidden   Activation
	output   Activation

	rng *rand.Rand
}

// New constructs a network from an ordered sequence of layer widths.
// The first width is the input size, the last the output size.
//
// Widths must be non-negative and at least one is required; New
// panics otherwise (host misuse, not a runtime condition). Layers
// claim their arena ranges in strict index order, after which the
// arena never grows again. Weights start randomized as by Reset.
func New(topology ...int) *Network {
	if len(topology) == 0 {
		panic("nn.New: topology must have at least one layer")
	}
	for i, width := range topology {
		if width < 0 {
			panic(fmt.Sprintf("nn.New: layer %d has negative width %d", i, width))
		}
	}

	n := &Network{
		topology: append([]int(nil), topology...),
		arena:    arena.New(),
		rate:     DefaultLearningRate,
		momentum: DefaultMomentum,
		hidden:   Sigmoid{},
		output:   Sigmoid{},
		//nolint:gosec // math/rand for weight initialization (not security-critical)
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	n.layers = make([]*Layer, len(topology))
	for i := range topology {
		n.layers[i] = newLayer(n.arena, n.at(i), n.at(i-1))
	}
	n.Reset()
	return n
}

// at returns the width of layer i, or 0 when i is out of range.
// The out-of-range case is what gives layer 0 a predecessor width of
// zero; it is never an error.
func (n *Network) at(i int) int {
	if i < 0 || i >= len(n.topology) {
		return 0
	}
	return n.topology[i]
}

func (n *Network) last() int {
	return len(n.layers) - 1
}

// Forward propagates layer 0's values through the hidden layers with
// the hidden activation and through the final layer with the output
// activation. Layer 0 is never computed; it holds the input written
// by WriteInput. A single-layer network forwards nothing.
func (n *Network) Forward() {
	last := n.last()
	for i := 1; i < last; i++ {
		n.layers[i].Forward(n.arena, n.layers[i-1], n.hidden)
	}
	if last >= 1 {
		n.layers[last].Forward(n.arena, n.layers[last-1], n.output)
	}
}

// Backprop seeds the output layer's gradients from the target and
// propagates them back to layer 0, one layer at a time.
func (n *Network) Backprop(target []float64) {
	n.layers[n.last()].Checkout(n.arena, target)
	for i := n.last(); i >= 1; i-- {
		n.layers[i].Backprop(n.arena, n.layers[i-1])
	}
}

// Update applies the momentum weight update to every layer, output
// first.
func (n *Network) Update() {
	for i := n.last(); i >= 1; i-- {
		n.layers[i].Update(n.arena, n.layers[i-1], n.rate, n.momentum)
	}
}

// WriteInput copies the input into layer 0's values positionally;
// excess elements on either side are ignored.
func (n *Network) WriteInput(input []float64) {
	n.layers[0].WriteValues(n.arena, input)
}

// ReadOutput returns a fresh copy of the output layer's values. Its
// length always equals the output layer's width.
func (n *Network) ReadOutput() []float64 {
	return n.layers[n.last()].ReadValues(n.arena)
}

// Run performs pure inference: write the input, forward, and return
// the output. Weights and deltas are not touched.
func (n *Network) Run(input []float64) []float64 {
	n.WriteInput(input)
	n.Forward()
	return n.ReadOutput()
}

// Train performs one online training step on a single sample and
// returns the forward output.
//
// The update does not touch the value regions, so the returned output
// is the one computed with the weights in effect at the start of the
// call, not a post-update re-evaluation.
func (n *Network) Train(input, target []float64) []float64 {
	n.WriteInput(input)
	n.Forward()
	n.Backprop(target)
	n.Update()
	return n.ReadOutput()
}

// Reset reinitializes every layer's trainable state: weights uniform
// in [-0.5, 0.5], deltas zero. The topology is untouched and Reset
// may be called at any time.
func (n *Network) Reset() {
	for _, l := range n.layers {
		l.Reset(n.arena, n.rng)
	}
}

// SetSeed reseeds the weight-initialization source so that the next
// Reset produces reproducible weights.
func (n *Network) SetSeed(seed int64) {
	//nolint:gosec // math/rand for weight initialization (not security-critical)
	n.rng = rand.New(rand.NewSource(seed))
}

// LearningRate returns the current learning rate.
func (n *Network) LearningRate() float64 {
	return n.rate
}

// SetLearningRate updates the learning rate, effective from the next
// training step.
func (n *Network) SetLearningRate(rate float64) {
	n.rate = rate
}

// Momentum returns the current learning momentum.
func (n *Network) Momentum() float64 {
	return n.momentum
}

// SetMomentum updates the learning momentum, effective from the next
// training step.
func (n *Network) SetMomentum(momentum float64) {
	n.momentum = momentum
}

// SetHiddenActivation sets the activation applied by every hidden
// layer on the next forward pass.
func (n *Network) SetHiddenActivation(fn Activation) {
	n.hidden = fn
}

// SetOutputActivation sets the activation applied by the output layer
// on the next forward pass.
func (n *Network) SetOutputActivation(fn Activation) {
	n.output = fn
}

// Topology returns a copy of the layer widths.
func (n *Network) Topology() []int {
	return append([]int(nil), n.topology...)
}
