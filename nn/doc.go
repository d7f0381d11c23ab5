// Copyright 2025 Fern ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn is an embeddable multilayer feed-forward neural network
// engine with forward inference and online training by
// backpropagation with momentum.
//
// # Overview
//
// fern is a small numeric component meant to be linked into a host
// application. It is not a framework: there are no datasets, batches,
// model files, or CLI. The entire engine is the in-memory API of the
// Network type. All layer state (values, derivatives, gradients,
// weights, momentum deltas) lives in one contiguous buffer claimed at
// construction time, so steady-state training performs no allocation.
//
// # Basic Usage
//
//	import "github.com/fern-ml/fern/nn"
//
//	func main() {
//	    // 2 inputs, one hidden layer of 2 units, 1 output.
//	    net := nn.New(2, 2, 1)
//	    net.SetSeed(1)
//	    net.Reset()
//
//	    out := net.Run([]float64{0, 1}) // inference, len(out) == 1
//	    _ = out
//	}
//
// # Training
//
// Train performs one online training step per call: forward pass,
// backward pass, momentum weight update. It returns the output
// computed with the weights in effect at the start of the call.
//
//	for i := 0; i < 10000; i++ {
//	    net.Train([]float64{0, 0}, []float64{0})
//	    net.Train([]float64{0, 1}, []float64{1})
//	    net.Train([]float64{1, 0}, []float64{1})
//	    net.Train([]float64{1, 1}, []float64{0})
//	}
//
// The learning rate (default 0.125), momentum (default 0.875), and
// the hidden and output activation functions (default sigmoid) are
// mutable at any time and take effect on the next call.
//
// # Activation Functions
//
// Activations are stateless values implementing a single method
// mapping a pre-activation sum to a (value, derivative) pair:
// Sigmoid, Step, ReLU, LeakyReLU, Softmax (a per-unit softplus, not a
// normalized softmax), Linear, and Tanh.
//
//	net.SetHiddenActivation(nn.NewLeakyReLU(0.01))
//	net.SetOutputActivation(nn.Linear{})
//
// # Numeric Behavior
//
// The engine clamps instead of failing: weighted sums saturate at
// ±1000 (NaN counts as +1000), and length mismatches between provided
// data and layer widths pair positionally over the shorter length.
// None of these conditions return errors or panic.
//
// # Concurrency
//
// A Network is single-threaded. Run and Train are synchronous
// sequences of in-place mutations over the shared buffer; hosts must
// not share one instance across goroutines without external
// synchronization.
package nn
