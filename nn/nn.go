// Copyright 2025 Fern ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/fern-ml/fern/internal/nn"
)

// Default hyperparameters applied by New.
const (
	DefaultLearningRate = nn.DefaultLearningRate
	DefaultMomentum     = nn.DefaultMomentum
)

// Network is a multilayer feed-forward neural network trained online
// by backpropagation with momentum.
type Network = nn.Network

// New constructs a network from an ordered sequence of layer widths;
// the first width is the input size, the last the output size.
//
// Example:
//
//	net := nn.New(784, 128, 10)
//	out := net.Run(pixels)
func New(topology ...int) *Network {
	return nn.New(topology...)
}

// Activations

// Activation maps a unit's pre-activation sum to its output value and
// the derivative of that value with respect to the sum.
type Activation = nn.Activation

// Sigmoid is the logistic activation: y = 1/(1+e^-x), dy = y(1-y).
type Sigmoid = nn.Sigmoid

// NewSigmoid creates a sigmoid activation.
func NewSigmoid() Sigmoid {
	return Sigmoid{}
}

// Step is the Heaviside step activation; its derivative is always 0,
// so Step units block gradient flow.
type Step = nn.Step

// NewStep creates a step activation.
func NewStep() Step {
	return Step{}
}

// ReLU is the rectified linear activation: max(0, x).
type ReLU = nn.ReLU

// NewReLU creates a ReLU activation.
func NewReLU() ReLU {
	return ReLU{}
}

// LeakyReLU is a ReLU with a configurable negative-side slope.
type LeakyReLU = nn.LeakyReLU

// NewLeakyReLU creates a leaky-ReLU activation with the given
// negative-side slope.
//
// Example:
//
//	net.SetHiddenActivation(nn.NewLeakyReLU(0.01))
func NewLeakyReLU(factor float64) LeakyReLU {
	return nn.NewLeakyReLU(factor)
}

// Softmax is a per-unit softplus with a logistic derivative. It is
// NOT a normalized multi-unit softmax.
type Softmax = nn.Softmax

// NewSoftmax creates a per-unit softplus activation.
func NewSoftmax() Softmax {
	return Softmax{}
}

// Linear is the identity activation: y = x, dy = 1.
type Linear = nn.Linear

// NewLinear creates a linear activation.
func NewLinear() Linear {
	return Linear{}
}

// Tanh is the hyperbolic tangent activation: y = tanh(x), dy = 1-y².
type Tanh = nn.Tanh

// NewTanh creates a tanh activation.
func NewTanh() Tanh {
	return Tanh{}
}

// Utility functions

// MSE returns the mean squared error between predictions and targets,
// paired positionally over the shorter of the two.
//
// Example:
//
//	out := net.Train(input, target)
//	loss := nn.MSE(out, target)
func MSE(predictions, targets []float64) float64 {
	return nn.MSE(predictions, targets)
}
