package nn

import "math"

// expCutoff is the magnitude beyond which the logistic terms of
// Sigmoid and Softmax are saturated instead of evaluated.
const expCutoff = 40.0

// Activation maps a unit's pre-activation sum to its output value and
// the derivative of that value with respect to the sum.
//
// Implementations must be pure and stateless: the same input always
// yields the same pair, and Apply never touches shared state. The
// derivative is consumed by the backward pass, so an activation with
// a zero derivative (such as Step) blocks gradient flow through its
// units.
type Activation interface {
	Apply(x float64) (y, dy float64)
}

// Sigmoid is the logistic activation: y = 1/(1+e^-x), dy = y(1-y).
//
// Inputs at or below -40 underflow to an exact (0, 0).
type Sigmoid struct{}

// Apply computes the sigmoid value and derivative.
func (Sigmoid) Apply(x float64) (float64, float64) {
	if x <= -expCutoff {
		return 0, 0
	}
	y := 1 / (1 + math.Exp(-x))
	return y, y * (1 - y)
}

// Step is the Heaviside step activation: 0 below zero, 1 otherwise.
//
// Step is non-differentiable; its derivative is always 0, so no
// gradient flows through Step units during training.
type Step struct{}

// Apply computes the step value; the derivative is always 0.
func (Step) Apply(x float64) (float64, float64) {
	if x < 0 {
		return 0, 0
	}
	return 1, 0
}

// ReLU is the rectified linear activation: max(0, x).
type ReLU struct{}

// Apply computes the ReLU value and derivative.
func (ReLU) Apply(x float64) (float64, float64) {
	if x < 0 {
		return 0, 0
	}
	return x, 1
}

// LeakyReLU is a ReLU with a configurable negative-side slope.
type LeakyReLU struct {
	Factor float64
}

// NewLeakyReLU returns a LeakyReLU with the given negative-side slope.
func NewLeakyReLU(factor float64) LeakyReLU {
	return LeakyReLU{Factor: factor}
}

// Apply computes the leaky-ReLU value and derivative.
func (l LeakyReLU) Apply(x float64) (float64, float64) {
	if x < 0 {
		return x * l.Factor, l.Factor
	}
	return x, 1
}

// Softmax is a per-unit softplus with a logistic derivative:
// y = ln(1+e^x), dy = 1/(1+e^-x).
//
// Despite the name this is NOT a normalized multi-unit softmax; there
// is no cross-unit term. Inputs above 40 pass through as (x, 1) and
// inputs below -40 underflow to (0, 0).
type Softmax struct{}

// Apply computes the softplus value and logistic derivative.
func (Softmax) Apply(x float64) (float64, float64) {
	switch {
	case x > expCutoff:
		return x, 1
	case x < -expCutoff:
		return 0, 0
	}
	return math.Log1p(math.Exp(x)), 1 / (1 + math.Exp(-x))
}

// Linear is the identity activation: y = x, dy = 1.
type Linear struct{}

// Apply returns the input unchanged with a unit derivative.
func (Linear) Apply(x float64) (float64, float64) {
	return x, 1
}

// Tanh is the hyperbolic tangent activation: y = tanh(x), dy = 1-y².
type Tanh struct{}

// Apply computes the tanh value and derivative.
func (Tanh) Apply(x float64) (float64, float64) {
	y := math.Tanh(x)
	return y, 1 - y*y
}
