// Package nn implements a small fully-connected feed-forward network.
//
// This package provides:
//   - Activation: element-wise nonlinearities with optional analytic derivatives
//   - Loss: element-wise error functions (squared, absolute, cross entropy)
//   - Layer: a dense layer without bias, y = f(W·x)
//   - Network: a linear stack of layers with an optional softmax output stage
//   - Training: full-batch gradient descent over a Samples view
//
// Missing derivatives are approximated by central difference with step
// DerivativeStep, so any total function can serve as an activation.
package nn
