// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/densenet/internal/matrix"
	"github.com/born-ml/densenet/internal/nn"
)

// Network is a fixed linear stack of dense layers.
type Network = nn.Network

// NetworkConfig holds the construction parameters of a Network.
type NetworkConfig = nn.NetworkConfig

// LayerSpec describes one hidden layer.
type LayerSpec = nn.LayerSpec

// NewNetwork builds a network from cfg.
//
// Example:
//
//	net, err := nn.NewNetwork(nn.NetworkConfig{
//	    InputSize:  2,
//	    OutputSize: 1,
//	    Hidden:     []nn.LayerSpec{{OutputSize: 4}},
//	    Activation: nn.SigmoidActivation,
//	})
func NewNetwork(cfg NetworkConfig) (*Network, error) {
	return nn.NewNetwork(cfg)
}

// LayerOf returns a LayerSpec for an inputSize→outputSize hidden layer.
func LayerOf(inputSize, outputSize int) LayerSpec {
	return nn.LayerOf(inputSize, outputSize)
}

// Layers

// Layer is a dense layer without bias: y = f(W·x).
type Layer = nn.Layer

// NewLayer creates a layer with zero weights. A nil derivative is
// approximated numerically.
func NewLayer(inputSize, outputSize int, activation, derivative ActivationFunc) (*Layer, error) {
	return nn.NewLayer(inputSize, outputSize, activation, derivative)
}

// Activations

// ActivationFunc is an element-wise nonlinearity.
type ActivationFunc = nn.ActivationFunc

// Activation pairs an element-wise function with its optional derivative.
type Activation = nn.Activation

// Predefined activations.
var (
	IdentityActivation  = nn.IdentityActivation
	SigmoidActivation   = nn.SigmoidActivation
	TanhActivation      = nn.TanhActivation
	ReLUActivation      = nn.ReLUActivation
	LeakyReLUActivation = nn.LeakyReLUActivation
	SoftmaxActivation   = nn.SoftmaxActivation
)

// ActivationByName looks up a predefined activation.
func ActivationByName(name string) (Activation, bool) {
	return nn.ActivationByName(name)
}

// Softmax normalizes m in place.
func Softmax(m *matrix.Matrix) error {
	return nn.Softmax(m)
}

// Losses

// Loss pairs an element-wise error function with its optional derivative.
type Loss = nn.Loss

// Predefined losses.
var (
	SquaredError  = nn.SquaredError
	AbsoluteError = nn.AbsoluteError
	CrossEntropy  = nn.CrossEntropy
)

// LossByName looks up a predefined loss.
func LossByName(name string) (Loss, bool) {
	return nn.LossByName(name)
}

// Initialization

// Initializer fills a freshly created weight matrix.
type Initializer = nn.Initializer

// Predefined initializers.
var (
	Xavier Initializer = nn.Xavier
	Zeros  Initializer = nn.Zeros
)

// Uniform returns an Initializer drawing from U(min, max).
func Uniform(min, max float64) Initializer {
	return nn.Uniform(min, max)
}

// Training

// Samples is the dataset view consumed by training.
type Samples = nn.Samples

// TrainConfig holds configuration for Network.Train.
type TrainConfig = nn.TrainConfig

// TrainResult summarizes a training run.
type TrainResult = nn.TrainResult
