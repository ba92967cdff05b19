// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides dense feed-forward networks.
//
// # Overview
//
// This package contains:
//   - Network: a linear stack of dense layers without bias
//   - Activations: identity, sigmoid, tanh, ReLU, leaky ReLU, softmax
//   - Losses: squared error, absolute error, cross entropy
//   - Initialization: Xavier, Zeros, Uniform
//   - Training: full-batch gradient descent
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/densenet/dataset"
//	    "github.com/born-ml/densenet/nn"
//	)
//
//	func main() {
//	    net, _ := nn.NewNetwork(nn.NetworkConfig{
//	        InputSize:  2,
//	        OutputSize: 1,
//	        Hidden:     []nn.LayerSpec{{OutputSize: 4}},
//	        Activation: nn.SigmoidActivation,
//	    })
//
//	    ds := dataset.New()
//	    _ = ds.Append([]float64{0, 1}, []float64{1})
//
//	    res, _ := net.Train(ctx, ds, nn.TrainConfig{LearningRate: 0.5, Epochs: 1000})
//	    out, _ := net.FeedForward([]float64{0, 1})
//	}
//
// # Activations
//
// Every layer of a network shares one activation. A missing derivative is
// approximated by central difference, so any total function works:
//
//	softsign := nn.Activation{Name: "softsign", Func: func(x float64) float64 {
//	    return x / (1 + math.Abs(x))
//	}}
//
// SoftmaxActivation is special: the output layer runs the identity and the
// network output is normalized with Softmax.
//
// # Training
//
// Network.GradientDescentStep averages the gradients of every sample and
// updates all layers at once; on any error no weight changes.
// Network.Train repeats it for a number of epochs with optional early stop.
package nn
