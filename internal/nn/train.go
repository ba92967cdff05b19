package nn

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/born-ml/densenet/internal/matrix"
)

// Samples is the dataset view consumed by training.
//
// Each must visit every (input, target) pair in a stable order and stop at
// the first error returned by fn, passing it through. Inputs are
// InputSize×1 columns, targets OutputSize×1 columns.
type Samples interface {
	Len() int
	Each(fn func(input, target *matrix.Matrix) error) error
}

// GradientDescentStep performs one full-batch gradient descent step.
//
// For every sample the network is evaluated, the loss derivative of the
// output against the target is taken, and the layers are walked from output
// to input. At each layer the running row-vector derivative is multiplied by
// the diagonal of the layer's activation derivative, giving one local
// derivative per output unit; the weight gradient is that local derivative
// times the layer input, summed over all samples; the running derivative is
// then carried one layer back through the layer's Jacobian. When the softmax
// stage is active the running derivative first passes through the softmax
// Jacobian.
//
// Gradients are averaged over the sample count and applied with
// learningRate. Any failure aborts the whole step before a single weight
// changes.
func (n *Network) GradientDescentStep(samples Samples, learningRate float64) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if err := n.validate(); err != nil {
		return fmt.Errorf("nn: gradient descent step: %w", err)
	}
	if !(learningRate > 0) {
		return fmt.Errorf("nn: gradient descent step: learning rate %g must be positive: %w", learningRate, matrix.ErrInvalidArgument)
	}
	if samples == nil || samples.Len() == 0 {
		return fmt.Errorf("nn: gradient descent step: empty dataset: %w", matrix.ErrInvalidArgument)
	}

	gradients := make([]*matrix.Matrix, len(n.layers))
	count := 0
	err := samples.Each(func(input, target *matrix.Matrix) error {
		count++
		return n.accumulate(input, target, gradients)
	})
	if err != nil {
		return fmt.Errorf("nn: gradient descent step: after %d samples: %w", count, err)
	}

	for i, g := range gradients {
		if g == nil {
			return fmt.Errorf("nn: gradient descent step: no gradient for layer %d: %w", i, matrix.ErrInvalidArgument)
		}
		if err := g.ScalarMultiply(1 / float64(count)); err != nil {
			return err
		}
		if err := n.layers[i].checkGradient(g); err != nil {
			return err
		}
	}

	// Weights are only touched here, after every gradient is known good.
	for i, layer := range n.layers {
		if err := layer.UpdateWeights(gradients[i], learningRate); err != nil {
			return fmt.Errorf("nn: gradient descent step: update layer %d: %w", i, err)
		}
	}
	return nil
}

// accumulate adds the weight gradients of one sample into gradients.
func (n *Network) accumulate(input, target *matrix.Matrix, gradients []*matrix.Matrix) error {
	if !input.IsValid() || input.Rows() != n.inputSize || input.Cols() != 1 {
		return fmt.Errorf("input is %dx%d, want %dx1: %w", input.Rows(), input.Cols(), n.inputSize, matrix.ErrInvalidArgument)
	}
	if !target.IsValid() || target.Rows() != n.outputSize || target.Cols() != 1 {
		return fmt.Errorf("target is %dx%d, want %dx1: %w", target.Rows(), target.Cols(), n.outputSize, matrix.ErrInvalidArgument)
	}

	outputs, final, err := n.forward(input)
	if err != nil {
		return err
	}

	lossDeriv, err := n.loss.derivative(final, target)
	if err != nil {
		return err
	}
	running, err := lossDeriv.Transpose() // 1×outputSize
	if err != nil {
		return err
	}
	if n.activation.IsSoftmax() {
		sj, err := SoftmaxJacobian(final)
		if err != nil {
			return err
		}
		if running, err = matrix.Multiply(running, sj); err != nil {
			return err
		}
	}

	for i := len(n.layers) - 1; i >= 0; i-- {
		layer := n.layers[i]
		layerInput := input
		if i > 0 {
			layerInput = outputs[i-1]
		}

		deriv, err := layer.ActivationDerivativeAt(layerInput)
		if err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}
		diag, err := matrix.Diagonal(deriv)
		if err != nil {
			return err
		}
		local, err := matrix.Multiply(running, diag) // 1×outputSize
		if err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}

		// gradient[j,k] = local[j] · input[k]
		grad, err := matrix.Outer(local, layerInput)
		if err != nil {
			return err
		}
		if gradients[i] == nil {
			gradients[i] = grad
		} else if err := gradients[i].Add(grad); err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}

		if i == 0 {
			break // the derivative with respect to the network input is not needed
		}
		jac, err := layer.Jacobian(layerInput)
		if err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}
		if running, err = matrix.Multiply(running, jac); err != nil { // 1×inputSize
			return fmt.Errorf("layer %d: %w", i, err)
		}
	}
	return nil
}

// MeanLoss returns the configured error summed over each sample's outputs and
// averaged over the samples.
func (n *Network) MeanLoss(samples Samples) (float64, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	if err := n.validate(); err != nil {
		return 0, err
	}
	if samples == nil || samples.Len() == 0 {
		return 0, fmt.Errorf("nn: mean loss: empty dataset: %w", matrix.ErrInvalidArgument)
	}

	var total float64
	count := 0
	err := samples.Each(func(input, target *matrix.Matrix) error {
		_, final, err := n.forward(input)
		if err != nil {
			return err
		}
		l, err := n.loss.total(final, target)
		if err != nil {
			return err
		}
		total += l
		count++
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("nn: mean loss: %w", err)
	}
	return total / float64(count), nil
}

// TrainConfig holds configuration for Train.
type TrainConfig struct {
	LearningRate float64      // Step size (default: 0.01)
	Epochs       int          // Number of full-batch steps (default: 1)
	TargetLoss   float64      // Stop once the mean loss is at or below this (default: 0, disabled)
	LogEvery     int          // Log the loss every N epochs (default: 0, only the final epoch)
	Logger       *slog.Logger // Destination for progress logs (default: discard)
}

// TrainResult summarizes a Train run.
type TrainResult struct {
	Epochs  int       // Steps actually taken
	Loss    float64   // Mean loss after the last step
	History []float64 // Mean loss after every step
}

// Train runs cfg.Epochs gradient descent steps over samples.
//
// The context is checked between epochs; on cancellation the weights keep
// the last completed step and ctx.Err() is returned.
func (n *Network) Train(ctx context.Context, samples Samples, cfg TrainConfig) (TrainResult, error) {
	if cfg.LearningRate == 0 {
		cfg.LearningRate = 0.01
	}
	if cfg.Epochs <= 0 {
		cfg.Epochs = 1
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var res TrainResult
	res.History = make([]float64, 0, cfg.Epochs)
	for epoch := 1; epoch <= cfg.Epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := n.GradientDescentStep(samples, cfg.LearningRate); err != nil {
			return res, fmt.Errorf("epoch %d: %w", epoch, err)
		}
		loss, err := n.MeanLoss(samples)
		if err != nil {
			return res, fmt.Errorf("epoch %d: %w", epoch, err)
		}
		res.Epochs = epoch
		res.Loss = loss
		res.History = append(res.History, loss)

		done := cfg.TargetLoss > 0 && loss <= cfg.TargetLoss
		if (cfg.LogEvery > 0 && epoch%cfg.LogEvery == 0) || done || epoch == cfg.Epochs {
			logger.Info("training progress", "epoch", epoch, "loss", loss)
		}
		if math.IsNaN(loss) {
			logger.Warn("loss is NaN", "epoch", epoch)
		}
		if done {
			break
		}
	}
	return res, nil
}
