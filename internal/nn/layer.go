package nn

import (
	"fmt"

	"github.com/born-ml/densenet/internal/matrix"
)

// Layer is a dense layer without bias: y = f(W·x).
//
// W has shape (outputSize, inputSize), x is an inputSize×1 column and y an
// outputSize×1 column. The layer exclusively owns W; Weights returns a copy
// and SetWeights stores one.
//
// Example:
//
//	layer, _ := nn.NewLayer(3, 2, nn.Sigmoid, nn.SigmoidDerivative)
//	in, _ := matrix.ColumnVector([]float64{1, 2, 3})
//	out, _ := matrix.New(2, 1)
//	err := layer.FeedForward(in, out)
type Layer struct {
	inputSize  int
	outputSize int
	activation ActivationFunc
	derivative ActivationFunc // nil: numerical
	weights    *matrix.Matrix // [outputSize, inputSize]
}

// NewLayer creates a layer with zero weights.
//
// derivative may be nil, in which case the activation derivative is
// approximated numerically whenever it is needed.
func NewLayer(inputSize, outputSize int, activation, derivative ActivationFunc) (*Layer, error) {
	if inputSize <= 0 || outputSize <= 0 {
		return nil, fmt.Errorf("nn: layer %d->%d: sizes must be positive: %w", inputSize, outputSize, matrix.ErrInvalidArgument)
	}
	if activation == nil {
		return nil, fmt.Errorf("nn: layer %d->%d: activation is required: %w", inputSize, outputSize, matrix.ErrInvalidArgument)
	}
	weights, err := matrix.New(outputSize, inputSize)
	if err != nil {
		return nil, fmt.Errorf("nn: layer %d->%d: %w", inputSize, outputSize, err)
	}
	return &Layer{
		inputSize:  inputSize,
		outputSize: outputSize,
		activation: activation,
		derivative: derivative,
		weights:    weights,
	}, nil
}

func (l *Layer) clone() *Layer {
	c := *l
	c.weights = l.Weights()
	return &c
}

// InputSize returns the number of inputs.
func (l *Layer) InputSize() int {
	return l.inputSize
}

// OutputSize returns the number of outputs.
func (l *Layer) OutputSize() int {
	return l.outputSize
}

// Activation returns the activation function.
func (l *Layer) Activation() ActivationFunc {
	return l.activation
}

// Derivative returns the analytic activation derivative, or nil.
func (l *Layer) Derivative() ActivationFunc {
	return l.derivative
}

// Weights returns a copy of the weight matrix.
func (l *Layer) Weights() *matrix.Matrix {
	w, err := l.weights.Copy()
	if err != nil {
		return nil
	}
	return w
}

// SetWeights replaces the weight matrix with a copy of w.
// w must have shape (OutputSize, InputSize).
func (l *Layer) SetWeights(w *matrix.Matrix) error {
	if !w.IsValid() {
		return fmt.Errorf("nn: set weights: %w", matrix.ErrStructuralInvalid)
	}
	if w.Rows() != l.outputSize || w.Cols() != l.inputSize {
		return fmt.Errorf("nn: set weights: got %dx%d, want %dx%d: %w",
			w.Rows(), w.Cols(), l.outputSize, l.inputSize, matrix.ErrInvalidArgument)
	}
	return matrix.Replace(&l.weights, w)
}

// Validate checks the layer invariant: positive sizes, an activation, and
// weights of shape (OutputSize, InputSize).
func (l *Layer) Validate() error {
	switch {
	case l == nil:
		return fmt.Errorf("nn: nil layer: %w", matrix.ErrStructuralInvalid)
	case l.inputSize <= 0 || l.outputSize <= 0:
		return fmt.Errorf("nn: layer %d->%d: non-positive size: %w", l.inputSize, l.outputSize, matrix.ErrStructuralInvalid)
	case l.activation == nil:
		return fmt.Errorf("nn: layer %d->%d: missing activation: %w", l.inputSize, l.outputSize, matrix.ErrStructuralInvalid)
	case !l.weights.IsValid():
		return fmt.Errorf("nn: layer %d->%d: invalid weights: %w", l.inputSize, l.outputSize, matrix.ErrStructuralInvalid)
	case l.weights.Rows() != l.outputSize || l.weights.Cols() != l.inputSize:
		return fmt.Errorf("nn: layer %d->%d: weights are %dx%d: %w",
			l.inputSize, l.outputSize, l.weights.Rows(), l.weights.Cols(), matrix.ErrStructuralInvalid)
	}
	return nil
}

// IsValid reports whether Validate succeeds.
func (l *Layer) IsValid() bool {
	return l.Validate() == nil
}

// PreActivation computes z = W·input.
func (l *Layer) PreActivation(input *matrix.Matrix) (*matrix.Matrix, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	if !input.IsValid() || input.Rows() != l.inputSize || input.Cols() != 1 {
		return nil, fmt.Errorf("nn: layer %d->%d: input is %dx%d, want %dx1: %w",
			l.inputSize, l.outputSize, input.Rows(), input.Cols(), l.inputSize, matrix.ErrInvalidArgument)
	}
	return matrix.Multiply(l.weights, input)
}

// FeedForward computes f(W·input) and writes it into output, which must be
// an OutputSize×1 matrix. output is untouched on failure.
func (l *Layer) FeedForward(input, output *matrix.Matrix) error {
	z, err := l.PreActivation(input)
	if err != nil {
		return err
	}
	if err := z.ApplyUnary(l.activation); err != nil {
		return err
	}
	if err := matrix.AssignValues(output, z); err != nil {
		return fmt.Errorf("nn: layer %d->%d: output: %w", l.inputSize, l.outputSize, err)
	}
	return nil
}

// ActivationDerivativeAt returns f'(z) for z = W·input as an OutputSize×1
// column, using the analytic derivative when configured and the central
// difference otherwise.
func (l *Layer) ActivationDerivativeAt(input *matrix.Matrix) (*matrix.Matrix, error) {
	z, err := l.PreActivation(input)
	if err != nil {
		return nil, err
	}
	if err := z.ApplyUnary(l.derivativeFunc()); err != nil {
		return nil, err
	}
	return z, nil
}

func (l *Layer) derivativeFunc() ActivationFunc {
	if l.derivative != nil {
		return l.derivative
	}
	f := l.activation
	return func(x float64) float64 {
		return NumericalDerivative(f, x)
	}
}

// Jacobian returns the OutputSize×InputSize matrix J with
// J[i,j] = W[i,j]·f'(z_i), z = W·input: each weight row scaled by the local
// derivative of its output unit. It is recomputed on every call.
func (l *Layer) Jacobian(input *matrix.Matrix) (*matrix.Matrix, error) {
	deriv, err := l.ActivationDerivativeAt(input)
	if err != nil {
		return nil, err
	}
	jac, err := l.weights.Copy()
	if err != nil {
		return nil, err
	}
	for i := 0; i < l.outputSize; i++ {
		d, err := deriv.Get(i, 0)
		if err != nil {
			return nil, err
		}
		for j := 0; j < l.inputSize; j++ {
			w, err := jac.Get(i, j)
			if err != nil {
				return nil, err
			}
			if err := jac.Set(i, j, w*d); err != nil {
				return nil, err
			}
		}
	}
	return jac, nil
}

// UpdateWeights applies W ← W − learningRate·gradient.
// gradient is not modified and W is untouched on failure.
func (l *Layer) UpdateWeights(gradient *matrix.Matrix, learningRate float64) error {
	if err := l.Validate(); err != nil {
		return err
	}
	if err := l.checkGradient(gradient); err != nil {
		return err
	}
	step, err := matrix.ScalarMultiply(gradient, learningRate)
	if err != nil {
		return err
	}
	return l.weights.Subtract(step)
}

func (l *Layer) checkGradient(gradient *matrix.Matrix) error {
	if !gradient.IsValid() {
		return fmt.Errorf("nn: layer %d->%d: gradient: %w", l.inputSize, l.outputSize, matrix.ErrStructuralInvalid)
	}
	if gradient.Rows() != l.outputSize || gradient.Cols() != l.inputSize {
		return fmt.Errorf("nn: layer %d->%d: gradient is %dx%d: %w",
			l.inputSize, l.outputSize, gradient.Rows(), gradient.Cols(), matrix.ErrInvalidArgument)
	}
	return nil
}
