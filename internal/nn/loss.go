package nn

import (
	"fmt"
	"math"

	"github.com/born-ml/densenet/internal/matrix"
)

// LossFunc scores one predicted value against its target.
type LossFunc = matrix.BinaryFunc

// Loss pairs an element-wise error function with its optional analytic
// derivative with respect to the prediction.
//
// The zero Loss stands for SquaredError. A Loss with a Func and no
// Derivative is differentiated numerically.
type Loss struct {
	Name       string
	Func       LossFunc
	Derivative LossFunc
}

// SquaredErrorFunc returns (p - t)².
func SquaredErrorFunc(predicted, target float64) float64 {
	d := predicted - target
	return d * d
}

// SquaredErrorDerivative returns 2(p - t).
func SquaredErrorDerivative(predicted, target float64) float64 {
	return 2 * (predicted - target)
}

// AbsoluteErrorFunc returns |p - t|.
func AbsoluteErrorFunc(predicted, target float64) float64 {
	return math.Abs(predicted - target)
}

// AbsoluteErrorDerivative returns sign(p - t), with 0 at p == t.
func AbsoluteErrorDerivative(predicted, target float64) float64 {
	switch {
	case predicted > target:
		return 1
	case predicted < target:
		return -1
	default:
		return 0
	}
}

// crossEntropyEpsilon keeps log and division away from zero.
const crossEntropyEpsilon = 1e-12

// CrossEntropyFunc returns -t·ln(p), the per-class term of categorical
// cross entropy. Intended for softmax outputs.
func CrossEntropyFunc(predicted, target float64) float64 {
	return -target * math.Log(math.Max(predicted, crossEntropyEpsilon))
}

// CrossEntropyDerivative returns -t / p.
func CrossEntropyDerivative(predicted, target float64) float64 {
	return -target / math.Max(predicted, crossEntropyEpsilon)
}

// Predefined losses.
var (
	SquaredError  = Loss{Name: "squared_error", Func: SquaredErrorFunc, Derivative: SquaredErrorDerivative}
	AbsoluteError = Loss{Name: "absolute_error", Func: AbsoluteErrorFunc, Derivative: AbsoluteErrorDerivative}
	CrossEntropy  = Loss{Name: "cross_entropy", Func: CrossEntropyFunc, Derivative: CrossEntropyDerivative}
)

var losses = map[string]Loss{
	SquaredError.Name:  SquaredError,
	AbsoluteError.Name: AbsoluteError,
	CrossEntropy.Name:  CrossEntropy,
}

// LossByName looks up a predefined loss.
func LossByName(name string) (Loss, bool) {
	l, ok := losses[name]
	return l, ok
}

// withDefaults substitutes SquaredError when no error function is set.
func (l Loss) withDefaults() Loss {
	if l.Func == nil {
		return SquaredError
	}
	if l.Name == "" {
		l.Name = "custom"
	}
	return l
}

// NumericalLossDerivative approximates ∂f/∂p by central difference with the
// same step as NumericalDerivative.
func NumericalLossDerivative(f LossFunc, predicted, target float64) float64 {
	return (f(predicted+DerivativeStep, target) - f(predicted-DerivativeStep, target)) / (2 * DerivativeStep)
}

// derivative evaluates the loss derivative of predicted against target
// element-wise, analytically when possible.
func (l Loss) derivative(predicted, target *matrix.Matrix) (*matrix.Matrix, error) {
	if !predicted.SameShape(target) {
		return nil, fmt.Errorf("nn: loss derivative: prediction %dx%d vs target %dx%d: %w",
			predicted.Rows(), predicted.Cols(), target.Rows(), target.Cols(), matrix.ErrInvalidArgument)
	}
	if l.Derivative != nil {
		return matrix.ElementWise(predicted, target, l.Derivative)
	}
	f := l.Func
	return matrix.ElementWise(predicted, target, func(p, t float64) float64 {
		return NumericalLossDerivative(f, p, t)
	})
}

// total sums the element-wise loss of predicted against target.
func (l Loss) total(predicted, target *matrix.Matrix) (float64, error) {
	errs, err := matrix.ElementWise(predicted, target, l.Func)
	if err != nil {
		return 0, err
	}
	return errs.Sum()
}
