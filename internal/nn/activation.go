package nn

import (
	"math"

	"github.com/born-ml/densenet/internal/matrix"
)

// DerivativeStep is the step h of the central-difference approximation
// (f(x+h) - f(x-h)) / 2h used whenever no analytic derivative is configured.
const DerivativeStep = 1e-6

// ActivationFunc is a total, pure, element-wise nonlinearity.
type ActivationFunc = matrix.UnaryFunc

// NumericalDerivative approximates f'(x) by central difference.
func NumericalDerivative(f ActivationFunc, x float64) float64 {
	return (f(x+DerivativeStep) - f(x-DerivativeStep)) / (2 * DerivativeStep)
}

// Activation pairs an element-wise function with its optional analytic
// derivative. A nil Derivative makes every consumer fall back to
// NumericalDerivative.
type Activation struct {
	Name       string
	Func       ActivationFunc
	Derivative ActivationFunc

	softmax bool
}

// IsSoftmax reports whether a is the reserved softmax marker.
func (a Activation) IsSoftmax() bool {
	return a.softmax
}

// Identity returns x.
func Identity(x float64) float64 { return x }

// IdentityDerivative returns 1.
func IdentityDerivative(float64) float64 { return 1 }

// Sigmoid computes σ(x) = 1 / (1 + exp(-x)).
func Sigmoid(x float64) float64 { return 1 / (1 + math.Exp(-x)) }

// SigmoidDerivative computes σ(x)(1 - σ(x)).
func SigmoidDerivative(x float64) float64 {
	s := Sigmoid(x)
	return s * (1 - s)
}

// Tanh computes the hyperbolic tangent.
func Tanh(x float64) float64 { return math.Tanh(x) }

// TanhDerivative computes 1 - tanh²(x).
func TanhDerivative(x float64) float64 {
	t := math.Tanh(x)
	return 1 - t*t
}

// ReLU computes max(0, x).
func ReLU(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}

// ReLUDerivative is 1 for x > 0 and 0 otherwise.
func ReLUDerivative(x float64) float64 {
	if x > 0 {
		return 1
	}
	return 0
}

// leakySlope is the negative-side slope of LeakyReLU.
const leakySlope = 0.01

// LeakyReLU computes x for x > 0 and 0.01·x otherwise.
func LeakyReLU(x float64) float64 {
	if x > 0 {
		return x
	}
	return leakySlope * x
}

// LeakyReLUDerivative is 1 for x > 0 and 0.01 otherwise.
func LeakyReLUDerivative(x float64) float64 {
	if x > 0 {
		return 1
	}
	return leakySlope
}

// Predefined activations.
var (
	IdentityActivation  = Activation{Name: "identity", Func: Identity, Derivative: IdentityDerivative}
	SigmoidActivation   = Activation{Name: "sigmoid", Func: Sigmoid, Derivative: SigmoidDerivative}
	TanhActivation      = Activation{Name: "tanh", Func: Tanh, Derivative: TanhDerivative}
	ReLUActivation      = Activation{Name: "relu", Func: ReLU, Derivative: ReLUDerivative}
	LeakyReLUActivation = Activation{Name: "leaky_relu", Func: LeakyReLU, Derivative: LeakyReLUDerivative}

	// SoftmaxActivation is the softmax marker. Its element function is exp,
	// which alone is not softmax: a network configured with it builds its
	// output layer with the identity activation and normalizes the raw
	// output as a separate stage.
	SoftmaxActivation = Activation{Name: "softmax", Func: math.Exp, softmax: true}
)

var activations = map[string]Activation{
	IdentityActivation.Name:  IdentityActivation,
	SigmoidActivation.Name:   SigmoidActivation,
	TanhActivation.Name:      TanhActivation,
	ReLUActivation.Name:      ReLUActivation,
	LeakyReLUActivation.Name: LeakyReLUActivation,
	SoftmaxActivation.Name:   SoftmaxActivation,
}

// ActivationByName looks up a predefined activation.
func ActivationByName(name string) (Activation, bool) {
	a, ok := activations[name]
	return a, ok
}
