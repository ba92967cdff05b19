package nn

import (
	"testing"

	"github.com/born-ml/densenet/internal/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMatrix(t *testing.T, rows [][]float64) *matrix.Matrix {
	t.Helper()
	m, err := matrix.FromRows(rows)
	require.NoError(t, err)
	return m
}

func mustColumn(t *testing.T, values ...float64) *matrix.Matrix {
	t.Helper()
	m, err := matrix.ColumnVector(values)
	require.NoError(t, err)
	return m
}

func TestNewLayer(t *testing.T) {
	layer, err := NewLayer(3, 2, Sigmoid, SigmoidDerivative)
	require.NoError(t, err)
	assert.Equal(t, 3, layer.InputSize())
	assert.Equal(t, 2, layer.OutputSize())
	assert.True(t, layer.IsValid())

	w := layer.Weights()
	rows, cols := w.Shape()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 3, cols)
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 0}, w.Data())

	_, err = NewLayer(0, 2, Sigmoid, nil)
	assert.ErrorIs(t, err, matrix.ErrInvalidArgument)
	_, err = NewLayer(2, 2, nil, nil)
	assert.ErrorIs(t, err, matrix.ErrInvalidArgument)
}

func TestLayer_IdentityPassthrough(t *testing.T) {
	layer, err := NewLayer(3, 3, Identity, IdentityDerivative)
	require.NoError(t, err)
	id, err := matrix.Identity(3)
	require.NoError(t, err)
	require.NoError(t, layer.SetWeights(id))

	in := mustColumn(t, 1.5, -2, 7)
	out, err := matrix.New(3, 1)
	require.NoError(t, err)
	require.NoError(t, layer.FeedForward(in, out))
	assert.True(t, out.Equal(in))
}

func TestLayer_FeedForward(t *testing.T) {
	layer, err := NewLayer(2, 2, ReLU, ReLUDerivative)
	require.NoError(t, err)
	require.NoError(t, layer.SetWeights(mustMatrix(t, [][]float64{{1, 2}, {-3, 1}})))

	out, err := matrix.New(2, 1)
	require.NoError(t, err)
	require.NoError(t, layer.FeedForward(mustColumn(t, 1, 1), out))
	assert.Equal(t, []float64{3, 0}, out.Data())
}

func TestLayer_FeedForwardErrors(t *testing.T) {
	layer, err := NewLayer(2, 2, Identity, nil)
	require.NoError(t, err)

	out, err := matrix.New(2, 1)
	require.NoError(t, err)
	require.NoError(t, out.Fill(9))

	err = layer.FeedForward(mustColumn(t, 1, 2, 3), out)
	assert.ErrorIs(t, err, matrix.ErrInvalidArgument)

	wrong, err := matrix.New(3, 1)
	require.NoError(t, err)
	err = layer.FeedForward(mustColumn(t, 1, 2), wrong)
	assert.Error(t, err)

	// Output is untouched by the failed calls.
	assert.Equal(t, []float64{9, 9}, out.Data())
}

func TestLayer_SetWeights(t *testing.T) {
	layer, err := NewLayer(2, 1, Identity, nil)
	require.NoError(t, err)

	w := mustMatrix(t, [][]float64{{4, 5}})
	require.NoError(t, layer.SetWeights(w))

	// The layer keeps its own copy.
	require.NoError(t, w.Set(0, 0, 100))
	got, err := layer.Weights().Get(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 4.0, got)

	err = layer.SetWeights(mustMatrix(t, [][]float64{{1}, {2}}))
	assert.ErrorIs(t, err, matrix.ErrInvalidArgument)
	err = layer.SetWeights(nil)
	assert.ErrorIs(t, err, matrix.ErrStructuralInvalid)
}

func TestLayer_Validate(t *testing.T) {
	var nilLayer *Layer
	assert.ErrorIs(t, nilLayer.Validate(), matrix.ErrStructuralInvalid)

	layer, err := NewLayer(2, 2, Identity, nil)
	require.NoError(t, err)
	layer.weights = mustMatrix(t, [][]float64{{1, 2, 3}})
	assert.ErrorIs(t, layer.Validate(), matrix.ErrStructuralInvalid)
	assert.False(t, layer.IsValid())
}

func TestLayer_JacobianIdentityIsWeights(t *testing.T) {
	layer, err := NewLayer(3, 2, Identity, IdentityDerivative)
	require.NoError(t, err)
	w := mustMatrix(t, [][]float64{{1, -2, 0.5}, {3, 0, -1}})
	require.NoError(t, layer.SetWeights(w))

	jac, err := layer.Jacobian(mustColumn(t, 0.3, 0.1, -4))
	require.NoError(t, err)
	assert.True(t, jac.Equal(w))
}

func TestLayer_JacobianScalesRows(t *testing.T) {
	layer, err := NewLayer(2, 2, Sigmoid, SigmoidDerivative)
	require.NoError(t, err)
	require.NoError(t, layer.SetWeights(mustMatrix(t, [][]float64{{1, 1}, {2, -1}})))

	in := mustColumn(t, 0.5, 0.25)
	jac, err := layer.Jacobian(in)
	require.NoError(t, err)

	d0 := SigmoidDerivative(0.75)
	d1 := SigmoidDerivative(0.75)
	want := mustMatrix(t, [][]float64{{d0, d0}, {2 * d1, -d1}})
	assert.True(t, jac.EqualApprox(want, 1e-15))
}

func TestLayer_NumericalDerivativeFallback(t *testing.T) {
	analytic, err := NewLayer(2, 2, Tanh, TanhDerivative)
	require.NoError(t, err)
	numeric, err := NewLayer(2, 2, Tanh, nil)
	require.NoError(t, err)

	w := mustMatrix(t, [][]float64{{0.4, -0.2}, {1.3, 0.7}})
	require.NoError(t, analytic.SetWeights(w))
	require.NoError(t, numeric.SetWeights(w))

	in := mustColumn(t, 0.9, -1.1)
	want, err := analytic.ActivationDerivativeAt(in)
	require.NoError(t, err)
	got, err := numeric.ActivationDerivativeAt(in)
	require.NoError(t, err)
	assert.True(t, got.EqualApprox(want, 1e-8))
}

func TestLayer_UpdateWeights(t *testing.T) {
	layer, err := NewLayer(2, 1, Identity, nil)
	require.NoError(t, err)
	require.NoError(t, layer.SetWeights(mustMatrix(t, [][]float64{{1, 2}})))

	grad := mustMatrix(t, [][]float64{{10, -20}})
	require.NoError(t, layer.UpdateWeights(grad, 0.5))
	assert.Equal(t, []float64{-4, 12}, layer.Weights().Data())
	assert.Equal(t, []float64{10, -20}, grad.Data(), "gradient must not be modified")

	err = layer.UpdateWeights(mustMatrix(t, [][]float64{{1}}), 0.5)
	assert.ErrorIs(t, err, matrix.ErrInvalidArgument)
	assert.Equal(t, []float64{-4, 12}, layer.Weights().Data())
}
