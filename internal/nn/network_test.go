package nn

import (
	"testing"

	"github.com/born-ml/densenet/internal/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scalarNetwork is the 1→1 identity network with weight w.
func scalarNetwork(t *testing.T, w float64) *Network {
	t.Helper()
	net, err := NewNetwork(NetworkConfig{
		InputSize:  1,
		OutputSize: 1,
		Activation: IdentityActivation,
		Loss:       SquaredError,
		Init:       Zeros,
	})
	require.NoError(t, err)
	require.NoError(t, net.SetLayerWeights(0, mustMatrix(t, [][]float64{{w}})))
	return net
}

func TestNewNetwork(t *testing.T) {
	net, err := NewNetwork(NetworkConfig{
		InputSize:  2,
		OutputSize: 1,
		Hidden:     []LayerSpec{LayerOf(2, 4), {OutputSize: 3}},
		Activation: SigmoidActivation,
		Seed:       42,
	})
	require.NoError(t, err)
	assert.True(t, net.IsValid())
	assert.Equal(t, 3, net.NumLayers())
	assert.Equal(t, 2, net.InputSize())
	assert.Equal(t, 1, net.OutputSize())
	assert.Equal(t, "squared_error", net.Loss().Name)
	assert.Equal(t, "sigmoid", net.Activation().Name)

	shapes := [][2]int{{4, 2}, {3, 4}, {1, 3}}
	for i, w := range net.Weights() {
		rows, cols := w.Shape()
		assert.Equal(t, shapes[i], [2]int{rows, cols}, "layer %d", i)
	}

	// Xavier keeps every weight inside its bound.
	for _, v := range net.Layer(0).Weights().Data() {
		assert.LessOrEqual(t, v*v, 1.0)
	}
}

func TestNewNetwork_SeedIsDeterministic(t *testing.T) {
	cfg := NetworkConfig{InputSize: 3, OutputSize: 2, Hidden: []LayerSpec{{OutputSize: 5}}, Activation: TanhActivation, Seed: 7}
	a, err := NewNetwork(cfg)
	require.NoError(t, err)
	b, err := NewNetwork(cfg)
	require.NoError(t, err)

	wa, wb := a.Weights(), b.Weights()
	for i := range wa {
		assert.True(t, wa[i].Equal(wb[i]), "layer %d", i)
	}
}

func TestNewNetwork_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  NetworkConfig
		want error
	}{
		{"zero input", NetworkConfig{OutputSize: 1, Activation: IdentityActivation}, matrix.ErrInvalidArgument},
		{"zero output", NetworkConfig{InputSize: 1, Activation: IdentityActivation}, matrix.ErrInvalidArgument},
		{"no activation", NetworkConfig{InputSize: 1, OutputSize: 1}, matrix.ErrInvalidArgument},
		{
			"broken chain",
			NetworkConfig{InputSize: 2, OutputSize: 1, Hidden: []LayerSpec{LayerOf(3, 4)}, Activation: IdentityActivation},
			matrix.ErrStructuralInvalid,
		},
		{
			"zero hidden width",
			NetworkConfig{InputSize: 2, OutputSize: 1, Hidden: []LayerSpec{{OutputSize: 0}}, Activation: IdentityActivation},
			matrix.ErrInvalidArgument,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewNetwork(tt.cfg)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNetwork_BrokenChainIsInvalid(t *testing.T) {
	net, err := NewNetwork(NetworkConfig{
		InputSize:  2,
		OutputSize: 1,
		Hidden:     []LayerSpec{{OutputSize: 3}},
		Activation: SigmoidActivation,
	})
	require.NoError(t, err)
	require.True(t, net.IsValid())

	bad, err := NewLayer(4, 1, Sigmoid, SigmoidDerivative)
	require.NoError(t, err)
	net.layers[1] = bad

	assert.False(t, net.IsValid())
	assert.ErrorIs(t, net.Validate(), matrix.ErrStructuralInvalid)
	_, err = net.FeedForward([]float64{1, 1})
	assert.ErrorIs(t, err, matrix.ErrStructuralInvalid)

	var nilNet *Network
	assert.False(t, nilNet.IsValid())
}

func TestNetwork_OutputSizeMismatchIsInvalid(t *testing.T) {
	net, err := NewNetwork(NetworkConfig{
		InputSize:  2,
		OutputSize: 1,
		Hidden:     []LayerSpec{{OutputSize: 3}},
		Activation: SigmoidActivation,
	})
	require.NoError(t, err)

	// 3->2 still chains from the hidden layer but gives 2 outputs, not 1.
	wide, err := NewLayer(3, 2, Sigmoid, SigmoidDerivative)
	require.NoError(t, err)
	net.layers[1] = wide

	assert.False(t, net.IsValid())
	assert.ErrorIs(t, net.Validate(), matrix.ErrStructuralInvalid)
	_, err = net.FeedForward([]float64{1, 1})
	assert.ErrorIs(t, err, matrix.ErrStructuralInvalid)
	assert.ErrorIs(t, net.GradientDescentStep(nil, 0.1), matrix.ErrStructuralInvalid)
}

func TestNetwork_FeedForward(t *testing.T) {
	net := scalarNetwork(t, 2)
	out, err := net.FeedForward([]float64{3})
	require.NoError(t, err)
	assert.Equal(t, []float64{6}, out)

	_, err = net.FeedForward([]float64{1, 2})
	assert.ErrorIs(t, err, matrix.ErrInvalidArgument)
}

func TestNetwork_FeedForwardHidden(t *testing.T) {
	net, err := NewNetwork(NetworkConfig{
		InputSize:  2,
		OutputSize: 1,
		Hidden:     []LayerSpec{{OutputSize: 2}},
		Activation: ReLUActivation,
		Init:       Zeros,
	})
	require.NoError(t, err)
	require.NoError(t, net.SetLayerWeights(0, mustMatrix(t, [][]float64{{1, -1}, {-1, 1}})))
	require.NoError(t, net.SetLayerWeights(1, mustMatrix(t, [][]float64{{1, 1}})))

	// XOR by hand: |a-b| through two ReLUs.
	cases := map[[2]float64]float64{{0, 0}: 0, {0, 1}: 1, {1, 0}: 1, {1, 1}: 0}
	for in, want := range cases {
		out, err := net.FeedForward(in[:])
		require.NoError(t, err)
		assert.Equal(t, []float64{want}, out, "input %v", in)
	}
}

func TestNetwork_SetLayerWeights(t *testing.T) {
	net := scalarNetwork(t, 1)
	err := net.SetLayerWeights(1, mustMatrix(t, [][]float64{{1}}))
	assert.ErrorIs(t, err, matrix.ErrOutOfBounds)
	err = net.SetLayerWeights(0, mustMatrix(t, [][]float64{{1, 2}}))
	assert.ErrorIs(t, err, matrix.ErrInvalidArgument)

	assert.Panics(t, func() { net.Layer(3) })
}

func TestSoftmax(t *testing.T) {
	m := mustColumn(t, 0, 0)
	require.NoError(t, Softmax(m))
	assert.Equal(t, []float64{0.5, 0.5}, m.Data())

	m = mustColumn(t, 1, 2, 3)
	require.NoError(t, Softmax(m))
	sum, err := m.Sum()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, sum, 1e-12)
	data := m.Data()
	assert.Less(t, data[0], data[1])
	assert.Less(t, data[1], data[2])
}

func TestSoftmaxJacobian(t *testing.T) {
	p := mustColumn(t, 0.2, 0.8)
	jac, err := SoftmaxJacobian(p)
	require.NoError(t, err)
	want := mustMatrix(t, [][]float64{{0.16, -0.16}, {-0.16, 0.16}})
	assert.True(t, jac.EqualApprox(want, 1e-12))

	_, err = SoftmaxJacobian(mustMatrix(t, [][]float64{{0.5, 0.5}}))
	assert.ErrorIs(t, err, matrix.ErrInvalidArgument)
}

func TestNetwork_SoftmaxOutput(t *testing.T) {
	net, err := NewNetwork(NetworkConfig{
		InputSize:  2,
		OutputSize: 2,
		Activation: SoftmaxActivation,
		Init:       Zeros,
	})
	require.NoError(t, err)

	out, err := net.FeedForward([]float64{0, 0})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.5}, out)

	// The output layer itself runs the identity.
	assert.Equal(t, 5.0, net.Layer(0).Activation()(5))

	require.NoError(t, net.SetLayerWeights(0, mustMatrix(t, [][]float64{{1, 0}, {0, 1}})))
	out, err = net.FeedForward([]float64{3, -1})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, out[0]+out[1], 1e-12)
	assert.Greater(t, out[0], out[1])
}
