package nn

import (
	"fmt"
	"sync"

	"github.com/born-ml/densenet/internal/matrix"
)

// LayerSpec describes one hidden layer.
//
// InputSize may be left zero to take the previous layer's output size;
// when set it must match it exactly.
type LayerSpec struct {
	InputSize  int
	OutputSize int
}

// LayerOf returns a LayerSpec for an inputSize→outputSize hidden layer.
func LayerOf(inputSize, outputSize int) LayerSpec {
	return LayerSpec{InputSize: inputSize, OutputSize: outputSize}
}

// NetworkConfig holds the construction parameters of a Network.
type NetworkConfig struct {
	InputSize  int         // Width of the input vector (required)
	OutputSize int         // Width of the output vector (required)
	Hidden     []LayerSpec // Hidden layers, input side first (may be empty)
	Activation Activation  // Shared activation (required); SoftmaxActivation selects the softmax stage
	Loss       Loss        // Error function (default: SquaredError)
	Init       Initializer // Weight initializer (default: Xavier)
	Seed       uint64      // Initializer seed (default: 0, randomly seeded)
}

// Network is a fixed linear stack of dense layers.
//
// The first layer reads the network input, each following layer reads the
// previous layer's output, and the last layer produces the network output.
// If the configured activation is SoftmaxActivation the last layer uses the
// identity activation and its raw output is passed through Softmax.
//
// A Network is safe for concurrent use: inference takes a read lock,
// training and weight replacement take the write lock.
type Network struct {
	mu sync.RWMutex

	inputSize  int
	outputSize int
	activation Activation
	loss       Loss
	layers     []*Layer
}

// NewNetwork builds a network from cfg: one layer per hidden spec plus the
// output layer, with weights filled by cfg.Init.
//
// Example:
//
//	net, err := nn.NewNetwork(nn.NetworkConfig{
//	    InputSize:  2,
//	    OutputSize: 1,
//	    Hidden:     []nn.LayerSpec{nn.LayerOf(2, 4)},
//	    Activation: nn.SigmoidActivation,
//	})
func NewNetwork(cfg NetworkConfig) (*Network, error) {
	if cfg.InputSize <= 0 || cfg.OutputSize <= 0 {
		return nil, fmt.Errorf("nn: network %d->%d: sizes must be positive: %w",
			cfg.InputSize, cfg.OutputSize, matrix.ErrInvalidArgument)
	}
	if cfg.Activation.Func == nil {
		return nil, fmt.Errorf("nn: network: activation is required: %w", matrix.ErrInvalidArgument)
	}
	if cfg.Init == nil {
		cfg.Init = Xavier
	}

	act := cfg.Activation
	layers := make([]*Layer, 0, len(cfg.Hidden)+1)
	prev := cfg.InputSize
	for i, spec := range cfg.Hidden {
		if spec.InputSize != 0 && spec.InputSize != prev {
			return nil, fmt.Errorf("nn: network: hidden layer %d takes %d inputs, previous layer gives %d: %w",
				i, spec.InputSize, prev, matrix.ErrStructuralInvalid)
		}
		layer, err := NewLayer(prev, spec.OutputSize, act.Func, act.Derivative)
		if err != nil {
			return nil, fmt.Errorf("nn: network: hidden layer %d: %w", i, err)
		}
		layers = append(layers, layer)
		prev = spec.OutputSize
	}

	outAct := act
	if act.IsSoftmax() {
		outAct = IdentityActivation
	}
	out, err := NewLayer(prev, cfg.OutputSize, outAct.Func, outAct.Derivative)
	if err != nil {
		return nil, fmt.Errorf("nn: network: output layer: %w", err)
	}
	layers = append(layers, out)

	rng := newRand(cfg.Seed)
	for i, layer := range layers {
		if err := cfg.Init(layer.weights, layer.inputSize, layer.outputSize, rng); err != nil {
			return nil, fmt.Errorf("nn: network: initialize layer %d: %w", i, err)
		}
	}

	n := &Network{
		inputSize:  cfg.InputSize,
		outputSize: cfg.OutputSize,
		activation: act,
		loss:       cfg.Loss.withDefaults(),
		layers:     layers,
	}
	if err := n.validate(); err != nil {
		return nil, err
	}
	return n, nil
}

// InputSize returns the width of the input vector.
func (n *Network) InputSize() int {
	return n.inputSize
}

// OutputSize returns the width of the output vector.
func (n *Network) OutputSize() int {
	return n.outputSize
}

// Activation returns the configured activation.
func (n *Network) Activation() Activation {
	return n.activation
}

// Loss returns the configured error function.
func (n *Network) Loss() Loss {
	return n.loss
}

// NumLayers returns the number of layers, hidden layers plus output layer.
func (n *Network) NumLayers() int {
	return len(n.layers)
}

// Layer returns a snapshot of the layer at index i, input side first.
//
// The snapshot owns a copy of the weights, so changing it does not affect
// the network; use SetLayerWeights for that.
//
// Panics if index is out of bounds.
func (n *Network) Layer(i int) *Layer {
	if i < 0 || i >= len(n.layers) {
		panic("Network.Layer: index out of bounds")
	}
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.layers[i].clone()
}

// Weights returns a copy of every layer's weight matrix, input side first.
func (n *Network) Weights() []*matrix.Matrix {
	n.mu.RLock()
	defer n.mu.RUnlock()

	out := make([]*matrix.Matrix, len(n.layers))
	for i, l := range n.layers {
		out[i] = l.Weights()
	}
	return out
}

// SetLayerWeights replaces the weights of layer i with a copy of w.
func (n *Network) SetLayerWeights(i int, w *matrix.Matrix) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if i < 0 || i >= len(n.layers) {
		return fmt.Errorf("nn: set weights of layer %d of %d: %w", i, len(n.layers), matrix.ErrOutOfBounds)
	}
	return n.layers[i].SetWeights(w)
}

// Validate checks that every layer is valid and that sizes chain from the
// network input through every layer to the network output.
func (n *Network) Validate() error {
	if n == nil {
		return fmt.Errorf("nn: nil network: %w", matrix.ErrStructuralInvalid)
	}
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.validate()
}

// IsValid reports whether Validate succeeds.
func (n *Network) IsValid() bool {
	return n.Validate() == nil
}

func (n *Network) validate() error {
	if len(n.layers) == 0 {
		return fmt.Errorf("nn: network has no layers: %w", matrix.ErrStructuralInvalid)
	}
	prev := n.inputSize
	for i, layer := range n.layers {
		if err := layer.Validate(); err != nil {
			return fmt.Errorf("nn: network layer %d: %w", i, err)
		}
		if layer.inputSize != prev {
			return fmt.Errorf("nn: network layer %d takes %d inputs, previous gives %d: %w",
				i, layer.inputSize, prev, matrix.ErrStructuralInvalid)
		}
		prev = layer.outputSize
	}
	if prev != n.outputSize {
		return fmt.Errorf("nn: network output layer gives %d outputs, network declares %d: %w",
			prev, n.outputSize, matrix.ErrStructuralInvalid)
	}
	return nil
}

// FeedForward evaluates the network on input, which must have InputSize
// entries, and returns OutputSize values.
func (n *Network) FeedForward(input []float64) ([]float64, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.feedForward(input)
}

func (n *Network) feedForward(input []float64) ([]float64, error) {
	if err := n.validate(); err != nil {
		return nil, err
	}
	if len(input) != n.inputSize {
		return nil, fmt.Errorf("nn: feed forward: %d inputs, want %d: %w", len(input), n.inputSize, matrix.ErrInvalidArgument)
	}
	x, err := matrix.ColumnVector(input)
	if err != nil {
		return nil, err
	}
	_, final, err := n.forward(x)
	if err != nil {
		return nil, err
	}
	return final.Data(), nil
}

// forward pushes a column input through every layer. outputs[i] is the
// output of layer i; final is the network output, which is the softmax of
// the last output when the softmax stage is active.
func (n *Network) forward(input *matrix.Matrix) (outputs []*matrix.Matrix, final *matrix.Matrix, err error) {
	outputs = make([]*matrix.Matrix, len(n.layers))
	x := input
	for i, layer := range n.layers {
		out, err := matrix.New(layer.outputSize, 1)
		if err != nil {
			return nil, nil, err
		}
		if err := layer.FeedForward(x, out); err != nil {
			return nil, nil, fmt.Errorf("nn: feed forward layer %d: %w", i, err)
		}
		outputs[i] = out
		x = out
	}

	final = x
	if n.activation.IsSoftmax() {
		if final, err = x.Copy(); err != nil {
			return nil, nil, err
		}
		if err := Softmax(final); err != nil {
			return nil, nil, err
		}
	}
	return outputs, final, nil
}
