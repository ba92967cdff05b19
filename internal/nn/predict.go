package nn

import (
	"fmt"

	"github.com/born-ml/densenet/internal/parallel"
)

// PredictBatch evaluates every input and returns the outputs in order.
//
// Inputs are evaluated concurrently under a single read lock, so no
// training step can interleave with the batch.
func (n *Network) PredictBatch(inputs [][]float64) ([][]float64, error) {
	return n.PredictBatchWith(inputs, parallel.DefaultConfig())
}

// PredictBatchWith is PredictBatch with explicit parallelism settings.
func (n *Network) PredictBatchWith(inputs [][]float64, cfg parallel.Config) ([][]float64, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	outputs := make([][]float64, len(inputs))
	err := parallel.ForErr(len(inputs), func(i int) error {
		out, err := n.feedForward(inputs[i])
		if err != nil {
			return fmt.Errorf("nn: predict batch: input %d: %w", i, err)
		}
		outputs[i] = out
		return nil
	}, cfg)
	if err != nil {
		return nil, err
	}
	return outputs, nil
}
