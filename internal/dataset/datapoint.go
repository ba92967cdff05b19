package dataset

import (
	"fmt"

	"github.com/born-ml/densenet/internal/matrix"
)

// Datapoint pairs an input column with its target column.
type Datapoint struct {
	input  *matrix.Matrix
	target *matrix.Matrix
}

// NewDatapoint wraps raw input and target vectors as column matrices.
func NewDatapoint(input, target []float64) (*Datapoint, error) {
	in, err := matrix.ColumnVector(input)
	if err != nil {
		return nil, fmt.Errorf("dataset: datapoint input: %w", err)
	}
	out, err := matrix.ColumnVector(target)
	if err != nil {
		return nil, fmt.Errorf("dataset: datapoint target: %w", err)
	}
	return &Datapoint{input: in, target: out}, nil
}

// FromMatrices creates a datapoint that takes ownership of both matrices.
// Both must be valid column vectors.
func FromMatrices(input, target *matrix.Matrix) (*Datapoint, error) {
	if !input.IsValid() || !target.IsValid() {
		return nil, fmt.Errorf("dataset: datapoint: %w", matrix.ErrStructuralInvalid)
	}
	if input.Cols() != 1 || target.Cols() != 1 {
		return nil, fmt.Errorf("dataset: datapoint: input %dx%d, target %dx%d are not columns: %w",
			input.Rows(), input.Cols(), target.Rows(), target.Cols(), matrix.ErrInvalidArgument)
	}
	return &Datapoint{input: input, target: target}, nil
}

// Input returns the input column.
func (d *Datapoint) Input() *matrix.Matrix {
	return d.input
}

// Target returns the target column.
func (d *Datapoint) Target() *matrix.Matrix {
	return d.target
}
