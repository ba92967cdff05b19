package nn

import (
	"fmt"
	"math"

	"github.com/born-ml/densenet/internal/matrix"
)

// Softmax normalizes m in place: every entry is exponentiated, and the
// result is divided by the sum of the exponentials.
//
// There is no max subtraction, so large inputs overflow to Inf and the
// normalized values become NaN. This is not reported as an error.
func Softmax(m *matrix.Matrix) error {
	if err := m.ApplyUnary(math.Exp); err != nil {
		return fmt.Errorf("nn: softmax: %w", err)
	}
	sum, err := m.Sum()
	if err != nil {
		return fmt.Errorf("nn: softmax: %w", err)
	}
	return m.ApplyBinary(matrix.MulFunc, 1/sum)
}

// SoftmaxJacobian returns diag(p) − p·pᵀ for a column of softmax
// probabilities p: the derivative of the normalized output with respect to
// the raw output that produced it.
func SoftmaxJacobian(p *matrix.Matrix) (*matrix.Matrix, error) {
	if !p.IsValid() || p.Cols() != 1 {
		return nil, fmt.Errorf("nn: softmax jacobian: want a column vector, got %dx%d: %w",
			p.Rows(), p.Cols(), matrix.ErrInvalidArgument)
	}
	outer, err := matrix.Outer(p, p)
	if err != nil {
		return nil, err
	}
	if err := outer.ScalarMultiply(-1); err != nil {
		return nil, err
	}
	diag, err := matrix.Diagonal(p)
	if err != nil {
		return nil, err
	}
	if err := diag.Add(outer); err != nil {
		return nil, err
	}
	return diag, nil
}
