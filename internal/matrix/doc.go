// Package matrix implements the dense two-dimensional matrix used by the
// network engine.
//
// A Matrix is a fixed-shape, row-major container of float64 values. Shape
// changing operations (Transpose, Multiply, SubMatrix, AppendRow, AppendCol,
// Copy) always return a new Matrix and never alias the storage of their
// inputs. In-place operations (Add, Subtract, ScalarMultiply, ApplyUnary,
// ApplyBinary, ElementWise) mutate the receiver; each has a package level
// out-of-place counterpart that copies first and leaves its inputs untouched
// whether it succeeds or not.
//
// Failures are reported as errors wrapping one of ErrInvalidArgument,
// ErrOutOfBounds, ErrAllocation or ErrStructuralInvalid.
//
// Example:
//
//	a, _ := matrix.FromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
//	b, _ := matrix.FromRows([][]float64{{7, 8}, {9, 10}, {11, 12}})
//	c, _ := matrix.Multiply(a, b) // [[58 64] [139 154]]
package matrix
