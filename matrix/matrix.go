// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package matrix provides dense row-major float64 matrices.
//
// Every operation returns an error instead of panicking; failures wrap one
// of ErrInvalidArgument, ErrOutOfBounds, ErrAllocation or
// ErrStructuralInvalid.
package matrix

import "github.com/born-ml/densenet/internal/matrix"

// Matrix is a dense row-major matrix of float64.
type Matrix = matrix.Matrix

// UnaryFunc is an element-wise function of one value.
type UnaryFunc = matrix.UnaryFunc

// BinaryFunc is an element-wise function of two values.
type BinaryFunc = matrix.BinaryFunc

// Errors.
var (
	ErrInvalidArgument   = matrix.ErrInvalidArgument
	ErrOutOfBounds       = matrix.ErrOutOfBounds
	ErrAllocation        = matrix.ErrAllocation
	ErrStructuralInvalid = matrix.ErrStructuralInvalid
)

// New creates a zero-filled rows×cols matrix.
func New(rows, cols int) (*Matrix, error) {
	return matrix.New(rows, cols)
}

// FromSlice creates a rows×cols matrix from row-major data.
func FromSlice(rows, cols int, data []float64) (*Matrix, error) {
	return matrix.FromSlice(rows, cols, data)
}

// FromRows creates a matrix from equal-length rows.
func FromRows(rows [][]float64) (*Matrix, error) {
	return matrix.FromRows(rows)
}

// ColumnVector creates an n×1 matrix.
func ColumnVector(values []float64) (*Matrix, error) {
	return matrix.ColumnVector(values)
}

// RowVector creates a 1×n matrix.
func RowVector(values []float64) (*Matrix, error) {
	return matrix.RowVector(values)
}

// Identity creates the n×n identity matrix.
func Identity(n int) (*Matrix, error) {
	return matrix.Identity(n)
}

// Multiply returns the matrix product a·b.
func Multiply(a, b *Matrix) (*Matrix, error) {
	return matrix.Multiply(a, b)
}

// Add returns a + b without modifying either.
func Add(a, b *Matrix) (*Matrix, error) {
	return matrix.Add(a, b)
}

// Subtract returns a - b without modifying either.
func Subtract(a, b *Matrix) (*Matrix, error) {
	return matrix.Subtract(a, b)
}

// ElementWise returns f applied pairwise to a and b.
func ElementWise(a, b *Matrix, f BinaryFunc) (*Matrix, error) {
	return matrix.ElementWise(a, b, f)
}
