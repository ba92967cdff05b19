package matrix

import (
	"fmt"
	"math"
)

// UnaryFunc maps one entry to a new value.
type UnaryFunc func(x float64) float64

// BinaryFunc combines a matrix entry with a second value.
type BinaryFunc func(x, y float64) float64

// Predefined element functions.
var (
	Abs     UnaryFunc  = math.Abs
	AddFunc BinaryFunc = func(x, y float64) float64 { return x + y }
	SubFunc BinaryFunc = func(x, y float64) float64 { return x - y }
	MulFunc BinaryFunc = func(x, y float64) float64 { return x * y }
)

func (m *Matrix) checkPair(op string, other *Matrix) error {
	if !m.IsValid() || !other.IsValid() {
		return fmt.Errorf("matrix: %s: %w", op, ErrStructuralInvalid)
	}
	if m.rows != other.rows || m.cols != other.cols {
		return fmt.Errorf("matrix: %s: shape %dx%d vs %dx%d: %w",
			op, m.rows, m.cols, other.rows, other.cols, ErrInvalidArgument)
	}
	return nil
}

// In-place operations

// Add adds other to m entrywise.
func (m *Matrix) Add(other *Matrix) error {
	if err := m.checkPair("add", other); err != nil {
		return err
	}
	for i, v := range other.data {
		m.data[i] += v
	}
	return nil
}

// Subtract subtracts other from m entrywise.
func (m *Matrix) Subtract(other *Matrix) error {
	if err := m.checkPair("subtract", other); err != nil {
		return err
	}
	for i, v := range other.data {
		m.data[i] -= v
	}
	return nil
}

// ScalarMultiply multiplies every entry by s.
func (m *Matrix) ScalarMultiply(s float64) error {
	if !m.IsValid() {
		return fmt.Errorf("matrix: scalar multiply: %w", ErrStructuralInvalid)
	}
	for i := range m.data {
		m.data[i] *= s
	}
	return nil
}

// ApplyUnary replaces every entry x with f(x).
func (m *Matrix) ApplyUnary(f UnaryFunc) error {
	if !m.IsValid() {
		return fmt.Errorf("matrix: apply unary: %w", ErrStructuralInvalid)
	}
	if f == nil {
		return fmt.Errorf("matrix: apply unary: nil function: %w", ErrInvalidArgument)
	}
	for i, x := range m.data {
		m.data[i] = f(x)
	}
	return nil
}

// ApplyBinary replaces every entry x with f(x, value).
func (m *Matrix) ApplyBinary(f BinaryFunc, value float64) error {
	if !m.IsValid() {
		return fmt.Errorf("matrix: apply binary: %w", ErrStructuralInvalid)
	}
	if f == nil {
		return fmt.Errorf("matrix: apply binary: nil function: %w", ErrInvalidArgument)
	}
	for i, x := range m.data {
		m.data[i] = f(x, value)
	}
	return nil
}

// ElementWise replaces every entry m[i,j] with f(m[i,j], other[i,j]).
func (m *Matrix) ElementWise(other *Matrix, f BinaryFunc) error {
	if err := m.checkPair("element-wise", other); err != nil {
		return err
	}
	if f == nil {
		return fmt.Errorf("matrix: element-wise: nil function: %w", ErrInvalidArgument)
	}
	for i, x := range m.data {
		m.data[i] = f(x, other.data[i])
	}
	return nil
}

// Fill sets every entry to value.
func (m *Matrix) Fill(value float64) error {
	if !m.IsValid() {
		return fmt.Errorf("matrix: fill: %w", ErrStructuralInvalid)
	}
	for i := range m.data {
		m.data[i] = value
	}
	return nil
}

// Sum returns the sum of all entries.
func (m *Matrix) Sum() (float64, error) {
	if !m.IsValid() {
		return 0, fmt.Errorf("matrix: sum: %w", ErrStructuralInvalid)
	}
	var s float64
	for _, v := range m.data {
		s += v
	}
	return s, nil
}

// Out-of-place operations

// Add returns a + b.
func Add(a, b *Matrix) (*Matrix, error) {
	return outOfPlace(a, func(r *Matrix) error { return r.Add(b) })
}

// Subtract returns a - b.
func Subtract(a, b *Matrix) (*Matrix, error) {
	return outOfPlace(a, func(r *Matrix) error { return r.Subtract(b) })
}

// ScalarMultiply returns s·m.
func ScalarMultiply(m *Matrix, s float64) (*Matrix, error) {
	return outOfPlace(m, func(r *Matrix) error { return r.ScalarMultiply(s) })
}

// ApplyUnary returns a copy of m with f applied to every entry.
func ApplyUnary(m *Matrix, f UnaryFunc) (*Matrix, error) {
	return outOfPlace(m, func(r *Matrix) error { return r.ApplyUnary(f) })
}

// ApplyBinary returns a copy of m with f(x, value) applied to every entry.
func ApplyBinary(m *Matrix, f BinaryFunc, value float64) (*Matrix, error) {
	return outOfPlace(m, func(r *Matrix) error { return r.ApplyBinary(f, value) })
}

// ElementWise returns f applied pairwise to the entries of a and b.
func ElementWise(a, b *Matrix, f BinaryFunc) (*Matrix, error) {
	return outOfPlace(a, func(r *Matrix) error { return r.ElementWise(b, f) })
}

func outOfPlace(m *Matrix, op func(*Matrix) error) (*Matrix, error) {
	result, err := m.Copy()
	if err != nil {
		return nil, err
	}
	if err := op(result); err != nil {
		return nil, err
	}
	return result, nil
}

// Multiply returns the matrix product a·b.
//
// Requires a.Cols() == b.Rows(); the result has shape (a.Rows(), b.Cols()).
func Multiply(a, b *Matrix) (*Matrix, error) {
	if !a.IsValid() || !b.IsValid() {
		return nil, fmt.Errorf("matrix: multiply: %w", ErrStructuralInvalid)
	}
	if a.cols != b.rows {
		return nil, fmt.Errorf("matrix: multiply %dx%d by %dx%d: inner dimensions differ: %w",
			a.rows, a.cols, b.rows, b.cols, ErrInvalidArgument)
	}
	result, err := New(a.rows, b.cols)
	if err != nil {
		return nil, err
	}

	// i-k-j order keeps the inner loop on contiguous rows of b and result.
	n, k := b.cols, a.cols
	for i := 0; i < a.rows; i++ {
		rowOut := result.data[i*n : (i+1)*n]
		for p := 0; p < k; p++ {
			aip := a.data[i*k+p]
			rowB := b.data[p*n : (p+1)*n]
			for j, bpj := range rowB {
				rowOut[j] += aip * bpj
			}
		}
	}
	return result, nil
}

// Outer returns the outer product u·vᵀ of two vectors given in any orientation.
func Outer(u, v *Matrix) (*Matrix, error) {
	if !u.IsValid() || !v.IsValid() {
		return nil, fmt.Errorf("matrix: outer: %w", ErrStructuralInvalid)
	}
	if (u.rows != 1 && u.cols != 1) || (v.rows != 1 && v.cols != 1) {
		return nil, fmt.Errorf("matrix: outer %dx%d by %dx%d: operands must be vectors: %w",
			u.rows, u.cols, v.rows, v.cols, ErrInvalidArgument)
	}
	result, err := New(len(u.data), len(v.data))
	if err != nil {
		return nil, err
	}
	n := len(v.data)
	for i, x := range u.data {
		for j, y := range v.data {
			result.data[i*n+j] = x * y
		}
	}
	return result, nil
}
