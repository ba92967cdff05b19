package matrix

import (
	"fmt"
	"math"
	"strings"
)

// MaxElements bounds the number of entries a single Matrix may hold.
// Requests above it fail with ErrAllocation instead of exhausting memory.
const MaxElements = 1 << 28

// Matrix is a dense row-major matrix of float64 values.
//
// The zero value is not a valid Matrix; use New or one of the other
// constructors. A nil *Matrix is accepted by every predicate and reported
// as invalid by every operation.
type Matrix struct {
	rows int
	cols int
	data []float64 // len(data) == rows*cols
}

// New creates a zero-filled matrix with the given shape.
//
// Fails with ErrInvalidArgument if either dimension is not positive and with
// ErrAllocation if the element count exceeds MaxElements.
func New(rows, cols int) (*Matrix, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("matrix: create %dx%d: dimensions must be positive: %w", rows, cols, ErrInvalidArgument)
	}
	if rows > MaxElements/cols {
		return nil, fmt.Errorf("matrix: create %dx%d: exceeds %d elements: %w", rows, cols, MaxElements, ErrAllocation)
	}
	return &Matrix{
		rows: rows,
		cols: cols,
		data: make([]float64, rows*cols),
	}, nil
}

// FromSlice creates a matrix from row-major data. The slice is copied.
func FromSlice(rows, cols int, data []float64) (*Matrix, error) {
	m, err := New(rows, cols)
	if err != nil {
		return nil, err
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("matrix: from slice: %d values for %dx%d: %w", len(data), rows, cols, ErrInvalidArgument)
	}
	copy(m.data, data)
	return m, nil
}

// FromRows creates a matrix from a slice of equally sized rows.
func FromRows(rows [][]float64) (*Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("matrix: from rows: empty input: %w", ErrInvalidArgument)
	}
	m, err := New(len(rows), len(rows[0]))
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != m.cols {
			return nil, fmt.Errorf("matrix: from rows: row %d has %d values, want %d: %w", i, len(row), m.cols, ErrInvalidArgument)
		}
		copy(m.data[i*m.cols:], row)
	}
	return m, nil
}

// ColumnVector wraps values as an N×1 matrix.
func ColumnVector(values []float64) (*Matrix, error) {
	return FromSlice(len(values), 1, values)
}

// RowVector wraps values as a 1×N matrix.
func RowVector(values []float64) (*Matrix, error) {
	return FromSlice(1, len(values), values)
}

// Identity creates the n×n identity matrix.
func Identity(n int) (*Matrix, error) {
	m, err := New(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}
	return m, nil
}

// Diagonal creates a square matrix whose diagonal holds the entries of v.
// v must be a row or column vector.
func Diagonal(v *Matrix) (*Matrix, error) {
	if !v.IsValid() {
		return nil, fmt.Errorf("matrix: diagonal: %w", ErrStructuralInvalid)
	}
	if v.rows != 1 && v.cols != 1 {
		return nil, fmt.Errorf("matrix: diagonal: %dx%d is not a vector: %w", v.rows, v.cols, ErrInvalidArgument)
	}
	n := len(v.data)
	m, err := New(n, n)
	if err != nil {
		return nil, err
	}
	for i, x := range v.data {
		m.data[i*n+i] = x
	}
	return m, nil
}

// Rows returns the number of rows, or 0 for an invalid matrix.
func (m *Matrix) Rows() int {
	if m == nil {
		return 0
	}
	return m.rows
}

// Cols returns the number of columns, or 0 for an invalid matrix.
func (m *Matrix) Cols() int {
	if m == nil {
		return 0
	}
	return m.cols
}

// Shape returns (rows, cols).
func (m *Matrix) Shape() (int, int) {
	return m.Rows(), m.Cols()
}

// Len returns the number of entries.
func (m *Matrix) Len() int {
	return m.Rows() * m.Cols()
}

// Get returns the entry at (row, col).
func (m *Matrix) Get(row, col int) (float64, error) {
	if err := m.checkIndex("get", row, col); err != nil {
		return 0, err
	}
	return m.data[row*m.cols+col], nil
}

// Set stores value at (row, col).
func (m *Matrix) Set(row, col int, value float64) error {
	if err := m.checkIndex("set", row, col); err != nil {
		return err
	}
	m.data[row*m.cols+col] = value
	return nil
}

func (m *Matrix) checkIndex(op string, row, col int) error {
	if !m.IsValid() {
		return fmt.Errorf("matrix: %s: %w", op, ErrStructuralInvalid)
	}
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return fmt.Errorf("matrix: %s (%d,%d) in %dx%d: %w", op, row, col, m.rows, m.cols, ErrOutOfBounds)
	}
	return nil
}

// Data returns a copy of the row-major storage.
func (m *Matrix) Data() []float64 {
	if !m.IsValid() {
		return nil
	}
	out := make([]float64, len(m.data))
	copy(out, m.data)
	return out
}

// Column returns a copy of column col.
func (m *Matrix) Column(col int) ([]float64, error) {
	if err := m.checkIndex("column", 0, col); err != nil {
		return nil, err
	}
	out := make([]float64, m.rows)
	for i := range out {
		out[i] = m.data[i*m.cols+col]
	}
	return out, nil
}

// IsValid reports whether m has positive dimensions and storage to match.
func (m *Matrix) IsValid() bool {
	return m != nil && m.rows > 0 && m.cols > 0 && len(m.data) == m.rows*m.cols
}

// SameShape reports whether both matrices are valid and have equal shapes.
func (m *Matrix) SameShape(other *Matrix) bool {
	return m.IsValid() && other.IsValid() && m.rows == other.rows && m.cols == other.cols
}

// Equal reports whether both matrices have the same shape and bit-identical entries.
func (m *Matrix) Equal(other *Matrix) bool {
	if !m.SameShape(other) {
		return false
	}
	for i, v := range m.data {
		if math.Float64bits(v) != math.Float64bits(other.data[i]) {
			return false
		}
	}
	return true
}

// EqualApprox reports whether both matrices have the same shape and every pair
// of entries differs by at most tol.
func (m *Matrix) EqualApprox(other *Matrix, tol float64) bool {
	if !m.SameShape(other) {
		return false
	}
	for i, v := range m.data {
		if math.Abs(v-other.data[i]) > tol {
			return false
		}
	}
	return true
}

// String renders the matrix one row per line.
func (m *Matrix) String() string {
	if !m.IsValid() {
		return "Matrix(invalid)"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Matrix(%dx%d)\n", m.rows, m.cols)
	for i := 0; i < m.rows; i++ {
		sb.WriteString("[")
		for j := 0; j < m.cols; j++ {
			if j > 0 {
				sb.WriteString(" ")
			}
			fmt.Fprintf(&sb, "%g", m.data[i*m.cols+j])
		}
		sb.WriteString("]\n")
	}
	return sb.String()
}
