package matrix

import "fmt"

// Copy returns a deep copy of m.
func (m *Matrix) Copy() (*Matrix, error) {
	if !m.IsValid() {
		return nil, fmt.Errorf("matrix: copy: %w", ErrStructuralInvalid)
	}
	result := &Matrix{
		rows: m.rows,
		cols: m.cols,
		data: make([]float64, len(m.data)),
	}
	copy(result.data, m.data)
	return result, nil
}

// Transpose returns mᵀ.
func (m *Matrix) Transpose() (*Matrix, error) {
	if !m.IsValid() {
		return nil, fmt.Errorf("matrix: transpose: %w", ErrStructuralInvalid)
	}
	result, err := New(m.cols, m.rows)
	if err != nil {
		return nil, err
	}
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			result.data[j*m.rows+i] = m.data[i*m.cols+j]
		}
	}
	return result, nil
}

// SubMatrix copies rows rowStart..rowEnd and columns colStart..colEnd.
// Both ranges are inclusive.
func (m *Matrix) SubMatrix(rowStart, rowEnd, colStart, colEnd int) (*Matrix, error) {
	if !m.IsValid() {
		return nil, fmt.Errorf("matrix: sub-matrix: %w", ErrStructuralInvalid)
	}
	if rowStart < 0 || colStart < 0 || rowEnd >= m.rows || colEnd >= m.cols {
		return nil, fmt.Errorf("matrix: sub-matrix [%d..%d, %d..%d] of %dx%d: %w",
			rowStart, rowEnd, colStart, colEnd, m.rows, m.cols, ErrOutOfBounds)
	}
	if rowStart > rowEnd || colStart > colEnd {
		return nil, fmt.Errorf("matrix: sub-matrix [%d..%d, %d..%d]: start after end: %w",
			rowStart, rowEnd, colStart, colEnd, ErrInvalidArgument)
	}

	newCols := colEnd - colStart + 1
	result, err := New(rowEnd-rowStart+1, newCols)
	if err != nil {
		return nil, err
	}
	for i := rowStart; i <= rowEnd; i++ {
		src := m.data[i*m.cols+colStart : i*m.cols+colEnd+1]
		copy(result.data[(i-rowStart)*newCols:], src)
	}
	return result, nil
}

// AppendRow returns m with the rows of row appended below it.
// Both operands must have the same number of columns.
func AppendRow(m, row *Matrix) (*Matrix, error) {
	if !m.IsValid() || !row.IsValid() {
		return nil, fmt.Errorf("matrix: append row: %w", ErrStructuralInvalid)
	}
	if m.cols != row.cols {
		return nil, fmt.Errorf("matrix: append row: %d columns vs %d: %w", m.cols, row.cols, ErrInvalidArgument)
	}
	result, err := New(m.rows+row.rows, m.cols)
	if err != nil {
		return nil, err
	}
	copy(result.data, m.data)
	copy(result.data[len(m.data):], row.data)
	return result, nil
}

// AppendCol returns m with the columns of col appended to its right.
// Both operands must have the same number of rows.
func AppendCol(m, col *Matrix) (*Matrix, error) {
	if !m.IsValid() || !col.IsValid() {
		return nil, fmt.Errorf("matrix: append column: %w", ErrStructuralInvalid)
	}
	if m.rows != col.rows {
		return nil, fmt.Errorf("matrix: append column: %d rows vs %d: %w", m.rows, col.rows, ErrInvalidArgument)
	}
	width := m.cols + col.cols
	result, err := New(m.rows, width)
	if err != nil {
		return nil, err
	}
	for i := 0; i < m.rows; i++ {
		copy(result.data[i*width:], m.data[i*m.cols:(i+1)*m.cols])
		copy(result.data[i*width+m.cols:], col.data[i*col.cols:(i+1)*col.cols])
	}
	return result, nil
}

// Replace stores a deep copy of m in *slot, releasing whatever was there.
// On failure *slot is left untouched.
func Replace(slot **Matrix, m *Matrix) error {
	if slot == nil {
		return fmt.Errorf("matrix: replace: nil slot: %w", ErrInvalidArgument)
	}
	c, err := m.Copy()
	if err != nil {
		return fmt.Errorf("matrix: replace: %w", err)
	}
	*slot = c
	return nil
}

// AssignValues copies the entries of src into dst. Shapes must match.
func AssignValues(dst, src *Matrix) error {
	if err := dst.checkPair("assign", src); err != nil {
		return err
	}
	copy(dst.data, src.data)
	return nil
}
