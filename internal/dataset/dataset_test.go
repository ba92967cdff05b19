package dataset

import (
	"errors"
	"strings"
	"testing"

	"github.com/born-ml/densenet/internal/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatapoint(t *testing.T) {
	p, err := NewDatapoint([]float64{1, 2}, []float64{3})
	require.NoError(t, err)
	assert.Equal(t, 2, p.Input().Rows())
	assert.Equal(t, 1, p.Input().Cols())
	assert.Equal(t, []float64{3}, p.Target().Data())

	_, err = NewDatapoint(nil, []float64{1})
	assert.ErrorIs(t, err, matrix.ErrInvalidArgument)

	row, _ := matrix.RowVector([]float64{1, 2})
	col, _ := matrix.ColumnVector([]float64{1})
	_, err = FromMatrices(row, col)
	assert.ErrorIs(t, err, matrix.ErrInvalidArgument)

	_, err = FromMatrices(nil, col)
	assert.ErrorIs(t, err, matrix.ErrStructuralInvalid)
}

func TestDataset_EachInOrder(t *testing.T) {
	ds := New()
	require.NoError(t, ds.Append([]float64{0}, []float64{0}))
	require.NoError(t, ds.Append([]float64{1}, []float64{2}))
	require.NoError(t, ds.Append([]float64{2}, []float64{4}))
	assert.Equal(t, 3, ds.Len())

	var inputs []float64
	err := ds.Each(func(input, _ *matrix.Matrix) error {
		v, err := input.Get(0, 0)
		inputs = append(inputs, v)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2}, inputs)
}

func TestDataset_EachStopsAtError(t *testing.T) {
	ds := New()
	for i := 0; i < 5; i++ {
		require.NoError(t, ds.Append([]float64{float64(i)}, []float64{0}))
	}

	stop := errors.New("stop")
	calls := 0
	err := ds.Each(func(_, _ *matrix.Matrix) error {
		calls++
		if calls == 2 {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 2, calls)
}

func TestDataset_Validate(t *testing.T) {
	ds := New()
	require.NoError(t, ds.Append([]float64{1, 2}, []float64{1}))
	assert.NoError(t, ds.Validate(2, 1))
	assert.ErrorIs(t, ds.Validate(3, 1), matrix.ErrInvalidArgument)
	assert.ErrorIs(t, ds.Validate(2, 2), matrix.ErrInvalidArgument)

	assert.ErrorIs(t, ds.Add(nil), matrix.ErrInvalidArgument)
	assert.True(t, New().IsEmpty())
}

func TestDataset_ZeroValue(t *testing.T) {
	var ds Dataset
	assert.Equal(t, 0, ds.Len())
	assert.True(t, ds.IsEmpty())
	require.NoError(t, ds.Each(func(_, _ *matrix.Matrix) error {
		t.Fatal("empty dataset visited a datapoint")
		return nil
	}))

	require.NoError(t, ds.Append([]float64{1}, []float64{2}))
	assert.Equal(t, 1, ds.Len())
}

func TestReadCSV(t *testing.T) {
	input := `# x1, x2, y
0, 0, 0
0, 1, 1

1, 0, 1
1, 1, 0
`
	ds, err := ReadCSV(strings.NewReader(input), 2)
	require.NoError(t, err)
	assert.Equal(t, 4, ds.Len())
	require.NoError(t, ds.Validate(2, 1))

	var targets []float64
	require.NoError(t, ds.Each(func(_, target *matrix.Matrix) error {
		targets = append(targets, target.Data()...)
		return nil
	}))
	assert.Equal(t, []float64{0, 1, 1, 0}, targets)
}

func TestReadCSV_Errors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("1,2\n"), 2)
	assert.ErrorIs(t, err, matrix.ErrInvalidArgument, "no target column")

	_, err = ReadCSV(strings.NewReader("1,x,3\n"), 2)
	assert.Error(t, err)

	_, err = ReadCSV(strings.NewReader("1,2\n"), 0)
	assert.ErrorIs(t, err, matrix.ErrInvalidArgument)
}
