package dataset

import (
	"fmt"

	"github.com/born-ml/densenet/internal/matrix"
)

// Dataset is an ordered collection of datapoints.
//
// Iteration order is insertion order and is stable across calls, which is
// what a full-batch training step needs. The zero value is an empty dataset
// ready to use.
type Dataset struct {
	points List[*Datapoint]
}

// New creates an empty dataset.
func New() *Dataset {
	return &Dataset{}
}

// Add appends a datapoint.
func (d *Dataset) Add(p *Datapoint) error {
	if p == nil {
		return fmt.Errorf("dataset: add nil datapoint: %w", matrix.ErrInvalidArgument)
	}
	d.points.Push(p)
	return nil
}

// Append wraps input and target as a datapoint and appends it.
func (d *Dataset) Append(input, target []float64) error {
	p, err := NewDatapoint(input, target)
	if err != nil {
		return err
	}
	return d.Add(p)
}

// Len returns the number of datapoints.
func (d *Dataset) Len() int {
	return d.points.Len()
}

// IsEmpty reports whether the dataset has no datapoints.
func (d *Dataset) IsEmpty() bool {
	return d.points.IsEmpty()
}

// Each calls fn with every datapoint's input and target in order, stopping
// at and returning the first error.
func (d *Dataset) Each(fn func(input, target *matrix.Matrix) error) error {
	for node := d.points.Head(); node != nil; node = node.Next() {
		p := node.Value()
		if err := fn(p.input, p.target); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks that every input is inputSize×1 and every target
// outputSize×1.
func (d *Dataset) Validate(inputSize, outputSize int) error {
	i := 0
	return d.Each(func(input, target *matrix.Matrix) error {
		defer func() { i++ }()
		if input.Rows() != inputSize || input.Cols() != 1 {
			return fmt.Errorf("dataset: datapoint %d: input is %dx%d, want %dx1: %w",
				i, input.Rows(), input.Cols(), inputSize, matrix.ErrInvalidArgument)
		}
		if target.Rows() != outputSize || target.Cols() != 1 {
			return fmt.Errorf("dataset: datapoint %d: target is %dx%d, want %dx1: %w",
				i, target.Rows(), target.Cols(), outputSize, matrix.ErrInvalidArgument)
		}
		return nil
	})
}
