// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package dataset provides ordered training data for nn.Network.
package dataset

import (
	"io"

	"github.com/born-ml/densenet/internal/dataset"
)

// Dataset is an ordered collection of datapoints.
type Dataset = dataset.Dataset

// Datapoint is one (input, target) pair.
type Datapoint = dataset.Datapoint

// New returns an empty dataset.
func New() *Dataset {
	return dataset.New()
}

// NewDatapoint copies input and target into column matrices.
func NewDatapoint(input, target []float64) (*Datapoint, error) {
	return dataset.NewDatapoint(input, target)
}

// ReadCSV reads one datapoint per record; the first inputSize fields are the
// input and the rest the target.
func ReadCSV(r io.Reader, inputSize int) (*Dataset, error) {
	return dataset.ReadCSV(r, inputSize)
}
