package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/born-ml/densenet/internal/matrix"
)

// ReadCSV reads one datapoint per record: the first inputSize fields are the
// input, the remaining fields the target. Blank lines and lines starting
// with '#' are skipped.
func ReadCSV(r io.Reader, inputSize int) (*Dataset, error) {
	if inputSize <= 0 {
		return nil, fmt.Errorf("dataset: read csv: input size %d: %w", inputSize, matrix.ErrInvalidArgument)
	}

	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	ds := New()
	for line := 1; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: read csv: %w", err)
		}
		if len(record) <= inputSize {
			return nil, fmt.Errorf("dataset: read csv: record %d has %d fields, want more than %d: %w",
				line, len(record), inputSize, matrix.ErrInvalidArgument)
		}

		values := make([]float64, len(record))
		for i, field := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("dataset: read csv: record %d field %d: %w", line, i+1, err)
			}
			values[i] = v
		}
		if err := ds.Append(values[:inputSize], values[inputSize:]); err != nil {
			return nil, err
		}
	}
	return ds, nil
}
