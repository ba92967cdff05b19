package serialization

import (
	"fmt"
	"sort"

	"github.com/born-ml/densenet/internal/matrix"
)

// Validation limits for resource protection.
const (
	MaxHeaderSize = 16 * 1024 * 1024 // 16MB - maximum header size
	MaxLayers     = 10_000           // Maximum number of layers in a file

	// MaxDataSize bounds the weight section to what one matrix may hold.
	MaxDataSize = int64(matrix.MaxElements) * ValueSize
)

// ValidateLayerOffsets checks that every weight block has the size its shape
// implies, lies inside a data section of dataSize bytes and does not overlap
// another block.
func ValidateLayerOffsets(layers []LayerMeta, dataSize int64) error {
	if len(layers) > MaxLayers {
		return &ValidationError{
			Type:    "too_many_layers",
			Details: fmt.Sprintf("got %d, max %d", len(layers), MaxLayers),
		}
	}

	for _, l := range layers {
		if len(l.Shape) != 2 || l.Shape[0] <= 0 || l.Shape[1] <= 0 {
			return &ValidationError{
				Type:    "invalid_shape",
				Layer:   l.Name,
				Details: fmt.Sprintf("shape %v is not a positive [rows, cols] pair", l.Shape),
			}
		}
		if l.Shape[0] > matrix.MaxElements/l.Shape[1] {
			return &ValidationError{
				Type:    "invalid_shape",
				Layer:   l.Name,
				Details: fmt.Sprintf("shape %v exceeds %d elements", l.Shape, matrix.MaxElements),
			}
		}
		if want := int64(l.Shape[0]) * int64(l.Shape[1]) * ValueSize; l.Size != want {
			return &ValidationError{
				Type:    "size_mismatch",
				Layer:   l.Name,
				Details: fmt.Sprintf("size %d, shape %v needs %d", l.Size, l.Shape, want),
			}
		}
	}

	sorted := make([]LayerMeta, len(layers))
	copy(sorted, layers)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})

	for i, l := range sorted {
		if l.Offset < 0 || l.Size < 0 {
			return &ValidationError{
				Type:    "negative_offset",
				Layer:   l.Name,
				Details: fmt.Sprintf("offset=%d, size=%d (negative values not allowed)", l.Offset, l.Size),
			}
		}

		// Compared by subtraction: Offset+Size may overflow int64.
		if l.Offset > dataSize || l.Size > dataSize-l.Offset {
			return &ValidationError{
				Type:    "out_of_bounds",
				Layer:   l.Name,
				Details: fmt.Sprintf("offset %d + size %d > data_size %d", l.Offset, l.Size, dataSize),
			}
		}

		if i < len(sorted)-1 {
			next := sorted[i+1]
			if l.Size > next.Offset-l.Offset {
				return &ValidationError{
					Type:    "offset_overlap",
					Layer:   l.Name,
					Layer2:  next.Name,
					Details: fmt.Sprintf("region at %d (size %d) runs into region at %d",
						l.Offset, l.Size, next.Offset),
				}
			}
		}
	}

	return nil
}

// ValidateHeader checks the header of a version-checked file: sizes, layer
// chain and weight block layout.
func ValidateHeader(h *Header, dataSize int64) error {
	if h.InputSize <= 0 || h.OutputSize <= 0 {
		return &ValidationError{
			Type:    "invalid_size",
			Details: fmt.Sprintf("network %d->%d", h.InputSize, h.OutputSize),
		}
	}
	if len(h.Layers) == 0 {
		return &ValidationError{Type: "no_layers", Details: "header lists no layers"}
	}
	if err := ValidateLayerOffsets(h.Layers, dataSize); err != nil {
		return err
	}

	prev := h.InputSize
	for _, l := range h.Layers {
		if l.Cols() != prev {
			return &ValidationError{
				Type:    "broken_chain",
				Layer:   l.Name,
				Details: fmt.Sprintf("takes %d inputs, previous layer gives %d", l.Cols(), prev),
			}
		}
		prev = l.Rows()
	}
	if prev != h.OutputSize {
		return &ValidationError{
			Type:    "broken_chain",
			Details: fmt.Sprintf("last layer gives %d outputs, header declares %d", prev, h.OutputSize),
		}
	}
	return nil
}
