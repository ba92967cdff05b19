package serialization

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Format constants.
const (
	MagicBytes    = "DNET"
	FormatVersion = 1
	ChecksumSize  = 32 // SHA-256
	ValueSize     = 8  // float64
)

// Header represents the JSON header in a .dnet file.
type Header struct {
	FormatVersion int               `json:"format_version"`     // Version of the .dnet format
	ModelID       uuid.UUID         `json:"model_id"`           // Identity of the saved model
	CreatedAt     time.Time         `json:"created_at"`         // When the file was created
	InputSize     int               `json:"input_size"`         // Width of the network input
	OutputSize    int               `json:"output_size"`        // Width of the network output
	Activation    string            `json:"activation"`         // Shared activation name
	Loss          string            `json:"loss"`               // Error function name
	Layers        []LayerMeta       `json:"layers"`             // Weight blocks, input side first
	Metadata      map[string]string `json:"metadata"`           // Custom metadata
	Training      *TrainingMeta     `json:"training,omitempty"` // Training summary (optional)
}

// TrainingMeta summarizes the run that produced the weights.
type TrainingMeta struct {
	Epochs       int     `json:"epochs"`
	LearningRate float64 `json:"learning_rate"`
	Loss         float64 `json:"loss"`
}

// LayerMeta describes one layer's weight block.
type LayerMeta struct {
	Name   string `json:"name"`   // Block name (e.g., "layer.0.weight")
	Shape  []int  `json:"shape"`  // [outputSize, inputSize]
	Offset int64  `json:"offset"` // Offset in the weight section (bytes)
	Size   int64  `json:"size"`   // Size in bytes
}

// Rows returns the layer's output size.
func (m LayerMeta) Rows() int { return m.Shape[0] }

// Cols returns the layer's input size.
func (m LayerMeta) Cols() int { return m.Shape[1] }

func layerName(i int) string {
	return fmt.Sprintf("layer.%d.weight", i)
}
