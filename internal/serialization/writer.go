package serialization

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/born-ml/densenet/internal/nn"
	"github.com/google/uuid"
)

// SaveOptions carries the optional header fields of a checkpoint.
type SaveOptions struct {
	ModelID  uuid.UUID         // Identity to record (default: a new random id)
	Metadata map[string]string // Custom metadata
	Training *TrainingMeta     // Training summary
}

// Save writes net to w in .dnet format and returns the header it wrote.
//
// The weights are snapshotted under the network's read lock, so a concurrent
// training step cannot tear the checkpoint.
func Save(w io.Writer, net *nn.Network, opts SaveOptions) (Header, error) {
	if err := net.Validate(); err != nil {
		return Header{}, fmt.Errorf("serialization: save: %w", err)
	}

	id := opts.ModelID
	if id == uuid.Nil {
		id = uuid.New()
	}
	header := Header{
		FormatVersion: FormatVersion,
		ModelID:       id,
		CreatedAt:     time.Now().UTC(),
		InputSize:     net.InputSize(),
		OutputSize:    net.OutputSize(),
		Activation:    net.Activation().Name,
		Loss:          net.Loss().Name,
		Metadata:      opts.Metadata,
		Training:      opts.Training,
	}
	if header.Metadata == nil {
		header.Metadata = make(map[string]string)
	}

	weights := net.Weights()
	header.Layers = make([]LayerMeta, len(weights))
	var offset int64
	for i, m := range weights {
		size := int64(m.Len()) * ValueSize
		header.Layers[i] = LayerMeta{
			Name:   layerName(i),
			Shape:  []int{m.Rows(), m.Cols()},
			Offset: offset,
			Size:   size,
		}
		offset += size
	}

	data := make([]byte, 0, offset)
	for _, m := range weights {
		for _, v := range m.Data() {
			data = binary.LittleEndian.AppendUint64(data, math.Float64bits(v))
		}
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return Header{}, fmt.Errorf("serialization: failed to marshal header: %w", err)
	}

	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(MagicBytes); err != nil {
		return Header{}, fmt.Errorf("serialization: failed to write magic bytes: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(FormatVersion)); err != nil {
		return Header{}, fmt.Errorf("serialization: failed to write version: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, uint64(len(headerJSON))); err != nil {
		return Header{}, fmt.Errorf("serialization: failed to write header size: %w", err)
	}
	if _, err := bw.Write(headerJSON); err != nil {
		return Header{}, fmt.Errorf("serialization: failed to write header: %w", err)
	}
	if _, err := bw.Write(data); err != nil {
		return Header{}, fmt.Errorf("serialization: failed to write weights: %w", err)
	}
	sum := ComputeChecksum(headerJSON, data)
	if _, err := bw.Write(sum[:]); err != nil {
		return Header{}, fmt.Errorf("serialization: failed to write checksum: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return Header{}, fmt.Errorf("serialization: %w", err)
	}
	return header, nil
}

// SaveFile writes net to the file at path, replacing it.
func SaveFile(path string, net *nn.Network, opts SaveOptions) (Header, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model saving
	file, err := os.Create(path)
	if err != nil {
		return Header{}, fmt.Errorf("serialization: failed to create file: %w", err)
	}
	header, err := Save(file, net, opts)
	if err != nil {
		_ = file.Close() // Best effort close on error
		return Header{}, err
	}
	if err := file.Close(); err != nil {
		return Header{}, fmt.Errorf("serialization: failed to close file: %w", err)
	}
	return header, nil
}
