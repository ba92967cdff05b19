package serialization

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/born-ml/densenet/internal/matrix"
	"github.com/born-ml/densenet/internal/nn"
)

// Checkpoint is a loaded .dnet file.
type Checkpoint struct {
	Header  Header
	Weights []*matrix.Matrix // One (outputSize, inputSize) matrix per layer, input side first
}

// Load reads a .dnet checkpoint from r.
//
// Magic, version, header layout and checksum are all verified; nothing is
// returned from a file that fails any check.
func Load(r io.Reader) (*Checkpoint, error) {
	br := bufio.NewReader(r)

	magic := make([]byte, len(MagicBytes))
	if _, err := io.ReadFull(br, magic); err != nil {
		return nil, fmt.Errorf("serialization: failed to read magic bytes: %w", err)
	}
	if string(magic) != MagicBytes {
		return nil, ErrInvalidMagic
	}

	var version uint32
	if err := binary.Read(br, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("serialization: failed to read version: %w", err)
	}
	if version != FormatVersion {
		return nil, fmt.Errorf("%w: got %d, expected %d", ErrUnsupportedVersion, version, FormatVersion)
	}

	var headerSize uint64
	if err := binary.Read(br, binary.LittleEndian, &headerSize); err != nil {
		return nil, fmt.Errorf("serialization: failed to read header size: %w", err)
	}
	if headerSize > MaxHeaderSize {
		return nil, ErrHeaderTooLarge
	}

	headerJSON := make([]byte, headerSize)
	if _, err := io.ReadFull(br, headerJSON); err != nil {
		return nil, fmt.Errorf("serialization: failed to read header: %w", err)
	}
	var header Header
	if err := json.Unmarshal(headerJSON, &header); err != nil {
		return nil, fmt.Errorf("serialization: failed to parse header JSON: %w", err)
	}

	// The weight blocks must tile the data section exactly.
	var total int64
	for _, l := range header.Layers {
		if l.Size < 0 || l.Size > MaxDataSize {
			return nil, &ValidationError{Type: "invalid_size", Layer: l.Name, Details: fmt.Sprintf("size %d", l.Size)}
		}
		total += l.Size
	}
	if total > MaxDataSize {
		return nil, &ValidationError{Type: "too_large", Details: fmt.Sprintf("%d weight bytes, max %d", total, MaxDataSize)}
	}
	if err := ValidateHeader(&header, total); err != nil {
		return nil, fmt.Errorf("serialization: validation failed: %w", err)
	}

	data := make([]byte, total)
	if _, err := io.ReadFull(br, data); err != nil {
		return nil, fmt.Errorf("serialization: failed to read weights: %w", err)
	}
	var stored [ChecksumSize]byte
	if _, err := io.ReadFull(br, stored[:]); err != nil {
		return nil, fmt.Errorf("serialization: failed to read checksum: %w", err)
	}
	if err := ValidateChecksum(ComputeChecksum(headerJSON, data), stored); err != nil {
		return nil, err
	}

	ckpt := &Checkpoint{Header: header, Weights: make([]*matrix.Matrix, len(header.Layers))}
	for i, l := range header.Layers {
		block := data[l.Offset : l.Offset+l.Size]
		values := make([]float64, l.Rows()*l.Cols())
		for j := range values {
			values[j] = math.Float64frombits(binary.LittleEndian.Uint64(block[j*ValueSize:]))
		}
		m, err := matrix.FromSlice(l.Rows(), l.Cols(), values)
		if err != nil {
			return nil, fmt.Errorf("serialization: %s: %w", l.Name, err)
		}
		ckpt.Weights[i] = m
	}
	return ckpt, nil
}

// LoadFile reads the .dnet checkpoint at path.
func LoadFile(path string) (*Checkpoint, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model loading
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("serialization: failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return Load(file)
}

// Network rebuilds the saved network with the checkpoint's weights.
//
// The activation and loss are resolved by name, so networks saved with a
// custom activation or loss cannot be rebuilt.
func (c *Checkpoint) Network() (*nn.Network, error) {
	if len(c.Weights) == 0 {
		return nil, &ValidationError{Type: "no_layers", Details: "checkpoint holds no weights"}
	}
	act, ok := nn.ActivationByName(c.Header.Activation)
	if !ok {
		return nil, fmt.Errorf("serialization: %w %q", ErrUnknownActivation, c.Header.Activation)
	}
	var loss nn.Loss
	if c.Header.Loss != "" {
		if loss, ok = nn.LossByName(c.Header.Loss); !ok {
			return nil, fmt.Errorf("serialization: %w %q", ErrUnknownLoss, c.Header.Loss)
		}
	}

	hidden := make([]nn.LayerSpec, 0, len(c.Weights))
	for _, w := range c.Weights[:len(c.Weights)-1] {
		hidden = append(hidden, nn.LayerOf(w.Cols(), w.Rows()))
	}
	net, err := nn.NewNetwork(nn.NetworkConfig{
		InputSize:  c.Header.InputSize,
		OutputSize: c.Header.OutputSize,
		Hidden:     hidden,
		Activation: act,
		Loss:       loss,
		Init:       nn.Zeros,
	})
	if err != nil {
		return nil, fmt.Errorf("serialization: rebuild network: %w", err)
	}
	for i, w := range c.Weights {
		if err := net.SetLayerWeights(i, w); err != nil {
			return nil, fmt.Errorf("serialization: rebuild network: layer %d: %w", i, err)
		}
	}
	return net, nil
}
