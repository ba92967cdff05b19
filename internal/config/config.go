// Package config loads the YAML files that drive the densenet CLI.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/born-ml/densenet/internal/dataset"
	"github.com/born-ml/densenet/internal/nn"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the root of a densenet YAML file.
//
//	network:
//	  input_size: 2
//	  output_size: 1
//	  hidden: [4]
//	  activation: sigmoid
//	training:
//	  learning_rate: 0.5
//	  epochs: 5000
//	data:
//	  path: xor.csv
type Config struct {
	Network  Network  `yaml:"network"`
	Training Training `yaml:"training"`
	Data     Data     `yaml:"data"`
	Server   Server   `yaml:"server"`
}

// Network describes the network shape.
type Network struct {
	InputSize  int    `yaml:"input_size"`
	OutputSize int    `yaml:"output_size"`
	Hidden     []int  `yaml:"hidden"`     // Widths of the hidden layers, input side first
	Activation string `yaml:"activation"` // Name understood by nn.ActivationByName
	Loss       string `yaml:"loss"`       // Name understood by nn.LossByName
	Seed       uint64 `yaml:"seed"`       // Weight initialization seed (0: random)
}

// Training holds gradient descent settings.
type Training struct {
	LearningRate float64 `yaml:"learning_rate"`
	Epochs       int     `yaml:"epochs"`
	TargetLoss   float64 `yaml:"target_loss"`
	LogEvery     int     `yaml:"log_every"`
}

// Data names the training samples: a CSV file, inline samples, or both.
type Data struct {
	Path    string   `yaml:"path"` // CSV file, relative to the config file
	Samples []Sample `yaml:"samples"`
}

// Sample is one inline training pair.
type Sample struct {
	Input  []float64 `yaml:"input"`
	Target []float64 `yaml:"target"`
}

// Server holds HTTP serving settings.
type Server struct {
	Addr            string        `yaml:"addr"`
	MaxBatch        int           `yaml:"max_batch"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Default returns the configuration every file is layered over.
func Default() Config {
	return Config{
		Network: Network{
			Activation: nn.SigmoidActivation.Name,
			Loss:       nn.SquaredError.Name,
		},
		Training: Training{
			LearningRate: 0.01,
			Epochs:       1000,
			LogEvery:     100,
		},
		Server: Server{
			Addr:            ":8080",
			MaxBatch:        1024,
			ShutdownTimeout: 5 * time.Second,
		},
	}
}

// Parse decodes YAML over Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses the YAML file at path. A relative Data.Path is
// resolved against the directory of path.
func Load(path string) (Config, error) {
	//nolint:gosec // G304: config path is supplied by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.Data.Path != "" && !filepath.IsAbs(cfg.Data.Path) {
		cfg.Data.Path = filepath.Join(filepath.Dir(path), cfg.Data.Path)
	}
	return cfg, nil
}

// Validate checks every field that can be checked without reading data.
func (c Config) Validate() error {
	n := c.Network
	if n.InputSize <= 0 || n.OutputSize <= 0 {
		return fmt.Errorf("config: network sizes %d->%d must be positive: %w", n.InputSize, n.OutputSize, ErrInvalid)
	}
	for i, h := range n.Hidden {
		if h <= 0 {
			return fmt.Errorf("config: hidden layer %d has width %d: %w", i, h, ErrInvalid)
		}
	}
	if _, ok := nn.ActivationByName(n.Activation); !ok {
		return fmt.Errorf("config: unknown activation %q: %w", n.Activation, ErrInvalid)
	}
	if _, ok := nn.LossByName(n.Loss); !ok {
		return fmt.Errorf("config: unknown loss %q: %w", n.Loss, ErrInvalid)
	}

	t := c.Training
	if !(t.LearningRate > 0) {
		return fmt.Errorf("config: learning rate %g must be positive: %w", t.LearningRate, ErrInvalid)
	}
	if t.Epochs <= 0 {
		return fmt.Errorf("config: epochs %d must be positive: %w", t.Epochs, ErrInvalid)
	}
	if t.TargetLoss < 0 || t.LogEvery < 0 {
		return fmt.Errorf("config: target loss and log interval must not be negative: %w", ErrInvalid)
	}

	for i, s := range c.Data.Samples {
		if len(s.Input) != n.InputSize || len(s.Target) != n.OutputSize {
			return fmt.Errorf("config: sample %d is %d->%d, network is %d->%d: %w",
				i, len(s.Input), len(s.Target), n.InputSize, n.OutputSize, ErrInvalid)
		}
	}

	if c.Server.MaxBatch < 0 {
		return fmt.Errorf("config: max batch %d must not be negative: %w", c.Server.MaxBatch, ErrInvalid)
	}
	return nil
}

// NetworkConfig converts the network section for nn.NewNetwork.
func (c Config) NetworkConfig() (nn.NetworkConfig, error) {
	act, ok := nn.ActivationByName(c.Network.Activation)
	if !ok {
		return nn.NetworkConfig{}, fmt.Errorf("config: unknown activation %q: %w", c.Network.Activation, ErrInvalid)
	}
	loss, ok := nn.LossByName(c.Network.Loss)
	if !ok {
		return nn.NetworkConfig{}, fmt.Errorf("config: unknown loss %q: %w", c.Network.Loss, ErrInvalid)
	}
	hidden := make([]nn.LayerSpec, len(c.Network.Hidden))
	for i, width := range c.Network.Hidden {
		hidden[i] = nn.LayerSpec{OutputSize: width}
	}
	return nn.NetworkConfig{
		InputSize:  c.Network.InputSize,
		OutputSize: c.Network.OutputSize,
		Hidden:     hidden,
		Activation: act,
		Loss:       loss,
		Seed:       c.Network.Seed,
	}, nil
}

// TrainConfig converts the training section for Network.Train.
func (c Config) TrainConfig(logger *slog.Logger) nn.TrainConfig {
	return nn.TrainConfig{
		LearningRate: c.Training.LearningRate,
		Epochs:       c.Training.Epochs,
		TargetLoss:   c.Training.TargetLoss,
		LogEvery:     c.Training.LogEvery,
		Logger:       logger,
	}
}

// Dataset loads the CSV file, if any, followed by the inline samples, and
// checks the result against the network sizes.
func (c Config) Dataset() (*dataset.Dataset, error) {
	ds := dataset.New()
	if c.Data.Path != "" {
		//nolint:gosec // G304: data path is supplied by the operator
		f, err := os.Open(c.Data.Path)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		defer func() { _ = f.Close() }()
		if ds, err = dataset.ReadCSV(f, c.Network.InputSize); err != nil {
			return nil, fmt.Errorf("config: %s: %w", c.Data.Path, err)
		}
	}
	for i, s := range c.Data.Samples {
		if err := ds.Append(s.Input, s.Target); err != nil {
			return nil, fmt.Errorf("config: sample %d: %w", i, err)
		}
	}
	if ds.IsEmpty() {
		return nil, fmt.Errorf("config: no training data: %w", ErrInvalid)
	}
	if err := ds.Validate(c.Network.InputSize, c.Network.OutputSize); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return ds, nil
}
