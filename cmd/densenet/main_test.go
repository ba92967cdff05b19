package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/born-ml/densenet/internal/serialization"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const doubleYAML = `
network:
  input_size: 1
  output_size: 1
  activation: identity
  seed: 1
training:
  learning_rate: 0.01
  epochs: 300
  log_every: 100
data:
  samples:
    - {input: [1], target: [2]}
    - {input: [2], target: [4]}
    - {input: [-1], target: [-2]}
`

func TestVersionAndUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"version"}, &stdout, &stderr))
	assert.Equal(t, "densenet "+version+"\n", stdout.String())

	err := run(context.Background(), nil, &stdout, &stderr)
	assert.ErrorIs(t, err, errUsage)
	assert.Contains(t, stderr.String(), "Commands:")

	err = run(context.Background(), []string{"fly"}, &stdout, &stderr)
	assert.ErrorIs(t, err, errUsage)
}

func TestTrainThenPredict(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "double.yaml")
	model := filepath.Join(dir, "double.dnet")
	require.NoError(t, os.WriteFile(cfgPath, []byte(doubleYAML), 0o600))

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"train", "-config", cfgPath, "-out", model}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())
	assert.Contains(t, stdout.String(), "300 epochs")
	assert.Contains(t, stderr.String(), "training progress")

	ckpt, err := serialization.LoadFile(model)
	require.NoError(t, err)
	require.NotNil(t, ckpt.Header.Training)
	assert.Equal(t, 300, ckpt.Header.Training.Epochs)

	stdout.Reset()
	err = run(context.Background(), []string{"predict", "-model", model, "-input", "3"}, &stdout, &stderr)
	require.NoError(t, err)
	got, err := strconv.ParseFloat(strings.TrimSpace(stdout.String()), 64)
	require.NoError(t, err)
	assert.InDelta(t, 6.0, got, 1e-3)
}

func TestPredictErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"predict", "-model", "x.dnet"}, &stdout, &stderr)
	assert.ErrorIs(t, err, errUsage)

	err = run(context.Background(), []string{"predict", "-model", filepath.Join(t.TempDir(), "x.dnet"), "-input", "1,a"}, &stdout, &stderr)
	assert.ErrorContains(t, err, "input value 2")

	err = run(context.Background(), []string{"train"}, &stdout, &stderr)
	assert.ErrorIs(t, err, errUsage)
}

func TestParseValues(t *testing.T) {
	values, err := parseValues("1, 0.5,-2")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0.5, -2}, values)
}
