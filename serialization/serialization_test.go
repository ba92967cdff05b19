// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package serialization_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/born-ml/densenet/nn"
	"github.com/born-ml/densenet/serialization"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadFile(t *testing.T) {
	net, err := nn.NewNetwork(nn.NetworkConfig{
		InputSize:  2,
		OutputSize: 1,
		Hidden:     []nn.LayerSpec{{OutputSize: 3}},
		Activation: nn.TanhActivation,
		Seed:       4,
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "model.dnet")
	header, err := serialization.SaveFile(path, net, serialization.SaveOptions{
		Training: &serialization.TrainingMeta{Epochs: 10, LearningRate: 0.1},
	})
	require.NoError(t, err)

	ckpt, err := serialization.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, header.ModelID, ckpt.Header.ModelID)
	require.NotNil(t, ckpt.Header.Training)
	assert.Equal(t, 10, ckpt.Header.Training.Epochs)

	loaded, err := ckpt.Network()
	require.NoError(t, err)
	want, err := net.FeedForward([]float64{0.3, -0.7})
	require.NoError(t, err)
	got, err := loaded.FeedForward([]float64{0.3, -0.7})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadRejectsBadMagic(t *testing.T) {
	_, err := serialization.Load(bytes.NewReader([]byte("NOPE0000000000000000")))
	assert.ErrorIs(t, err, serialization.ErrInvalidMagic)
}
