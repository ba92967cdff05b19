// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package serialization saves and loads trained networks as .dnet checkpoints.
//
// A checkpoint holds the network shape, the activation and loss names, and
// every layer's weights, protected by a SHA-256 checksum.
//
// Example:
//
//	if _, err := serialization.SaveFile("model.dnet", net, serialization.SaveOptions{}); err != nil {
//	    return err
//	}
//	ckpt, err := serialization.LoadFile("model.dnet")
//	if err != nil {
//	    return err
//	}
//	net, err = ckpt.Network()
package serialization

import (
	"io"

	"github.com/born-ml/densenet/internal/serialization"
	"github.com/born-ml/densenet/nn"
)

// Header is the metadata stored in front of the weights.
type Header = serialization.Header

// LayerMeta describes one layer's weight block.
type LayerMeta = serialization.LayerMeta

// TrainingMeta summarizes the run that produced the weights.
type TrainingMeta = serialization.TrainingMeta

// SaveOptions configures Save.
type SaveOptions = serialization.SaveOptions

// Checkpoint is a loaded .dnet file.
type Checkpoint = serialization.Checkpoint

// ValidationError reports a structurally invalid checkpoint.
type ValidationError = serialization.ValidationError

// Errors returned by Load.
var (
	ErrInvalidMagic       = serialization.ErrInvalidMagic
	ErrUnsupportedVersion = serialization.ErrUnsupportedVersion
	ErrHeaderTooLarge     = serialization.ErrHeaderTooLarge
	ErrChecksumMismatch   = serialization.ErrChecksumMismatch
	ErrUnknownActivation  = serialization.ErrUnknownActivation
	ErrUnknownLoss        = serialization.ErrUnknownLoss
)

// Save writes net to w.
func Save(w io.Writer, net *nn.Network, opts SaveOptions) (Header, error) {
	return serialization.Save(w, net, opts)
}

// SaveFile writes net to the file at path, replacing it.
func SaveFile(path string, net *nn.Network, opts SaveOptions) (Header, error) {
	return serialization.SaveFile(path, net, opts)
}

// Load reads a checkpoint from r.
func Load(r io.Reader) (*Checkpoint, error) {
	return serialization.Load(r)
}

// LoadFile reads the checkpoint at path.
func LoadFile(path string) (*Checkpoint, error) {
	return serialization.LoadFile(path)
}
