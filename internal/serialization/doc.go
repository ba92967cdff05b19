// Package serialization provides the native .dnet checkpoint format for
// saving and loading densenet networks.
//
// The .dnet format is a small binary container:
//
//	Format Structure:
//	  [4 bytes: Magic "DNET"]
//	  [4 bytes: Version (uint32 LE)]
//	  [8 bytes: Header Size (uint64 LE)]
//	  [Header: JSON metadata]
//	  [Weights: float64 LE, row-major, one block per layer]
//	  [32 bytes: SHA-256 of header and weights]
//
// The header records the model id, the network sizes, the activation and
// loss names, and the (outputSize, inputSize) shape and byte range of every
// layer's weights. Loading validates all of it before any weight is
// returned.
//
// Example usage:
//
//	// Save a trained network
//	if _, err := serialization.SaveFile("model.dnet", net, serialization.SaveOptions{}); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Load it back
//	ckpt, err := serialization.LoadFile("model.dnet")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	net, err := ckpt.Network()
package serialization
