package serialization

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrChecksumMismatch   = errors.New("checksum mismatch: file may be corrupted")
	ErrInvalidMagic       = errors.New("invalid magic bytes")
	ErrUnsupportedVersion = errors.New("unsupported format version")
	ErrHeaderTooLarge     = errors.New("header exceeds maximum size")
	ErrUnknownActivation  = errors.New("unknown activation")
	ErrUnknownLoss        = errors.New("unknown loss")
)

// ValidationError provides detailed information about header validation failures.
type ValidationError struct {
	Type    string // Type of error (e.g., "offset_overlap", "out_of_bounds")
	Layer   string // Primary layer name involved
	Layer2  string // Secondary layer name (for overlap errors)
	Details string // Additional details
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Layer2 != "" {
		return fmt.Sprintf("%s: layers %q and %q: %s", e.Type, e.Layer, e.Layer2, e.Details)
	}
	if e.Layer != "" {
		return fmt.Sprintf("%s: layer %q: %s", e.Type, e.Layer, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Details)
}
