package matrix

import "errors"

// Error taxonomy shared by the matrix kernel and the network layers built on it.
//
// Every failure returned by this module wraps exactly one of these, so callers
// can classify it with errors.Is.
var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrOutOfBounds       = errors.New("index out of bounds")
	ErrAllocation        = errors.New("allocation failure")
	ErrStructuralInvalid = errors.New("structurally invalid")
)
