package detection

import "errors"

// Error kinds surfaced at the detector boundary. ErrInvalidInput and
// ErrOutOfMemory are fatal; ErrSinkFailure is reported alongside a valid
// segment set.
var (
	ErrInvalidInput = errors.New("invalid detector input")
	ErrOutOfMemory  = errors.New("accumulator size exceeds allocation limit")
	ErrSinkFailure  = errors.New("output sink failure")
)
