package imaging

import "errors"

// ErrInvalidImage reports a nil or zero-area source image.
var ErrInvalidImage = errors.New("invalid image")
