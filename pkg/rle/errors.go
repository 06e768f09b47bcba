package rle

import "errors"

var (
	// ErrMalformedMask is returned when no known RLE format matches the payload.
	ErrMalformedMask = errors.New("rle: malformed mask")

	// ErrInvalidSize is returned when a mask envelope declares an unusable size.
	ErrInvalidSize = errors.New("rle: invalid mask size")
)
