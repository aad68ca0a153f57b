package stego

import (
	"errors"
	"fmt"
)

// ErrPayloadTooLarge is returned when the payload's bit count does not fit
// the 32-bit frame header.
var ErrPayloadTooLarge = errors.New("payload exceeds the frame header range")

// CapacityError reports a frame that does not fit its sample buffer, either
// while embedding or when a decoded header points past the buffer's end.
type CapacityError struct {
	Required  int
	Available int
}

func (err *CapacityError) Error() string {
	return fmt.Sprintf("insufficient capacity: frame needs %d samples, buffer has %d", err.Required, err.Available)
}

// FormatError reports a buffer too short to hold a frame header.
type FormatError struct {
	Samples int
}

func (err *FormatError) Error() string {
	return fmt.Sprintf("buffer has %d samples, a frame header needs %d", err.Samples, HeaderBits)
}
