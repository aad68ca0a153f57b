// Package stego hides a payload in the least significant bits of a sample
// buffer and reads it back.
package stego

import (
	"lsb-steganography/bitutil"
)

// FrameBits returns the number of samples a frame for a payloadLen byte
// payload occupies.
func FrameBits(payloadLen int) int {
	return HeaderBits + payloadLen*bitutil.BitsInByte
}

// MaxPayload returns the largest payload, in bytes, a buffer of the given
// number of samples can carry.
func MaxPayload(samples int) int {
	if samples < HeaderBits {
		return 0
	}
	return (samples - HeaderBits) / bitutil.BitsInByte
}

// Usage returns the percentage of the buffer a payloadLen byte frame uses.
func Usage(payloadLen, samples int) float64 {
	if samples == 0 {
		return 0
	}
	return float64(FrameBits(payloadLen)) / float64(samples) * 100
}

// Embed writes the frame for payload into the parities of buffer, starting
// at index 0. A sample is moved by one level only when its parity differs
// from the bit it has to carry. Nothing is written when the frame does not
// fit.
func Embed(buffer, payload []byte) error {
	required := uint64(HeaderBits) + uint64(len(payload))*bitutil.BitsInByte
	if required > uint64(len(buffer)) {
		return &CapacityError{Required: int(required), Available: len(buffer)}
	}
	if uint64(len(payload)) > MaxPayloadBytes {
		return ErrPayloadTooLarge
	}

	for i, bit := range Frame(payload) {
		parity := buffer[i] % 2
		switch {
		case bit == 1 && parity == 0:
			buffer[i]++
		case bit == 0 && parity == 1:
			buffer[i]--
		}
	}
	return nil
}

// Extract reads a frame back out of buffer and returns its payload.
func Extract(buffer []byte) ([]byte, error) {
	bitLength, err := ReadHeader(buffer)
	if err != nil {
		return nil, err
	}

	payloadBits, err := ReadPayloadBits(buffer, bitLength)
	if err != nil {
		return nil, err
	}
	return bitutil.BitsToBytes(payloadBits), nil
}
