package stego

import (
	"math"

	"lsb-steganography/bitutil"
)

// HeaderBits is the size of the frame header. The header holds the number
// of payload bits, not bytes.
const HeaderBits = bitutil.BitsInUint32

// MaxPayloadBytes is the largest payload whose bit count fits the header.
const MaxPayloadBytes = math.MaxUint32 / bitutil.BitsInByte

// Frame builds the bitstream written into a carrier: the payload's bit
// count as a big-endian 32-bit header, followed by the payload bits.
func Frame(payload []byte) []byte {
	payloadBits := bitutil.BytesToBits(payload)

	frame := make([]byte, 0, HeaderBits+len(payloadBits))
	frame = append(frame, bitutil.Uint32ToBits(uint32(len(payloadBits)))...)
	return append(frame, payloadBits...)
}

// ReadHeader decodes the payload bit count stored in the first HeaderBits
// samples of buffer.
func ReadHeader(buffer []byte) (uint32, error) {
	if len(buffer) < HeaderBits {
		return 0, &FormatError{Samples: len(buffer)}
	}
	return bitutil.BitsToUint32(bitutil.ExtractLSB(buffer[:HeaderBits])), nil
}

// ReadPayloadBits returns the bitLength payload bits that follow the header.
func ReadPayloadBits(buffer []byte, bitLength uint32) ([]byte, error) {
	end := uint64(HeaderBits) + uint64(bitLength)
	if end > uint64(len(buffer)) {
		return nil, &CapacityError{Required: int(end), Available: len(buffer)}
	}
	return bitutil.ExtractLSB(buffer[HeaderBits:end]), nil
}
