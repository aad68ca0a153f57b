package bitutil_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"lsb-steganography/bitutil"
)

func TestByteToBits(t *testing.T) {
	req := require.New(t)

	req.Equal([]byte{0, 0, 0, 0, 0, 1, 0, 0}, bitutil.ByteToBits(4))
	req.Equal([]byte{1, 0, 1, 1, 0, 0, 1, 0}, bitutil.ByteToBits(0xB2))
	req.Equal([]byte{0, 0, 0, 0, 0, 0, 0, 0}, bitutil.ByteToBits(0))
	req.Equal([]byte{1, 1, 1, 1, 1, 1, 1, 1}, bitutil.ByteToBits(0xFF))
}

func TestByteRoundTrip(t *testing.T) {
	req := require.New(t)

	for i := 0; i <= math.MaxUint8; i++ {
		b := byte(i)
		req.Equal(b, bitutil.BitsToByte(bitutil.ByteToBits(b)))
	}
}

func TestUint32Bits(t *testing.T) {
	tests := []struct {
		name string
		v    uint32
	}{
		{"zero", 0},
		{"sixteen", 16},
		{"high bit", 1 << 31},
		{"max", math.MaxUint32},
		{"mixed", 0xDEADBEEF},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bits := bitutil.Uint32ToBits(tc.v)
			require.Len(t, bits, 32)
			require.Equal(t, tc.v, bitutil.BitsToUint32(bits))
		})
	}

	bits := bitutil.Uint32ToBits(16)
	require.Equal(t, byte(1), bits[27])
	for i, bit := range bits {
		if i != 27 {
			require.Equal(t, byte(0), bit, "bit %d", i)
		}
	}
}

func TestBytesToBits(t *testing.T) {
	req := require.New(t)

	req.Equal([]byte{
		0, 0, 0, 0, 0, 1, 0, 0,
		0, 0, 0, 0, 1, 0, 0, 0,
	}, bitutil.BytesToBits([]byte{4, 8}))
	req.Empty(bitutil.BytesToBits(nil))

	data := []byte("Hello world!")
	req.Len(bitutil.BytesToBits(data), 8*len(data))
	req.Equal(data, bitutil.BitsToBytes(bitutil.BytesToBits(data)))
}

func TestBitsToBytesDropsPartialGroup(t *testing.T) {
	req := require.New(t)

	bits := []byte{1, 0, 1, 1, 0, 0, 1, 0, 1, 1, 0, 0}
	req.Equal([]byte{0xB2}, bitutil.BitsToBytes(bits))

	req.Empty(bitutil.BitsToBytes([]byte{1, 1, 1}))
	req.Empty(bitutil.BitsToBytes(nil))
}

func TestExtractLSB(t *testing.T) {
	req := require.New(t)

	req.Equal([]byte{0, 1, 0, 1, 1, 0}, bitutil.ExtractLSB([]byte{0, 1, 2, 255, 13, 254}))
	req.Empty(bitutil.ExtractLSB(nil))
}
