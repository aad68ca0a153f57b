// Package bitutil converts between bytes, 32-bit integers and bit sequences.
//
// A bit sequence is a []byte holding one bit per element (0 or 1), most
// significant bit first within every byte-aligned group.
package bitutil

const (
	BitsInByte   = 8
	BitsInUint32 = 32
)

// ByteToBits expands b into its 8 bits, e.g. 4 becomes [0 0 0 0 0 1 0 0].
func ByteToBits(b byte) []byte {
	bits := make([]byte, BitsInByte)
	for i := range bits {
		bits[i] = (b >> (BitsInByte - 1 - i)) & 1
	}
	return bits
}

// BitsToByte folds the first 8 bits back into a byte. bits must hold at
// least 8 values.
func BitsToByte(bits []byte) byte {
	var b byte
	for _, bit := range bits[:BitsInByte] {
		b = (b << 1) | (bit & 1)
	}
	return b
}

// Uint32ToBits expands v into its 32 bits.
func Uint32ToBits(v uint32) []byte {
	bits := make([]byte, BitsInUint32)
	for i := range bits {
		bits[i] = byte((v >> (BitsInUint32 - 1 - i)) & 1)
	}
	return bits
}

// BitsToUint32 folds the first 32 bits back into a uint32.
func BitsToUint32(bits []byte) uint32 {
	var v uint32
	for _, bit := range bits[:BitsInUint32] {
		v = (v << 1) | uint32(bit&1)
	}
	return v
}

// BytesToBits expands every byte of data, in order.
func BytesToBits(data []byte) []byte {
	bits := make([]byte, 0, len(data)*BitsInByte)
	for _, b := range data {
		for i := BitsInByte - 1; i >= 0; i-- {
			bits = append(bits, (b>>i)&1)
		}
	}
	return bits
}

// BitsToBytes regroups bits into bytes from the front. A trailing group
// shorter than 8 bits is dropped.
func BitsToBytes(bits []byte) []byte {
	data := make([]byte, 0, len(bits)/BitsInByte)
	for i := 0; i+BitsInByte <= len(bits); i += BitsInByte {
		data = append(data, BitsToByte(bits[i:i+BitsInByte]))
	}
	return data
}

// ExtractLSB returns the parity of every byte of data.
func ExtractLSB(data []byte) []byte {
	bits := make([]byte, len(data))
	for i, b := range data {
		bits[i] = b % 2
	}
	return bits
}
