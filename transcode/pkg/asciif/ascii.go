// Package asciif implements the bulk ASCII copies under the transcoding
// fast paths: plain bytes, byte to UTF-16 widening and UTF-16 to byte
// narrowing. Eight units at a time are tested with 64-bit masks before the
// per-unit loop takes over; the per-unit loop is the reference the block
// path is differential-tested against.
package asciif

import "encoding/binary"

const asciiMask = 0x8080808080808080

// Copy moves bytes from src to dst until a non-ASCII byte shows up or
// min(len(src), len(dst)) bytes moved. found=true reports the offending
// byte at offset n; n bytes were copied either way and the offender is not
// consumed. found=false means the whole prefix copied and n is its length.
func Copy(dst, src []byte) (n int, nonASCII byte, found bool) {
	length := min(len(src), len(dst))
	i := 0
	for i+8 <= length {
		if binary.LittleEndian.Uint64(src[i:])&asciiMask != 0 {
			break
		}
		copy(dst[i:i+8], src[i:i+8])
		i += 8
	}
	for ; i < length; i++ {
		if src[i] > 0x7F {
			return i, src[i], true
		}
		dst[i] = src[i]
	}
	return length, 0, false
}

// Widen copies ASCII bytes into UTF-16 code units, with the same contract
// as Copy.
func Widen(dst []uint16, src []byte) (n int, nonASCII byte, found bool) {
	length := min(len(src), len(dst))
	i := 0
	for i+8 <= length {
		if binary.LittleEndian.Uint64(src[i:])&asciiMask != 0 {
			break
		}
		for k := 0; k < 8; k++ {
			dst[i+k] = uint16(src[i+k])
		}
		i += 8
	}
	for ; i < length; i++ {
		if src[i] > 0x7F {
			return i, src[i], true
		}
		dst[i] = uint16(src[i])
	}
	return length, 0, false
}

// Narrow copies basic-latin UTF-16 code units into single bytes, stopping
// at the first unit above 0x7F with the same contract as Copy.
func Narrow(dst []byte, src []uint16) (n int, nonLatin uint16, found bool) {
	length := min(len(src), len(dst))
	i := 0
	for i+8 <= length && basicLatin8(src[i:]) {
		for k := 0; k < 8; k++ {
			dst[i+k] = byte(src[i+k])
		}
		i += 8
	}
	for ; i < length; i++ {
		if src[i] > 0x7F {
			return i, src[i], true
		}
		dst[i] = byte(src[i])
	}
	return length, 0, false
}
