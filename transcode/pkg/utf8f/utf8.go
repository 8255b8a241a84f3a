// Package utf8f validates and converts UTF-8 in bulk for the transcoding
// fast paths. Validation is strict: overlong forms, surrogate code points
// and values above U+10FFFF are rejected at their lead byte.
package utf8f

import (
	"encoding/binary"

	"github.com/tekert/golang-transcode/transcode/pkg/asciif"
)

// ValidUpTo returns the length of the longest valid UTF-8 prefix of b.
// A truncated sequence at the end of the buffer counts as invalid from its
// lead byte, so streaming callers can carry the tail over to the next chunk.
func ValidUpTo(b []byte) int {
	i := 0
	n := len(b)
	for i < n {
		c := b[i]
		if c < 0x80 {
			if i+8 <= n && binary.LittleEndian.Uint64(b[i:])&0x8080808080808080 == 0 {
				i += 8
				continue
			}
			i++
			continue
		}
		switch {
		case c < 0xC2:
			// continuation byte or overlong two-byte lead
			return i
		case c < 0xE0:
			if i+1 >= n || b[i+1]&0xC0 != 0x80 {
				return i
			}
			i += 2
		case c < 0xF0:
			if i+2 >= n {
				return i
			}
			lower, upper := byte(0x80), byte(0xBF)
			switch c {
			case 0xE0:
				lower = 0xA0 // overlong
			case 0xED:
				upper = 0x9F // surrogate
			}
			if b[i+1] < lower || b[i+1] > upper || b[i+2]&0xC0 != 0x80 {
				return i
			}
			i += 3
		case c < 0xF5:
			if i+3 >= n {
				return i
			}
			lower, upper := byte(0x80), byte(0xBF)
			switch c {
			case 0xF0:
				lower = 0x90 // overlong
			case 0xF4:
				upper = 0x8F // above U+10FFFF
			}
			if b[i+1] < lower || b[i+1] > upper || b[i+2]&0xC0 != 0x80 || b[i+3]&0xC0 != 0x80 {
				return i
			}
			i += 4
		default:
			return i
		}
	}
	return i
}

// ConvertToUTF16UpToInvalid converts src into dst until the first invalid
// or incomplete sequence or until either buffer runs out, whichever comes
// first. Returns bytes read and code units written; an astral scalar is
// only consumed when both of its units fit.
func ConvertToUTF16UpToInvalid(dst []uint16, src []byte) (read, written int) {
	i, j := 0, 0
	n, m := len(src), len(dst)
	for i < n && j < m {
		k, lead, found := asciif.Widen(dst[j:], src[i:])
		i += k
		j += k
		if !found {
			return i, j
		}
		switch {
		case lead < 0xC2:
			return i, j
		case lead < 0xE0:
			if i+1 >= n || src[i+1]&0xC0 != 0x80 {
				return i, j
			}
			dst[j] = uint16(lead&0x1F)<<6 | uint16(src[i+1]&0x3F)
			i += 2
			j++
		case lead < 0xF0:
			if i+2 >= n {
				return i, j
			}
			lower, upper := byte(0x80), byte(0xBF)
			switch lead {
			case 0xE0:
				lower = 0xA0
			case 0xED:
				upper = 0x9F
			}
			if src[i+1] < lower || src[i+1] > upper || src[i+2]&0xC0 != 0x80 {
				return i, j
			}
			dst[j] = uint16(lead&0xF)<<12 | uint16(src[i+1]&0x3F)<<6 | uint16(src[i+2]&0x3F)
			i += 3
			j++
		case lead < 0xF5:
			if i+3 >= n || j+1 >= m {
				return i, j
			}
			lower, upper := byte(0x80), byte(0xBF)
			switch lead {
			case 0xF0:
				lower = 0x90
			case 0xF4:
				upper = 0x8F
			}
			if src[i+1] < lower || src[i+1] > upper || src[i+2]&0xC0 != 0x80 || src[i+3]&0xC0 != 0x80 {
				return i, j
			}
			point := uint32(lead&0x7)<<18 | uint32(src[i+1]&0x3F)<<12 |
				uint32(src[i+2]&0x3F)<<6 | uint32(src[i+3]&0x3F)
			dst[j] = uint16(0xD7C0 + point>>10)
			dst[j+1] = uint16(0xDC00 + point&0x3FF)
			i += 4
			j += 2
		default:
			return i, j
		}
	}
	return i, j
}
