package transcode

import "encoding/binary"

// At returns code unit i of s, decoded with byte order E.
// Panics if i is past the view's length, even when the underlying buffer
// would have room for the read.
func At[E ByteOrder](s UnalignedU16Slice, i int) uint16 {
	if i >= s.n {
		panic("transcode: unit index past end of u16 view")
	}
	var e E
	return e.Uint16(s.buf[i*2:])
}

// CopyBMPTo copies code units of src into dst, swapping byte order as
// needed, stopping at the first surrogate. dst must hold at least
// src.Len() units. found=true reports the surrogate and its unit offset;
// the surrogate itself is not copied. found=false means the whole view was
// copied cleanly and at equals src.Len().
func CopyBMPTo[E ByteOrder](src UnalignedU16Slice, dst []uint16) (surrogate uint16, at int, found bool) {
	if src.n > len(dst) {
		panic("transcode: destination shorter than u16 view")
	}
	var e E
	for i := 0; i < src.n; i++ {
		unit := e.Uint16(src.buf[i*2:])
		if inRange16(unit, 0xD800, 0xE000) {
			return unit, i, true
		}
		dst[i] = unit
	}
	return 0, src.n, false
}

// CopyBasicLatinToASCII copies min(src.Len(), len(dst)) units as single
// bytes while every unit stays below 0x80. Four units at a time are tested
// with one 64-bit mask before the per-unit loop takes over.
// goOn=false: the whole prefix copied, n units moved. goOn=true: unit is
// the first value above 0x7F, at offset n, and is not consumed.
func CopyBasicLatinToASCII[E ByteOrder](src UnalignedU16Slice, dst []byte) (n int, unit uint16, goOn bool) {
	var e E
	length := min(src.n, len(dst))
	mask := e.nonLatinMask()
	i := 0
	for i+4 <= length {
		if binary.LittleEndian.Uint64(src.buf[i*2:])&mask != 0 {
			break
		}
		dst[i] = byte(e.Uint16(src.buf[i*2:]))
		dst[i+1] = byte(e.Uint16(src.buf[i*2+2:]))
		dst[i+2] = byte(e.Uint16(src.buf[i*2+4:]))
		dst[i+3] = byte(e.Uint16(src.buf[i*2+6:]))
		i += 4
	}
	for ; i < length; i++ {
		u := e.Uint16(src.buf[i*2:])
		if u > 0x7F {
			return i, u, true
		}
		dst[i] = byte(u)
	}
	return length, 0, false
}

// ConvertUTF16ToUTF8 transcodes src into dst, bulk-copying ASCII runs and
// encoding 2/3/4-byte sequences otherwise, resolving surrogate pairs by
// peeking one unit ahead. The loop keeps four bytes of destination slack so
// a non-ASCII scalar is only consumed once its output is known to fit.
// Returns units read, bytes written, and unpaired=true when an unpaired
// surrogate stopped the conversion; the offending unit counts as read and
// classification is the caller's decision.
func ConvertUTF16ToUTF8[E ByteOrder](src UnalignedU16Slice, dst []byte) (read, written int, unpaired bool) {
	if len(dst) < 4 {
		return 0, 0, false
	}
	srcPos, dstPos := 0, 0
	srcLen := src.Len()
	dstCap := len(dst) - 3
outer:
	for {
		n, nonASCII, goOn := CopyBasicLatinToASCII[E](src.Tail(srcPos), dst[dstPos:])
		if !goOn {
			return srcPos + n, dstPos + n, false
		}
		srcPos += n
		dstPos += n
		if dstPos >= dstCap {
			break
		}
		srcPos++
		for {
			if sub := nonASCII - 0xD800; sub > 0xDFFF-0xD800 {
				if nonASCII < 0x800 {
					dst[dstPos] = byte(nonASCII>>6) | 0xC0
					dst[dstPos+1] = byte(nonASCII&0x3F) | 0x80
					dstPos += 2
				} else {
					dst[dstPos] = byte(nonASCII>>12) | 0xE0
					dst[dstPos+1] = byte(nonASCII>>6&0x3F) | 0x80
					dst[dstPos+2] = byte(nonASCII&0x3F) | 0x80
					dstPos += 3
				}
			} else if sub <= 0xDBFF-0xD800 {
				if srcPos == srcLen {
					return srcPos, dstPos, true
				}
				second := At[E](src, srcPos)
				if second-0xDC00 > 0xDFFF-0xDC00 {
					return srcPos, dstPos, true
				}
				srcPos++
				point := uint32(nonASCII)<<10 + uint32(second) - surrogateOffset
				dst[dstPos] = byte(point>>18) | 0xF0
				dst[dstPos+1] = byte(point>>12&0x3F) | 0x80
				dst[dstPos+2] = byte(point>>6&0x3F) | 0x80
				dst[dstPos+3] = byte(point&0x3F) | 0x80
				dstPos += 4
			} else {
				return srcPos, dstPos, true
			}
			if dstPos >= dstCap || srcPos == srcLen {
				break outer
			}
			u := At[E](src, srcPos)
			srcPos++
			if u > 0x7F {
				nonASCII = u
				continue
			}
			dst[dstPos] = byte(u)
			dstPos++
			continue outer
		}
	}
	return srcPos, dstPos, false
}
