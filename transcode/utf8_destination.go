package transcode

import (
	"github.com/tekert/golang-transcode/transcode/pkg/asciif"
	"github.com/tekert/golang-transcode/transcode/pkg/utf8f"
)

// UTF8Destination writes decoder output as UTF-8 into a fixed-capacity
// byte buffer. CheckSpaceBMP proves room for a three-byte sequence,
// CheckSpaceAstral for a four-byte one, so a sequence can never be split
// across buffer boundaries.
type UTF8Destination struct {
	slice []byte
	pos   int
}

func NewUTF8Destination(dst []byte) *UTF8Destination {
	return &UTF8Destination{slice: dst}
}

// CheckSpaceBMP returns a handle proving room for any BMP scalar.
func (d *UTF8Destination) CheckSpaceBMP() (UTF8BmpHandle, bool) {
	if d.pos+2 < len(d.slice) {
		return UTF8BmpHandle{d}, true
	}
	return UTF8BmpHandle{}, false
}

// CheckSpaceAstral returns a handle proving room for any scalar at all.
func (d *UTF8Destination) CheckSpaceAstral() (UTF8AstralHandle, bool) {
	if d.pos+3 < len(d.slice) {
		return UTF8AstralHandle{d}, true
	}
	return UTF8AstralHandle{}, false
}

// Written returns the number of bytes written so far.
func (d *UTF8Destination) Written() int { return d.pos }

func (d *UTF8Destination) writeCodeUnit(u byte) {
	d.slice[d.pos] = u
	d.pos++
}

func (d *UTF8Destination) writeASCII(c rune) {
	d.writeCodeUnit(byte(c))
}

func (d *UTF8Destination) writeBMP(c rune) {
	switch {
	case c < 0x80:
		d.writeASCII(c)
	case c < 0x800:
		d.writeMidBMP(c)
	default:
		d.writeUpperBMP(c)
	}
}

func (d *UTF8Destination) writeMidBMP(c rune) {
	d.writeCodeUnit(byte(c>>6) | 0xC0)
	d.writeCodeUnit(byte(c&0x3F) | 0x80)
}

func (d *UTF8Destination) writeUpperBMP(c rune) {
	d.writeCodeUnit(byte(c>>12) | 0xE0)
	d.writeCodeUnit(byte(c>>6&0x3F) | 0x80)
	d.writeCodeUnit(byte(c&0x3F) | 0x80)
}

func (d *UTF8Destination) writeBMPExclASCII(c rune) {
	if c < 0x800 {
		d.writeMidBMP(c)
	} else {
		d.writeUpperBMP(c)
	}
}

func (d *UTF8Destination) writeAstral(c rune) {
	d.writeCodeUnit(byte(c>>18) | 0xF0)
	d.writeCodeUnit(byte(c>>12&0x3F) | 0x80)
	d.writeCodeUnit(byte(c>>6&0x3F) | 0x80)
	d.writeCodeUnit(byte(c&0x3F) | 0x80)
}

func (d *UTF8Destination) writeSurrogatePair(high, low uint16) {
	d.writeAstral(rune(uint32(high)<<10 + uint32(low) - surrogateOffset))
}

func (d *UTF8Destination) writeBig5Combination(base, combining uint16) {
	d.writeMidBMP(rune(base))
	d.writeMidBMP(rune(combining))
}

// CopyASCIIFromCheckSpaceBMP copies ASCII bytes from src until one side
// runs out or a non-ASCII byte shows up. goOn=true hands back the raw lead
// byte plus a handle proving room for a BMP sequence; otherwise the stop
// carries the pending result and the exact final positions.
func (d *UTF8Destination) CopyASCIIFromCheckSpaceBMP(src *ByteSource) (stop DecodeStop, b byte, h UTF8BmpHandle, goOn bool) {
	srcRem := src.slice[src.pos:]
	dstRem := d.slice[d.pos:]
	pending := DecoderInputEmpty
	length := len(srcRem)
	if len(dstRem) < len(srcRem) {
		pending = DecoderOutputFull
		length = len(dstRem)
	}
	n, lead, found := asciif.Copy(dstRem[:length], srcRem[:length])
	if !found {
		src.pos += length
		d.pos += length
		return DecodeStop{pending, src.pos, d.pos}, 0, UTF8BmpHandle{}, false
	}
	src.pos += n
	d.pos += n
	if d.pos+2 >= len(d.slice) {
		return DecodeStop{DecoderOutputFull, src.pos, d.pos}, 0, UTF8BmpHandle{}, false
	}
	src.pos++
	return DecodeStop{}, lead, UTF8BmpHandle{d}, true
}

// CopyASCIIFromCheckSpaceAstral is CopyASCIIFromCheckSpaceBMP with an
// astral capacity class: the returned handle proves room for four bytes.
func (d *UTF8Destination) CopyASCIIFromCheckSpaceAstral(src *ByteSource) (stop DecodeStop, b byte, h UTF8AstralHandle, goOn bool) {
	srcRem := src.slice[src.pos:]
	dstRem := d.slice[d.pos:]
	pending := DecoderInputEmpty
	length := len(srcRem)
	if len(dstRem) < len(srcRem) {
		pending = DecoderOutputFull
		length = len(dstRem)
	}
	n, lead, found := asciif.Copy(dstRem[:length], srcRem[:length])
	if !found {
		src.pos += length
		d.pos += length
		return DecodeStop{pending, src.pos, d.pos}, 0, UTF8AstralHandle{}, false
	}
	src.pos += n
	d.pos += n
	if d.pos+3 >= len(d.slice) {
		return DecodeStop{DecoderOutputFull, src.pos, d.pos}, 0, UTF8AstralHandle{}, false
	}
	src.pos++
	return DecodeStop{}, lead, UTF8AstralHandle{d}, true
}

// CopyUTF8UpToInvalidFrom copies bytes verbatim up to the longest valid
// UTF-8 prefix that fits. The invalid byte is not consumed; resolving it
// is the caller's decision.
func (d *UTF8Destination) CopyUTF8UpToInvalidFrom(src *ByteSource) {
	srcRem := src.slice[src.pos:]
	dstRem := d.slice[d.pos:]
	minLen := min(len(srcRem), len(dstRem))
	valid := utf8f.ValidUpTo(srcRem[:minLen])
	copy(dstRem[:valid], srcRem[:valid])
	src.pos += valid
	d.pos += valid
}

// CopyUTF16IntoUTF8 transcodes code units from an unaligned, possibly
// byte-swapped source into UTF-8 until either buffer runs out or an
// unpaired surrogate shows up. A trailing high surrogate is left in the
// source for the next chunk rather than converted. Returns the total
// bytes consumed and written, and unpaired=true when a malformed sequence
// stopped the conversion; the malformed unit counts as consumed so the
// caller can resume past it.
func CopyUTF16IntoUTF8[E ByteOrder](d *UTF8Destination, src *ByteSource) (read, written int, unpaired bool) {
	srcRem := src.slice[src.pos:]
	dstRem := d.slice[d.pos:]
	view := NewUnalignedU16Slice(srcRem, len(srcRem)/2)
	if view.Len() == 0 {
		return src.pos, d.pos, false
	}
	if inRange16(At[E](view, view.Len()-1), 0xD800, 0xDC00) {
		view = view.TrimLast()
	}
	r, w, hadError := ConvertUTF16ToUTF8[E](view, dstRem)
	src.pos += r * 2
	d.pos += w
	return src.pos, d.pos, hadError
}

// UTF8BmpHandle proves room for up to three bytes. Single-use; the write
// methods state the scalar range the caller already knows, picking the
// sequence length without re-testing the full range.
type UTF8BmpHandle struct {
	dest *UTF8Destination
}

func (h UTF8BmpHandle) Written() int { return h.dest.Written() }

// WriteASCII writes a scalar below 0x80 as one byte.
func (h UTF8BmpHandle) WriteASCII(c rune) { h.dest.writeASCII(c) }

// WriteBMP writes any BMP scalar, branching on its range.
func (h UTF8BmpHandle) WriteBMP(c rune) { h.dest.writeBMP(c) }

// WriteBMPExclASCII writes a BMP scalar known to be 0x80 or above.
func (h UTF8BmpHandle) WriteBMPExclASCII(c rune) { h.dest.writeBMPExclASCII(c) }

// WriteMidBMP writes a scalar in [0x80, 0x800) as two bytes.
func (h UTF8BmpHandle) WriteMidBMP(c rune) { h.dest.writeMidBMP(c) }

// WriteUpperBMP writes a BMP scalar at 0x800 or above as three bytes.
func (h UTF8BmpHandle) WriteUpperBMP(c rune) { h.dest.writeUpperBMP(c) }

// UTF8AstralHandle proves room for up to four bytes; shorter writes are
// allowed.
type UTF8AstralHandle struct {
	dest *UTF8Destination
}

func (h UTF8AstralHandle) Written() int { return h.dest.Written() }

func (h UTF8AstralHandle) WriteASCII(c rune) { h.dest.writeASCII(c) }

func (h UTF8AstralHandle) WriteBMP(c rune) { h.dest.writeBMP(c) }

func (h UTF8AstralHandle) WriteBMPExclASCII(c rune) { h.dest.writeBMPExclASCII(c) }

func (h UTF8AstralHandle) WriteMidBMP(c rune) { h.dest.writeMidBMP(c) }

func (h UTF8AstralHandle) WriteUpperBMP(c rune) { h.dest.writeUpperBMP(c) }

// WriteAstral writes a scalar above the BMP as four bytes.
func (h UTF8AstralHandle) WriteAstral(c rune) { h.dest.writeAstral(c) }

// WriteSurrogatePair combines an already-decomposed pair back into its
// scalar and writes the four-byte sequence.
func (h UTF8AstralHandle) WriteSurrogatePair(high, low uint16) {
	h.dest.writeSurrogatePair(high, low)
}

// WriteBig5Combination writes the two-scalar combining sequences of Big5.
func (h UTF8AstralHandle) WriteBig5Combination(base, combining uint16) {
	h.dest.writeBig5Combination(base, combining)
}
