package transcode

import (
	"github.com/tekert/golang-transcode/transcode/pkg/asciif"
	"github.com/tekert/golang-transcode/transcode/pkg/utf8f"
)

// UTF16Destination writes decoder output into a fixed-capacity buffer of
// UTF-16 code units. CheckSpaceBMP proves room for one unit, CheckSpaceAstral
// for two, so a surrogate pair can never be split across buffer boundaries.
type UTF16Destination struct {
	slice []uint16
	pos   int
}

func NewUTF16Destination(dst []uint16) *UTF16Destination {
	return &UTF16Destination{slice: dst}
}

// CheckSpaceBMP returns a handle proving room for one code unit.
func (d *UTF16Destination) CheckSpaceBMP() (UTF16BmpHandle, bool) {
	if d.pos < len(d.slice) {
		return UTF16BmpHandle{d}, true
	}
	return UTF16BmpHandle{}, false
}

// CheckSpaceAstral returns a handle proving room for a full surrogate pair.
func (d *UTF16Destination) CheckSpaceAstral() (UTF16AstralHandle, bool) {
	if d.pos+1 < len(d.slice) {
		return UTF16AstralHandle{d}, true
	}
	return UTF16AstralHandle{}, false
}

// Written returns the number of code units written so far.
func (d *UTF16Destination) Written() int { return d.pos }

func (d *UTF16Destination) writeCodeUnit(u uint16) {
	d.slice[d.pos] = u
	d.pos++
}

func (d *UTF16Destination) writeASCII(c rune) {
	d.writeCodeUnit(uint16(c))
}

func (d *UTF16Destination) writeBMP(c rune) {
	d.writeCodeUnit(uint16(c))
}

func (d *UTF16Destination) writeAstral(c rune) {
	d.writeCodeUnit(uint16(0xD7C0 + c>>10))
	d.writeCodeUnit(uint16(0xDC00 + c&0x3FF))
}

func (d *UTF16Destination) writeSurrogatePair(high, low uint16) {
	d.writeCodeUnit(high)
	d.writeCodeUnit(low)
}

// writeBig5Combination emits the two-unit BMP combinations Big5 maps a
// single byte pair to.
func (d *UTF16Destination) writeBig5Combination(base, combining uint16) {
	d.writeCodeUnit(base)
	d.writeCodeUnit(combining)
}

// CopyASCIIFromCheckSpaceBMP copies ASCII bytes from src as code units
// until one side runs out or a non-ASCII byte shows up. goOn=true hands
// back the raw lead byte plus a handle proving one unit of room; otherwise the stop
// carries the pending result and the exact final positions.
func (d *UTF16Destination) CopyASCIIFromCheckSpaceBMP(src *ByteSource) (stop DecodeStop, b byte, h UTF16BmpHandle, goOn bool) {
	srcRem := src.slice[src.pos:]
	dstRem := d.slice[d.pos:]
	pending := DecoderInputEmpty
	length := len(srcRem)
	if len(dstRem) < len(srcRem) {
		pending = DecoderOutputFull
		length = len(dstRem)
	}
	n, lead, found := asciif.Widen(dstRem[:length], srcRem[:length])
	if !found {
		src.pos += length
		d.pos += length
		return DecodeStop{pending, src.pos, d.pos}, 0, UTF16BmpHandle{}, false
	}
	src.pos += n
	d.pos += n
	// One unit of room survives the copy: the offending byte was not
	// written, so dstRem had at least one spare slot.
	src.pos++
	return DecodeStop{}, lead, UTF16BmpHandle{d}, true
}

// CopyASCIIFromCheckSpaceAstral is CopyASCIIFromCheckSpaceBMP with an
// astral capacity class: the returned handle proves room for two units.
func (d *UTF16Destination) CopyASCIIFromCheckSpaceAstral(src *ByteSource) (stop DecodeStop, b byte, h UTF16AstralHandle, goOn bool) {
	srcRem := src.slice[src.pos:]
	dstRem := d.slice[d.pos:]
	pending := DecoderInputEmpty
	length := len(srcRem)
	if len(dstRem) < len(srcRem) {
		pending = DecoderOutputFull
		length = len(dstRem)
	}
	n, lead, found := asciif.Widen(dstRem[:length], srcRem[:length])
	if !found {
		src.pos += length
		d.pos += length
		return DecodeStop{pending, src.pos, d.pos}, 0, UTF16AstralHandle{}, false
	}
	src.pos += n
	d.pos += n
	if d.pos+1 >= len(d.slice) {
		return DecodeStop{DecoderOutputFull, src.pos, d.pos}, 0, UTF16AstralHandle{}, false
	}
	src.pos++
	return DecodeStop{}, lead, UTF16AstralHandle{d}, true
}

// CopyUTF8UpToInvalidFrom converts valid UTF-8 from src until the first
// invalid or incomplete sequence or until either buffer runs out. The
// invalid byte is not consumed; resolving it is the caller's decision.
func (d *UTF16Destination) CopyUTF8UpToInvalidFrom(src *ByteSource) {
	read, written := utf8f.ConvertToUTF16UpToInvalid(d.slice[d.pos:], src.slice[src.pos:])
	src.pos += read
	d.pos += written
}

// CopyUTF16IntoUTF16 copies code units from an unaligned, possibly
// byte-swapped source until either buffer runs out or an unpaired
// surrogate shows up. A trailing high surrogate is left in the source for
// the next chunk rather than copied. Returns the total bytes consumed and
// units written, and unpaired=true when a malformed sequence stopped the
// copy; the malformed unit counts as consumed so the caller can resume
// past it.
func CopyUTF16IntoUTF16[E ByteOrder](d *UTF16Destination, src *ByteSource) (read, written int, unpaired bool) {
	srcRem := src.slice[src.pos:]
	dstRem := d.slice[d.pos:]
	view := NewUnalignedU16Slice(srcRem, min(len(srcRem)/2, len(dstRem)))
	if view.Len() > 0 && inRange16(At[E](view, view.Len()-1), 0xD800, 0xDC00) {
		view = view.TrimLast()
	}
	offset := 0
	for {
		surrogate, n, found := CopyBMPTo[E](view.Tail(offset), dstRem[offset:view.Len()])
		offset += n
		if !found {
			src.pos += offset * 2
			d.pos += offset
			return src.pos, d.pos, false
		}
		secondPos := offset + 1
		if surrogate > 0xDBFF || secondPos == view.Len() {
			src.pos += secondPos * 2
			d.pos += offset
			return src.pos, d.pos, true
		}
		second := At[E](view, secondPos)
		if !inRange16(second, 0xDC00, 0xE000) {
			src.pos += secondPos * 2
			d.pos += offset
			return src.pos, d.pos, true
		}
		dstRem[offset] = surrogate
		dstRem[secondPos] = second
		offset += 2
	}
}

// UTF16BmpHandle proves room for one code unit. Single-use; the write
// methods only differ in which scalar ranges they expect, letting call
// sites state what they know about the value.
type UTF16BmpHandle struct {
	dest *UTF16Destination
}

func (h UTF16BmpHandle) Written() int { return h.dest.Written() }

// WriteASCII writes a scalar below 0x80.
func (h UTF16BmpHandle) WriteASCII(c rune) { h.dest.writeASCII(c) }

// WriteBMP writes any BMP scalar.
func (h UTF16BmpHandle) WriteBMP(c rune) { h.dest.writeBMP(c) }

// WriteBMPExclASCII writes a BMP scalar known to be 0x80 or above.
func (h UTF16BmpHandle) WriteBMPExclASCII(c rune) { h.dest.writeBMP(c) }

// WriteMidBMP writes a BMP scalar in [0x800, 0xD800).
func (h UTF16BmpHandle) WriteMidBMP(c rune) { h.dest.writeBMP(c) }

// WriteUpperBMP writes a BMP scalar at 0xE000 or above.
func (h UTF16BmpHandle) WriteUpperBMP(c rune) { h.dest.writeBMP(c) }

// UTF16AstralHandle proves room for two code units; BMP writes taking one
// are allowed.
type UTF16AstralHandle struct {
	dest *UTF16Destination
}

func (h UTF16AstralHandle) Written() int { return h.dest.Written() }

func (h UTF16AstralHandle) WriteASCII(c rune) { h.dest.writeASCII(c) }

func (h UTF16AstralHandle) WriteBMP(c rune) { h.dest.writeBMP(c) }

func (h UTF16AstralHandle) WriteBMPExclASCII(c rune) { h.dest.writeBMP(c) }

func (h UTF16AstralHandle) WriteMidBMP(c rune) { h.dest.writeBMP(c) }

func (h UTF16AstralHandle) WriteUpperBMP(c rune) { h.dest.writeBMP(c) }

// WriteAstral decomposes a scalar above the BMP into its surrogate pair.
func (h UTF16AstralHandle) WriteAstral(c rune) { h.dest.writeAstral(c) }

// WriteSurrogatePair writes an already-decomposed pair.
func (h UTF16AstralHandle) WriteSurrogatePair(high, low uint16) {
	h.dest.writeSurrogatePair(high, low)
}

// WriteBig5Combination writes the two-unit combining sequences of Big5.
func (h UTF16AstralHandle) WriteBig5Combination(base, combining uint16) {
	h.dest.writeBig5Combination(base, combining)
}
