package transcode

import "github.com/tekert/golang-transcode/transcode/pkg/asciif"

// UTF16Source yields one Unicode scalar per read from a buffer of UTF-16
// code units, resolving surrogate pairs on the fly. The position before
// the last read is kept so Unread restores exactly one logical read, even
// when it spanned two units.
type UTF16Source struct {
	slice  []uint16
	pos    int
	oldPos int
}

func NewUTF16Source(src []uint16) *UTF16Source {
	return &UTF16Source{slice: src}
}

// CheckAvailable returns a read handle when at least one unit remains.
func (s *UTF16Source) CheckAvailable() (UTF16ReadHandle, bool) {
	if s.pos < len(s.slice) {
		return UTF16ReadHandle{s}, true
	}
	return UTF16ReadHandle{}, false
}

// read decodes one scalar. An unpaired surrogate decodes to U+FFFD; use
// readEnum when the substitution has to stay detectable.
func (s *UTF16Source) read() rune {
	s.oldPos = s.pos
	unit := s.slice[s.pos]
	s.pos++
	sub := unit - 0xD800
	if sub > 0xDFFF-0xD800 {
		return rune(unit)
	}
	if sub <= 0xDBFF-0xD800 && s.pos < len(s.slice) {
		second := s.slice[s.pos]
		if second-0xDC00 <= 0xDFFF-0xDC00 {
			s.pos++
			return rune(uint32(unit)<<10 + uint32(second) - surrogateOffset)
		}
	}
	return '�'
}

// readEnum decodes like read but returns the Unicode classification, so
// the U+FFFD substitution stays visible as a plain value.
func (s *UTF16Source) readEnum() Unicode {
	s.oldPos = s.pos
	unit := s.slice[s.pos]
	s.pos++
	if unit < 0x80 {
		return Unicode(unit)
	}
	sub := unit - 0xD800
	if sub > 0xDFFF-0xD800 {
		return Unicode(unit)
	}
	if sub <= 0xDBFF-0xD800 && s.pos < len(s.slice) {
		second := s.slice[s.pos]
		if second-0xDC00 <= 0xDFFF-0xDC00 {
			s.pos++
			return Unicode(uint32(unit)<<10 + uint32(second) - surrogateOffset)
		}
	}
	return Unicode(0xFFFD)
}

func (s *UTF16Source) unread() int {
	s.pos = s.oldPos
	return s.pos
}

// Consumed returns the number of units read so far.
func (s *UTF16Source) Consumed() int { return s.pos }

// classify resolves the non-basic-latin unit the ASCII fast path stopped
// at, pairing a high surrogate with a following low one when present.
// Unpaired surrogates degrade to U+FFFD. The unit itself was already
// consumed by the caller.
func (s *UTF16Source) classify(unit uint16) NonASCII {
	sub := unit - 0xD800
	if sub > 0xDFFF-0xD800 {
		return NonASCII(unit)
	}
	if sub <= 0xDBFF-0xD800 && s.pos < len(s.slice) {
		second := s.slice[s.pos]
		if second-0xDC00 <= 0xDFFF-0xDC00 {
			s.pos++
			return NonASCII(uint32(unit)<<10 + uint32(second) - surrogateOffset)
		}
	}
	return NonASCII(0xFFFD)
}

// CopyASCIIToCheckSpaceTwo copies basic-latin units into dst as ASCII
// bytes until one side runs out or a non-ASCII scalar shows up. goOn=true
// hands back the scalar plus a handle proving two bytes of room; otherwise
// the stop carries the pending result and the exact final positions.
func (s *UTF16Source) CopyASCIIToCheckSpaceTwo(dst *ByteDestination) (stop EncodeStop, c NonASCII, h ByteTwoHandle, goOn bool) {
	srcRem := s.slice[s.pos:]
	dstRem := dst.slice[dst.pos:]
	pending := EncoderInputEmpty
	length := len(srcRem)
	if len(dstRem) < len(srcRem) {
		pending = EncoderOutputFull
		length = len(dstRem)
	}
	n, unit, found := asciif.Narrow(dstRem[:length], srcRem[:length])
	if !found {
		s.pos += length
		dst.pos += length
		return EncodeStop{pending, s.pos, dst.pos}, 0, ByteTwoHandle{}, false
	}
	s.pos += n
	dst.pos += n
	if dst.pos+1 >= len(dst.slice) {
		return EncodeStop{EncoderOutputFull, s.pos, dst.pos}, 0, ByteTwoHandle{}, false
	}
	s.pos++
	return EncodeStop{}, s.classify(unit), ByteTwoHandle{dst}, true
}

// CopyASCIIToCheckSpaceFour is CopyASCIIToCheckSpaceTwo with a four-byte
// capacity class, for destinations whose non-ASCII forms take up to four
// bytes.
func (s *UTF16Source) CopyASCIIToCheckSpaceFour(dst *ByteDestination) (stop EncodeStop, c NonASCII, h ByteFourHandle, goOn bool) {
	srcRem := s.slice[s.pos:]
	dstRem := dst.slice[dst.pos:]
	pending := EncoderInputEmpty
	length := len(srcRem)
	if len(dstRem) < len(srcRem) {
		pending = EncoderOutputFull
		length = len(dstRem)
	}
	n, unit, found := asciif.Narrow(dstRem[:length], srcRem[:length])
	if !found {
		s.pos += length
		dst.pos += length
		return EncodeStop{pending, s.pos, dst.pos}, 0, ByteFourHandle{}, false
	}
	s.pos += n
	dst.pos += n
	if dst.pos+3 >= len(dst.slice) {
		return EncodeStop{EncoderOutputFull, s.pos, dst.pos}, 0, ByteFourHandle{}, false
	}
	s.pos++
	return EncodeStop{}, s.classify(unit), ByteFourHandle{dst}, true
}

// UTF16ReadHandle proves one unit is available. Single-use.
type UTF16ReadHandle struct {
	source *UTF16Source
}

// Read consumes the handle, returning one scalar and the rollback handle.
func (h UTF16ReadHandle) Read() (rune, UTF16UnreadHandle) {
	return h.source.read(), UTF16UnreadHandle{h.source}
}

// ReadEnum is Read with the classification-preserving return type.
func (h UTF16ReadHandle) ReadEnum() (Unicode, UTF16UnreadHandle) {
	return h.source.readEnum(), UTF16UnreadHandle{h.source}
}

func (h UTF16ReadHandle) Consumed() int { return h.source.Consumed() }

// UTF16UnreadHandle undoes or commits the read that produced it.
type UTF16UnreadHandle struct {
	source *UTF16Source
}

// Unread rolls the cursor back over the scalar just read, whether it took
// one unit or two.
func (h UTF16UnreadHandle) Unread() int { return h.source.unread() }

func (h UTF16UnreadHandle) Commit() *UTF16Source { return h.source }

func (h UTF16UnreadHandle) Consumed() int { return h.source.Consumed() }
