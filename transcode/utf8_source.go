package transcode

import "github.com/tekert/golang-transcode/transcode/pkg/asciif"

// UTF8Source yields one Unicode scalar per read from a buffer already
// known to hold valid UTF-8; construction from a string is what upholds
// that. Decoding trusts the validity and never re-checks continuation
// bytes.
type UTF8Source struct {
	slice  []byte
	pos    int
	oldPos int
}

func NewUTF8Source(src string) *UTF8Source {
	return &UTF8Source{slice: []byte(src)}
}

// CheckAvailable returns a read handle when at least one byte remains.
func (s *UTF8Source) CheckAvailable() (UTF8ReadHandle, bool) {
	if s.pos < len(s.slice) {
		return UTF8ReadHandle{s}, true
	}
	return UTF8ReadHandle{}, false
}

func (s *UTF8Source) read() rune {
	s.oldPos = s.pos
	unit := s.slice[s.pos]
	if unit < 0x80 {
		s.pos++
		return rune(unit)
	}
	if unit < 0xE0 {
		point := rune(unit&0x1F)<<6 | rune(s.slice[s.pos+1]&0x3F)
		s.pos += 2
		return point
	}
	if unit < 0xF0 {
		point := rune(unit&0xF)<<12 | rune(s.slice[s.pos+1]&0x3F)<<6 |
			rune(s.slice[s.pos+2]&0x3F)
		s.pos += 3
		return point
	}
	point := rune(unit&0x7)<<18 | rune(s.slice[s.pos+1]&0x3F)<<12 |
		rune(s.slice[s.pos+2]&0x3F)<<6 | rune(s.slice[s.pos+3]&0x3F)
	s.pos += 4
	return point
}

func (s *UTF8Source) readEnum() Unicode {
	s.oldPos = s.pos
	return Unicode(s.read())
}

func (s *UTF8Source) unread() int {
	s.pos = s.oldPos
	return s.pos
}

// Consumed returns the number of bytes read so far.
func (s *UTF8Source) Consumed() int { return s.pos }

// nextNonASCII decodes the multi-byte sequence whose lead byte sits at the
// cursor and consumes all of it. Valid input means the continuations are
// present and in range.
func (s *UTF8Source) nextNonASCII(lead byte) NonASCII {
	if lead < 0xE0 {
		point := rune(lead&0x1F)<<6 | rune(s.slice[s.pos+1]&0x3F)
		s.pos += 2
		return NonASCII(point)
	}
	if lead < 0xF0 {
		point := rune(lead&0xF)<<12 | rune(s.slice[s.pos+1]&0x3F)<<6 |
			rune(s.slice[s.pos+2]&0x3F)
		s.pos += 3
		return NonASCII(point)
	}
	point := rune(lead&0x7)<<18 | rune(s.slice[s.pos+1]&0x3F)<<12 |
		rune(s.slice[s.pos+2]&0x3F)<<6 | rune(s.slice[s.pos+3]&0x3F)
	s.pos += 4
	return NonASCII(point)
}

// CopyASCIIToCheckSpaceOne copies ASCII bytes into dst until one side runs
// out or a non-ASCII lead shows up. goOn=true hands back the decoded
// scalar plus a handle proving one byte of room, which the copy boundary
// already guarantees; otherwise the stop carries the pending result and
// the exact final positions.
func (s *UTF8Source) CopyASCIIToCheckSpaceOne(dst *ByteDestination) (stop EncodeStop, c NonASCII, h ByteOneHandle, goOn bool) {
	srcRem := s.slice[s.pos:]
	dstRem := dst.slice[dst.pos:]
	pending := EncoderInputEmpty
	length := len(srcRem)
	if len(dstRem) < len(srcRem) {
		pending = EncoderOutputFull
		length = len(dstRem)
	}
	n, lead, found := asciif.Copy(dstRem[:length], srcRem[:length])
	if !found {
		s.pos += length
		dst.pos += length
		return EncodeStop{pending, s.pos, dst.pos}, 0, ByteOneHandle{}, false
	}
	s.pos += n
	dst.pos += n
	return EncodeStop{}, s.nextNonASCII(lead), ByteOneHandle{dst}, true
}

// CopyASCIIToCheckSpaceTwo is CopyASCIIToCheckSpaceOne with a two-byte
// capacity class. The lead is only consumed once the room is proven, so a
// full destination leaves the scalar intact for the next call.
func (s *UTF8Source) CopyASCIIToCheckSpaceTwo(dst *ByteDestination) (stop EncodeStop, c NonASCII, h ByteTwoHandle, goOn bool) {
	srcRem := s.slice[s.pos:]
	dstRem := dst.slice[dst.pos:]
	pending := EncoderInputEmpty
	length := len(srcRem)
	if len(dstRem) < len(srcRem) {
		pending = EncoderOutputFull
		length = len(dstRem)
	}
	n, lead, found := asciif.Copy(dstRem[:length], srcRem[:length])
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
	return EncodeStop{}, s.nextNonASCII(lead), ByteTwoHandle{dst}, true
}

// CopyASCIIToCheckSpaceFour is CopyASCIIToCheckSpaceOne with a four-byte
// capacity class, for destinations whose longest form takes four bytes.
func (s *UTF8Source) CopyASCIIToCheckSpaceFour(dst *ByteDestination) (stop EncodeStop, c NonASCII, h ByteFourHandle, goOn bool) {
	srcRem := s.slice[s.pos:]
	dstRem := dst.slice[dst.pos:]
	pending := EncoderInputEmpty
	length := len(srcRem)
	if len(dstRem) < len(srcRem) {
		pending = EncoderOutputFull
		length = len(dstRem)
	}
	n, lead, found := asciif.Copy(dstRem[:length], srcRem[:length])
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
	return EncodeStop{}, s.nextNonASCII(lead), ByteFourHandle{dst}, true
}

// UTF8ReadHandle proves one byte is available. Single-use.
type UTF8ReadHandle struct {
	source *UTF8Source
}

// Read consumes the handle, returning one scalar and the rollback handle.
func (h UTF8ReadHandle) Read() (rune, UTF8UnreadHandle) {
	return h.source.read(), UTF8UnreadHandle{h.source}
}

// ReadEnum is Read with the classification-preserving return type.
func (h UTF8ReadHandle) ReadEnum() (Unicode, UTF8UnreadHandle) {
	return h.source.readEnum(), UTF8UnreadHandle{h.source}
}

func (h UTF8ReadHandle) Consumed() int { return h.source.Consumed() }

// UTF8UnreadHandle undoes or commits the read that produced it.
type UTF8UnreadHandle struct {
	source *UTF8Source
}

// Unread rolls the cursor back to the start of the sequence just read.
func (h UTF8UnreadHandle) Unread() int { return h.source.unread() }

func (h UTF8UnreadHandle) Commit() *UTF8Source { return h.source }

func (h UTF8UnreadHandle) Consumed() int { return h.source.Consumed() }
