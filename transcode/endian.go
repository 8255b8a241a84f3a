package transcode

// LittleEndian and BigEndian are zero-size markers selecting how the bytes
// behind an UnalignedU16Slice combine into UTF-16 code units. They are
// passed as type arguments so the hot loops specialize at the call site;
// a slice never stores its byte order.
type LittleEndian struct{}

func (LittleEndian) Uint16(b []byte) uint16 {
	return uint16(b[0]) | uint16(b[1])<<8
}

// nonLatinMask flags, per 16-bit lane of a 64-bit word read with
// little-endian byte order, any unit above 0x7F.
func (LittleEndian) nonLatinMask() uint64 { return 0xFF80FF80FF80FF80 }

type BigEndian struct{}

func (BigEndian) Uint16(b []byte) uint16 {
	return uint16(b[0])<<8 | uint16(b[1])
}

func (BigEndian) nonLatinMask() uint64 { return 0x80FF80FF80FF80FF }

// ByteOrder constrains the endian type parameter of At, CopyBMPTo and the
// other unaligned UTF-16 operations to the two markers above.
type ByteOrder interface {
	LittleEndian | BigEndian
	Uint16(b []byte) uint16
	nonLatinMask() uint64
}

// UnalignedU16Slice views a byte buffer as a sequence of UTF-16 code units
// without requiring 2-byte alignment. The view borrows the buffer; it is
// only valid while the buffer is.
type UnalignedU16Slice struct {
	buf []byte
	n   int
}

// NewUnalignedU16Slice creates a view of the first units code units of buf.
// Panics if buf holds fewer than units*2 bytes.
func NewUnalignedU16Slice(buf []byte, units int) UnalignedU16Slice {
	if units*2 > len(buf) {
		panic("transcode: u16 view longer than its buffer")
	}
	return UnalignedU16Slice{buf: buf, n: units}
}

// Len returns the number of code units in the view.
func (s UnalignedU16Slice) Len() int { return s.n }

// Tail returns the sub-view starting at unit from. Panics if from is past
// the end of the view.
func (s UnalignedU16Slice) Tail(from int) UnalignedU16Slice {
	if from > s.n {
		panic("transcode: tail past end of u16 view")
	}
	return UnalignedU16Slice{buf: s.buf[from*2:], n: s.n - from}
}

// TrimLast returns the view shortened by one unit. Panics on an empty view.
func (s UnalignedU16Slice) TrimLast() UnalignedU16Slice {
	if s.n == 0 {
		panic("transcode: trim of empty u16 view")
	}
	return UnalignedU16Slice{buf: s.buf, n: s.n - 1}
}

// inRange16 reports lo <= u < hi, relying on unsigned wraparound.
func inRange16(u, lo, hi uint16) bool {
	return u-lo < hi-lo
}
