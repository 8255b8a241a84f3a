package transcode

import (
	"testing"

	"github.com/0xrawsec/toast"
)

func TestByteSourceProtocol(t *testing.T) {
	tt := toast.FromT(t)

	src := NewByteSource([]byte{0x41, 0x42})

	rh, ok := src.CheckAvailable()
	tt.Assert(ok)
	b, uh := rh.Read()
	tt.Assert(b == 0x41)
	tt.Assert(uh.Consumed() == 1)

	// Roll back and read the same byte again.
	tt.Assert(uh.Unread() == 0)
	rh, ok = src.CheckAvailable()
	tt.Assert(ok)
	b, uh = rh.Read()
	tt.Assert(b == 0x41)
	src = uh.Commit()

	rh, ok = src.CheckAvailable()
	tt.Assert(ok)
	b, _ = rh.Read()
	tt.Assert(b == 0x42)

	_, ok = src.CheckAvailable()
	tt.Assert(!ok)
	tt.Assert(src.Consumed() == 2)
}

func TestUTF8SourceRead(t *testing.T) {
	tt := toast.FromT(t)

	// 41 42 C3 A9: "AB" followed by é.
	src := NewUTF8Source("ABé")

	rh, ok := src.CheckAvailable()
	tt.Assert(ok)
	c, _ := rh.Read()
	tt.Assert(c == 'A')

	rh, _ = src.CheckAvailable()
	c, _ = rh.Read()
	tt.Assert(c == 'B')

	rh, _ = src.CheckAvailable()
	c, uh := rh.Read()
	tt.Assert(c == 0xE9)
	tt.Assert(uh.Consumed() == 4)

	_, ok = src.CheckAvailable()
	tt.Assert(!ok)
	tt.Assert(src.Consumed() == 4)
}

func TestUTF8SourceUnreadSpansSequence(t *testing.T) {
	tt := toast.FromT(t)

	src := NewUTF8Source("\U0001F600A") // 4-byte sequence then 'A'

	rh, _ := src.CheckAvailable()
	c, uh := rh.Read()
	tt.Assert(c == 0x1F600)
	tt.Assert(src.Consumed() == 4)

	// Unread restores the cursor to the start of the whole sequence.
	tt.Assert(uh.Unread() == 0)

	rh, _ = src.CheckAvailable()
	c, _ = rh.Read()
	tt.Assert(c == 0x1F600)

	rh, _ = src.CheckAvailable()
	u, _ := rh.ReadEnum()
	tt.Assert(u == 'A')
	tt.Assert(u.ASCII())
}

func TestUTF16SourceReadPairs(t *testing.T) {
	tt := toast.FromT(t)

	src := NewUTF16Source([]uint16{0x41, 0xD83D, 0xDE00, 0x4F60})

	rh, _ := src.CheckAvailable()
	c, _ := rh.Read()
	tt.Assert(c == 'A')

	rh, _ = src.CheckAvailable()
	c, uh := rh.Read()
	tt.Assert(c == 0x1F600)
	tt.Assert(src.Consumed() == 3)

	// Unread rolls back both units of the pair.
	tt.Assert(uh.Unread() == 1)
	rh, _ = src.CheckAvailable()
	c, _ = rh.Read()
	tt.Assert(c == 0x1F600)

	rh, _ = src.CheckAvailable()
	c, _ = rh.Read()
	tt.Assert(c == 0x4F60)

	_, ok := src.CheckAvailable()
	tt.Assert(!ok)
}

func TestUTF16SourceUnpairedSurrogates(t *testing.T) {
	tt := toast.FromT(t)

	tests := []struct {
		name  string
		input []uint16
		want  []rune
	}{
		{"LoneHigh", []uint16{0xD800}, []rune{0xFFFD}},
		{"LoneLow", []uint16{0xDC00}, []rune{0xFFFD}},
		{"HighThenASCII", []uint16{0xD800, 0x41}, []rune{0xFFFD, 'A'}},
		{"HighThenHigh", []uint16{0xD800, 0xD800, 0xDC00}, []rune{0xFFFD, 0x10000}},
		{"LowThenPair", []uint16{0xDC00, 0xD83D, 0xDE00}, []rune{0xFFFD, 0x1F600}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			src := NewUTF16Source(tc.input)
			var got []rune
			for {
				rh, ok := src.CheckAvailable()
				if !ok {
					break
				}
				c, _ := rh.Read()
				got = append(got, c)
			}
			tt.Assert(len(got) == len(tc.want), "length mismatch: got %v, want %v", got, tc.want)
			for i := range got {
				tt.Assert(got[i] == tc.want[i], "scalar %d: got %X, want %X", i, got[i], tc.want[i])
			}
		})
	}
}

func TestByteDestinationCapacity(t *testing.T) {
	tt := toast.FromT(t)

	for capacity := 0; capacity <= 5; capacity++ {
		d := NewByteDestination(make([]byte, capacity))
		_, one := d.CheckSpaceOne()
		_, two := d.CheckSpaceTwo()
		_, three := d.CheckSpaceThree()
		_, four := d.CheckSpaceFour()
		tt.Assert(one == (capacity >= 1), "cap %d one", capacity)
		tt.Assert(two == (capacity >= 2), "cap %d two", capacity)
		tt.Assert(three == (capacity >= 3), "cap %d three", capacity)
		tt.Assert(four == (capacity >= 4), "cap %d four", capacity)
	}

	d := NewByteDestination(make([]byte, 4))
	h4, ok := d.CheckSpaceFour()
	tt.Assert(ok)
	h4.WriteFour(0xF0, 0x9F, 0x98, 0x80)
	tt.Assert(d.Written() == 4)
	_, ok = d.CheckSpaceOne()
	tt.Assert(!ok)

	d = NewByteDestination(make([]byte, 3))
	h3, ok := d.CheckSpaceThree()
	tt.Assert(ok)
	tt.Assert(h3.WriteThreeReturnWritten(0xE4, 0xBD, 0xA0) == 3)
}

func TestUTF16DestinationCapacity(t *testing.T) {
	tt := toast.FromT(t)

	// One free slot fits a BMP scalar but never an astral one.
	d := NewUTF16Destination(make([]uint16, 1))
	_, ok := d.CheckSpaceAstral()
	tt.Assert(!ok)
	tt.Assert(d.Written() == 0)

	bh, ok := d.CheckSpaceBMP()
	tt.Assert(ok)
	bh.WriteBMP(0x4F60)
	tt.Assert(d.Written() == 1)
	_, ok = d.CheckSpaceBMP()
	tt.Assert(!ok)

	d = NewUTF16Destination(make([]uint16, 2))
	ah, ok := d.CheckSpaceAstral()
	tt.Assert(ok)
	ah.WriteAstral(0x1F600)
	tt.Assert(d.Written() == 2)
	tt.Assert(d.slice[0] == 0xD83D && d.slice[1] == 0xDE00)
}

func TestUTF8DestinationCapacity(t *testing.T) {
	tt := toast.FromT(t)

	for capacity := 0; capacity <= 5; capacity++ {
		d := NewUTF8Destination(make([]byte, capacity))
		_, bmp := d.CheckSpaceBMP()
		_, astral := d.CheckSpaceAstral()
		tt.Assert(bmp == (capacity >= 3), "cap %d bmp", capacity)
		tt.Assert(astral == (capacity >= 4), "cap %d astral", capacity)
	}

	d := NewUTF8Destination(make([]byte, 8))
	bh, _ := d.CheckSpaceBMP()
	bh.WriteASCII('A')
	tt.Assert(d.Written() == 1)
	bh, _ = d.CheckSpaceBMP()
	bh.WriteMidBMP(0xE9)
	tt.Assert(d.Written() == 3)
	bh, _ = d.CheckSpaceBMP()
	bh.WriteUpperBMP(0x4F60)
	tt.Assert(d.Written() == 6)
	tt.Assert(string(d.slice[:6]) == "Aé你")
}

func TestUTF8DestinationSurrogatePair(t *testing.T) {
	tt := toast.FromT(t)

	d := NewUTF8Destination(make([]byte, 8))
	ah, ok := d.CheckSpaceAstral()
	tt.Assert(ok)
	ah.WriteSurrogatePair(0xD83D, 0xDE00)
	tt.Assert(string(d.slice[:d.Written()]) == "\U0001F600")
}

func TestCopyASCIIFromByteSource(t *testing.T) {
	tt := toast.FromT(t)

	// Long ASCII run so the block path engages, then a two-byte lead.
	input := append([]byte("abcdefghijklmnop"), 0xC3, 0xA9, 'z')

	src := NewByteSource(input)
	d := NewUTF16Destination(make([]uint16, 32))
	stop, lead, h, goOn := d.CopyASCIIFromCheckSpaceBMP(src)
	_ = stop
	tt.Assert(goOn)
	tt.Assert(lead == 0xC3)
	tt.Assert(src.Consumed() == 17) // run plus the lead byte
	tt.Assert(d.Written() == 16)
	h.WriteBMPExclASCII(0xE9)
	tt.Assert(d.Written() == 17)

	// Destination exhausts first.
	src = NewByteSource([]byte("abcdef"))
	d = NewUTF16Destination(make([]uint16, 3))
	stop, _, _, goOn = d.CopyASCIIFromCheckSpaceBMP(src)
	tt.Assert(!goOn)
	tt.Assert(stop.Result == DecoderOutputFull)
	tt.Assert(stop.Read == 3 && stop.Written == 3)

	// Source exhausts first.
	src = NewByteSource([]byte("abc"))
	d = NewUTF16Destination(make([]uint16, 8))
	stop, _, _, goOn = d.CopyASCIIFromCheckSpaceBMP(src)
	tt.Assert(!goOn)
	tt.Assert(stop.Result == DecoderInputEmpty)
	tt.Assert(stop.Read == 3 && stop.Written == 3)
}

func TestCopyASCIIFromCheckSpaceAstralRecheck(t *testing.T) {
	tt := toast.FromT(t)

	// The non-ASCII byte lands with exactly one destination slot left, not
	// enough for an astral pair: the lead must stay unconsumed.
	src := NewByteSource([]byte{'a', 'b', 'c', 0xF0})
	d := NewUTF16Destination(make([]uint16, 4))
	stop, _, _, goOn := d.CopyASCIIFromCheckSpaceAstral(src)
	tt.Assert(!goOn)
	tt.Assert(stop.Result == DecoderOutputFull)
	tt.Assert(src.Consumed() == 3)
	tt.Assert(d.Written() == 3)

	// With room for the pair the lead is consumed and handed over.
	src = NewByteSource([]byte{'a', 0xF0})
	d = NewUTF16Destination(make([]uint16, 4))
	_, lead, h, goOn := d.CopyASCIIFromCheckSpaceAstral(src)
	tt.Assert(goOn)
	tt.Assert(lead == 0xF0)
	tt.Assert(src.Consumed() == 2)
	h.WriteAstral(0x1F600)
	tt.Assert(d.Written() == 3)
}

func TestCopyASCIIToByteDestination(t *testing.T) {
	tt := toast.FromT(t)

	// UTF-16 source into a byte destination with a two-byte capacity class.
	src := NewUTF16Source([]uint16{'h', 'i', 0xE9, 'x'})
	d := NewByteDestination(make([]byte, 8))
	stop, c, h, goOn := src.CopyASCIIToCheckSpaceTwo(d)
	_ = stop
	tt.Assert(goOn)
	tt.Assert(c == 0xE9)
	tt.Assert(!c.Astral())
	tt.Assert(src.Consumed() == 3)
	h.WriteTwo(0xC3, 0xA9)
	tt.Assert(d.Written() == 4)

	// A surrogate pair comes out as one astral scalar.
	src = NewUTF16Source([]uint16{'a', 0xD83D, 0xDE00})
	d = NewByteDestination(make([]byte, 8))
	_, c, _, goOn = src.CopyASCIIToCheckSpaceFour(d)
	tt.Assert(goOn)
	tt.Assert(c == 0x1F600)
	tt.Assert(c.Astral())
	tt.Assert(src.Consumed() == 3)

	// An unpaired surrogate degrades to the replacement character.
	src = NewUTF16Source([]uint16{'a', 0xDC00, 'b'})
	d = NewByteDestination(make([]byte, 8))
	_, c, _, goOn = src.CopyASCIIToCheckSpaceFour(d)
	tt.Assert(goOn)
	tt.Assert(c == 0xFFFD)
	tt.Assert(src.Consumed() == 2)
}

func TestCopyASCIIToCheckSpaceRecheck(t *testing.T) {
	tt := toast.FromT(t)

	// Non-ASCII unit found with one byte of room left: not enough for the
	// two-byte class, so the unit stays unconsumed.
	src := NewUTF16Source([]uint16{'a', 'b', 0xE9})
	d := NewByteDestination(make([]byte, 3))
	stop, _, _, goOn := src.CopyASCIIToCheckSpaceTwo(d)
	tt.Assert(!goOn)
	tt.Assert(stop.Result == EncoderOutputFull)
	tt.Assert(src.Consumed() == 2)
	tt.Assert(d.Written() == 2)

	// UTF-8 source behaves the same, leaving the whole sequence intact.
	src8 := NewUTF8Source("abé")
	d = NewByteDestination(make([]byte, 3))
	stop, _, _, goOn = src8.CopyASCIIToCheckSpaceTwo(d)
	tt.Assert(!goOn)
	tt.Assert(stop.Result == EncoderOutputFull)
	tt.Assert(src8.Consumed() == 2)
}

func TestCopyASCIIFromUTF8Source(t *testing.T) {
	tt := toast.FromT(t)

	src := NewUTF8Source("hello你")
	d := NewByteDestination(make([]byte, 16))
	stop, c, _, goOn := src.CopyASCIIToCheckSpaceOne(d)
	_ = stop
	tt.Assert(goOn)
	tt.Assert(c == 0x4F60)
	// The whole three-byte sequence is consumed along with the run.
	tt.Assert(src.Consumed() == 8)
	tt.Assert(d.Written() == 5)

	src = NewUTF8Source("a\U0001F600")
	d = NewByteDestination(make([]byte, 16))
	_, c, h, goOn := src.CopyASCIIToCheckSpaceFour(d)
	tt.Assert(goOn)
	tt.Assert(c == 0x1F600)
	tt.Assert(c.Astral())
	h.WriteFour(0xF0, 0x9F, 0x98, 0x80)
	tt.Assert(d.Written() == 5)
}

func TestCopyUTF8UpToInvalidFrom(t *testing.T) {
	tt := toast.FromT(t)

	// Valid prefix then a lone continuation byte.
	input := append([]byte("oké"), 0x80, 'z')
	src := NewByteSource(input)
	d := NewUTF8Destination(make([]byte, 16))
	d.CopyUTF8UpToInvalidFrom(src)
	tt.Assert(src.Consumed() == 4)
	tt.Assert(d.Written() == 4)
	tt.Assert(string(d.slice[:4]) == "oké")

	// Same input through the UTF-16 destination converts instead of copying.
	src = NewByteSource(input)
	d16 := NewUTF16Destination(make([]uint16, 16))
	d16.CopyUTF8UpToInvalidFrom(src)
	tt.Assert(src.Consumed() == 4)
	tt.Assert(d16.Written() == 3)
	tt.Assert(d16.slice[2] == 0xE9)
}

func TestCopyUTF16IntoUTF16(t *testing.T) {
	tt := toast.FromT(t)

	// Little-endian bytes for "A", U+1F600; the odd trailing byte is left.
	src := NewByteSource([]byte{0x41, 0x00, 0x3D, 0xD8, 0x00, 0xDE, 0x7A})
	d := NewUTF16Destination(make([]uint16, 8))
	read, written, unpaired := CopyUTF16IntoUTF16[LittleEndian](d, src)
	tt.Assert(!unpaired)
	tt.Assert(read == 6 && written == 3, "got read=%d written=%d", read, written)
	tt.Assert(d.slice[0] == 0x41 && d.slice[1] == 0xD83D && d.slice[2] == 0xDE00)
	tt.Assert(src.Consumed() == 6)

	// A trailing high surrogate is held back for the next chunk.
	src = NewByteSource([]byte{0x41, 0x00, 0x3D, 0xD8})
	d = NewUTF16Destination(make([]uint16, 8))
	read, written, unpaired = CopyUTF16IntoUTF16[LittleEndian](d, src)
	tt.Assert(!unpaired)
	tt.Assert(read == 2 && written == 1)

	// A lone low surrogate is consumed and flagged.
	src = NewByteSource([]byte{0x00, 0xDC})
	d = NewUTF16Destination(make([]uint16, 8))
	read, written, unpaired = CopyUTF16IntoUTF16[LittleEndian](d, src)
	tt.Assert(unpaired)
	tt.Assert(read == 2 && written == 0)

	// Big-endian input.
	src = NewByteSource([]byte{0x00, 0x41, 0xD8, 0x3D, 0xDE, 0x00})
	d = NewUTF16Destination(make([]uint16, 8))
	read, written, unpaired = CopyUTF16IntoUTF16[BigEndian](d, src)
	tt.Assert(!unpaired)
	tt.Assert(read == 6 && written == 3)
	tt.Assert(d.slice[1] == 0xD83D && d.slice[2] == 0xDE00)
}

func TestCopyUTF16IntoUTF16DestinationLimit(t *testing.T) {
	tt := toast.FromT(t)

	// Destination of 1 unit limits the view: the pair does not fit, so only
	// the leading ASCII unit moves.
	src := NewByteSource([]byte{0x41, 0x00, 0x3D, 0xD8, 0x00, 0xDE})
	d := NewUTF16Destination(make([]uint16, 1))
	read, written, unpaired := CopyUTF16IntoUTF16[LittleEndian](d, src)
	tt.Assert(!unpaired)
	tt.Assert(read == 2 && written == 1)
	tt.Assert(d.slice[0] == 0x41)
}

func TestCopyUTF16IntoUTF8(t *testing.T) {
	tt := toast.FromT(t)

	src := NewByteSource([]byte{0x41, 0x00, 0x60, 0x4F, 0x3D, 0xD8, 0x00, 0xDE})
	d := NewUTF8Destination(make([]byte, 16))
	read, written, unpaired := CopyUTF16IntoUTF8[LittleEndian](d, src)
	tt.Assert(!unpaired)
	tt.Assert(read == 8, "read=%d", read)
	tt.Assert(string(d.slice[:written]) == "A你\U0001F600")

	// A lone low surrogate is consumed, flagged and writes nothing.
	src = NewByteSource([]byte{0x00, 0xDC})
	d = NewUTF8Destination(make([]byte, 16))
	read, written, unpaired = CopyUTF16IntoUTF8[LittleEndian](d, src)
	tt.Assert(unpaired)
	tt.Assert(read == 2 && written == 0)
	tt.Assert(d.Written() == 0)

	// A trailing high surrogate is held back for the next chunk.
	src = NewByteSource([]byte{0x41, 0x00, 0x3D, 0xD8})
	d = NewUTF8Destination(make([]byte, 16))
	read, written, unpaired = CopyUTF16IntoUTF8[LittleEndian](d, src)
	tt.Assert(!unpaired)
	tt.Assert(read == 2 && written == 1)
	tt.Assert(d.slice[0] == 'A')
}
