package transcode

// ByteDestination writes encoder output into a fixed-capacity byte buffer.
// Space is proven before every write: CheckSpaceOne through CheckSpaceFour
// return a handle only when the buffer has room for that many bytes.
// A full destination is a normal outcome, not an error.
type ByteDestination struct {
	slice []byte
	pos   int
}

func NewByteDestination(dst []byte) *ByteDestination {
	return &ByteDestination{slice: dst}
}

// CheckSpaceOne returns a handle proving room for one byte.
func (d *ByteDestination) CheckSpaceOne() (ByteOneHandle, bool) {
	if d.pos < len(d.slice) {
		return ByteOneHandle{d}, true
	}
	return ByteOneHandle{}, false
}

// CheckSpaceTwo returns a handle proving room for two bytes.
func (d *ByteDestination) CheckSpaceTwo() (ByteTwoHandle, bool) {
	if d.pos+1 < len(d.slice) {
		return ByteTwoHandle{d}, true
	}
	return ByteTwoHandle{}, false
}

// CheckSpaceThree returns a handle proving room for three bytes.
func (d *ByteDestination) CheckSpaceThree() (ByteThreeHandle, bool) {
	if d.pos+2 < len(d.slice) {
		return ByteThreeHandle{d}, true
	}
	return ByteThreeHandle{}, false
}

// CheckSpaceFour returns a handle proving room for four bytes.
func (d *ByteDestination) CheckSpaceFour() (ByteFourHandle, bool) {
	if d.pos+3 < len(d.slice) {
		return ByteFourHandle{d}, true
	}
	return ByteFourHandle{}, false
}

// Written returns the number of bytes written so far.
func (d *ByteDestination) Written() int { return d.pos }

func (d *ByteDestination) writeOne(first byte) {
	d.slice[d.pos] = first
	d.pos++
}

func (d *ByteDestination) writeTwo(first, second byte) {
	d.slice[d.pos] = first
	d.slice[d.pos+1] = second
	d.pos += 2
}

func (d *ByteDestination) writeThree(first, second, third byte) {
	d.slice[d.pos] = first
	d.slice[d.pos+1] = second
	d.slice[d.pos+2] = third
	d.pos += 3
}

func (d *ByteDestination) writeFour(first, second, third, fourth byte) {
	d.slice[d.pos] = first
	d.slice[d.pos+1] = second
	d.slice[d.pos+2] = third
	d.slice[d.pos+3] = fourth
	d.pos += 4
}

// ByteOneHandle proves room for one byte. Single-use.
type ByteOneHandle struct {
	dest *ByteDestination
}

func (h ByteOneHandle) Written() int { return h.dest.Written() }

func (h ByteOneHandle) WriteOne(first byte) { h.dest.writeOne(first) }

// ByteTwoHandle proves room for two bytes; writing fewer is allowed.
type ByteTwoHandle struct {
	dest *ByteDestination
}

func (h ByteTwoHandle) Written() int { return h.dest.Written() }

func (h ByteTwoHandle) WriteOne(first byte) { h.dest.writeOne(first) }

func (h ByteTwoHandle) WriteTwo(first, second byte) { h.dest.writeTwo(first, second) }

// ByteThreeHandle proves room for three bytes; writing fewer is allowed.
type ByteThreeHandle struct {
	dest *ByteDestination
}

func (h ByteThreeHandle) Written() int { return h.dest.Written() }

func (h ByteThreeHandle) WriteOne(first byte) { h.dest.writeOne(first) }

func (h ByteThreeHandle) WriteTwo(first, second byte) { h.dest.writeTwo(first, second) }

func (h ByteThreeHandle) WriteThree(first, second, third byte) {
	h.dest.writeThree(first, second, third)
}

// WriteThreeReturnWritten writes three bytes and reports the new position,
// for callers that finish a chunk on this write.
func (h ByteThreeHandle) WriteThreeReturnWritten(first, second, third byte) int {
	h.dest.writeThree(first, second, third)
	return h.dest.Written()
}

// ByteFourHandle proves room for four bytes; writing fewer is allowed.
type ByteFourHandle struct {
	dest *ByteDestination
}

func (h ByteFourHandle) Written() int { return h.dest.Written() }

func (h ByteFourHandle) WriteOne(first byte) { h.dest.writeOne(first) }

func (h ByteFourHandle) WriteTwo(first, second byte) { h.dest.writeTwo(first, second) }

func (h ByteFourHandle) WriteFour(first, second, third, fourth byte) {
	h.dest.writeFour(first, second, third, fourth)
}
