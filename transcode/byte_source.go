package transcode

// ByteSource yields the raw bytes of an input buffer one at a time. It
// exclusively borrows the buffer for the duration of one transcoding call;
// the cursor position never passes the buffer length.
type ByteSource struct {
	slice []byte
	pos   int
}

func NewByteSource(src []byte) *ByteSource {
	return &ByteSource{slice: src}
}

// CheckAvailable returns a read handle when at least one byte remains.
// ok=false means the source is exhausted; Consumed reports how far it got.
func (s *ByteSource) CheckAvailable() (ByteReadHandle, bool) {
	if s.pos < len(s.slice) {
		return ByteReadHandle{s}, true
	}
	return ByteReadHandle{}, false
}

func (s *ByteSource) read() byte {
	b := s.slice[s.pos]
	s.pos++
	return b
}

func (s *ByteSource) unread() int {
	s.pos--
	return s.pos
}

// Consumed returns the number of bytes read so far.
func (s *ByteSource) Consumed() int { return s.pos }

// ByteReadHandle proves one byte is available. A handle is single-use:
// call Read once and drop it.
type ByteReadHandle struct {
	source *ByteSource
}

// Read consumes the handle, returning the next byte and the handle that
// can roll the read back.
func (h ByteReadHandle) Read() (byte, ByteUnreadHandle) {
	return h.source.read(), ByteUnreadHandle{h.source}
}

func (h ByteReadHandle) Consumed() int { return h.source.Consumed() }

// ByteUnreadHandle undoes or commits the read that produced it.
type ByteUnreadHandle struct {
	source *ByteSource
}

// Unread moves the cursor back over the byte just read and returns the
// restored position.
func (h ByteUnreadHandle) Unread() int { return h.source.unread() }

// Commit keeps the read and hands the source back.
func (h ByteUnreadHandle) Commit() *ByteSource { return h.source }

func (h ByteUnreadHandle) Consumed() int { return h.source.Consumed() }
