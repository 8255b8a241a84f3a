// Package transcode provides the zero-copy, bounds-checked conversion core
// shared by per-charset encoder and decoder state machines.
//
// It converts between raw bytes, UTF-16 code units (either endianness) and
// UTF-8 through Source and Destination cursors over caller-supplied,
// fixed-capacity buffers. A cursor never reads past the end of its source
// and never writes past the end of its destination: every read is preceded
// by CheckAvailable and every write by a CheckSpace* call that returns a
// short-lived handle proving the capacity class of the value about to be
// written. Bulk entry points skip the per-unit protocol while the input is
// ASCII and hand control back at the first value that needs it.
//
// Typical decode loop:
//
//	src := transcode.NewByteSource(input)
//	dst := transcode.NewUTF16Destination(output)
//	for {
//	    rh, ok := src.CheckAvailable()
//	    if !ok {
//	        break // input empty, src.Consumed() bytes decoded
//	    }
//	    b, un := rh.Read()
//	    h, ok := dst.CheckSpaceBMP()
//	    if !ok {
//	        un.Unread() // output full, retry the byte with a fresh buffer
//	        break
//	    }
//	    h.WriteBMP(table[b])
//	    un.Commit()
//	}
//
// Running out of input or output space is a normal outcome reported through
// return values, never an error. Panics are reserved for contract
// violations such as indexing an UnalignedU16Slice past its length.
package transcode
