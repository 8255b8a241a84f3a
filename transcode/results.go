package transcode

// DecoderResult is the outcome vocabulary of the decode-side bulk and
// fused operations. This core only ever produces DecoderInputEmpty and
// DecoderOutputFull itself; DecoderMalformed belongs to the per-charset
// layer deciding recovery.
type DecoderResult uint8

const (
	DecoderInputEmpty DecoderResult = iota
	DecoderOutputFull
	DecoderMalformed
)

func (r DecoderResult) String() string {
	switch r {
	case DecoderInputEmpty:
		return "InputEmpty"
	case DecoderOutputFull:
		return "OutputFull"
	case DecoderMalformed:
		return "Malformed"
	}
	return "Unknown"
}

// EncoderResult is the encode-side counterpart of DecoderResult.
type EncoderResult uint8

const (
	EncoderInputEmpty EncoderResult = iota
	EncoderOutputFull
	EncoderUnmappable
)

func (r EncoderResult) String() string {
	switch r {
	case EncoderInputEmpty:
		return "InputEmpty"
	case EncoderOutputFull:
		return "OutputFull"
	case EncoderUnmappable:
		return "Unmappable"
	}
	return "Unknown"
}

// DecodeStop reports why a fused decode-side ASCII copy stopped, together
// with the exact source and destination positions at the stop.
type DecodeStop struct {
	Result  DecoderResult
	Read    int
	Written int
}

// EncodeStop is the encode-side counterpart of DecodeStop.
type EncodeStop struct {
	Result  EncoderResult
	Read    int
	Written int
}

// Unicode is one scalar as returned by ReadEnum: an ASCII byte stays below
// 0x80, everything else is a non-ASCII scalar. Unpaired surrogates surface
// as the replacement character U+FFFD, detectable by comparing against it.
type Unicode rune

// ASCII reports whether the scalar is an ASCII byte.
func (u Unicode) ASCII() bool { return u < 0x80 }

// NonASCII is a scalar above 0x7F handed off when an ASCII fast path stops.
type NonASCII rune

// Astral reports whether the scalar lies above the BMP and therefore needs
// a surrogate pair in UTF-16 or four bytes in UTF-8.
func (n NonASCII) Astral() bool { return n > 0xFFFF }

// BMP returns the scalar as a single UTF-16 code unit. Only meaningful
// when Astral() is false.
func (n NonASCII) BMP() uint16 { return uint16(n) }

// surrogateOffset folds the two surrogate range bases into one constant:
// scalar = (high << 10) + low - surrogateOffset.
const surrogateOffset = (0xD800 << 10) - 0x10000 + 0xDC00
