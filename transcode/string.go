package transcode

import "unsafe"

// Cache only small strings, those are the most repeated
const maxCachedUnits = 32

// String converts UTF-16 code units to a Go string, substituting U+FFFD
// for unpaired surrogates. Small inputs go through a sharded cache; name
// and identifier strings repeat heavily enough that the lookup wins over
// reconverting.
func String(units []uint16) string {
	if len(units) == 0 {
		return ""
	}
	usecache := len(units) < maxCachedUnits
	var h uint64
	if usecache {
		// Try cache first
		h = globalStringCache.hash(units)
		if s, ok := globalStringCache.getKey(h); ok {
			return s
		}
	}

	s := decodeString(units)
	if usecache {
		globalStringCache.setKey(h, s)
	}

	return s
}

// decodeString runs the handle protocol over a buffer sized so every
// space check succeeds: three bytes per unit covers BMP scalars, and an
// astral scalar spends four bytes against its two units.
func decodeString(units []uint16) string {
	buf := make([]byte, len(units)*3)
	src := NewUTF16Source(units)
	dst := NewUTF8Destination(buf)
	for {
		rh, ok := src.CheckAvailable()
		if !ok {
			break
		}
		c, _ := rh.Read()
		if c <= 0xFFFF {
			wh, _ := dst.CheckSpaceBMP()
			wh.WriteBMP(c)
		} else {
			wh, _ := dst.CheckSpaceAstral()
			wh.WriteAstral(c)
		}
	}
	n := dst.Written()
	if n == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(buf), n)
}
