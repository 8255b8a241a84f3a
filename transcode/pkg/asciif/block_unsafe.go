//go:build amd64 || arm64

package asciif

import "unsafe"

// basicLatin8 tests eight code units with two 64-bit words. Unaligned
// 8-byte loads are fine on these targets; src must hold at least 8 units.
//
//go:nocheckptr
func basicLatin8(src []uint16) bool {
	chunks := *(*[2]uint64)(unsafe.Pointer(&src[0]))
	return (chunks[0]|chunks[1])&0xFF80FF80FF80FF80 == 0
}
