//go:build !amd64 && !arm64

package asciif

// basicLatin8 tests eight code units at once; src must hold at least 8.
func basicLatin8(src []uint16) bool {
	return src[0]|src[1]|src[2]|src[3]|src[4]|src[5]|src[6]|src[7] < 0x80
}
