// Package bytesconv holds the zero-copy conversions used by the parser.
package bytesconv

import (
	"unicode/utf8"
	"unsafe"
)

// String returns a string that shares memory with b.
//
// The returned string is only valid while b is left untouched. Writing to b
// afterwards changes the string, which breaks Go's immutability guarantee.
func String(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// Text is String for byte slices that must hold valid UTF-8. ok is false and
// the string is empty when b is not valid UTF-8.
func Text(b []byte) (s string, ok bool) {
	if !utf8.Valid(b) {
		return "", false
	}
	return String(b), true
}
