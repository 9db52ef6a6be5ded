// Package position converts between Go string offsets and the UTF-16 code
// unit offsets used by LSP positions.
package position

import (
	"unicode/utf16"
	"unicode/utf8"
)

// UTF16Len returns the length of s in UTF-16 code units. Characters above
// U+FFFF count as two units.
func UTF16Len(s string) int {
	units := 0
	for _, r := range s {
		units += utf16.RuneLen(r)
	}
	return units
}

// ByteOffsetToUTF16 converts a byte offset in s into a UTF-16 code unit
// offset. Offsets inside a multi-byte rune clamp to the start of the rune.
func ByteOffsetToUTF16(s string, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset > len(s) {
		byteOffset = len(s)
	}

	units := 0
	offset := 0
	for offset < len(s) && offset < byteOffset {
		r, size := utf8.DecodeRuneInString(s[offset:])
		if r == utf8.RuneError && size == 1 {
			offset++
			units++
			continue
		}
		if offset+size > byteOffset {
			break
		}
		units += utf16.RuneLen(r)
		offset += size
	}
	return units
}
