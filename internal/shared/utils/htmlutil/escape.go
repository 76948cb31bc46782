// Package htmlutil encodes display strings for embedding in HTML mail bodies.
package htmlutil

import (
	"strconv"
	"strings"
)

// Escape replaces every rune in U+00A0..U+9999 and the characters '<', '>'
// and '&' with a decimal numeric character reference.
//
// Escape is not idempotent: the '&' of an existing reference is encoded again,
// so a string must be escaped exactly once.
func Escape(s string) string {
	if !needsEscape(s) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 16)
	for _, r := range s {
		if !escapable(r) {
			b.WriteRune(r)
			continue
		}
		b.WriteString("&#")
		b.WriteString(strconv.Itoa(int(r)))
		b.WriteByte(';')
	}
	return b.String()
}

func escapable(r rune) bool {
	return r == '<' || r == '>' || r == '&' || (r >= 0xA0 && r <= 0x9999)
}

func needsEscape(s string) bool {
	for _, r := range s {
		if escapable(r) {
			return true
		}
	}
	return false
}
