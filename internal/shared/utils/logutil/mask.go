package logutil

import (
	"strings"
	"unicode/utf8"
)

// MaskEmail hides the local part of a recipient address in log lines,
// keeping its first character: "alice@example.org" -> "a***@example.org".
func MaskEmail(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok || domain == "" {
		return "***"
	}
	r, size := utf8.DecodeRuneInString(local)
	if r == utf8.RuneError && size <= 1 {
		return "***@" + domain
	}
	return local[:size] + "***@" + domain
}
