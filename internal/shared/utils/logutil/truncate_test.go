package logutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateForLog(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{name: "empty string", input: "", maxLen: 10, expected: ""},
		{name: "zero max", input: "", maxLen: 0, expected: "..."},
		{name: "shorter than max", input: "hello", maxLen: 10, expected: "hello"},
		{name: "equal to max", input: "hello", maxLen: 5, expected: "hello"},
		{name: "longer than max", input: "hello world", maxLen: 5, expected: "hello..."},
		{name: "multibyte runes are kept whole", input: "résumé quotidien", maxLen: 6, expected: "résumé..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateForLog(tt.input, tt.maxLen))
		})
	}
}

func TestMaskEmail(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "alice@example.org", expected: "a***@example.org"},
		{input: "a@example.org", expected: "a***@example.org"},
		{input: "élodie@example.fr", expected: "é***@example.fr"},
		{input: "@example.org", expected: "***@example.org"},
		{input: "not-an-address", expected: "***"},
		{input: "trailing@", expected: "***"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, MaskEmail(tt.input))
		})
	}
}
