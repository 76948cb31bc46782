package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonical(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "1.4.0", expected: "v1.4.0"},
		{input: "v1.4", expected: "v1.4.0"},
		{input: " 2.0.1 ", expected: "v2.0.1"},
		{input: "v1.2.3+build.7", expected: "v1.2.3"},
		{input: "v1.2.3-rc.1", expected: "v1.2.3-rc.1"},
		{input: "dev", expected: "dev"},
		{input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Canonical(tt.input))
		})
	}
}

func TestString_DefaultsToDev(t *testing.T) {
	assert.Equal(t, "dev", String())
}
