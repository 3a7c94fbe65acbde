package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		max      int
		expected string
	}{
		{
			name:     "Shorter than max",
			input:    "hello",
			max:      10,
			expected: "hello",
		},
		{
			name:     "Exactly max",
			input:    "hello",
			max:      5,
			expected: "hello",
		},
		{
			name:     "Longer than max",
			input:    "hello world",
			max:      5,
			expected: "hello...",
		},
		{
			name:     "Multibyte runes",
			input:    "Zürich Straße",
			max:      6,
			expected: "Zürich...",
		},
		{
			name:     "Zero max",
			input:    "hello",
			max:      0,
			expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Truncate(tc.input, tc.max))
		})
	}
}

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "123 Main St, Austin", CollapseWhitespace("  123 Main\tSt,\n Austin  "))
	assert.Equal(t, "", CollapseWhitespace(" \n\t "))
}
