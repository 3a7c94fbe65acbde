package extractors

import (
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"

	"github.com/getzep/contactner/internal"
)

func TestSegmentText(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "Empty input",
			input:    "",
			expected: []string{},
		},
		{
			name:     "Whitespace only",
			input:    " \n\t\n  \r\n",
			expected: []string{},
		},
		{
			name:     "Trims and drops blank lines",
			input:    "  John Smith \n\n\tEngineer\r\n",
			expected: []string{"John Smith", "Engineer"},
		},
		{
			name:     "Document",
			input:    internal.TestDocumentText,
			expected: internal.TestDocumentSegments,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, SegmentText(tc.input))
		})
	}
}

func TestSegmentTextInvariants(t *testing.T) {
	faker := gofakeit.New(42)

	for i := 0; i < 50; i++ {
		var lines, nonEmpty []string
		n := faker.Number(0, 12)
		for j := 0; j < n; j++ {
			var line string
			switch faker.Number(0, 2) {
			case 0:
				line = ""
			case 1:
				line = "  \t "
			default:
				line = faker.Sentence(faker.Number(1, 6))
				nonEmpty = append(nonEmpty, strings.TrimSpace(line))
				line = "  " + line + " "
			}
			lines = append(lines, line)
		}

		segments := SegmentText(strings.Join(lines, "\n"))

		for _, segment := range segments {
			assert.NotEmpty(t, strings.TrimSpace(segment))
			assert.Equal(t, strings.TrimSpace(segment), segment)
		}
		if len(nonEmpty) == 0 {
			assert.Empty(t, segments)
		} else {
			assert.Equal(t, nonEmpty, segments)
		}
	}
}
