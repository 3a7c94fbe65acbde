package extractors

import "strings"

// SegmentText splits text into trimmed, non-empty lines, keeping their order.
func SegmentText(text string) []string {
	segments := make([]string, 0)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		segments = append(segments, line)
	}
	return segments
}
