package extractors

import (
	"regexp"
	"strings"

	"github.com/getzep/contactner/pkg/models"
)

var (
	addressBlockPattern = regexp.MustCompile(`(?i)Address[:\s]*([\w\s,.]+)`)
	roleLinePattern     = regexp.MustCompile(`(?i)^\s*role\b`)
	streetPattern       = regexp.MustCompile(`\A(\d{1,5}(?:[ \t]+[A-Za-z][A-Za-z.]*)+)`)
	floorPattern        = regexp.MustCompile(`(?i)\b(\d+(?:st|nd|rd|th)[ \t]+Floor)\b`)
	cityStatePattern    = regexp.MustCompile(
		`([A-Za-z][A-Za-z .]*?),[ \t]*([A-Z]{2})[ \t]+(\d{5}(?:-\d{4})?),[ \t]*([A-Za-z][A-Za-z .]*)`,
	)
)

// AddressExtractor finds the block following an "Address" label and breaks it
// into street, floor, city, state and country. The street is only taken when
// the block starts with a house number.
type AddressExtractor struct{}

func (e AddressExtractor) Name() string { return "address" }

func (e AddressExtractor) Extract(_ []models.EntitySpan, text string) models.ContactRecord {
	block := addressBlock(text)
	if block == "" {
		return models.ContactRecord{}
	}

	record := models.ContactRecord{Address: block}

	if m := streetPattern.FindStringSubmatch(block); m != nil {
		record.Street = strings.TrimSpace(m[1])
	}
	if m := floorPattern.FindStringSubmatch(block); m != nil {
		record.Floor = m[1]
	}
	if m := cityStatePattern.FindStringSubmatch(block); m != nil {
		record.City = strings.TrimSpace(m[1])
		record.State = m[2]
		// m[3] is the zip code
		record.Country = strings.TrimRight(strings.TrimSpace(m[4]), " .")
	}

	return record
}

// addressBlock returns the text after the first "Address" label, stopping
// before a line that starts with "Role" and before the label of the next
// "Key: value" line.
func addressBlock(text string) string {
	loc := addressBlockPattern.FindStringSubmatchIndex(text)
	if loc == nil {
		return ""
	}
	captured := text[loc[2]:loc[3]]
	stoppedAtLabel := loc[3] < len(text) && text[loc[3]] == ':'

	lines := make([]string, 0)
	for _, line := range strings.Split(captured, "\n") {
		if roleLinePattern.MatchString(line) {
			stoppedAtLabel = false
			break
		}
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if stoppedAtLabel && len(lines) > 1 {
		lines = lines[:len(lines)-1]
	}

	return strings.Join(lines, "\n")
}
