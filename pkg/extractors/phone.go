package extractors

import (
	"regexp"
	"strings"

	"github.com/getzep/contactner/pkg/models"
)

var (
	// optional international prefix, optional area code, then two digit groups
	phonePattern = regexp.MustCompile(
		`(?:\+?\d{1,3}[ .\-]?)?(?:\(\d{1,4}\)[ .\-]?|\d{1,4}[ .\-])?\d{3,4}[ .\-]?\d{3,4}`,
	)
	// seven digit number written with a separator, e.g. 555-1234
	localPhonePattern = regexp.MustCompile(`^\d{3}[ .\-]\d{4}$`)
	phoneStripPattern = regexp.MustCompile(`[^\d+()\- ]`)
	nonDigitPattern   = regexp.MustCompile(`\D`)
	// shortest country code that leaves 3+3+(3|4) digits
	phoneGroupingPattern = regexp.MustCompile(`^(\d{1,3}?)(\d{3})(\d{3})(\d{3,4})$`)
)

// minPhoneDigits is the digit count a bare number needs to be taken as a phone.
const minPhoneDigits = 10

// PhoneExtractor takes the first phone-like number in the original text.
// NER output is ignored.
type PhoneExtractor struct{}

func (e PhoneExtractor) Name() string { return "phone" }

func (e PhoneExtractor) Extract(_ []models.EntitySpan, text string) models.ContactRecord {
	for _, match := range phonePattern.FindAllString(text, -1) {
		if !isPhoneCandidate(match) {
			continue
		}
		cleaned := strings.TrimSpace(phoneStripPattern.ReplaceAllString(match, ""))
		return models.ContactRecord{Phone: FormatPhone(cleaned)}
	}
	return models.ContactRecord{}
}

// isPhoneCandidate rejects digit runs such as year ranges (2019-2023) and
// ZIP+4 codes (78701-1234). A match counts when it has a "+" or an area code
// in parentheses, has at least minPhoneDigits digits, or is a local 3-4 number.
func isPhoneCandidate(match string) bool {
	if strings.ContainsAny(match, "+(") {
		return true
	}
	if len(nonDigitPattern.ReplaceAllString(match, "")) >= minPhoneDigits {
		return true
	}
	return localPhonePattern.MatchString(match)
}

// FormatPhone regroups the digits of a number as "+C (AAA) EEE-LLLL".
//
// The country code takes as few digits (1-3) as possible while leaving three
// digits for the area, three for the exchange and three or four for the line,
// so only 10 to 13 digits are regrouped. A 10 digit number therefore comes out
// with a one digit country code and a three digit line: 123-456-7890 becomes
// +1 (234) 567-890. Any other digit count is returned unchanged.
func FormatPhone(cleaned string) string {
	digits := nonDigitPattern.ReplaceAllString(cleaned, "")
	if !phoneGroupingPattern.MatchString(digits) {
		return cleaned
	}
	return phoneGroupingPattern.ReplaceAllString(digits, "+$1 ($2) $3-$4")
}
