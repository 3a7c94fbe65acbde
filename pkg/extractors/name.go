package extractors

import (
	"strings"
	"unicode"

	"github.com/getzep/contactner/pkg/models"
)

// NameExtractor joins every confident PER span into a title-cased name.
type NameExtractor struct {
	Threshold float64
}

func (e NameExtractor) Name() string { return "name" }

func (e NameExtractor) Extract(spans []models.EntitySpan, _ string) models.ContactRecord {
	parts := make([]string, 0)
	for _, span := range spans {
		if span.EntityGroup != models.EntityGroupPerson || span.Score <= e.Threshold {
			continue
		}
		if word := titleCase(span.Word); word != "" {
			parts = append(parts, word)
		}
	}
	return models.ContactRecord{Name: strings.TrimSpace(strings.Join(parts, " "))}
}

// titleCase upper-cases the first letter of every whitespace separated word
// and lower-cases the rest.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(strings.ToLower(word))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
