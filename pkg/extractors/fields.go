package extractors

import (
	"fmt"

	"dario.cat/mergo"

	"github.com/getzep/contactner/pkg/models"
)

// DefaultNameScoreThreshold is the minimum (exclusive) PER score kept for names.
const DefaultNameScoreThreshold = 0.7

// DefaultFieldExtractors returns the standard extractor chain. Earlier
// extractors win when two of them fill the same field.
func DefaultFieldExtractors(nameThreshold float64) []models.FieldExtractor {
	return []models.FieldExtractor{
		NameExtractor{Threshold: nameThreshold},
		PhoneExtractor{},
		AddressExtractor{},
	}
}

// ExtractFields builds a ContactRecord from the merged entity spans and the
// original document text by running chain in order. With an empty chain the
// default chain is used. It has no side effects: the same input always yields
// the same record.
func ExtractFields(
	spans []models.EntitySpan,
	text string,
	chain ...models.FieldExtractor,
) (models.ContactRecord, error) {
	if err := models.ValidateSpans(spans); err != nil {
		return models.ContactRecord{}, err
	}

	if len(chain) == 0 {
		chain = DefaultFieldExtractors(DefaultNameScoreThreshold)
	}

	var record models.ContactRecord
	for _, extractor := range chain {
		partial := extractor.Extract(spans, text)
		if err := mergo.Merge(&record, partial); err != nil {
			return models.ContactRecord{}, fmt.Errorf(
				"failed to merge %s fields: %w", extractor.Name(), err,
			)
		}
	}

	return record, nil
}
