package models

import (
	"context"
	"fmt"
	"math"
)

// EntityGroupPerson is the aggregated entity group the NER model uses for people.
const EntityGroupPerson = "PER"

// EntitySpan is one labelled span returned by the NER model with
// aggregation_strategy=simple.
type EntitySpan struct {
	EntityGroup string  `json:"entity_group"`
	Word        string  `json:"word"`
	Score       float64 `json:"score"`
	Start       *int    `json:"start,omitempty"`
	End         *int    `json:"end,omitempty"`
}

// EntityRecognizer returns the entity spans found in a piece of text.
type EntityRecognizer interface {
	RecognizeEntities(ctx context.Context, text string) ([]EntitySpan, error)
}

// ValidateSpans returns a MalformedResponseError when a span could not have
// come from a well-formed NER response.
func ValidateSpans(spans []EntitySpan) error {
	for i, span := range spans {
		if math.IsNaN(span.Score) || span.Score < 0 || span.Score > 1 {
			return NewMalformedResponseError(
				fmt.Sprintf("span %d has score %v outside [0,1]", i, span.Score),
			)
		}
	}
	return nil
}
