package extractors

import (
	"context"
	"errors"

	"github.com/getzep/contactner/internal"
	"github.com/getzep/contactner/pkg/models"
)

// RecognizeSegments runs NER over each segment in order and concatenates the
// results. Segments run sequentially: a cold start is global to the remote
// model, so the first one aborts the remaining work and is returned as is.
// A cancelled context also aborts. Any other per-segment failure, including
// a malformed response, is logged and the segment skipped.
func RecognizeSegments(
	ctx context.Context,
	recognizer models.EntityRecognizer,
	segments []string,
) ([]models.EntitySpan, error) {
	spans := make([]models.EntitySpan, 0)

	for i, segment := range segments {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		segmentSpans, err := recognizer.RecognizeEntities(ctx, segment)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if errors.Is(err, models.ErrColdStart) ||
				errors.Is(err, models.ErrRetriesExhausted) {
				return nil, err
			}
			log.Errorf(
				"NER failed for segment %d %q: %v",
				i, internal.Truncate(segment, 60), err,
			)
			continue
		}

		spans = append(spans, segmentSpans...)
	}

	return spans, nil
}
