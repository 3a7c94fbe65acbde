package extractors

import (
	"context"
	"io"
	"time"

	"github.com/getzep/contactner/internal"
	"github.com/getzep/contactner/pkg/models"
)

// Force compiler to validate that Pipeline implements the DocumentProcessor interface.
var _ models.DocumentProcessor = &Pipeline{}

// Pipeline turns an uploaded PDF into a ContactRecord: text extraction,
// segmentation, NER per segment, then field extraction over the merged spans
// and the full text.
type Pipeline struct {
	textExtractor models.TextExtractor
	recognizer    models.EntityRecognizer
	fields        []models.FieldExtractor
	// deadline bounds the whole run, including cold start waits. Zero disables it.
	deadline time.Duration
}

func NewPipeline(
	textExtractor models.TextExtractor,
	recognizer models.EntityRecognizer,
	deadline time.Duration,
	fields ...models.FieldExtractor,
) *Pipeline {
	if len(fields) == 0 {
		fields = DefaultFieldExtractors(DefaultNameScoreThreshold)
	}
	return &Pipeline{
		textExtractor: textExtractor,
		recognizer:    recognizer,
		fields:        fields,
		deadline:      deadline,
	}
}

func (p *Pipeline) Process(
	ctx context.Context,
	filename string,
	r io.Reader,
) (models.ContactRecord, error) {
	if p.deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.deadline)
		defer cancel()
	}

	text, err := p.textExtractor.ExtractText(ctx, filename, r)
	if err != nil {
		return models.ContactRecord{}, NewExtractorError("text extraction failed", err)
	}

	return p.ProcessText(ctx, text)
}

// ProcessText runs everything after text extraction.
func (p *Pipeline) ProcessText(ctx context.Context, text string) (models.ContactRecord, error) {
	segments := SegmentText(text)
	log.Debugf("Processing %d text segments", len(segments))

	spans, err := RecognizeSegments(ctx, p.recognizer, segments)
	if err != nil {
		return models.ContactRecord{}, err
	}
	log.Debugf("NER returned %d entity spans", len(spans))

	record, err := ExtractFields(spans, text, p.fields...)
	if err != nil {
		return models.ContactRecord{}, err
	}
	log.Debugf(
		"Extracted contact name=%q phone=%q address=%q",
		record.Name, record.Phone, internal.CollapseWhitespace(record.Address),
	)

	return record, nil
}
