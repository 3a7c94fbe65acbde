package models

import (
	"context"
	"io"
)

// TextExtractor turns an uploaded PDF into plain text.
type TextExtractor interface {
	ExtractText(ctx context.Context, filename string, r io.Reader) (string, error)
}

// FieldExtractor populates part of a ContactRecord from the merged entity spans
// and the original document text. Implementations must be pure.
type FieldExtractor interface {
	Name() string
	Extract(spans []EntitySpan, text string) ContactRecord
}

// DocumentProcessor runs the whole upload-to-record flow.
type DocumentProcessor interface {
	Process(ctx context.Context, filename string, r io.Reader) (ContactRecord, error)
}
