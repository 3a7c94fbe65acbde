package textextract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/getzep/contactner/pkg/models"
)

// Force compiler to validate that LocalExtractor implements the TextExtractor interface.
var _ models.TextExtractor = &LocalExtractor{}

// LocalExtractor reads the text layer of the PDF in process. Scanned documents
// without a text layer yield an empty string.
type LocalExtractor struct{}

func NewLocalExtractor() *LocalExtractor {
	return &LocalExtractor{}
}

func (e *LocalExtractor) ExtractText(
	ctx context.Context,
	filename string,
	r io.Reader,
) (text string, err error) {
	// the pdf package panics on some malformed cross-reference tables
	defer func() {
		if p := recover(); p != nil {
			text, err = "", models.NewValidationError(fmt.Sprintf("unable to read PDF %s: %v", filename, p))
		}
	}()

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}

	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", models.NewValidationError(fmt.Sprintf("unable to read PDF %s: %v", filename, err))
	}

	var sb strings.Builder
	for i := 1; i <= pdfReader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			log.Warnf("Skipping page %d of %s: %v", i, filename, err)
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}

	return sb.String(), nil
}
