// Package textextract turns uploaded PDFs into plain text, either through the
// extraction microservice or in process.
package textextract

import (
	"fmt"

	"github.com/getzep/contactner/config"
	"github.com/getzep/contactner/internal"
	"github.com/getzep/contactner/pkg/models"
)

var log = internal.GetLogger()

// New returns the TextExtractor selected by extractor.service.
func New(cfg *config.Config) (models.TextExtractor, error) {
	switch cfg.Extractor.Service {
	case config.ExtractorServiceRemote, "":
		if cfg.Extractor.URL == "" {
			return nil, config.ErrExtractorURLNotSet
		}
		return NewRemoteExtractor(cfg), nil
	case config.ExtractorServiceLocal:
		return NewLocalExtractor(), nil
	default:
		return nil, fmt.Errorf("invalid extractor service: %s", cfg.Extractor.Service)
	}
}
