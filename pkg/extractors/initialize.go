package extractors

import (
	"github.com/getzep/contactner/config"
	"github.com/getzep/contactner/pkg/models"
)

// NewPipelineFromConfig wires the configured collaborators into a Pipeline.
func NewPipelineFromConfig(
	cfg *config.Config,
	textExtractor models.TextExtractor,
	recognizer models.EntityRecognizer,
) *Pipeline {
	log.Info("Initializing extraction pipeline")

	threshold := cfg.NER.NameScoreThreshold
	if threshold == 0 {
		threshold = DefaultNameScoreThreshold
	}

	return NewPipeline(
		textExtractor,
		recognizer,
		cfg.NER.Deadline,
		DefaultFieldExtractors(threshold)...,
	)
}
