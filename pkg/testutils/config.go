package testutils

import (
	"time"

	"github.com/getzep/contactner/config"
)

// NewTestConfig returns a valid config pointing at the given services, with
// short timeouts and the fail fast cold start policy.
func NewTestConfig(extractorURL, nerURL string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:              3000,
			MaxUploadSize:     1 << 20,
			ReadHeaderTimeout: time.Second,
		},
		Log: config.LogConfig{Level: "debug", Format: "text"},
		Extractor: config.ExtractorConfig{
			Service: config.ExtractorServiceRemote,
			URL:     extractorURL,
			Timeout: 5 * time.Second,
		},
		NER: config.NERConfig{
			URL:                nerURL,
			APIToken:           "hf_test",
			Timeout:            5 * time.Second,
			MaxAttempts:        5,
			ColdStart:          config.ColdStartFailFast,
			DefaultWait:        time.Second,
			MaxWait:            5 * time.Second,
			Deadline:           30 * time.Second,
			NameScoreThreshold: 0.7,
		},
	}
}
