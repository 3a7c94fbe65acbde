package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, int64(50*1024*1024), cfg.Server.MaxUploadSize)
	assert.Equal(t, ExtractorServiceRemote, cfg.Extractor.Service)
	assert.Equal(t, DefaultExtractorURL, cfg.Extractor.URL)
	assert.Equal(t, DefaultNERURL, cfg.NER.URL)
	assert.Equal(t, uint(5), cfg.NER.MaxAttempts)
	assert.Equal(t, ColdStartFailFast, cfg.NER.ColdStart)
	assert.Equal(t, 10*time.Second, cfg.NER.DefaultWait)
	assert.Equal(t, 2*time.Minute, cfg.NER.Deadline)
	assert.InDelta(t, 0.7, cfg.NER.NameScoreThreshold, 1e-9)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
  max_upload_size: 5242880
log:
  level: debug
  format: json
extractor:
  service: local
ner:
  cold_start: wait
  max_wait: 30s
  deadline: 90s
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, int64(5242880), cfg.Server.MaxUploadSize)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, ExtractorServiceLocal, cfg.Extractor.Service)
	assert.Equal(t, ColdStartWait, cfg.NER.ColdStart)
	assert.Equal(t, 30*time.Second, cfg.NER.MaxWait)
	assert.Equal(t, 90*time.Second, cfg.NER.Deadline)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("CONTACTNER_NER_COLD_START", "wait")
	t.Setenv("CONTACTNER_NER_DEFAULT_WAIT", "3s")
	t.Setenv("HUGGINGFACE_API_TOKEN", "hf_test_token")
	t.Setenv("PORT", "9090")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, ColdStartWait, cfg.NER.ColdStart)
	assert.Equal(t, 3*time.Second, cfg.NER.DefaultWait)
	assert.Equal(t, "hf_test_token", cfg.NER.APIToken)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigInvalid(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{
			name: "unknown cold start mode",
			body: "ner:\n  cold_start: sometimes\n",
		},
		{
			name: "unknown extractor service",
			body: "extractor:\n  service: ocr\n",
		},
		{
			name: "zero attempts",
			body: "ner:\n  max_attempts: 0\n",
		},
		{
			name: "remote extractor without url",
			body: "extractor:\n  service: remote\n  url: \"\"\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tc.body))
			assert.Error(t, err)
		})
	}
}
