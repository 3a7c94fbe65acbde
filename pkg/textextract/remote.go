package textextract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/getzep/contactner/config"
	"github.com/getzep/contactner/pkg/httputil"
	"github.com/getzep/contactner/pkg/models"
)

const (
	remoteServiceName = "extractor"
	formFileField     = "file"
	requestIDHeader   = "X-Request-ID"
	maxTextBytes      = 32 << 20
)

// Force compiler to validate that RemoteExtractor implements the TextExtractor interface.
var _ models.TextExtractor = &RemoteExtractor{}

// RemoteExtractor posts the PDF to the text extraction service, which answers
// {"text": "..."} on success and {"error": "..."} otherwise.
type RemoteExtractor struct {
	url        string
	httpClient *http.Client
}

type extractResponse struct {
	Text  *string `json:"text"`
	Error string  `json:"error"`
}

func NewRemoteExtractor(cfg *config.Config) *RemoteExtractor {
	return &RemoteExtractor{
		url: cfg.Extractor.URL,
		httpClient: httputil.NewRetryableHTTPClient(
			cfg.Extractor.RetryMax,
			cfg.Extractor.Timeout,
			httputil.IgnoreBadRequestRetryPolicy,
		),
	}
}

func (e *RemoteExtractor) ExtractText(
	ctx context.Context,
	filename string,
	r io.Reader,
) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	if filename == "" {
		filename = "upload.pdf"
	}
	part, err := mw.CreateFormFile(formFileField, filepath.Base(filename))
	if err != nil {
		return "", fmt.Errorf("failed to create multipart file: %w", err)
	}
	size, err := io.Copy(part, r)
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("failed to close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, &body)
	if err != nil {
		return "", fmt.Errorf("failed to create extraction request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)

	log.Debugf(
		"Sending %s (%s) to extraction service, request id %s",
		filepath.Base(filename), humanize.Bytes(uint64(size)), requestID,
	)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", models.NewUpstreamError(remoteServiceName, 0, nil, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxTextBytes))
	if err != nil {
		return "", models.NewUpstreamError(remoteServiceName, resp.StatusCode, nil, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", models.NewUpstreamError(remoteServiceName, resp.StatusCode, raw, nil)
	}

	var result extractResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", models.NewUpstreamError(
			remoteServiceName,
			resp.StatusCode,
			raw,
			fmt.Errorf("failed to decode response: %w", err),
		)
	}
	if result.Text == nil {
		if result.Error != "" {
			return "", models.NewUpstreamError(remoteServiceName, resp.StatusCode, raw, nil)
		}
		return "", models.NewUpstreamError(
			remoteServiceName,
			resp.StatusCode,
			raw,
			fmt.Errorf("response has no text field"),
		)
	}

	return *result.Text, nil
}
