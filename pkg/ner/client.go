package ner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/getzep/contactner/config"
	"github.com/getzep/contactner/internal"
	"github.com/getzep/contactner/pkg/httputil"
	"github.com/getzep/contactner/pkg/models"
)

var log = internal.GetLogger()

const (
	serviceName      = "ner"
	coldStartMarker  = "currently loading"
	maxResponseBytes = 10 << 20
)

// Force compiler to validate that Client implements the EntityRecognizer interface.
var _ models.EntityRecognizer = &Client{}

// Client calls a hosted token-classification model (HuggingFace Inference API).
type Client struct {
	url         string
	apiToken    string
	defaultWait time.Duration
	httpClient  *http.Client
}

type inferenceRequest struct {
	Inputs string `json:"inputs"`
}

type inferenceError struct {
	Error         string   `json:"error"`
	EstimatedTime *float64 `json:"estimated_time,omitempty"`
}

// NewClient returns a Client whose transport only retries connection errors.
// Cold starts are left to RetryPolicy.
func NewClient(cfg *config.Config) *Client {
	httpClient := httputil.NewRetryableHTTPClient(
		cfg.NER.TransportRetries,
		cfg.NER.Timeout,
		httputil.ConnectionErrorRetryPolicy,
	)
	return NewClientWithHTTPClient(cfg, httpClient)
}

func NewClientWithHTTPClient(cfg *config.Config, httpClient *http.Client) *Client {
	return &Client{
		url:         cfg.NER.URL,
		apiToken:    cfg.NER.APIToken,
		defaultWait: cfg.NER.DefaultWait,
		httpClient:  httpClient,
	}
}

// RecognizeEntities makes exactly one inference call for text. A loading model
// yields a *models.ColdStartError, a non-list success body a
// *models.MalformedResponseError and anything else a *models.UpstreamError.
func (c *Client) RecognizeEntities(ctx context.Context, text string) ([]models.EntitySpan, error) {
	if text == "" {
		return nil, nil
	}

	body, err := json.Marshal(inferenceRequest{Inputs: text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal NER request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create NER request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, models.NewUpstreamError(serviceName, 0, nil, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, models.NewUpstreamError(serviceName, resp.StatusCode, nil, err)
	}

	log.Debugf(
		"NER response status %d (%s) for segment %q",
		resp.StatusCode,
		humanize.Bytes(uint64(len(raw))),
		internal.Truncate(text, 40),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.errorFromBody(resp.StatusCode, raw)
	}

	return c.decodeSpans(resp.StatusCode, raw)
}

func (c *Client) decodeSpans(status int, raw []byte) ([]models.EntitySpan, error) {
	trimmed := bytes.TrimSpace(raw)
	if !bytes.HasPrefix(trimmed, []byte("[")) {
		var apiErr inferenceError
		if err := json.Unmarshal(trimmed, &apiErr); err == nil && apiErr.Error != "" {
			return nil, c.errorFromBody(status, raw)
		}
		return nil, models.NewMalformedResponseError("expected a JSON array of entity spans")
	}

	var spans []models.EntitySpan
	if err := json.Unmarshal(trimmed, &spans); err != nil {
		return nil, models.NewMalformedResponseError(err.Error())
	}

	if err := models.ValidateSpans(spans); err != nil {
		return nil, err
	}

	return spans, nil
}

func (c *Client) errorFromBody(status int, raw []byte) error {
	var apiErr inferenceError
	if err := json.Unmarshal(raw, &apiErr); err == nil &&
		strings.Contains(strings.ToLower(apiErr.Error), coldStartMarker) {
		wait := c.defaultWait
		if apiErr.EstimatedTime != nil && *apiErr.EstimatedTime > 0 {
			wait = time.Duration(*apiErr.EstimatedTime * float64(time.Second))
		}
		return models.NewColdStartError(wait)
	}

	return models.NewUpstreamError(serviceName, status, raw, nil)
}
