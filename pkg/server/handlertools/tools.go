package handlertools

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/getzep/contactner/internal"
	"github.com/getzep/contactner/pkg/models"
)

var log = internal.GetLogger()

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	// Upstream is the raw payload of a failed upstream call, when there is one.
	Upstream          json.RawMessage `json:"upstream,omitempty"`
	RetryAfterSeconds int             `json:"retry_after_seconds,omitempty"`
}

// EncodeJSON encodes data into JSON and writes it to the response writer.
func EncodeJSON(w http.ResponseWriter, data interface{}) error {
	return json.NewEncoder(w).Encode(data)
}

// IsBodyTooLarge reports whether err came from an http.MaxBytesReader limit.
func IsBodyTooLarge(err error) bool {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return true
	}
	return strings.Contains(err.Error(), "http: request body too large")
}

// StatusFromError maps err onto an HTTP status. Errors that don't belong to a
// known class get fallback.
func StatusFromError(err error, fallback int) int {
	switch {
	case IsBodyTooLarge(err):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, models.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrColdStart), errors.Is(err, models.ErrRetriesExhausted):
		return http.StatusServiceUnavailable
	case errors.Is(err, models.ErrUpstream),
		errors.Is(err, models.ErrMalformedResponse),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusInternalServerError
	}
	return fallback
}

// NewErrorResponse builds the response body for err.
func NewErrorResponse(err error) ErrorResponse {
	resp := ErrorResponse{Error: err.Error()}

	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		resp.Error = validationErr.Message
	}

	var coldStart *models.ColdStartError
	if errors.As(err, &coldStart) {
		resp.RetryAfterSeconds = coldStart.RetryAfterSeconds()
	}

	var upstreamErr *models.UpstreamError
	if errors.As(err, &upstreamErr) && len(upstreamErr.Body) > 0 {
		resp.Upstream = rawOrString(upstreamErr.Body)
	}

	return resp
}

// RenderError writes err as a JSON error response. The status is derived from
// the error where possible, otherwise status is used.
func RenderError(w http.ResponseWriter, err error, status int) {
	status = StatusFromError(err, status)

	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		log.Error(err)
	} else {
		log.Warn(err)
	}

	resp := NewErrorResponse(err)
	if resp.RetryAfterSeconds > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(resp.RetryAfterSeconds))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := EncodeJSON(w, resp); err != nil {
		log.Errorf("Failed to encode error response: %v", err)
	}
}

func rawOrString(body []byte) json.RawMessage {
	if json.Valid(body) {
		return body
	}
	quoted, err := json.Marshal(string(body))
	if err != nil {
		return nil
	}
	return quoted
}
