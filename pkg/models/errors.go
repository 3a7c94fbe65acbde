package models

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrBadRequest        = errors.New("bad request")
	ErrColdStart         = errors.New("model is currently loading")
	ErrRetriesExhausted  = errors.New("max retries reached")
	ErrUpstream          = errors.New("upstream service error")
	ErrMalformedResponse = errors.New("invalid NER response")
)

// ValidationError is returned for uploads that can't be processed as sent.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrBadRequest
}

func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// ColdStartError signals that the NER model is still being loaded by the
// inference provider. EstimatedWait is the provider's hint.
type ColdStartError struct {
	EstimatedWait time.Duration
}

func (e *ColdStartError) Error() string {
	return fmt.Sprintf(
		"NER service is warming up, retry in about %d seconds",
		e.RetryAfterSeconds(),
	)
}

func (e *ColdStartError) Unwrap() error {
	return ErrColdStart
}

// RetryAfterSeconds rounds EstimatedWait up to whole seconds, minimum 1.
func (e *ColdStartError) RetryAfterSeconds() int {
	secs := int(math.Ceil(e.EstimatedWait.Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}

func NewColdStartError(estimatedWait time.Duration) *ColdStartError {
	return &ColdStartError{EstimatedWait: estimatedWait}
}

// RetriesExhaustedError is returned when the model was still loading after
// every allowed attempt. It unwraps to both ErrRetriesExhausted and the last
// ColdStartError.
type RetriesExhaustedError struct {
	Attempts uint
	Last     error
}

func (e *RetriesExhaustedError) Error() string {
	return fmt.Sprintf("max retries reached after %d attempts: %v", e.Attempts, e.Last)
}

func (e *RetriesExhaustedError) Unwrap() []error {
	return []error{ErrRetriesExhausted, e.Last}
}

func NewRetriesExhaustedError(attempts uint, last error) error {
	return &RetriesExhaustedError{Attempts: attempts, Last: last}
}

// UpstreamError is a failed call to the extraction or NER service. Body holds
// the raw response payload, if any, so it can be surfaced to the caller.
type UpstreamError struct {
	Service    string
	StatusCode int
	Body       []byte
	Err        error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s request failed: %v", e.Service, e.Err)
	case len(e.Body) > 0:
		return fmt.Sprintf("%s returned status %d: %s", e.Service, e.StatusCode, e.Body)
	default:
		return fmt.Sprintf("%s returned status %d", e.Service, e.StatusCode)
	}
}

func (e *UpstreamError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrUpstream, e.Err}
	}
	return []error{ErrUpstream}
}

func NewUpstreamError(service string, statusCode int, body []byte, err error) error {
	return &UpstreamError{Service: service, StatusCode: statusCode, Body: body, Err: err}
}

// MalformedResponseError is returned when the NER service answered
// successfully but the payload isn't a list of entity spans.
type MalformedResponseError struct {
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMalformedResponse, e.Reason)
}

func (e *MalformedResponseError) Unwrap() error {
	return ErrMalformedResponse
}

func NewMalformedResponseError(reason string) error {
	return &MalformedResponseError{Reason: reason}
}
