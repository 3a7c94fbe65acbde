package ner

import (
	"context"
	"errors"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/getzep/contactner/config"
	"github.com/getzep/contactner/pkg/models"
)

const DefaultMaxAttempts uint = 5

// RetryPolicy decides what happens when the NER model reports a cold start.
//
// With WaitOnColdStart unset the first cold start is returned to the caller
// straight away. With it set, the policy waits for the model's estimated load
// time (capped at MaxWait) and tries again, making at most MaxAttempts calls.
// Errors that aren't cold starts are never retried.
type RetryPolicy struct {
	MaxAttempts     uint
	WaitOnColdStart bool
	DefaultWait     time.Duration
	MaxWait         time.Duration
	// Timer is used for the waits between attempts. Nil means real time.
	Timer retry.Timer
}

func NewRetryPolicy(cfg *config.Config) RetryPolicy {
	return RetryPolicy{
		MaxAttempts:     cfg.NER.MaxAttempts,
		WaitOnColdStart: cfg.NER.ColdStart == config.ColdStartWait,
		DefaultWait:     cfg.NER.DefaultWait,
		MaxWait:         cfg.NER.MaxWait,
	}
}

func (p RetryPolicy) attempts() uint {
	if p.MaxAttempts == 0 {
		return DefaultMaxAttempts
	}
	return p.MaxAttempts
}

func (p RetryPolicy) waitFor(err error) time.Duration {
	wait := p.DefaultWait
	var coldStart *models.ColdStartError
	if errors.As(err, &coldStart) && coldStart.EstimatedWait > 0 {
		wait = coldStart.EstimatedWait
	}
	if p.MaxWait > 0 && wait > p.MaxWait {
		wait = p.MaxWait
	}
	return wait
}

// Recognize calls recognizer for text under the policy.
func (p RetryPolicy) Recognize(
	ctx context.Context,
	recognizer models.EntityRecognizer,
	text string,
) ([]models.EntitySpan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	maxAttempts := p.attempts()

	var spans []models.EntitySpan
	var made uint

	opts := []retry.Option{
		retry.Context(ctx),
		retry.Attempts(maxAttempts),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return p.WaitOnColdStart && errors.Is(err, models.ErrColdStart)
		}),
		retry.DelayType(func(_ uint, err error, _ *retry.Config) time.Duration {
			return p.waitFor(err)
		}),
		retry.OnRetry(func(n uint, err error) {
			if n+1 < maxAttempts {
				log.Infof(
					"Model is loading. Retrying in %.2f seconds (attempt %d of %d)",
					p.waitFor(err).Seconds(), n+2, maxAttempts,
				)
			}
		}),
	}
	if p.Timer != nil {
		opts = append(opts, retry.WithTimer(p.Timer))
	}

	err := retry.Do(
		func() error {
			made++
			var err error
			spans, err = recognizer.RecognizeEntities(ctx, text)
			return err
		},
		opts...,
	)
	if err == nil {
		return spans, nil
	}

	if p.WaitOnColdStart && made >= maxAttempts && errors.Is(err, models.ErrColdStart) {
		return nil, models.NewRetriesExhaustedError(made, err)
	}

	return nil, err
}

// Force compiler to validate that RetryingRecognizer implements the EntityRecognizer interface.
var _ models.EntityRecognizer = &RetryingRecognizer{}

// RetryingRecognizer applies a RetryPolicy to every call of the wrapped recognizer.
type RetryingRecognizer struct {
	Recognizer models.EntityRecognizer
	Policy     RetryPolicy
}

func NewRetryingRecognizer(recognizer models.EntityRecognizer, policy RetryPolicy) *RetryingRecognizer {
	return &RetryingRecognizer{Recognizer: recognizer, Policy: policy}
}

func (r *RetryingRecognizer) RecognizeEntities(
	ctx context.Context,
	text string,
) ([]models.EntitySpan, error) {
	return r.Policy.Recognize(ctx, r.Recognizer, text)
}
