package httputil

import (
	"context"
	"crypto/tls"
	"net/http"
	"net/http/httptrace"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/httptrace/otelhttptrace"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/getzep/contactner/internal"
)

var log = internal.GetLogger()

const (
	DefaultRetryMax     = 3
	DefaultTimeout      = 30 * time.Second
	RetryWaitMin        = 100 * time.Millisecond
	RetryWaitMax        = 2 * time.Second
	MaxIdleConns        = 100
	MaxIdleConnsPerHost = 20
	IdleConnTimeout     = 30 * time.Second
)

// NewRetryableHTTPClient returns a standard http.Client whose transport retries
// according to retryPolicy, up to retryMax times. The retryable transport wraps
// an OpenTelemetry transport.
func NewRetryableHTTPClient(
	retryMax int,
	timeout time.Duration,
	retryPolicy retryablehttp.CheckRetry,
) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	httpClient := retryablehttp.Client{
		HTTPClient: &http.Client{
			Timeout: timeout,
			Transport: otelhttp.NewTransport(&http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
				MaxIdleConns:          MaxIdleConns,
				MaxIdleConnsPerHost:   MaxIdleConnsPerHost,
				IdleConnTimeout:       IdleConnTimeout,
				ResponseHeaderTimeout: timeout,
				DisableKeepAlives:     false,
			}, otelhttp.WithClientTrace(
				func(ctx context.Context) *httptrace.ClientTrace {
					return otelhttptrace.NewClientTrace(ctx)
				}),
			),
		},
		Logger:       internal.NewLeveledLogrus(log),
		RetryWaitMin: RetryWaitMin,
		RetryWaitMax: RetryWaitMax,
		RetryMax:     retryMax,
		Backoff:      retryablehttp.DefaultBackoff,
		CheckRetry:   retryPolicy,
		// Hand the last response back so callers can surface the upstream payload.
		ErrorHandler: retryablehttp.PassthroughErrorHandler,
	}

	return httpClient.StandardClient()
}

// IgnoreBadRequestRetryPolicy retries connection errors and 5xx responses but
// never client errors other than 429.
func IgnoreBadRequestRetryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if resp != nil && resp.StatusCode != http.StatusOK {
		log.Warn("Retry policy invoked with response ", resp.Status)
	}

	// do not retry on context.Canceled or context.DeadlineExceeded
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if resp != nil &&
		resp.StatusCode >= http.StatusBadRequest &&
		resp.StatusCode < http.StatusInternalServerError &&
		resp.StatusCode != http.StatusTooManyRequests {
		return false, nil
	}

	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}

// ConnectionErrorRetryPolicy only retries when no response was received at all.
// Any HTTP status, including 503, is handed straight back to the caller so that
// status-level retry decisions stay with the caller.
func ConnectionErrorRetryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if resp != nil {
		return false, nil
	}

	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}
