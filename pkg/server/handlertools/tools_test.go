package handlertools

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getzep/contactner/pkg/models"
)

func TestStatusFromError(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "Validation",
			err:      models.NewValidationError("Only PDF files are allowed"),
			expected: http.StatusBadRequest,
		},
		{
			name:     "Cold start",
			err:      models.NewColdStartError(10 * time.Second),
			expected: http.StatusServiceUnavailable,
		},
		{
			name:     "Retries exhausted",
			err:      models.NewRetriesExhaustedError(5, models.NewColdStartError(0)),
			expected: http.StatusServiceUnavailable,
		},
		{
			name:     "Upstream",
			err:      models.NewUpstreamError("text extraction", 502, nil, nil),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "Malformed",
			err:      models.NewMalformedResponseError("not a list"),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "Body too large",
			err:      fmt.Errorf("multipart: %w", &http.MaxBytesError{Limit: 10}),
			expected: http.StatusRequestEntityTooLarge,
		},
		{
			name:     "Unknown",
			err:      errors.New("boom"),
			expected: http.StatusTeapot,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, StatusFromError(tc.err, http.StatusTeapot))
		})
	}
}

func TestRenderError(t *testing.T) {
	t.Run("Cold start sets Retry-After", func(t *testing.T) {
		rr := httptest.NewRecorder()

		RenderError(rr, models.NewColdStartError(11500*time.Millisecond), http.StatusInternalServerError)

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.Equal(t, "12", rr.Header().Get("Retry-After"))
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

		var resp ErrorResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, 12, resp.RetryAfterSeconds)
		assert.Contains(t, resp.Error, "warming up")
	})

	t.Run("Validation message is passed through", func(t *testing.T) {
		rr := httptest.NewRecorder()

		RenderError(rr, models.NewValidationError("No file uploaded"), http.StatusInternalServerError)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Empty(t, rr.Header().Get("Retry-After"))
		assert.JSONEq(t, `{"error":"No file uploaded"}`, rr.Body.String())
	})

	t.Run("Upstream JSON payload is surfaced", func(t *testing.T) {
		rr := httptest.NewRecorder()
		body := []byte(`{"error":"unsupported encoding"}`)

		RenderError(
			rr,
			models.NewUpstreamError("text extraction", http.StatusUnprocessableEntity, body, nil),
			http.StatusInternalServerError,
		)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		var resp map[string]interface{}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(
			t,
			map[string]interface{}{"error": "unsupported encoding"},
			resp["upstream"],
		)
	})

	t.Run("Non JSON upstream payload becomes a string", func(t *testing.T) {
		rr := httptest.NewRecorder()

		RenderError(
			rr,
			models.NewUpstreamError("ner", http.StatusBadGateway, []byte("<html>bad gateway</html>"), nil),
			http.StatusInternalServerError,
		)

		var resp map[string]interface{}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, "<html>bad gateway</html>", resp["upstream"])
	})
}
