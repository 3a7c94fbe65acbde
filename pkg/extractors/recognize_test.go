package extractors

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getzep/contactner/pkg/models"
)

// fakeRecognizer answers per segment from a map and records every call.
type fakeRecognizer struct {
	mu        sync.Mutex
	responses map[string][]models.EntitySpan
	errs      map[string]error
	calls     []string
}

func (f *fakeRecognizer) RecognizeEntities(
	_ context.Context,
	text string,
) ([]models.EntitySpan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, text)
	if err, ok := f.errs[text]; ok {
		return nil, err
	}
	return f.responses[text], nil
}

func TestRecognizeSegments(t *testing.T) {
	recognizer := &fakeRecognizer{
		responses: map[string][]models.EntitySpan{
			"John Smith": {per("john", 0.99), per("smith", 0.98)},
			"Jane Doe":   {per("jane", 0.97)},
		},
	}

	spans, err := RecognizeSegments(
		context.Background(),
		recognizer,
		[]string{"John Smith", "Engineer", "Jane Doe"},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"John Smith", "Engineer", "Jane Doe"}, recognizer.calls)
	require.Len(t, spans, 3)
	assert.Equal(t, "john", spans[0].Word)
	assert.Equal(t, "smith", spans[1].Word)
	assert.Equal(t, "jane", spans[2].Word)
}

func TestRecognizeSegmentsSkipsFailedSegment(t *testing.T) {
	recognizer := &fakeRecognizer{
		responses: map[string][]models.EntitySpan{
			"first": {per("john", 0.99)},
			"third": {per("smith", 0.99)},
		},
		errs: map[string]error{
			"second": models.NewUpstreamError(
				"ner", http.StatusInternalServerError, []byte("boom"), nil,
			),
		},
	}

	spans, err := RecognizeSegments(
		context.Background(),
		recognizer,
		[]string{"first", "second", "third"},
	)
	require.NoError(t, err)

	assert.Len(t, recognizer.calls, 3)
	assert.Equal(t, []models.EntitySpan{per("john", 0.99), per("smith", 0.99)}, spans)
}

func TestRecognizeSegmentsAborts(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected error
	}{
		{
			name:     "Cold start",
			err:      models.NewColdStartError(0),
			expected: models.ErrColdStart,
		},
		{
			name:     "Retries exhausted",
			err:      models.NewRetriesExhaustedError(5, models.NewColdStartError(0)),
			expected: models.ErrRetriesExhausted,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			recognizer := &fakeRecognizer{
				responses: map[string][]models.EntitySpan{"first": {per("john", 0.99)}},
				errs:      map[string]error{"second": tc.err},
			}

			spans, err := RecognizeSegments(
				context.Background(),
				recognizer,
				[]string{"first", "second", "third"},
			)

			assert.Nil(t, spans)
			assert.True(t, errors.Is(err, tc.expected))
			assert.Equal(t, []string{"first", "second"}, recognizer.calls)
		})
	}
}

func TestRecognizeSegmentsSkipsMalformedSegment(t *testing.T) {
	recognizer := &fakeRecognizer{
		responses: map[string][]models.EntitySpan{"first": {per("john", 0.99)}},
		errs:      map[string]error{"second": models.NewMalformedResponseError("not an array")},
	}

	spans, err := RecognizeSegments(
		context.Background(),
		recognizer,
		[]string{"first", "second", "third"},
	)
	require.NoError(t, err)

	assert.Equal(t, []models.EntitySpan{per("john", 0.99)}, spans)
	assert.Equal(t, []string{"first", "second", "third"}, recognizer.calls)
}

func TestRecognizeSegmentsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	recognizer := &fakeRecognizer{}
	_, err := RecognizeSegments(ctx, recognizer, []string{"first", "second"})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, recognizer.calls)
}

func TestRecognizeSegmentsEmpty(t *testing.T) {
	recognizer := &fakeRecognizer{}

	spans, err := RecognizeSegments(context.Background(), recognizer, nil)

	require.NoError(t, err)
	assert.Empty(t, spans)
	assert.Empty(t, recognizer.calls)
}
