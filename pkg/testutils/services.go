package testutils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/getzep/contactner/internal"
)

// FakeNERModel stands in for the hosted inference API. Known inputs get their
// canned response, anything else an empty span list. The first ColdStarts
// calls answer 503 with a loading body.
type FakeNERModel struct {
	*httptest.Server
	Responses  map[string]string
	ColdStarts int32
	calls      atomic.Int32
}

func (m *FakeNERModel) Calls() int {
	return int(m.calls.Load())
}

func (m *FakeNERModel) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	n := m.calls.Add(1)
	w.Header().Set("Content-Type", "application/json")

	if n <= m.ColdStarts {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(internal.TestColdStartResponse))
		return
	}

	var req struct {
		Inputs string `json:"inputs"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid request body"}`))
		return
	}

	if resp, ok := m.Responses[req.Inputs]; ok {
		_, _ = w.Write([]byte(resp))
		return
	}
	_, _ = w.Write([]byte(`[]`))
}

// NewFakeNERModel starts a model that recognizes the name on the first line
// of internal.TestDocumentText. It is closed when the test ends.
func NewFakeNERModel(t *testing.T) *FakeNERModel {
	t.Helper()

	m := &FakeNERModel{
		Responses: map[string]string{
			internal.TestDocumentSegments[0]: internal.TestNERResponse,
		},
	}
	m.Server = httptest.NewServer(m)
	t.Cleanup(m.Close)
	return m
}

// NewFakeExtractorService starts a text extraction service that answers every
// upload carrying a "file" part with text.
func NewFakeExtractorService(t *testing.T, text string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if _, _, err := r.FormFile("file"); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"no file part"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"text": text})
	}))
	t.Cleanup(srv.Close)
	return srv
}
