package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/getzep/contactner/config"
	"github.com/getzep/contactner/pkg/models"
)

func TestTemplateFuncs(t *testing.T) {
	funcs := templateFuncs()

	assert.Equal(t, "50 MiB", funcs["HumanizeBytes"].(func(int64) string)(50<<20))
	assert.Equal(t, "unlimited", funcs["HumanizeBytes"].(func(int64) string)(0))
	assert.Contains(t, funcs, "title")
	assert.Contains(t, funcs, "default")
}

func TestIndexHandler(t *testing.T) {
	appState := &models.AppState{
		Config: &config.Config{
			Server: config.ServerConfig{MaxUploadSize: 50 << 20},
			Auth:   config.AuthConfig{Required: true},
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	IndexHandler(appState).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))

	body := rr.Body.String()
	assert.Contains(t, body, `action="/process-pdf"`)
	assert.Contains(t, body, `name="file"`)
	assert.Contains(t, body, "50 MiB")
	assert.Contains(t, body, `id="token"`)
	for _, field := range RecordFields {
		assert.Contains(t, body, `data-field="`+field+`"`)
	}
	assert.Contains(t, body, "<th>Country</th>")
}

func TestIndexHandlerWithoutAuth(t *testing.T) {
	appState := &models.AppState{Config: &config.Config{}}

	rr := httptest.NewRecorder()
	IndexHandler(appState).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), `id="token"`)
	assert.Contains(t, rr.Body.String(), "unlimited")
}
