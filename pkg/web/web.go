package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/getzep/contactner/config"
	"github.com/getzep/contactner/internal"
	"github.com/getzep/contactner/pkg/models"
)

var log = internal.GetLogger()

//go:embed templates/*
var TemplatesFS embed.FS

var indexTemplate = template.Must(
	template.New("index.html").Funcs(templateFuncs()).ParseFS(TemplatesFS, "templates/index.html"),
)

// RecordFields lists the ContactRecord JSON keys in display order.
var RecordFields = []string{
	"name",
	"phone",
	"address",
	"street",
	"floor",
	"city",
	"state",
	"country",
}

// UploadPage is the data rendered into the upload form.
type UploadPage struct {
	Title         string
	Version       string
	Endpoint      string
	MaxUploadSize int64
	AuthRequired  bool
	Fields        []string
}

func NewUploadPage(cfg *config.Config) *UploadPage {
	return &UploadPage{
		Title:         "Contact Extractor",
		Version:       config.VersionString,
		Endpoint:      "/process-pdf",
		MaxUploadSize: cfg.Server.MaxUploadSize,
		AuthRequired:  cfg.Auth.Required,
		Fields:        RecordFields,
	}
}

func (p *UploadPage) Render(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, p); err != nil {
		log.Errorf("Failed to execute template: %s", err)
		http.Error(w, "Failed to execute template", http.StatusInternalServerError)
	}
}

// IndexHandler serves the browser upload form.
func IndexHandler(appState *models.AppState) http.HandlerFunc {
	page := NewUploadPage(appState.Config)
	return func(w http.ResponseWriter, r *http.Request) {
		page.Render(w)
	}
}
