package server

import (
	"fmt"
	"net/http"
	"time"

	httpLogger "github.com/chi-middleware/logrus-logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"

	"github.com/getzep/contactner/internal"
	"github.com/getzep/contactner/pkg/auth"
	"github.com/getzep/contactner/pkg/models"
	"github.com/getzep/contactner/pkg/web"
)

const (
	RouterName        = "contactner"
	ReadHeaderTimeout = 5 * time.Second
)

var log = internal.GetLogger()

// Create creates a new HTTP server with the given app state
func Create(appState *models.AppState) (*http.Server, error) {
	router, err := setupRouter(appState)
	if err != nil {
		return nil, err
	}

	readHeaderTimeout := appState.Config.Server.ReadHeaderTimeout
	if readHeaderTimeout == 0 {
		readHeaderTimeout = ReadHeaderTimeout
	}

	return &http.Server{
		Addr: fmt.Sprintf(
			"%s:%d",
			appState.Config.Server.Host,
			appState.Config.Server.Port,
		),
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}, nil
}

func setupRouter(appState *models.AppState) (*chi.Mux, error) {
	router := chi.NewRouter()
	router.Use(httpLogger.Logger("router", log))
	router.Use(Recoverer)
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(SendVersion)
	router.Use(otelchi.Middleware(
		RouterName,
		otelchi.WithChiRoutes(router),
		otelchi.WithRequestMethodInSpanName(true),
	))
	router.Use(middleware.Heartbeat("/healthz"))

	var uploadMiddleware []func(http.Handler) http.Handler
	if appState.Config.Auth.Required {
		verifier, err := auth.Middleware(appState.Config)
		if err != nil {
			return nil, err
		}
		uploadMiddleware = append(uploadMiddleware, verifier)
	}

	router.Get("/", web.IndexHandler(appState))
	router.With(uploadMiddleware...).Post("/process-pdf", ProcessPDFHandler(appState))

	return router, nil
}
