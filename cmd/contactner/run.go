package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/getzep/contactner/config"
	"github.com/getzep/contactner/pkg/auth"
	"github.com/getzep/contactner/pkg/extractors"
	"github.com/getzep/contactner/pkg/models"
	"github.com/getzep/contactner/pkg/ner"
	"github.com/getzep/contactner/pkg/server"
	"github.com/getzep/contactner/pkg/textextract"
)

const (
	shutdownTimeout = 30 * time.Second
	redacted        = "********"
)

// run is the entrypoint for the contactner server
func run() {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		log.Fatalf("Error configuring contactner: %s", err)
	}

	handleCLIOptions(cfg)

	log.Infof("Starting contactner server version %s", config.VersionString)

	config.SetLogLevel(cfg)
	appState, err := NewAppState(cfg)
	if err != nil {
		log.Fatal(err)
	}

	srv, err := server.Create(appState)
	if err != nil {
		log.Fatal(err)
	}

	done := setupSignalHandler(srv)

	log.Infof("Listening on: %s", srv.Addr)
	err = srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	<-done
}

// NewAppState builds the text extractor, the NER client and the pipeline
// from the config file / ENV.
func NewAppState(cfg *config.Config) (*models.AppState, error) {
	textExtractor, err := textextract.New(cfg)
	if err != nil {
		return nil, err
	}
	log.Info("Using text extractor: ", cfg.Extractor.Service)

	if cfg.NER.APIToken == "" {
		log.Warn("NER API token not set. Requests to the inference API may be rate limited")
	}
	recognizer := ner.NewRetryingRecognizer(ner.NewClient(cfg), ner.NewRetryPolicy(cfg))
	log.Infof("Using NER model %s (cold start policy: %s)", cfg.NER.URL, cfg.NER.ColdStart)

	return &models.AppState{
		TextExtractor: textExtractor,
		Recognizer:    recognizer,
		Processor:     extractors.NewPipelineFromConfig(cfg, textExtractor, recognizer),
		Config:        cfg,
	}, nil
}

// handleCLIOptions handles CLI options that don't require the server to run
func handleCLIOptions(cfg *config.Config) {
	if showVersion {
		fmt.Println(config.VersionString)
		os.Exit(0)
	}
	if dumpConfig {
		out, err := dumpRedactedConfig(cfg)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(out)
		os.Exit(0)
	}
	if generateKey {
		var ttl time.Duration
		if tokenTTL != "" {
			var err error
			if ttl, err = time.ParseDuration(tokenTTL); err != nil {
				log.Fatalf("Invalid token TTL: %s", err)
			}
		}
		token, err := auth.GenerateToken(cfg, "contactner", ttl)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(token)
		os.Exit(0)
	}
}

// dumpRedactedConfig renders cfg as YAML with secrets masked. The output can
// be used as a config file.
func dumpRedactedConfig(cfg *config.Config) (string, error) {
	c := *cfg
	if c.NER.APIToken != "" {
		c.NER.APIToken = redacted
	}
	if c.Auth.Secret != "" {
		c.Auth.Secret = redacted
	}
	out, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to dump config: %w", err)
	}
	return string(out), nil
}

// setupSignalHandler shuts srv down gracefully on SIGINT / SIGTERM. The
// returned channel is closed once shutdown has finished.
func setupSignalHandler(srv *http.Server) <-chan struct{} {
	done := make(chan struct{})
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		defer close(done)
		sig := <-signalCh
		log.Infof("Received %s, shutting down", sig)

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Errorf("Error shutting down server: %v", err)
		}
	}()
	return done
}
