package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/getzep/contactner/internal"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// We're bootstrapping so avoid any imports from other packages
var log = logrus.New()

var validate = validator.New()

const (
	EnvPrefix = "CONTACTNER"

	DefaultNERURL       = "https://api-inference.huggingface.co/models/dbmdz/electra-large-discriminator-finetuned-conll03-english"
	DefaultExtractorURL = "http://localhost:5000/extract_pdf"

	ExtractorServiceRemote = "remote"
	ExtractorServiceLocal  = "local"

	ColdStartFailFast = "fail_fast"
	ColdStartWait     = "wait"
)

var ErrExtractorURLNotSet = errors.New("extractor.url must be set when extractor.service is remote")

// LoadConfig loads the config file and ENV variables into a Config struct.
// A missing config.yaml in the working directory is not an error; a missing
// explicitly named file is.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
	}

	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		log.Debug("config.yaml not found, using defaults and environment")
	}

	// Environment variables take precedence over config file
	loadDotEnv()

	// Unprefixed names kept for compatibility with existing deployments
	if err := v.BindEnv("ner.api_token", "CONTACTNER_NER_API_TOKEN", "HUGGINGFACE_API_TOKEN"); err != nil {
		return nil, fmt.Errorf("error binding environment variable: %w", err)
	}
	if err := v.BindEnv("server.port", "CONTACTNER_SERVER_PORT", "PORT"); err != nil {
		return nil, fmt.Errorf("error binding environment variable: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks field constraints and the cross-field rules the struct tags can't express.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.Extractor.Service == ExtractorServiceRemote && cfg.Extractor.URL == "" {
		return ErrExtractorURLNotSet
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.max_upload_size", 50*1024*1024)
	v.SetDefault("server.read_header_timeout", 5*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("extractor.service", ExtractorServiceRemote)
	v.SetDefault("extractor.url", DefaultExtractorURL)
	v.SetDefault("extractor.timeout", 60*time.Second)
	v.SetDefault("extractor.retry_max", 3)

	v.SetDefault("ner.url", DefaultNERURL)
	v.SetDefault("ner.api_token", "")
	v.SetDefault("ner.timeout", 30*time.Second)
	v.SetDefault("ner.transport_retries", 2)
	v.SetDefault("ner.max_attempts", 5)
	v.SetDefault("ner.cold_start", ColdStartFailFast)
	v.SetDefault("ner.default_wait", 10*time.Second)
	v.SetDefault("ner.max_wait", 60*time.Second)
	v.SetDefault("ner.deadline", 2*time.Minute)
	v.SetDefault("ner.name_score_threshold", 0.7)

	v.SetDefault("auth.required", false)
	v.SetDefault("auth.secret", "")
}

// loadDotEnv loads environment variables from .env file
func loadDotEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Debug(".env file not found or unable to load")
	}
}

// SetLogLevel sets the log level and format based on the config file.
// Defaults to INFO if not set or invalid
func SetLogLevel(cfg *Config) {
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	internal.SetLogLevel(level)
	internal.SetLogFormat(cfg.Log.Format)
	internal.GetLogger().Info("Log level set to: ", level)
}
