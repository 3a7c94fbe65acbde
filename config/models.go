package config

import "time"

// Config holds the configuration of the application
// Use config.LoadConfig to create a new instance
type Config struct {
	Server    ServerConfig    `mapstructure:"server" yaml:"server"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
	Extractor ExtractorConfig `mapstructure:"extractor" yaml:"extractor"`
	NER       NERConfig       `mapstructure:"ner" yaml:"ner"`
	Auth      AuthConfig      `mapstructure:"auth" yaml:"auth"`
}

type ServerConfig struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port int    `mapstructure:"port" yaml:"port" validate:"min=1,max=65535"`
	// MaxUploadSize is the largest accepted upload in bytes.
	MaxUploadSize     int64         `mapstructure:"max_upload_size" yaml:"max_upload_size" validate:"min=1"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format" validate:"omitempty,oneof=text json"`
}

// ExtractorConfig configures PDF to text extraction.
type ExtractorConfig struct {
	// Service is either "remote" (HTTP extraction service) or "local" (in process).
	Service  string        `mapstructure:"service" yaml:"service" validate:"oneof=remote local"`
	URL      string        `mapstructure:"url" yaml:"url" validate:"omitempty,url"`
	Timeout  time.Duration `mapstructure:"timeout" yaml:"timeout"`
	RetryMax int           `mapstructure:"retry_max" yaml:"retry_max" validate:"min=0"`
}

// NERConfig configures the named entity recognition model and its cold start handling.
type NERConfig struct {
	URL string `mapstructure:"url" yaml:"url" validate:"required,url"`
	// APIToken is loaded from ENV not config file.
	APIToken         string        `mapstructure:"api_token" yaml:"api_token"`
	Timeout          time.Duration `mapstructure:"timeout" yaml:"timeout"`
	TransportRetries int           `mapstructure:"transport_retries" yaml:"transport_retries" validate:"min=0"`
	MaxAttempts      uint          `mapstructure:"max_attempts" yaml:"max_attempts" validate:"min=1,max=20"`
	// ColdStart is "fail_fast" or "wait".
	ColdStart          string        `mapstructure:"cold_start" yaml:"cold_start" validate:"oneof=fail_fast wait"`
	DefaultWait        time.Duration `mapstructure:"default_wait" yaml:"default_wait"`
	MaxWait            time.Duration `mapstructure:"max_wait" yaml:"max_wait"`
	Deadline           time.Duration `mapstructure:"deadline" yaml:"deadline"`
	NameScoreThreshold float64       `mapstructure:"name_score_threshold" yaml:"name_score_threshold" validate:"min=0,max=1"`
}

type AuthConfig struct {
	Secret   string `mapstructure:"secret" yaml:"secret"`
	Required bool   `mapstructure:"required" yaml:"required"`
}
