package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/johnquangdev/meeting-scribe/errors"
)

// Provider modes. Selected once at startup; every downstream component
// receives the already-constructed provider and never re-checks the mode.
const (
	ModeMock = "mock"
	ModeLive = "live"
)

// Config holds application configuration
type Config struct {
	Server     ServerConfig
	Pipeline   PipelineConfig
	AssemblyAI AssemblyAIConfig
	Groq       GroqConfig
	Resilience ResilienceConfig
	Storage    StorageConfig
	Log        LogConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8080"`
	Host            string        `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string        `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string      `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	RateLimitRPS    float64       `envconfig:"RATE_LIMIT_RPS" default:"10"`
	RateLimitBurst  int           `envconfig:"RATE_LIMIT_BURST" default:"20"`
	APIToken        string        `envconfig:"API_TOKEN" default:""`
}

// PipelineConfig holds the processing pipeline configuration
type PipelineConfig struct {
	Mode               string        `envconfig:"MODE" default:"mock"`
	MaxUploadBytes     int64         `envconfig:"MAX_UPLOAD_BYTES" default:"52428800"`
	AllowedFormats     []string      `envconfig:"ALLOWED_FORMATS" default:"mp3,wav,m4a,flac"`
	CallTimeout        time.Duration `envconfig:"CALL_TIMEOUT" default:"60s"`
	MaxConcurrent      int           `envconfig:"MAX_CONCURRENT" default:"2"`
	PromptTemplateFile string        `envconfig:"PROMPT_TEMPLATE_FILE" default:""`
	SummaryTTL         time.Duration `envconfig:"SUMMARY_TTL" default:"30m"`
}

// AssemblyAIConfig holds the transcription provider configuration
type AssemblyAIConfig struct {
	APIKey        string `envconfig:"ASSEMBLYAI_API_KEY" default:""`
	Language      string `envconfig:"ASSEMBLYAI_LANGUAGE" default:"en"`
	SpeakerLabels bool   `envconfig:"ASSEMBLYAI_SPEAKER_LABELS" default:"true"`
}

// GroqConfig holds the summarization provider configuration
type GroqConfig struct {
	APIKey      string  `envconfig:"GROQ_API_KEY" default:""`
	BaseURL     string  `envconfig:"GROQ_BASE_URL" default:"https://api.groq.com"`
	Model       string  `envconfig:"GROQ_MODEL" default:"llama-3.3-70b-versatile"`
	Temperature float64 `envconfig:"GROQ_TEMPERATURE" default:"0.3"`
	MaxTokens   int     `envconfig:"GROQ_MAX_TOKENS" default:"2000"`
}

// ResilienceConfig holds retry, circuit breaker and outbound rate limit knobs
type ResilienceConfig struct {
	RetryMaxAttempts     int           `envconfig:"RETRY_MAX_ATTEMPTS" default:"3"`
	RetryInitialBackoff  time.Duration `envconfig:"RETRY_INITIAL_BACKOFF" default:"500ms"`
	RetryMaxBackoff      time.Duration `envconfig:"RETRY_MAX_BACKOFF" default:"10s"`
	RetryMaxElapsed      time.Duration `envconfig:"RETRY_MAX_ELAPSED" default:"30s"`
	BreakerEnabled       bool          `envconfig:"BREAKER_ENABLED" default:"true"`
	BreakerMinRequests   uint32        `envconfig:"BREAKER_MIN_REQUESTS" default:"10"`
	BreakerFailureRatio  float64       `envconfig:"BREAKER_FAILURE_RATIO" default:"0.5"`
	BreakerOpenTimeout   time.Duration `envconfig:"BREAKER_OPEN_TIMEOUT" default:"30s"`
	BreakerHalfOpenCalls uint32        `envconfig:"BREAKER_HALF_OPEN_MAX_CALLS" default:"2"`
	OutboundRPS          float64       `envconfig:"OUTBOUND_RPS" default:"5"`
	OutboundBurst        int           `envconfig:"OUTBOUND_BURST" default:"5"`
}

// StorageConfig holds optional object-storage staging configuration.
// When disabled the live transcriber streams audio to the provider directly.
type StorageConfig struct {
	Enabled         bool   `envconfig:"STORAGE_ENABLED" default:"false"`
	Endpoint        string `envconfig:"STORAGE_ENDPOINT" default:"localhost:9000"`
	AccessKeyID     string `envconfig:"STORAGE_ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string `envconfig:"STORAGE_SECRET_KEY" default:"minioadmin"`
	BucketName      string `envconfig:"STORAGE_BUCKET" default:"meeting-scribe"`
	UseSSL          bool   `envconfig:"STORAGE_USE_SSL" default:"false"`
	PublicURL       string `envconfig:"STORAGE_PUBLIC_URL" default:""`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate validates the configuration. In live mode both provider keys are
// required; in mock mode no key is needed at all.
func (c *Config) Validate() error {
	c.Pipeline.Mode = strings.ToLower(strings.TrimSpace(c.Pipeline.Mode))
	if c.Pipeline.Mode != ModeMock && c.Pipeline.Mode != ModeLive {
		return errors.ErrInvalidConfig("MODE", fmt.Sprintf("must be %q or %q, got %q", ModeMock, ModeLive, c.Pipeline.Mode))
	}

	if c.Pipeline.MaxUploadBytes <= 0 {
		return errors.ErrInvalidConfig("MAX_UPLOAD_BYTES", "must be positive")
	}
	if len(c.Pipeline.AllowedFormats) == 0 {
		return errors.ErrInvalidConfig("ALLOWED_FORMATS", "must list at least one format")
	}
	if c.Pipeline.CallTimeout <= 0 {
		return errors.ErrInvalidConfig("CALL_TIMEOUT", "must be positive")
	}
	if c.Pipeline.MaxConcurrent < 1 {
		return errors.ErrInvalidConfig("MAX_CONCURRENT", "must be at least 1")
	}

	if c.Pipeline.Mode == ModeLive {
		if c.AssemblyAI.APIKey == "" {
			return errors.ErrMissingAPIKey("assemblyai")
		}
		if c.Groq.APIKey == "" {
			return errors.ErrMissingAPIKey("groq")
		}
	}

	if c.Storage.Enabled {
		if c.Storage.Endpoint == "" {
			return errors.ErrInvalidConfig("STORAGE_ENDPOINT", "required when storage is enabled")
		}
		if c.Storage.BucketName == "" {
			return errors.ErrInvalidConfig("STORAGE_BUCKET", "required when storage is enabled")
		}
	}

	return nil
}

// IsLive reports whether live providers are selected.
func (c *Config) IsLive() bool {
	return c.Pipeline.Mode == ModeLive
}

// Address returns the listen address for the HTTP server.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}
