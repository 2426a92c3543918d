package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// EnvPrefix is prepended to every variable, e.g. MINDGARDEN_HTTP_PORT.
const EnvPrefix = "MINDGARDEN"

// devJWTSecret is only accepted for the local build target.
const devJWTSecret = "mindgarden-local-dev-secret"

// Config holds the configuration for the garden service and the jobs worker.
type Config struct {
	// Build target selects the high-level environment: local or cloud.
	BuildTarget string `envconfig:"BUILD_TARGET" default:"local"`

	// Storage
	DBDriver    string `envconfig:"DB_DRIVER" default:"auto"`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:""`
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`

	HTTPPort int `envconfig:"HTTP_PORT" default:"3000"`

	// Auth
	JWTSecret string        `envconfig:"JWT_SECRET" default:""`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"24h"`

	// LLM used by insights and the chatbot
	LLMProvider       string `envconfig:"LLM_PROVIDER" default:"none"`
	LLMModel          string `envconfig:"LLM_MODEL" default:""`
	LLMAPIKey         string `envconfig:"LLM_API_KEY" default:""`
	LLMBaseURL        string `envconfig:"LLM_BASE_URL" default:""`
	LLMTimeoutSeconds int    `envconfig:"LLM_TIMEOUT_SECONDS" default:"15"`

	// Jobs
	ExportDir                string `envconfig:"EXPORT_DIR" default:""`
	JobsInProcess            bool   `envconfig:"JOBS_IN_PROCESS" default:"true"`
	JobsIntervalSeconds      int    `envconfig:"JOBS_INTERVAL_SECONDS" default:"2"`
	JobsBatchSize            int    `envconfig:"JOBS_BATCH_SIZE" default:"20"`
	RetentionIntervalMinutes int    `envconfig:"RETENTION_INTERVAL_MINUTES" default:"60"`

	// Uploads
	UploadBaseURL    string `envconfig:"UPLOAD_BASE_URL" default:"http://localhost:3000/uploads"`
	UploadSigningKey string `envconfig:"UPLOAD_SIGNING_KEY" default:""`

	// Health
	HealthIntervalSeconds     int `envconfig:"HEALTH_INTERVAL_SECONDS" default:"30"`
	HealthProbeTimeoutSeconds int `envconfig:"HEALTH_PROBE_TIMEOUT_SECONDS" default:"2"`
}

// ResolveDefaults validates BuildTarget and fills every value derived from it.
func (c *Config) ResolveDefaults() error {
	var defaultDB string
	switch c.BuildTarget {
	case "local":
		defaultDB = "sqlite"
	case "cloud":
		defaultDB = "postgres"
	default:
		return fmt.Errorf("unsupported BUILD_TARGET: %s", c.BuildTarget)
	}

	if c.DBDriver == "" || c.DBDriver == "auto" {
		c.DBDriver = defaultDB
	}
	switch c.DBDriver {
	case "sqlite":
		if c.SQLitePath == "" {
			c.SQLitePath = filepath.Join("data", "mindgarden.db")
		}
	case "postgres":
		if c.PostgresDSN == "" {
			return fmt.Errorf("%s_POSTGRES_DSN is required when DB_DRIVER=postgres", EnvPrefix)
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}

	if c.JWTSecret == "" {
		if c.BuildTarget != "local" {
			return fmt.Errorf("%s_JWT_SECRET is required for BUILD_TARGET=%s", EnvPrefix, c.BuildTarget)
		}
		c.JWTSecret = devJWTSecret
	}
	if c.UploadSigningKey == "" {
		c.UploadSigningKey = c.JWTSecret
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}

	switch c.LLMProvider {
	case "", "none":
		c.LLMProvider = "none"
	case "openai", "gemini":
		if c.LLMAPIKey == "" {
			return fmt.Errorf("%s_LLM_API_KEY is required for LLM_PROVIDER=%s", EnvPrefix, c.LLMProvider)
		}
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER: %s", c.LLMProvider)
	}

	if c.ExportDir == "" {
		c.ExportDir = filepath.Join("data", "exports")
	}
	if c.JobsBatchSize <= 0 || c.JobsIntervalSeconds <= 0 || c.RetentionIntervalMinutes <= 0 {
		return fmt.Errorf("jobs batch size and intervals must be positive")
	}
	if c.HealthIntervalSeconds <= 0 {
		c.HealthIntervalSeconds = 30
	}
	return nil
}

// New parses MINDGARDEN_* environment variables and resolves defaults.
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("build_target", cfg.BuildTarget).
		Str("db_driver", cfg.DBDriver).
		Str("sqlite_path", cfg.SQLitePath).
		Bool("postgres_dsn_present", cfg.PostgresDSN != "").
		Int("port", cfg.HTTPPort).
		Str("llm_provider", cfg.LLMProvider).
		Str("llm_model", cfg.LLMModel).
		Str("export_dir", cfg.ExportDir).
		Dur("token_ttl", cfg.TokenTTL).
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting returns a resolved local config backed by the given SQLite file.
func NewForTesting(sqlitePath string) *Config {
	cfg := &Config{
		BuildTarget:               "local",
		DBDriver:                  "sqlite",
		SQLitePath:                sqlitePath,
		HTTPPort:                  0,
		JWTSecret:                 "test-secret",
		TokenTTL:                  time.Hour,
		LLMProvider:               "none",
		LLMTimeoutSeconds:         1,
		JobsIntervalSeconds:       1,
		JobsBatchSize:             10,
		RetentionIntervalMinutes:  60,
		UploadBaseURL:             "http://localhost/uploads",
		UploadSigningKey:          "test-signing-key",
		HealthIntervalSeconds:     1,
		HealthProbeTimeoutSeconds: 1,
	}
	return cfg
}

// HTTPAddr returns the HTTP listen address.
func (c *Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// LLMTimeout is the per-call LLM timeout.
func (c *Config) LLMTimeout() time.Duration {
	return time.Duration(c.LLMTimeoutSeconds) * time.Second
}

// JobsInterval is the worker poll period.
func (c *Config) JobsInterval() time.Duration {
	return time.Duration(c.JobsIntervalSeconds) * time.Second
}

// RetentionInterval is how often the audio retention sweep is scheduled.
func (c *Config) RetentionInterval() time.Duration {
	return time.Duration(c.RetentionIntervalMinutes) * time.Minute
}

// HealthInterval is the background health probe period.
func (c *Config) HealthInterval() time.Duration {
	return time.Duration(c.HealthIntervalSeconds) * time.Second
}

// HealthProbeTimeout bounds one health probe.
func (c *Config) HealthProbeTimeout() time.Duration {
	return time.Duration(c.HealthProbeTimeoutSeconds) * time.Second
}
