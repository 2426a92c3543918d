package config

import (
	"testing"
	"time"
)

func TestNew_LocalDefaults(t *testing.T) {
	t.Setenv("MINDGARDEN_BUILD_TARGET", "local")

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.DBDriver != "sqlite" || cfg.SQLitePath == "" {
		t.Fatalf("unexpected storage mapping: %s %q", cfg.DBDriver, cfg.SQLitePath)
	}
	if cfg.JWTSecret == "" || cfg.UploadSigningKey == "" {
		t.Fatalf("expected dev secrets to be filled")
	}
	if cfg.LLMProvider != "none" || cfg.TokenTTL != 24*time.Hour || cfg.HTTPPort != 3000 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestNew_CloudRequiresDSNAndSecret(t *testing.T) {
	t.Setenv("MINDGARDEN_BUILD_TARGET", "cloud")
	if _, err := New(); err == nil {
		t.Fatalf("expected error without POSTGRES_DSN")
	}

	t.Setenv("MINDGARDEN_POSTGRES_DSN", "postgres://u:p@localhost/db")
	if _, err := New(); err == nil {
		t.Fatalf("expected error without JWT_SECRET")
	}

	t.Setenv("MINDGARDEN_JWT_SECRET", "s3cret")
	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.DBDriver != "postgres" {
		t.Fatalf("expected postgres, got %s", cfg.DBDriver)
	}
}

func TestNew_DriverOverride(t *testing.T) {
	t.Setenv("MINDGARDEN_BUILD_TARGET", "local")
	t.Setenv("MINDGARDEN_DB_DRIVER", "postgres")
	t.Setenv("MINDGARDEN_POSTGRES_DSN", "postgres://u:p@localhost/db")

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.DBDriver != "postgres" {
		t.Fatalf("override failed, got %s", cfg.DBDriver)
	}
}

func TestResolveDefaults_Rejects(t *testing.T) {
	cases := map[string]func(*Config){
		"build target": func(c *Config) { c.BuildTarget = "cloud-dev" },
		"db driver":    func(c *Config) { c.DBDriver = "mysql" },
		"llm provider": func(c *Config) { c.LLMProvider = "ollama" },
		"llm key":      func(c *Config) { c.LLMProvider = "openai" },
		"token ttl":    func(c *Config) { c.TokenTTL = 0 },
		"batch size":   func(c *Config) { c.JobsBatchSize = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := NewForTesting("x.db")
			mutate(cfg)
			if err := cfg.ResolveDefaults(); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestNewForTesting_Resolves(t *testing.T) {
	cfg := NewForTesting("x.db")
	if err := cfg.ResolveDefaults(); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.ExportDir == "" || cfg.HTTPAddr() != ":0" {
		t.Fatalf("unexpected test config: %+v", cfg)
	}
}
