package config

import (
	"testing"
	"time"
)

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Postgres.MaxConns != 8 || cfg.Postgres.MinConns != 2 {
		t.Fatalf("unexpected pool bounds: max=%d min=%d", cfg.Postgres.MaxConns, cfg.Postgres.MinConns)
	}
	if cfg.Media.KeyPrefix != "restaurants/images" {
		t.Fatalf("unexpected key prefix: %q", cfg.Media.KeyPrefix)
	}
	if cfg.Media.UploadURLTTL != 5*time.Minute {
		t.Fatalf("unexpected upload URL TTL: %v", cfg.Media.UploadURLTTL)
	}
}

func TestLoadReadsEnvOverrides(t *testing.T) {
	t.Setenv("POSTGRES_MAX_CONNS", "20")
	t.Setenv("POSTGRES_MIN_CONNS", "5")
	t.Setenv("MENUCMS_MEDIA_UPLOAD_URL_TTL", "10m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Postgres.MaxConns != 20 || cfg.Postgres.MinConns != 5 {
		t.Fatalf("pool bounds not read from env: max=%d min=%d", cfg.Postgres.MaxConns, cfg.Postgres.MinConns)
	}
	if cfg.Media.UploadURLTTL != 10*time.Minute {
		t.Fatalf("upload URL TTL not read from env: %v", cfg.Media.UploadURLTTL)
	}
}

func TestLoadIgnoresMalformedNumericEnv(t *testing.T) {
	t.Setenv("POSTGRES_MAX_CONNS", "lots")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Postgres.MaxConns != 8 {
		t.Fatalf("expected default for malformed value, got %d", cfg.Postgres.MaxConns)
	}
}
