package config

import (
	"testing"
)

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when DATABASE_URL is missing")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/registry")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.Port)
	}
	if cfg.DBMaxConns != 20 || cfg.DBMinConns != 5 {
		t.Errorf("unexpected pool defaults: max=%d min=%d", cfg.DBMaxConns, cfg.DBMinConns)
	}
	if cfg.MaxGroupedResults != 10000 {
		t.Errorf("expected default grouped cap 10000, got %d", cfg.MaxGroupedResults)
	}
	if !cfg.IsDev() {
		t.Error("default env should be development")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/registry")
	t.Setenv("PORT", "9999")
	t.Setenv("MAX_GROUPED_RESULTS", "500")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9999" {
		t.Errorf("expected port 9999, got %s", cfg.Port)
	}
	if cfg.MaxGroupedResults != 500 {
		t.Errorf("expected grouped cap 500, got %d", cfg.MaxGroupedResults)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Errorf("expected 2 CORS origins, got %v", cfg.CORSOrigins)
	}
}

func TestLoad_RejectsNonPositiveGroupedCap(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/registry")
	t.Setenv("MAX_GROUPED_RESULTS", "0")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for zero grouped cap")
	}
}
