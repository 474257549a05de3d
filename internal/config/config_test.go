package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Env != "development" {
		t.Errorf("Env: got %q, want development", cfg.Env)
	}
	if !cfg.IsDev() {
		t.Error("IsDev should be true by default")
	}
	if cfg.PasswordMode() != "local" {
		t.Errorf("PasswordMode: got %q, want local", cfg.PasswordMode())
	}
	if cfg.Addr() != "0.0.0.0:8080" {
		t.Errorf("Addr: got %q", cfg.Addr())
	}
	if cfg.Sync.Interval.Minutes() != 5 {
		t.Errorf("sync interval: got %s, want 5m", cfg.Sync.Interval)
	}

	// Only explicit dashboard origins may make credentialed admin
	// requests; there is no wildcard default.
	for _, origin := range cfg.CORS.AllowedOrigins {
		if strings.Contains(origin, "*") {
			t.Errorf("default CORS origin %q must not be a wildcard", origin)
		}
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		t.Error("default CORS origins must not be empty")
	}
}

func TestCORSOriginsFromEnv(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://admin.example.com,https://staging-admin.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{"https://admin.example.com", "https://staging-admin.example.com"}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[0] != want[0] || cfg.CORS.AllowedOrigins[1] != want[1] {
		t.Errorf("origins: got %v, want %v", cfg.CORS.AllowedOrigins, want)
	}
}

func TestLoadProductionRejectsDefaultSecrets(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	if _, err := Load(); err == nil {
		t.Fatal("production with default secrets should fail")
	}

	// A real database password alone is not enough.
	t.Setenv("POSTGRES_PASSWORD", "s3cure-pg-pass")
	if _, err := Load(); err == nil {
		t.Fatal("production with default JWT secret should fail")
	}

	t.Setenv("JWT_SECRET", "a-real-signing-secret")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PasswordMode() != "production" {
		t.Errorf("PasswordMode: got %q, want production", cfg.PasswordMode())
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		Postgres: PostgresConfig{
			Host: "db", Port: "5432", User: "u", Password: "p", Name: "app",
		},
	}
	want := "postgres://u:p@db:5432/app?sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN: got %q, want %q", got, want)
	}
}
