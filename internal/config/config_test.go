package config

import (
	"reflect"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"DB_URL", "DB_HOST", "DB_LOG_SQL", "SERVER_PORT", "CORS_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.DBHost != "localhost" || cfg.ServerPort != "8080" || cfg.DBLogSQL {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.CORSOrigins, []string{"*"}) {
		t.Fatalf("unexpected CORS origins %v", cfg.CORSOrigins)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DB_URL", "postgres://app@db/assessments")
	t.Setenv("DB_LOG_SQL", "true")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CORS_ORIGINS", " https://a.example.com , ,https://b.example.com")

	cfg := Load()
	if cfg.DBURL != "postgres://app@db/assessments" || !cfg.DBLogSQL || cfg.ServerPort != "9090" {
		t.Fatalf("environment not applied: %+v", cfg)
	}
	want := []string{"https://a.example.com", "https://b.example.com"}
	if !reflect.DeepEqual(cfg.CORSOrigins, want) {
		t.Fatalf("CORSOrigins = %v, want %v", cfg.CORSOrigins, want)
	}
}
