package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("TROOV_AUTH__JWT_SECRET", "secret")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("http.addr: want=:8080 got=%q", cfg.HTTP.Addr)
	}
	if cfg.Autosave.Debounce != 500*time.Millisecond {
		t.Fatalf("autosave.debounce: want=500ms got=%s", cfg.Autosave.Debounce)
	}
	if !cfg.Deadline.Enabled || cfg.Deadline.Interval != time.Hour {
		t.Fatalf("deadline: got enabled=%v interval=%s", cfg.Deadline.Enabled, cfg.Deadline.Interval)
	}
	if cfg.DB.Driver != "postgres" {
		t.Fatalf("db.driver: want=postgres got=%q", cfg.DB.Driver)
	}
	if cfg.Auth.JWTSecret != "secret" {
		t.Fatalf("auth.jwt_secret not read from env")
	}
}

func TestLoadConfigFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "troov.yaml")
	content := []byte(`
http:
  addr: ":9000"
  cors_origins:
    - https://app.troov.studio
db:
  driver: sqlite
  dsn: ":memory:"
auth:
  jwt_secret: from-file
autosave:
  debounce: 2s
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("TROOV_HTTP__ADDR", ":9100")
	t.Setenv("TROOV_DEADLINE__ENABLED", "false")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.HTTP.Addr != ":9100" {
		t.Fatalf("env should override file: got=%q", cfg.HTTP.Addr)
	}
	if cfg.DB.Driver != "sqlite" || cfg.DB.DSN != ":memory:" {
		t.Fatalf("db from file: got=%+v", cfg.DB)
	}
	if cfg.Autosave.Debounce != 2*time.Second {
		t.Fatalf("autosave.debounce: want=2s got=%s", cfg.Autosave.Debounce)
	}
	if cfg.Deadline.Enabled {
		t.Fatalf("deadline.enabled: want=false")
	}
	if len(cfg.HTTP.CORSOrigins) != 1 || cfg.HTTP.CORSOrigins[0] != "https://app.troov.studio" {
		t.Fatalf("cors_origins: got=%v", cfg.HTTP.CORSOrigins)
	}
}

func TestLoadConfigSplitsCORSFromEnv(t *testing.T) {
	t.Setenv("TROOV_AUTH__JWT_SECRET", "secret")
	t.Setenv("TROOV_HTTP__CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if len(cfg.HTTP.CORSOrigins) != 2 || cfg.HTTP.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("cors_origins: got=%v", cfg.HTTP.CORSOrigins)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing secret", env: map[string]string{}},
		{name: "bad driver", env: map[string]string{"TROOV_AUTH__JWT_SECRET": "s", "TROOV_DB__DRIVER": "mysql"}},
		{name: "short interval", env: map[string]string{"TROOV_AUTH__JWT_SECRET": "s", "TROOV_DEADLINE__INTERVAL": "5s"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if _, err := LoadConfig(""); err == nil {
				t.Fatalf("%s: want error", tc.name)
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv("TROOV_AUTH__JWT_SECRET", "secret")
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("want error for missing file")
	}
}
