package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	t.Setenv("TROOV_AUTH__JWT_SECRET", "app-test-secret")
	t.Setenv("TROOV_LOG__MODE", "test")
	t.Setenv("TROOV_DB__DRIVER", "sqlite")
	t.Setenv("TROOV_DB__DSN", "file::memory:")
	t.Setenv("TROOV_METRICS__ENABLED", "false")
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	return cfg
}

func TestNewWiresApplication(t *testing.T) {
	gin.SetMode(gin.TestMode)
	a, err := New(testConfig(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	if err := a.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if a.worker == nil {
		t.Fatalf("deadline worker should be enabled by default")
	}

	rec := httptest.NewRecorder()
	a.Server.Engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("healthcheck: want=200 got=%d", rec.Code)
	}

	rec = httptest.NewRecorder()
	a.Server.Engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/projects", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated projects: want=401 got=%d", rec.Code)
	}
}

func TestOptionalClientsStayNilWhenUnconfigured(t *testing.T) {
	cfg := testConfig(t)
	a, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	clients, err := wireClients(a.Log, cfg)
	if err != nil {
		t.Fatalf("wireClients: %v", err)
	}
	if clients.mailer != nil || clients.portal != nil || clients.bucket != nil {
		t.Fatalf("expected no clients, got %+v", clients)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	a, err := New(testConfig(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	a.Close()
	a.Close()
}
