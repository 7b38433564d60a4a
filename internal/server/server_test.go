package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kamelth/ocr-to-markdown/internal/config"
)

// testServerConfig builds a config that wires real components without
// touching the network: an empty bucket skips the startup probe and the
// openai engine only dials out when a request reaches it.
func testServerConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server:  config.ServerConfig{Host: "127.0.0.1", Port: "0"},
		Storage: config.StorageConfig{Driver: "s3", Region: "us-east-1"},
		OCR: config.OCRConfig{
			Provider:  "openai",
			Model:     "gpt-4o-mini",
			BaseURL:   "http://127.0.0.1:0",
			MaxTokens: 64,
		},
		App: config.AppConfig{
			MaxUploadSize: 1 << 20,
			StaticDir:     t.TempDir(),
		},
	}
}

func TestNewWiresRoutes(t *testing.T) {
	srv, err := New(testServerConfig(t), zap.NewNop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("GET /health = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "healthy") {
		t.Errorf("health body = %q", rec.Body.String())
	}

	// A POST without a file runs the whole middleware and handler chain.
	rec = httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/ocr", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("POST /api/ocr without file = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "no image file provided") {
		t.Errorf("error body = %q", rec.Body.String())
	}
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	cfg := testServerConfig(t)
	cfg.Storage.Driver = "ftp"

	if _, err := New(cfg, zap.NewNop()); err == nil || !strings.Contains(err.Error(), "unknown storage driver") {
		t.Fatalf("New() error = %v, want unknown storage driver", err)
	}
}

func TestNewRejectsUnknownProvider(t *testing.T) {
	cfg := testServerConfig(t)
	cfg.OCR.Provider = "azure"

	if _, err := New(cfg, zap.NewNop()); err == nil || !strings.Contains(err.Error(), "unknown OCR provider") {
		t.Fatalf("New() error = %v, want unknown OCR provider", err)
	}
}
