package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/atlasgrid/command-center/internal/api/middleware"
)

func TestAPIKeyAuth_Disabled(t *testing.T) {
	os.Unsetenv("COMMAND_CENTER_API_KEYS")

	auth := middleware.NewAPIKeyAuth("COMMAND_CENTER_API_KEYS")
	if auth.Enabled() {
		t.Error("Expected auth to be disabled when COMMAND_CENTER_API_KEYS is not set")
	}

	// When disabled, all requests should pass through
	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Disabled auth: status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestAPIKeyAuth_ValidKey(t *testing.T) {
	os.Setenv("COMMAND_CENTER_API_KEYS", "test-key-1,test-key-2")
	defer os.Unsetenv("COMMAND_CENTER_API_KEYS")

	auth := middleware.NewAPIKeyAuth("COMMAND_CENTER_API_KEYS")
	if !auth.Enabled() {
		t.Fatal("Expected auth to be enabled")
	}

	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Bearer token form
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions", nil)
	req.Header.Set("Authorization", "Bearer test-key-1")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("Bearer auth: status = %d, want %d", w.Code, http.StatusOK)
	}

	// X-API-Key form
	req = httptest.NewRequest(http.MethodGet, "/api/v1/sessions", nil)
	req.Header.Set("X-API-Key", "test-key-2")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("X-API-Key auth: status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestAPIKeyAuth_InvalidKey(t *testing.T) {
	os.Setenv("COMMAND_CENTER_API_KEYS", "test-key-1")
	defer os.Unsetenv("COMMAND_CENTER_API_KEYS")

	auth := middleware.NewAPIKeyAuth("COMMAND_CENTER_API_KEYS")

	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions", nil)
	req.Header.Set("Authorization", "Bearer wrong-key")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Invalid key: status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	if realm := w.Header().Get("WWW-Authenticate"); realm == "" {
		t.Error("Invalid key: WWW-Authenticate header not set")
	}
}

func TestAPIKeyAuth_MissingKey(t *testing.T) {
	os.Setenv("COMMAND_CENTER_API_KEYS", "test-key-1")
	defer os.Unsetenv("COMMAND_CENTER_API_KEYS")

	auth := middleware.NewAPIKeyAuth("COMMAND_CENTER_API_KEYS")

	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/abc/messages", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Missing key: status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestAPIKeyAuth_PublicPaths(t *testing.T) {
	os.Setenv("COMMAND_CENTER_API_KEYS", "test-key-1")
	defer os.Unsetenv("COMMAND_CENTER_API_KEYS")

	auth := middleware.NewAPIKeyAuth("COMMAND_CENTER_API_KEYS")

	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, path := range []string{"/health", "/version"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("Public path %s: status = %d, want %d without a key", path, w.Code, http.StatusOK)
		}
	}
}
