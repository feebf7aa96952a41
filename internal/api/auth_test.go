package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/limewatch/limewatch/internal/api"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAPIKey_ValidKey(t *testing.T) {
	h := api.APIKey("apikey", "x-api-key", "secret", okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("x-api-key", "secret")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rr.Code)
	}
}

func TestAPIKey_MissingKey(t *testing.T) {
	h := api.APIKey("apikey", "x-api-key", "secret", okHandler())

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want application/json", ct)
	}
}

func TestAPIKey_WrongKey(t *testing.T) {
	h := api.APIKey("apikey", "x-api-key", "secret", okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("x-api-key", "not-the-secret")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rr.Code)
	}
}

func TestAPIKey_CustomHeader(t *testing.T) {
	h := api.APIKey("apikey", "x-limewatch-key", "secret", okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("x-limewatch-key", "secret")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rr.Code)
	}
}

func TestAPIKey_DisabledModes(t *testing.T) {
	for name, h := range map[string]http.Handler{
		"mode none": api.APIKey("none", "x-api-key", "secret", okHandler()),
		"empty key": api.APIKey("apikey", "x-api-key", "", okHandler()),
	} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
		if rr.Code != http.StatusOK {
			t.Errorf("%s: status got %d, want 200", name, rr.Code)
		}
	}
}
