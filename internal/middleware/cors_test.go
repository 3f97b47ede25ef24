package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BorgesHen/MochilaOk/internal/middleware"
)

const webClient = "http://localhost:8000"

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestCORSHandler_SimpleRequests(t *testing.T) {
	tests := []struct {
		name      string
		origin    string
		wantAllow string
	}{
		{"allowed origin", webClient, webClient},
		{"foreign origin", "http://evil.example.com", ""},
		{"no origin header", "", ""},
	}

	h := middleware.NewCORSHandler([]string{webClient})(okHandler)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/destinations", nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			// The response itself still goes through; the browser enforces the header.
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tc.wantAllow, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestCORSHandler_ExposesContentDisposition(t *testing.T) {
	h := middleware.NewCORSHandler([]string{webClient})(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/destinations/abc/export?format=csv", nil)
	req.Header.Set("Origin", webClient)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Contains(t, rec.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition")
}

func TestCORSHandler_Preflight(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		method  string
		headers string
		allowed bool
	}{
		// Request headers arrive lowercase and sorted per the Fetch standard,
		// which is how rs/cors compares them.
		{"create destination", "/destinations", http.MethodPost, "authorization,content-type", true},
		{"claim item", "/items/abc/claim", http.MethodPatch, "authorization,content-type", true},
		{"delete is not offered", "/destinations/abc", http.MethodDelete, "authorization", false},
	}

	h := middleware.NewCORSHandler([]string{webClient})(okHandler)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, tc.path, nil)
			req.Header.Set("Origin", webClient)
			req.Header.Set("Access-Control-Request-Method", tc.method)
			req.Header.Set("Access-Control-Request-Headers", tc.headers)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if !tc.allowed {
				assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
				return
			}
			assert.Less(t, rec.Code, 300)
			assert.Equal(t, webClient, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), tc.method)
		})
	}
}
