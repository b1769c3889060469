package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		allowedOrigins  []string
		origin          string
		method          string
		requestMethod   string
		expectedStatus  int
		expectedAllowed string
	}{
		{
			name:           "no origin header",
			allowedOrigins: []string{"https://garment-pilot.web.app"},
			method:         http.MethodGet,
			expectedStatus: http.StatusOK,
		},
		{
			name:            "allowed origin",
			allowedOrigins:  []string{"https://garment-pilot.web.app"},
			origin:          "https://garment-pilot.web.app",
			method:          http.MethodGet,
			expectedStatus:  http.StatusOK,
			expectedAllowed: "https://garment-pilot.web.app",
		},
		{
			name:            "wildcard",
			allowedOrigins:  []string{"*"},
			origin:          "https://anywhere.example.com",
			method:          http.MethodGet,
			expectedStatus:  http.StatusOK,
			expectedAllowed: "*",
		},
		{
			name:           "disallowed origin passes through without headers",
			allowedOrigins: []string{"https://garment-pilot.web.app"},
			origin:         "https://evil.example.com",
			method:         http.MethodGet,
			expectedStatus: http.StatusOK,
		},
		{
			name:            "preflight allowed",
			allowedOrigins:  []string{"https://garment-pilot.web.app"},
			origin:          "https://garment-pilot.web.app",
			method:          http.MethodOptions,
			requestMethod:   http.MethodPost,
			expectedStatus:  http.StatusNoContent,
			expectedAllowed: "https://garment-pilot.web.app",
		},
		{
			name:           "preflight from disallowed origin",
			allowedOrigins: []string{"https://garment-pilot.web.app"},
			origin:         "https://evil.example.com",
			method:         http.MethodOptions,
			requestMethod:  http.MethodPost,
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(tt.method, "/products", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.requestMethod != "" {
				req.Header.Set("Access-Control-Request-Method", tt.requestMethod)
			}
			rec := httptest.NewRecorder()

			CORS(tt.allowedOrigins)(next).ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.expectedAllowed {
				t.Fatalf("expected allow-origin %q, got %q", tt.expectedAllowed, got)
			}
		})
	}
}
