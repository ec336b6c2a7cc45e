package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCORS(t *testing.T) {
	t.Parallel()

	teapot := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	tests := []struct {
		name            string
		origins         []string
		method          string
		origin          string
		requestMethod   string
		expectedStatus  int
		expectedOrigin  string
		expectedHeaders map[string]string
	}{
		{
			name:           "preflight from listed origin",
			origins:        []string{"http://localhost:5173"},
			method:         http.MethodOptions,
			origin:         "http://localhost:5173",
			requestMethod:  http.MethodPost,
			expectedStatus: http.StatusNoContent,
			expectedOrigin: "http://localhost:5173",
			expectedHeaders: map[string]string{
				"Vary":                   "Origin",
				"Access-Control-Max-Age": "600",
			},
		},
		{
			name:           "preflight from unknown origin",
			origins:        []string{"http://localhost:5173"},
			method:         http.MethodOptions,
			origin:         "http://evil.local",
			requestMethod:  http.MethodPost,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "preflight for unserved method",
			origins:        []string{"*"},
			method:         http.MethodOptions,
			origin:         "http://anywhere.local",
			requestMethod:  http.MethodPut,
			expectedStatus: http.StatusForbidden,
			expectedOrigin: "*",
		},
		{
			name:           "wildcard preflight advertises identity header",
			origins:        []string{"*"},
			method:         http.MethodOptions,
			origin:         "http://anywhere.local",
			requestMethod:  http.MethodDelete,
			expectedStatus: http.StatusNoContent,
			expectedOrigin: "*",
			expectedHeaders: map[string]string{
				"Access-Control-Allow-Methods": http.MethodDelete,
				"Access-Control-Allow-Headers": UserIDHeader,
			},
		},
		{
			name:           "simple request exposes retry-after",
			origins:        []string{" http://localhost:5173 ", ""},
			method:         http.MethodPost,
			origin:         "http://localhost:5173",
			expectedStatus: http.StatusTeapot,
			expectedOrigin: "http://localhost:5173",
			expectedHeaders: map[string]string{
				"Access-Control-Expose-Headers": "Retry-After",
			},
		},
		{
			name:           "simple request from unknown origin passes without headers",
			origins:        []string{"http://localhost:5173"},
			method:         http.MethodGet,
			origin:         "http://evil.local",
			expectedStatus: http.StatusTeapot,
		},
		{
			name:           "no origin",
			origins:        nil,
			method:         http.MethodGet,
			expectedStatus: http.StatusTeapot,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(tt.method, "/reservations", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.requestMethod != "" {
				req.Header.Set("Access-Control-Request-Method", tt.requestMethod)
			}
			rec := httptest.NewRecorder()

			CORS(tt.origins)(teapot).ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.expectedOrigin {
				t.Fatalf("expected allow origin %q, got %q", tt.expectedOrigin, got)
			}
			for name, want := range tt.expectedHeaders {
				if got := rec.Header().Get(name); !strings.Contains(got, want) {
					t.Fatalf("expected %s to contain %q, got %q", name, want, got)
				}
			}
		})
	}
}
