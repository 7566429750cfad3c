package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cassiomolin/lucene-example/internal/config"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func serve(t *testing.T, settings config.AuthSettings, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	middleware, err := NewMiddleware(settings)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	rec := httptest.NewRecorder()
	middleware(okHandler).ServeHTTP(rec, req)
	return rec
}

func TestNewMiddleware_None(t *testing.T) {
	for _, typ := range []string{config.AuthTypeNone, ""} {
		rec := serve(t, config.AuthSettings{Type: typ}, httptest.NewRequest("GET", "/sse", nil))
		if rec.Code != http.StatusOK {
			t.Errorf("type %q: expected status 200, got %d", typ, rec.Code)
		}
	}
}

func TestNewMiddleware_BasicAuth(t *testing.T) {
	settings := config.AuthSettings{
		Type:  config.AuthTypeBasic,
		Basic: config.BasicAuthSettings{Username: "admin", Password: "secret"},
	}

	tests := []struct {
		name      string
		user      string
		pass      string
		setHeader bool
		want      int
	}{
		{name: "valid", user: "admin", pass: "secret", setHeader: true, want: http.StatusOK},
		{name: "wrong password", user: "admin", pass: "nope", setHeader: true, want: http.StatusUnauthorized},
		{name: "wrong user", user: "root", pass: "secret", setHeader: true, want: http.StatusUnauthorized},
		{name: "missing", want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/sse", nil)
			if tt.setHeader {
				req.SetBasicAuth(tt.user, tt.pass)
			}
			rec := serve(t, settings, req)
			if rec.Code != tt.want {
				t.Errorf("Expected status %d, got %d", tt.want, rec.Code)
			}
			if tt.want == http.StatusUnauthorized && rec.Header().Get("WWW-Authenticate") == "" {
				t.Error("Expected WWW-Authenticate challenge")
			}
		})
	}
}

func TestNewMiddleware_APIKey(t *testing.T) {
	settings := config.AuthSettings{Type: config.AuthTypeAPIKey, APIKeys: []string{"key1", "key2"}}

	tests := []struct {
		name   string
		header string
		value  string
		want   int
	}{
		{name: "header first key", header: APIKeyHeader, value: "key1", want: http.StatusOK},
		{name: "header second key", header: APIKeyHeader, value: "key2", want: http.StatusOK},
		{name: "bearer", header: "Authorization", value: "Bearer key2", want: http.StatusOK},
		{name: "invalid", header: APIKeyHeader, value: "key3", want: http.StatusUnauthorized},
		{name: "basic scheme", header: "Authorization", value: "Basic key1", want: http.StatusUnauthorized},
		{name: "missing", want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/sse", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			rec := serve(t, settings, req)
			if rec.Code != tt.want {
				t.Errorf("Expected status %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestNewMiddleware_ExcludedPaths(t *testing.T) {
	settings := config.AuthSettings{Type: config.AuthTypeAPIKey, APIKeys: []string{"key1"}}

	for _, path := range DefaultExcludedPaths {
		rec := serve(t, settings, httptest.NewRequest("GET", path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("%s: expected status 200 without credentials, got %d", path, rec.Code)
		}
	}

	rec := serve(t, settings, httptest.NewRequest("GET", "/health/extra", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected sub-path to require auth, got %d", rec.Code)
	}
}

func TestNewMiddlewareExcluding_CustomPaths(t *testing.T) {
	settings := config.AuthSettings{Type: config.AuthTypeAPIKey, APIKeys: []string{"key1"}}
	middleware, err := NewMiddlewareExcluding(settings, "/open")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for path, want := range map[string]int{"/open": http.StatusOK, "/health": http.StatusUnauthorized} {
		rec := httptest.NewRecorder()
		middleware(okHandler).ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
		if rec.Code != want {
			t.Errorf("%s: expected status %d, got %d", path, want, rec.Code)
		}
	}
}

func TestNewMiddleware_InvalidSettings(t *testing.T) {
	tests := []config.AuthSettings{
		{Type: config.AuthTypeBasic, Basic: config.BasicAuthSettings{Username: "admin"}},
		{Type: config.AuthTypeAPIKey},
		{Type: "oauth"},
	}
	for _, settings := range tests {
		if _, err := NewMiddleware(settings); err == nil {
			t.Errorf("Expected error for %+v", settings)
		}
	}
}
