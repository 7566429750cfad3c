// Package auth guards the HTTP endpoints of the query server.
package auth

import (
	"crypto/subtle"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/cassiomolin/lucene-example/internal/config"
)

// APIKeyHeader carries the API key when auth type is apikey. A bearer
// token in the Authorization header is accepted as well.
const APIKeyHeader = "X-API-Key"

// DefaultExcludedPaths bypass authentication: liveness and scraping.
var DefaultExcludedPaths = []string{"/health", "/metrics"}

// Middleware wraps a handler.
type Middleware func(http.Handler) http.Handler

// NewMiddleware creates an authentication middleware from settings. Requests
// to DefaultExcludedPaths are never challenged.
func NewMiddleware(settings config.AuthSettings) (Middleware, error) {
	return NewMiddlewareExcluding(settings, DefaultExcludedPaths...)
}

// NewMiddlewareExcluding is NewMiddleware with an explicit exclusion list.
func NewMiddlewareExcluding(settings config.AuthSettings, excluded ...string) (Middleware, error) {
	var check func(r *http.Request) bool
	challenge := ""

	switch settings.Type {
	case config.AuthTypeNone, "":
		return func(next http.Handler) http.Handler { return next }, nil
	case config.AuthTypeBasic:
		if settings.Basic.Username == "" || settings.Basic.Password == "" {
			return nil, fmt.Errorf("basic auth requires non-empty username and password")
		}
		check = basicCheck(settings.Basic)
		challenge = `Basic realm="lucene-example"`
	case config.AuthTypeAPIKey:
		if len(settings.APIKeys) == 0 {
			return nil, fmt.Errorf("apikey auth requires at least one API key")
		}
		check = apiKeyCheck(settings.APIKeys)
	default:
		return nil, fmt.Errorf("unknown auth type: %s", settings.Type)
	}

	excluded = slices.Clone(excluded)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if slices.Contains(excluded, r.URL.Path) || check(r) {
				next.ServeHTTP(w, r)
				return
			}
			slog.Debug("Rejected unauthenticated request", "path", r.URL.Path, "remote", r.RemoteAddr)
			if challenge != "" {
				w.Header().Set("WWW-Authenticate", challenge)
			}
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
		})
	}, nil
}

func basicCheck(settings config.BasicAuthSettings) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		user, pass, ok := r.BasicAuth()
		userMatch := subtle.ConstantTimeCompare([]byte(user), []byte(settings.Username)) == 1
		passMatch := subtle.ConstantTimeCompare([]byte(pass), []byte(settings.Password)) == 1
		return ok && userMatch && passMatch
	}
}

func apiKeyCheck(apiKeys []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		key := requestAPIKey(r)
		if key == "" {
			return false
		}
		valid := false
		for _, k := range apiKeys {
			if subtle.ConstantTimeCompare([]byte(key), []byte(k)) == 1 {
				valid = true
			}
		}
		return valid
	}
}

func requestAPIKey(r *http.Request) string {
	if key := r.Header.Get(APIKeyHeader); key != "" {
		return key
	}
	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}
