package app

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/cassiomolin/lucene-example/internal/auth"
	"github.com/cassiomolin/lucene-example/internal/config"
	"golang.org/x/time/rate"
)

// RateLimitExcludedPaths are never throttled.
var RateLimitExcludedPaths = []string{"/health"}

// NewRateLimiter returns middleware answering 429 Too Many Requests once
// requests exceed settings.RequestsPerSecond, with bursts of up to
// settings.Burst. One token bucket is shared by all clients. A zero rate
// disables limiting.
func NewRateLimiter(settings config.RateLimitSettings, excluded ...string) auth.Middleware {
	if settings.RequestsPerSecond <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	burst := max(settings.Burst, 1)
	limiter := rate.NewLimiter(rate.Limit(settings.RequestsPerSecond), burst)
	excluded = slices.Clone(excluded)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if slices.Contains(excluded, r.URL.Path) || limiter.Allow() {
				next.ServeHTTP(w, r)
				return
			}
			slog.Debug("Rate limited request", "path", r.URL.Path, "remote", r.RemoteAddr)
			w.Header().Set("Retry-After", "1")
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
		})
	}
}
