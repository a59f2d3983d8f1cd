// internal/app/system/ratelimit/ratelimit.go
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/duasite/internal/app/system/authutil"
	"github.com/go-chi/httprate"
)

// PerIP limits each client address to limit requests per window.
// Limited callers get 429 with a JSON error body.
func PerIP(limit int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(limit, window,
		httprate.WithKeyFuncs(httprate.KeyByRealIP),
		httprate.WithLimitHandler(tooMany),
	)
}

func tooMany(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusTooManyRequests)
	_, _ = w.Write([]byte(`{"error":"Too many requests"}` + "\n"))
}

// LoginLimiter throttles login attempts per account so a single email
// cannot be brute forced from many addresses.
type LoginLimiter struct {
	byEmail *httprate.RateLimiter
}

// NewLoginLimiter allows limit attempts per email per window.
func NewLoginLimiter(limit int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{
		// The caller renders its own message, so the limit handler only
		// needs to leave the response untouched.
		byEmail: httprate.NewRateLimiter(limit, window,
			httprate.WithLimitHandler(func(http.ResponseWriter, *http.Request) {}),
		),
	}
}

// Limited records an attempt for email and reports whether it is over the limit.
// Rate-limit headers are set on w.
func (l *LoginLimiter) Limited(w http.ResponseWriter, r *http.Request, email string) bool {
	key := authutil.NormalizeEmail(email)
	if key == "" {
		return false
	}
	return l.byEmail.OnLimit(w, r, "login:"+key)
}

// ClientIP extracts the client IP from an HTTP request.
// It checks X-Forwarded-For and X-Real-IP headers first (for proxied requests),
// then falls back to RemoteAddr. Returns "unknown" when nothing usable is present.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := strings.TrimSpace(strings.Split(xff, ",")[0]); ip != "" {
			return ip
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	if r.RemoteAddr == "" {
		return "unknown"
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
