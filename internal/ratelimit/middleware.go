package ratelimit

import (
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/backend-dentlab/internal/common"
)

// Handler throttles a route group per client IP. Redis failures let the request through.
type Handler struct {
	Window Window
	Logger zerolog.Logger
}

// Middleware sets the X-RateLimit headers and answers 429 once the window is full.
func (h Handler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Window.Client == nil {
			next.ServeHTTP(w, r)
			return
		}
		d, err := h.Window.Allow(r.Context(), common.ClientIP(r))
		if err != nil {
			h.Logger.Warn().Err(err).Str("path", r.URL.Path).Msg("rate limit check failed")
			next.ServeHTTP(w, r)
			return
		}

		hdr := w.Header()
		hdr.Set("X-RateLimit-Limit", strconv.Itoa(h.Window.Max))
		hdr.Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		hdr.Set("X-RateLimit-Reset", strconv.FormatInt(d.ResetAt.Unix(), 10))
		if !d.Allowed {
			hdr.Set("Retry-After", strconv.Itoa(max(int(time.Until(d.ResetAt).Seconds()), 1)))
			common.JSONError(w, http.StatusTooManyRequests, "RATE_LIMITED", "too many export requests", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
