package security

import (
	"net/http"
	"strings"
)

// Headers sets response hardening headers for the JSON API.
type Headers struct {
	Enable bool
}

// Middleware attaches the headers before the handler runs so handlers may override them.
func (h Headers) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Enable {
			hdr := w.Header()
			hdr.Set("X-Content-Type-Options", "nosniff")
			hdr.Set("X-Frame-Options", "DENY")
			hdr.Set("Referrer-Policy", "no-referrer")
			// exports carry patient names
			if strings.HasSuffix(r.URL.Path, "/export") {
				hdr.Set("Cache-Control", "no-store")
			}
		}
		next.ServeHTTP(w, r)
	})
}
