// internal/server/timeouts.go
//
// HTTP server constructor with hardened timeouts.
//
//   - ReadTimeout   – abort slow-loris headers (10 s)
//   - WriteTimeout  – cap total response time; page renders are
//     cache-backed and fast, so 15 s is generous (15 s)
//   - IdleTimeout   – close keep-alives on idle clients (60 s)
//
// Centralised here so cmd/web doesn't repeat boilerplate.

package server

import (
	"net/http"
	"time"
)

// New constructs an *http.Server with the defaults above.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
		// TLSConfig may be injected by callers (e.g., autocert).
	}
}
