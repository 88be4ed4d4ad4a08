// internal/middleware/https.go
//
// HTTPS enforcement for resolved tenant hosts.

package middleware

import (
	"net/http"

	"github.com/audreylyn/Golden-Crumb-sub001/internal/resolver"
	"github.com/audreylyn/Golden-Crumb-sub001/internal/tenant"
)

// ForceHTTPS wraps h.  If the request is plain HTTP and resolves to a
// known tenant, the wrapper issues a 308 Permanent Redirect to the HTTPS
// version of the same URL.  Loopback hosts and unknown hosts pass
// through unchanged (the latter likely 404 later).
func ForceHTTPS(cache *tenant.Cache, cfg resolver.Config, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.TLS != nil {
			h.ServeHTTP(w, r)
			return
		}

		sel := resolver.Resolve(r.Host, r.URL.Query(), cfg)
		if sel.Kind == resolver.None {
			h.ServeHTTP(w, r)
			return
		}

		// Only redirect when the selector maps to a real site.
		if _, err := cache.Get(r.Context(), sel); err == nil {
			target := "https://" + r.Host + r.URL.RequestURI()
			http.Redirect(w, r, target, http.StatusPermanentRedirect)
			return
		}

		h.ServeHTTP(w, r)
	})
}
