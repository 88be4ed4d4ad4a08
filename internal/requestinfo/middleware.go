//
//  internal/requestinfo/middleware.go
//
//  Enrich builds a RequestInfo for every request and stores it in the
//  request context so downstream handlers (editor audit logging in
//  particular) can read it with FromContext.  Parsing is cheap enough
//  to run unconditionally; there is no sampling.
//

package requestinfo

import (
	"context"
	"net/http"
	"time"
)

// Enrich parses the user-agent and language headers and attaches the
// resulting RequestInfo to the request context.
func Enrich(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info := &RequestInfo{
			UA:        parseUA(r.Header.Get("User-Agent"), r.Header.Get("Accept-Language")),
			URL:       r.URL,
			Timestamp: time.Now(),
		}
		ctx := context.WithValue(r.Context(), ctxKey{}, info)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
