// internal/resolver/resolver.go
//
// Tenant resolution from ambient request signals.
//
// Context
// -------
// Every request carries two signals that can select a tenant: the Host
// header and the query string.  Resolve maps them to a Selector without
// touching the database, so the very first byte of a response is already
// scoped to the right site.  Anything asynchronous here would show the
// wrong site for a frame, which is exactly the flicker this package
// exists to prevent.
//
// Priority order
// --------------
//  1. A recognized site query parameter (two alias keys) always wins.
//  2. Loopback and dev hosts resolve to None.
//  3. A first label under the platform apex resolves to BySubdomain,
//     unless the host sits on a hosting-provider preview suffix or the
//     label is reserved (www, admin).
//  4. Everything else resolves to None.
//
// Notes
// -----
// • Pure functions only; no I/O, no logging, no globals.
// • Oxford commas, two spaces after periods.

package resolver

import (
	"net/url"
	"strings"
)

// Kind enumerates the three possible resolution outcomes.
type Kind int

const (
	// None means no tenant could be derived from the request.
	None Kind = iota
	// QueryToken selects a tenant by an opaque token from the query string.
	QueryToken
	// Subdomain selects a tenant by its first label under the apex domain.
	Subdomain
)

// Selector is the result of Resolve.  Value holds the token for
// QueryToken and the subdomain label for Subdomain; it is empty for None.
type Selector struct {
	Kind  Kind
	Value string
}

// Key returns a canonical cache key for the selector.  None yields "".
func (s Selector) Key() string {
	switch s.Kind {
	case QueryToken:
		return "tok:" + s.Value
	case Subdomain:
		return "sub:" + s.Value
	}
	return ""
}

// Config carries the externally supplied resolution rules.  ApexDomain is
// the platform's own domain (for example "example.com"); DenySuffixes
// lists hosting-provider domains whose preview deployments must never be
// mistaken for tenant subdomains.
type Config struct {
	ApexDomain   string
	DenySuffixes []string
	QueryKeys    []string
}

// DefaultQueryKeys are the two accepted site-identifier aliases.
var DefaultQueryKeys = []string{"site", "tenant"}

// reserved first labels that never name a tenant.
var reservedLabels = map[string]struct{}{
	"www":   {},
	"admin": {},
}

// Resolve maps (host, query) to a Selector using cfg.  It is synchronous
// and side-effect-free.
func Resolve(host string, query url.Values, cfg Config) Selector {
	keys := cfg.QueryKeys
	if len(keys) == 0 {
		keys = DefaultQueryKeys
	}
	for _, k := range keys {
		if v := query.Get(k); v != "" {
			return Selector{Kind: QueryToken, Value: v}
		}
	}

	h := normalizeHost(host)
	if h == "" || isLoopback(h) {
		return Selector{Kind: None}
	}

	for _, suffix := range cfg.DenySuffixes {
		if suffix == "" {
			continue
		}
		if h == suffix || strings.HasSuffix(h, "."+suffix) {
			return Selector{Kind: None}
		}
	}

	apex := strings.ToLower(strings.TrimSuffix(cfg.ApexDomain, "."))
	if apex == "" || !strings.HasSuffix(h, "."+apex) {
		return Selector{Kind: None}
	}

	// Exactly one label more than the apex, and not a reserved one.
	label := strings.TrimSuffix(h, "."+apex)
	if label == "" || strings.Contains(label, ".") {
		return Selector{Kind: None}
	}
	if _, ok := reservedLabels[label]; ok {
		return Selector{Kind: None}
	}
	return Selector{Kind: Subdomain, Value: label}
}

// normalizeHost lowercases the host and strips any :port suffix.  IPv6
// literals keep their brackets so isLoopback can match them.
func normalizeHost(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	if strings.HasPrefix(h, "[") {
		// "[::1]:8080" → "[::1]"
		if i := strings.LastIndexByte(h, ']'); i != -1 {
			return h[:i+1]
		}
		return h
	}
	if i := strings.IndexByte(h, ':'); i != -1 {
		return h[:i]
	}
	return h
}

// isLoopback recognises local development hosts.
func isLoopback(h string) bool {
	switch h {
	case "localhost", "127.0.0.1", "[::1]", "0.0.0.0":
		return true
	}
	return strings.HasSuffix(h, ".localhost")
}
