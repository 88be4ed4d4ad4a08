// internal/config/model.go
//
// Typed configuration model for Golden Crumb.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `.env`                         – dotenv values,
//   • `conf/global.yaml`                      – primary static file,
//   • `CRUMB_`-prefixed environment overrides – highest precedence.
//
// Any value whose string begins with the prefix `vault:` is resolved
// through the Vault client after unmarshalling, so consumers never see
// Vault URIs—only plain strings.
//
// Validation happens immediately after unmarshal; the app fails fast if
// required fields are missing.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`—Koanf ignores `yaml`
//     tags unless configured otherwise.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.
//   • Oxford commas, two spaces after periods.

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/audreylyn/Golden-Crumb-sub001/internal/resolver"
)

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
	ForceHTTPS bool   `koanf:"force_https"`
}

//
// Database section
//

// Database holds the control-plane DSN template and its secret.
//
// The *template* (`GlobalDSN`) is kept in YAML so operators can tweak
// host, port, or flags without touching Vault; it contains exactly one
// %s verb for the password.  The *secret* (`GlobalPassword`) may be a
// literal or a `vault:` URI resolved at load time.
type Database struct {
	GlobalDSN      string `koanf:"global_dsn"      validate:"required"`
	GlobalPassword string `koanf:"global_password" validate:"required"`
}

// DSN renders the template with the resolved password.
func (d Database) DSN() string {
	if strings.Contains(d.GlobalDSN, "%s") {
		return fmt.Sprintf(d.GlobalDSN, d.GlobalPassword)
	}
	return d.GlobalDSN
}

//
// Platform section
//

// Platform carries the tenant-resolution rules: the platform's own apex
// domain, the denylist of hosting-provider preview suffixes, and the
// accepted site query-parameter aliases.
type Platform struct {
	ApexDomain   string   `koanf:"apex_domain" validate:"required,fqdn"`
	DenySuffixes []string `koanf:"deny_suffixes"`
	QueryKeys    []string `koanf:"query_keys"`
}

// ResolverConfig adapts the section for internal/resolver.
func (p Platform) ResolverConfig() resolver.Config {
	return resolver.Config{
		ApexDomain:   p.ApexDomain,
		DenySuffixes: p.DenySuffixes,
		QueryKeys:    p.QueryKeys,
	}
}

//
// Tenant-cache section
//

// TenantCache tunes the snapshot cache.  Zero values fall back to the
// compiled-in defaults in internal/tenant.
type TenantCache struct {
	IdleTTLMinutes int `koanf:"idle_ttl_minutes" validate:"gte=0"`
	MaxEntries     int `koanf:"max_entries"      validate:"gte=0"`
}

// IdleTTL returns the idle eviction TTL as a duration.
func (t TenantCache) IdleTTL(fallback time.Duration) time.Duration {
	if t.IdleTTLMinutes <= 0 {
		return fallback
	}
	return time.Duration(t.IdleTTLMinutes) * time.Minute
}

//
// Editor section
//

// Editor tunes the save pipeline.
type Editor struct {
	DebounceMS int `koanf:"debounce_ms" validate:"gte=0"`
}

// Window returns the debounce window, falling back when unset.
func (e Editor) Window(fallback time.Duration) time.Duration {
	if e.DebounceMS <= 0 {
		return fallback
	}
	return time.Duration(e.DebounceMS) * time.Millisecond
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime—never set in YAML or env.  The loader
// discovers `Root` (repo root or CRUMB_ROOT override) so later code can
// build absolute file paths.
type Paths struct {
	Root string // CRUMB_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	HTTP        HTTP        `koanf:"http"`
	Database    Database    `koanf:"database"`
	Platform    Platform    `koanf:"platform"`
	TenantCache TenantCache `koanf:"tenant_cache"`
	Editor      Editor      `koanf:"editor"`
	Paths       Paths       `koanf:"-"` // not loaded from config files
}
