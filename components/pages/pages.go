// components/pages/pages.go
//
// Public pages component.
//
// Context
// -------
// This is the storefront: one handler that resolves the tenant from the
// request, loads its snapshot, and renders the bakery landing page with
// theme variables injected as CSS custom properties.  Every section of
// the page is gated through the snapshot's visibility map; a section
// renders only when its flag is explicitly true.  Unknown and disabled
// both render nothing, so a half-loaded tenant never flashes content.
//
// Rendered HTML is cached per (selector, content version); a refresh
// bumps the version, which naturally misses the cache and re-renders.
//
// Notes
// -----
// • The "no such site" page is distinct from a plain 404 so that a
//   visitor mistyping a subdomain gets a useful hint.
// • Oxford commas, two spaces after periods.

package pages

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/audreylyn/Golden-Crumb-sub001/internal/cache"
	"github.com/audreylyn/Golden-Crumb-sub001/internal/component"
	"github.com/audreylyn/Golden-Crumb-sub001/internal/head"
	"github.com/audreylyn/Golden-Crumb-sub001/internal/resolver"
	"github.com/audreylyn/Golden-Crumb-sub001/internal/section"
	"github.com/audreylyn/Golden-Crumb-sub001/internal/tenant"
)

// compile-time assertion
var _ component.Component = (*Comp)(nil)

// sectionNames is the fixed, enumerable set of page regions.  The gate
// trusts these names; it never validates them against the store.
var sectionNames = []string{
	"hero", "about", "menu", "gallery", "testimonials", "faq", "contact",
}

// pageCacheSize bounds the rendered-HTML cache.  Each entry is one full
// page, so even at the cap memory stays in the low megabytes.
const pageCacheSize = 256

// tenantSource is the slice of the tenant cache the renderer needs.
type tenantSource interface {
	Get(ctx context.Context, sel resolver.Selector) (*tenant.Snapshot, error)
}

// Comp implements component.Component.
type Comp struct{}

func (c *Comp) Name() string  { return "pages" }
func (c *Comp) Mount() string { return "/" }

func (c *Comp) Routes(d component.Deps) chi.Router {
	return newRouter(d.Tenants, d.Resolver)
}

// renderer holds the per-process page cache; the tenant cache and
// resolver rules are shared.
type renderer struct {
	src tenantSource
	cfg resolver.Config

	mu    sync.Mutex
	pages *cache.LRU // (selector key + version) -> []byte
}

func newRouter(src tenantSource, cfg resolver.Config) chi.Router {
	rd := &renderer{src: src, cfg: cfg, pages: cache.New(pageCacheSize)}

	r := chi.NewRouter()
	r.Get("/", rd.servePage)
	return r
}

func (rd *renderer) servePage(w http.ResponseWriter, r *http.Request) {
	sel := resolver.Resolve(r.Host, r.URL.Query(), rd.cfg)
	if sel.Kind == resolver.None {
		rd.serveNoSite(w)
		return
	}

	snap, err := rd.src.Get(r.Context(), sel)
	if err != nil {
		// Inactive sites look exactly like missing ones to visitors.
		if errors.Is(err, tenant.ErrNotFound) || errors.Is(err, tenant.ErrInactive) {
			rd.serveNoSite(w)
			return
		}
		zap.S().Errorw("page load failed", "selector", sel.Key(), "error", err)
		http.Error(w, "site temporarily unavailable", http.StatusServiceUnavailable)
		return
	}

	key := cacheKey(sel, snap.Version)

	rd.mu.Lock()
	if v, ok := rd.pages.Get(key); ok {
		rd.mu.Unlock()
		writeHTML(w, http.StatusOK, v.([]byte))
		return
	}
	rd.mu.Unlock()

	body, err := renderPage(snap)
	if err != nil {
		zap.S().Errorw("page render failed", "selector", sel.Key(), "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	rd.mu.Lock()
	rd.pages.Add(key, body)
	rd.mu.Unlock()

	writeHTML(w, http.StatusOK, body)
}

func (rd *renderer) serveNoSite(w http.ResponseWriter) {
	var buf bytes.Buffer
	if err := noSiteTpl.Execute(&buf, nil); err != nil {
		http.Error(w, "no such site", http.StatusNotFound)
		return
	}
	writeHTML(w, http.StatusNotFound, buf.Bytes())
}

func cacheKey(sel resolver.Selector, version uint64) string {
	// Version is part of the key, so refreshes miss and old entries age
	// out of the LRU on their own.
	return sel.Key() + "#v" + itoa(version)
}

func itoa(v uint64) string {
	if v == 0 {
		return "0"
	}
	var b [20]byte
	i := len(b)
	for v > 0 {
		i--
		b[i] = byte('0' + v%10)
		v /= 10
	}
	return string(b[i:])
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// renderPage executes the landing-page template against one snapshot.
// Only sections whose gate answers Enabled make it into the output.
func renderPage(snap *tenant.Snapshot) ([]byte, error) {
	gate := snap.Gate()
	visible := make(map[string]bool, len(sectionNames))
	for _, name := range sectionNames {
		visible[name] = gate.IsEnabled(name) == section.Enabled
	}

	// Seed standard head tags; the layout template emits them.
	hb := head.New()
	hb.SetTitle(snap.Site.Title)
	hb.Meta(`<meta charset="utf-8">`)
	hb.Meta(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	hb.Link(`<link rel="icon" href="/favicon.ico">`)

	data := map[string]any{
		"Site":     snap.Site,
		"Head":     hb,
		"Settings": snap.Settings,
		"Sections": visible,
		"CSS":      snap.Theme.CSSVars(),
		"Version":  snap.Version,
	}

	var buf bytes.Buffer
	if err := pageTpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Register component at package init.
func init() {
	component.Register(&Comp{})
}
