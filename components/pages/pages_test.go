package pages

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/audreylyn/Golden-Crumb-sub001/internal/resolver"
	"github.com/audreylyn/Golden-Crumb-sub001/internal/section"
	"github.com/audreylyn/Golden-Crumb-sub001/internal/site"
	"github.com/audreylyn/Golden-Crumb-sub001/internal/tenant"
	"github.com/audreylyn/Golden-Crumb-sub001/internal/theme"
)

// stubSource serves one snapshot (or error) for every selector and
// counts Get calls.
type stubSource struct {
	snap *tenant.Snapshot
	err  error
	gets int
}

func (s *stubSource) Get(context.Context, resolver.Selector) (*tenant.Snapshot, error) {
	s.gets++
	return s.snap, s.err
}

var testCfg = resolver.Config{ApexDomain: "goldencrumb.test"}

func testSnapshot() *tenant.Snapshot {
	return &tenant.Snapshot{
		Site: site.Record{ID: 7, Subdomain: "rosies", Title: "Rosie's Bakery", Active: true},
		Sections: section.Map{
			"hero":  true,
			"menu":  true,
			"about": false,
			// faq intentionally absent: unknown must render nothing.
		},
		Settings: map[string]string{
			"hero_heading": "Fresh Bread Daily",
			"hero_text":    "Baked before sunrise.",
			"menu_intro":   "Seasonal favorites.",
		},
		Theme:   theme.Defaults(),
		Version: 1,
	}
}

func get(t *testing.T, h http.Handler, url string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, url, nil))
	return rr
}

func TestPageRendersOnlyEnabledSections(t *testing.T) {
	h := newRouter(&stubSource{snap: testSnapshot()}, testCfg)

	rr := get(t, h, "http://rosies.goldencrumb.test/")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()

	if !strings.Contains(body, "Fresh Bread Daily") {
		t.Fatalf("hero section missing from body")
	}
	if !strings.Contains(body, `id="menu"`) {
		t.Fatalf("menu section missing from body")
	}
	// Disabled and unknown sections must both be absent.
	if strings.Contains(body, `id="about"`) {
		t.Fatalf("disabled about section rendered")
	}
	if strings.Contains(body, `id="faq"`) {
		t.Fatalf("unknown faq section rendered")
	}
}

func TestPageIncludesThemeVariablesAndVersion(t *testing.T) {
	h := newRouter(&stubSource{snap: testSnapshot()}, testCfg)

	body := get(t, h, "http://rosies.goldencrumb.test/").Body.String()
	if !strings.Contains(body, "--color-primary:") {
		t.Fatalf("theme CSS variables missing")
	}
	if !strings.Contains(body, "<title>") {
		t.Fatalf("head title missing")
	}
	if !strings.Contains(body, `data-content-version="1"`) {
		t.Fatalf("content version attribute missing")
	}
}

func TestPageCachesPerVersion(t *testing.T) {
	src := &stubSource{snap: testSnapshot()}
	h := newRouter(src, testCfg)

	first := get(t, h, "http://rosies.goldencrumb.test/").Body.String()
	second := get(t, h, "http://rosies.goldencrumb.test/").Body.String()
	if first != second {
		t.Fatalf("cached render differs from first render")
	}

	// A version bump must invalidate the cached page.
	src.snap = testSnapshot()
	src.snap.Version = 2
	src.snap.Settings["hero_heading"] = "New Heading"
	third := get(t, h, "http://rosies.goldencrumb.test/").Body.String()
	if !strings.Contains(third, "New Heading") {
		t.Fatalf("stale page served after version bump")
	}
}

func TestUnknownSiteServesNoSitePage(t *testing.T) {
	h := newRouter(&stubSource{err: tenant.ErrNotFound}, testCfg)

	rr := get(t, h, "http://ghost.goldencrumb.test/")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "No such site") {
		t.Fatalf("no-such-site page missing")
	}
}

func TestInactiveSiteLooksLikeMissing(t *testing.T) {
	h := newRouter(&stubSource{err: tenant.ErrInactive}, testCfg)

	if rr := get(t, h, "http://closed.goldencrumb.test/"); rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 for inactive site", rr.Code)
	}
}

func TestLoadFailureIs503(t *testing.T) {
	h := newRouter(&stubSource{err: errors.New("backing store down")}, testCfg)

	if rr := get(t, h, "http://rosies.goldencrumb.test/"); rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503 on load failure", rr.Code)
	}
}

func TestUnresolvedHostServesNoSitePage(t *testing.T) {
	h := newRouter(&stubSource{snap: testSnapshot()}, testCfg)

	// Bare apex carries no tenant label.
	if rr := get(t, h, "http://goldencrumb.test/"); rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 for bare apex", rr.Code)
	}
}
