package editor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/audreylyn/Golden-Crumb-sub001/internal/editor"
	"github.com/audreylyn/Golden-Crumb-sub001/internal/resolver"
	"github.com/audreylyn/Golden-Crumb-sub001/internal/site"
	"github.com/audreylyn/Golden-Crumb-sub001/internal/tenant"
)

//
// Test doubles
//

// stubSource serves one snapshot (or error) for every selector.
type stubSource struct {
	snap    *tenant.Snapshot
	err     error
	refresh *tenant.Snapshot
}

func (s *stubSource) Get(context.Context, resolver.Selector) (*tenant.Snapshot, error) {
	return s.snap, s.err
}

func (s *stubSource) Refresh(context.Context, resolver.Selector) (*tenant.Snapshot, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.refresh, nil
}

type writeRec struct {
	table, field string
	value        any
	byID         string // empty means parent-scoped
	parent       uint64
}

// fakeStore records update calls; fail maps "table.field" to an error.
type fakeStore struct {
	mu     sync.Mutex
	writes []writeRec
	fail   map[string]error
}

func (f *fakeStore) GetByID(context.Context, string, string) (map[string]any, error) {
	return nil, nil
}

func (f *fakeStore) ListByParent(context.Context, string, uint64) ([]map[string]any, error) {
	return nil, nil
}

func (f *fakeStore) Insert(context.Context, string, map[string]any) (int64, error) {
	return 0, nil
}

func (f *fakeStore) UpdateByID(_ context.Context, table, id string, fields map[string]any) error {
	return f.record(table, fields, id, 0)
}

func (f *fakeStore) UpdateByParent(_ context.Context, table string, parentID uint64, fields map[string]any) error {
	return f.record(table, fields, "", parentID)
}

func (f *fakeStore) record(table string, fields map[string]any, id string, parent uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for field, val := range fields {
		if err, ok := f.fail[table+"."+field]; ok {
			return err
		}
		f.writes = append(f.writes, writeRec{
			table: table, field: field, value: val, byID: id, parent: parent,
		})
	}
	return nil
}

func (f *fakeStore) snapshotWrites() []writeRec {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]writeRec, len(f.writes))
	copy(out, f.writes)
	return out
}

// deny rejects every edit.
type deny struct{}

func (deny) Allow(*http.Request, uint64) bool { return false }

//
// Harness
//

var testCfg = resolver.Config{ApexDomain: "goldencrumb.test"}

func testSnapshot(version uint64) *tenant.Snapshot {
	return &tenant.Snapshot{
		Site:    site.Record{ID: 7, Subdomain: "rosies", Title: "Rosie's Bakery", Active: true},
		Version: version,
	}
}

func newTestAPI(t *testing.T, src tenantSource, store *fakeStore, auth Authorizer) http.Handler {
	t.Helper()
	mgr := editor.NewManager(store, 5*time.Millisecond)
	t.Cleanup(func() { _ = mgr.CloseAll(context.Background()) })
	return newRouter(src, mgr, testCfg, auth)
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, "http://rosies.goldencrumb.test"+path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rr.Body.String())
	}
	return m
}

//
// Tests
//

func TestSaveWritesParentScopedField(t *testing.T) {
	store := &fakeStore{}
	h := newTestAPI(t, &stubSource{snap: testSnapshot(1)}, store, allowAll{})

	rr := doJSON(t, h, http.MethodPost, "/save",
		`{"table":"site_content","field":"hero_heading","value":"Fresh Daily"}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %q)", rr.Code, rr.Body.String())
	}
	body := decodeBody(t, rr)
	if body["status"] != "ok" {
		t.Fatalf("status field = %v, want ok", body["status"])
	}
	if body["unsaved"] != true {
		t.Fatalf("unsaved = %v, want true after a successful write", body["unsaved"])
	}

	writes := store.snapshotWrites()
	if len(writes) != 1 {
		t.Fatalf("store writes = %d, want 1", len(writes))
	}
	w := writes[0]
	if w.table != "site_content" || w.field != "hero_heading" || w.value != "Fresh Daily" {
		t.Fatalf("unexpected write %+v", w)
	}
	if w.byID != "" || w.parent != 7 {
		t.Fatalf("write should be parent-scoped to site 7, got %+v", w)
	}
}

func TestSaveWithRecordIDRoutesByID(t *testing.T) {
	store := &fakeStore{}
	h := newTestAPI(t, &stubSource{snap: testSnapshot(1)}, store, allowAll{})

	rr := doJSON(t, h, http.MethodPost, "/save",
		`{"table":"menu_item","field":"price","value":"4.50","record_id":"42"}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	writes := store.snapshotWrites()
	if len(writes) != 1 || writes[0].byID != "42" {
		t.Fatalf("expected one id-scoped write for record 42, got %+v", writes)
	}
}

func TestSaveRejectsMissingFields(t *testing.T) {
	h := newTestAPI(t, &stubSource{snap: testSnapshot(1)}, &fakeStore{}, allowAll{})

	rr := doJSON(t, h, http.MethodPost, "/save", `{"table":"","field":"x","value":1}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}

	rr = doJSON(t, h, http.MethodPost, "/save", `{not json`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for malformed JSON", rr.Code)
	}
}

func TestSaveUnknownSiteIs404(t *testing.T) {
	h := newTestAPI(t, &stubSource{err: tenant.ErrNotFound}, &fakeStore{}, allowAll{})

	rr := doJSON(t, h, http.MethodPost, "/save",
		`{"table":"site_content","field":"hero_heading","value":"x"}`)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}

func TestSaveForbiddenLeavesStoreUntouched(t *testing.T) {
	store := &fakeStore{}
	h := newTestAPI(t, &stubSource{snap: testSnapshot(1)}, store, deny{})

	rr := doJSON(t, h, http.MethodPost, "/save",
		`{"table":"site_content","field":"hero_heading","value":"x"}`)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rr.Code)
	}
	if n := len(store.snapshotWrites()); n != 0 {
		t.Fatalf("store writes = %d, want 0 when denied", n)
	}
}

func TestSaveFlushFailureReportsFields(t *testing.T) {
	store := &fakeStore{fail: map[string]error{
		"site_content.hero_heading": context.DeadlineExceeded,
	}}
	h := newTestAPI(t, &stubSource{snap: testSnapshot(1)}, store, allowAll{})

	rr := doJSON(t, h, http.MethodPost, "/save",
		`{"table":"site_content","field":"hero_heading","value":"x"}`)

	if rr.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rr.Code)
	}
	body := decodeBody(t, rr)
	fields, ok := body["fields"].(map[string]any)
	if !ok {
		t.Fatalf("fields missing from failure response: %v", body)
	}
	if _, ok := fields["site_content.hero_heading"]; !ok {
		t.Fatalf("failed field not reported: %v", fields)
	}
}

func TestRefreshReturnsNewVersion(t *testing.T) {
	src := &stubSource{snap: testSnapshot(1), refresh: testSnapshot(2)}
	h := newTestAPI(t, src, &fakeStore{}, allowAll{})

	rr := doJSON(t, h, http.MethodPost, "/refresh", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := decodeBody(t, rr)
	if body["version"] != float64(2) {
		t.Fatalf("version = %v, want 2", body["version"])
	}
}

func TestModeAndStateRoundTrip(t *testing.T) {
	h := newTestAPI(t, &stubSource{snap: testSnapshot(3)}, &fakeStore{}, allowAll{})

	rr := doJSON(t, h, http.MethodPost, "/mode", `{"editing":true}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("mode status = %d, want 200", rr.Code)
	}
	if body := decodeBody(t, rr); body["editing"] != true {
		t.Fatalf("editing = %v, want true", body["editing"])
	}

	rr = doJSON(t, h, http.MethodGet, "/state", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("state status = %d, want 200", rr.Code)
	}
	body := decodeBody(t, rr)
	if body["editing"] != true || body["unsaved"] != false {
		t.Fatalf("state = %v, want editing=true unsaved=false", body)
	}
	if body["version"] != float64(3) {
		t.Fatalf("version = %v, want 3", body["version"])
	}
}
