// components/editor/editor.go
//
// Inline-editor API component.
//
// Context
// -------
// The storefront's owner edits copy directly on the page.  The browser
// posts each field change here; the server side funnels it through the
// per-site edit session, which debounces, merges, and flushes to the
// backing store.  Endpoints:
//
//   POST /api/editor/save     – queue one field edit
//   POST /api/editor/refresh  – bump the content version and reload
//   POST /api/editor/mode     – toggle the editing-mode flag
//   GET  /api/editor/state    – editing flag, unsaved flag, version
//
// Authentication is out of scope; the Authorizer hook is where a session
// or role check plugs in.  The default allows everything, which is only
// acceptable behind an authenticated reverse proxy.
//
// Notes
// -----
// • Save responses arrive after the flush attempt, so a 200 means the
//   row was written, not merely queued.
// • Oxford commas, two spaces after periods.

package editor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/audreylyn/Golden-Crumb-sub001/internal/component"
	"github.com/audreylyn/Golden-Crumb-sub001/internal/editor"
	"github.com/audreylyn/Golden-Crumb-sub001/internal/requestinfo"
	"github.com/audreylyn/Golden-Crumb-sub001/internal/resolver"
	"github.com/audreylyn/Golden-Crumb-sub001/internal/tenant"
)

// compile-time assertion
var _ component.Component = (*Comp)(nil)

// tenantSource is the slice of the tenant cache this component needs.
type tenantSource interface {
	Get(ctx context.Context, sel resolver.Selector) (*tenant.Snapshot, error)
	Refresh(ctx context.Context, sel resolver.Selector) (*tenant.Snapshot, error)
}

// Authorizer decides whether the request may edit the given site.
type Authorizer interface {
	Allow(r *http.Request, siteID uint64) bool
}

// allowAll is the default Authorizer.
type allowAll struct{}

func (allowAll) Allow(*http.Request, uint64) bool { return true }

// Comp implements component.Component.
type Comp struct{}

func (c *Comp) Name() string  { return "editor" }
func (c *Comp) Mount() string { return "/api/editor" }

func (c *Comp) Routes(d component.Deps) chi.Router {
	return newRouter(d.Tenants, d.Editors, d.Resolver, allowAll{})
}

type api struct {
	src     tenantSource
	editors *editor.Manager
	cfg     resolver.Config
	auth    Authorizer
}

func newRouter(src tenantSource, editors *editor.Manager, cfg resolver.Config, auth Authorizer) chi.Router {
	a := &api{src: src, editors: editors, cfg: cfg, auth: auth}

	r := chi.NewRouter()
	r.Post("/save", a.postSave)
	r.Post("/refresh", a.postRefresh)
	r.Post("/mode", a.postMode)
	r.Get("/state", a.getState)
	return r
}

//
// Handlers
//

type saveReq struct {
	Table    string `json:"table"`
	Field    string `json:"field"`
	Value    any    `json:"value"`
	RecordID string `json:"record_id"`
}

func (a *api) postSave(w http.ResponseWriter, r *http.Request) {
	var req saveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "malformed JSON body")
		return
	}
	if req.Table == "" || req.Field == "" {
		writeErr(w, http.StatusBadRequest, "table and field are required")
		return
	}

	snap, ok := a.loadTenant(w, r)
	if !ok {
		return
	}
	if !a.auth.Allow(r, snap.Site.ID) {
		writeErr(w, http.StatusForbidden, "not allowed to edit this site")
		return
	}

	sess := a.editors.For(snap.Site.ID)
	err := sess.Save(r.Context(), req.Table, req.Field, req.Value, req.RecordID)

	switch {
	case err == nil:
		a.auditSave(r, snap.Site.ID, req)
		writeJSON(w, http.StatusOK, map[string]any{
			"status":  "ok",
			"unsaved": sess.HasUnsaved(),
		})
	case errors.Is(err, editor.ErrNoTenant), errors.Is(err, editor.ErrSessionClosed):
		writeErr(w, http.StatusConflict, err.Error())
	default:
		var fe *editor.FlushError
		if errors.As(err, &fe) {
			writeJSON(w, http.StatusBadGateway, map[string]any{
				"error":  "some fields failed to save",
				"fields": fe.Fields(),
			})
			return
		}
		// Context cancellation while awaiting the batch; the edit stays
		// queued and flushes regardless.
		writeErr(w, http.StatusServiceUnavailable, err.Error())
	}
}

func (a *api) postRefresh(w http.ResponseWriter, r *http.Request) {
	sel := resolver.Resolve(r.Host, r.URL.Query(), a.cfg)
	if sel.Kind == resolver.None {
		writeErr(w, http.StatusNotFound, "no site selected")
		return
	}
	snap, err := a.src.Refresh(r.Context(), sel)
	if err != nil {
		a.writeTenantErr(w, sel, err)
		return
	}
	if !a.auth.Allow(r, snap.Site.ID) {
		writeErr(w, http.StatusForbidden, "not allowed to edit this site")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"version": snap.Version})
}

type modeReq struct {
	Editing bool `json:"editing"`
}

func (a *api) postMode(w http.ResponseWriter, r *http.Request) {
	var req modeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "malformed JSON body")
		return
	}

	snap, ok := a.loadTenant(w, r)
	if !ok {
		return
	}
	if !a.auth.Allow(r, snap.Site.ID) {
		writeErr(w, http.StatusForbidden, "not allowed to edit this site")
		return
	}

	sess := a.editors.For(snap.Site.ID)
	sess.SetEditing(req.Editing)
	writeJSON(w, http.StatusOK, map[string]any{
		"editing": sess.Editing(),
		"unsaved": sess.HasUnsaved(),
	})
}

func (a *api) getState(w http.ResponseWriter, r *http.Request) {
	snap, ok := a.loadTenant(w, r)
	if !ok {
		return
	}
	sess := a.editors.For(snap.Site.ID)
	writeJSON(w, http.StatusOK, map[string]any{
		"editing": sess.Editing(),
		"unsaved": sess.HasUnsaved(),
		"version": snap.Version,
	})
}

//
// Helpers
//

// loadTenant resolves and loads the request's tenant, writing the error
// response itself when that fails.
func (a *api) loadTenant(w http.ResponseWriter, r *http.Request) (*tenant.Snapshot, bool) {
	sel := resolver.Resolve(r.Host, r.URL.Query(), a.cfg)
	if sel.Kind == resolver.None {
		writeErr(w, http.StatusNotFound, "no site selected")
		return nil, false
	}
	snap, err := a.src.Get(r.Context(), sel)
	if err != nil {
		a.writeTenantErr(w, sel, err)
		return nil, false
	}
	return snap, true
}

func (a *api) writeTenantErr(w http.ResponseWriter, sel resolver.Selector, err error) {
	if errors.Is(err, tenant.ErrNotFound) || errors.Is(err, tenant.ErrInactive) {
		writeErr(w, http.StatusNotFound, "no such site")
		return
	}
	zap.S().Errorw("editor tenant load failed", "selector", sel.Key(), "error", err)
	writeErr(w, http.StatusServiceUnavailable, "site temporarily unavailable")
}

// auditSave logs who saved what, with the UA fingerprint when the
// Enrich middleware ran.
func (a *api) auditSave(r *http.Request, siteID uint64, req saveReq) {
	kv := []any{
		"site", siteID,
		"table", req.Table,
		"field", req.Field,
		"record", req.RecordID,
	}
	if ri := requestinfo.FromContext(r.Context()); ri != nil {
		kv = append(kv,
			"browser", ri.UA.Browser,
			"os", ri.UA.OS,
			"bot", ri.UA.IsBot,
		)
	}
	zap.S().Infow("field saved", kv...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.S().Errorw("encode response", "error", err)
	}
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// Register component at package init.
func init() {
	component.Register(&Comp{})
}
