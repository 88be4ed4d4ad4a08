// cmd/web/main.go
//
// Golden Crumb – HTTP entry point.
//
// Request life-cycle
// ------------------
//
//  1. Load layered config (.env → conf/global.yaml → CRUMB_* env),
//     resolving vault: URIs along the way.
//
//  2. Start daily rotating logger (tees to console when running in a TTY).
//
//  3. Open the control-plane DB and log the active-site count.
//
//  4. Build the tenant snapshot cache (lazy-loads each site on first hit)
//     and the editor manager (one debounced save session per site).
//
//  5. Mount /metrics plus every registered component, wrap the router
//     with request-info enrichment, security headers, and optional
//     HTTPS enforcement.
//
//  6. Serve until SIGINT/SIGTERM, then drain: shut the server down,
//     flush pending edits, and stop the evictor.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/audreylyn/Golden-Crumb-sub001/internal/component"
	"github.com/audreylyn/Golden-Crumb-sub001/internal/config"
	"github.com/audreylyn/Golden-Crumb-sub001/internal/database"
	"github.com/audreylyn/Golden-Crumb-sub001/internal/editor"
	"github.com/audreylyn/Golden-Crumb-sub001/internal/logger"
	"github.com/audreylyn/Golden-Crumb-sub001/internal/middleware"
	"github.com/audreylyn/Golden-Crumb-sub001/internal/requestinfo"
	"github.com/audreylyn/Golden-Crumb-sub001/internal/server"
	"github.com/audreylyn/Golden-Crumb-sub001/internal/storage"
	"github.com/audreylyn/Golden-Crumb-sub001/internal/tenant"

	_ "github.com/audreylyn/Golden-Crumb-sub001/components/editor" // editor API
	_ "github.com/audreylyn/Golden-Crumb-sub001/components/pages"  // public pages
)

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//
	// ── 1.  Config ──────────────────────────────────────────────────────
	//
	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logOut, err := logger.New(cfg.Paths.Root, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}
	defer func() { _ = logOut.Sync() }()

	//
	// ── 2.  Global DB connect ───────────────────────────────────────────
	//
	logOut.Infow("connecting to global DB")
	globalDB, err := database.Open(cfg.Database.DSN())
	if err != nil {
		logOut.Fatalw("connect global DB", "error", err)
	}
	defer globalDB.Close()
	logOut.Infow("global DB online")

	// Log active-site count as an early sanity check.
	var active int
	_ = globalDB.Get(&active, `SELECT COUNT(*) FROM site WHERE active = 1`)
	logOut.Infow("active sites", "count", active)

	//
	// ── 3.  Tenant cache and editor manager ─────────────────────────────
	//
	cache := tenant.New(globalDB,
		cfg.TenantCache.IdleTTL(tenant.IdleTTL),
		maxEntries(cfg.TenantCache.MaxEntries))
	defer cache.Stop()

	editors := editor.NewManager(storage.NewSQL(globalDB),
		cfg.Editor.Window(editor.DefaultWindow))

	//
	// ── 4.  Router: metrics, middleware, components ─────────────────────
	//
	deps := component.Deps{
		Tenants:  cache,
		Editors:  editors,
		Resolver: cfg.Platform.ResolverConfig(),
	}

	r := chi.NewRouter()
	r.Use(requestinfo.Enrich)
	r.Use(middleware.Security)
	r.Handle("/metrics", promhttp.Handler())

	for _, c := range component.All() {
		r.Mount(c.Mount(), c.Routes(deps))
		logOut.Infow("component mounted", "name", c.Name(), "path", c.Mount())
	}

	var handler http.Handler = r
	if cfg.HTTP.ForceHTTPS {
		handler = middleware.ForceHTTPS(cache, deps.Resolver, handler)
	}

	//
	// ── 5.  Serve until signalled, then drain ───────────────────────────
	//
	srv := server.New(cfg.HTTP.ListenAddr, handler)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	logOut.Infow("listening", "addr", cfg.HTTP.ListenAddr)

	select {
	case <-ctx.Done():
		logOut.Infow("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logOut.Fatalw("http server", "error", err)
		}
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutCtx); err != nil {
		logOut.Errorw("server shutdown", "error", err)
	}
	// Pending edits flush before the process exits.
	if err := editors.CloseAll(shutCtx); err != nil {
		logOut.Errorw("editor drain", "error", err)
	}
	logOut.Infow("bye")
}

// maxEntries falls back to the compiled-in cap when the config leaves
// the knob unset.
func maxEntries(n int) int {
	if n <= 0 {
		return tenant.MaxEntries
	}
	return n
}
