// internal/tenant/cache.go
//
// Lazy snapshot cache with refresh and version counting.
//
// Context
// -------
// The cache lazily loads one Snapshot per selector key, stores it in a
// sync.Map, and evicts on idle TTL or LRU pressure.  A singleflight
// group collapses concurrent first hits for the same site into a single
// database load.  Each entry carries the tenant's content version
// counter; Refresh bumps it by exactly one and re-runs the full load
// without touching tenant selection.  The snapshot pointer swaps
// atomically, so readers always see either the old complete snapshot or
// the new one, never a partial state.
//
// Notes
// -----
// • A failed refresh keeps serving the previous snapshot; the error is
//   returned to the caller as the loading-failed state.
// • Oxford commas, two spaces after periods.

package tenant

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/audreylyn/Golden-Crumb-sub001/internal/metrics"
	"github.com/audreylyn/Golden-Crumb-sub001/internal/resolver"
)

// Static defaults.  Override via conf/global.yaml.
const (
	IdleTTL       = 30 * time.Minute
	MaxEntries    = 100
	EvictInterval = 5 * time.Minute
)

type entry struct {
	snap     atomic.Pointer[Snapshot]
	version  atomic.Uint64
	lastSeen int64 // UnixNano
	mu       sync.Mutex // serialises Refresh per entry
}

// Cache loads tenants on demand and keeps them warm.
type Cache struct {
	loader      *Loader
	sfg         singleflight.Group
	m           sync.Map // selector key → *entry
	evictTicker *time.Ticker
	idleTTL     time.Duration
	maxEntries  int
}

// New constructs a Cache and starts the background evictor.
func New(db *sqlx.DB, idleTTL time.Duration, maxEntries int) *Cache {
	c := &Cache{
		loader:     NewLoader(db),
		idleTTL:    idleTTL,
		maxEntries: maxEntries,
	}
	c.evictTicker = time.NewTicker(EvictInterval)
	go c.evictLoop()
	return c
}

// Get returns the Snapshot for sel, loading it on demand.
func (c *Cache) Get(ctx context.Context, sel resolver.Selector) (*Snapshot, error) {
	key := sel.Key()
	if key == "" {
		return nil, ErrNotFound
	}

	if v, ok := c.m.Load(key); ok {
		ent := v.(*entry)
		atomic.StoreInt64(&ent.lastSeen, time.Now().UnixNano())
		return ent.snap.Load(), nil
	}

	v, err, _ := c.sfg.Do(key, func() (interface{}, error) {
		// Double-check after singleflight barrier.
		if v, ok := c.m.Load(key); ok {
			ent := v.(*entry)
			atomic.StoreInt64(&ent.lastSeen, time.Now().UnixNano())
			return ent.snap.Load(), nil
		}
		snap, err := c.loader.Load(ctx, sel)
		if err != nil {
			metrics.TenantLoadErrorsTotal.Inc()
			return nil, err
		}
		ent := &entry{lastSeen: time.Now().UnixNano()}
		ent.version.Store(1)
		snap.Version = 1
		ent.snap.Store(snap)
		c.m.Store(key, ent)
		metrics.TenantLoadTotal.Inc()
		metrics.ActiveTenants.Inc()
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Snapshot), nil
}

// Refresh bumps the content version counter for sel by exactly one and
// re-runs the full load.  Selection is untouched: the same selector maps
// to the same entry before and after.  When the entry was never loaded,
// Refresh falls back to a plain Get.
func (c *Cache) Refresh(ctx context.Context, sel resolver.Selector) (*Snapshot, error) {
	key := sel.Key()
	if key == "" {
		return nil, ErrNotFound
	}
	v, ok := c.m.Load(key)
	if !ok {
		return c.Get(ctx, sel)
	}
	ent := v.(*entry)

	ent.mu.Lock()
	defer ent.mu.Unlock()

	version := ent.version.Add(1)
	snap, err := c.loader.Load(ctx, sel)
	if err != nil {
		// Keep serving the previous snapshot; surface the failure.
		metrics.TenantLoadErrorsTotal.Inc()
		zap.S().Errorw("tenant refresh failed", "key", key, "err", err)
		return nil, err
	}
	snap.Version = version
	ent.snap.Store(snap)
	atomic.StoreInt64(&ent.lastSeen, time.Now().UnixNano())
	metrics.TenantLoadTotal.Inc()
	zap.S().Infow("tenant refreshed", "key", key, "version", version)
	return snap, nil
}
