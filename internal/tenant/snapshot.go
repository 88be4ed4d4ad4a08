// internal/tenant/snapshot.go
//
// Immutable per-tenant snapshot.
//
// Context
// -------
// A Snapshot aggregates everything a request handler needs to serve one
// site: the site row, the tri-state section map, the key-value settings,
// and the resolved theme variables.  It is built whole by the loader and
// never mutated afterward; a refresh produces a new Snapshot under a new
// version.  Handlers holding an old pointer keep a consistent view.

package tenant

import (
	"github.com/audreylyn/Golden-Crumb-sub001/internal/section"
	"github.com/audreylyn/Golden-Crumb-sub001/internal/site"
	"github.com/audreylyn/Golden-Crumb-sub001/internal/theme"
)

// Snapshot is the complete, loaded state of one tenant.
type Snapshot struct {
	Site     site.Record
	Sections section.Map
	Settings map[string]string
	Theme    theme.Variables

	// Version is the content version counter at load time.  It changes
	// only through Cache.Refresh; consumers that derive their own data
	// from the backing store re-fetch when it moves.
	Version uint64
}

// Gate returns a section gate over this snapshot.  A nil snapshot
// yields a gate that answers Unknown for every name, which is the
// correct pre-load behavior.
func (s *Snapshot) Gate() *section.Gate {
	if s == nil {
		return section.NewGate(nil)
	}
	return section.NewGate(s.Sections)
}
