// internal/component/registry.go
//
// Component registry (cycle-free).
//
// Each concrete component lives under components/<name> and calls
// component.Register() in an init() function.  cmd/web mounts every
// component's Routes() at "/" after the shared dependencies (tenant
// cache, editor manager, resolver rules) exist.

package component

import (
	"sort"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Component contract.
//
// Mount() is the path prefix cmd/web attaches the component under, and
// Routes() returns the subrouter with paths relative to that prefix:
//
//	r := chi.NewRouter()
//	r.Get("/", getHome)
//	r.Post("/save", postSave)
//	return r
type Component interface {
	Name() string
	Mount() string
	Routes(Deps) chi.Router
}

var (
	mu       sync.RWMutex
	registry = map[string]Component{}
)

// Register is invoked from component init() functions.
func Register(c Component) {
	mu.Lock()
	registry[c.Name()] = c
	mu.Unlock()
}

// All returns every registered component sorted by name, so mounting
// order is stable across runs.
func All() []Component {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Component, 0, len(registry))
	for _, c := range registry {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}
