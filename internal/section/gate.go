// internal/section/gate.go
//
// Tri-state section visibility.
//
// Context
// -------
// A page region must distinguish three states: Unknown (the tenant
// snapshot has not loaded, or no row mentions the section), Enabled, and
// Disabled.  Collapsing Unknown into either boolean is what causes the
// flash of hidden-then-shown content, so the gate keeps all three
// explicit.  A region renders when and only when the gate says Enabled;
// Unknown vs Disabled only decides whether the region shows its own
// loading placeholder, which is the caller's business.
//
// The gate never errors: absence is a valid answer, not a failure.

package section

// Visibility is the tri-state answer for one section name.
type Visibility int

const (
	Unknown Visibility = iota
	Enabled
	Disabled
)

// String implements fmt.Stringer for logs and templates.
func (v Visibility) String() string {
	switch v {
	case Enabled:
		return "enabled"
	case Disabled:
		return "disabled"
	}
	return "unknown"
}

// Map holds per-section flags for one tenant.  A key's absence means
// Unknown; presence carries the explicit boolean.
type Map map[string]bool

// Gate answers visibility questions against one tenant's map.  A nil
// Gate, or a Gate over a nil map, answers Unknown for every name, which
// is exactly the pre-load state.
type Gate struct {
	m Map
}

// NewGate wraps a visibility map.  Pass nil while the snapshot is still
// loading.
func NewGate(m Map) *Gate {
	return &Gate{m: m}
}

// IsEnabled reports the tri-state visibility for name.
func (g *Gate) IsEnabled(name string) Visibility {
	if g == nil || g.m == nil {
		return Unknown
	}
	on, ok := g.m[name]
	if !ok {
		return Unknown
	}
	if on {
		return Enabled
	}
	return Disabled
}
