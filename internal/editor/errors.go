// internal/editor/errors.go
//
// Save-pipeline error taxonomy.
//
// A flush commits each field independently, so its error has to carry
// every failing field rather than just the first: the editing UI reverts
// exactly the controls whose writes failed and leaves the rest alone.

package editor

import (
	"fmt"
	"sort"
	"strings"
)

// ErrNoTenant is returned by Save when the session has no bound site.
var ErrNoTenant = fmt.Errorf("editor: no tenant bound to session")

// ErrSessionClosed is returned by Save after Close.
var ErrSessionClosed = fmt.Errorf("editor: session closed")

// FlushError aggregates every failing field of one flush batch.  Fields
// that committed before a sibling failed stay committed; the backing
// store's per-row update is the unit of atomicity, not the batch.
type FlushError struct {
	Failures map[Key]error
}

func (e *FlushError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for k, err := range e.Failures {
		parts = append(parts, fmt.Sprintf("%s.%s: %v", k.Table, k.Field, err))
	}
	sort.Strings(parts)
	return fmt.Sprintf("editor: %d field(s) failed to save: %s",
		len(e.Failures), strings.Join(parts, "; "))
}

// Fields returns per-field failure messages keyed "table.field" for the
// HTTP layer, so the UI can tell the user which field was lost.
func (e *FlushError) Fields() map[string]string {
	out := make(map[string]string, len(e.Failures))
	for k, err := range e.Failures {
		out[k.Table+"."+k.Field] = err.Error()
	}
	return out
}
