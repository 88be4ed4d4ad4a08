// internal/tenant/errors.go
//
// Load-failure taxonomy for the content store.
//
// Context
// -------
// Three failure kinds must stay distinguishable: a site that does not
// exist, a site that exists but is deactivated, and a load that failed
// midway.  Public rendering treats the first two identically ("no such
// site"), but diagnostics must never see a half-failed load reported as
// a missing row, so PartialLoadError is its own type rather than a
// wrapped ErrNotFound.

package tenant

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the selector resolves to no site row.
var ErrNotFound = errors.New("tenant not found")

// ErrInactive is returned when the site row exists but is deactivated.
// Callers rendering public pages treat it like ErrNotFound.
var ErrInactive = errors.New("tenant inactive")

// PartialLoadError reports that one of the concurrent load fetches
// failed.  The snapshot is discarded whole; nothing renders with half
// data.
type PartialLoadError struct {
	SiteErr     error // site-row fetch
	SectionsErr error // section-visibility fetch
	ThemeErr    error // theme-preset fetch
}

func (e *PartialLoadError) Error() string {
	return fmt.Sprintf("tenant load incomplete (site: %v, sections: %v, theme: %v)",
		e.SiteErr, e.SectionsErr, e.ThemeErr)
}

// Unwrap exposes the underlying fetch errors to errors.Is / errors.As.
func (e *PartialLoadError) Unwrap() []error {
	var errs []error
	for _, err := range []error{e.SiteErr, e.SectionsErr, e.ThemeErr} {
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
