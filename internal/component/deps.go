// internal/component/deps.go
package component

import (
	"github.com/audreylyn/Golden-Crumb-sub001/internal/editor"
	"github.com/audreylyn/Golden-Crumb-sub001/internal/resolver"
	"github.com/audreylyn/Golden-Crumb-sub001/internal/tenant"
)

// Deps exposes process-wide resources to Components when their routes
// are mounted.  All fields are shared; components must not close them.
type Deps struct {
	Tenants  *tenant.Cache
	Editors  *editor.Manager
	Resolver resolver.Config
}
