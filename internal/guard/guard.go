// Package guard decides whether the current session may see a route.
package guard

import (
	"github.com/utafrali/storefront/internal/domain"
)

// Decision is the outcome of evaluating a route's allowed roles against the
// current session role.
type Decision int

const (
	// Allow renders the protected view.
	Allow Decision = iota
	// DenyUnauthenticated means no role is stored in the session.
	DenyUnauthenticated
	// DenyForbidden means a role is stored but the route does not admit it.
	DenyForbidden
)

// String returns the label used in logs and metrics.
func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case DenyUnauthenticated:
		return "deny_unauthenticated"
	case DenyForbidden:
		return "deny_forbidden"
	default:
		return "unknown"
	}
}

// Allowed reports whether d admits the visitor.
func (d Decision) Allowed() bool {
	return d == Allow
}

// Redirect returns the path a denied visitor is sent to, or "" when d admits
// the visitor. Both deny outcomes land on the login view.
func (d Decision) Redirect() string {
	switch d {
	case Allow:
		return ""
	case DenyUnauthenticated, DenyForbidden:
		return domain.PathLogin
	default:
		return domain.PathLogin
	}
}

// Evaluate decides access for current against allowed. An empty set admits
// every visitor, signed in or not.
func Evaluate(allowed domain.RoleSet, current domain.Role) Decision {
	if allowed.Empty() {
		return Allow
	}
	if !current.IsSet() {
		return DenyUnauthenticated
	}
	if allowed.Contains(current) {
		return Allow
	}
	return DenyForbidden
}
