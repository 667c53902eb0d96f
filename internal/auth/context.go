package auth

import (
	"context"

	"github.com/utafrali/storefront/internal/domain"
)

type sessionKey struct{}

// WithSession returns a context carrying the resolved session of the request.
func WithSession(ctx context.Context, s domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns the session stored by WithSession, or an anonymous
// session when none was stored.
func SessionFromContext(ctx context.Context) domain.Session {
	if s, ok := ctx.Value(sessionKey{}).(domain.Session); ok {
		return s
	}
	return domain.Session{}
}

// RoleFromContext is shorthand for SessionFromContext(ctx).Role.
func RoleFromContext(ctx context.Context) domain.Role {
	return SessionFromContext(ctx).Role
}
