package guard

import (
	"log/slog"
	"net/http"

	"github.com/utafrali/storefront/internal/auth"
	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/logger"
)

// RequireRoles wraps the view of a protected route. Visitors whose session role
// is not admitted get a 303 to the login view and never reach next.
func RequireRoles(route domain.Route, fallback *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := auth.RoleFromContext(r.Context())
			decision := Evaluate(route.Allowed, role)
			recordDecision(route.Path, decision)

			if decision.Allowed() {
				next.ServeHTTP(w, r)
				return
			}

			logFor(r, fallback).InfoContext(r.Context(), "route access denied",
				slog.String("route", route.Path),
				slog.String("role", role.String()),
				slog.String("allowed", route.Allowed.String()),
				slog.String("decision", decision.String()),
			)
			http.Redirect(w, r, decision.Redirect(), http.StatusSeeOther)
		})
	}
}

// RequireAPIRoles is the JSON counterpart of RequireRoles. It answers 401 when
// no role is stored and 403 when the stored role is not admitted.
func RequireAPIRoles(name string, allowed domain.RoleSet, fallback *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := auth.RoleFromContext(r.Context())
			decision := Evaluate(allowed, role)
			recordDecision(name, decision)

			switch decision {
			case Allow:
				next.ServeHTTP(w, r)
			case DenyUnauthenticated:
				httputil.WriteError(w, r, apperrors.Unauthorized("login required"), fallback)
			case DenyForbidden:
				httputil.WriteError(w, r, apperrors.Forbidden("role "+role.String()+" may not access this resource"), fallback)
			}
		})
	}
}

func logFor(r *http.Request, fallback *slog.Logger) *slog.Logger {
	l := logger.FromContext(r.Context())
	if l == slog.Default() && fallback != nil {
		return fallback
	}
	return l
}
