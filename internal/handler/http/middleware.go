package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/utafrali/storefront/internal/auth"
	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/logger"
)

// LoadSession resolves the session named by the request cookie and stores it in
// the request context. Requests without a valid cookie, or whose session is
// gone, continue as anonymous visitors and lose the cookie. A store failure
// also yields an anonymous request but keeps the cookie for the next one.
func LoadSession(codec *auth.CookieCodec, sessions *service.SessionService, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			var sess domain.Session
			id, err := codec.SessionID(r)
			if err == nil {
				var lerr error
				sess, lerr = sessions.Lookup(ctx, id)
				if lerr == nil && !sess.Exists() {
					codec.ClearCookie(w)
				}
			} else if _, cerr := r.Cookie(auth.CookieName); cerr == nil {
				log.DebugContext(ctx, "ignoring invalid session cookie", slog.String("error", err.Error()))
				codec.ClearCookie(w)
			}

			ctx = auth.WithSession(ctx, sess)
			ctx = logger.WithSession(ctx, sess.ID, sess.Role.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ContentTypeJSON rejects API writes whose body is not JSON.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if ct != "" && !strings.HasPrefix(ct, "application/json") {
				httputil.WriteJSON(w, http.StatusUnsupportedMediaType, httputil.Response{
					Error: &httputil.ErrorResponse{Code: "UNSUPPORTED_MEDIA_TYPE", Message: "Content-Type must be application/json"},
				})
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
