package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/utafrali/storefront/internal/auth"
	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/internal/view"
	"github.com/utafrali/storefront/pkg/logger"
	"github.com/utafrali/storefront/pkg/validator"
)

// maxFormBytes bounds the login form body.
const maxFormBytes = 64 << 10

// LoginRequest is the login submission shared by the form and the JSON API.
// Username and password are accepted but never verified.
type LoginRequest struct {
	Username string `json:"username" validate:"max=256"`
	Password string `json:"password" validate:"max=256"`
	Role     string `json:"role" validate:"omitempty,oneof=Admin Vendor Customer"`
}

// input converts a validated request to the service input. An empty role
// selects the default login role.
func (req LoginRequest) input() service.LoginInput {
	role := domain.DefaultLoginRole
	if parsed, ok := domain.ParseRole(req.Role); ok {
		role = parsed
	}
	return service.LoginInput{
		Username: req.Username,
		Password: req.Password,
		Role:     role,
	}
}

// PageHandler serves the HTML views of the application shell.
type PageHandler struct {
	renderer *view.Renderer
	sessions *service.SessionService
	codec    *auth.CookieCodec
	logger   *slog.Logger
}

// NewPageHandler creates a new page handler.
func NewPageHandler(renderer *view.Renderer, sessions *service.SessionService, codec *auth.CookieCodec, logger *slog.Logger) *PageHandler {
	return &PageHandler{
		renderer: renderer,
		sessions: sessions,
		codec:    codec,
		logger:   logger,
	}
}

// View returns a handler rendering the view with the header of the current session.
func (h *PageHandler) View(id domain.ViewID) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.render(w, r, http.StatusOK, id, view.NewPage(id, auth.RoleFromContext(r.Context())))
	}
}

// Login handles POST /login.
func (h *PageHandler) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		h.renderLoginError(w, r, LoginRequest{}, map[string]string{"form": "could not be read"})
		return
	}

	req := LoginRequest{
		Username: r.PostForm.Get("username"),
		Password: r.PostForm.Get("password"),
		Role:     r.PostForm.Get("role"),
	}
	if err := validator.Validate(req); err != nil {
		var valErr *validator.ValidationError
		if errors.As(err, &valErr) {
			h.renderLoginError(w, r, req, valErr.Fields())
			return
		}
		h.renderLoginError(w, r, req, map[string]string{"form": err.Error()})
		return
	}

	current := auth.SessionFromContext(r.Context())
	sess, err := h.sessions.Login(r.Context(), current.ID, req.input())
	if err != nil {
		h.serverError(w, r, "login failed", err)
		return
	}
	if err := h.codec.SetCookie(w, sess.ID); err != nil {
		h.serverError(w, r, "failed to issue session cookie", err)
		return
	}

	http.Redirect(w, r, sess.Role.DashboardPath(), http.StatusSeeOther)
}

// Logout handles POST /logout. The cookie is cleared even when the store
// cannot be reached so the browser always ends up signed out.
func (h *PageHandler) Logout(w http.ResponseWriter, r *http.Request) {
	current := auth.SessionFromContext(r.Context())
	if err := h.sessions.Logout(r.Context(), current.ID); err != nil {
		logger.FromContext(r.Context()).WarnContext(r.Context(), "logout could not delete session",
			slog.String("error", err.Error()),
		)
	}
	h.codec.ClearCookie(w)
	http.Redirect(w, r, domain.PathLogin, http.StatusSeeOther)
}

func (h *PageHandler) renderLoginError(w http.ResponseWriter, r *http.Request, req LoginRequest, fields map[string]string) {
	page := view.NewPage(domain.ViewLogin, auth.RoleFromContext(r.Context()))
	role, _ := domain.ParseRole(req.Role)
	page.Form = view.LoginForm{
		Username: req.Username,
		Role:     role,
		Errors:   fields,
	}
	h.render(w, r, http.StatusBadRequest, domain.ViewLogin, page)
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, status int, id domain.ViewID, page view.Page) {
	if err := h.renderer.Render(w, status, id, page); err != nil {
		h.serverError(w, r, "failed to render view", err)
	}
}

func (h *PageHandler) serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	l := logger.FromContext(r.Context())
	if l == slog.Default() {
		l = h.logger
	}
	l.ErrorContext(r.Context(), msg,
		slog.String("error", err.Error()),
		slog.String("path", r.URL.Path),
	)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
