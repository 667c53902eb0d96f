package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/utafrali/storefront/internal/auth"
	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/internal/view"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/validator"
)

// APIHandler serves the JSON view of sessions, routes and dashboard data.
type APIHandler struct {
	sessions *service.SessionService
	codec    *auth.CookieCodec
	logger   *slog.Logger
}

// NewAPIHandler creates a new API handler.
func NewAPIHandler(sessions *service.SessionService, codec *auth.CookieCodec, logger *slog.Logger) *APIHandler {
	return &APIHandler{
		sessions: sessions,
		codec:    codec,
		logger:   logger,
	}
}

// --- Response DTOs ---

// SessionResponse describes the current session.
type SessionResponse struct {
	Role          domain.Role    `json:"role"`
	Authenticated bool           `json:"authenticated"`
	Links         []view.NavLink `json:"links"`
	Dashboard     string         `json:"dashboard,omitempty"`
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	Role     domain.Role `json:"role"`
	Redirect string      `json:"redirect"`
}

// RouteResponse describes one entry of the route table.
type RouteResponse struct {
	Path         string   `json:"path"`
	View         string   `json:"view"`
	Protected    bool     `json:"protected"`
	AllowedRoles []string `json:"allowed_roles"`
}

func newSessionResponse(s domain.Session) SessionResponse {
	resp := SessionResponse{
		Role:          s.Role,
		Authenticated: s.Authenticated(),
		Links:         view.NavLinks(s.Role),
	}
	if s.Authenticated() {
		resp.Dashboard = s.Role.DashboardPath()
	}
	return resp
}

// --- Handlers ---

// GetSession handles GET /api/v1/session.
func (h *APIHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: newSessionResponse(auth.SessionFromContext(r.Context())),
	})
}

// CreateSession handles POST /api/v1/session.
func (h *APIHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		var valErr *validator.ValidationError
		if !errors.As(err, &valErr) {
			err = apperrors.InvalidInput("invalid request body")
		}
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	current := auth.SessionFromContext(r.Context())
	sess, err := h.sessions.Login(r.Context(), current.ID, req.input())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	if err := h.codec.SetCookie(w, sess.ID); err != nil {
		httputil.WriteError(w, r, apperrors.Internal(err), h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{
		Data: LoginResponse{Role: sess.Role, Redirect: sess.Role.DashboardPath()},
	})
}

// DeleteSession handles DELETE /api/v1/session.
func (h *APIHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	current := auth.SessionFromContext(r.Context())
	if err := h.sessions.Logout(r.Context(), current.ID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	h.codec.ClearCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// ListRoutes handles GET /api/v1/routes.
func (h *APIHandler) ListRoutes(w http.ResponseWriter, r *http.Request) {
	routes := domain.Routes()
	out := make([]RouteResponse, 0, len(routes))
	for _, rt := range routes {
		out = append(out, RouteResponse{
			Path:         rt.Path,
			View:         string(rt.View),
			Protected:    rt.Protected(),
			AllowedRoles: rt.Allowed.Labels(),
		})
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: out})
}

// ListUsers handles GET /api/v1/admin/users.
func (h *APIHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: domain.Users()})
}

// ListVendorProducts handles GET /api/v1/vendor/products.
func (h *APIHandler) ListVendorProducts(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: domain.VendorProducts()})
}

// ListCatalogProducts handles GET /api/v1/catalog/products.
func (h *APIHandler) ListCatalogProducts(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: domain.CatalogProducts()})
}
