package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/storefront/internal/auth"
	"github.com/utafrali/storefront/internal/config"
	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/guard"
	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/internal/view"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/health"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/middleware"
)

const serviceName = "storefront"

// Dependencies groups what the router needs to build its handlers.
type Dependencies struct {
	Sessions *service.SessionService
	Codec    *auth.CookieCodec
	Renderer *view.Renderer
	Static   http.Handler
	Health   *health.Handler
	Logger   *slog.Logger
}

// NewRouter creates a chi router with the application shell, the JSON API and
// the static fallback registered.
func NewRouter(cfg *config.Config, deps Dependencies) http.Handler {
	logger := deps.Logger
	r := chi.NewRouter()

	// Global middleware
	clientIPs := middleware.NewClientIPResolver(cfg.TrustedProxyCIDRs, logger)
	r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, clientIPs, logger))
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics(serviceName))
	r.Use(middleware.Tracing(serviceName))
	r.Use(LoadSession(deps.Codec, deps.Sessions, logger))
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoints
	r.Get("/health/live", deps.Health.LivenessHandler())
	r.Get("/health/ready", deps.Health.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Pprof debug endpoints with IP allowlist.
	middleware.RegisterPprof(r, cfg.PprofAllowedCIDRs, logger)

	// Application shell
	pages := NewPageHandler(deps.Renderer, deps.Sessions, deps.Codec, logger)
	for _, route := range domain.Routes() {
		h := http.Handler(pages.View(route.View))
		if route.Protected() {
			h = guard.RequireRoles(route, logger)(h)
		}
		r.Method(http.MethodGet, route.Path, h)
	}
	r.Post(domain.PathLogin, pages.Login)
	r.Post(domain.PathLogout, pages.Logout)

	// JSON API
	api := NewAPIHandler(deps.Sessions, deps.Codec, logger)
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.CORS(middleware.CORSConfig{
			AllowedOrigins:   cfg.CORSAllowedOrigins,
			AllowCredentials: true,
			Environment:      cfg.Environment,
		}))
		r.Use(ContentTypeJSON)
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			httputil.WriteError(w, r, apperrors.NotFound("route", r.URL.Path), logger)
		})
		r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
			httputil.WriteJSON(w, http.StatusMethodNotAllowed, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "METHOD_NOT_ALLOWED", Message: r.Method + " is not supported on " + r.URL.Path},
			})
		})

		r.Get("/session", api.GetSession)
		r.Post("/session", api.CreateSession)
		r.Delete("/session", api.DeleteSession)
		r.Get("/routes", api.ListRoutes)

		r.With(guard.RequireAPIRoles("admin_users", domain.NewRoleSet(domain.RoleAdmin), logger)).
			Get("/admin/users", api.ListUsers)
		r.With(guard.RequireAPIRoles("vendor_products", domain.NewRoleSet(domain.RoleVendor), logger)).
			Get("/vendor/products", api.ListVendorProducts)
		r.With(guard.RequireAPIRoles("catalog_products", domain.NewRoleSet(domain.RoleCustomer), logger)).
			Get("/catalog/products", api.ListCatalogProducts)
	})

	// Everything else is a static asset or the entry document.
	fallback := middleware.CacheControl(cfg.StaticMaxAge)(deps.Static)
	r.NotFound(fallback.ServeHTTP)
	r.MethodNotAllowed(fallback.ServeHTTP)

	return r
}
