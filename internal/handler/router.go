package handler

import (
	"net/http"

	"github.com/Stewz00/doc-analysis-api/internal/logging"
	"github.com/Stewz00/doc-analysis-api/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// APIPrefix is the versioned prefix every route is also served under.
const APIPrefix = "/api/v1"

type route struct {
	method  string
	pattern string
	handler http.HandlerFunc
}

// RouterConfig carries everything NewRouter wires together.
type RouterConfig struct {
	Auth      *AuthHandler
	Resources []*ResourceHandler
	Health    *HealthHandler
	Logger    logging.Logger

	// ResourceAuth guards the placeholder resources when non-nil.
	ResourceAuth func(http.Handler) http.Handler

	// CORSOrigins enables CORS under APIPrefix. Empty disables it.
	CORSOrigins []string

	DisableRateLimit bool
}

func authRoutes(h *AuthHandler) []route {
	return []route{
		{http.MethodPost, "/auth/register", h.Register},
		{http.MethodPost, "/auth/login", h.Login},
	}
}

func resourceRoutes(hs []*ResourceHandler) []route {
	routes := make([]route, 0, 2*len(hs))
	for _, h := range hs {
		routes = append(routes,
			route{http.MethodGet, h.Path(), h.List},
			route{http.MethodPost, h.Path(), h.Create},
		)
	}
	return routes
}

func healthRoutes(h *HealthHandler) []route {
	return []route{
		{http.MethodGet, "/health", h.Health},
		{http.MethodGet, "/ready", h.Ready},
	}
}

func mount(r chi.Router, routes []route) {
	for _, rt := range routes {
		r.Method(rt.method, rt.pattern, rt.handler)
	}
}

func corsHandler(origins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	})
}

// NewRouter builds the HTTP handler from the routing tables above. Every
// route answers both at the root and under APIPrefix; only the latter
// speaks CORS.
func NewRouter(cfg RouterConfig) http.Handler {
	api := chi.NewRouter()

	api.Group(func(r chi.Router) {
		mount(r, healthRoutes(cfg.Health))
	})

	// Auth routes with strict rate limiting
	api.Group(func(r chi.Router) {
		if !cfg.DisableRateLimit {
			r.Use(middleware.StrictRateLimiter())
		}
		mount(r, authRoutes(cfg.Auth))
	})

	api.Group(func(r chi.Router) {
		if cfg.ResourceAuth != nil {
			r.Use(cfg.ResourceAuth)
		}
		mount(r, resourceRoutes(cfg.Resources))
	})

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.StripSlashes)
	if !cfg.DisableRateLimit {
		r.Use(middleware.RateLimiter())
	}

	r.Route(APIPrefix, func(v1 chi.Router) {
		if len(cfg.CORSOrigins) > 0 {
			v1.Use(corsHandler(cfg.CORSOrigins))
		}
		v1.Mount("/", api)
	})
	r.Mount("/", api)
	return r
}
