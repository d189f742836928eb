// Package web provides the HTTP server and handlers for the portfolio site.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"io/fs"
	"log"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/JonMunkholm/portfolio/internal/config"
	"github.com/JonMunkholm/portfolio/internal/feed"
	mw "github.com/JonMunkholm/portfolio/internal/web/middleware"
)

//go:embed static
var staticFiles embed.FS

// Server is the HTTP server for the portfolio site and its JSON API.
type Server struct {
	service *feed.Service
	cfg     *config.Config
	router  *chi.Mux
	server  *http.Server
}

// NewServer creates a new Server instance.
func NewServer(service *feed.Service, cfg *config.Config) *Server {
	s := &Server{
		service: service,
		cfg:     cfg,
		router:  chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(mw.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(mw.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(mw.Metrics)
	s.router.Use(middleware.Compress(5))

	s.router.Use(securityHeaders(s.cfg.Security.EnableCSP))

	if s.cfg.Rate.Enabled {
		limiter := newIPRateLimiter(s.cfg.Rate.RequestsPerMinute, s.cfg.Rate.Burst)
		s.router.Use(limiter.middleware(s))
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.respondError(w, r, errNotFound, http.StatusNotFound)
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.respondError(w, r, errMethodNotAllowed, http.StatusMethodNotAllowed)
	})

	timeout := middleware.Timeout(s.cfg.Server.RequestTimeout)

	s.router.Group(func(r chi.Router) {
		r.Use(timeout)

		// Static files (stylesheet, banners)
		staticFS, err := fs.Sub(staticFiles, "static")
		if err != nil {
			log.Fatal(err)
		}
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

		// Pages
		r.Get("/", s.handleHome)

		// The bundled document, at the path the site has always published it
		r.Get("/data/projects.csv", s.handleBundledCSV)

		// Operations
		r.Get("/health", s.handleHealth)
		r.Handle("/metrics", promhttp.Handler())
	})

	// API routes
	s.router.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(timeout)
			r.Get("/projects", s.handleListProjects)
			r.Get("/projects/{id}", s.handleGetProject)
			r.Get("/stacks", s.handleListStacks)
			r.Get("/status", s.handleStatus)
		})

		// Manual refreshes are bounded by PROJECTS_FETCH_TIMEOUT rather than the
		// request timeout, so a slow source is not cut off and discarded mid-load
		r.With(mw.APIKeyAuth(&s.cfg.Security)).Post("/refresh", s.handleRefresh)
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	slog.Info("starting server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// securityHeaders adds security headers to all responses.
func securityHeaders(enableCSP bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")

			// Pages carry no scripts; banners may be hosted elsewhere
			if enableCSP {
				h.Set("Content-Security-Policy", "default-src 'self'; script-src 'none'; style-src 'self' 'unsafe-inline'; img-src 'self' https: data:; frame-ancestors 'none'")
			}

			next.ServeHTTP(w, r)
		})
	}
}

// writeJSON encodes v as JSON with the given status.
// Logs encoding errors since headers are already sent.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
