// Package web provides the HTTP server and handlers for the competition
// dashboard.
package web

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/JonMunkholm/arena/internal/config"
	"github.com/JonMunkholm/arena/internal/core"
	"github.com/JonMunkholm/arena/internal/export"
	mw "github.com/JonMunkholm/arena/internal/web/middleware"
)

//go:embed static
var staticFiles embed.FS

// Server is the HTTP server of the dashboard.
type Server struct {
	cfg      *config.Config
	service  *core.Service
	exports  *core.ExportLimiter
	exporter export.Options
	loc      *time.Location

	// ctx bounds background work owned by the server's middleware.
	ctx    context.Context
	cancel context.CancelFunc

	router *chi.Mux
	server *http.Server
}

// NewServer wires the router for service. exports bounds concurrent report
// rendering and is drained by the caller on shutdown.
func NewServer(cfg *config.Config, service *core.Service, exports *core.ExportLimiter) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		cfg:      cfg,
		service:  service,
		exports:  exports,
		exporter: export.Options{FontPath: cfg.Export.FontPath},
		loc:      cfg.Display.Location(),
		ctx:      ctx,
		cancel:   cancel,
		router:   chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	s.server = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(chimw.RequestID)
	s.router.Use(mw.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(mw.Logger)
	s.router.Use(chimw.Recoverer)
	s.router.Use(chimw.Compress(5))
	s.router.Use(chimw.Timeout(s.cfg.Server.RequestTimeout))
	s.router.Use(securityHeaders(s.cfg.Security.EnableCSP))

	if s.cfg.Rate.Enabled {
		s.router.Use(mw.RateLimiter(s.ctx, mw.RateLimitConfig{
			RequestsPerMinute: s.cfg.Rate.RequestsPerMinute,
			Burst:             s.cfg.Rate.Burst,
		}))
	}
}

func (s *Server) setupRoutes() {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("static assets: %v", err))
	}
	s.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// Pages
	s.router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/competitions", http.StatusFound)
	})
	s.router.Get("/competitions", s.handleCompetitions)
	s.router.Get("/competitions/{id}", s.handleCompetition)
	s.router.Get("/athletes", s.handleRankings)
	s.router.Get("/athletes/{id}/statistics", s.handleStatistics)

	exportRoute := s.router.With()
	if s.cfg.Rate.Enabled {
		exportRoute = s.router.With(mw.RateLimiter(s.ctx, mw.RateLimitConfig{
			RequestsPerMinute: s.cfg.Rate.ExportLimit,
			Burst:             s.cfg.Rate.ExportLimit,
		}))
	}
	exportRoute.Get("/athletes/{id}/statistics/export", s.handleExport)

	// JSON API
	s.router.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.cfg.Security.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", mw.APIKeyHeader},
			MaxAge:         300,
		}))

		r.Get("/health", s.handleHealth)

		r.Group(func(r chi.Router) {
			r.Use(mw.APIKeyAuth(&s.cfg.Security))
			r.Get("/competitions", s.handleAPICompetitions)
			r.Get("/competitions/{id}", s.handleAPICompetition)
			r.Get("/athletes", s.handleAPIRankings)
			r.Get("/athletes/{id}/statistics", s.handleAPIStatistics)
		})
	})
}

// Start listens on the configured address until Shutdown. A Shutdown that
// comes first makes Start return http.ErrServerClosed at once.
func (s *Server) Start() error {
	slog.Info("server starting", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	s.cancel()
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

const contentSecurityPolicy = "default-src 'self'; " +
	"script-src 'self' 'unsafe-inline' 'unsafe-eval' https://unpkg.com https://cdn.jsdelivr.net; " +
	"style-src 'self' 'unsafe-inline'; img-src 'self' data:; font-src 'self'; connect-src 'self'"

// securityHeaders adds hardening headers to every response.
func securityHeaders(enableCSP bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			if enableCSP {
				h.Set("Content-Security-Policy", contentSecurityPolicy)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// render writes a component through a pooled buffer so a failed render
// never leaves a half-written page.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	buf := templ.GetBuffer()
	defer templ.ReleaseBuffer(buf)

	if err := c.Render(r.Context(), buf); err != nil {
		slog.Error("render failed", "path", r.URL.Path, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
