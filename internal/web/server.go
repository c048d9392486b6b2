// Package web provides the HTTP server and handlers for the HR console UI
// and its JSON column API.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/JonMunkholm/hrconsole/internal/config"
	"github.com/JonMunkholm/hrconsole/internal/core"
	mw "github.com/JonMunkholm/hrconsole/internal/web/middleware"
)

//go:embed static
var staticFiles embed.FS

// Pinger reports whether the storage backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server is the HTTP server of the HR console.
type Server struct {
	service *core.Service
	cfg     *config.Config
	backend Pinger
	router  *chi.Mux
	server  *http.Server

	limiter       *mw.RateLimiter
	columnLimiter *mw.RateLimiter
	stop          context.CancelFunc
}

// NewServer creates a new Server instance. backend may be nil.
func NewServer(service *core.Service, cfg *config.Config, backend Pinger) *Server {
	s := &Server{
		service: service,
		cfg:     cfg,
		backend: backend,
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
	s.router.Use(middleware.Compress(5))
	s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))

	// Security hardening
	s.router.Use(securityHeaders(s.cfg.Security.EnableCSP))

	if s.cfg.Rate.Enabled {
		s.limiter = mw.NewRateLimiter(s.cfg.Rate.RequestsPerMinute)
		s.columnLimiter = mw.NewRateLimiter(s.cfg.Rate.ColumnLimit)
		s.router.Use(s.limiter.Handler)
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	s.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	s.router.Get("/healthz", s.handleHealth)

	owner := mw.Owner(s.cfg.Security.OwnerCookie, s.cfg.Security.SecureCookies)

	// Pages and HTMX fragments
	s.router.Group(func(r chi.Router) {
		r.Use(owner)
		r.Get("/", s.handleDashboard)
		r.Get("/table/{tableKey}", s.handleTablePage)
		r.Get("/table/{tableKey}/rows", s.handleTableRows)
		r.Get("/table/{tableKey}/settings", s.handleTableSettings)

		r.Group(func(r chi.Router) {
			s.useColumnLimit(r)
			r.Post("/table/{tableKey}/columns/{kind}", s.handleApplyColumns)
			r.Delete("/table/{tableKey}/columns", s.handleResetColumns)
		})
	})

	// JSON API
	s.router.Route("/api", func(r chi.Router) {
		r.Use(owner)
		r.Use(mw.APIKeyAuth(&s.cfg.Security))

		r.Get("/tables", s.handleListTables)
		r.Get("/tables/{tableKey}", s.handleTableDefinition)
		r.Get("/columns/{tableKey}", s.handleGetColumns)

		r.Group(func(r chi.Router) {
			s.useColumnLimit(r)
			r.Post("/columns/{tableKey}/{kind}", s.handleApplyColumns)
			r.Delete("/columns/{tableKey}", s.handleResetColumns)
		})
	})
}

// useColumnLimit adds the stricter budget of column writes.
func (s *Server) useColumnLimit(r chi.Router) {
	if s.columnLimiter != nil {
		r.Use(s.columnLimiter.Handler)
	}
}

// Start begins listening for HTTP requests.
func (s *Server) Start(addr string) error {
	ctx, cancel := context.WithCancel(context.Background())
	s.stop = cancel
	for _, l := range []*mw.RateLimiter{s.limiter, s.columnLimiter} {
		if l != nil {
			go l.Run(ctx, time.Minute)
		}
	}

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	slog.Info("starting server", "addr", addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.stop != nil {
		s.stop()
	}
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// contentSecurityPolicy allows htmx from unpkg and the inline styles of the
// row animations.
const contentSecurityPolicy = "default-src 'self'; script-src 'self' https://unpkg.com; style-src 'self' 'unsafe-inline'; img-src 'self' data:; font-src 'self'"

// securityHeaders adds security headers to all responses.
func securityHeaders(enableCSP bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
			if enableCSP {
				w.Header().Set("Content-Security-Policy", contentSecurityPolicy)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// writeError writes a JSON error response with a plain message.
func writeError(w http.ResponseWriter, status int, message string) {
	slog.Warn("http error", "status", status, "message", message)
	writeJSONStatus(w, status, map[string]string{"error": message})
}

// writeJSON encodes v as JSON and writes it to w.
// Logs encoding errors since headers are already sent.
func writeJSON(w http.ResponseWriter, v any) {
	writeJSONStatus(w, http.StatusOK, v)
}

func writeJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
