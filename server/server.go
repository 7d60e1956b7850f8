package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/cors"

	"github.com/umputun/newsnearme/pkg/config"
	"github.com/umputun/newsnearme/pkg/dashboard"
	"github.com/umputun/newsnearme/pkg/feed"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

const sessionCookie = "nnm_session"

// Server represents HTTP server instance
type Server struct {
	config     ConfigProvider
	api        dashboard.API
	sessions   *dashboard.Sessions
	loader     *dashboard.Loader
	dispatcher *dashboard.Dispatcher
	feeds      *feed.Generator
	policy     *bluemonday.Policy
	templates  *template.Template
	version    string
	debug      bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
	GetFullConfig() *config.Config
}

// New initializes a new server instance
func New(cfg ConfigProvider, api dashboard.API, version string, debug bool) *Server {
	full := cfg.GetFullConfig()
	s := &Server{
		config:     cfg,
		api:        api,
		sessions:   dashboard.NewSessions(full.Server.SessionTTL, full.UI.DefaultLimit),
		loader:     dashboard.NewLoader(api),
		dispatcher: dashboard.NewDispatcher(api),
		feeds:      feed.NewGenerator(full.Server.BaseURL, full.UI.Title),
		policy:     bluemonday.StrictPolicy(),
		templates:  template.Must(template.New("").ParseFS(templatesFS, "templates/*.html")),
		version:    version,
		debug:      debug,
		router:     routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	httpServer := s.httpServer
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("newsnearme", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(64 * 1024)) // forms only
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	// dashboard page and HTMX actions
	s.router.HandleFunc("GET /{$}", s.indexHandler)
	s.router.HandleFunc("POST /services/{id}", s.serviceHandler)
	s.router.HandleFunc("POST /search", s.searchHandler)
	s.router.HandleFunc("POST /filters", s.filtersHandler)
	s.router.HandleFunc("POST /categories/toggle", s.toggleCategoryHandler)
	s.router.HandleFunc("POST /response/dismiss", s.dismissResponseHandler)

	// RSS export
	s.router.HandleFunc("GET /rss", s.rssHandler)

	// static files
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(fmt.Sprintf("static files: %v", err))
	}
	s.router.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static)))

	// API routes
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.Use(s.corsMiddleware())
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /services", s.servicesHandler)
		r.HandleFunc("GET /state", s.stateHandler)
	})
}

// corsMiddleware allows configured origins to read the JSON API.
// Without configured origins any origin may read it, but without credentials.
func (s *Server) corsMiddleware() func(http.Handler) http.Handler {
	origins := s.config.GetFullConfig().Server.AllowedOrigins
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet},
		AllowCredentials: len(origins) > 0,
	}).Handler
}
