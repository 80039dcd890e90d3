package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/websub-notify/pkg/domain"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/parser.go -pkg mocks -skip-ensure -fmt goimports . EntryParser
//go:generate moq -out mocks/dedup.go -pkg mocks -skip-ensure -fmt goimports . Dedup
//go:generate moq -out mocks/notifier.go -pkg mocks -skip-ensure -fmt goimports . Notifier
//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . AnnouncementStore

// Server represents HTTP server instance handling the WebSub callback
type Server struct {
	config   ConfigProvider
	parser   EntryParser
	dedup    Dedup
	notifier Notifier
	store    AnnouncementStore // optional, nil disables the history API
	version  string
	debug    bool

	dispatchTimeout time.Duration

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// EntryParser extracts the newest entry from a pushed feed document
type EntryParser interface {
	Parse(data []byte) (*domain.Entry, error)
}

// Dedup answers whether a video id is new, claiming it atomically
type Dedup interface {
	TryClaim(id string) bool
}

// Notifier delivers a formatted announcement to the chat system
type Notifier interface {
	Announce(ctx context.Context, entry domain.Entry) error
}

// AnnouncementStore keeps the history of dispatched announcements
type AnnouncementStore interface {
	Record(ctx context.Context, a *domain.Announcement) error
	List(ctx context.Context, limit int) ([]domain.Announcement, error)
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
	GetSecret() string
}

// New initializes a new server instance
func New(cfg ConfigProvider, parser EntryParser, dedup Dedup, notifier Notifier, store AnnouncementStore, version string, debug bool) *Server {
	s := &Server{
		config:          cfg,
		parser:          parser,
		dedup:           dedup,
		notifier:        notifier,
		store:           store,
		version:         version,
		debug:           debug,
		dispatchTimeout: 30 * time.Second,
		router:          routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	lgr.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:         listen,
		Handler:      s.router,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("websub-notify", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB, feed pushes are tiny
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	// hub-facing callback, GET for the challenge handshake, POST for pushes
	s.router.HandleFunc("GET /websub", s.challengeHandler)
	s.router.HandleFunc("POST /websub", s.notificationHandler)

	// API routes
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /announcements", s.announcementsHandler)
	})
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}
	RenderJSON(w, r, http.StatusOK, status)
}

// RenderJSON sends JSON response
func RenderJSON(w http.ResponseWriter, _ *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// RenderError sends error response as JSON
func RenderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	RenderJSON(w, r, code, map[string]string{"error": errMsg})
}
